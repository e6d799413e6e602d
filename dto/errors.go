package dto

import (
	"sort"
	"strings"
)

// Error codes carried in ErrorResponse.Code.
const (
	CodeValidationFailed        = "VALIDATION_FAILED"
	CodeNotFound                = "NOT_FOUND"
	CodeUnauthorized            = "UNAUTHORIZED"
	CodeForbidden               = "FORBIDDEN"
	CodeInsufficientBalance     = "INSUFFICIENT_BALANCE"
	CodeInsufficientStock       = "INSUFFICIENT_STOCK"
	CodeInvalidStatusTransition = "INVALID_STATUS_TRANSITION"
	CodeInternal                = "INTERNAL_ERROR"
)

// ErrorResponse is the body of every non-2xx response. Message is either a string or a list of strings.
type ErrorResponse struct {
	Message any    `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ValidationError collects field level failures found before a request is sent.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) add(field, msg string) {
	if e.Fields == nil {
		e.Fields = make(map[string]string)
	}
	if _, ok := e.Fields[field]; !ok {
		e.Fields[field] = msg
	}
}

// Messages returns "field: message" entries sorted by field.
func (e *ValidationError) Messages() []string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]string, 0, len(keys))
	for _, k := range keys {
		out = append(out, k+": "+e.Fields[k])
	}
	return out
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Messages(), ", ")
}

// orNil returns e when it carries at least one field, nil otherwise.
func (e *ValidationError) orNil() error {
	if len(e.Fields) == 0 {
		return nil
	}
	return e
}
