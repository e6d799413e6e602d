package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/komoralink/komora/dto"
)

// FallbackMessage is shown when a failure carries no usable message.
const FallbackMessage = "Une erreur est survenue. Veuillez réessayer."

// APIError is a non-2xx answer of the API.
type APIError struct {
	Status   int
	Code     string
	Messages []string
}

// Error joins the server messages with ", " so they can be shown verbatim.
func (e *APIError) Error() string {
	if len(e.Messages) == 0 {
		return fmt.Sprintf("request failed with status %d", e.Status)
	}
	return strings.Join(e.Messages, ", ")
}

// decodeAPIError reads the {"message": string|[]string, "code": string} body.
func decodeAPIError(status int, body []byte) *APIError {
	apiErr := &APIError{Status: status}

	var raw struct {
		Message json.RawMessage `json:"message"`
		Code    string          `json:"code"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return apiErr
	}
	apiErr.Code = raw.Code

	var one string
	if err := json.Unmarshal(raw.Message, &one); err == nil {
		if one != "" {
			apiErr.Messages = []string{one}
		}
		return apiErr
	}
	var many []string
	if err := json.Unmarshal(raw.Message, &many); err == nil {
		apiErr.Messages = many
	}
	return apiErr
}

// IsCode reports whether err is an API error carrying code.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

func IsInsufficientBalance(err error) bool {
	return IsCode(err, dto.CodeInsufficientBalance)
}

func IsNotFound(err error) bool {
	return IsCode(err, dto.CodeNotFound)
}

func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && (apiErr.Code == dto.CodeUnauthorized || apiErr.Status == 401)
}

// UserMessage is the text to show for err: the server message, the validation messages, or a
// generic fallback.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && len(apiErr.Messages) > 0 {
		return apiErr.Error()
	}
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		return strings.Join(verr.Messages(), ", ")
	}
	return FallbackMessage
}
