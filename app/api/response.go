package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/models"
)

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ParsePage reads page and limit query params. Invalid pages fall back to 1,
// limits are clamped to [1, MaxLimit].
func ParsePage(r *http.Request) (page, limit, offset int) {
	page = 1
	limit = DefaultLimit

	if pStr := r.URL.Query().Get("page"); pStr != "" {
		if p, err := strconv.Atoi(pStr); err == nil && p >= 1 {
			page = p
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > MaxLimit {
				limit = MaxLimit
			} else {
				limit = l
			}
		}
	}

	return page, limit, (page - 1) * limit
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func WriteData[T any](w http.ResponseWriter, status int, data T) {
	WriteJSON(w, status, dto.DataResponse[T]{Data: data})
}

func WriteList[T any](w http.ResponseWriter, data []T, page, limit int, total int64) {
	if data == nil {
		data = []T{}
	}
	WriteJSON(w, http.StatusOK, dto.ListResponse[T]{
		Data:       data,
		Pagination: dto.NewPagination(page, limit, total),
	})
}

func WriteError(w http.ResponseWriter, status int, code string, message string) {
	WriteJSON(w, status, dto.ErrorResponse{Message: message, Code: code})
}

// WriteValidation reports every field failure as a list of messages.
func WriteValidation(w http.ResponseWriter, err error) {
	var verr *dto.ValidationError
	if errors.As(err, &verr) {
		WriteJSON(w, http.StatusBadRequest, dto.ErrorResponse{Message: verr.Messages(), Code: dto.CodeValidationFailed})
		return
	}
	WriteError(w, http.StatusBadRequest, dto.CodeValidationFailed, err.Error())
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// WriteRepoError maps repository errors onto status codes and user facing messages.
// Wrapped error text never reaches the response body.
func WriteRepoError(w http.ResponseWriter, logger *zap.Logger, err error, notFoundMsg string) {
	var stockErr *models.StockError
	switch {
	case errors.Is(err, models.ErrNotFound):
		WriteError(w, http.StatusNotFound, dto.CodeNotFound, notFoundMsg)
	case errors.Is(err, models.ErrForbidden):
		WriteError(w, http.StatusForbidden, dto.CodeForbidden, "Access denied")
	case errors.Is(err, models.ErrInsufficientBalance):
		WriteError(w, http.StatusUnprocessableEntity, dto.CodeInsufficientBalance, "Insufficient balance")
	case errors.As(err, &stockErr):
		WriteError(w, http.StatusConflict, dto.CodeInsufficientStock, "Insufficient stock for "+stockErr.Product)
	case errors.Is(err, models.ErrInsufficientStock):
		WriteError(w, http.StatusConflict, dto.CodeInsufficientStock, "Insufficient stock")
	case errors.Is(err, models.ErrInvalidTransition):
		WriteError(w, http.StatusConflict, dto.CodeInvalidStatusTransition, "Status change not allowed")
	default:
		if logger != nil {
			logger.Error("request failed", zap.Error(err))
		}
		WriteError(w, http.StatusInternalServerError, dto.CodeInternal, "Internal server error")
	}
}

type userKey struct{}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userKey{}, userID)
}

// UserID returns the authenticated user, or "" for anonymous requests.
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userKey{}).(string)
	return id
}
