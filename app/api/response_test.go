package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/models"
)

func TestParsePage(t *testing.T) {
	testCases := []struct {
		url                 string
		page, limit, offset int
	}{
		{"/x", 1, 20, 0},
		{"/x?page=3&limit=10", 3, 10, 20},
		{"/x?page=0&limit=0", 1, 1, 0},
		{"/x?page=-2&limit=500", 1, 100, 0},
		{"/x?page=abc&limit=xyz", 1, 20, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.url, func(t *testing.T) {
			page, limit, offset := ParsePage(httptest.NewRequest("GET", tc.url, nil))
			assert.Equal(t, tc.page, page)
			assert.Equal(t, tc.limit, limit)
			assert.Equal(t, tc.offset, offset)
		})
	}
}

func TestWriteRepoError(t *testing.T) {
	testCases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"not found", models.ErrNotFound, http.StatusNotFound, dto.CodeNotFound, "Order not found"},
		{"named stock line", &models.StockError{Product: "Riz - 5kg"}, http.StatusConflict, dto.CodeInsufficientStock, "Insufficient stock for Riz - 5kg"},
		{"wrapped stock", fmt.Errorf("variant v1 row lock: %w", models.ErrInsufficientStock), http.StatusConflict, dto.CodeInsufficientStock, "Insufficient stock"},
		{"balance", models.ErrInsufficientBalance, http.StatusUnprocessableEntity, dto.CodeInsufficientBalance, "Insufficient balance"},
		{"transition", models.ErrInvalidTransition, http.StatusConflict, dto.CodeInvalidStatusTransition, "Status change not allowed"},
		{"forbidden", models.ErrForbidden, http.StatusForbidden, dto.CodeForbidden, "Access denied"},
		{"internal", errors.New("pq: connection refused"), http.StatusInternalServerError, dto.CodeInternal, "Internal server error"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			WriteRepoError(rec, nil, tc.err, "Order not found")

			assert.Equal(t, tc.status, rec.Code)
			var body dto.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestWriteValidationListsMessages(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteValidation(rec, dto.CreateTableRequest{}.Validate())

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var body struct {
		Message []string `json:"message"`
		Code    string   `json:"code"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, dto.CodeValidationFailed, body.Code)
	assert.Equal(t, []string{"capacity: must be at least 1", "name: required"}, body.Message)
}

func TestWriteListNeverEmitsNull(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteList[dto.Table](rec, nil, 1, 20, 0)
	assert.JSONEq(t, `{"data":[],"pagination":{"page":1,"limit":20,"total":0,"totalPages":0}}`, rec.Body.String())
}
