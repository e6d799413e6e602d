package inventory

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/komoralink/komora/app/api"
	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/models"
)

// --- Mock Repos ---

type MockInventoryRepo struct {
	Items []models.InventoryItem
	Err   error

	lastUntil time.Time
}

func (m *MockInventoryRepo) GetInventory(_ context.Context, businessID string, offset, limit int) ([]models.InventoryItem, int64, error) {
	if m.Err != nil {
		return nil, 0, m.Err
	}
	var filtered []models.InventoryItem
	for _, it := range m.Items {
		if it.BusinessID == businessID {
			filtered = append(filtered, it)
		}
	}
	start := min(offset, len(filtered))
	end := min(offset+limit, len(filtered))
	return filtered[start:end], int64(len(filtered)), nil
}

func (m *MockInventoryRepo) GetExpiring(_ context.Context, businessID string, until time.Time) ([]models.InventoryItem, error) {
	m.lastUntil = until
	var out []models.InventoryItem
	for _, it := range m.Items {
		if it.BusinessID == businessID && it.ExpirationDate != nil && !it.ExpirationDate.After(until) {
			out = append(out, it)
		}
	}
	return out, nil
}

func (m *MockInventoryRepo) GetItem(_ context.Context, id string) (*models.InventoryItem, error) {
	for _, it := range m.Items {
		if it.ID == id {
			item := it
			return &item, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MockInventoryRepo) WriteOff(_ context.Context, id string, quantity int) (*models.InventoryItem, error) {
	for i := range m.Items {
		if m.Items[i].ID != id {
			continue
		}
		if m.Items[i].Quantity < quantity {
			return nil, models.ErrInsufficientStock
		}
		m.Items[i].Quantity -= quantity
		m.Items[i].WrittenOff += quantity
		item := m.Items[i]
		return &item, nil
	}
	return nil, models.ErrNotFound
}

type MockBusinessRepo struct{}

func (MockBusinessRepo) GetByID(_ context.Context, id string) (*models.Business, error) {
	if id != "shop" {
		return nil, models.ErrNotFound
	}
	return &models.Business{Base: models.Base{ID: id}, OwnerID: "merchant"}, nil
}

var now = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

func expiring(id string, days, qty int) models.InventoryItem {
	d := now.AddDate(0, 0, days)
	return models.InventoryItem{
		Base:           models.Base{ID: id},
		BusinessID:     "shop",
		SKU:            "SKU-" + id,
		Quantity:       qty,
		Price:          decimal.NewFromInt(100),
		ExpirationDate: &d,
	}
}

func newTestHandler(repo *MockInventoryRepo) *InventoryHandler {
	h := NewInventoryHandler(repo, MockBusinessRepo{}, zap.NewNop())
	h.now = func() time.Time { return now }
	return h
}

func withUser(req *http.Request, userID string) *http.Request {
	return req.WithContext(api.WithUserID(req.Context(), userID))
}

// --- Tests ---

func TestHandleList(t *testing.T) {
	repo := &MockInventoryRepo{Items: []models.InventoryItem{expiring("a", 3, 5), expiring("b", 40, 2)}}

	testCases := []struct {
		name               string
		userID             string
		expectedStatusCode int
	}{
		{name: "Owner sees the stock", userID: "merchant", expectedStatusCode: http.StatusOK},
		{name: "Other user is refused", userID: "customer", expectedStatusCode: http.StatusForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/businesses/shop/inventory?limit=1", nil)
			req.SetPathValue("id", "shop")
			rec := httptest.NewRecorder()

			newTestHandler(repo).HandleList(rec, withUser(req, tc.userID))

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if rec.Code == http.StatusOK {
				var resp dto.ListResponse[dto.InventoryItem]
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Len(t, resp.Data, 1)
				assert.Equal(t, 2, resp.Pagination.Total)
				assert.Equal(t, 2, resp.Pagination.TotalPages)
			}
		})
	}
}

func TestHandleListRepoError(t *testing.T) {
	repo := &MockInventoryRepo{Err: errors.New("db down")}
	req := httptest.NewRequest("GET", "/businesses/shop/inventory", nil)
	req.SetPathValue("id", "shop")
	rec := httptest.NewRecorder()

	newTestHandler(repo).HandleList(rec, withUser(req, "merchant"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleExpiring(t *testing.T) {
	repo := &MockInventoryRepo{Items: []models.InventoryItem{
		expiring("a", 3, 5),
		expiring("b", 3, 1),
		expiring("c", 10, 2),
		expiring("d", 40, 2),
	}}

	t.Run("Default window groups by day", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/businesses/shop/inventory/expiring", nil)
		req.SetPathValue("id", "shop")
		rec := httptest.NewRecorder()

		newTestHandler(repo).HandleExpiring(rec, withUser(req, "merchant"))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, now.AddDate(0, 0, 30), repo.lastUntil)

		var resp dto.DataResponse[[]dto.ExpiringBatch]
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.Len(t, resp.Data, 2)
		assert.Equal(t, 3, resp.Data[0].DaysLeft)
		assert.Equal(t, 6, resp.Data[0].Quantity)
		assert.True(t, decimal.NewFromInt(600).Equal(resp.Data[0].ValueAtRisk))
		assert.Equal(t, 10, resp.Data[1].DaysLeft)
	})

	t.Run("Custom window", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/businesses/shop/inventory/expiring?days=5", nil)
		req.SetPathValue("id", "shop")
		rec := httptest.NewRecorder()

		newTestHandler(repo).HandleExpiring(rec, withUser(req, "merchant"))

		var resp dto.DataResponse[[]dto.ExpiringBatch]
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp.Data, 1)
	})

	t.Run("Invalid window", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/businesses/shop/inventory/expiring?days=zero", nil)
		req.SetPathValue("id", "shop")
		rec := httptest.NewRecorder()

		newTestHandler(repo).HandleExpiring(rec, withUser(req, "merchant"))

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleWriteOff(t *testing.T) {
	testCases := []struct {
		name               string
		userID             string
		body               string
		expectedStatusCode int
		expectedQuantity   int
	}{
		{name: "Removes stock", userID: "merchant", body: `{"quantity":2,"reason":"périmé"}`, expectedStatusCode: http.StatusOK, expectedQuantity: 3},
		{name: "More than held", userID: "merchant", body: `{"quantity":9}`, expectedStatusCode: http.StatusConflict, expectedQuantity: 5},
		{name: "Zero quantity", userID: "merchant", body: `{"quantity":0}`, expectedStatusCode: http.StatusBadRequest, expectedQuantity: 5},
		{name: "Not the owner", userID: "customer", body: `{"quantity":1}`, expectedStatusCode: http.StatusForbidden, expectedQuantity: 5},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockInventoryRepo{Items: []models.InventoryItem{expiring("a", 3, 5)}}
			req := httptest.NewRequest("POST", "/inventory/a/write-off", strings.NewReader(tc.body))
			req.SetPathValue("id", "a")
			rec := httptest.NewRecorder()

			newTestHandler(repo).HandleWriteOff(rec, withUser(req, tc.userID))

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			assert.Equal(t, tc.expectedQuantity, repo.Items[0].Quantity)
		})
	}
}
