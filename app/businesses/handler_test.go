package businesses

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/komoralink/komora/app/api"
	"github.com/komoralink/komora/dto"
	"github.com/komoralink/komora/models"
)

// --- Mock Repo ---

type MockBusinessRepo struct {
	Businesses []models.Business
	Err        error

	lastCalledOffset  int
	lastCalledLimit   int
	lastCalledFilters models.BusinessFilters
	created           *models.Business
	updated           *models.Business
}

func (m *MockBusinessRepo) GetFilteredBusinesses(_ context.Context, offset, limit int, filters models.BusinessFilters) ([]models.Business, int64, error) {
	m.lastCalledOffset = offset
	m.lastCalledLimit = limit
	m.lastCalledFilters = filters
	if m.Err != nil {
		return nil, 0, m.Err
	}

	var filtered []models.Business
	for _, b := range m.Businesses {
		if filters.Type != "" && b.Type != filters.Type {
			continue
		}
		if filters.Sector != "" && !strings.EqualFold(b.ActivitySector, filters.Sector) {
			continue
		}
		if filters.OwnerID != "" && b.OwnerID != filters.OwnerID {
			continue
		}
		filtered = append(filtered, b)
	}
	start := min(offset, len(filtered))
	end := min(offset+limit, len(filtered))
	return filtered[start:end], int64(len(filtered)), nil
}

func (m *MockBusinessRepo) GetByID(_ context.Context, id string) (*models.Business, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	for _, b := range m.Businesses {
		if b.ID == id {
			business := b
			return &business, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *MockBusinessRepo) CreateBusiness(_ context.Context, b *models.Business) error {
	m.created = b
	if m.Err != nil {
		return m.Err
	}
	b.ID = "new-business"
	return nil
}

func (m *MockBusinessRepo) UpdateBusiness(_ context.Context, b *models.Business) error {
	m.updated = b
	return m.Err
}

func newTestBusiness(id, owner string, typ dto.BusinessType, sector string) models.Business {
	return models.Business{
		Base:           models.Base{ID: id},
		OwnerID:        owner,
		Name:           "Business " + id,
		Type:           typ,
		ActivitySector: sector,
		Address:        "Douala",
	}
}

// --- Tests ---

func TestHandleList(t *testing.T) {
	all := []models.Business{
		newTestBusiness("b1", "u1", dto.BusinessCommercant, "Alimentation"),
		newTestBusiness("b2", "u2", dto.BusinessRestaurateur, "Restauration"),
		newTestBusiness("b3", "u1", dto.BusinessCommercant, "Mode"),
	}

	testCases := []struct {
		name               string
		url                string
		userID             string
		mockRepoSetup      func() *MockBusinessRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCalls     func(t *testing.T, repo *MockBusinessRepo)
	}{
		{
			name:               "Filter by type, search and sector",
			url:                "/businesses?type=commercant&search=chez&sector=mode&page=1&limit=5",
			mockRepoSetup:      func() *MockBusinessRepo { return &MockBusinessRepo{Businesses: all} },
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp dto.ListResponse[dto.Business]
				assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
				assert.Len(t, resp.Data, 1)
				assert.Equal(t, "b3", resp.Data[0].ID)
				assert.Equal(t, dto.Pagination{Page: 1, Limit: 5, Total: 1, TotalPages: 1}, resp.Pagination)
			},
			checkRepoCalls: func(t *testing.T, repo *MockBusinessRepo) {
				assert.Equal(t, dto.BusinessCommercant, repo.lastCalledFilters.Type)
				assert.Equal(t, "chez", repo.lastCalledFilters.Search)
				assert.Equal(t, "mode", repo.lastCalledFilters.Sector)
				assert.Equal(t, 5, repo.lastCalledLimit)
			},
		},
		{
			name:               "Unknown type",
			url:                "/businesses?type=banque",
			mockRepoSetup:      func() *MockBusinessRepo { return &MockBusinessRepo{Businesses: all} },
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Own businesses",
			url:                "/businesses?owner=me",
			userID:             "u1",
			mockRepoSetup:      func() *MockBusinessRepo { return &MockBusinessRepo{Businesses: all} },
			expectedStatusCode: http.StatusOK,
			checkRepoCalls: func(t *testing.T, repo *MockBusinessRepo) {
				assert.Equal(t, "u1", repo.lastCalledFilters.OwnerID)
			},
		},
		{
			name:               "Own businesses requires a user",
			url:                "/businesses?owner=me",
			mockRepoSetup:      func() *MockBusinessRepo { return &MockBusinessRepo{Businesses: all} },
			expectedStatusCode: http.StatusUnauthorized,
		},
		{
			name:               "Repository error",
			url:                "/businesses",
			mockRepoSetup:      func() *MockBusinessRepo { return &MockBusinessRepo{Err: errors.New("db down")} },
			expectedStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := tc.mockRepoSetup()
			handler := NewBusinessHandler(mockRepo, zap.NewNop())
			req := httptest.NewRequest("GET", tc.url, nil)
			if tc.userID != "" {
				req = req.WithContext(api.WithUserID(req.Context(), tc.userID))
			}
			rec := httptest.NewRecorder()

			handler.HandleList(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCalls != nil {
				tc.checkRepoCalls(t, mockRepo)
			}
		})
	}
}

func TestHandleCreate(t *testing.T) {
	t.Run("Creates a business owned by the caller", func(t *testing.T) {
		repo := &MockBusinessRepo{}
		handler := NewBusinessHandler(repo, zap.NewNop())
		body := `{"name":"Chez Mama","type":"RESTAURATEUR","activitySector":"Restauration","address":"Akwa","phone":"+237 699 00 11 22"}`
		req := httptest.NewRequest("POST", "/businesses", strings.NewReader(body))
		req = req.WithContext(api.WithUserID(req.Context(), "u1"))
		rec := httptest.NewRecorder()

		handler.HandleCreate(rec, req)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "u1", repo.created.OwnerID)
		assert.Equal(t, "+237699001122", repo.created.Phone)

		var resp dto.DataResponse[dto.Business]
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "new-business", resp.Data.ID)
	})

	t.Run("Validation errors are listed", func(t *testing.T) {
		repo := &MockBusinessRepo{}
		handler := NewBusinessHandler(repo, zap.NewNop())
		req := httptest.NewRequest("POST", "/businesses", strings.NewReader(`{"type":"RESTAURATEUR"}`))
		rec := httptest.NewRecorder()

		handler.HandleCreate(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Nil(t, repo.created)
		var resp struct {
			Message []string `json:"message"`
		}
		assert.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Len(t, resp.Message, 3)
	})
}

func TestHandleUpdate(t *testing.T) {
	all := []models.Business{newTestBusiness("b1", "u1", dto.BusinessCommercant, "Alimentation")}

	testCases := []struct {
		name               string
		userID             string
		body               string
		expectedStatusCode int
		checkRepo          func(t *testing.T, repo *MockBusinessRepo)
	}{
		{
			name:               "Owner updates only provided fields",
			userID:             "u1",
			body:               `{"name":"Nouveau nom"}`,
			expectedStatusCode: http.StatusOK,
			checkRepo: func(t *testing.T, repo *MockBusinessRepo) {
				assert.Equal(t, "Nouveau nom", repo.updated.Name)
				assert.Equal(t, "Alimentation", repo.updated.ActivitySector)
			},
		},
		{
			name:               "Other user is refused",
			userID:             "u2",
			body:               `{"name":"Hijack"}`,
			expectedStatusCode: http.StatusForbidden,
			checkRepo: func(t *testing.T, repo *MockBusinessRepo) {
				assert.Nil(t, repo.updated)
			},
		},
		{
			name:               "Empty update",
			userID:             "u1",
			body:               `{}`,
			expectedStatusCode: http.StatusBadRequest,
		},
		{
			name:               "Unknown field",
			userID:             "u1",
			body:               `{"ownerId":"u2"}`,
			expectedStatusCode: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			repo := &MockBusinessRepo{Businesses: all}
			handler := NewBusinessHandler(repo, zap.NewNop())
			req := httptest.NewRequest("PATCH", "/businesses/b1", strings.NewReader(tc.body))
			req.SetPathValue("id", "b1")
			req = req.WithContext(api.WithUserID(req.Context(), tc.userID))
			rec := httptest.NewRecorder()

			handler.HandleUpdate(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkRepo != nil {
				tc.checkRepo(t, repo)
			}
		})
	}
}
