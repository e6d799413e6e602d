package app

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRouterRequiresAuth(t *testing.T) {
	router := NewRouter(Repositories{}, []byte("secret"), "test", zap.NewNop())

	testCases := []struct {
		method string
		path   string
		status int
	}{
		{"GET", "/health", http.StatusOK},
		{"POST", "/businesses", http.StatusUnauthorized},
		{"PATCH", "/businesses/b1", http.StatusUnauthorized},
		{"POST", "/businesses/b1/menus", http.StatusUnauthorized},
		{"GET", "/businesses/b1/inventory", http.StatusUnauthorized},
		{"POST", "/orders", http.StatusUnauthorized},
		{"POST", "/orders/o1/pay", http.StatusUnauthorized},
		{"GET", "/wallet", http.StatusUnauthorized},
		{"DELETE", "/wallet", http.StatusMethodNotAllowed},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			assert.Equal(t, tc.status, rec.Code)
		})
	}
}
