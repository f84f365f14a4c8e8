// internal/handlers/get-application/handler_test.go
package getapplication

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"dygs-jobs/internal/common/logger"
	"dygs-jobs/internal/models"
	"dygs-jobs/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingStore struct {
	storage.Store
}

func (failingStore) Get(ctx context.Context, id string) (*models.Application, error) {
	return nil, fmt.Errorf("%w: connection reset", storage.ErrStorageFailed)
}

func serve(t *testing.T, store storage.Store, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET(Route, NewHandler(store, time.Second, logger.NewTestLogger(t)).Handle)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func seededStore(t *testing.T) storage.Store {
	t.Helper()
	store := storage.NewXLSXStore(filepath.Join(t.TempDir(), "applications.xlsx"), "Applications", logger.NewTestLogger(t))
	submitted := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)
	require.NoError(t, store.Save(context.Background(), &models.Application{
		ApplicationID:   "DYGS-1741944600000-k3j5h2m9q",
		FirstName:       "Somchai",
		LastName:        "Sukjai",
		Email:           "s@x.com",
		Phone:           "0812345678",
		Position:        "Delivery Driver",
		ExperienceYears: 2,
		Education:       "High school",
		Skills:          "driving",
		Status:          models.StatusPending,
		CreatedAt:       submitted,
		UpdatedAt:       submitted,
	}))
	return store
}

func TestHandler(t *testing.T) {
	store := seededStore(t)

	tests := []struct {
		name       string
		store      storage.Store
		target     string
		wantStatus int
		wantBody   func(t *testing.T, body map[string]interface{})
	}{
		{
			name:       "found",
			store:      store,
			target:     Route + "?id=DYGS-1741944600000-k3j5h2m9q",
			wantStatus: http.StatusOK,
			wantBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "DYGS-1741944600000-k3j5h2m9q", body["application_id"])
				assert.Equal(t, "Somchai", body["first_name"])
				assert.Equal(t, "Delivery Driver", body["position"])
				assert.Equal(t, float64(2), body["experience_years"])
				assert.Equal(t, "pending", body["status"])
			},
		},
		{
			name:       "unknown id",
			store:      store,
			target:     Route + "?id=DYGS-0-000000000",
			wantStatus: http.StatusNotFound,
			wantBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Application not found", body["error"])
			},
		},
		{
			name:       "missing id",
			store:      store,
			target:     Route,
			wantStatus: http.StatusBadRequest,
			wantBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "MISSING_PARAMETER", body["code"])
			},
		},
		{
			name:       "storage failure",
			store:      failingStore{},
			target:     Route + "?id=DYGS-1-abc",
			wantStatus: http.StatusInternalServerError,
			wantBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "STORAGE_FAILED", body["code"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(t, tt.store, tt.target)
			assert.Equal(t, tt.wantStatus, w.Code)

			var body map[string]interface{}
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			tt.wantBody(t, body)
		})
	}
}
