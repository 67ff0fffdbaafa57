package read

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/todo-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
	"github.com/magabrotheeeer/todo-api/internal/lib/sl"
	"github.com/magabrotheeeer/todo-api/internal/models"
)

// MockService реализует интерфейс read.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, ownerUID, id string) (*models.Todo, error) {
	args := m.Called(ctx, ownerUID, id)
	if res := args.Get(0); res != nil {
		return res.(*models.Todo), args.Error(1)
	}
	return nil, args.Error(1)
}

func TestReadHandler(t *testing.T) {
	tests := []struct {
		name           string
		url            string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "успешное чтение задачи",
			url:  "/api/v1/todos/t1",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "u1", "t1").Return(&models.Todo{ID: "t1", Title: "Buy milk", UserUID: "u1"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Buy milk"`,
		},
		{
			name: "чужая задача",
			url:  "/api/v1/todos/t2",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "u1", "t2").Return(nil, apperr.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "access denied",
		},
		{
			name: "задача не найдена",
			url:  "/api/v1/todos/abc",
			setupMock: func(m *MockService) {
				m.On("Get", mock.Anything, "u1", "abc").Return(nil, apperr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(sl.NewDiscardLogger(), mockService)

			req := httptest.NewRequest(http.MethodGet, tt.url, nil)
			// Устанавливаем URL params с помощью роутера chi
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", strings.TrimPrefix(tt.url, "/api/v1/todos/"))
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			ctx = middlewarectx.WithIdentity(ctx, models.Identity{UserUID: "u1", Role: models.RoleUser})
			req = req.WithContext(ctx)

			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}
