package update

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/todo-api/internal/http/middlewarectx"
	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
	"github.com/magabrotheeeer/todo-api/internal/lib/sl"
	"github.com/magabrotheeeer/todo-api/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Update(ctx context.Context, ownerUID, id string, patch models.TodoPatch) (*models.Todo, error) {
	args := m.Called(ctx, ownerUID, id, patch)
	t, _ := args.Get(0).(*models.Todo)
	return t, args.Error(1)
}

func TestUpdateHandler(t *testing.T) {
	title := "Buy oat milk"

	tests := []struct {
		name           string
		body           string
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "title updated",
			body: `{"title":"Buy oat milk"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "u1", "t1", models.TodoPatch{Title: &title}).
					Return(&models.Todo{ID: "t1", Title: title, UserUID: "u1"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"title":"Buy oat milk"`,
		},
		{
			name: "not owner",
			body: `{"title":"Buy oat milk"}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "u1", "t1", mock.Anything).Return(nil, apperr.ErrForbidden)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name: "missing",
			body: `{}`,
			setupMock: func(m *MockService) {
				m.On("Update", mock.Anything, "u1", "t1", models.TodoPatch{}).Return(nil, apperr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "malformed json",
			body:           `[`,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodPut, "/api/v1/todos/t1", bytes.NewBufferString(tt.body))
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("id", "t1")
			ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
			req = req.WithContext(middlewarectx.WithIdentity(ctx, models.Identity{UserUID: "u1"}))

			w := httptest.NewRecorder()
			New(sl.NewDiscardLogger(), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			svc.AssertExpectations(t)
		})
	}
}
