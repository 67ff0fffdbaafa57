package profile

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

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

func (m *MockService) Profile(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	u, _ := args.Get(0).(*models.User)
	return u, args.Error(1)
}

func TestProfileHandler(t *testing.T) {
	tests := []struct {
		name           string
		ctx            context.Context
		setupMock      func(m *MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "own profile",
			ctx:  middlewarectx.WithIdentity(context.Background(), models.Identity{UserUID: "u1", Role: models.RoleUser}),
			setupMock: func(m *MockService) {
				m.On("Profile", mock.Anything, "u1").
					Return(&models.User{UUID: "u1", Name: "Ann", PasswordHash: "secret-hash"}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"name":"Ann"`,
		},
		{
			name: "account gone",
			ctx:  middlewarectx.WithIdentity(context.Background(), models.Identity{UserUID: "u1"}),
			setupMock: func(m *MockService) {
				m.On("Profile", mock.Anything, "u1").Return(nil, apperr.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "not found",
		},
		{
			name:           "no identity",
			ctx:            context.Background(),
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   "authentication required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/users/fetchSingleUser", nil).WithContext(tt.ctx)
			w := httptest.NewRecorder()
			New(sl.NewDiscardLogger(), svc).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)
			assert.NotContains(t, w.Body.String(), "secret-hash")
			svc.AssertExpectations(t)
		})
	}
}
