package user_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/todo-api/internal/lib/apperr"
	"github.com/magabrotheeeer/todo-api/internal/models"
	"github.com/magabrotheeeer/todo-api/internal/services/user"
)

type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) ListUsers(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *UserRepoMock) CountUsers(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, userUID string) (*models.User, error) {
	args := m.Called(ctx, userUID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestUserService_List(t *testing.T) {
	tests := []struct {
		name       string
		limit      int
		offset     int
		wantLimit  int
		wantOffset int
	}{
		{name: "default limit", limit: 0, offset: 0, wantLimit: user.DefaultLimit, wantOffset: 0},
		{name: "explicit page", limit: 5, offset: 10, wantLimit: 5, wantOffset: 10},
		{name: "limit capped", limit: 1000, offset: 0, wantLimit: user.MaxLimit, wantOffset: 0},
		{name: "negative offset", limit: 10, offset: -3, wantLimit: 10, wantOffset: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			users := []*models.User{{UUID: "u1"}, {UUID: "u2"}}
			repo.On("ListUsers", mock.Anything, tt.wantLimit, tt.wantOffset).Return(users, nil)
			repo.On("CountUsers", mock.Anything).Return(42, nil)

			page, err := user.NewUserService(repo).List(context.Background(), tt.limit, tt.offset)
			require.NoError(t, err)
			assert.Equal(t, users, page.Users)
			assert.Equal(t, 42, page.Total)
			assert.Equal(t, tt.wantLimit, page.Limit)
			assert.Equal(t, tt.wantOffset, page.Offset)
			repo.AssertExpectations(t)
		})
	}
}

func TestUserService_List_StoreError(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("ListUsers", mock.Anything, user.DefaultLimit, 0).Return(nil, errors.New("db down"))

	_, err := user.NewUserService(repo).List(context.Background(), 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user.List")
	repo.AssertNotCalled(t, "CountUsers", mock.Anything)
}

func TestUserService_Profile(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("GetUser", mock.Anything, "u1").Return(&models.User{UUID: "u1", Name: "Ann"}, nil)
	repo.On("GetUser", mock.Anything, "gone").Return(nil, apperr.ErrNotFound)
	svc := user.NewUserService(repo)

	u, err := svc.Profile(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ann", u.Name)

	_, err = svc.Profile(context.Background(), "gone")
	assert.ErrorIs(t, err, apperr.ErrNotFound)
}
