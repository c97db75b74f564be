package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	domain "user-management-service/internal/domain/user"
	usecase "user-management-service/internal/usecase/user"
	apperrors "user-management-service/pkg/errors"
)

// MockUserUsecase is a mock implementation of user.Usecase
type MockUserUsecase struct {
	mock.Mock
}

func (m *MockUserUsecase) CreateUser(ctx context.Context, in usecase.CreateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUsecase) GetUserByID(ctx context.Context, id int64) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUsecase) GetAllUsers(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserUsecase) UpdateUser(ctx context.Context, in usecase.UpdateUserRequest) (*domain.User, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserUsecase) DeleteUser(ctx context.Context, id int64) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func setupTest(t *testing.T) (*gin.Engine, *MockUserUsecase) {
	gin.SetMode(gin.TestMode)
	mockUsecase := new(MockUserUsecase)
	handler := NewUserHandler(mockUsecase, zaptest.NewLogger(t))

	r := gin.New()
	r.GET("/api/users", handler.ListUsers)
	r.GET("/api/users/:id", handler.GetUser)
	return r, mockUsecase
}

func TestListUsers(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupTest(t)

		created := time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC)
		mockUsecase.On("GetAllUsers", mock.Anything).Return([]domain.User{
			{ID: 1, Name: "Ivan", Email: "ivan@email.com", Age: 23, CreatedAt: created},
			{ID: 2, Name: "Maria", Email: "maria@email.com", Age: 29, CreatedAt: created},
		}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp ListUsersResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(t, resp.Users, 2)
		assert.Equal(t, "Ivan", resp.Users[0].Name)
		assert.Equal(t, 29, resp.Users[1].Age)
		assert.True(t, created.Equal(resp.Users[0].CreatedAt))
	})

	t.Run("Empty", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("GetAllUsers", mock.Anything).Return([]domain.User{}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"users":[]}`, w.Body.String())
	})

	t.Run("Storage Error", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("GetAllUsers", mock.Anything).Return(nil, apperrors.NewStorageError("get all users", errors.New("dial tcp: refused")))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "refused")
	})
}

func TestGetUser(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("GetUserByID", mock.Anything, int64(1)).Return(&domain.User{ID: 1, Name: "Ivan", Email: "ivan@email.com", Age: 23}, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/1", nil))

		assert.Equal(t, http.StatusOK, w.Code)

		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(1), resp.ID)
		assert.Equal(t, "ivan@email.com", resp.Email)
	})

	t.Run("Not Found", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("GetUserByID", mock.Anything, int64(999)).Return(nil, nil)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/999", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)

		var resp ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "not_found", resp.Error)
		assert.Equal(t, "user with id 999 not found", resp.Message)
	})

	t.Run("Invalid ID", func(t *testing.T) {
		r, mockUsecase := setupTest(t)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockUsecase.AssertNotCalled(t, "GetUserByID", mock.Anything, mock.Anything)
	})

	t.Run("Storage Error", func(t *testing.T) {
		r, mockUsecase := setupTest(t)
		mockUsecase.On("GetUserByID", mock.Anything, int64(1)).Return(nil, apperrors.NewStorageError("get user", errors.New("boom")))

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/users/1", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
	})
}
