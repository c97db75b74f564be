package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "user-management-service/internal/domain/user"
	"user-management-service/internal/usecase/user"
	apperrors "user-management-service/pkg/errors"
	"user-management-service/pkg/logger"
)

// UserHandler serves the read-only user listing endpoints
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Age       int       `json:"age"`
	CreatedAt time.Time `json:"created_at"`
}

// ListUsersResponse represents the HTTP response for listing users
type ListUsersResponse struct {
	Users []UserResponse `json:"users"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// ListUsers handles GET /api/users
func (h *UserHandler) ListUsers(c *gin.Context) {
	ctx := c.Request.Context()

	users, err := h.uc.GetAllUsers(ctx)
	if err != nil {
		logger.WithContext(ctx, h.log).Error("ListUsers failed", zap.Error(err))
		h.handleError(c, err)
		return
	}

	resp := ListUsersResponse{Users: make([]UserResponse, len(users))}
	for i := range users {
		resp.Users[i] = toResponse(&users[i])
	}

	c.JSON(http.StatusOK, resp)
}

// GetUser handles GET /api/users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	ctx := c.Request.Context()

	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logger.WithContext(ctx, h.log).Warn("Invalid user ID", zap.String("id", idStr), zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   "invalid_id",
			Message: "User ID must be a valid number",
		})
		return
	}

	u, err := h.uc.GetUserByID(ctx, id)
	if err != nil {
		logger.WithContext(ctx, h.log).Error("GetUser failed", zap.Int64("id", id), zap.Error(err))
		h.handleError(c, err)
		return
	}
	if u == nil {
		h.handleError(c, apperrors.NewNotFoundError("user", "user with id "+idStr+" not found"))
		return
	}

	c.JSON(http.StatusOK, toResponse(u))
}

func toResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Age:       u.Age,
		CreatedAt: u.CreatedAt,
	}
}

// handleError converts usecase errors to appropriate HTTP responses.
// Internal details of storage failures are not exposed.
func (h *UserHandler) handleError(c *gin.Context, err error) {
	status := apperrors.HTTPStatus(err)

	switch status {
	case http.StatusNotFound:
		c.JSON(status, ErrorResponse{Error: "not_found", Message: err.Error()})
	case http.StatusBadRequest:
		c.JSON(status, ErrorResponse{Error: "invalid_input", Message: err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Error:   "internal_error",
			Message: "An internal error occurred",
		})
	}
}
