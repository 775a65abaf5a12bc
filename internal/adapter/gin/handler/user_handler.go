package handler

import (
	"errors"
	"net/http"
	"strconv"

	"user-directory/internal/usecase/user"
	apperrors "user-directory/pkg/errors"
	"user-directory/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Messages returned by the health probe and create endpoints.
const (
	HealthMessage  = "Backend server is running"
	CreatedMessage = "User added successfully"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Service
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Service, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user
type CreateUserRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CreateUserResponse represents the HTTP response after a user is created
type CreateUserResponse struct {
	Message string `json:"message"`
	ID      int64  `json:"id"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ListUsersResponse represents one page of the user listing
type ListUsersResponse struct {
	Users      []UserResponse `json:"users"`
	NextCursor *string        `json:"nextCursor"`
	HasMore    bool           `json:"hasMore"`
	Count      int            `json:"count"`
}

// SearchUsersResponse represents the prefix search results
type SearchUsersResponse struct {
	Results []UserResponse `json:"results"`
	Count   int            `json:"count"`
}

// MessageResponse carries a plain status message
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// Health handles GET /
func (h *UserHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, MessageResponse{Message: HealthMessage})
}

// CreateUser handles POST /users
func (h *UserHandler) CreateUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn("invalid create user request", zap.Error(err))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   apperrors.CodeValidation,
			Message: "request body must be a JSON object with name and email",
		})
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, CreateUserResponse{
		Message: CreatedMessage,
		ID:      resp.ID,
	})
}

// GetUser handles GET /users/:id
func (h *UserHandler) GetUser(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Warn("invalid user id", zap.String("id", idStr))
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error:   apperrors.CodeInvalidID,
			Message: "User ID must be a valid number",
		})
		return
	}

	resp, err := h.uc.GetUser(c.Request.Context(), user.GetUserRequest{ID: id})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:    resp.ID,
		Name:  resp.Name,
		Email: resp.Email,
	})
}

// ListUsers handles GET /users
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context(), user.ListUsersRequest{
		Cursor: c.Query("cursor"),
		Limit:  parseLimit(c.Query("limit")),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, ListUsersResponse{
		Users:      toResponses(resp.Users),
		NextCursor: resp.NextCursor,
		HasMore:    resp.HasMore,
		Count:      resp.Count,
	})
}

// SearchUsers handles GET /search
func (h *UserHandler) SearchUsers(c *gin.Context) {
	resp, err := h.uc.SearchUsers(c.Request.Context(), user.SearchUsersRequest{
		Query: c.Query("q"),
		Limit: parseLimit(c.Query("limit")),
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, SearchUsersResponse{
		Results: toResponses(resp.Results),
		Count:   resp.Count,
	})
}

// parseLimit returns 0 for a missing or non-numeric limit so the usecase applies its default.
// Out-of-range numbers saturate so oversized limits still clamp to the maximum.
func parseLimit(raw string) int64 {
	limit, err := strconv.ParseInt(raw, 10, 64)
	if errors.Is(err, strconv.ErrRange) {
		return limit
	}
	if err != nil {
		return 0
	}
	return limit
}

func toResponses(users []user.User) []UserResponse {
	out := make([]UserResponse, len(users))
	for i, u := range users {
		out[i] = UserResponse{
			ID:    u.ID,
			Name:  u.Name,
			Email: u.Email,
		}
	}
	return out
}

// handleError converts usecase errors to appropriate HTTP responses
func (h *UserHandler) handleError(c *gin.Context, err error) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var coded apperrors.StatusCoder
	if errors.As(err, &coded) {
		if coded.StatusCode() >= http.StatusInternalServerError {
			log.Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		}
		c.JSON(coded.StatusCode(), ErrorResponse{
			Error:   coded.Code(),
			Message: coded.Error(),
		})
		return
	}

	log.Error("unclassified error", zap.String("path", c.FullPath()), zap.Error(err))
	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:   apperrors.CodeInternal,
		Message: err.Error(),
	})
}
