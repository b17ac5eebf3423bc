package users

import (
	"errors"
	"net/http"

	"aptbooking/internal/middleware"
	"aptbooking/internal/pkg/response"
	"aptbooking/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler serves the caller's own profile.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	userGroup := protected.Group("/users")
	{
		userGroup.GET("", h.GetMe)
		userGroup.PATCH("", h.UpdateMe)
		userGroup.DELETE("", h.DeleteMe)
	}
}

// GetMe returns the caller with their leased apartments.
func (h *Handler) GetMe(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	user, err := h.service.FindByID(c.Request.Context(), id.ID)
	if err != nil {
		RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

func (h *Handler) UpdateMe(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}

	user, err := h.service.Update(c.Request.Context(), id.ID, req.ToUpdate())
	if err != nil {
		RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, user)
}

func (h *Handler) DeleteMe(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	if err := h.service.Remove(c.Request.Context(), id.ID); err != nil {
		RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// RespondError maps service errors onto the HTTP error envelope.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User does not exist")
	case errors.Is(err, ErrAlreadyExists):
		response.Error(c, http.StatusConflict, "PHONE_EXISTS", "User with this phone already exists")
	case errors.Is(err, ErrInvalidRole):
		response.Error(c, http.StatusBadRequest, "INVALID_ROLE", "Invalid role")
	case errors.Is(err, ErrNothingToUpdate):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Nothing to update")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
