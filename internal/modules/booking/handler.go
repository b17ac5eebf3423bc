package booking

import (
	"errors"
	"net/http"

	"aptbooking/internal/middleware"
	"aptbooking/internal/pkg/response"
	"aptbooking/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes mounts /booking. Any verified identity may use it.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/booking")
	{
		g.GET("", h.FindMy)
		g.POST("/:apartmentId", h.Reserve)
		g.DELETE("/:apartmentId", h.Unreserve)
	}
}

func (h *Handler) FindMy(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	items, err := h.service.FindMyReservations(c.Request.Context(), id.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, items)
}

func (h *Handler) Reserve(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	var req ReserveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body", validator.Details(err))
		return
	}
	start, end, err := req.Window()
	if err != nil {
		RespondError(c, err)
		return
	}

	a, err := h.service.Reserve(c.Request.Context(), c.Param("apartmentId"), id.ID, start, end)
	if err != nil {
		RespondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) Unreserve(c *gin.Context) {
	id, ok := middleware.IdentityFrom(c)
	if !ok {
		response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Unauthorized")
		return
	}

	a, err := h.service.Unreserve(c.Request.Context(), c.Param("apartmentId"), id.ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// RespondError maps engine errors onto the HTTP error envelope.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrApartmentNotFound):
		response.Error(c, http.StatusNotFound, "APARTMENT_NOT_FOUND", "Apartment does not exist")
	case errors.Is(err, ErrUserNotFound):
		response.Error(c, http.StatusNotFound, "USER_NOT_FOUND", "User does not exist")
	case errors.Is(err, ErrAlreadyReserved):
		response.Error(c, http.StatusConflict, "ALREADY_RESERVED", "Apartment is already reserved")
	case errors.Is(err, ErrNotReserved):
		response.Error(c, http.StatusConflict, "NOT_RESERVED", "Apartment is not reserved")
	case errors.Is(err, ErrConcurrentUpdate):
		response.Error(c, http.StatusConflict, "CONCURRENT_UPDATE", "Apartment was modified concurrently, retry the request")
	case errors.Is(err, ErrNotOwner):
		response.Error(c, http.StatusForbidden, "NOT_OWNER", "You are not the owner of the apartment")
	case errors.Is(err, ErrInvalidDateRange):
		response.Error(c, http.StatusBadRequest, "INVALID_DATE_RANGE", "Invalid date range")
	case errors.Is(err, ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Dates must be YYYY-MM-DD or RFC 3339")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
