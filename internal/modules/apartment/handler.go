package apartment

import (
	"errors"
	"net/http"

	"aptbooking/internal/pkg/pagination"
	"aptbooking/internal/pkg/response"
	"aptbooking/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler serves the public, read-only catalogue.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterPublicRoutes(r *gin.RouterGroup) {
	g := r.Group("/apartments")
	{
		g.GET("", h.List)
		g.GET("/:id", h.Get)
	}
}

func (h *Handler) List(c *gin.Context) {
	var q pagination.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid pagination", validator.Details(err))
		return
	}
	q = q.Normalize()

	items, err := h.service.FindAll(c.Request.Context(), q.Take, q.Skip)
	if err != nil {
		RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"items": items,
		"take":  q.Take,
		"skip":  q.Skip,
	})
}

func (h *Handler) Get(c *gin.Context) {
	a, err := h.service.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// RespondError maps registry errors onto the HTTP error envelope.
func RespondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrApartmentNotFound):
		response.Error(c, http.StatusNotFound, "APARTMENT_NOT_FOUND", "Apartment does not exist")
	case errors.Is(err, ErrAlreadyExists):
		response.Error(c, http.StatusConflict, "APARTMENT_EXISTS", "Apartment with this sequence number already exists")
	case errors.Is(err, ErrConcurrentUpdate):
		response.Error(c, http.StatusConflict, "CONCURRENT_UPDATE", "Apartment was modified concurrently, retry the request")
	case errors.Is(err, ErrNothingToUpdate):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Nothing to update")
	default:
		_ = c.Error(err)
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Internal server error")
	}
}
