package admin

import (
	"net/http"

	"aptbooking/internal/middleware"
	"aptbooking/internal/modules/apartment"
	"aptbooking/internal/modules/booking"
	"aptbooking/internal/modules/users"
	"aptbooking/internal/pkg/pagination"
	"aptbooking/internal/pkg/response"
	"aptbooking/internal/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler serves /admin. The group it is mounted on must already run
// JWTAuth and RequireRole(admin).
type Handler struct {
	users      UserManager
	apartments ApartmentManager
	leases     LeaseReleaser
	log        *zap.Logger
}

func NewHandler(users UserManager, apartments ApartmentManager, leases LeaseReleaser, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{
		users:      users,
		apartments: apartments,
		leases:     leases,
		log:        log,
	}
}

func (h *Handler) RegisterRoutes(admin *gin.RouterGroup) {
	// users
	admin.POST("/users", h.CreateUser)
	admin.GET("/users", h.ListUsers)
	admin.GET("/users/:userId", h.GetUser)
	admin.PATCH("/users/:userId", h.UpdateUser)
	admin.DELETE("/users/:userId", h.DeleteUser)

	// apartments
	admin.POST("/apartments", h.CreateApartment)
	admin.GET("/apartments", h.ListApartments)
	admin.GET("/apartments/:id", h.GetApartment)
	admin.PATCH("/apartments/:id", h.UpdateApartment)
	admin.DELETE("/apartments/:id", h.DeleteApartment)
	admin.DELETE("/apartments/:id/reservation", h.ReleaseApartment)
}

func (h *Handler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.users.Create(c.Request.Context(), req.CreateUserRequest, req.role())
	if err != nil {
		users.RespondError(c, err)
		return
	}

	h.audit(c, "admin_user_created", zap.String("user_id", u.ID), zap.String("role", string(u.Role)))
	response.Success(c, http.StatusCreated, u)
}

func (h *Handler) ListUsers(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}

	list, err := h.users.FindAll(c.Request.Context(), q.Take, q.Skip)
	if err != nil {
		users.RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": list, "take": q.Take, "skip": q.Skip})
}

func (h *Handler) GetUser(c *gin.Context) {
	u, err := h.users.FindByID(c.Request.Context(), c.Param("userId"))
	if err != nil {
		users.RespondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) UpdateUser(c *gin.Context) {
	var req users.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	u, err := h.users.Update(c.Request.Context(), c.Param("userId"), req)
	if err != nil {
		users.RespondError(c, err)
		return
	}

	h.audit(c, "admin_user_updated", zap.String("user_id", u.ID))
	response.Success(c, http.StatusOK, u)
}

func (h *Handler) DeleteUser(c *gin.Context) {
	id := c.Param("userId")
	if err := h.users.Remove(c.Request.Context(), id); err != nil {
		users.RespondError(c, err)
		return
	}

	h.audit(c, "admin_user_deleted", zap.String("user_id", id))
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

func (h *Handler) CreateApartment(c *gin.Context) {
	var req apartment.CreateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	a, err := h.apartments.Create(c.Request.Context(), req)
	if err != nil {
		apartment.RespondError(c, err)
		return
	}

	h.audit(c, "admin_apartment_created", zap.String("apartment_id", a.ID), zap.Int("sequence_number", a.SequenceNumber))
	response.Success(c, http.StatusCreated, a)
}

func (h *Handler) ListApartments(c *gin.Context) {
	q, ok := bindPage(c)
	if !ok {
		return
	}

	list, err := h.apartments.FindAll(c.Request.Context(), q.Take, q.Skip)
	if err != nil {
		apartment.RespondError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"items": list, "take": q.Take, "skip": q.Skip})
}

func (h *Handler) GetApartment(c *gin.Context) {
	a, err := h.apartments.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		apartment.RespondError(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) UpdateApartment(c *gin.Context) {
	var req apartment.UpdateApartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	a, err := h.apartments.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		apartment.RespondError(c, err)
		return
	}

	h.audit(c, "admin_apartment_updated", zap.String("apartment_id", a.ID))
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) DeleteApartment(c *gin.Context) {
	id := c.Param("id")
	if err := h.apartments.Remove(c.Request.Context(), id); err != nil {
		apartment.RespondError(c, err)
		return
	}

	h.audit(c, "admin_apartment_deleted", zap.String("apartment_id", id))
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// ReleaseApartment ends whatever lease the apartment carries.
func (h *Handler) ReleaseApartment(c *gin.Context) {
	a, err := h.leases.Release(c.Request.Context(), c.Param("id"))
	if err != nil {
		booking.RespondError(c, err)
		return
	}

	h.audit(c, "admin_lease_released", zap.String("apartment_id", a.ID))
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) audit(c *gin.Context, msg string, fields ...zap.Field) {
	if id, ok := middleware.IdentityFrom(c); ok {
		fields = append(fields, zap.String("admin_id", id.ID))
	}
	h.log.Info(msg, fields...)
}

func bindPage(c *gin.Context) (pagination.Query, bool) {
	var q pagination.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		bindError(c, err)
		return q, false
	}
	return q.Normalize(), true
}

func bindError(c *gin.Context, err error) {
	response.ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request", validator.Details(err))
}
