package staff

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/service/staff"
	apperrors "github.com/beautycare/scheduling-api/pkg/errors"
	"github.com/beautycare/scheduling-api/pkg/httputil"
)

type Handler struct {
	service *staff.Service
}

func NewHandler(service *staff.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	group := r.Group("/staff")
	{
		group.GET("", h.ListStaff)
		group.POST("", h.CreateStaff)
		group.GET("/:id", h.GetStaff)
		group.PUT("/:id", h.UpdateStaff)
		group.DELETE("/:id", h.DeleteStaff)
	}
}

func (h *Handler) ListStaff(c *gin.Context) {
	filters := &model.StaffFilters{}
	if v := c.Query("role"); v != "" {
		filters.Role = &v
	}
	if v := c.Query("active"); v != "" {
		active, err := strconv.ParseBool(v)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid active flag", err))
			return
		}
		filters.Active = &active
	}

	staff, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, staff)
}

func (h *Handler) GetStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	member, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, member)
}

func (h *Handler) CreateStaff(c *gin.Context) {
	var req model.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	id, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, httputil.IdentityResult{ID: id})
}

func (h *Handler) UpdateStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	var req model.CreateStaffRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	affected, err := h.service.Update(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, httputil.AffectedResult{Affected: affected})
}

func (h *Handler) DeleteStaff(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}

	affected, err := h.service.Delete(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, httputil.AffectedResult{Affected: affected})
}

func pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid staff ID", err))
		return 0, false
	}
	return id, true
}
