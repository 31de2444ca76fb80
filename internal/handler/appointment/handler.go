package appointment

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/beautycare/scheduling-api/internal/model"
	"github.com/beautycare/scheduling-api/internal/service/appointment"
	apperrors "github.com/beautycare/scheduling-api/pkg/errors"
	"github.com/beautycare/scheduling-api/pkg/httputil"
)

type Handler struct {
	service *appointment.Service
}

func NewHandler(service *appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("", h.ListAppointments)
		appointments.GET("/search", h.ListAppointments)
		appointments.POST("", h.CreateAppointment)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)

		appointments.GET("/:id/services", h.ListLines)
		appointments.PUT("/:id/services/bulk", h.ReplaceLines)
		appointments.POST("/:id/services", h.AddLine)
		appointments.POST("/:id/services/:serviceId", h.AddLineByPath)
		appointments.DELETE("/:id/services/:serviceId", h.RemoveLine)
		appointments.GET("/:id/total", h.GetTotal)
	}

	// Cross-appointment view of the raw service lines.
	r.GET("/appointment-services", h.ListAllLines)
}

type listQuery struct {
	ClientID *int    `form:"client_id"`
	StaffID  *int    `form:"staff_id"`
	Status   *string `form:"status" binding:"omitempty,appointment_status"`
	From     *string `form:"from"`
	To       *string `form:"to"`
}

func (h *Handler) ListAppointments(c *gin.Context) {
	var q listQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid query parameters", err))
		return
	}

	filters := &model.AppointmentFilters{
		ClientID: q.ClientID,
		StaffID:  q.StaffID,
		Status:   q.Status,
	}

	var err error
	if filters.From, err = parseDate(q.From); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid from date", err))
		return
	}
	if filters.To, err = parseDate(q.To); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid to date", err))
		return
	}

	appointments, err := h.service.List(c.Request.Context(), filters)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	apt, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
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

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.CreateAppointmentRequest
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

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, ok := pathID(c, "id")
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

func (h *Handler) ListLines(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var serviceID *int
	if raw := c.Query("service_id"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid service ID", err))
			return
		}
		serviceID = &v
	}

	lines, err := h.service.Lines(c.Request.Context(), id, serviceID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, lines)
}

type replaceLinesRequest struct {
	ServiceIDs []int `json:"service_ids" binding:"required"`
}

func (h *Handler) ReplaceLines(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req replaceLinesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	total, err := h.service.ReplaceLines(c.Request.Context(), id, req.ServiceIDs)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, httputil.AffectedResult{Affected: total})
}

func (h *Handler) AddLine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req model.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid request body", err))
		return
	}

	result, err := h.service.AddLine(c.Request.Context(), id, &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"result": result})
}

// AddLineByPath attaches the service named in the path with default
// quantity and price.
func (h *Handler) AddLineByPath(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}

	result, err := h.service.AddLine(c.Request.Context(), id, &model.AddLineRequest{ServiceID: serviceID})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"result": result})
}

func (h *Handler) ListAllLines(c *gin.Context) {
	var appointmentID, serviceID *int
	if v := c.Query("appointment_id"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid appointment_id", err))
			return
		}
		appointmentID = &n
	}
	if v := c.Query("service_id"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			httputil.RespondWithError(c, apperrors.BadRequest("invalid service_id", err))
			return
		}
		serviceID = &n
	}

	lines, err := h.service.BasicLines(c.Request.Context(), appointmentID, serviceID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, lines)
}

func (h *Handler) RemoveLine(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	serviceID, ok := pathID(c, "serviceId")
	if !ok {
		return
	}

	affected, err := h.service.RemoveLine(c.Request.Context(), id, serviceID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, httputil.AffectedResult{Affected: affected})
}

func (h *Handler) GetTotal(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	total, err := h.service.Total(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, gin.H{"appointment_id": id, "total": total})
}

func pathID(c *gin.Context, param string) (int, bool) {
	id, err := strconv.Atoi(c.Param(param))
	if err != nil || id <= 0 {
		httputil.RespondWithError(c, apperrors.BadRequest("invalid "+param, err))
		return 0, false
	}
	return id, true
}

func parseDate(raw *string) (*time.Time, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		t, err = time.Parse("2006-01-02", *raw)
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
