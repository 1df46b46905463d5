package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	domain "github.com/AutoRepairsHQ/shop-manager/internal/domain/appointment"
	"github.com/AutoRepairsHQ/shop-manager/internal/httperr"
	"github.com/AutoRepairsHQ/shop-manager/internal/httpresp"
	"github.com/AutoRepairsHQ/shop-manager/internal/models"
	"github.com/AutoRepairsHQ/shop-manager/internal/timezone"
	uc "github.com/AutoRepairsHQ/shop-manager/internal/usecase/appointment"
)

// ======================================================
// APPOINTMENT HANDLER
// ======================================================

type AppointmentHandler struct {
	repo       domain.Repository
	create     *uc.CreateAppointment
	listByDate *uc.ListAppointmentsByDate
	assign     *uc.AssignTechnician
	start      *uc.StartWork
	complete   *uc.CompleteWork
	cancel     *uc.CancelAppointment
}

func NewAppointmentHandler(
	repo domain.Repository,
	create *uc.CreateAppointment,
	listByDate *uc.ListAppointmentsByDate,
	assign *uc.AssignTechnician,
	start *uc.StartWork,
	complete *uc.CompleteWork,
	cancel *uc.CancelAppointment,
) *AppointmentHandler {
	return &AppointmentHandler{
		repo:       repo,
		create:     create,
		listByDate: listByDate,
		assign:     assign,
		start:      start,
		complete:   complete,
		cancel:     cancel,
	}
}

// --------- Requests ---------

type CreateAppointmentRequest struct {
	VehicleID         uint   `json:"vehicle_id" binding:"required"`
	ReportedProblemID *uint  `json:"reported_problem_id"`
	Description       string `json:"description"`
	Date              string `json:"date" binding:"required"`
	Time              string `json:"time" binding:"required"`
}

type AssignTechnicianRequest struct {
	TechnicianID uint `json:"technician_id" binding:"required"`
}

// --------- Handlers ---------

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Invalid request body.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), uc.CreateAppointmentInput{
		VehicleID:         req.VehicleID,
		ReportedProblemID: req.ReportedProblemID,
		Description:       req.Description,
		Date:              req.Date,
		Time:              req.Time,
	})
	if err != nil {
		switch {
		case httperr.IsBusiness(err, "vehicle_not_found"):
			httperr.BadRequest(c, "vehicle_not_found", "Vehicle not found.")
		case httperr.IsBusiness(err, "invalid_date_or_time"):
			httperr.BadRequest(c, "invalid_date_or_time", "Date must be YYYY-MM-DD and time HH:MM.")
		case httperr.IsBusiness(err, "date_in_past"):
			httperr.BadRequest(c, "date_in_past", "Appointment date is in the past.")
		case httperr.IsBusiness(err, "problem_not_found"):
			httperr.BadRequest(c, "problem_not_found", "Reported problem not found.")
		case httperr.IsBusiness(err, "problem_vehicle_mismatch"):
			httperr.BadRequest(c, "problem_vehicle_mismatch", "Reported problem belongs to another vehicle.")
		default:
			httperr.Internal(c, "failed_to_create_appointment", "Failed to create appointment.")
		}
		return
	}

	httpresp.Created(c, ap)
}

// ListByDate reports the schedule for one day. Defaults to today in the
// shop's timezone when no date query parameter is given.
func (h *AppointmentHandler) ListByDate(c *gin.Context) {
	day := timezone.Now()

	if raw := c.Query("date"); raw != "" {
		parsed, err := time.ParseInLocation(
			"2006-01-02", raw,
			timezone.Location(timezone.DefaultTimezone),
		)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Date must be YYYY-MM-DD.")
			return
		}
		day = parsed
	}

	items, err := h.listByDate.Execute(c.Request.Context(), day)
	if err != nil {
		httperr.Internal(c, "failed_to_list_appointments", "Failed to list appointments.")
		return
	}

	httpresp.List(c, items)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	ap, err := h.repo.GetAppointmentByID(c.Request.Context(), id)
	if errors.Is(err, domain.ErrNotFound) {
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
		return
	}
	if err != nil {
		httperr.Internal(c, "failed_to_get_appointment", "Failed to load appointment.")
		return
	}

	httpresp.OK(c, ap)
}

// AssignTechnician puts an appointment on a technician's plate, subject
// to the capacity limit.
func (h *AppointmentHandler) AssignTechnician(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req AssignTechnicianRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "technician_id is required.")
		return
	}

	result, err := h.assign.Execute(c.Request.Context(), id, req.TechnicianID)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	ap := result.Appointment
	httpresp.OK(c, gin.H{
		"message":     "Technician assigned successfully.",
		"appointment": ap,
		"technician": gin.H{
			"id":   result.Technician.ID,
			"name": result.Technician.Name,
			"role": result.Technician.Role,
		},
		"assignment_details": gin.H{
			"assigned_at":     ap.AssignedAt,
			"status":          ap.Status,
			"previous_status": string(result.PreviousStatus),
		},
	})
}

func (h *AppointmentHandler) StartWork(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.start.Execute(c.Request.Context(), id)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	ap := result.Appointment
	httpresp.OK(c, gin.H{
		"message":     "Work started.",
		"appointment": ap,
		"work_details": gin.H{
			"started_at":      ap.StartedAt,
			"status":          ap.Status,
			"previous_status": string(result.PreviousStatus),
			"technician":      technicianName(ap),
		},
	})
}

func (h *AppointmentHandler) CompleteWork(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.complete.Execute(c.Request.Context(), id)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	ap := result.Appointment
	httpresp.OK(c, gin.H{
		"message":     "Work completed.",
		"appointment": ap,
		"completion_details": gin.H{
			"completed_at":    ap.CompletedAt,
			"status":          ap.Status,
			"previous_status": string(result.PreviousStatus),
			"technician":      technicianName(ap),
			"total_work_time": totalWorkTime(ap),
		},
	})
}

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	result, err := h.cancel.Execute(c.Request.Context(), id)
	if err != nil {
		writeWorkflowError(c, err)
		return
	}

	ap := result.Appointment
	httpresp.OK(c, gin.H{
		"message":     "Appointment cancelled.",
		"appointment": ap,
		"cancellation_details": gin.H{
			"cancelled_at":    ap.CancelledAt,
			"status":          ap.Status,
			"previous_status": string(result.PreviousStatus),
		},
	})
}

// --------- Helpers ---------

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "Invalid appointment id.")
		return 0, false
	}
	return uint(id), true
}

// writeWorkflowError maps workflow failures onto HTTP responses. Capacity
// rejections carry the technician's current and maximum workload so the
// caller can surface them.
func writeWorkflowError(c *gin.Context, err error) {
	if ce, ok := httperr.AsCapacityExceeded(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code":       "technician_at_capacity",
			"message":          "Technician already has the maximum number of active appointments.",
			"current_workload": ce.Current,
			"max_workload":     ce.Limit,
		})
		return
	}

	if ie, ok := httperr.AsInvalidState(err); ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"error_code":      "invalid_state_transition",
			"message":         "Appointment is not in a valid state for this operation.",
			"current_status":  ie.Current,
			"required_status": ie.Required,
		})
		return
	}

	switch {
	case httperr.IsBusiness(err, "appointment_not_found"):
		httperr.NotFound(c, "appointment_not_found", "Appointment not found.")
	case httperr.IsBusiness(err, "technician_not_found"):
		httperr.NotFound(c, "technician_not_found", "Technician not found.")
	case httperr.IsBusiness(err, "no_technician_assigned"):
		httperr.BadRequest(c, "no_technician_assigned", "Appointment has no technician assigned.")
	default:
		httperr.Internal(c, "workflow_error", "Failed to process appointment.")
	}
}

func technicianName(ap *models.Appointment) string {
	if ap.AssignedTechnician != nil {
		return ap.AssignedTechnician.Name
	}
	return ""
}

// totalWorkTime reports elapsed time between start and completion in a
// human-readable form, e.g. "1h32m".
func totalWorkTime(ap *models.Appointment) string {
	if ap.StartedAt == nil || ap.CompletedAt == nil {
		return ""
	}
	d := ap.CompletedAt.Sub(*ap.StartedAt).Round(time.Minute)

	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h == 0 {
		return fmt.Sprintf("%dm", m)
	}
	return fmt.Sprintf("%dh%dm", h, m)
}
