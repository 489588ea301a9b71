package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	schedulingapp "github.com/shopdesk/backend/internal/application/scheduling"
)

// AppointmentHandler handles appointment booking endpoints
type AppointmentHandler struct {
	BaseHandler
	appointmentService *schedulingapp.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler
func NewAppointmentHandler(appointmentService *schedulingapp.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{appointmentService: appointmentService}
}

// CreateAppointmentRequest represents a booking request
type CreateAppointmentRequest struct {
	StaffID         string    `json:"staff" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	ClientName      string    `json:"client_name" binding:"required,min=1,max=200" example:"Jane Doe"`
	ClientEmail     string    `json:"client_email" binding:"omitempty,email,max=254" example:"jane@example.com"`
	ClientPhone     string    `json:"client_phone" binding:"required,max=20" example:"555-0100"`
	StartTime       time.Time `json:"start_time" binding:"required" example:"2026-03-14T10:30:00Z"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,min=1,max=1440" example:"45"`
	Notes           string    `json:"notes" binding:"max=500"`
}

// UpdateAppointmentRequest represents a partial update of a booking
type UpdateAppointmentRequest struct {
	StaffID         *string    `json:"staff" binding:"omitempty,uuid"`
	ClientName      *string    `json:"client_name" binding:"omitempty,min=1,max=200"`
	ClientEmail     *string    `json:"client_email" binding:"omitempty,email,max=254"`
	ClientPhone     *string    `json:"client_phone" binding:"omitempty,min=1,max=20"`
	StartTime       *time.Time `json:"start_time"`
	DurationMinutes *int       `json:"duration_minutes" binding:"omitempty,min=1,max=1440"`
	Notes           *string    `json:"notes" binding:"omitempty,max=500"`
	Status          *string    `json:"status" binding:"omitempty,oneof=Scheduled Completed Cancelled No-Show" example:"Completed"`
}

// ListAppointmentsQuery holds the appointment filters
type ListAppointmentsQuery struct {
	Status   string `form:"status" binding:"omitempty,oneof=Scheduled Completed Cancelled No-Show"`
	StaffID  string `form:"staff" binding:"omitempty,uuid"`
	Date     string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List godoc
// @Summary      List appointments
// @Description  List appointments newest first
// @Tags         appointments
// @Produce      json
// @Param        status query string false "Status" Enums(Scheduled, Completed, Cancelled, No-Show)
// @Param        staff query string false "Staff ID" format(uuid)
// @Param        date query string false "Calendar day (YYYY-MM-DD)"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]schedulingapp.AppointmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /appointments [get]
func (h *AppointmentHandler) List(c *gin.Context) {
	var query ListAppointmentsQuery
	if !h.BindQuery(c, &query) {
		return
	}

	filter := schedulingapp.AppointmentListFilter{
		Status:   query.Status,
		Date:     query.Date,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
	if query.StaffID != "" {
		staffID := uuid.MustParse(query.StaffID)
		filter.StaffID = &staffID
	}

	appointments, err := h.appointmentService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appointments)
}

// GetByID godoc
// @Summary      Get appointment
// @Tags         appointments
// @Produce      json
// @Param        id path string true "Appointment ID" format(uuid)
// @Success      200 {object} dto.Response{data=schedulingapp.AppointmentResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /appointments/{id} [get]
func (h *AppointmentHandler) GetByID(c *gin.Context) {
	appointmentID, ok := h.ParamUUID(c, "id", "appointment")
	if !ok {
		return
	}

	appointment, err := h.appointmentService.GetByID(c.Request.Context(), appointmentID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appointment)
}

// Create godoc
// @Summary      Book appointment
// @Description  Book an appointment with an active staff member
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        request body CreateAppointmentRequest true "Booking"
// @Success      201 {object} dto.Response{data=schedulingapp.AppointmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /appointments [post]
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req CreateAppointmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	appointment, err := h.appointmentService.Create(c.Request.Context(), schedulingapp.CreateAppointmentRequest{
		StaffID:         uuid.MustParse(req.StaffID),
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, appointment)
}

// Update godoc
// @Summary      Update appointment
// @Description  Reschedule a booking or record its outcome
// @Tags         appointments
// @Accept       json
// @Produce      json
// @Param        id path string true "Appointment ID" format(uuid)
// @Param        request body UpdateAppointmentRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=schedulingapp.AppointmentResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      422 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /appointments/{id} [patch]
func (h *AppointmentHandler) Update(c *gin.Context) {
	appointmentID, ok := h.ParamUUID(c, "id", "appointment")
	if !ok {
		return
	}

	var req UpdateAppointmentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	appReq := schedulingapp.UpdateAppointmentRequest{
		ClientName:      req.ClientName,
		ClientEmail:     req.ClientEmail,
		ClientPhone:     req.ClientPhone,
		StartTime:       req.StartTime,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
		Status:          req.Status,
	}
	if req.StaffID != nil {
		staffID := uuid.MustParse(*req.StaffID)
		appReq.StaffID = &staffID
	}

	appointment, err := h.appointmentService.Update(c.Request.Context(), appointmentID, appReq)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, appointment)
}
