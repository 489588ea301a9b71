package handler

import (
	"github.com/gin-gonic/gin"
	schedulingapp "github.com/shopdesk/backend/internal/application/scheduling"
)

// StaffHandler handles staff endpoints
type StaffHandler struct {
	BaseHandler
	staffService *schedulingapp.StaffService
}

// NewStaffHandler creates a new StaffHandler
func NewStaffHandler(staffService *schedulingapp.StaffService) *StaffHandler {
	return &StaffHandler{staffService: staffService}
}

// CreateStaffRequest represents a request to add a staff member
type CreateStaffRequest struct {
	FullName    string `json:"full_name" binding:"required,min=1,max=100" example:"Alex Stylist"`
	Email       string `json:"email" binding:"omitempty,email,max=100" example:"alex@example.com"`
	PhoneNumber string `json:"phone_number" binding:"max=20" example:"555-0100"`
	Specialty   string `json:"specialty" binding:"max=80" example:"Colour"`
	IsActive    *bool  `json:"is_active" example:"true"`
}

// UpdateStaffRequest represents a partial update of a staff member
type UpdateStaffRequest struct {
	FullName    *string `json:"full_name" binding:"omitempty,min=1,max=100"`
	Email       *string `json:"email" binding:"omitempty,email,max=100"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=20"`
	Specialty   *string `json:"specialty" binding:"omitempty,max=80"`
	IsActive    *bool   `json:"is_active"`
}

// ListStaffQuery holds the staff filters
type ListStaffQuery struct {
	Active   *bool `form:"active"`
	Page     int   `form:"page" binding:"omitempty,min=1"`
	PageSize int   `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// List godoc
// @Summary      List staff
// @Tags         staff
// @Produce      json
// @Param        active query bool false "Filter by active flag"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20)
// @Success      200 {object} dto.Response{data=[]schedulingapp.StaffResponse}
// @Security     BearerAuth
// @Router       /staff [get]
func (h *StaffHandler) List(c *gin.Context) {
	var query ListStaffQuery
	if !h.BindQuery(c, &query) {
		return
	}

	staff, err := h.staffService.List(c.Request.Context(), schedulingapp.StaffListFilter{
		IsActive: query.Active,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, staff)
}

// GetByID godoc
// @Summary      Get staff member
// @Tags         staff
// @Produce      json
// @Param        id path string true "Staff ID" format(uuid)
// @Success      200 {object} dto.Response{data=schedulingapp.StaffResponse}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/{id} [get]
func (h *StaffHandler) GetByID(c *gin.Context) {
	staffID, ok := h.ParamUUID(c, "id", "staff")
	if !ok {
		return
	}

	staff, err := h.staffService.GetByID(c.Request.Context(), staffID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, staff)
}

// Create godoc
// @Summary      Create staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        request body CreateStaffRequest true "Staff member"
// @Success      201 {object} dto.Response{data=schedulingapp.StaffResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      403 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff [post]
func (h *StaffHandler) Create(c *gin.Context) {
	var req CreateStaffRequest
	if !h.BindJSON(c, &req) {
		return
	}

	staff, err := h.staffService.Create(c.Request.Context(), schedulingapp.CreateStaffRequest{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Specialty:   req.Specialty,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, staff)
}

// Update godoc
// @Summary      Update staff member
// @Tags         staff
// @Accept       json
// @Produce      json
// @Param        id path string true "Staff ID" format(uuid)
// @Param        request body UpdateStaffRequest true "Changed fields"
// @Success      200 {object} dto.Response{data=schedulingapp.StaffResponse}
// @Failure      400 {object} dto.Response{error=dto.ErrorInfo}
// @Failure      404 {object} dto.Response{error=dto.ErrorInfo}
// @Security     BearerAuth
// @Router       /staff/{id} [patch]
func (h *StaffHandler) Update(c *gin.Context) {
	staffID, ok := h.ParamUUID(c, "id", "staff")
	if !ok {
		return
	}

	var req UpdateStaffRequest
	if !h.BindJSON(c, &req) {
		return
	}

	staff, err := h.staffService.Update(c.Request.Context(), staffID, schedulingapp.UpdateStaffRequest{
		FullName:    req.FullName,
		Email:       req.Email,
		PhoneNumber: req.PhoneNumber,
		Specialty:   req.Specialty,
		IsActive:    req.IsActive,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, staff)
}
