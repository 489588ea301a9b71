package scheduling

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/scheduling"
)

// CreateStaffRequest represents a request to add a staff member
type CreateStaffRequest struct {
	FullName    string
	Email       string
	PhoneNumber string
	Specialty   string
	IsActive    *bool
}

// UpdateStaffRequest represents a partial update of a staff member
type UpdateStaffRequest struct {
	FullName    *string
	Email       *string
	PhoneNumber *string
	Specialty   *string
	IsActive    *bool
}

// StaffListFilter represents filter options for listing staff
type StaffListFilter struct {
	IsActive *bool
	Page     int
	PageSize int
}

// StaffResponse represents a staff member in API responses
type StaffResponse struct {
	ID          uuid.UUID `json:"id"`
	FullName    string    `json:"full_name"`
	Email       string    `json:"email"`
	PhoneNumber string    `json:"phone_number"`
	Specialty   string    `json:"specialty"`
	IsActive    bool      `json:"is_active"`
}

// ToStaffResponse converts a domain Staff to StaffResponse
func ToStaffResponse(s *scheduling.Staff) StaffResponse {
	return StaffResponse{
		ID:          s.ID,
		FullName:    s.FullName,
		Email:       s.Email,
		PhoneNumber: s.PhoneNumber,
		Specialty:   s.Specialty,
		IsActive:    s.IsActive,
	}
}

// ToStaffResponses converts a slice of domain Staff to responses
func ToStaffResponses(staff []scheduling.Staff) []StaffResponse {
	responses := make([]StaffResponse, len(staff))
	for i := range staff {
		responses[i] = ToStaffResponse(&staff[i])
	}
	return responses
}

// CreateAppointmentRequest represents a request to book an appointment
type CreateAppointmentRequest struct {
	StaffID         uuid.UUID
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	StartTime       time.Time
	DurationMinutes int
	Notes           string
}

// UpdateAppointmentRequest represents a partial update of an appointment.
// Status is applied after the other fields.
type UpdateAppointmentRequest struct {
	StaffID         *uuid.UUID
	ClientName      *string
	ClientEmail     *string
	ClientPhone     *string
	StartTime       *time.Time
	DurationMinutes *int
	Notes           *string
	Status          *string
}

// AppointmentListFilter represents filter options for listing appointments.
// Date is a calendar day in YYYY-MM-DD form.
type AppointmentListFilter struct {
	Status   string
	StaffID  *uuid.UUID
	Date     string
	Page     int
	PageSize int
}

// AppointmentResponse represents an appointment in API responses
type AppointmentResponse struct {
	ID              uuid.UUID `json:"id"`
	StaffID         uuid.UUID `json:"staff"`
	StaffName       string    `json:"staff_name"`
	ClientName      string    `json:"client_name"`
	ClientEmail     string    `json:"client_email"`
	ClientPhone     string    `json:"client_phone"`
	StartTime       time.Time `json:"start_time"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
	Notes           string    `json:"notes"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// ToAppointmentResponse converts a domain Appointment to AppointmentResponse
func ToAppointmentResponse(a *scheduling.Appointment) AppointmentResponse {
	return AppointmentResponse{
		ID:              a.ID,
		StaffID:         a.StaffID,
		StaffName:       a.StaffName,
		ClientName:      a.ClientName,
		ClientEmail:     a.ClientEmail,
		ClientPhone:     a.ClientPhone,
		StartTime:       a.StartTime,
		DurationMinutes: a.DurationMinutes,
		Status:          a.Status.String(),
		Notes:           a.Notes,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// ToAppointmentResponses converts a slice of domain Appointments to responses
func ToAppointmentResponses(appointments []scheduling.Appointment) []AppointmentResponse {
	responses := make([]AppointmentResponse, len(appointments))
	for i := range appointments {
		responses[i] = ToAppointmentResponse(&appointments[i])
	}
	return responses
}

// DashboardStats summarizes bookings and staff for the front desk
type DashboardStats struct {
	TotalAppointments     int64                 `json:"total_appointments"`
	ScheduledAppointments int64                 `json:"scheduled_appointments"`
	CompletedAppointments int64                 `json:"completed_appointments"`
	CancelledAppointments int64                 `json:"cancelled_appointments"`
	NoShowAppointments    int64                 `json:"no_show_appointments"`
	TodayAppointments     int64                 `json:"today_appointments"`
	TotalStaff            int64                 `json:"total_staff"`
	ActiveStaff           int64                 `json:"active_staff"`
	RecentAppointments    []AppointmentResponse `json:"recent_appointments"`
}
