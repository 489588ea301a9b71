package scheduling

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// AppointmentStatus is the outcome of a booking
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "Scheduled"
	AppointmentStatusCompleted AppointmentStatus = "Completed"
	AppointmentStatusCancelled AppointmentStatus = "Cancelled"
	AppointmentStatusNoShow    AppointmentStatus = "No-Show"
)

// IsValid checks if the status is known
func (s AppointmentStatus) IsValid() bool {
	switch s {
	case AppointmentStatusScheduled, AppointmentStatusCompleted, AppointmentStatusCancelled, AppointmentStatusNoShow:
		return true
	}
	return false
}

// String returns the string representation of AppointmentStatus
func (s AppointmentStatus) String() string {
	return string(s)
}

// Appointment is a booking of a client with a staff member
type Appointment struct {
	shared.BaseEntity
	StaffID         uuid.UUID
	StaffName       string
	ClientName      string
	ClientEmail     string
	ClientPhone     string
	StartTime       time.Time
	DurationMinutes int
	Status          AppointmentStatus
	Notes           string
}

// NewAppointment books client with staff
func NewAppointment(staff *Staff, clientName, clientEmail, clientPhone string, start time.Time, durationMinutes int, notes string) (*Appointment, error) {
	if staff == nil {
		return nil, shared.NewDomainError("NOT_FOUND", "Staff member not found")
	}
	if !staff.IsActive {
		return nil, shared.NewDomainError("INVALID_STATE", "Staff member is not active")
	}
	a := &Appointment{
		BaseEntity: shared.NewBaseEntity(),
		StaffID:    staff.ID,
		StaffName:  staff.FullName,
		Status:     AppointmentStatusScheduled,
	}
	if err := a.Reschedule(clientName, clientEmail, clientPhone, start, durationMinutes, notes); err != nil {
		return nil, err
	}
	return a, nil
}

// Reschedule replaces the client details and time slot
func (a *Appointment) Reschedule(clientName, clientEmail, clientPhone string, start time.Time, durationMinutes int, notes string) error {
	if clientName == "" {
		return shared.NewDomainError("INVALID_INPUT", "Client name cannot be empty")
	}
	if clientPhone == "" {
		return shared.NewDomainError("INVALID_INPUT", "Client phone cannot be empty")
	}
	if start.IsZero() {
		return shared.NewDomainError("INVALID_INPUT", "Start time is required")
	}
	if durationMinutes <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "Duration must be positive")
	}
	if len(notes) > 500 {
		return shared.NewDomainError("INVALID_INPUT", "Notes cannot exceed 500 characters")
	}
	a.ClientName = clientName
	a.ClientEmail = clientEmail
	a.ClientPhone = clientPhone
	a.StartTime = start.UTC()
	a.DurationMinutes = durationMinutes
	a.Notes = notes
	a.Touch()
	return nil
}

// AssignStaff moves the appointment to another staff member
func (a *Appointment) AssignStaff(staff *Staff) error {
	if staff == nil {
		return shared.NewDomainError("NOT_FOUND", "Staff member not found")
	}
	if !staff.IsActive {
		return shared.NewDomainError("INVALID_STATE", "Staff member is not active")
	}
	a.StaffID = staff.ID
	a.StaffName = staff.FullName
	a.Touch()
	return nil
}

// ChangeStatus records the outcome of the appointment
func (a *Appointment) ChangeStatus(status AppointmentStatus) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", "Unknown appointment status: "+string(status))
	}
	a.Status = status
	a.Touch()
	return nil
}

// EndTime is the start time plus the booked duration
func (a *Appointment) EndTime() time.Time {
	return a.StartTime.Add(time.Duration(a.DurationMinutes) * time.Minute)
}
