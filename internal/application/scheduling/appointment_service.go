package scheduling

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/scheduling"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/telemetry"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// AppointmentService books and tracks appointments
type AppointmentService struct {
	appointmentRepo scheduling.AppointmentRepository
	staffRepo       scheduling.StaffRepository
	location        *time.Location
	logger          *zap.Logger
}

// NewAppointmentService creates a new AppointmentService. Date filters are
// calendar days in loc; nil means UTC.
func NewAppointmentService(
	appointmentRepo scheduling.AppointmentRepository,
	staffRepo scheduling.StaffRepository,
	loc *time.Location,
	logger *zap.Logger,
) *AppointmentService {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AppointmentService{
		appointmentRepo: appointmentRepo,
		staffRepo:       staffRepo,
		location:        loc,
		logger:          logger,
	}
}

// Create books an appointment with an active staff member
func (s *AppointmentService) Create(ctx context.Context, req CreateAppointmentRequest) (*AppointmentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "appointment", "create",
		telemetry.WithAttribute(telemetry.SpanAttrStaffID, req.StaffID.String()),
	)
	defer span.End()

	staff, err := s.findStaff(ctx, req.StaffID)
	if err != nil {
		return nil, err
	}

	appointment, err := scheduling.NewAppointment(staff, req.ClientName, req.ClientEmail, req.ClientPhone,
		req.StartTime, req.DurationMinutes, req.Notes)
	if err != nil {
		return nil, err
	}

	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span, telemetry.SpanAttrAppointmentID, appointment.ID.String())
	s.logger.Info("appointment booked",
		zap.String("appointment_id", appointment.ID.String()),
		zap.String("staff_id", staff.ID.String()),
		zap.Time("start_time", appointment.StartTime),
	)
	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// GetByID retrieves an appointment by ID
func (s *AppointmentService) GetByID(ctx context.Context, appointmentID uuid.UUID) (*AppointmentResponse, error) {
	appointment, err := s.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	response := ToAppointmentResponse(appointment)
	return &response, nil
}

// List retrieves appointments, latest start time first
func (s *AppointmentService) List(ctx context.Context, filter AppointmentListFilter) ([]AppointmentResponse, error) {
	domainFilter := pageFilter(filter.Page, filter.PageSize)
	if filter.Status != "" {
		if !scheduling.AppointmentStatus(filter.Status).IsValid() {
			return nil, shared.NewDomainError("INVALID_INPUT", "Unknown appointment status: "+filter.Status)
		}
		domainFilter.Filters["status"] = filter.Status
	}
	if filter.StaffID != nil {
		domainFilter.Filters["staff_id"] = *filter.StaffID
	}
	if filter.Date != "" {
		day, err := time.ParseInLocation(dateLayout, filter.Date, s.location)
		if err != nil {
			return nil, shared.NewDomainError("INVALID_INPUT", "Invalid date, expected YYYY-MM-DD")
		}
		domainFilter.Filters["date"] = day
	}

	appointments, err := s.appointmentRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToAppointmentResponses(appointments), nil
}

// Update changes the given attributes of an appointment
func (s *AppointmentService) Update(ctx context.Context, appointmentID uuid.UUID, req UpdateAppointmentRequest) (*AppointmentResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "appointment", "update",
		telemetry.WithAttribute(telemetry.SpanAttrAppointmentID, appointmentID.String()),
	)
	defer span.End()

	appointment, err := s.findAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if req.StaffID != nil && *req.StaffID != appointment.StaffID {
		staff, err := s.findStaff(ctx, *req.StaffID)
		if err != nil {
			return nil, err
		}
		if err := appointment.AssignStaff(staff); err != nil {
			return nil, err
		}
	}

	if req.hasBookingChanges() {
		clientName, clientEmail, clientPhone := appointment.ClientName, appointment.ClientEmail, appointment.ClientPhone
		start, duration, notes := appointment.StartTime, appointment.DurationMinutes, appointment.Notes
		if req.ClientName != nil {
			clientName = *req.ClientName
		}
		if req.ClientEmail != nil {
			clientEmail = *req.ClientEmail
		}
		if req.ClientPhone != nil {
			clientPhone = *req.ClientPhone
		}
		if req.StartTime != nil {
			start = *req.StartTime
		}
		if req.DurationMinutes != nil {
			duration = *req.DurationMinutes
		}
		if req.Notes != nil {
			notes = *req.Notes
		}
		if err := appointment.Reschedule(clientName, clientEmail, clientPhone, start, duration, notes); err != nil {
			return nil, err
		}
	}

	if req.Status != nil {
		if err := appointment.ChangeStatus(scheduling.AppointmentStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.appointmentRepo.Save(ctx, appointment); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	s.logger.Info("appointment updated",
		zap.String("appointment_id", appointment.ID.String()),
		zap.String("status", appointment.Status.String()),
	)
	response := ToAppointmentResponse(appointment)
	return &response, nil
}

func (r UpdateAppointmentRequest) hasBookingChanges() bool {
	return r.ClientName != nil || r.ClientEmail != nil || r.ClientPhone != nil ||
		r.StartTime != nil || r.DurationMinutes != nil || r.Notes != nil
}

func (s *AppointmentService) findAppointment(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	appointment, err := s.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Appointment not found")
		}
		return nil, err
	}
	return appointment, nil
}

func (s *AppointmentService) findStaff(ctx context.Context, id uuid.UUID) (*scheduling.Staff, error) {
	staff, err := s.staffRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Staff member not found")
		}
		return nil, err
	}
	return staff, nil
}
