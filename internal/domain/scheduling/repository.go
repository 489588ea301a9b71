package scheduling

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/shared"
)

// StaffRepository defines the interface for staff persistence
type StaffRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Staff, error)
	// FindAll lists staff ordered by name. Filters: "is_active".
	FindAll(ctx context.Context, filter shared.Filter) ([]Staff, error)
	Save(ctx context.Context, staff *Staff) error
	CountAll(ctx context.Context) (total, active int64, err error)
}

// AppointmentRepository defines the interface for appointment persistence
type AppointmentRepository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Appointment, error)
	// FindAll lists appointments newest first. Filters: "status", "staff_id", "date".
	FindAll(ctx context.Context, filter shared.Filter) ([]Appointment, error)
	Save(ctx context.Context, appointment *Appointment) error
	CountByStatus(ctx context.Context) (map[AppointmentStatus]int64, error)
	CountStartingBetween(ctx context.Context, from, to time.Time) (int64, error)
	FindRecent(ctx context.Context, limit int) ([]Appointment, error)
}
