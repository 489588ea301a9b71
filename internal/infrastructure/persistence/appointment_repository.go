package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/scheduling"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAppointmentRepository implements AppointmentRepository using GORM
type GormAppointmentRepository struct {
	db *gorm.DB
}

// NewGormAppointmentRepository creates a new GormAppointmentRepository
func NewGormAppointmentRepository(db *gorm.DB) *GormAppointmentRepository {
	return &GormAppointmentRepository{db: db}
}

// FindByID finds an appointment by ID, with the assigned staff member's name
func (r *GormAppointmentRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduling.Appointment, error) {
	var model models.AppointmentModel
	if err := r.db.WithContext(ctx).Preload("Staff").Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists appointments, latest start time first.
// The "date" filter takes a time.Time and matches the 24 hours following it.
func (r *GormAppointmentRepository) FindAll(ctx context.Context, filter shared.Filter) ([]scheduling.Appointment, error) {
	query := r.db.WithContext(ctx).Model(&models.AppointmentModel{}).Preload("Staff")
	if status, ok := filter.Filters["status"]; ok && status != "" {
		query = query.Where("status = ?", status)
	}
	if staffID, ok := filter.Filters["staff_id"]; ok {
		query = query.Where("staff_id = ?", staffID)
	}
	if day, ok := filter.Filters["date"].(time.Time); ok {
		query = query.Where("start_time >= ? AND start_time < ?", day.UTC(), day.Add(24*time.Hour).UTC())
	}
	query = query.Order(appointmentSort.clause(filter.OrderBy, filter.OrderDir))
	query = paginate(query, filter)

	var appointmentModels []models.AppointmentModel
	if err := query.Find(&appointmentModels).Error; err != nil {
		return nil, err
	}
	return toAppointments(appointmentModels), nil
}

// Save creates or updates an appointment
func (r *GormAppointmentRepository) Save(ctx context.Context, appointment *scheduling.Appointment) error {
	model := models.AppointmentModelFromDomain(appointment)
	return r.db.WithContext(ctx).Omit("Staff").Save(model).Error
}

// CountByStatus counts appointments per status
func (r *GormAppointmentRepository) CountByStatus(ctx context.Context) (map[scheduling.AppointmentStatus]int64, error) {
	var rows []struct {
		Status scheduling.AppointmentStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&models.AppointmentModel{}).
		Select("status, COUNT(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[scheduling.AppointmentStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// CountStartingBetween counts appointments starting in [from, to)
func (r *GormAppointmentRepository) CountStartingBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.AppointmentModel{}).
		Where("start_time >= ? AND start_time < ?", from.UTC(), to.UTC()).
		Count(&count).Error
	return count, err
}

// FindRecent returns the appointments with the latest start times
func (r *GormAppointmentRepository) FindRecent(ctx context.Context, limit int) ([]scheduling.Appointment, error) {
	var appointmentModels []models.AppointmentModel
	err := r.db.WithContext(ctx).Preload("Staff").
		Order("start_time DESC").
		Limit(limit).
		Find(&appointmentModels).Error
	if err != nil {
		return nil, err
	}
	return toAppointments(appointmentModels), nil
}

func toAppointments(appointmentModels []models.AppointmentModel) []scheduling.Appointment {
	appointments := make([]scheduling.Appointment, len(appointmentModels))
	for i, model := range appointmentModels {
		appointments[i] = *model.ToDomain()
	}
	return appointments
}

// Ensure GormAppointmentRepository implements AppointmentRepository
var _ scheduling.AppointmentRepository = (*GormAppointmentRepository)(nil)
