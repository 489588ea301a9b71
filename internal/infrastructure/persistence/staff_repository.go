package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/scheduling"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormStaffRepository implements StaffRepository using GORM
type GormStaffRepository struct {
	db *gorm.DB
}

// NewGormStaffRepository creates a new GormStaffRepository
func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

// FindByID finds a staff member by ID
func (r *GormStaffRepository) FindByID(ctx context.Context, id uuid.UUID) (*scheduling.Staff, error) {
	var model models.StaffModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll lists staff members ordered by name
func (r *GormStaffRepository) FindAll(ctx context.Context, filter shared.Filter) ([]scheduling.Staff, error) {
	query := r.db.WithContext(ctx).Model(&models.StaffModel{})
	if active, ok := filter.Filters["is_active"]; ok {
		query = query.Where("is_active = ?", active)
	}
	query = query.Order(staffSort.clause(filter.OrderBy, filter.OrderDir))
	query = paginate(query, filter)

	var staffModels []models.StaffModel
	if err := query.Find(&staffModels).Error; err != nil {
		return nil, err
	}

	staff := make([]scheduling.Staff, len(staffModels))
	for i, model := range staffModels {
		staff[i] = *model.ToDomain()
	}
	return staff, nil
}

// Save creates or updates a staff member
func (r *GormStaffRepository) Save(ctx context.Context, staff *scheduling.Staff) error {
	return r.db.WithContext(ctx).Save(models.StaffModelFromDomain(staff)).Error
}

// CountAll returns the number of staff members and how many of them are active
func (r *GormStaffRepository) CountAll(ctx context.Context) (total, active int64, err error) {
	db := r.db.WithContext(ctx).Model(&models.StaffModel{})
	if err = db.Count(&total).Error; err != nil {
		return 0, 0, err
	}
	if err = r.db.WithContext(ctx).Model(&models.StaffModel{}).Where("is_active = ?", true).Count(&active).Error; err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

// Ensure GormStaffRepository implements StaffRepository
var _ scheduling.StaffRepository = (*GormStaffRepository)(nil)
