package scheduling

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/scheduling"
	"github.com/shopdesk/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// StaffService manages the staff roster
type StaffService struct {
	staffRepo scheduling.StaffRepository
	logger    *zap.Logger
}

// NewStaffService creates a new StaffService
func NewStaffService(staffRepo scheduling.StaffRepository, logger *zap.Logger) *StaffService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StaffService{
		staffRepo: staffRepo,
		logger:    logger,
	}
}

// Create adds a staff member
func (s *StaffService) Create(ctx context.Context, req CreateStaffRequest) (*StaffResponse, error) {
	staff, err := scheduling.NewStaff(req.FullName, req.Email, req.PhoneNumber, req.Specialty)
	if err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		staff.SetActive(*req.IsActive)
	}

	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}

	s.logger.Info("staff member created",
		zap.String("staff_id", staff.ID.String()),
		zap.String("full_name", staff.FullName),
	)
	response := ToStaffResponse(staff)
	return &response, nil
}

// GetByID retrieves a staff member by ID
func (s *StaffService) GetByID(ctx context.Context, staffID uuid.UUID) (*StaffResponse, error) {
	staff, err := s.findStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}
	response := ToStaffResponse(staff)
	return &response, nil
}

// List retrieves staff members ordered by name
func (s *StaffService) List(ctx context.Context, filter StaffListFilter) ([]StaffResponse, error) {
	domainFilter := pageFilter(filter.Page, filter.PageSize)
	if filter.IsActive != nil {
		domainFilter.Filters["is_active"] = *filter.IsActive
	}

	staff, err := s.staffRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, err
	}
	return ToStaffResponses(staff), nil
}

// Update changes the given attributes of a staff member
func (s *StaffService) Update(ctx context.Context, staffID uuid.UUID, req UpdateStaffRequest) (*StaffResponse, error) {
	staff, err := s.findStaff(ctx, staffID)
	if err != nil {
		return nil, err
	}

	fullName, email, phone, specialty := staff.FullName, staff.Email, staff.PhoneNumber, staff.Specialty
	if req.FullName != nil {
		fullName = *req.FullName
	}
	if req.Email != nil {
		email = *req.Email
	}
	if req.PhoneNumber != nil {
		phone = *req.PhoneNumber
	}
	if req.Specialty != nil {
		specialty = *req.Specialty
	}
	if err := staff.Update(fullName, email, phone, specialty); err != nil {
		return nil, err
	}
	if req.IsActive != nil {
		staff.SetActive(*req.IsActive)
	}

	if err := s.staffRepo.Save(ctx, staff); err != nil {
		return nil, err
	}

	s.logger.Info("staff member updated", zap.String("staff_id", staff.ID.String()))
	response := ToStaffResponse(staff)
	return &response, nil
}

func (s *StaffService) findStaff(ctx context.Context, staffID uuid.UUID) (*scheduling.Staff, error) {
	staff, err := s.staffRepo.FindByID(ctx, staffID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Staff member not found")
		}
		return nil, err
	}
	return staff, nil
}

// pageFilter builds a repository filter with page defaults and an empty
// filter map. Ordering is left to the repository.
func pageFilter(page, pageSize int) shared.Filter {
	filter := shared.Filter{Page: 1, PageSize: 50, Filters: make(map[string]interface{})}
	if page > 0 {
		filter.Page = page
	}
	if pageSize > 0 {
		filter.PageSize = min(pageSize, 200)
	}
	return filter
}
