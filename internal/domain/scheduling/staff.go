package scheduling

import (
	"github.com/shopdesk/backend/internal/domain/shared"
)

// Staff is a member of the shop who can be booked for appointments
type Staff struct {
	shared.BaseEntity
	FullName    string
	Email       string
	PhoneNumber string
	Specialty   string
	IsActive    bool
}

// NewStaff creates a new active staff member
func NewStaff(fullName, email, phone, specialty string) (*Staff, error) {
	s := &Staff{
		BaseEntity: shared.NewBaseEntity(),
		IsActive:   true,
	}
	if err := s.Update(fullName, email, phone, specialty); err != nil {
		return nil, err
	}
	return s, nil
}

// Update replaces the contact details of the staff member
func (s *Staff) Update(fullName, email, phone, specialty string) error {
	if fullName == "" {
		return shared.NewDomainError("INVALID_INPUT", "Full name cannot be empty")
	}
	if len(fullName) > 100 {
		return shared.NewDomainError("INVALID_INPUT", "Full name cannot exceed 100 characters")
	}
	if len(phone) > 20 {
		return shared.NewDomainError("INVALID_INPUT", "Phone number cannot exceed 20 characters")
	}
	s.FullName = fullName
	s.Email = email
	s.PhoneNumber = phone
	s.Specialty = specialty
	s.Touch()
	return nil
}

// SetActive toggles whether the staff member can take bookings
func (s *Staff) SetActive(active bool) {
	s.IsActive = active
	s.Touch()
}
