package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/scheduling"
)

// StaffModel is the persistence model for the Staff entity.
type StaffModel struct {
	BaseModel
	FullName    string `gorm:"type:varchar(100);not null"`
	Email       string `gorm:"type:varchar(100)"`
	PhoneNumber string `gorm:"type:varchar(20)"`
	Specialty   string `gorm:"type:varchar(80)"`
	IsActive    bool   `gorm:"not null"`
}

// TableName returns the table name for GORM
func (StaffModel) TableName() string {
	return "staff"
}

// ToDomain converts the persistence model to a domain Staff entity.
func (m *StaffModel) ToDomain() *scheduling.Staff {
	return &scheduling.Staff{
		BaseEntity:  m.BaseModel.ToDomain(),
		FullName:    m.FullName,
		Email:       m.Email,
		PhoneNumber: m.PhoneNumber,
		Specialty:   m.Specialty,
		IsActive:    m.IsActive,
	}
}

// StaffModelFromDomain creates a new persistence model from a domain Staff entity.
func StaffModelFromDomain(s *scheduling.Staff) *StaffModel {
	m := &StaffModel{
		FullName:    s.FullName,
		Email:       s.Email,
		PhoneNumber: s.PhoneNumber,
		Specialty:   s.Specialty,
		IsActive:    s.IsActive,
	}
	m.FromDomainBaseEntity(s.BaseEntity)
	return m
}

// AppointmentModel is the persistence model for the Appointment entity.
type AppointmentModel struct {
	BaseModel
	StaffID         uuid.UUID                    `gorm:"type:uuid;not null;index"`
	Staff           *StaffModel                  `gorm:"foreignKey:StaffID;references:ID;constraint:OnDelete:RESTRICT"`
	ClientName      string                       `gorm:"type:varchar(200);not null"`
	ClientEmail     string                       `gorm:"type:varchar(255)"`
	ClientPhone     string                       `gorm:"type:varchar(20);not null"`
	StartTime       time.Time                    `gorm:"not null;index"`
	DurationMinutes int                          `gorm:"not null"`
	Status          scheduling.AppointmentStatus `gorm:"type:varchar(50);not null;default:'Scheduled';index"`
	Notes           string                       `gorm:"type:varchar(500)"`
}

// TableName returns the table name for GORM
func (AppointmentModel) TableName() string {
	return "appointments"
}

// ToDomain converts the persistence model to a domain Appointment entity.
func (m *AppointmentModel) ToDomain() *scheduling.Appointment {
	a := &scheduling.Appointment{
		BaseEntity:      m.BaseModel.ToDomain(),
		StaffID:         m.StaffID,
		ClientName:      m.ClientName,
		ClientEmail:     m.ClientEmail,
		ClientPhone:     m.ClientPhone,
		StartTime:       m.StartTime.UTC(),
		DurationMinutes: m.DurationMinutes,
		Status:          m.Status,
		Notes:           m.Notes,
	}
	if m.Staff != nil {
		a.StaffName = m.Staff.FullName
	}
	return a
}

// AppointmentModelFromDomain creates a new persistence model from a domain Appointment entity.
func AppointmentModelFromDomain(a *scheduling.Appointment) *AppointmentModel {
	m := &AppointmentModel{
		StaffID:         a.StaffID,
		ClientName:      a.ClientName,
		ClientEmail:     a.ClientEmail,
		ClientPhone:     a.ClientPhone,
		StartTime:       a.StartTime.UTC(),
		DurationMinutes: a.DurationMinutes,
		Status:          a.Status,
		Notes:           a.Notes,
	}
	m.FromDomainBaseEntity(a.BaseEntity)
	return m
}
