package scheduling

import (
	"context"
	"time"

	"github.com/shopdesk/backend/internal/domain/scheduling"
)

// RecentAppointmentsLimit is the number of appointments shown on the dashboard
const RecentAppointmentsLimit = 5

// DashboardService aggregates front desk statistics
type DashboardService struct {
	appointmentRepo scheduling.AppointmentRepository
	staffRepo       scheduling.StaffRepository
	location        *time.Location
	now             func() time.Time
}

// NewDashboardService creates a new DashboardService. "Today" is the
// calendar day in loc; nil means UTC.
func NewDashboardService(appointmentRepo scheduling.AppointmentRepository, staffRepo scheduling.StaffRepository, loc *time.Location) *DashboardService {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardService{
		appointmentRepo: appointmentRepo,
		staffRepo:       staffRepo,
		location:        loc,
		now:             time.Now,
	}
}

// GetStats returns appointment counts by status, today's bookings, staff
// totals and the most recent appointments
func (s *DashboardService) GetStats(ctx context.Context) (*DashboardStats, error) {
	byStatus, err := s.appointmentRepo.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}

	now := s.now().In(s.location)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.location)
	todayCount, err := s.appointmentRepo.CountStartingBetween(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, err
	}

	totalStaff, activeStaff, err := s.staffRepo.CountAll(ctx)
	if err != nil {
		return nil, err
	}

	recent, err := s.appointmentRepo.FindRecent(ctx, RecentAppointmentsLimit)
	if err != nil {
		return nil, err
	}

	stats := &DashboardStats{
		ScheduledAppointments: byStatus[scheduling.AppointmentStatusScheduled],
		CompletedAppointments: byStatus[scheduling.AppointmentStatusCompleted],
		CancelledAppointments: byStatus[scheduling.AppointmentStatusCancelled],
		NoShowAppointments:    byStatus[scheduling.AppointmentStatusNoShow],
		TodayAppointments:     todayCount,
		TotalStaff:            totalStaff,
		ActiveStaff:           activeStaff,
		RecentAppointments:    ToAppointmentResponses(recent),
	}
	for _, count := range byStatus {
		stats.TotalAppointments += count
	}
	return stats, nil
}
