package scheduling

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/scheduling"
	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/infrastructure/persistence"
	"github.com/shopdesk/backend/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type schedulingFixture struct {
	staff        *StaffService
	appointments *AppointmentService
	dashboard    *DashboardService
}

func newSchedulingFixture(t *testing.T) *schedulingFixture {
	t.Helper()
	db := testutil.NewSQLiteDB(t)
	staffRepo := persistence.NewGormStaffRepository(db)
	appointmentRepo := persistence.NewGormAppointmentRepository(db)
	return &schedulingFixture{
		staff:        NewStaffService(staffRepo, nil),
		appointments: NewAppointmentService(appointmentRepo, staffRepo, time.UTC, nil),
		dashboard:    NewDashboardService(appointmentRepo, staffRepo, time.UTC),
	}
}

func (f *schedulingFixture) addStaff(t *testing.T, name string) *StaffResponse {
	t.Helper()
	staff, err := f.staff.Create(context.Background(), CreateStaffRequest{
		FullName:    name,
		Email:       "staff@example.com",
		PhoneNumber: "555-0100",
		Specialty:   "Stylist",
	})
	require.NoError(t, err)
	return staff
}

func (f *schedulingFixture) book(t *testing.T, staffID uuid.UUID, start time.Time) *AppointmentResponse {
	t.Helper()
	appointment, err := f.appointments.Create(context.Background(), CreateAppointmentRequest{
		StaffID:         staffID,
		ClientName:      "Jane Doe",
		ClientPhone:     "555-0199",
		StartTime:       start,
		DurationMinutes: 45,
	})
	require.NoError(t, err)
	return appointment
}

func ptr[T any](v T) *T { return &v }

func TestStaffService(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	alex := f.addStaff(t, "Alex Smith")
	assert.True(t, alex.IsActive)

	blair, err := f.staff.Create(ctx, CreateStaffRequest{FullName: "Blair Jones", IsActive: ptr(false)})
	require.NoError(t, err)
	assert.False(t, blair.IsActive)

	t.Run("get", func(t *testing.T) {
		found, err := f.staff.GetByID(ctx, alex.ID)
		require.NoError(t, err)
		assert.Equal(t, "Stylist", found.Specialty)

		_, err = f.staff.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})

	t.Run("list", func(t *testing.T) {
		all, err := f.staff.List(ctx, StaffListFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)

		active, err := f.staff.List(ctx, StaffListFilter{IsActive: ptr(true)})
		require.NoError(t, err)
		require.Len(t, active, 1)
		assert.Equal(t, alex.ID, active[0].ID)
	})

	t.Run("partial update", func(t *testing.T) {
		updated, err := f.staff.Update(ctx, alex.ID, UpdateStaffRequest{Specialty: ptr("Colourist")})
		require.NoError(t, err)
		assert.Equal(t, "Alex Smith", updated.FullName)
		assert.Equal(t, "Colourist", updated.Specialty)
		assert.Equal(t, "555-0100", updated.PhoneNumber)
	})

	t.Run("invalid update", func(t *testing.T) {
		_, err := f.staff.Update(ctx, alex.ID, UpdateStaffRequest{FullName: ptr("")})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("create requires a name", func(t *testing.T) {
		_, err := f.staff.Create(ctx, CreateStaffRequest{})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})
}

func TestAppointmentService_Create(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	start := time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC)

	alex := f.addStaff(t, "Alex Smith")
	inactive, err := f.staff.Create(ctx, CreateStaffRequest{FullName: "Blair Jones", IsActive: ptr(false)})
	require.NoError(t, err)

	t.Run("books with an active staff member", func(t *testing.T) {
		appointment := f.book(t, alex.ID, start)
		assert.Equal(t, "Scheduled", appointment.Status)
		assert.Equal(t, "Alex Smith", appointment.StaffName)
		assert.Equal(t, 45, appointment.DurationMinutes)
	})

	tests := []struct {
		name string
		req  CreateAppointmentRequest
		want error
	}{
		{"unknown staff", CreateAppointmentRequest{StaffID: uuid.New(), ClientName: "A", ClientPhone: "1", StartTime: start, DurationMinutes: 30}, shared.ErrNotFound},
		{"inactive staff", CreateAppointmentRequest{StaffID: inactive.ID, ClientName: "A", ClientPhone: "1", StartTime: start, DurationMinutes: 30}, shared.ErrInvalidState},
		{"zero duration", CreateAppointmentRequest{StaffID: alex.ID, ClientName: "A", ClientPhone: "1", StartTime: start}, shared.ErrInvalidInput},
		{"missing phone", CreateAppointmentRequest{StaffID: alex.ID, ClientName: "A", StartTime: start, DurationMinutes: 30}, shared.ErrInvalidInput},
		{"missing start", CreateAppointmentRequest{StaffID: alex.ID, ClientName: "A", ClientPhone: "1", DurationMinutes: 30}, shared.ErrInvalidInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.appointments.Create(ctx, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestAppointmentService_ListAndUpdate(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()

	alex := f.addStaff(t, "Alex Smith")
	morning := f.book(t, alex.ID, time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC))
	f.book(t, alex.ID, time.Date(2026, 3, 18, 15, 0, 0, 0, time.UTC))
	f.book(t, alex.ID, time.Date(2026, 3, 19, 9, 0, 0, 0, time.UTC))

	completed, err := f.appointments.Update(ctx, morning.ID, UpdateAppointmentRequest{Status: ptr("Completed")})
	require.NoError(t, err)
	assert.Equal(t, "Completed", completed.Status)
	assert.Equal(t, "Jane Doe", completed.ClientName)

	t.Run("list newest first", func(t *testing.T) {
		all, err := f.appointments.List(ctx, AppointmentListFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.True(t, all[0].StartTime.After(all[1].StartTime))
	})

	t.Run("filter by status", func(t *testing.T) {
		done, err := f.appointments.List(ctx, AppointmentListFilter{Status: "Completed"})
		require.NoError(t, err)
		require.Len(t, done, 1)
		assert.Equal(t, morning.ID, done[0].ID)
	})

	t.Run("filter by date", func(t *testing.T) {
		day, err := f.appointments.List(ctx, AppointmentListFilter{Date: "2026-03-18"})
		require.NoError(t, err)
		assert.Len(t, day, 2)
	})

	t.Run("invalid filters", func(t *testing.T) {
		_, err := f.appointments.List(ctx, AppointmentListFilter{Status: "Done"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
		_, err = f.appointments.List(ctx, AppointmentListFilter{Date: "18/03/2026"})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("reschedule keeps unchanged fields", func(t *testing.T) {
		moved := time.Date(2026, 3, 20, 11, 0, 0, 0, time.UTC)
		updated, err := f.appointments.Update(ctx, morning.ID, UpdateAppointmentRequest{StartTime: &moved})
		require.NoError(t, err)
		assert.True(t, moved.Equal(updated.StartTime))
		assert.Equal(t, 45, updated.DurationMinutes)
		assert.Equal(t, "Completed", updated.Status)
	})

	t.Run("reassign staff", func(t *testing.T) {
		blair := f.addStaff(t, "Blair Jones")
		updated, err := f.appointments.Update(ctx, morning.ID, UpdateAppointmentRequest{StaffID: &blair.ID})
		require.NoError(t, err)
		assert.Equal(t, "Blair Jones", updated.StaffName)

		found, err := f.appointments.GetByID(ctx, morning.ID)
		require.NoError(t, err)
		assert.Equal(t, blair.ID, found.StaffID)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := f.appointments.Update(ctx, morning.ID, UpdateAppointmentRequest{Status: ptr("Done")})
		assert.ErrorIs(t, err, shared.ErrInvalidInput)
	})

	t.Run("unknown appointment", func(t *testing.T) {
		_, err := f.appointments.Update(ctx, uuid.New(), UpdateAppointmentRequest{Status: ptr("Completed")})
		assert.ErrorIs(t, err, shared.ErrNotFound)
	})
}

func TestDashboardService_GetStats(t *testing.T) {
	f := newSchedulingFixture(t)
	ctx := context.Background()
	f.dashboard.now = func() time.Time { return time.Date(2026, 3, 18, 12, 0, 0, 0, time.UTC) }

	alex := f.addStaff(t, "Alex Smith")
	_, err := f.staff.Create(ctx, CreateStaffRequest{FullName: "Blair Jones", IsActive: ptr(false)})
	require.NoError(t, err)

	var booked []*AppointmentResponse
	for _, start := range []time.Time{
		time.Date(2026, 3, 17, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 18, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 18, 16, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 19, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 20, 9, 0, 0, 0, time.UTC),
		time.Date(2026, 3, 21, 9, 0, 0, 0, time.UTC),
	} {
		booked = append(booked, f.book(t, alex.ID, start))
	}
	_, err = f.appointments.Update(ctx, booked[0].ID, UpdateAppointmentRequest{Status: ptr(scheduling.AppointmentStatusCompleted.String())})
	require.NoError(t, err)
	_, err = f.appointments.Update(ctx, booked[1].ID, UpdateAppointmentRequest{Status: ptr(scheduling.AppointmentStatusCancelled.String())})
	require.NoError(t, err)

	stats, err := f.dashboard.GetStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(6), stats.TotalAppointments)
	assert.Equal(t, int64(4), stats.ScheduledAppointments)
	assert.Equal(t, int64(1), stats.CompletedAppointments)
	assert.Equal(t, int64(1), stats.CancelledAppointments)
	assert.Equal(t, int64(0), stats.NoShowAppointments)
	assert.Equal(t, int64(2), stats.TodayAppointments)
	assert.Equal(t, int64(2), stats.TotalStaff)
	assert.Equal(t, int64(1), stats.ActiveStaff)

	require.Len(t, stats.RecentAppointments, RecentAppointmentsLimit)
	assert.Equal(t, booked[5].ID, stats.RecentAppointments[0].ID)
}
