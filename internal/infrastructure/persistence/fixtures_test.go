package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopdesk/backend/internal/domain/scheduling"
	"github.com/shopdesk/backend/internal/infrastructure/persistence/models"
	"github.com/shopdesk/backend/internal/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testActor = pos.Actor{
	UserID:   testutil.TestUserID(),
	Name:     "Front Desk",
	Username: "desk",
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string, category pos.ProductCategory, stock int) *pos.Product {
	t.Helper()

	product, err := pos.NewProduct(name, "", dec(price), category, stock)
	require.NoError(t, err)
	require.NoError(t, NewGormProductRepository(db).Save(context.Background(), product))
	return product
}

func seedStaff(t *testing.T, db *gorm.DB, name string) *scheduling.Staff {
	t.Helper()

	staff, err := scheduling.NewStaff(name, "", "", "Stylist")
	require.NoError(t, err)
	require.NoError(t, NewGormStaffRepository(db).Save(context.Background(), staff))
	return staff
}

func seedAppointment(t *testing.T, db *gorm.DB, staff *scheduling.Staff, start time.Time) *scheduling.Appointment {
	t.Helper()

	appt, err := scheduling.NewAppointment(staff, "Jane Doe", "", "555-0100", start, 30, "")
	require.NoError(t, err)
	require.NoError(t, NewGormAppointmentRepository(db).Save(context.Background(), appt))
	return appt
}

func newInvoice(t *testing.T, number string) *pos.Invoice {
	t.Helper()

	inv, err := pos.NewInvoice(number, "Jane Doe", "jane@example.com", dec("10"), testActor.UserID)
	require.NoError(t, err)
	return inv
}

type lineIn struct {
	product *pos.Product
	qty     int
}

type payIn struct {
	amount string
	method pos.PaymentMethod
	paidAt time.Time
}

// seedInvoice stores an invoice with the given lines and payments, then
// backdates it to createdAt. Payments without paidAt are dated createdAt.
func seedInvoice(t *testing.T, db *gorm.DB, number string, createdAt time.Time, lines []lineIn, payments ...payIn) *pos.Invoice {
	t.Helper()

	inv := newInvoice(t, number)
	for _, l := range lines {
		_, err := inv.AddItem(l.product, l.qty)
		require.NoError(t, err)
	}
	paidAt := make(map[uuid.UUID]time.Time)
	for _, p := range payments {
		payment, err := inv.RecordPayment(dec(p.amount), p.method, "", testActor)
		require.NoError(t, err)
		when := p.paidAt
		if when.IsZero() {
			when = createdAt
		}
		paidAt[payment.ID] = when.UTC()
	}
	require.NoError(t, NewGormInvoiceRepository(db).Create(context.Background(), inv))

	require.NoError(t, db.Model(&models.InvoiceModel{}).
		Where("id = ?", inv.ID).
		UpdateColumn("created_at", createdAt.UTC()).Error)
	for id, when := range paidAt {
		require.NoError(t, db.Model(&models.PaymentModel{}).
			Where("id = ?", id).
			UpdateColumn("paid_at", when).Error)
	}
	inv.CreatedAt = createdAt.UTC()
	return inv
}
