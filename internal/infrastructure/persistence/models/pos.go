package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopdesk/backend/internal/domain/pos"
	"github.com/shopspring/decimal"
)

// ProductModel is the persistence model for the Product entity.
type ProductModel struct {
	BaseModel
	Name        string              `gorm:"type:varchar(200);not null;index"`
	Description string              `gorm:"type:text"`
	Price       decimal.Decimal     `gorm:"type:decimal(10,2);not null"`
	Category    pos.ProductCategory `gorm:"type:varchar(20);not null;default:'service'"`
	StockQty    int                 `gorm:"not null;default:0"`
	IsActive    bool                `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// ToDomain converts the persistence model to a domain Product entity.
func (m *ProductModel) ToDomain() *pos.Product {
	return &pos.Product{
		BaseEntity:  m.BaseModel.ToDomain(),
		Name:        m.Name,
		Description: m.Description,
		Price:       m.Price,
		Category:    m.Category,
		StockQty:    m.StockQty,
		IsActive:    m.IsActive,
	}
}

// FromDomain populates the persistence model from a domain Product entity.
func (m *ProductModel) FromDomain(p *pos.Product) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.Name = p.Name
	m.Description = p.Description
	m.Price = p.Price
	m.Category = p.Category
	m.StockQty = p.StockQty
	m.IsActive = p.IsActive
}

// ProductModelFromDomain creates a new persistence model from a domain Product entity.
func ProductModelFromDomain(p *pos.Product) *ProductModel {
	m := &ProductModel{}
	m.FromDomain(p)
	return m
}

// InvoiceModel is the persistence model for the Invoice aggregate root.
type InvoiceModel struct {
	AggregateModel
	InvoiceNo     string             `gorm:"type:varchar(20);not null;uniqueIndex"`
	AppointmentID *uuid.UUID         `gorm:"type:uuid;uniqueIndex"`
	ClientName    string             `gorm:"type:varchar(200);not null"`
	ClientEmail   string             `gorm:"type:varchar(255)"`
	Subtotal      decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0"`
	TaxRate       decimal.Decimal    `gorm:"type:decimal(5,2);not null;default:0"`
	TaxAmount     decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0"`
	Total         decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0"`
	AmountPaid    decimal.Decimal    `gorm:"type:decimal(10,2);not null;default:0"`
	Status        pos.InvoiceStatus  `gorm:"type:varchar(20);not null;default:'draft';index"`
	Notes         string             `gorm:"type:text"`
	CreatedBy     uuid.UUID          `gorm:"type:uuid;not null;index"`
	Items         []InvoiceItemModel `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
	Payments      []PaymentModel     `gorm:"foreignKey:InvoiceID;references:ID;constraint:OnDelete:CASCADE"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice aggregate.
func (m *InvoiceModel) ToDomain() *pos.Invoice {
	inv := &pos.Invoice{
		BaseAggregateRoot: m.AggregateModel.ToDomainAggregateRoot(),
		InvoiceNo:         m.InvoiceNo,
		AppointmentID:     m.AppointmentID,
		ClientName:        m.ClientName,
		ClientEmail:       m.ClientEmail,
		Subtotal:          m.Subtotal,
		TaxRate:           m.TaxRate,
		TaxAmount:         m.TaxAmount,
		Total:             m.Total,
		AmountPaid:        m.AmountPaid,
		Status:            m.Status,
		Notes:             m.Notes,
		CreatedBy:         m.CreatedBy,
		Items:             make([]pos.InvoiceItem, len(m.Items)),
		Payments:          make([]pos.Payment, len(m.Payments)),
	}
	for i, item := range m.Items {
		inv.Items[i] = *item.ToDomain()
	}
	for i, p := range m.Payments {
		inv.Payments[i] = *p.ToDomain()
	}
	return inv
}

// FromDomain populates the invoice row from a domain Invoice. Items and
// payments are written separately by the repository.
func (m *InvoiceModel) FromDomain(inv *pos.Invoice) {
	m.FromDomainAggregateRoot(inv.BaseAggregateRoot)
	m.InvoiceNo = inv.InvoiceNo
	m.AppointmentID = inv.AppointmentID
	m.ClientName = inv.ClientName
	m.ClientEmail = inv.ClientEmail
	m.Subtotal = inv.Subtotal
	m.TaxRate = inv.TaxRate
	m.TaxAmount = inv.TaxAmount
	m.Total = inv.Total
	m.AmountPaid = inv.AmountPaid
	m.Status = inv.Status
	m.Notes = inv.Notes
	m.CreatedBy = inv.CreatedBy
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice aggregate.
func InvoiceModelFromDomain(inv *pos.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is the persistence model for the InvoiceItem entity.
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(200);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	Quantity    int             `gorm:"not null;default:1"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem.
func (m *InvoiceItemModel) ToDomain() *pos.InvoiceItem {
	return &pos.InvoiceItem{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		ProductID:   m.ProductID,
		Description: m.Description,
		UnitPrice:   m.UnitPrice,
		Quantity:    m.Quantity,
		LineTotal:   m.LineTotal,
		CreatedAt:   m.CreatedAt.UTC(),
	}
}

// InvoiceItemModelFromDomain creates a new persistence model from a domain InvoiceItem.
func InvoiceItemModelFromDomain(item *pos.InvoiceItem) *InvoiceItemModel {
	return &InvoiceItemModel{
		ID:          item.ID,
		InvoiceID:   item.InvoiceID,
		ProductID:   item.ProductID,
		Description: item.Description,
		UnitPrice:   item.UnitPrice,
		Quantity:    item.Quantity,
		LineTotal:   item.LineTotal,
		CreatedAt:   item.CreatedAt.UTC(),
	}
}

// PaymentModel is the persistence model for the Payment entity.
type PaymentModel struct {
	ID             uuid.UUID         `gorm:"type:uuid;primary_key"`
	InvoiceID      uuid.UUID         `gorm:"type:uuid;not null;index"`
	Amount         decimal.Decimal   `gorm:"type:decimal(10,2);not null"`
	Method         pos.PaymentMethod `gorm:"type:varchar(20);not null"`
	Reference      string            `gorm:"type:varchar(100)"`
	PaidAt         time.Time         `gorm:"not null;index"`
	RecordedBy     uuid.UUID         `gorm:"type:uuid;not null"`
	RecordedByName string            `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment.
func (m *PaymentModel) ToDomain() *pos.Payment {
	return &pos.Payment{
		ID:             m.ID,
		InvoiceID:      m.InvoiceID,
		Amount:         m.Amount,
		Method:         m.Method,
		Reference:      m.Reference,
		PaidAt:         m.PaidAt.UTC(),
		RecordedBy:     m.RecordedBy,
		RecordedByName: m.RecordedByName,
	}
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment.
func PaymentModelFromDomain(p *pos.Payment) *PaymentModel {
	return &PaymentModel{
		ID:             p.ID,
		InvoiceID:      p.InvoiceID,
		Amount:         p.Amount,
		Method:         p.Method,
		Reference:      p.Reference,
		PaidAt:         p.PaidAt.UTC(),
		RecordedBy:     p.RecordedBy,
		RecordedByName: p.RecordedByName,
	}
}

// InvoiceSequenceModel is a named counter row. Incrementing it inside a
// transaction serializes concurrent number allocation.
type InvoiceSequenceModel struct {
	Name      string `gorm:"type:varchar(50);primary_key"`
	LastValue int64  `gorm:"not null;default:0"`
}

// TableName returns the table name for GORM
func (InvoiceSequenceModel) TableName() string {
	return "invoice_sequences"
}
