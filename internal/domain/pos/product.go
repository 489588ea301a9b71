package pos

import (
	"fmt"

	"github.com/shopdesk/backend/internal/domain/shared"
	"github.com/shopdesk/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// Product is a catalog entry that can be put on an invoice.
// StockQty is only meaningful for the product category; services ignore it.
type Product struct {
	shared.BaseEntity
	Name        string
	Description string
	Price       decimal.Decimal
	Category    ProductCategory
	StockQty    int
	IsActive    bool
}

// NewProduct creates a new active catalog entry
func NewProduct(name, description string, price decimal.Decimal, category ProductCategory, stockQty int) (*Product, error) {
	p := &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Description: description,
		IsActive:    true,
	}
	if err := p.Update(name, price, category, stockQty); err != nil {
		return nil, err
	}
	return p, nil
}

// Update changes the catalog attributes of the product
func (p *Product) Update(name string, price decimal.Decimal, category ProductCategory, stockQty int) error {
	if name == "" {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_INPUT", "Product name cannot exceed 200 characters")
	}
	if price.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Price cannot be negative")
	}
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown product category: %s", category))
	}
	if stockQty < 0 {
		return shared.NewDomainError("INVALID_INPUT", "Stock quantity cannot be negative")
	}

	p.Name = name
	p.Price = valueobject.RoundCents(price)
	p.Category = category
	p.StockQty = stockQty
	p.Touch()
	return nil
}

// SetDescription replaces the free-text description
func (p *Product) SetDescription(description string) {
	p.Description = description
	p.Touch()
}

// Activate puts the product back on sale
func (p *Product) Activate() {
	p.IsActive = true
	p.Touch()
}

// Deactivate hides the product from new invoices
func (p *Product) Deactivate() {
	p.IsActive = false
	p.Touch()
}

// IsStockTracked reports whether invoicing this product draws down stock.
// A product with zero stock is treated as untracked, i.e. unlimited.
func (p *Product) IsStockTracked() bool {
	return p.Category == ProductCategoryProduct && p.StockQty > 0
}

// CheckAvailability returns ErrInsufficientStock when a tracked product
// cannot cover quantity.
func (p *Product) CheckAvailability(quantity int) error {
	if !p.IsStockTracked() {
		return nil
	}
	if p.StockQty < quantity {
		return shared.NewDomainError("INSUFFICIENT_STOCK",
			fmt.Sprintf("Insufficient stock for %s: %d available, %d requested", p.Name, p.StockQty, quantity))
	}
	return nil
}

// PriceMoney returns the unit price as Money
func (p *Product) PriceMoney() valueobject.Money {
	return valueobject.NewMoney(p.Price)
}
