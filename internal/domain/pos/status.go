package pos

// InvoiceStatus represents the settlement status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusDraft   InvoiceStatus = "draft"
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
	InvoiceStatusPartial InvoiceStatus = "partial"
	InvoiceStatusVoid    InvoiceStatus = "void"
)

// IsValid checks if the status is a valid InvoiceStatus
func (s InvoiceStatus) IsValid() bool {
	switch s {
	case InvoiceStatusDraft, InvoiceStatusPending, InvoiceStatusPaid, InvoiceStatusPartial, InvoiceStatusVoid:
		return true
	}
	return false
}

// IsRevenue reports whether money received on an invoice in this status
// counts as revenue.
func (s InvoiceStatus) IsRevenue() bool {
	return s == InvoiceStatusPaid || s == InvoiceStatusPartial
}

// String returns the string representation of InvoiceStatus
func (s InvoiceStatus) String() string {
	return string(s)
}

// RevenueStatuses lists the statuses counted by sales reports
func RevenueStatuses() []InvoiceStatus {
	return []InvoiceStatus{InvoiceStatusPaid, InvoiceStatusPartial}
}

// PaymentMethod is how a payment was tendered
type PaymentMethod string

const (
	PaymentMethodCash PaymentMethod = "cash"
	PaymentMethodCard PaymentMethod = "card"
)

// IsValid checks if the method is supported
func (m PaymentMethod) IsValid() bool {
	return m == PaymentMethodCash || m == PaymentMethodCard
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentMethods returns every supported method in display order
func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentMethodCash, PaymentMethodCard}
}

// ProductCategory separates sellable goods from services
type ProductCategory string

const (
	ProductCategoryService ProductCategory = "service"
	ProductCategoryProduct ProductCategory = "product"
)

// IsValid checks if the category is known
func (c ProductCategory) IsValid() bool {
	return c == ProductCategoryService || c == ProductCategoryProduct
}

// String returns the string representation of ProductCategory
func (c ProductCategory) String() string {
	return string(c)
}
