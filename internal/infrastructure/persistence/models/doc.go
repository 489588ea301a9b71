// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer pure and free
// from ORM concerns.
//
// Structure:
//   - base.go: BaseModel, AggregateModel and the list of all models
//   - pos.go: point-of-sale models (Product, Invoice, InvoiceItem, Payment, InvoiceSequence)
//   - scheduling.go: scheduling models (Staff, Appointment)
package models
