// Package models contains the GORM persistence models. Domain entities stay
// free of ORM tags; each model converts to and from its entity with
// ToDomain / FromDomain, and repositories only ever touch models.
//
// Files:
//   - base.go: BaseModel and ArchivableModel shared by every table
//   - partner.go: customers
//   - catalog.go: product sizes and plate types
//   - trade.go: orders and their line items
//   - billing.go: invoices, invoice items and payments
package models
