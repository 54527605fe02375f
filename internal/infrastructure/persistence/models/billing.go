package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/billing"
	"github.com/shopspring/decimal"
)

// InvoiceModel is the persistence model for the Invoice aggregate root.
// invoice_number carries a unique index so concurrent allocations collide
// at insert instead of producing duplicates.
type InvoiceModel struct {
	ArchivableModel
	CustomerID         uuid.UUID `gorm:"type:uuid;not null;index"`
	InvoiceNumber      string    `gorm:"type:varchar(32);not null;uniqueIndex"`
	InvoiceDate        time.Time `gorm:"not null"`
	BillingPeriodStart time.Time `gorm:"not null"`
	BillingPeriodEnd   time.Time `gorm:"not null"`
	PaymentDueDate     *time.Time
	TotalAmount        decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	TaxPercent         decimal.Decimal       `gorm:"type:decimal(9,4);not null;default:0"`
	TaxAmount          decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	FinalAmount        decimal.Decimal       `gorm:"type:decimal(18,4);not null;default:0"`
	Status             billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Items              []InvoiceItemModel    `gorm:"foreignKey:InvoiceID;references:ID"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
// Tax and final amounts are recomputed from the stored total and percent.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	inv := &billing.Invoice{
		BaseEntity:         m.BaseModel.ToDomain(),
		Archivable:         m.ToArchivable(),
		CustomerID:         m.CustomerID,
		InvoiceNumber:      m.InvoiceNumber,
		InvoiceDate:        m.InvoiceDate,
		BillingPeriodStart: m.BillingPeriodStart,
		BillingPeriodEnd:   m.BillingPeriodEnd,
		PaymentDueDate:     m.PaymentDueDate,
		TotalAmount:        m.TotalAmount,
		TaxPercent:         m.TaxPercent,
		TaxAmount:          m.TaxAmount,
		FinalAmount:        m.FinalAmount,
		Status:             m.Status,
		Items:              make([]billing.InvoiceItem, len(m.Items)),
	}
	for i := range m.Items {
		inv.Items[i] = m.Items[i].ToDomain()
	}
	inv.RecomputeAmounts()
	return inv
}

// FromDomain populates the persistence model from a domain Invoice entity
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainArchivable(inv.BaseEntity, inv.Archivable)
	m.CustomerID = inv.CustomerID
	m.InvoiceNumber = inv.InvoiceNumber
	m.InvoiceDate = inv.InvoiceDate
	m.BillingPeriodStart = inv.BillingPeriodStart
	m.BillingPeriodEnd = inv.BillingPeriodEnd
	m.PaymentDueDate = inv.PaymentDueDate
	m.TotalAmount = inv.TotalAmount
	m.TaxPercent = inv.TaxPercent
	m.TaxAmount = inv.TaxAmount
	m.FinalAmount = inv.FinalAmount
	m.Status = inv.Status
	m.Items = make([]InvoiceItemModel, len(inv.Items))
	for i := range inv.Items {
		m.Items[i].FromDomain(&inv.Items[i])
		m.Items[i].InvoiceID = inv.ID
		m.Items[i].Position = i
	}
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// InvoiceItemModel is the persistence model for the InvoiceItem entity
type InvoiceItemModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primary_key"`
	InvoiceID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	OrderID     *uuid.UUID      `gorm:"type:uuid;index"`
	Description string          `gorm:"type:varchar(500);not null"`
	Quantity    decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	TotalPrice  decimal.Decimal `gorm:"type:decimal(18,4);not null"`
	Position    int             `gorm:"not null;default:0"`
	CreatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceItemModel) TableName() string {
	return "invoice_items"
}

// ToDomain converts the persistence model to a domain InvoiceItem
func (m *InvoiceItemModel) ToDomain() billing.InvoiceItem {
	return billing.InvoiceItem{
		ID:          m.ID,
		InvoiceID:   m.InvoiceID,
		OrderID:     m.OrderID,
		Description: m.Description,
		Quantity:    m.Quantity,
		UnitPrice:   m.UnitPrice,
		TotalPrice:  m.TotalPrice,
		CreatedAt:   m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain InvoiceItem
func (m *InvoiceItemModel) FromDomain(it *billing.InvoiceItem) {
	m.ID = it.ID
	m.InvoiceID = it.InvoiceID
	m.OrderID = it.OrderID
	m.Description = it.Description
	m.Quantity = it.Quantity
	m.UnitPrice = it.UnitPrice
	m.TotalPrice = it.TotalPrice
	m.CreatedAt = it.CreatedAt
}

// PaymentModel is the persistence model for the Payment entity. Payments
// are hard-deleted and carry no archive flag.
type PaymentModel struct {
	BaseModel
	InvoiceID       *uuid.UUID          `gorm:"type:uuid;index"`
	OrderID         *uuid.UUID          `gorm:"type:uuid;index"`
	CustomerID      uuid.UUID           `gorm:"type:uuid;not null;index"`
	PaymentType     billing.PaymentType `gorm:"type:varchar(20);not null"`
	Amount          decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	PaymentDate     time.Time           `gorm:"not null;index"`
	PaymentMethod   string              `gorm:"type:varchar(50);not null;default:'CASH'"`
	ReferenceNumber string              `gorm:"type:varchar(100)"`
	Notes           string              `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		BaseEntity:      m.BaseModel.ToDomain(),
		InvoiceID:       m.InvoiceID,
		OrderID:         m.OrderID,
		CustomerID:      m.CustomerID,
		PaymentType:     m.PaymentType,
		Amount:          m.Amount,
		PaymentDate:     m.PaymentDate,
		PaymentMethod:   m.PaymentMethod,
		ReferenceNumber: m.ReferenceNumber,
		Notes:           m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Payment entity
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.InvoiceID = p.InvoiceID
	m.OrderID = p.OrderID
	m.CustomerID = p.CustomerID
	m.PaymentType = p.PaymentType
	m.Amount = p.Amount
	m.PaymentDate = p.PaymentDate
	m.PaymentMethod = p.PaymentMethod
	m.ReferenceNumber = p.ReferenceNumber
	m.Notes = p.Notes
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
