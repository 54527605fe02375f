package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/trade"
	"github.com/shopspring/decimal"
)

// OrderModel is the persistence model for the Order aggregate root
type OrderModel struct {
	ArchivableModel
	CustomerID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	OrderDate       time.Time            `gorm:"not null;index"`
	PlateTypeID     *uuid.UUID           `gorm:"type:uuid"`
	AdvanceReceived decimal.Decimal      `gorm:"type:decimal(18,4);not null;default:0"`
	Status          trade.OrderStatus    `gorm:"type:varchar(20);not null;default:'PENDING'"`
	InvoiceID       *uuid.UUID           `gorm:"type:uuid;index"`
	Notes           string               `gorm:"type:text"`
	Items           []OrderLineItemModel `gorm:"foreignKey:OrderID;references:ID"`
}

// TableName returns the table name for GORM
func (OrderModel) TableName() string {
	return "orders"
}

// ToDomain converts the persistence model to a domain Order entity
func (m *OrderModel) ToDomain() *trade.Order {
	order := &trade.Order{
		BaseEntity:      m.BaseModel.ToDomain(),
		Archivable:      m.ToArchivable(),
		CustomerID:      m.CustomerID,
		OrderDate:       m.OrderDate,
		PlateTypeID:     m.PlateTypeID,
		AdvanceReceived: m.AdvanceReceived,
		Status:          m.Status,
		InvoiceID:       m.InvoiceID,
		Notes:           m.Notes,
		Items:           make([]trade.OrderLineItem, len(m.Items)),
	}
	for i := range m.Items {
		order.Items[i] = m.Items[i].ToDomain()
	}
	return order
}

// FromDomain populates the persistence model from a domain Order entity
func (m *OrderModel) FromDomain(o *trade.Order) {
	m.FromDomainArchivable(o.BaseEntity, o.Archivable)
	m.CustomerID = o.CustomerID
	m.OrderDate = o.OrderDate
	m.PlateTypeID = o.PlateTypeID
	m.AdvanceReceived = o.AdvanceReceived
	m.Status = o.Status
	m.InvoiceID = o.InvoiceID
	m.Notes = o.Notes
	m.Items = make([]OrderLineItemModel, len(o.Items))
	for i := range o.Items {
		m.Items[i].FromDomain(&o.Items[i])
		m.Items[i].OrderID = o.ID
		m.Items[i].Position = i
	}
}

// OrderModelFromDomain creates a new persistence model from a domain Order entity
func OrderModelFromDomain(o *trade.Order) *OrderModel {
	m := &OrderModel{}
	m.FromDomain(o)
	return m
}

// OrderLineItemModel is the persistence model for the OrderLineItem entity.
// RatePerKg is nullable for rows written before rates were snapshotted.
type OrderLineItemModel struct {
	ID            uuid.UUID           `gorm:"type:uuid;primary_key"`
	OrderID       uuid.UUID           `gorm:"type:uuid;not null;index"`
	ProductSizeID uuid.UUID           `gorm:"type:uuid;not null"`
	Quantity      decimal.Decimal     `gorm:"type:decimal(18,4);not null"`
	RatePerKg     decimal.NullDecimal `gorm:"type:decimal(18,4)"`
	Position      int                 `gorm:"not null;default:0"`
	CreatedAt     time.Time           `gorm:"not null"`
}

// TableName returns the table name for GORM
func (OrderLineItemModel) TableName() string {
	return "order_line_items"
}

// ToDomain converts the persistence model to a domain OrderLineItem
func (m *OrderLineItemModel) ToDomain() trade.OrderLineItem {
	return trade.OrderLineItem{
		ID:            m.ID,
		OrderID:       m.OrderID,
		ProductSizeID: m.ProductSizeID,
		Quantity:      m.Quantity,
		RatePerKg:     m.RatePerKg,
		CreatedAt:     m.CreatedAt,
	}
}

// FromDomain populates the persistence model from a domain OrderLineItem
func (m *OrderLineItemModel) FromDomain(l *trade.OrderLineItem) {
	m.ID = l.ID
	m.OrderID = l.OrderID
	m.ProductSizeID = l.ProductSizeID
	m.Quantity = l.Quantity
	m.RatePerKg = l.RatePerKg
	m.CreatedAt = l.CreatedAt
}
