package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/pressworks/backend/internal/domain/shared"
)

// BaseModel provides the id and timestamp columns every table carries
type BaseModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// ToDomain converts BaseModel to domain BaseEntity
func (m *BaseModel) ToDomain() shared.BaseEntity {
	return shared.BaseEntity{
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// FromDomainBaseEntity populates BaseModel from domain BaseEntity
func (m *BaseModel) FromDomainBaseEntity(e shared.BaseEntity) {
	m.ID = e.ID
	m.CreatedAt = e.CreatedAt
	m.UpdatedAt = e.UpdatedAt
}

// ArchivableModel adds the is_archived soft-delete flag
type ArchivableModel struct {
	BaseModel
	IsArchived bool `gorm:"not null;default:false;index"`
}

// FromDomainArchivable populates ArchivableModel from domain fields
func (m *ArchivableModel) FromDomainArchivable(e shared.BaseEntity, a shared.Archivable) {
	m.FromDomainBaseEntity(e)
	m.IsArchived = a.IsArchived
}

// ToArchivable returns the domain archive flag
func (m *ArchivableModel) ToArchivable() shared.Archivable {
	return shared.Archivable{IsArchived: m.IsArchived}
}

// All lists every model in dependency order, for schema creation
func All() []any {
	return []any{
		&CustomerModel{},
		&ProductSizeModel{},
		&PlateTypeModel{},
		&InvoiceModel{},
		&InvoiceItemModel{},
		&OrderModel{},
		&OrderLineItemModel{},
		&PaymentModel{},
	}
}
