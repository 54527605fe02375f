package models

import (
	"github.com/pressworks/backend/internal/domain/catalog"
	"github.com/shopspring/decimal"
)

// ProductSizeModel is the persistence model for the ProductSize entity
type ProductSizeModel struct {
	ArchivableModel
	Label     string          `gorm:"type:varchar(100);not null"`
	RatePerKg decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (ProductSizeModel) TableName() string {
	return "product_sizes"
}

// ToDomain converts the persistence model to a domain ProductSize entity
func (m *ProductSizeModel) ToDomain() *catalog.ProductSize {
	return &catalog.ProductSize{
		BaseEntity: m.BaseModel.ToDomain(),
		Archivable: m.ToArchivable(),
		Label:      m.Label,
		RatePerKg:  m.RatePerKg,
	}
}

// FromDomain populates the persistence model from a domain ProductSize entity
func (m *ProductSizeModel) FromDomain(p *catalog.ProductSize) {
	m.FromDomainArchivable(p.BaseEntity, p.Archivable)
	m.Label = p.Label
	m.RatePerKg = p.RatePerKg
}

// PlateTypeModel is the persistence model for the PlateType entity
type PlateTypeModel struct {
	ArchivableModel
	Name   string          `gorm:"type:varchar(100);not null"`
	Charge decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (PlateTypeModel) TableName() string {
	return "plate_types"
}

// ToDomain converts the persistence model to a domain PlateType entity
func (m *PlateTypeModel) ToDomain() *catalog.PlateType {
	return &catalog.PlateType{
		BaseEntity: m.BaseModel.ToDomain(),
		Archivable: m.ToArchivable(),
		Name:       m.Name,
		Charge:     m.Charge,
	}
}

// FromDomain populates the persistence model from a domain PlateType entity
func (m *PlateTypeModel) FromDomain(p *catalog.PlateType) {
	m.FromDomainArchivable(p.BaseEntity, p.Archivable)
	m.Name = p.Name
	m.Charge = p.Charge
}
