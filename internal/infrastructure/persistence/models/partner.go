package models

import (
	"github.com/pressworks/backend/internal/domain/partner"
	"gorm.io/datatypes"
)

// CustomerModel is the persistence model for the Customer entity.
// Metadata is stored as JSON (jsonb on postgres).
type CustomerModel struct {
	ArchivableModel
	Name     string            `gorm:"type:varchar(200);not null;index"`
	Metadata datatypes.JSONMap `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer entity
func (m *CustomerModel) ToDomain() *partner.Customer {
	metadata := make(map[string]any, len(m.Metadata))
	for k, v := range m.Metadata {
		metadata[k] = v
	}
	return &partner.Customer{
		BaseEntity: m.BaseModel.ToDomain(),
		Archivable: m.ToArchivable(),
		Name:       m.Name,
		Metadata:   metadata,
	}
}

// FromDomain populates the persistence model from a domain Customer entity
func (m *CustomerModel) FromDomain(c *partner.Customer) {
	m.FromDomainArchivable(c.BaseEntity, c.Archivable)
	m.Name = c.Name
	m.Metadata = datatypes.JSONMap{}
	for k, v := range c.Metadata {
		m.Metadata[k] = v
	}
}

// CustomerModelFromDomain creates a new persistence model from a domain Customer entity
func CustomerModelFromDomain(c *partner.Customer) *CustomerModel {
	m := &CustomerModel{}
	m.FromDomain(c)
	return m
}
