// Package models holds the persistence models mapped by GORM. They
// mirror the domain entities but stay independent of them so schema
// concerns never leak into the domain layer.
package models

import (
	"time"

	"github.com/dashboard/backend/internal/domain/billing"
	"github.com/dashboard/backend/internal/domain/identity"
	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// CustomerModel is the persistence model for the Customer entity
type CustomerModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	ImageURL  string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (CustomerModel) TableName() string {
	return "customers"
}

// ToDomain converts the persistence model to a domain Customer
func (m *CustomerModel) ToDomain() *billing.Customer {
	return &billing.Customer{
		OwnedEntity: shared.OwnedEntity{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			OwnerID: m.OwnerID,
		},
		Name:     m.Name,
		Email:    m.Email,
		ImageURL: m.ImageURL,
	}
}

// CustomerModelFromDomain builds the persistence model from a domain Customer
func CustomerModelFromDomain(c *billing.Customer) *CustomerModel {
	return &CustomerModel{
		ID:        c.ID,
		OwnerID:   c.OwnerID,
		Name:      c.Name,
		Email:     c.Email,
		ImageURL:  c.ImageURL,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// InvoiceModel is the persistence model for the Invoice entity
type InvoiceModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key"`
	OwnerID     uuid.UUID `gorm:"type:uuid;not null;index"`
	CustomerID  uuid.UUID `gorm:"type:uuid;not null;index"`
	AmountMinor int64     `gorm:"column:amount_minor_units;not null"`
	Status      string    `gorm:"type:varchar(20);not null"`
	Date        time.Time `gorm:"type:date;not null"`
	CreatedAt   time.Time `gorm:"not null"`
	UpdatedAt   time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		OwnedEntity: shared.OwnedEntity{
			BaseEntity: shared.BaseEntity{
				ID:        m.ID,
				CreatedAt: m.CreatedAt,
				UpdatedAt: m.UpdatedAt,
			},
			OwnerID: m.OwnerID,
		},
		CustomerID:  m.CustomerID,
		AmountMinor: m.AmountMinor,
		Status:      billing.InvoiceStatus(m.Status),
		Date:        m.Date,
	}
}

// InvoiceModelFromDomain builds the persistence model from a domain Invoice
func InvoiceModelFromDomain(i *billing.Invoice) *InvoiceModel {
	return &InvoiceModel{
		ID:          i.ID,
		OwnerID:     i.OwnerID,
		CustomerID:  i.CustomerID,
		AmountMinor: i.AmountMinor,
		Status:      string(i.Status),
		Date:        i.Date,
		CreatedAt:   i.CreatedAt,
		UpdatedAt:   i.UpdatedAt,
	}
}

// RevenueModel is the persistence model for the revenue series
type RevenueModel struct {
	Month       string `gorm:"type:varchar(7);primary_key"`
	AmountMinor int64  `gorm:"column:amount_minor_units;not null"`
}

// TableName returns the table name for GORM
func (RevenueModel) TableName() string {
	return "revenue"
}

// ToDomain converts the persistence model to a domain RevenuePoint
func (m *RevenueModel) ToDomain() billing.RevenuePoint {
	return billing.RevenuePoint{
		Month:       m.Month,
		AmountMinor: m.AmountMinor,
	}
}

// ProfileModel is the persistence model for the per-owner Profile
type ProfileModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	FullName  *string   `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (ProfileModel) TableName() string {
	return "profiles"
}

// ToDomain converts the persistence model to a domain Profile
func (m *ProfileModel) ToDomain() *identity.Profile {
	return &identity.Profile{
		ID:        m.ID,
		FullName:  m.FullName,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// ProfileModelFromDomain builds the persistence model from a domain Profile
func ProfileModelFromDomain(p *identity.Profile) *ProfileModel {
	return &ProfileModel{
		ID:        p.ID,
		FullName:  p.FullName,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
