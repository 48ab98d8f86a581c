// Package billing holds the invoicing dashboard's core aggregates:
// customers, invoices and the reference revenue series. Every customer
// and invoice row belongs to exactly one owner; cross-owner access is a
// data breach, so the owner id is part of every entity and every
// repository contract.
package billing

import (
	"regexp"
	"strings"
	"time"

	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/google/uuid"
)

const (
	// CustomerNameMaxLength is the maximum accepted customer name length
	CustomerNameMaxLength = 255
	// CustomerEmailMaxLength is the maximum accepted customer email length
	CustomerEmailMaxLength = 255
)

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Customer represents a customer owned by a single tenant
type Customer struct {
	shared.OwnedEntity
	Name     string
	Email    string
	ImageURL string
}

// NewCustomer creates a new customer for the given owner.
// The owner id is always derived server-side by the caller, never
// taken from client input.
func NewCustomer(ownerID uuid.UUID, name, email string) (*Customer, error) {
	if err := ValidateCustomerName(name); err != nil {
		return nil, err
	}
	if err := ValidateCustomerEmail(email); err != nil {
		return nil, err
	}
	return &Customer{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		Name:        name,
		Email:       strings.ToLower(email),
	}, nil
}

// Update updates the customer's mutable fields (name and email only)
func (c *Customer) Update(name, email string) error {
	if err := ValidateCustomerName(name); err != nil {
		return err
	}
	if err := ValidateCustomerEmail(email); err != nil {
		return err
	}
	c.Name = name
	c.Email = strings.ToLower(email)
	c.UpdatedAt = time.Now()
	return nil
}

// ValidateCustomerName checks the 1..255 character constraint
func ValidateCustomerName(name string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Please enter a customer name.")
	}
	if len(name) > CustomerNameMaxLength {
		return shared.NewDomainError("INVALID_NAME", "Name is too long.")
	}
	return nil
}

// ValidateCustomerEmail checks address shape and the 255 character cap
func ValidateCustomerEmail(email string) error {
	if len(email) > CustomerEmailMaxLength {
		return shared.NewDomainError("INVALID_EMAIL", "Email is too long.")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Please enter a valid email address.")
	}
	return nil
}

// CustomerField is the minimal (id, name) projection used by
// selection widgets outside the core.
type CustomerField struct {
	ID   uuid.UUID
	Name string
}

// CustomerSummary is a customer joined with per-customer invoice
// aggregates. It is derived fresh per request and never persisted.
// Invoices in statuses other than pending/paid count toward
// TotalInvoices but toward neither sum.
type CustomerSummary struct {
	ID                uuid.UUID
	Name              string
	Email             string
	ImageURL          string
	TotalInvoices     int
	TotalPendingMinor int64
	TotalPaidMinor    int64
}
