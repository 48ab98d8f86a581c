package billing

import (
	"time"

	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// InvoiceStatus represents the payment status of an invoice
type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice represents an invoice issued to a customer. AmountMinor is
// the amount in integer minor units (cents); it is never stored as a
// float so aggregation stays exact.
type Invoice struct {
	shared.OwnedEntity
	CustomerID  uuid.UUID
	AmountMinor int64
	Status      InvoiceStatus
	Date        time.Time
}

// NewInvoice creates a new invoice for the given owner and customer.
// The invoice's owner id is derived from the resolved tenant, which is
// also the only tenant whose customers it may reference; the write path
// guarantees invoice.OwnerID == customer.OwnerID by construction.
func NewInvoice(ownerID, customerID uuid.UUID, amountMinor int64, status InvoiceStatus, date time.Time) (*Invoice, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Please select a customer.")
	}
	if amountMinor <= 0 {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Please enter an amount greater than $0.")
	}
	if status != InvoiceStatusPending && status != InvoiceStatusPaid {
		return nil, shared.NewDomainError("INVALID_STATUS", "Please select an invoice status.")
	}
	return &Invoice{
		OwnedEntity: shared.NewOwnedEntity(ownerID),
		CustomerID:  customerID,
		AmountMinor: amountMinor,
		Status:      status,
		Date:        date,
	}, nil
}

// InvoiceWithCustomer is an invoice row denormalized with the owning
// customer's display fields, as shown in the invoices table.
type InvoiceWithCustomer struct {
	ID            uuid.UUID
	CustomerID    uuid.UUID
	AmountMinor   int64
	Status        InvoiceStatus
	Date          time.Time
	CustomerName  string
	CustomerEmail string
	CustomerImage string
}

// StatusAmount is the (status, amount) pair scanned for card stats
type StatusAmount struct {
	Status      InvoiceStatus
	AmountMinor int64
}
