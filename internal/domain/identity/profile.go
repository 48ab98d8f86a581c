// Package identity holds the tenant-facing identity aggregate: the
// per-owner profile row provisioned lazily on first authenticated
// access.
package identity

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Profile is the per-owner profile record. Its id equals the owner id,
// so the primary key doubles as the uniqueness constraint that keeps
// lazy provisioning idempotent.
type Profile struct {
	ID        uuid.UUID
	FullName  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewProfile creates a profile for the given owner
func NewProfile(ownerID uuid.UUID, fullName *string) *Profile {
	now := time.Now()
	return &Profile{
		ID:        ownerID,
		FullName:  fullName,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ProfileRepository defines persistence operations for profiles
type ProfileRepository interface {
	// FindByID returns the profile or shared.ErrNotFound.
	FindByID(ctx context.Context, id uuid.UUID) (*Profile, error)
	// Insert creates the profile, returning shared.ErrAlreadyExists
	// when the row is already present (benign create-if-absent race).
	Insert(ctx context.Context, profile *Profile) error
}
