// Package owner provides multi-tenant database scoping for GORM.
//
// It centralizes the owner_id filtering that prevents cross-tenant data
// access at the repository layer: every read and write issued through a
// ScopedDB carries WHERE owner_id = ? unconditionally, so the isolation
// invariant is enforced in one place instead of at every call site.
//
// Usage:
//
//	db := owner.NewScopedDB(gormDB)
//	scoped := db.WithOwner(ownerID) // applies owner filtering
//	scoped.Find(&customers)         // WHERE owner_id = 'xxx' is auto-added
package owner

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrOwnerRequired is returned when an owner id is required but missing
var ErrOwnerRequired = errors.New("owner_id is required but was not provided")

// Scope applies owner filtering to GORM queries
func Scope(ownerID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}

// ScopeTable applies owner filtering qualified by table name, for
// queries that join owner-scoped tables and would otherwise make the
// owner_id column reference ambiguous.
func ScopeTable(table string, ownerID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(table+".owner_id = ?", ownerID)
	}
}

// ScopedDB wraps a GORM DB with mandatory owner scoping
type ScopedDB struct {
	db       *gorm.DB
	required bool
}

// NewScopedDB creates a new ScopedDB. Owner scoping is required by
// default: asking for an unscoped query is an explicit, greppable act.
func NewScopedDB(db *gorm.DB) *ScopedDB {
	return &ScopedDB{db: db, required: true}
}

// WithOwner returns a GORM DB scoped to the given owner. A nil owner
// id yields a DB that errors on any operation rather than one that
// silently queries every tenant's rows.
func (s *ScopedDB) WithOwner(ctx context.Context, ownerID uuid.UUID) *gorm.DB {
	if ownerID == uuid.Nil {
		db := s.db.WithContext(ctx)
		_ = db.AddError(ErrOwnerRequired)
		return db
	}
	return s.db.WithContext(ctx).Scopes(Scope(ownerID))
}

// WithOwnerTable returns a GORM DB scoped to the owner with the
// filter qualified by table name, for joined queries.
func (s *ScopedDB) WithOwnerTable(ctx context.Context, table string, ownerID uuid.UUID) *gorm.DB {
	if ownerID == uuid.Nil {
		db := s.db.WithContext(ctx)
		_ = db.AddError(ErrOwnerRequired)
		return db
	}
	return s.db.WithContext(ctx).Scopes(ScopeTable(table, ownerID))
}

// Unscoped returns the underlying DB without any owner scoping.
// Only the ownerless revenue series and profile provisioning use this.
func (s *ScopedDB) Unscoped(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}
