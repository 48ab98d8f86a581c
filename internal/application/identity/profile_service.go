// Package identity resolves the authenticated owner and provisions the
// per-owner profile row lazily on first touch.
package identity

import (
	"context"
	"errors"

	"github.com/dashboard/backend/internal/domain/identity"
	"github.com/dashboard/backend/internal/domain/shared"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ProfileService provisions profiles for authenticated owners
type ProfileService struct {
	profileRepo identity.ProfileRepository
	logger      *zap.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profileRepo identity.ProfileRepository, logger *zap.Logger) *ProfileService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileService{
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// EnsureProfile makes sure a profile row exists for the owner. It is
// create-if-absent: a concurrent insert losing the race is benign, and
// any provisioning failure is logged and swallowed so it never blocks
// the request that triggered it.
func (s *ProfileService) EnsureProfile(ctx context.Context, ownerID uuid.UUID, fullName *string) {
	if ownerID == uuid.Nil {
		return
	}

	_, err := s.profileRepo.FindByID(ctx, ownerID)
	if err == nil {
		return
	}
	if !errors.Is(err, shared.ErrNotFound) {
		s.logger.Warn("Profile lookup failed",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
		return
	}

	profile := identity.NewProfile(ownerID, fullName)
	if err := s.profileRepo.Insert(ctx, profile); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			// Lost the create race; the row exists, which is all we need.
			return
		}
		s.logger.Warn("Profile provisioning failed",
			zap.String("owner_id", ownerID.String()),
			zap.Error(err))
	}
}

// GetProfile returns the owner's profile or shared.ErrNotFound
func (s *ProfileService) GetProfile(ctx context.Context, ownerID uuid.UUID) (*identity.Profile, error) {
	if ownerID == uuid.Nil {
		return nil, shared.ErrUnauthenticated
	}
	return s.profileRepo.FindByID(ctx, ownerID)
}
