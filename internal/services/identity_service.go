package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/apperr"
	"github.com/propspace/propspace-backend/internal/identity"
	"github.com/propspace/propspace-backend/internal/models"
	"gorm.io/gorm"
)

// IdentityService is the single place that walks the
// Property → OwnerProfile → User indirection. Every hop fails explicitly
// rather than silently defaulting, because authorization and
// notifications downstream depend on the resolved account being right.
type IdentityService struct {
	db *gorm.DB
}

func NewIdentityService(db *gorm.DB) *IdentityService {
	return &IdentityService{db: db}
}

// OwnerAccountFor resolves a property's owner profile to the underlying
// account id.
func (s *IdentityService) OwnerAccountFor(propertyID uuid.UUID) (identity.AccountID, error) {
	var property models.Property
	if err := s.db.Select("id", "owner_id").First(&property, "id = ?", propertyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return identity.AccountID{}, apperr.NotFound("property not found")
		}
		return identity.AccountID{}, fmt.Errorf("failed to load property: %w", err)
	}
	return s.AccountForProfile(property.OwnerID)
}

// AccountForProfile resolves an owner profile to its account, verifying
// the account still exists.
func (s *IdentityService) AccountForProfile(profileID identity.ProfileID) (identity.AccountID, error) {
	var profile models.OwnerProfile
	if err := s.db.First(&profile, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return identity.AccountID{}, apperr.NotFound("owner profile not found")
		}
		return identity.AccountID{}, fmt.Errorf("failed to load owner profile: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, "id = ?", profile.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return identity.AccountID{}, apperr.NotFound("owner account not found")
		}
		return identity.AccountID{}, fmt.Errorf("failed to load owner account: %w", err)
	}
	return user.ID, nil
}

// ProfileFor returns the owner profile belonging to an account, if any.
func (s *IdentityService) ProfileFor(account identity.AccountID) (*models.OwnerProfile, error) {
	var profile models.OwnerProfile
	if err := s.db.First(&profile, "user_id = ?", account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Forbidden("no owner profile for this account")
		}
		return nil, fmt.Errorf("failed to load owner profile: %w", err)
	}
	return &profile, nil
}
