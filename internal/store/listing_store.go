// Package store holds the entity store adapters. All state transitions
// go through conditional updates guarded on the source status; a plain
// read-then-save would let two concurrent writers both "succeed" with
// the second silently overwriting the first.
package store

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/apperr"
	"github.com/propspace/propspace-backend/internal/identity"
	"github.com/propspace/propspace-backend/internal/models"
	"gorm.io/gorm"
)

type ListingStore struct {
	db *gorm.DB
}

func NewListingStore(db *gorm.DB) *ListingStore {
	return &ListingStore{db: db}
}

// InTx runs fn against a transactional copy of the store.
func (s *ListingStore) InTx(fn func(tx *ListingStore) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(NewListingStore(tx))
	})
}

func (s *ListingStore) Create(p *models.Property) error {
	if err := s.db.Create(p).Error; err != nil {
		return fmt.Errorf("failed to create property: %w", err)
	}
	return nil
}

func (s *ListingStore) Get(id uuid.UUID) (*models.Property, error) {
	var p models.Property
	if err := s.db.First(&p, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("property not found")
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}
	return &p, nil
}

// Patch writes only the given columns. Status and visibility never pass
// through here, so a concurrent status transition cannot be overwritten
// by a stale read.
func (s *ListingStore) Patch(id uuid.UUID, updates map[string]interface{}) error {
	result := s.db.Model(&models.Property{}).
		Where("id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to patch property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		// No-op writes also report zero rows; only a missing row is an error.
		if _, err := s.Get(id); err != nil {
			return err
		}
	}
	return nil
}

// Transition applies updates to the property only if its status is still
// one of the expected source states. The loser of a concurrent
// transition gets an invalid-transition error naming the state the row
// actually moved to.
func (s *ListingStore) Transition(id uuid.UUID, from []models.PropertyStatus, updates map[string]interface{}) error {
	result := s.db.Model(&models.Property{}).
		Where("id = ? AND status IN ?", id, from).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to transition property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		current, err := s.Get(id)
		if err != nil {
			return err
		}
		return apperr.InvalidTransition("property is %s, not in a state that permits this change", current.Status)
	}
	return nil
}

// SoftDelete hides the listing without destroying its history.
func (s *ListingStore) SoftDelete(id uuid.UUID) error {
	result := s.db.Delete(&models.Property{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete property: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("property not found")
	}
	return nil
}

// IncrementViews bumps the view counter atomically at the store layer so
// concurrent reads never lose updates.
func (s *ListingStore) IncrementViews(id uuid.UUID) error {
	return s.db.Model(&models.Property{}).
		Where("id = ?", id).
		UpdateColumn("views", gorm.Expr("views + 1")).Error
}

// PublicFilter narrows ListPublic results.
type PublicFilter struct {
	City         string
	ListingType  string
	PropertyType string
	MinPrice     float64
	MaxPrice     float64
}

// ListPublic returns approved, active listings with basic filters.
func (s *ListingStore) ListPublic(f PublicFilter, limit, offset int) ([]models.Property, int64, error) {
	query := s.db.Model(&models.Property{}).
		Where("status = ? AND is_active = ?", models.PropertyApproved, true)
	if f.City != "" {
		query = query.Where("city = ?", f.City)
	}
	if f.ListingType != "" {
		query = query.Where("listing_type = ?", f.ListingType)
	}
	if f.PropertyType != "" {
		query = query.Where("property_type = ?", f.PropertyType)
	}
	if f.MinPrice > 0 {
		query = query.Where("price >= ?", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		query = query.Where("price <= ?", f.MaxPrice)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	var properties []models.Property
	err := query.Order("created_at DESC").Scopes(Page(limit, offset)).Find(&properties).Error
	return properties, total, err
}

// ListByOwner returns the owner's listings, optionally by status. Served
// by the (owner_id, status) index.
func (s *ListingStore) ListByOwner(ownerID identity.ProfileID, status string, limit, offset int) ([]models.Property, int64, error) {
	query := s.db.Model(&models.Property{}).
		Scopes(ForOwner(ownerID), WithStatus(status))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	var properties []models.Property
	err := query.Order("created_at DESC").Scopes(Page(limit, offset)).Find(&properties).Error
	return properties, total, err
}

// ListByStatus is the admin review queue query.
func (s *ListingStore) ListByStatus(status string, limit, offset int) ([]models.Property, int64, error) {
	query := s.db.Model(&models.Property{}).Scopes(WithStatus(status))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count properties: %w", err)
	}

	var properties []models.Property
	err := query.Order("created_at ASC").Scopes(Page(limit, offset)).Find(&properties).Error
	return properties, total, err
}

// --- update proposals ---

func (s *ListingStore) CreateUpdateRequest(r *models.PropertyUpdateRequest) error {
	if err := s.db.Create(r).Error; err != nil {
		return fmt.Errorf("failed to create update request: %w", err)
	}
	return nil
}

func (s *ListingStore) GetUpdateRequest(id uuid.UUID) (*models.PropertyUpdateRequest, error) {
	var r models.PropertyUpdateRequest
	if err := s.db.First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("update request not found")
		}
		return nil, fmt.Errorf("failed to load update request: %w", err)
	}
	return &r, nil
}

// HasPendingUpdateRequest reports whether the property already carries a
// pending proposal. Only one may be pending at a time.
func (s *ListingStore) HasPendingUpdateRequest(propertyID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.Model(&models.PropertyUpdateRequest{}).
		Where("property_id = ? AND status = ?", propertyID, models.UpdatePending).
		Count(&count).Error
	return count > 0, err
}

// TransitionUpdateRequest finalizes a pending proposal exactly once.
func (s *ListingStore) TransitionUpdateRequest(id uuid.UUID, updates map[string]interface{}) error {
	result := s.db.Model(&models.PropertyUpdateRequest{}).
		Where("id = ? AND status = ?", id, models.UpdatePending).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to transition update request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		current, err := s.GetUpdateRequest(id)
		if err != nil {
			return err
		}
		return apperr.InvalidTransition("update request is already %s", current.Status)
	}
	return nil
}

// ListUpdateRequests returns proposals by status for the admin queue.
func (s *ListingStore) ListUpdateRequests(status string, limit, offset int) ([]models.PropertyUpdateRequest, int64, error) {
	query := s.db.Model(&models.PropertyUpdateRequest{}).Scopes(WithStatus(status))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count update requests: %w", err)
	}

	var requests []models.PropertyUpdateRequest
	err := query.Order("created_at ASC").Scopes(Page(limit, offset)).Find(&requests).Error
	return requests, total, err
}

// --- favorites ---

// AddFavorite relies on the unique (property_id, user_id) index rather
// than a pre-check, so a concurrent duplicate surfaces as a conflict
// instead of a masked driver error.
func (s *ListingStore) AddFavorite(propertyID uuid.UUID, userID identity.AccountID) error {
	fav := models.Favorite{
		ID:         uuid.New(),
		PropertyID: propertyID,
		UserID:     userID,
	}
	if err := s.db.Create(&fav).Error; err != nil {
		if isDuplicateKey(err) {
			return apperr.Conflict("property already favorited")
		}
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// isDuplicateKey recognizes unique-violation errors from both drivers in
// use, with or without the dialector's error translation.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint")
}

func (s *ListingStore) RemoveFavorite(propertyID uuid.UUID, userID identity.AccountID) error {
	result := s.db.Where("property_id = ? AND user_id = ?", propertyID, userID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperr.NotFound("favorite not found")
	}
	return nil
}

func (s *ListingStore) CountFavorites(propertyID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.Favorite{}).Where("property_id = ?", propertyID).Count(&count).Error
	return count, err
}
