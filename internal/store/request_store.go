package store

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/apperr"
	"github.com/propspace/propspace-backend/internal/identity"
	"github.com/propspace/propspace-backend/internal/models"
	"gorm.io/gorm"
)

type RequestStore struct {
	db *gorm.DB
}

func NewRequestStore(db *gorm.DB) *RequestStore {
	return &RequestStore{db: db}
}

func (s *RequestStore) Create(r *models.PropertyRequest) error {
	if err := s.db.Create(r).Error; err != nil {
		return fmt.Errorf("failed to create property request: %w", err)
	}
	return nil
}

func (s *RequestStore) Get(id uuid.UUID) (*models.PropertyRequest, error) {
	var r models.PropertyRequest
	if err := s.db.First(&r, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("property request not found")
		}
		return nil, fmt.Errorf("failed to load property request: %w", err)
	}
	return &r, nil
}

// Transition moves a pending request to a terminal status exactly once.
// Concurrent accept and cancel yield one winner; the loser gets a
// conflict naming the status the request actually ended in.
func (s *RequestStore) Transition(id uuid.UUID, updates map[string]interface{}) error {
	result := s.db.Model(&models.PropertyRequest{}).
		Where("id = ? AND status = ?", id, models.RequestPending).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to transition property request: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		current, err := s.Get(id)
		if err != nil {
			return err
		}
		if current.Status.Terminal() {
			return apperr.InvalidTransition("request is already %s", current.Status)
		}
		return apperr.Conflict("request transition lost a concurrent update")
	}
	return nil
}

// ListByRequester is served by the (requester_id, status) index.
func (s *RequestStore) ListByRequester(requesterID identity.AccountID, status string, limit, offset int) ([]models.PropertyRequest, int64, error) {
	query := s.db.Model(&models.PropertyRequest{}).
		Where("requester_id = ?", requesterID).
		Scopes(WithStatus(status))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count property requests: %w", err)
	}

	var requests []models.PropertyRequest
	err := query.Order("created_at DESC").Scopes(Page(limit, offset)).Find(&requests).Error
	return requests, total, err
}

// ListByOwner is served by the (owner_id, status) index.
func (s *RequestStore) ListByOwner(ownerID identity.AccountID, status string, limit, offset int) ([]models.PropertyRequest, int64, error) {
	query := s.db.Model(&models.PropertyRequest{}).
		Where("owner_id = ?", ownerID).
		Scopes(WithStatus(status))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count property requests: %w", err)
	}

	var requests []models.PropertyRequest
	err := query.Order("created_at DESC").Scopes(Page(limit, offset)).Find(&requests).Error
	return requests, total, err
}

// CountOpenForProperty reports how many requests are still pending
// against the property. A listing with open requests is never
// hard-deleted.
func (s *RequestStore) CountOpenForProperty(propertyID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.Model(&models.PropertyRequest{}).
		Where("property_id = ? AND status = ?", propertyID, models.RequestPending).
		Count(&count).Error
	return count, err
}
