package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/identity"
	"gorm.io/datatypes"
)

type UpdateRequestStatus string

const (
	UpdatePending  UpdateRequestStatus = "pending"
	UpdateApproved UpdateRequestStatus = "approved"
	UpdateRejected UpdateRequestStatus = "rejected"
)

// PropertyUpdateRequest is a proposed diff against an approved listing,
// waiting for a single admin decision. At most one pending request may
// exist per property; once decided it is never mutated again.
type PropertyUpdateRequest struct {
	ID              uuid.UUID           `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID      uuid.UUID           `gorm:"type:uuid;not null;index" json:"property_id"`
	OwnerID         identity.ProfileID  `gorm:"type:uuid;not null;index" json:"owner_id"`
	ProposedUpdates datatypes.JSON      `gorm:"type:json" json:"proposed_updates"`
	Status          UpdateRequestStatus `gorm:"size:20;not null;default:'pending';index" json:"status"`
	ReviewedBy      *identity.AccountID `gorm:"type:uuid" json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time          `json:"reviewed_at,omitempty"`
	RejectionReason string              `gorm:"size:1000" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`

	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
}

// Patch decodes the stored proposal.
func (r *PropertyUpdateRequest) Patch() (*PropertyPatch, error) {
	var patch PropertyPatch
	if err := json.Unmarshal(r.ProposedUpdates, &patch); err != nil {
		return nil, err
	}
	return &patch, nil
}
