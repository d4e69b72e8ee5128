package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/identity"
)

type RequestStatus string

const (
	RequestPending   RequestStatus = "pending"
	RequestAccepted  RequestStatus = "accepted"
	RequestRejected  RequestStatus = "rejected"
	RequestCancelled RequestStatus = "cancelled"
)

const (
	RequestBuy  = "buy"
	RequestRent = "rent"
)

// Terminal reports whether no further transition is permitted.
func (s RequestStatus) Terminal() bool {
	return s == RequestAccepted || s == RequestRejected || s == RequestCancelled
}

// PropertyRequest is a buyer/renter's transaction intent against a
// listing. OwnerID is the account id of the property's owner resolved at
// creation time through the owner profile, never the profile id itself.
type PropertyRequest struct {
	ID          uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID  uuid.UUID          `gorm:"type:uuid;not null;index" json:"property_id"`
	RequesterID identity.AccountID `gorm:"type:uuid;not null;index:idx_property_requests_requester_status" json:"requester_id"`
	OwnerID     identity.AccountID `gorm:"type:uuid;not null;index:idx_property_requests_owner_status" json:"owner_id"`

	RequestType string     `gorm:"size:10;not null" json:"request_type"`
	Message     string     `gorm:"size:2000" json:"message"`
	OfferAmount *float64   `json:"offer_amount,omitempty"`
	MoveInDate  *time.Time `json:"preferred_move_in_date,omitempty"`

	Status          RequestStatus `gorm:"size:20;not null;default:'pending';index:idx_property_requests_requester_status;index:idx_property_requests_owner_status" json:"status"`
	ResponseMessage string        `gorm:"size:2000" json:"response_message,omitempty"`
	RespondedAt     *time.Time    `json:"responded_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
}
