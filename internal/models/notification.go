package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/identity"
	"gorm.io/datatypes"
)

// Notification kinds emitted by the workflows.
const (
	NotifyPropertyApproved      = "property_approved"
	NotifyPropertyRejected      = "property_rejected"
	NotifyPropertyRequest       = "property_request"
	NotifyRequestAccepted       = "request_accepted"
	NotifyRequestRejected       = "request_rejected"
	NotifyRequestCancelled      = "request_cancelled"
	NotifyPropertyUpdateDecided = "property_update_decided"
)

// Notification is a fire-and-forget record of an event for a recipient.
// The core only creates rows; reading and archiving belong to the
// notification UI, which is out of scope here.
type Notification struct {
	ID        uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    identity.AccountID `gorm:"type:uuid;not null;index" json:"user_id"`
	Kind      string             `gorm:"size:50;not null" json:"kind"`
	Title     string             `gorm:"size:255;not null" json:"title"`
	Message   string             `gorm:"size:2000" json:"message"`
	Data      datatypes.JSON     `gorm:"type:json" json:"data"`
	IsRead    bool               `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time          `json:"created_at"`
}
