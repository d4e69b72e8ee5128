package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/identity"
)

// PropertyReport is an append-only complaint against a listing. Reports
// never mutate the listing itself; admins review them from the
// moderation panel.
type PropertyReport struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID          `gorm:"type:uuid;not null;index" json:"property_id"`
	ReporterID identity.AccountID `gorm:"type:uuid;not null;index" json:"reporter_id"`
	Reason     string             `gorm:"not null;size:500" json:"reason"`
	Status     string             `gorm:"not null;default:'pending';size:50" json:"status"`
	AdminNote  string             `gorm:"size:1000" json:"admin_note,omitempty"`
	CreatedAt  time.Time          `json:"created_at"`
	UpdatedAt  time.Time          `json:"updated_at"`

	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
}
