package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/identity"
	"gorm.io/gorm"
)

type PropertyStatus string

const (
	PropertyPending  PropertyStatus = "pending"
	PropertyApproved PropertyStatus = "approved"
	PropertyRejected PropertyStatus = "rejected"
	PropertySold     PropertyStatus = "sold"
	PropertyRented   PropertyStatus = "rented"
	PropertyInactive PropertyStatus = "inactive"
)

const (
	ListingSale = "sale"
	ListingRent = "rent"
)

var PropertyTypes = []string{"apartment", "house", "condo", "townhouse", "land", "commercial"}

// Property is a listing. It enters the system as pending and becomes
// publicly visible only after an admin approval; IsActive independently
// gates search visibility so sold/rented/inactive listings stay on
// record without showing up.
type Property struct {
	ID           uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID      identity.ProfileID `gorm:"type:uuid;not null;index:idx_properties_owner_status" json:"owner_id"`
	Title        string             `gorm:"not null;size:255" json:"title"`
	Description  string             `gorm:"type:text;not null" json:"description"`
	PropertyType string             `gorm:"size:50;not null" json:"property_type"`
	ListingType  string             `gorm:"size:10;not null" json:"listing_type"`
	Price        float64            `gorm:"not null" json:"price"`

	Address string `gorm:"size:255" json:"address"`
	City    string `gorm:"size:100;index" json:"city"`
	State   string `gorm:"size:100" json:"state"`
	ZipCode string `gorm:"size:20" json:"zip_code"`

	Bedrooms  int     `json:"bedrooms"`
	Bathrooms int     `json:"bathrooms"`
	Area      float64 `json:"area"`
	YearBuilt int     `json:"year_built"`
	Parking   bool    `json:"parking"`

	Amenities StringList `gorm:"type:json" json:"amenities"`
	Images    ImageList  `gorm:"type:json" json:"images"`

	Status   PropertyStatus `gorm:"size:20;not null;default:'pending';index:idx_properties_owner_status" json:"status"`
	IsActive bool           `gorm:"default:false;index" json:"is_active"`

	ApprovedBy      *identity.AccountID `gorm:"type:uuid" json:"approved_by,omitempty"`
	ApprovedAt      *time.Time          `json:"approved_at,omitempty"`
	RejectionReason string              `gorm:"size:1000" json:"rejection_reason,omitempty"`
	AdminNotes      string              `gorm:"size:1000" json:"admin_notes,omitempty"`

	Views int `gorm:"default:0" json:"views"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`

	Owner OwnerProfile `gorm:"foreignKey:OwnerID" json:"-"`
}

// Visible reports whether the listing may be shown publicly and may
// receive transaction requests.
func (p *Property) Visible() bool {
	return p.Status == PropertyApproved && p.IsActive
}

// Favorite is one user's bookmark on a listing. The pair is unique so
// favoriting is idempotent at the schema level.
type Favorite struct {
	ID         uuid.UUID          `gorm:"type:uuid;primaryKey" json:"id"`
	PropertyID uuid.UUID          `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_property_user" json:"property_id"`
	UserID     identity.AccountID `gorm:"type:uuid;not null;uniqueIndex:idx_favorites_property_user" json:"user_id"`
	CreatedAt  time.Time          `json:"created_at"`

	Property Property `gorm:"foreignKey:PropertyID" json:"-"`
}
