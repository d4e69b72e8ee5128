package models

import (
	"time"

	"github.com/propspace/propspace-backend/internal/identity"
	"gorm.io/gorm"
)

// Roles recognised in JWT claims and the users table.
const (
	RoleUser  = "user"
	RoleOwner = "owner"
	RoleAdmin = "admin"
)

// User is the account record. Accounts are provisioned by the external
// identity service; this table exists for foreign keys, role checks and
// owner resolution.
type User struct {
	ID        identity.AccountID `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string             `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Name      string             `gorm:"size:255" json:"name"`
	Role      string             `gorm:"size:20;default:'user'" json:"role"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
	DeletedAt gorm.DeletedAt     `gorm:"index" json:"-"`
}

// OwnerProfile is the listing-owner profile a Property points at. The
// profile belongs to exactly one account; everything that authorizes or
// notifies resolves through UserID rather than comparing profile ids to
// account ids.
type OwnerProfile struct {
	ID          identity.ProfileID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      identity.AccountID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CompanyName string             `gorm:"size:255" json:"company_name"`
	Phone       string             `gorm:"size:50" json:"phone"`
	CreatedAt   time.Time          `json:"created_at"`
	UpdatedAt   time.Time          `json:"updated_at"`

	User User `gorm:"foreignKey:UserID" json:"-"`
}
