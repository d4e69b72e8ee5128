package store

import (
	"github.com/propspace/propspace-backend/internal/identity"
	"gorm.io/gorm"
)

// ForOwner returns a GORM scope that filters listings by owner profile.
func ForOwner(ownerID identity.ProfileID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("owner_id = ?", ownerID)
	}
}

// WithStatus returns a GORM scope filtering by status when non-empty.
func WithStatus(status string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if status == "" {
			return db
		}
		return db.Where("status = ?", status)
	}
}

// Page returns a GORM scope applying sane pagination bounds.
func Page(limit, offset int) func(db *gorm.DB) *gorm.DB {
	if limit < 1 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Limit(limit).Offset(offset)
	}
}
