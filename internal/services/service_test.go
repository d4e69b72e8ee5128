package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/actor"
	"github.com/propspace/propspace-backend/internal/database"
	"github.com/propspace/propspace-backend/internal/identity"
	"github.com/propspace/propspace-backend/internal/models"
	"github.com/propspace/propspace-backend/internal/store"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.MigrateModels(db))
	return db
}

// fixture wires the full service graph against one test database.
type fixture struct {
	db       *gorm.DB
	listings *ListingService
	requests *RequestService
	notifier *NotificationService

	owner        actor.Actor
	ownerProfile models.OwnerProfile
	admin        actor.Actor
	buyer        actor.Actor
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupDB(t)

	listingStore := store.NewListingStore(db)
	requestStore := store.NewRequestStore(db)
	ids := NewIdentityService(db)
	notifier := NewNotificationService(db)
	filter := NewModerationService(db)

	f := &fixture{
		db:       db,
		listings: NewListingService(listingStore, requestStore, ids, notifier, filter),
		requests: NewRequestService(requestStore, listingStore, ids, notifier, filter),
		notifier: notifier,
	}
	f.owner, f.ownerProfile = seedOwner(t, db)
	f.admin = seedUser(t, db, models.RoleAdmin)
	f.buyer = seedUser(t, db, models.RoleUser)
	return f
}

func seedUser(t *testing.T, db *gorm.DB, role string) actor.Actor {
	t.Helper()
	user := models.User{
		ID:    identity.NewAccountID(),
		Email: fmt.Sprintf("%s@example.com", uuid.NewString()),
		Role:  role,
	}
	require.NoError(t, db.Create(&user).Error)
	return actor.Actor{ID: user.ID, Role: role}
}

func seedOwner(t *testing.T, db *gorm.DB) (actor.Actor, models.OwnerProfile) {
	t.Helper()
	act := seedUser(t, db, models.RoleOwner)
	profile := models.OwnerProfile{
		ID:     identity.NewProfileID(),
		UserID: act.ID,
	}
	require.NoError(t, db.Create(&profile).Error)
	return act, profile
}

func validListing() SubmitListingInput {
	return SubmitListingInput{
		Title:        "Loft",
		Description:  "Bright loft downtown",
		PropertyType: "apartment",
		ListingType:  models.ListingRent,
		Price:        1200,
		Address:      "1 Main St",
		City:         "Austin",
		State:        "TX",
		ZipCode:      "78701",
		Bedrooms:     2,
		Bathrooms:    1,
		Area:         85,
		Images:       []string{"a.jpg"},
	}
}

// submitApproved pushes a listing through submission and admin approval.
func (f *fixture) submitApproved(t *testing.T) *models.Property {
	t.Helper()
	property, err := f.listings.Submit(f.owner, validListing())
	require.NoError(t, err)
	approved, err := f.listings.Decide(f.admin, property.ID, DecisionApprove, "", "")
	require.NoError(t, err)
	return approved
}

func timePtr(t *testing.T) *time.Time {
	t.Helper()
	at := time.Now().AddDate(0, 1, 0)
	return &at
}

// notificationsFor returns the recipient's notifications of one kind.
func (f *fixture) notificationsFor(t *testing.T, account identity.AccountID, kind string) []models.Notification {
	t.Helper()
	var out []models.Notification
	require.NoError(t, f.db.Where("user_id = ? AND kind = ?", account, kind).Find(&out).Error)
	return out
}
