package approval

import (
	"testing"

	"github.com/propspace/propspace-backend/internal/apperr"
	"github.com/propspace/propspace-backend/internal/identity"
	"github.com/propspace/propspace-backend/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestRequireRole(t *testing.T) {
	assert.NoError(t, RequireRole(models.RoleAdmin, models.RoleAdmin))
	assert.NoError(t, RequireRole(models.RoleOwner, models.RoleOwner, models.RoleAdmin))

	err := RequireRole(models.RoleUser, models.RoleAdmin)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestRequireOwner(t *testing.T) {
	owner := identity.NewAccountID()
	other := identity.NewAccountID()

	assert.NoError(t, RequireOwner(owner, owner))

	err := RequireOwner(other, owner)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestRequireRequester(t *testing.T) {
	requester := identity.NewAccountID()

	assert.NoError(t, RequireRequester(requester, requester))

	err := RequireRequester(identity.NewAccountID(), requester)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestRequireSourceState(t *testing.T) {
	assert.NoError(t, RequireSourceState(models.PropertyPending, models.PropertyPending))
	assert.NoError(t, RequireSourceState(models.PropertySold,
		models.PropertySold, models.PropertyRented, models.PropertyInactive))

	err := RequireSourceState(models.PropertyRejected, models.PropertyPending)
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))
	// The offending state is named so clients can tell what happened.
	assert.Contains(t, err.Error(), "rejected")
}
