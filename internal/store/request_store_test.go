package store

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/apperr"
	"github.com/propspace/propspace-backend/internal/identity"
	"github.com/propspace/propspace-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRequest(t *testing.T, s *RequestStore, status models.RequestStatus) *models.PropertyRequest {
	t.Helper()
	offer := 250000.0
	r := &models.PropertyRequest{
		ID:          uuid.New(),
		PropertyID:  uuid.New(),
		RequesterID: identity.NewAccountID(),
		OwnerID:     identity.NewAccountID(),
		RequestType: models.RequestBuy,
		Message:     "interested",
		OfferAmount: &offer,
		Status:      status,
	}
	require.NoError(t, s.Create(r))
	return r
}

func TestRequestTransitionMovesPendingRow(t *testing.T) {
	s := NewRequestStore(setupDB(t))
	r := seedRequest(t, s, models.RequestPending)

	now := time.Now()
	err := s.Transition(r.ID, map[string]interface{}{
		"status":           models.RequestAccepted,
		"response_message": "deal",
		"responded_at":     &now,
	})
	require.NoError(t, err)

	got, err := s.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, got.Status)
	assert.Equal(t, "deal", got.ResponseMessage)
	assert.NotNil(t, got.RespondedAt)
}

func TestRequestTransitionTerminalRowIsInvalid(t *testing.T) {
	s := NewRequestStore(setupDB(t))
	r := seedRequest(t, s, models.RequestAccepted)

	// The losing writer of a race sees the row already terminal.
	err := s.Transition(r.ID, map[string]interface{}{
		"status": models.RequestCancelled,
	})
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	got, err := s.Get(r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestAccepted, got.Status)
}

func TestRequestTransitionMissingRowIsNotFound(t *testing.T) {
	s := NewRequestStore(setupDB(t))

	err := s.Transition(uuid.New(), map[string]interface{}{
		"status": models.RequestAccepted,
	})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
