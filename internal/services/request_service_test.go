package services

import (
	"sync"
	"testing"

	"github.com/propspace/propspace-backend/internal/apperr"
	"github.com/propspace/propspace-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) buyInput(t *testing.T) CreateRequestInput {
	t.Helper()
	property := f.submitApproved(t)
	offer := 300000.0
	return CreateRequestInput{
		PropertyID:  property.ID,
		RequestType: models.RequestBuy,
		Message:     "I would like to buy this place",
		OfferAmount: &offer,
	}
}

func TestCreateBuyRequest(t *testing.T) {
	f := newFixture(t)

	request, err := f.requests.Create(f.buyer, f.buyInput(t))
	require.NoError(t, err)

	assert.Equal(t, models.RequestPending, request.Status)
	assert.Equal(t, f.buyer.ID, request.RequesterID)
	// OwnerID holds the owner's account id, not the profile id.
	assert.Equal(t, f.owner.ID, request.OwnerID)
	require.NotNil(t, request.OfferAmount)
	assert.Equal(t, float64(300000), *request.OfferAmount)

	assert.Len(t, f.notificationsFor(t, f.owner.ID, models.NotifyPropertyRequest), 1)
}

func TestCreateBuyRequestNeedsOffer(t *testing.T) {
	f := newFixture(t)

	in := f.buyInput(t)
	in.OfferAmount = nil
	_, err := f.requests.Create(f.buyer, in)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	zero := 0.0
	in.OfferAmount = &zero
	_, err = f.requests.Create(f.buyer, in)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCreateRentRequestNeedsMoveInDate(t *testing.T) {
	f := newFixture(t)
	property := f.submitApproved(t)

	_, err := f.requests.Create(f.buyer, CreateRequestInput{
		PropertyID:  property.ID,
		RequestType: models.RequestRent,
		Message:     "when can I move in?",
	})
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	request, err := f.requests.Create(f.buyer, CreateRequestInput{
		PropertyID:  property.ID,
		RequestType: models.RequestRent,
		Message:     "when can I move in?",
		MoveInDate:  timePtr(t),
	})
	require.NoError(t, err)
	assert.NotNil(t, request.MoveInDate)
	assert.Nil(t, request.OfferAmount)
}

func TestCreateRequestRejectsUnknownType(t *testing.T) {
	f := newFixture(t)
	in := f.buyInput(t)
	in.RequestType = "lease"

	_, err := f.requests.Create(f.buyer, in)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestCreateRequestHiddenListingLooksMissing(t *testing.T) {
	f := newFixture(t)
	property, err := f.listings.Submit(f.owner, validListing())
	require.NoError(t, err)

	offer := 300000.0
	_, err = f.requests.Create(f.buyer, CreateRequestInput{
		PropertyID:  property.ID,
		RequestType: models.RequestBuy,
		Message:     "interested",
		OfferAmount: &offer,
	})
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCreateRequestOwnPropertyRejected(t *testing.T) {
	f := newFixture(t)
	in := f.buyInput(t)

	_, err := f.requests.Create(f.owner, in)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestRespondAccept(t *testing.T) {
	f := newFixture(t)
	request, err := f.requests.Create(f.buyer, f.buyInput(t))
	require.NoError(t, err)

	accepted, err := f.requests.Respond(f.owner, request.ID, models.RequestAccepted, "deal")
	require.NoError(t, err)

	assert.Equal(t, models.RequestAccepted, accepted.Status)
	assert.Equal(t, "deal", accepted.ResponseMessage)
	assert.NotNil(t, accepted.RespondedAt)

	assert.Len(t, f.notificationsFor(t, f.buyer.ID, models.NotifyRequestAccepted), 1)
}

func TestRespondRejectNotifies(t *testing.T) {
	f := newFixture(t)
	request, err := f.requests.Create(f.buyer, f.buyInput(t))
	require.NoError(t, err)

	rejected, err := f.requests.Respond(f.owner, request.ID, models.RequestRejected, "too low")
	require.NoError(t, err)
	assert.Equal(t, models.RequestRejected, rejected.Status)

	assert.Len(t, f.notificationsFor(t, f.buyer.ID, models.NotifyRequestRejected), 1)
}

func TestRespondValidatesDecision(t *testing.T) {
	f := newFixture(t)
	request, err := f.requests.Create(f.buyer, f.buyInput(t))
	require.NoError(t, err)

	_, err = f.requests.Respond(f.owner, request.ID, models.RequestCancelled, "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestRespondOnlyByOwner(t *testing.T) {
	f := newFixture(t)
	request, err := f.requests.Create(f.buyer, f.buyInput(t))
	require.NoError(t, err)

	_, err = f.requests.Respond(f.buyer, request.ID, models.RequestAccepted, "")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))

	_, err = f.requests.Respond(f.admin, request.ID, models.RequestAccepted, "")
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestRespondIsFinal(t *testing.T) {
	f := newFixture(t)
	request, err := f.requests.Create(f.buyer, f.buyInput(t))
	require.NoError(t, err)

	_, err = f.requests.Respond(f.owner, request.ID, models.RequestAccepted, "deal")
	require.NoError(t, err)

	_, err = f.requests.Respond(f.owner, request.ID, models.RequestRejected, "actually no")
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	// The first decision stands.
	current, err := f.requests.Respond(f.owner, request.ID, models.RequestAccepted, "")
	assert.Error(t, err)
	assert.Nil(t, current)
}

func TestConcurrentRespondAndCancelOneWinner(t *testing.T) {
	f := newFixture(t)
	request, err := f.requests.Create(f.buyer, f.buyInput(t))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make([]error, 2)
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = f.requests.Respond(f.owner, request.ID, models.RequestAccepted, "deal")
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = f.requests.Cancel(f.buyer, request.ID)
	}()
	wg.Wait()

	wins := 0
	for _, err := range errs {
		if err == nil {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactly one transition wins")

	var stored models.PropertyRequest
	require.NoError(t, f.db.First(&stored, "id = ?", request.ID).Error)
	require.True(t, stored.Status.Terminal())
	if errs[0] == nil {
		assert.Equal(t, models.RequestAccepted, stored.Status)
	} else {
		assert.Equal(t, models.RequestCancelled, stored.Status)
	}
}

func TestCreateRequestBrokenOwnerHop(t *testing.T) {
	f := newFixture(t)
	in := f.buyInput(t)

	// The owner profile disappears between listing approval and the
	// request; the resolution fails explicitly instead of defaulting.
	require.NoError(t, f.db.Delete(&models.OwnerProfile{}, "id = ?", f.ownerProfile.ID).Error)

	_, err := f.requests.Create(f.buyer, in)
	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}

func TestCancelPendingRequest(t *testing.T) {
	f := newFixture(t)
	request, err := f.requests.Create(f.buyer, f.buyInput(t))
	require.NoError(t, err)

	cancelled, err := f.requests.Cancel(f.buyer, request.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RequestCancelled, cancelled.Status)

	assert.Len(t, f.notificationsFor(t, f.owner.ID, models.NotifyRequestCancelled), 1)
}

func TestCancelOnlyByRequester(t *testing.T) {
	f := newFixture(t)
	request, err := f.requests.Create(f.buyer, f.buyInput(t))
	require.NoError(t, err)

	_, err = f.requests.Cancel(f.owner, request.ID)
	assert.True(t, apperr.Is(err, apperr.KindForbidden))
}

func TestCancelAfterAcceptFails(t *testing.T) {
	f := newFixture(t)
	request, err := f.requests.Create(f.buyer, f.buyInput(t))
	require.NoError(t, err)

	_, err = f.requests.Respond(f.owner, request.ID, models.RequestAccepted, "deal")
	require.NoError(t, err)

	_, err = f.requests.Cancel(f.buyer, request.ID)
	assert.True(t, apperr.Is(err, apperr.KindInvalidTransition))

	// No cancellation notice went out for the failed attempt.
	assert.Empty(t, f.notificationsFor(t, f.owner.ID, models.NotifyRequestCancelled))
}

func TestListMineAndIncoming(t *testing.T) {
	f := newFixture(t)
	request, err := f.requests.Create(f.buyer, f.buyInput(t))
	require.NoError(t, err)

	mine, total, err := f.requests.ListMine(f.buyer, "", 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, mine, 1)
	assert.Equal(t, request.ID, mine[0].ID)

	incoming, total, err := f.requests.ListIncoming(f.owner, string(models.RequestPending), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, incoming, 1)

	// Status filter excludes non-matching rows.
	none, total, err := f.requests.ListIncoming(f.owner, string(models.RequestAccepted), 20, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	assert.Empty(t, none)
}
