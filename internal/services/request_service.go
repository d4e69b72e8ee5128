package services

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/actor"
	"github.com/propspace/propspace-backend/internal/apperr"
	"github.com/propspace/propspace-backend/internal/approval"
	"github.com/propspace/propspace-backend/internal/identity"
	"github.com/propspace/propspace-backend/internal/models"
	"github.com/propspace/propspace-backend/internal/store"
)

// RequestService owns the PropertyRequest state machine: creation by a
// buyer/renter, owner accept/reject, requester cancellation. All three
// terminal transitions are conditional on the stored status still being
// pending at write time, so concurrent accept and cancel cannot both
// apply.
type RequestService struct {
	requests *store.RequestStore
	listings *store.ListingStore
	identity *IdentityService
	notifier *NotificationService
	filter   *ModerationService
}

func NewRequestService(requests *store.RequestStore, listings *store.ListingStore, ids *IdentityService, notifier *NotificationService, filter *ModerationService) *RequestService {
	return &RequestService{
		requests: requests,
		listings: listings,
		identity: ids,
		notifier: notifier,
		filter:   filter,
	}
}

type CreateRequestInput struct {
	PropertyID  uuid.UUID
	RequestType string
	Message     string
	OfferAmount *float64
	MoveInDate  *time.Time
}

// Create raises a transaction request against a publicly visible
// listing. The owner account is resolved through the profile indirection
// at creation time; a broken hop fails explicitly.
func (s *RequestService) Create(act actor.Actor, in CreateRequestInput) (*models.PropertyRequest, error) {
	switch in.RequestType {
	case models.RequestBuy:
		if in.OfferAmount == nil || *in.OfferAmount <= 0 {
			return nil, apperr.Validation("a positive offer_amount is required for buy requests")
		}
	case models.RequestRent:
		if in.MoveInDate == nil {
			return nil, apperr.Validation("preferred_move_in_date is required for rent requests")
		}
	default:
		return nil, apperr.Validation("request_type must be buy or rent")
	}
	if err := s.filter.CheckText("message", in.Message); err != nil {
		return nil, err
	}

	property, err := s.listings.Get(in.PropertyID)
	if err != nil {
		return nil, err
	}
	// Hidden listings look like missing ones to a requester.
	if !property.Visible() {
		return nil, apperr.NotFound("property not found")
	}

	ownerAccount, err := s.identity.OwnerAccountFor(property.ID)
	if err != nil {
		return nil, err
	}
	if ownerAccount == act.ID {
		return nil, apperr.Validation("you cannot raise a request against your own property")
	}

	request := models.PropertyRequest{
		ID:          uuid.New(),
		PropertyID:  in.PropertyID,
		RequesterID: act.ID,
		OwnerID:     ownerAccount,
		RequestType: in.RequestType,
		Message:     in.Message,
		Status:      models.RequestPending,
	}
	if in.RequestType == models.RequestBuy {
		request.OfferAmount = in.OfferAmount
	} else {
		request.MoveInDate = in.MoveInDate
	}
	if err := s.requests.Create(&request); err != nil {
		return nil, err
	}

	s.notify(ownerAccount, models.NotifyPropertyRequest, "New property request",
		fmt.Sprintf("You received a %s request for %q.", in.RequestType, property.Title),
		map[string]interface{}{
			"request_id":   request.ID.String(),
			"property_id":  property.ID.String(),
			"request_type": in.RequestType,
		})
	return &request, nil
}

// Respond records the owner's decision exactly once. The conditional
// transition makes a concurrent cancel or second respond lose cleanly
// instead of overwriting the winner.
func (s *RequestService) Respond(act actor.Actor, requestID uuid.UUID, decision models.RequestStatus, responseMessage string) (*models.PropertyRequest, error) {
	if decision != models.RequestAccepted && decision != models.RequestRejected {
		return nil, apperr.Validation("status must be accepted or rejected")
	}

	request, err := s.requests.Get(requestID)
	if err != nil {
		return nil, err
	}
	if err := approval.RequireOwner(act.ID, request.OwnerID); err != nil {
		return nil, err
	}
	if err := approval.RequireSourceState(request.Status, models.RequestPending); err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.requests.Transition(requestID, map[string]interface{}{
		"status":           decision,
		"response_message": responseMessage,
		"responded_at":     &now,
	}); err != nil {
		return nil, err
	}

	kind := models.NotifyRequestAccepted
	title := "Request accepted"
	if decision == models.RequestRejected {
		kind = models.NotifyRequestRejected
		title = "Request rejected"
	}
	s.notify(request.RequesterID, kind, title, responseMessage, map[string]interface{}{
		"request_id":  requestID.String(),
		"property_id": request.PropertyID.String(),
	})

	return s.requests.Get(requestID)
}

// Cancel withdraws a pending request. Only the requester may cancel, and
// only while the request is still pending.
func (s *RequestService) Cancel(act actor.Actor, requestID uuid.UUID) (*models.PropertyRequest, error) {
	request, err := s.requests.Get(requestID)
	if err != nil {
		return nil, err
	}
	if err := approval.RequireRequester(act.ID, request.RequesterID); err != nil {
		return nil, err
	}
	if err := approval.RequireSourceState(request.Status, models.RequestPending); err != nil {
		return nil, err
	}

	if err := s.requests.Transition(requestID, map[string]interface{}{
		"status": models.RequestCancelled,
	}); err != nil {
		return nil, err
	}

	s.notify(request.OwnerID, models.NotifyRequestCancelled, "Request cancelled",
		"The requester withdrew their property request.", map[string]interface{}{
			"request_id":  requestID.String(),
			"property_id": request.PropertyID.String(),
		})

	return s.requests.Get(requestID)
}

// ListMine returns requests raised by the actor.
func (s *RequestService) ListMine(act actor.Actor, status string, limit, offset int) ([]models.PropertyRequest, int64, error) {
	return s.requests.ListByRequester(act.ID, status, limit, offset)
}

// ListIncoming returns requests against the actor's listings.
func (s *RequestService) ListIncoming(act actor.Actor, status string, limit, offset int) ([]models.PropertyRequest, int64, error) {
	return s.requests.ListByOwner(act.ID, status, limit, offset)
}

func (s *RequestService) notify(account identity.AccountID, kind, title, message string, data map[string]interface{}) {
	if err := s.notifier.Notify(account, kind, title, message, data); err != nil {
		slog.Error("failed to record notification", "kind", kind, "error", err)
	}
}
