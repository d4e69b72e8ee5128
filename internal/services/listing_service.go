package services

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/propspace/propspace-backend/internal/actor"
	"github.com/propspace/propspace-backend/internal/apperr"
	"github.com/propspace/propspace-backend/internal/approval"
	"github.com/propspace/propspace-backend/internal/identity"
	"github.com/propspace/propspace-backend/internal/models"
	"github.com/propspace/propspace-backend/internal/store"
	"gorm.io/datatypes"
)

const (
	DecisionApprove = "approve"
	DecisionReject  = "reject"
)

// ListingService owns the Property state machine: submission, admin
// decisions, owner status changes and reconciliation of update
// proposals. Every transition is checked by the approval gate before any
// write and committed through a conditional store update.
type ListingService struct {
	listings *store.ListingStore
	requests *store.RequestStore
	identity *IdentityService
	notifier *NotificationService
	filter   *ModerationService
}

func NewListingService(listings *store.ListingStore, requests *store.RequestStore, ids *IdentityService, notifier *NotificationService, filter *ModerationService) *ListingService {
	return &ListingService{
		listings: listings,
		requests: requests,
		identity: ids,
		notifier: notifier,
		filter:   filter,
	}
}

type SubmitListingInput struct {
	Title        string
	Description  string
	PropertyType string
	ListingType  string
	Price        float64
	Address      string
	City         string
	State        string
	ZipCode      string
	Bedrooms     int
	Bathrooms    int
	Area         float64
	YearBuilt    int
	Parking      bool
	Amenities    []string
	Images       []string
}

func (in *SubmitListingInput) validate() error {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if !contains(models.PropertyTypes, in.PropertyType) {
		missing = append(missing, "property_type")
	}
	if in.ListingType != models.ListingSale && in.ListingType != models.ListingRent {
		missing = append(missing, "listing_type")
	}
	if in.Price <= 0 {
		missing = append(missing, "price")
	}
	if len(in.Images) == 0 {
		missing = append(missing, "images")
	}
	if strings.TrimSpace(in.Address) == "" {
		missing = append(missing, "address")
	}
	if strings.TrimSpace(in.City) == "" {
		missing = append(missing, "city")
	}
	if len(missing) > 0 {
		return apperr.Validation("missing or invalid fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// Submit validates and creates a listing in pending state. The actor
// must hold an owner profile; the listing stays invisible until an admin
// approves it.
func (s *ListingService) Submit(act actor.Actor, in SubmitListingInput) (*models.Property, error) {
	if err := approval.RequireRole(act.Role, models.RoleOwner, models.RoleAdmin); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := s.filter.CheckText("title", in.Title); err != nil {
		return nil, err
	}
	if err := s.filter.CheckText("description", in.Description); err != nil {
		return nil, err
	}

	profile, err := s.identity.ProfileFor(act.ID)
	if err != nil {
		return nil, err
	}

	images := make(models.ImageList, len(in.Images))
	for i, url := range in.Images {
		images[i] = models.Image{URL: url}
	}

	property := models.Property{
		ID:           uuid.New(),
		OwnerID:      profile.ID,
		Title:        in.Title,
		Description:  in.Description,
		PropertyType: in.PropertyType,
		ListingType:  in.ListingType,
		Price:        in.Price,
		Address:      in.Address,
		City:         in.City,
		State:        in.State,
		ZipCode:      in.ZipCode,
		Bedrooms:     in.Bedrooms,
		Bathrooms:    in.Bathrooms,
		Area:         in.Area,
		YearBuilt:    in.YearBuilt,
		Parking:      in.Parking,
		Amenities:    models.StringList(in.Amenities),
		Images:       models.NormalizeImages(images),
		Status:       models.PropertyPending,
		IsActive:     false,
	}
	if err := s.listings.Create(&property); err != nil {
		return nil, err
	}
	return &property, nil
}

// Decide is the single admin gate between pending and approved/rejected.
// The conditional store transition guarantees exactly one decision wins;
// a second concurrent decide observes an invalid transition.
func (s *ListingService) Decide(admin actor.Actor, propertyID uuid.UUID, action, reason, notes string) (*models.Property, error) {
	if err := approval.RequireRole(admin.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	if action != DecisionApprove && action != DecisionReject {
		return nil, apperr.Validation("action must be approve or reject")
	}
	if action == DecisionReject && strings.TrimSpace(reason) == "" {
		return nil, apperr.Validation("a rejection reason is required")
	}
	if action == DecisionApprove && strings.TrimSpace(reason) != "" {
		return nil, apperr.Validation("a reason is only allowed when rejecting")
	}

	property, err := s.listings.Get(propertyID)
	if err != nil {
		return nil, err
	}
	if err := approval.RequireSourceState(property.Status, models.PropertyPending); err != nil {
		return nil, err
	}

	now := time.Now()
	var updates map[string]interface{}
	var kind, title, message string
	if action == DecisionApprove {
		updates = map[string]interface{}{
			"status":      models.PropertyApproved,
			"is_active":   true,
			"approved_by": admin.ID,
			"approved_at": &now,
			"admin_notes": notes,
		}
		kind = models.NotifyPropertyApproved
		title = "Listing approved"
		message = fmt.Sprintf("Your listing %q is now live.", property.Title)
	} else {
		updates = map[string]interface{}{
			"status":           models.PropertyRejected,
			"is_active":        false,
			"approved_by":      admin.ID,
			"approved_at":      &now,
			"rejection_reason": reason,
			"admin_notes":      notes,
		}
		kind = models.NotifyPropertyRejected
		title = "Listing rejected"
		message = fmt.Sprintf("Your listing %q was rejected: %s", property.Title, reason)
	}

	if err := s.listings.Transition(propertyID, []models.PropertyStatus{models.PropertyPending}, updates); err != nil {
		return nil, err
	}

	s.notifyOwner(property, kind, title, message)
	return s.listings.Get(propertyID)
}

// ChangeOwnStatus lets the owner take an approved listing off the market
// (sold, rented, inactive) or re-list it. Leaving approved clears
// IsActive; entering approved sets it.
func (s *ListingService) ChangeOwnStatus(act actor.Actor, propertyID uuid.UUID, newStatus models.PropertyStatus) (*models.Property, error) {
	property, err := s.listings.Get(propertyID)
	if err != nil {
		return nil, err
	}
	ownerAccount, err := s.identity.AccountForProfile(property.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := approval.RequireOwner(act.ID, ownerAccount); err != nil {
		return nil, err
	}

	offMarket := []models.PropertyStatus{models.PropertySold, models.PropertyRented, models.PropertyInactive}

	var from []models.PropertyStatus
	switch newStatus {
	case models.PropertyApproved:
		// Re-listing a sold/rented/inactive property.
		from = offMarket
	case models.PropertySold, models.PropertyRented, models.PropertyInactive:
		from = []models.PropertyStatus{models.PropertyApproved}
	default:
		return nil, apperr.Validation("status must be one of approved, sold, rented, inactive")
	}
	if err := approval.RequireSourceState(property.Status, from...); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"status":    newStatus,
		"is_active": newStatus == models.PropertyApproved,
	}
	if err := s.listings.Transition(propertyID, from, updates); err != nil {
		return nil, err
	}
	return s.listings.Get(propertyID)
}

// EditPending applies a patch directly to a listing that has not been
// reviewed yet. Nothing is public while pending, so no proposal is
// needed; once approved, edits must go through ProposeUpdate instead.
func (s *ListingService) EditPending(act actor.Actor, propertyID uuid.UUID, patch *models.PropertyPatch) (*models.Property, error) {
	property, err := s.listings.Get(propertyID)
	if err != nil {
		return nil, err
	}
	ownerAccount, err := s.identity.AccountForProfile(property.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := approval.RequireOwner(act.ID, ownerAccount); err != nil {
		return nil, err
	}
	if err := approval.RequireSourceState(property.Status, models.PropertyPending); err != nil {
		return nil, err
	}
	if err := s.validatePatch(patch); err != nil {
		return nil, err
	}

	if err := s.listings.Transition(propertyID, []models.PropertyStatus{models.PropertyPending}, patchColumns(patch)); err != nil {
		return nil, err
	}
	return s.listings.Get(propertyID)
}

// ProposeUpdate records an update proposal against an approved listing.
// Only one proposal may be pending per property.
func (s *ListingService) ProposeUpdate(act actor.Actor, propertyID uuid.UUID, patch *models.PropertyPatch) (*models.PropertyUpdateRequest, error) {
	property, err := s.listings.Get(propertyID)
	if err != nil {
		return nil, err
	}
	ownerAccount, err := s.identity.AccountForProfile(property.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := approval.RequireOwner(act.ID, ownerAccount); err != nil {
		return nil, err
	}
	if err := approval.RequireSourceState(property.Status, models.PropertyApproved); err != nil {
		return nil, err
	}
	if err := s.validatePatch(patch); err != nil {
		return nil, err
	}

	pending, err := s.listings.HasPendingUpdateRequest(propertyID)
	if err != nil {
		return nil, err
	}
	if pending {
		return nil, apperr.Conflict("an update request is already pending for this property")
	}

	encoded, err := json.Marshal(patch)
	if err != nil {
		return nil, fmt.Errorf("failed to encode proposed updates: %w", err)
	}

	request := models.PropertyUpdateRequest{
		ID:              uuid.New(),
		PropertyID:      propertyID,
		OwnerID:         property.OwnerID,
		ProposedUpdates: datatypes.JSON(encoded),
		Status:          models.UpdatePending,
	}
	if err := s.listings.CreateUpdateRequest(&request); err != nil {
		return nil, err
	}
	return &request, nil
}

// DecideUpdate finalizes a pending proposal. Approval merges the
// whitelisted patch into the live property inside one transaction;
// rejection requires a reason. Either way the proposal is decided
// exactly once. A non-nil override replaces the stored proposal with an
// admin-adjusted patch; it goes through the same whitelist.
func (s *ListingService) DecideUpdate(admin actor.Actor, requestID uuid.UUID, action, reason string, override *models.PropertyPatch) (*models.PropertyUpdateRequest, error) {
	if err := approval.RequireRole(admin.Role, models.RoleAdmin); err != nil {
		return nil, err
	}
	if action != DecisionApprove && action != DecisionReject {
		return nil, apperr.Validation("action must be approve or reject")
	}
	if action == DecisionReject && strings.TrimSpace(reason) == "" {
		return nil, apperr.Validation("a rejection reason is required")
	}

	request, err := s.listings.GetUpdateRequest(requestID)
	if err != nil {
		return nil, err
	}
	if err := approval.RequireSourceState(request.Status, models.UpdatePending); err != nil {
		return nil, err
	}

	now := time.Now()
	if action == DecisionApprove {
		patch := override
		if patch == nil {
			patch, err = request.Patch()
			if err != nil {
				return nil, fmt.Errorf("stored proposal is unreadable: %w", err)
			}
		} else if err := s.validatePatch(patch); err != nil {
			return nil, err
		}
		// Write only the patched columns. A full-struct save would carry
		// status/is_active as read and could silently revert a status
		// transition committed in between.
		err = s.listings.InTx(func(tx *store.ListingStore) error {
			if err := tx.TransitionUpdateRequest(requestID, map[string]interface{}{
				"status":      models.UpdateApproved,
				"reviewed_by": admin.ID,
				"reviewed_at": &now,
			}); err != nil {
				return err
			}
			return tx.Patch(request.PropertyID, patchColumns(patch))
		})
		if err != nil {
			return nil, err
		}
	} else {
		if err := s.listings.TransitionUpdateRequest(requestID, map[string]interface{}{
			"status":           models.UpdateRejected,
			"reviewed_by":      admin.ID,
			"reviewed_at":      &now,
			"rejection_reason": reason,
		}); err != nil {
			return nil, err
		}
	}

	if account, err := s.identity.AccountForProfile(request.OwnerID); err != nil {
		slog.Error("failed to resolve owner for update decision notification",
			"request_id", requestID, "error", err)
	} else {
		message := "Your listing update was approved and is now live."
		if action == DecisionReject {
			message = "Your listing update was rejected: " + reason
		}
		s.notify(account, models.NotifyPropertyUpdateDecided, "Update request decided", message, map[string]interface{}{
			"request_id":  requestID.String(),
			"property_id": request.PropertyID.String(),
			"action":      action,
		})
	}

	return s.listings.GetUpdateRequest(requestID)
}

// GetPublic returns a publicly visible listing and counts the view.
// Hidden listings are reported as not found rather than leaked.
func (s *ListingService) GetPublic(propertyID uuid.UUID) (*models.Property, error) {
	property, err := s.listings.Get(propertyID)
	if err != nil {
		return nil, err
	}
	if !property.Visible() {
		return nil, apperr.NotFound("property not found")
	}
	if err := s.listings.IncrementViews(propertyID); err != nil {
		slog.Error("failed to increment views", "property_id", propertyID, "error", err)
	}
	property.Views++
	return property, nil
}

// GetOwn returns a listing regardless of visibility, but only to its
// owner.
func (s *ListingService) GetOwn(act actor.Actor, propertyID uuid.UUID) (*models.Property, error) {
	property, err := s.listings.Get(propertyID)
	if err != nil {
		return nil, err
	}
	ownerAccount, err := s.identity.AccountForProfile(property.OwnerID)
	if err != nil {
		return nil, err
	}
	if err := approval.RequireOwner(act.ID, ownerAccount); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *ListingService) ListPublic(f store.PublicFilter, limit, offset int) ([]models.Property, int64, error) {
	return s.listings.ListPublic(f, limit, offset)
}

func (s *ListingService) ListOwn(act actor.Actor, status string, limit, offset int) ([]models.Property, int64, error) {
	profile, err := s.identity.ProfileFor(act.ID)
	if err != nil {
		return nil, 0, err
	}
	return s.listings.ListByOwner(profile.ID, status, limit, offset)
}

func (s *ListingService) ListForAdmin(status string, limit, offset int) ([]models.Property, int64, error) {
	return s.listings.ListByStatus(status, limit, offset)
}

func (s *ListingService) ListUpdateRequestsForAdmin(status string, limit, offset int) ([]models.PropertyUpdateRequest, int64, error) {
	return s.listings.ListUpdateRequests(status, limit, offset)
}

// DeleteOwn soft-deletes a listing. A listing with open transaction
// requests cannot be removed.
func (s *ListingService) DeleteOwn(act actor.Actor, propertyID uuid.UUID) error {
	property, err := s.listings.Get(propertyID)
	if err != nil {
		return err
	}
	ownerAccount, err := s.identity.AccountForProfile(property.OwnerID)
	if err != nil {
		return err
	}
	if err := approval.RequireOwner(act.ID, ownerAccount); err != nil {
		return err
	}

	open, err := s.requests.CountOpenForProperty(propertyID)
	if err != nil {
		return err
	}
	if open > 0 {
		return apperr.Conflict("property has open transaction requests")
	}
	return s.listings.SoftDelete(propertyID)
}

// Favorite bookmarks a visible listing for the actor.
func (s *ListingService) Favorite(act actor.Actor, propertyID uuid.UUID) error {
	property, err := s.listings.Get(propertyID)
	if err != nil {
		return err
	}
	if !property.Visible() {
		return apperr.NotFound("property not found")
	}
	return s.listings.AddFavorite(propertyID, act.ID)
}

func (s *ListingService) Unfavorite(act actor.Actor, propertyID uuid.UUID) error {
	return s.listings.RemoveFavorite(propertyID, act.ID)
}

func (s *ListingService) validatePatch(patch *models.PropertyPatch) error {
	if patch == nil || patch.IsEmpty() {
		return apperr.Validation("no fields to update")
	}
	if patch.Price != nil && *patch.Price <= 0 {
		return apperr.Validation("price must be positive")
	}
	if patch.ListingType != nil && *patch.ListingType != models.ListingSale && *patch.ListingType != models.ListingRent {
		return apperr.Validation("listing_type must be sale or rent")
	}
	if patch.PropertyType != nil && !contains(models.PropertyTypes, *patch.PropertyType) {
		return apperr.Validation("unknown property_type")
	}
	if patch.Images != nil && len(*patch.Images) == 0 {
		return apperr.Validation("images cannot be emptied")
	}
	if patch.Title != nil {
		if err := s.filter.CheckText("title", *patch.Title); err != nil {
			return err
		}
	}
	if patch.Description != nil {
		if err := s.filter.CheckText("description", *patch.Description); err != nil {
			return err
		}
	}
	return nil
}

func (s *ListingService) notifyOwner(property *models.Property, kind, title, message string) {
	account, err := s.identity.AccountForProfile(property.OwnerID)
	if err != nil {
		slog.Error("failed to resolve owner account for notification",
			"property_id", property.ID, "error", err)
		return
	}
	s.notify(account, kind, title, message, map[string]interface{}{
		"property_id": property.ID.String(),
	})
}

func (s *ListingService) notify(account identity.AccountID, kind, title, message string, data map[string]interface{}) {
	if err := s.notifier.Notify(account, kind, title, message, data); err != nil {
		slog.Error("failed to record notification", "kind", kind, "error", err)
	}
}

func contains(list []string, val string) bool {
	for _, item := range list {
		if item == val {
			return true
		}
	}
	return false
}

// patchColumns converts a whitelist patch into the column map used by a
// conditional store transition.
func patchColumns(p *models.PropertyPatch) map[string]interface{} {
	updates := map[string]interface{}{}
	if p.Title != nil {
		updates["title"] = *p.Title
	}
	if p.Description != nil {
		updates["description"] = *p.Description
	}
	if p.PropertyType != nil {
		updates["property_type"] = *p.PropertyType
	}
	if p.ListingType != nil {
		updates["listing_type"] = *p.ListingType
	}
	if p.Price != nil {
		updates["price"] = *p.Price
	}
	if p.Address != nil {
		updates["address"] = *p.Address
	}
	if p.City != nil {
		updates["city"] = *p.City
	}
	if p.State != nil {
		updates["state"] = *p.State
	}
	if p.ZipCode != nil {
		updates["zip_code"] = *p.ZipCode
	}
	if p.Bedrooms != nil {
		updates["bedrooms"] = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		updates["bathrooms"] = *p.Bathrooms
	}
	if p.Area != nil {
		updates["area"] = *p.Area
	}
	if p.YearBuilt != nil {
		updates["year_built"] = *p.YearBuilt
	}
	if p.Parking != nil {
		updates["parking"] = *p.Parking
	}
	if p.Amenities != nil {
		updates["amenities"] = *p.Amenities
	}
	if p.Images != nil {
		updates["images"] = models.NormalizeImages(*p.Images)
	}
	return updates
}
