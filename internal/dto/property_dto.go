package dto

import "github.com/propspace/propspace-backend/internal/models"

type CreatePropertyRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	PropertyType string   `json:"property_type"`
	ListingType  string   `json:"listing_type"`
	Price        float64  `json:"price"`
	Address      string   `json:"address"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	ZipCode      string   `json:"zip_code"`
	Bedrooms     int      `json:"bedrooms"`
	Bathrooms    int      `json:"bathrooms"`
	Area         float64  `json:"area"`
	YearBuilt    int      `json:"year_built"`
	Parking      bool     `json:"parking"`
	Amenities    []string `json:"amenities"`
	Images       []string `json:"images"`
}

// UpdateOwnPropertyRequest drives PUT /owner/properties/:id. When Status
// is set the call is a status change; otherwise the patch is either a
// direct edit (listing still pending) or becomes an update proposal
// (listing already approved) — the server infers which.
type UpdateOwnPropertyRequest struct {
	Status *string `json:"status,omitempty"`
	models.PropertyPatch
}

type DecideListingRequest struct {
	Action     string `json:"action"`
	Reason     string `json:"reason,omitempty"`
	AdminNotes string `json:"admin_notes,omitempty"`
}

type DecideUpdateRequest struct {
	Action      string                `json:"action"`
	UpdatedData *models.PropertyPatch `json:"updatedData,omitempty"`
	Reason      string                `json:"reason,omitempty"`
}

type PropertyListResponse struct {
	Properties []models.Property `json:"properties"`
	Total      int64             `json:"total"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

type UpdateRequestListResponse struct {
	Requests []models.PropertyUpdateRequest `json:"requests"`
	Total    int64                          `json:"total"`
	Page     int                            `json:"page"`
	Limit    int                            `json:"limit"`
}
