package models

// PropertyPatch is the explicit whitelist of fields an owner may change
// on a listing. Update proposals are stored and reviewed as this shape,
// so a proposal can never smuggle in status, owner or approval fields.
type PropertyPatch struct {
	Title        *string `json:"title,omitempty"`
	Description  *string `json:"description,omitempty"`
	PropertyType *string `json:"property_type,omitempty"`
	ListingType  *string `json:"listing_type,omitempty"`
	Price        *float64 `json:"price,omitempty"`

	Address *string `json:"address,omitempty"`
	City    *string `json:"city,omitempty"`
	State   *string `json:"state,omitempty"`
	ZipCode *string `json:"zip_code,omitempty"`

	Bedrooms  *int     `json:"bedrooms,omitempty"`
	Bathrooms *int     `json:"bathrooms,omitempty"`
	Area      *float64 `json:"area,omitempty"`
	YearBuilt *int     `json:"year_built,omitempty"`
	Parking   *bool    `json:"parking,omitempty"`

	Amenities *StringList `json:"amenities,omitempty"`
	Images    *ImageList  `json:"images,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p *PropertyPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.PropertyType == nil &&
		p.ListingType == nil && p.Price == nil && p.Address == nil &&
		p.City == nil && p.State == nil && p.ZipCode == nil &&
		p.Bedrooms == nil && p.Bathrooms == nil && p.Area == nil &&
		p.YearBuilt == nil && p.Parking == nil && p.Amenities == nil &&
		p.Images == nil
}

// Apply merges the patch into the property field by field. Image lists
// replace wholesale and the first entry is re-flagged primary.
func (p *PropertyPatch) Apply(prop *Property) {
	if p.Title != nil {
		prop.Title = *p.Title
	}
	if p.Description != nil {
		prop.Description = *p.Description
	}
	if p.PropertyType != nil {
		prop.PropertyType = *p.PropertyType
	}
	if p.ListingType != nil {
		prop.ListingType = *p.ListingType
	}
	if p.Price != nil {
		prop.Price = *p.Price
	}
	if p.Address != nil {
		prop.Address = *p.Address
	}
	if p.City != nil {
		prop.City = *p.City
	}
	if p.State != nil {
		prop.State = *p.State
	}
	if p.ZipCode != nil {
		prop.ZipCode = *p.ZipCode
	}
	if p.Bedrooms != nil {
		prop.Bedrooms = *p.Bedrooms
	}
	if p.Bathrooms != nil {
		prop.Bathrooms = *p.Bathrooms
	}
	if p.Area != nil {
		prop.Area = *p.Area
	}
	if p.YearBuilt != nil {
		prop.YearBuilt = *p.YearBuilt
	}
	if p.Parking != nil {
		prop.Parking = *p.Parking
	}
	if p.Amenities != nil {
		prop.Amenities = *p.Amenities
	}
	if p.Images != nil {
		prop.Images = NormalizeImages(*p.Images)
	}
}

// NormalizeImages flags the first image primary and clears the flag on
// the rest.
func NormalizeImages(images ImageList) ImageList {
	for i := range images {
		images[i].IsPrimary = i == 0
	}
	return images
}
