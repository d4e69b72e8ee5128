package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string    { return &s }
func f64Ptr(f float64) *float64  { return &f }

func TestPatchApplyMergesOnlySetFields(t *testing.T) {
	prop := Property{
		Title:       "Loft",
		Description: "Bright loft downtown",
		Price:       1200,
		City:        "Austin",
		Bedrooms:    2,
	}

	patch := PropertyPatch{Price: f64Ptr(500000)}
	patch.Apply(&prop)

	assert.Equal(t, float64(500000), prop.Price)
	assert.Equal(t, "Loft", prop.Title)
	assert.Equal(t, "Bright loft downtown", prop.Description)
	assert.Equal(t, "Austin", prop.City)
	assert.Equal(t, 2, prop.Bedrooms)
}

func TestPatchApplyReplacesImagesWholesale(t *testing.T) {
	prop := Property{
		Images: ImageList{
			{URL: "a.jpg", IsPrimary: true},
			{URL: "b.jpg"},
		},
	}

	replacement := ImageList{
		{URL: "c.jpg"},
		{URL: "d.jpg", IsPrimary: true}, // stale flag must be cleared
	}
	patch := PropertyPatch{Images: &replacement}
	patch.Apply(&prop)

	assert.Len(t, prop.Images, 2)
	assert.Equal(t, "c.jpg", prop.Images[0].URL)
	assert.True(t, prop.Images[0].IsPrimary)
	assert.False(t, prop.Images[1].IsPrimary)
}

func TestPatchIsEmpty(t *testing.T) {
	assert.True(t, (&PropertyPatch{}).IsEmpty())
	assert.False(t, (&PropertyPatch{Title: strPtr("New")}).IsEmpty())
}

func TestNormalizeImages(t *testing.T) {
	images := NormalizeImages(ImageList{{URL: "x.jpg"}, {URL: "y.jpg", IsPrimary: true}})
	assert.True(t, images[0].IsPrimary)
	assert.False(t, images[1].IsPrimary)

	assert.Empty(t, NormalizeImages(nil))
}
