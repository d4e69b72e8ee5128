package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// Image is one entry of a listing's ordered image list. The first entry
// is always the primary image.
type Image struct {
	URL       string `json:"url"`
	IsPrimary bool   `json:"is_primary"`
}

// ImageList is stored as a JSON column.
type ImageList []Image

func (l ImageList) Value() (driver.Value, error) {
	if l == nil {
		l = ImageList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *ImageList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func (ImageList) GormDataType() string { return "json" }

// StringList is a JSON-encoded list of enumerated tags (amenities).
type StringList []string

func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *StringList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

func (StringList) GormDataType() string { return "json" }

func scanJSON(src, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported JSON column source type")
	}
}
