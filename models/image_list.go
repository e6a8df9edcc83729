package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ImageList is a list of image URLs stored as a JSON array in a text column.
//
// Scanning is lenient: blank text, malformed JSON, or JSON that is not an array
// of strings produce an empty list. gorm leaves a NULL column at the zero value
// without calling Scan, so the field can still be nil; MarshalJSON renders nil as [].
type ImageList []string

func (l *ImageList) Scan(value interface{}) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*l = ImageList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("failed to scan image list from %T", value)
	}

	*l = ParseImageList(raw)
	return nil
}

func (l ImageList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// MarshalJSON never emits null.
func (l ImageList) MarshalJSON() ([]byte, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// ParseImageList decodes raw as a JSON array of strings, returning an empty list on any failure.
func ParseImageList(raw []byte) ImageList {
	var images []string
	if err := json.Unmarshal(raw, &images); err != nil || images == nil {
		return ImageList{}
	}
	return ImageList(images)
}
