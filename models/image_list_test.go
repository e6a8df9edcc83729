package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageListScan(t *testing.T) {
	tests := []struct {
		name  string
		value interface{}
		want  ImageList
	}{
		{"json array string", `["https://a/1.png","https://a/2.png"]`, ImageList{"https://a/1.png", "https://a/2.png"}},
		{"json array bytes", []byte(`["x.png"]`), ImageList{"x.png"}},
		{"null column", nil, ImageList{}},
		{"empty string", "", ImageList{}},
		{"malformed json", `["unterminated`, ImageList{}},
		{"json object", `{"url":"x.png"}`, ImageList{}},
		{"array of numbers", `[1,2,3]`, ImageList{}},
		{"json null", `null`, ImageList{}},
		{"plain url", `https://a/1.png`, ImageList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got ImageList
			require.NoError(t, got.Scan(tt.value))
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestImageListScanRejectsUnknownType(t *testing.T) {
	var got ImageList
	assert.Error(t, got.Scan(42))
}

func TestImageListValue(t *testing.T) {
	v, err := ImageList{"a.png", "b.png"}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["a.png","b.png"]`, v)

	v, err = ImageList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, "[]", v)
}

func TestImageListMarshalNeverNull(t *testing.T) {
	b, err := json.Marshal(struct {
		Images ImageList `json:"images"`
	}{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"images":[]}`, string(b))
}
