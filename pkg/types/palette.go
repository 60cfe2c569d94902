// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Palette is the five-color set used to theme one rendered newsletter.
// All values are lowercase #rrggbb hex strings. Primary is guaranteed dark
// enough for legible white overlay text (relative luminance below 0.5).
type Palette struct {
	Primary    string `json:"primary"`
	Secondary  string `json:"secondary"`
	Accent     string `json:"accent"`
	Text       string `json:"text"`
	Background string `json:"background"`
}
