// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ChosenLayout records which layout archetype the planner selected and why.
type ChosenLayout struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Score int    `json:"score"`
	Why   string `json:"why"`
}

// LayoutRegion describes a header or footer: its archetype and the ordered
// elements it contains.
type LayoutRegion struct {
	Type     string   `json:"type"`
	Elements []string `json:"elements"`
}

// SectionSpec is one entry of the planned section order.
type SectionSpec struct {
	Type  string `json:"type"`
	Title string `json:"title"`
}

// DesignTokens are the concrete visual values the renderer consumes.
type DesignTokens struct {
	Primary      string `json:"primary"`
	Secondary    string `json:"secondary"`
	Accent       string `json:"accent"`
	Text         string `json:"text"`
	Background   string `json:"background"`
	Font         string `json:"font"`
	BaseFontSize string `json:"base_font_size"`
}

// Palette applies the token colors to a Palette value.
func (d DesignTokens) Palette() Palette {
	return Palette{
		Primary:    d.Primary,
		Secondary:  d.Secondary,
		Accent:     d.Accent,
		Text:       d.Text,
		Background: d.Background,
	}
}

// LayoutBlueprint is the layout stage's fully-specified structural plan.
// Every field always holds a concrete value, even when the planner's JSON is
// absent or unparseable, because the stage merges the response over explicit
// per-run defaults.
type LayoutBlueprint struct {
	ChosenLayout    ChosenLayout  `json:"chosen_layout"`
	Header          LayoutRegion  `json:"header"`
	Footer          LayoutRegion  `json:"footer"`
	SectionsOrder   []SectionSpec `json:"sections_order"`
	CSSFramework    string        `json:"css_framework"`
	DesignTokens    DesignTokens  `json:"design_tokens"`
	DynamicElements []string      `json:"dynamic_elements"`
	MobileNotes     string        `json:"mobile_notes"`
}
