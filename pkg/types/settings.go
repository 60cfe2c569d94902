// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Mode selects between engine-chosen and caller-supplied values for a
// generation option.
type Mode string

const (
	ModeRandom Mode = "random"
	ModeManual Mode = "manual"
)

// ContentSize selects the target length of generated newsletter content.
type ContentSize string

const (
	SizeSmall  ContentSize = "small"
	SizeMedium ContentSize = "medium"
	SizeLarge  ContentSize = "large"
)

// EditorMode selects the downstream editor format for the rendered artifact.
type EditorMode string

const (
	EditorHTML   EditorMode = "html"
	EditorBlocks EditorMode = "blocks"
)

// ImageSettings controls image selection. In manual mode URLs lists the
// images to feature; in random mode the generator chooses.
type ImageSettings struct {
	Mode Mode     `json:"mode" yaml:"mode"`
	URLs []string `json:"urls,omitempty" yaml:"urls,omitempty"`
}

// LinkSettings controls how many outbound links the content should carry.
type LinkSettings struct {
	Mode  Mode `json:"mode" yaml:"mode"`
	Count int  `json:"count,omitempty" yaml:"count,omitempty"`
}

// CategorySettings controls the topic categories covered by a run.
type CategorySettings struct {
	Mode Mode     `json:"mode" yaml:"mode"`
	List []string `json:"list,omitempty" yaml:"list,omitempty"`
}

// ContentSettings optionally seeds the run with caller-supplied source text.
type ContentSettings struct {
	Mode Mode   `json:"mode" yaml:"mode"`
	Text string `json:"text,omitempty" yaml:"text,omitempty"`
}

// ColorSettings controls the rendered palette. In manual mode Primary and
// Secondary are hex strings used verbatim; in random mode the palette
// generator supplies brand-appropriate colors.
type ColorSettings struct {
	Mode      Mode   `json:"mode" yaml:"mode"`
	Primary   string `json:"primary,omitempty" yaml:"primary,omitempty"`
	Secondary string `json:"secondary,omitempty" yaml:"secondary,omitempty"`
}

// Settings holds the recognized generation preferences for a brand. Every
// field has a documented default applied by ApplyDefaults; an absent field
// never causes a missing-value error downstream.
type Settings struct {
	Images      ImageSettings    `json:"images" yaml:"images"`
	LinksCount  LinkSettings     `json:"links_count" yaml:"links_count"`
	Categories  CategorySettings `json:"categories" yaml:"categories"`
	Content     ContentSettings  `json:"content" yaml:"content"`
	Keywords    []string         `json:"keywords,omitempty" yaml:"keywords,omitempty"`
	Colors      ColorSettings    `json:"colors" yaml:"colors"`
	ContentSize ContentSize      `json:"content_size" yaml:"content_size"`
	EditorMode  EditorMode       `json:"editor_mode" yaml:"editor_mode"`
}

// defaultLinkCount is the number of outbound links used when linksCount is
// left in random mode without a count.
const defaultLinkCount = 3

// DefaultSettings returns the documented default for every generation option:
// images random, three links, categories random, no content seed, no
// keywords, colors random, medium content, html editor.
func DefaultSettings() Settings {
	return Settings{
		Images:      ImageSettings{Mode: ModeRandom},
		LinksCount:  LinkSettings{Mode: ModeRandom, Count: defaultLinkCount},
		Categories:  CategorySettings{Mode: ModeRandom},
		Content:     ContentSettings{Mode: ModeRandom},
		Colors:      ColorSettings{Mode: ModeRandom},
		ContentSize: SizeMedium,
		EditorMode:  EditorHTML,
	}
}

// ApplyDefaults merges a partial Settings value over the documented defaults
// and returns a fully-populated copy. It is pure and is the single defaulting
// site for every consumer: the store applies it on read and the orchestrator
// applies it again before the first stage runs.
func ApplyDefaults(partial Settings) Settings {
	s := DefaultSettings()

	if partial.Images.Mode != "" {
		s.Images.Mode = partial.Images.Mode
	}
	if len(partial.Images.URLs) > 0 {
		s.Images.URLs = partial.Images.URLs
	}

	if partial.LinksCount.Mode != "" {
		s.LinksCount.Mode = partial.LinksCount.Mode
	}
	if partial.LinksCount.Count > 0 {
		s.LinksCount.Count = partial.LinksCount.Count
	}

	if partial.Categories.Mode != "" {
		s.Categories.Mode = partial.Categories.Mode
	}
	if len(partial.Categories.List) > 0 {
		s.Categories.List = partial.Categories.List
	}

	if partial.Content.Mode != "" {
		s.Content.Mode = partial.Content.Mode
	}
	if partial.Content.Text != "" {
		s.Content.Text = partial.Content.Text
	}

	if len(partial.Keywords) > 0 {
		s.Keywords = partial.Keywords
	}

	if partial.Colors.Mode != "" {
		s.Colors.Mode = partial.Colors.Mode
	}
	if partial.Colors.Primary != "" {
		s.Colors.Primary = partial.Colors.Primary
	}
	if partial.Colors.Secondary != "" {
		s.Colors.Secondary = partial.Colors.Secondary
	}

	if partial.ContentSize != "" {
		s.ContentSize = partial.ContentSize
	}
	if partial.EditorMode != "" {
		s.EditorMode = partial.EditorMode
	}

	return s
}

// ManualColors reports whether the settings pin an explicit color pair, and
// returns it when they do.
func (s Settings) ManualColors() (primary, secondary string, ok bool) {
	if s.Colors.Mode == ModeManual && s.Colors.Primary != "" && s.Colors.Secondary != "" {
		return s.Colors.Primary, s.Colors.Secondary, true
	}
	return "", "", false
}
