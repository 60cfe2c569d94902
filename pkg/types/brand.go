// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds the domain types shared across pipeline stages.
package types

// VoiceProfile captures a brand's editorial voice. All fields are optional;
// stages fold present fields into their prompts and skip absent ones.
type VoiceProfile struct {
	// Vocabulary lists words and phrases the brand favors.
	Vocabulary []string `json:"vocabulary,omitempty" yaml:"vocabulary,omitempty"`

	// ToneMarkers lists short descriptors of the brand's register
	// (e.g. "confident", "playful", "no exclamation marks").
	ToneMarkers []string `json:"tone_markers,omitempty" yaml:"tone_markers,omitempty"`

	// StyleGuide is free-form prose with writing rules for the brand.
	StyleGuide string `json:"style_guide,omitempty" yaml:"style_guide,omitempty"`
}

// Brand is the immutable input profile for a pipeline run.
type Brand struct {
	// ID identifies the brand record in the store.
	ID string `json:"id" yaml:"id"`

	// Name is the brand's display name.
	Name string `json:"name" yaml:"name"`

	// Category classifies the brand's content area (e.g. "technology",
	// "finance"). It seeds the palette generator's hue selection.
	Category string `json:"category" yaml:"category"`

	// Tone describes the desired overall tone of generated content.
	Tone string `json:"tone" yaml:"tone"`

	// Audience describes who the newsletter is written for.
	Audience string `json:"audience" yaml:"audience"`

	// Description summarizes what the brand does.
	Description string `json:"description" yaml:"description"`

	// Domain is the brand's website domain (e.g. "example.com").
	Domain string `json:"domain" yaml:"domain"`

	// Voice is the optional editorial voice profile.
	Voice *VoiceProfile `json:"voice,omitempty" yaml:"voice,omitempty"`

	// Settings holds the brand's generation preferences. Always read
	// through ApplyDefaults so absent options never surface downstream.
	Settings Settings `json:"settings" yaml:"settings"`
}
