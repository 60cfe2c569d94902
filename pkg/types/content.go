// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ResearchBundle is the research stage's output. RawMarkdown is the
// authoritative payload carried to the writing stage and is guaranteed
// non-empty; the remaining fields are best-effort anchors extracted for
// diagnostics and may be empty.
type ResearchBundle struct {
	// RawMarkdown is the complete generator response, opaque to
	// downstream stages.
	RawMarkdown string `json:"raw_markdown"`

	// Headline is a best-effort extraction of the lead headline.
	Headline string `json:"headline,omitempty"`

	// Topics lists best-effort extracted topic headings.
	Topics []string `json:"topics,omitempty"`
}

// WrittenContent is the writing stage's output. RawContent is the
// authoritative payload; SubjectLines holds up to three best-effort
// extracted subject line candidates.
type WrittenContent struct {
	RawContent   string   `json:"raw_content"`
	SubjectLines []string `json:"subject_lines,omitempty"`
}

// RenderedNewsletter is the design stage's output: a complete email-safe
// HTML document plus the subject and preheader chosen for it.
type RenderedNewsletter struct {
	// HTML is the full document. It starts with <!DOCTYPE html>, ends
	// with </html>, uses table layout with inline CSS, and references no
	// external scripts or stylesheets.
	HTML string `json:"html"`

	Subject   string `json:"subject"`
	Preheader string `json:"preheader"`
}
