// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// IssueStatus tracks a newsletter issue through its lifecycle.
type IssueStatus string

const (
	// StatusGenerating marks an issue whose pipeline run is in progress.
	StatusGenerating IssueStatus = "GENERATING"

	// StatusDraft marks a completed run whose artifact awaits review.
	StatusDraft IssueStatus = "DRAFT"

	// StatusApproved and StatusSent are set by external collaborators
	// (dashboard, delivery) after a run completes; the pipeline never
	// writes them.
	StatusApproved IssueStatus = "APPROVED"
	StatusSent     IssueStatus = "SENT"

	// StatusFailed marks a run aborted by an unrecovered error. A failed
	// issue has no usable HTML content.
	StatusFailed IssueStatus = "FAILED"
)

// Terminal reports whether the pipeline considers the status final.
func (s IssueStatus) Terminal() bool {
	return s != StatusGenerating
}

// Issue is the persisted record of one pipeline run. The orchestrator owns
// the record exclusively for the run's duration: it is created in
// StatusGenerating and transitions exactly once to StatusDraft or
// StatusFailed before control returns to the caller.
type Issue struct {
	ID          string      `json:"id"`
	BrandID     string      `json:"brand_id"`
	Status      IssueStatus `json:"status"`
	Subject     string      `json:"subject"`
	Preheader   string      `json:"preheader"`
	HTMLContent string      `json:"html_content"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}
