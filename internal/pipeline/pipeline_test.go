// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/pdiddy/newsletter-engine/internal/gateway"
	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// scriptedGenerator replays canned responses in call order.
type scriptedGenerator struct {
	responses []string
	calls     int
	failAt    int // 1-based call index that errors; 0 means never
}

func (s *scriptedGenerator) Generate(_ context.Context, _ string, _ gateway.Purpose) (string, error) {
	s.calls++
	if s.failAt != 0 && s.calls >= s.failAt {
		return "", fmt.Errorf("provider down")
	}
	if s.calls > len(s.responses) {
		return "", fmt.Errorf("unexpected call %d", s.calls)
	}
	return s.responses[s.calls-1], nil
}

// memStore records every status written so tests can assert on the exact
// transition sequence.
type memStore struct {
	brands   map[string]types.Brand
	issues   map[string]types.Issue
	statuses []types.IssueStatus
}

func newMemStore(brands ...types.Brand) *memStore {
	m := &memStore{brands: map[string]types.Brand{}, issues: map[string]types.Issue{}}
	for _, b := range brands {
		m.brands[b.ID] = b
	}
	return m
}

func (m *memStore) GetBrand(_ context.Context, id string) (types.Brand, error) {
	b, ok := m.brands[id]
	if !ok {
		return types.Brand{}, fmt.Errorf("brand %s not found", id)
	}
	b.Settings = types.ApplyDefaults(b.Settings)
	return b, nil
}

func (m *memStore) CreateIssue(_ context.Context, issue types.Issue) error {
	m.issues[issue.ID] = issue
	m.statuses = append(m.statuses, issue.Status)
	return nil
}

func (m *memStore) UpdateIssue(_ context.Context, issue types.Issue) error {
	if _, ok := m.issues[issue.ID]; !ok {
		return fmt.Errorf("issue %s not found", issue.ID)
	}
	m.issues[issue.ID] = issue
	m.statuses = append(m.statuses, issue.Status)
	return nil
}

func (m *memStore) GetIssue(_ context.Context, id string) (types.Issue, error) {
	issue, ok := m.issues[id]
	if !ok {
		return types.Issue{}, fmt.Errorf("issue %s not found", id)
	}
	return issue, nil
}

func testBrand() types.Brand {
	return types.Brand{
		ID:       "circuit-weekly",
		Name:     "Circuit Weekly",
		Category: "technology",
	}
}

// happyResponses satisfies the four stage calls in pipeline order.
func happyResponses() []string {
	return []string{
		"# Chips Are Back\n\n## Fabs\nFoundry capacity is growing.\n\n## Edge\nInference moves on-device.",
		"The newsletter body prose.\n\nSUBJECT: Hello from tests\nSUBJECT: Second candidate",
		`{"layout": {"structure": "classic-stack"}}`,
		"<table role=\"presentation\"><tr><td>Body content here.</td></tr></table>",
	}
}

func newTestOrchestrator(store IssueStore, gen gateway.Generator) *Orchestrator {
	return New(Deps{
		Store:     store,
		Generator: gen,
		Rand:      rand.New(rand.NewSource(7)),
	})
}

func TestRunProducesDraft(t *testing.T) {
	store := newMemStore(testBrand())
	o := newTestOrchestrator(store, &scriptedGenerator{responses: happyResponses()})

	issue, err := o.Run(context.Background(), "circuit-weekly")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if issue.Status != types.StatusDraft {
		t.Errorf("status = %s, want %s", issue.Status, types.StatusDraft)
	}
	if issue.Subject != "Hello from tests" {
		t.Errorf("subject = %q", issue.Subject)
	}
	if issue.Preheader != "Second candidate" {
		t.Errorf("preheader = %q", issue.Preheader)
	}
	if !strings.HasPrefix(issue.HTMLContent, "<!DOCTYPE html>") {
		t.Error("html should be a complete document")
	}

	want := []types.IssueStatus{types.StatusGenerating, types.StatusDraft}
	if len(store.statuses) != 2 || store.statuses[0] != want[0] || store.statuses[1] != want[1] {
		t.Errorf("status transitions = %v, want %v", store.statuses, want)
	}
}

func TestRunStageFailureMarksFailed(t *testing.T) {
	for failAt := 1; failAt <= 2; failAt++ {
		t.Run(fmt.Sprintf("call %d fails", failAt), func(t *testing.T) {
			store := newMemStore(testBrand())
			o := newTestOrchestrator(store, &scriptedGenerator{responses: happyResponses(), failAt: failAt})

			issue, err := o.Run(context.Background(), "circuit-weekly")
			if err == nil {
				t.Fatal("Run should surface the stage error")
			}
			if !strings.Contains(err.Error(), "provider down") {
				t.Errorf("error = %v, want provider error preserved", err)
			}
			if issue.Status != types.StatusFailed {
				t.Errorf("status = %s, want %s", issue.Status, types.StatusFailed)
			}

			stored, getErr := store.GetIssue(context.Background(), issue.ID)
			if getErr != nil {
				t.Fatalf("issue not persisted: %v", getErr)
			}
			if stored.Status != types.StatusFailed {
				t.Errorf("persisted status = %s, want %s", stored.Status, types.StatusFailed)
			}
		})
	}
}

func TestRunUnknownBrand(t *testing.T) {
	store := newMemStore()
	o := newTestOrchestrator(store, &scriptedGenerator{responses: happyResponses()})

	_, err := o.Run(context.Background(), "nope")
	if err == nil {
		t.Fatal("Run should fail for unknown brand")
	}
	if len(store.statuses) != 0 {
		t.Errorf("no issue should be created, got transitions %v", store.statuses)
	}
}

func TestRunManualColorsReachRenderedHTML(t *testing.T) {
	brand := testBrand()
	brand.Settings.Colors = types.ColorSettings{
		Mode:      types.ModeManual,
		Primary:   "#112233",
		Secondary: "#445566",
	}
	store := newMemStore(brand)
	o := newTestOrchestrator(store, &scriptedGenerator{responses: happyResponses()})

	issue, err := o.Run(context.Background(), "circuit-weekly")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !strings.Contains(issue.HTMLContent, "#112233") {
		t.Error("manual primary color should appear verbatim in the document")
	}
}

func TestVerify(t *testing.T) {
	store := newMemStore(testBrand())
	store.issues["draft-1"] = types.Issue{
		ID:          "draft-1",
		BrandID:     "circuit-weekly",
		Status:      types.StatusDraft,
		HTMLContent: "<!-- SUBJECT: Foo --><!-- PREHEADER: Bar --><html><body><p>Fabs grew 12% last year.</p></body></html>",
	}
	store.issues["failed-1"] = types.Issue{ID: "failed-1", BrandID: "circuit-weekly", Status: types.StatusFailed}

	gen := &scriptedGenerator{responses: []string{
		`[{"text": "Fabs grew 12% last year", "is_statistic": true, "source_url": "https://data.gov/fabs", "context": "body"}]`,
		`{"engagement": 7, "brand_alignment": 8, "feedback": ["more links"]}`,
	}}
	o := newTestOrchestrator(store, gen)

	report, err := o.Verify(context.Background(), "draft-1")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if report.FactCheck.Score != 100 {
		t.Errorf("fact check score = %d, want 100", report.FactCheck.Score)
	}
	if report.Quality.Metrics.Engagement != 7 {
		t.Errorf("engagement = %d, want 7", report.Quality.Metrics.Engagement)
	}

	// Verify never mutates the issue.
	stored, _ := store.GetIssue(context.Background(), "draft-1")
	if stored.Status != types.StatusDraft {
		t.Errorf("status changed to %s", stored.Status)
	}

	if _, err := o.Verify(context.Background(), "failed-1"); err == nil {
		t.Error("failed issue should not be verifiable")
	}
	if _, err := o.Verify(context.Background(), "ghost"); err == nil {
		t.Error("missing issue should error")
	}
}
