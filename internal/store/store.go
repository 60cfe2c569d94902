// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package store persists brand profiles and newsletter issues. It implements
// the narrow record contract the pipeline consumes: read a brand, create an
// issue, update an issue.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// defaultDBFile is the database path used when configuration leaves it empty.
const defaultDBFile = "newsletters.db"

// Store manages the SQLite database behind the record contract.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database and ensures the schema exists.
func Open(cfg types.StoreConfig) (*Store, error) {
	path := cfg.Path
	if path == "" {
		path = defaultDBFile
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS brands (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			category TEXT,
			tone TEXT,
			audience TEXT,
			description TEXT,
			domain TEXT,
			voice TEXT,
			settings TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS issues (
			id TEXT PRIMARY KEY,
			brand_id TEXT NOT NULL REFERENCES brands(id),
			status TEXT NOT NULL,
			subject TEXT,
			preheader TEXT,
			html_content TEXT,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_issues_brand_id ON issues(brand_id)`,
		`CREATE INDEX IF NOT EXISTS idx_issues_status ON issues(status)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// ImportBrand reads a brand profile from a YAML file and upserts it.
func (s *Store) ImportBrand(ctx context.Context, path string) (types.Brand, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Brand{}, fmt.Errorf("reading brand file: %w", err)
	}
	var brand types.Brand
	if err := yaml.Unmarshal(data, &brand); err != nil {
		return types.Brand{}, fmt.Errorf("parsing brand file: %w", err)
	}
	if brand.ID == "" || brand.Name == "" {
		return types.Brand{}, fmt.Errorf("brand file must set id and name")
	}
	if err := s.SaveBrand(ctx, brand); err != nil {
		return types.Brand{}, err
	}
	return brand, nil
}

// SaveBrand inserts or replaces a brand record.
func (s *Store) SaveBrand(ctx context.Context, brand types.Brand) error {
	voice, err := marshalJSON(brand.Voice)
	if err != nil {
		return fmt.Errorf("encoding voice profile: %w", err)
	}
	settings, err := marshalJSON(brand.Settings)
	if err != nil {
		return fmt.Errorf("encoding settings: %w", err)
	}

	query, args, err := sq.Replace("brands").
		Columns("id", "name", "category", "tone", "audience", "description", "domain", "voice", "settings").
		Values(brand.ID, brand.Name, brand.Category, brand.Tone, brand.Audience, brand.Description, brand.Domain, voice, settings).
		ToSql()
	if err != nil {
		return fmt.Errorf("building brand upsert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("saving brand %s: %w", brand.ID, err)
	}
	return nil
}

// GetBrand reads one brand. Persisted settings are re-defaulted on read so
// records written by older versions never yield missing options.
func (s *Store) GetBrand(ctx context.Context, id string) (types.Brand, error) {
	query, args, err := sq.Select("id", "name", "category", "tone", "audience", "description", "domain", "voice", "settings").
		From("brands").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return types.Brand{}, fmt.Errorf("building brand query: %w", err)
	}

	var brand types.Brand
	var voice, settings string
	row := s.db.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&brand.ID, &brand.Name, &brand.Category, &brand.Tone,
		&brand.Audience, &brand.Description, &brand.Domain, &voice, &settings); err != nil {
		if err == sql.ErrNoRows {
			return types.Brand{}, fmt.Errorf("brand %s not found", id)
		}
		return types.Brand{}, fmt.Errorf("reading brand %s: %w", id, err)
	}

	if voice != "" && voice != "null" {
		var v types.VoiceProfile
		if err := json.Unmarshal([]byte(voice), &v); err == nil {
			brand.Voice = &v
		}
	}
	if settings != "" && settings != "null" {
		// Best-effort: a corrupt settings column falls back to defaults.
		json.Unmarshal([]byte(settings), &brand.Settings)
	}
	brand.Settings = types.ApplyDefaults(brand.Settings)

	return brand, nil
}

// ListBrands returns all brand records ordered by name.
func (s *Store) ListBrands(ctx context.Context) ([]types.Brand, error) {
	query, args, err := sq.Select("id", "name", "category").From("brands").OrderBy("name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("building brand list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing brands: %w", err)
	}
	defer rows.Close()

	var brands []types.Brand
	for rows.Next() {
		var b types.Brand
		if err := rows.Scan(&b.ID, &b.Name, &b.Category); err != nil {
			return nil, fmt.Errorf("scanning brand row: %w", err)
		}
		brands = append(brands, b)
	}
	return brands, rows.Err()
}

// CreateIssue inserts a new issue record.
func (s *Store) CreateIssue(ctx context.Context, issue types.Issue) error {
	query, args, err := sq.Insert("issues").
		Columns("id", "brand_id", "status", "subject", "preheader", "html_content", "created_at", "updated_at").
		Values(issue.ID, issue.BrandID, string(issue.Status), issue.Subject, issue.Preheader,
			issue.HTMLContent, formatTime(issue.CreatedAt), formatTime(issue.UpdatedAt)).
		ToSql()
	if err != nil {
		return fmt.Errorf("building issue insert: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("creating issue %s: %w", issue.ID, err)
	}
	return nil
}

// UpdateIssue rewrites an issue's mutable fields.
func (s *Store) UpdateIssue(ctx context.Context, issue types.Issue) error {
	query, args, err := sq.Update("issues").
		Set("status", string(issue.Status)).
		Set("subject", issue.Subject).
		Set("preheader", issue.Preheader).
		Set("html_content", issue.HTMLContent).
		Set("updated_at", formatTime(time.Now())).
		Where(sq.Eq{"id": issue.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("building issue update: %w", err)
	}

	res, err := s.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("updating issue %s: %w", issue.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("issue %s not found", issue.ID)
	}
	return nil
}

// GetIssue reads one issue.
func (s *Store) GetIssue(ctx context.Context, id string) (types.Issue, error) {
	query, args, err := issueSelect().Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return types.Issue{}, fmt.Errorf("building issue query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return types.Issue{}, fmt.Errorf("reading issue %s: %w", id, err)
	}
	defer rows.Close()

	issues, err := scanIssues(rows)
	if err != nil {
		return types.Issue{}, err
	}
	if len(issues) == 0 {
		return types.Issue{}, fmt.Errorf("issue %s not found", id)
	}
	return issues[0], nil
}

// ListIssues returns issues, optionally filtered by brand, newest first.
func (s *Store) ListIssues(ctx context.Context, brandID string) ([]types.Issue, error) {
	builder := issueSelect().OrderBy("created_at DESC")
	if brandID != "" {
		builder = builder.Where(sq.Eq{"brand_id": brandID})
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("building issue list query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer rows.Close()

	return scanIssues(rows)
}

func issueSelect() sq.SelectBuilder {
	return sq.Select("id", "brand_id", "status", "subject", "preheader", "html_content", "created_at", "updated_at").
		From("issues")
}

func scanIssues(rows *sql.Rows) ([]types.Issue, error) {
	var issues []types.Issue
	for rows.Next() {
		var issue types.Issue
		var status, created, updated string
		if err := rows.Scan(&issue.ID, &issue.BrandID, &status, &issue.Subject,
			&issue.Preheader, &issue.HTMLContent, &created, &updated); err != nil {
			return nil, fmt.Errorf("scanning issue row: %w", err)
		}
		issue.Status = types.IssueStatus(status)
		issue.CreatedAt = parseTime(created)
		issue.UpdatedAt = parseTime(updated)
		issues = append(issues, issue)
	}
	return issues, rows.Err()
}

func marshalJSON(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		t = time.Now()
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
