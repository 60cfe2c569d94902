// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package design wraps AI-authored body content in a fixed, email-client-safe
// HTML envelope.
package design

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/pdiddy/newsletter-engine/internal/gateway"
	"github.com/pdiddy/newsletter-engine/pkg/types"
)

// Renderer assembles the final newsletter document.
type Renderer struct {
	gen  gateway.Generator
	rand *rand.Rand
}

// NewRenderer builds the renderer. The random source picks the header
// template; nil falls back to a time-seeded source.
func NewRenderer(gen gateway.Generator, r *rand.Rand) *Renderer {
	if r == nil {
		r = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Renderer{gen: gen, rand: r}
}

// Render produces the complete newsletter document. The palette is whatever
// the caller resolved (manual settings colors, blueprint tokens, or a
// generated palette); Render applies it verbatim. Settings contribute the
// pinned image URLs when image selection is manual.
func (r *Renderer) Render(ctx context.Context, brand types.Brand, settings types.Settings, content types.WrittenContent, blueprint types.LayoutBlueprint, pal types.Palette) (types.RenderedNewsletter, error) {
	subject, preheader := chooseSubject(brand, content)

	header := r.renderHeader(brand, pal, subject)

	body, err := r.generateBody(ctx, brand, settings, content, blueprint, pal)
	if err != nil {
		return types.RenderedNewsletter{}, err
	}

	html := assemble(documentParts{
		Subject:   subject,
		Preheader: preheader,
		Header:    header,
		Body:      body,
		Footer:    renderFooter(brand, pal),
		Palette:   pal,
		Font:      blueprint.DesignTokens.Font,
	})

	return types.RenderedNewsletter{
		HTML:      html,
		Subject:   subject,
		Preheader: preheader,
	}, nil
}

// chooseSubject picks the subject and preheader from the writing stage's
// extracted candidates, with brand-name-based fallbacks.
func chooseSubject(brand types.Brand, content types.WrittenContent) (subject, preheader string) {
	subject = brand.Name + " Newsletter"
	preheader = "Your latest updates"
	if len(content.SubjectLines) > 0 {
		subject = content.SubjectLines[0]
	}
	if len(content.SubjectLines) > 1 {
		preheader = content.SubjectLines[1]
	}
	return subject, preheader
}

// renderHeader picks one header fragment at random and fills its tokens.
func (r *Renderer) renderHeader(brand types.Brand, pal types.Palette, subject string) string {
	fragment := headerCatalog[r.rand.Intn(len(headerCatalog))]
	return fillTokens(fragment, map[string]string{
		"BRAND":     brand.Name,
		"SUBJECT":   subject,
		"DATE":      time.Now().Format("January 2, 2006"),
		"PRIMARY":   pal.Primary,
		"SECONDARY": pal.Secondary,
		"ACCENT":    pal.Accent,
		"TEXT":      pal.Text,
	})
}

// fillTokens substitutes {{NAME}} markers in a catalog fragment. Fragments
// are fixed and validated by tests, so an unresolved token is a programming
// error surfaced by the catalog test rather than handled here.
func fillTokens(fragment string, tokens map[string]string) string {
	pairs := make([]string, 0, len(tokens)*2)
	for name, value := range tokens {
		pairs = append(pairs, "{{"+name+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(fragment)
}

// generateBody requests the AI-authored body fragment, constrained to
// email-safe markup.
func (r *Renderer) generateBody(ctx context.Context, brand types.Brand, settings types.Settings, content types.WrittenContent, blueprint types.LayoutBlueprint, pal types.Palette) (string, error) {
	prompt, err := buildBodyPrompt(brand, settings, content, blueprint, pal)
	if err != nil {
		return "", fmt.Errorf("building body prompt: %w", err)
	}

	body, err := r.gen.Generate(ctx, prompt, gateway.PurposeGeneral)
	if err != nil {
		return "", fmt.Errorf("body generation: %w", err)
	}

	return sanitizeBody(body), nil
}

// sanitizeBody strips code fences and any stray document-level tags the
// generator emitted despite instructions. The envelope supplies those.
func sanitizeBody(body string) string {
	var b strings.Builder
	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			continue
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	out := b.String()
	for _, tag := range []string{"<!DOCTYPE html>", "<html>", "</html>", "<head>", "</head>", "<body>", "</body>"} {
		out = strings.ReplaceAll(out, tag, "")
	}
	return strings.TrimSpace(out)
}
