package catalog

import (
	"errors"
	"strings"
	"testing"

	"founder-assessment/internal/domain"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := Default()
	if err != nil {
		t.Fatalf("expected embedded catalog to load, got %v", err)
	}
	if c.Version() == "" {
		t.Fatalf("expected catalog version")
	}
	if c.Scale() != (domain.Scale{Min: 0, Max: 4}) {
		t.Fatalf("unexpected scale %+v", c.Scale())
	}

	cats := c.Categories(domain.LanguageDutch)
	wantIDs := []string{"strategic", "operational", "customer", "financial", "leadership", "external"}
	wantWeights := []int{25, 20, 20, 15, 10, 10}
	if len(cats) != len(wantIDs) {
		t.Fatalf("expected %d categories, got %d", len(wantIDs), len(cats))
	}
	for i, cat := range cats {
		if cat.ID != wantIDs[i] || cat.Weight != wantWeights[i] {
			t.Fatalf("category %d: got %s/%d", i, cat.ID, cat.Weight)
		}
		if len(cat.Questions) != 4 {
			t.Fatalf("category %s: expected 4 questions, got %d", cat.ID, len(cat.Questions))
		}
	}
	if c.QuestionCount() != 24 {
		t.Fatalf("expected 24 questions, got %d", c.QuestionCount())
	}
}

func TestCatalogLocalization(t *testing.T) {
	c := MustDefault()

	en, ok := c.Category("strategic", domain.LanguageEnglish)
	if !ok {
		t.Fatalf("expected strategic category")
	}
	if en.Name != "Strategic Decision Making" {
		t.Fatalf("unexpected english name %q", en.Name)
	}
	nl, _ := c.Category("strategic", domain.LanguageDutch)
	if nl.Name != "Strategische Besluitvorming" {
		t.Fatalf("unexpected dutch name %q", nl.Name)
	}
	if en.Questions[0].Text == nl.Questions[0].Text {
		t.Fatalf("expected localized question text")
	}

	if got := c.TierLabel(domain.TierGood, domain.LanguageDutch); got != "Goed" {
		t.Fatalf("expected Goed, got %q", got)
	}
	if got := c.TierLabel(domain.TierGood, domain.LanguageEnglish); got != "Good" {
		t.Fatalf("expected Good, got %q", got)
	}
}

func TestCatalogResolveLanguage(t *testing.T) {
	c := MustDefault()
	cases := map[string]domain.Language{
		"en":    domain.LanguageEnglish,
		"EN-us": domain.LanguageEnglish,
		"nl":    domain.LanguageDutch,
		"":      domain.LanguageDutch,
		"fr":    domain.LanguageDutch,
	}
	for raw, want := range cases {
		if got := c.ResolveLanguage(raw); got != want {
			t.Fatalf("ResolveLanguage(%q) = %s, want %s", raw, got, want)
		}
	}
}

func TestCatalogAdviceFallback(t *testing.T) {
	c := MustDefault()
	if got := c.Advice("customer", domain.LanguageEnglish); !strings.Contains(got, "CRM") {
		t.Fatalf("unexpected advice %q", got)
	}
	if got := c.Advice("unknown", domain.LanguageEnglish); got != "Focus on improving this category." {
		t.Fatalf("expected fallback advice, got %q", got)
	}
}

func TestParseRejectsInvalidDocuments(t *testing.T) {
	tiers := `
tiers:
  excellent: {label: {nl: E}}
  good: {label: {nl: G}}
  moderate: {label: {nl: M}}
  weak: {label: {nl: W}}
  critical: {label: {nl: C}}
`
	cases := map[string]string{
		"bad weights": `
version: "1"
scale: {min: 0, max: 4}
categories:
  - id: a
    weight: 60
    questions: [{id: a1}]
  - id: b
    weight: 30
    questions: [{id: b1}]
` + tiers,
		"duplicate id": `
version: "1"
scale: {min: 0, max: 4}
categories:
  - id: a
    weight: 50
    questions: [{id: a1}]
  - id: a
    weight: 50
    questions: [{id: a2}]
` + tiers,
		"inverted scale": `
version: "1"
scale: {min: 4, max: 0}
categories:
  - id: a
    weight: 100
    questions: [{id: a1}]
` + tiers,
		"missing tiers": `
version: "1"
scale: {min: 0, max: 4}
categories:
  - id: a
    weight: 100
    questions: [{id: a1}]
`,
		"not yaml": "version: [",
		"improvement limit above three": `
version: "1"
scale: {min: 0, max: 4}
improvement: {limit: 4}
categories:
  - id: a
    weight: 100
    questions: [{id: a1}]
` + tiers,
		"improvement threshold above three": `
version: "1"
scale: {min: 0, max: 4}
improvement: {threshold: 3.5}
categories:
  - id: a
    weight: 100
    questions: [{id: a1}]
` + tiers,
		"negative improvement limit": `
version: "1"
scale: {min: 0, max: 4}
improvement: {limit: -1}
categories:
  - id: a
    weight: 100
    questions: [{id: a1}]
` + tiers,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(raw))
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestParseAcceptsImprovementBounds(t *testing.T) {
	raw := `
version: "1"
scale: {min: 0, max: 4}
improvement: {limit: 3, threshold: 3}
categories:
  - id: a
    weight: 100
    questions: [{id: a1}]
tiers:
  excellent: {label: {nl: E}}
  good: {label: {nl: G}}
  moderate: {label: {nl: M}}
  weak: {label: {nl: W}}
  critical: {label: {nl: C}}
`
	c, err := Parse([]byte(raw))
	if err != nil {
		t.Fatalf("expected limit 3 and threshold 3 to pass, got %v", err)
	}
	if c.ImprovementLimit() != MaxImprovementLimit || c.ImprovementThreshold() != MaxImprovementThreshold {
		t.Fatalf("unexpected improvement params %d/%.1f", c.ImprovementLimit(), c.ImprovementThreshold())
	}
}

func TestWithDefaultLanguage(t *testing.T) {
	base := MustDefault()

	en, err := base.WithDefaultLanguage("EN-gb")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if en.ResolveLanguage("fr") != domain.LanguageEnglish {
		t.Fatalf("expected english fallback on the copy")
	}
	if base.ResolveLanguage("fr") != domain.LanguageDutch {
		t.Fatalf("expected base catalog untouched")
	}
	if _, err := base.WithDefaultLanguage("de"); !errors.Is(err, ErrInvalidCatalog) {
		t.Fatalf("expected ErrInvalidCatalog, got %v", err)
	}
}

func TestLoad(t *testing.T) {
	c, err := Load("", "en")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.DefaultLanguage() != domain.LanguageEnglish {
		t.Fatalf("expected english default, got %s", c.DefaultLanguage())
	}
	if _, err := Load("does-not-exist.yaml", ""); err == nil {
		t.Fatalf("expected missing file to fail")
	}
}
