package domain

import (
	"strings"
	"time"
)

// Language identifica el idioma de textos y reportes.
type Language string

const (
	LanguageDutch   Language = "nl"
	LanguageEnglish Language = "en"
)

// ParseLanguage normaliza un tag de idioma; devuelve false si no es soportado.
func ParseLanguage(raw string) (Language, bool) {
	tag := strings.ToLower(strings.TrimSpace(raw))
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		tag = tag[:i]
	}
	switch Language(tag) {
	case LanguageDutch, LanguageEnglish:
		return Language(tag), true
	default:
		return "", false
	}
}

// Scale es el rango cerrado de valores validos por pregunta.
type Scale struct {
	Min int `json:"min" yaml:"min"`
	Max int `json:"max" yaml:"max"`
}

func (s Scale) Contains(v int) bool {
	return v >= s.Min && v <= s.Max
}

type Question struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Label string `json:"label"`
}

// Category es un grupo ponderado de preguntas, con textos ya localizados.
type Category struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Weight    int        `json:"weight"`
	Advice    string     `json:"advice"`
	Questions []Question `json:"questions"`
}

// AnswerSet mapea category id -> respuestas en el orden de las preguntas.
type AnswerSet map[string][]int

// Clone devuelve una copia profunda.
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for id, answers := range a {
		out[id] = append([]int(nil), answers...)
	}
	return out
}

type CategoryResult struct {
	CategoryID    string  `json:"categoryId"`
	Weight        int     `json:"weight"`
	Answers       []int   `json:"answers"`
	Raw           int     `json:"raw"`
	MaxPossible   int     `json:"maxPossible"`
	Percentage    float64 `json:"percentage"`
	WeightedScore float64 `json:"weightedScore"`
	Average       float64 `json:"average"`
}

type Tier string

const (
	TierExcellent Tier = "excellent"
	TierGood      Tier = "good"
	TierModerate  Tier = "moderate"
	TierWeak      Tier = "weak"
	TierCritical  Tier = "critical"
)

// Rank ordena los tiers de peor (0) a mejor (4).
func (t Tier) Rank() int {
	switch t {
	case TierExcellent:
		return 4
	case TierGood:
		return 3
	case TierModerate:
		return 2
	case TierWeak:
		return 1
	default:
		return 0
	}
}

// Improvement es una categoria a mejorar junto con su consejo estatico.
type Improvement struct {
	CategoryID string  `json:"categoryId"`
	Average    float64 `json:"average"`
	Advice     string  `json:"advice"`
}

// Evaluation agrupa todo lo calculado para un AnswerSet.
type Evaluation struct {
	CatalogVersion string           `json:"catalogVersion"`
	Categories     []CategoryResult `json:"categories"`
	TotalScore     float64          `json:"totalScore"`
	RoundedTotal   int              `json:"roundedTotal"`
	Tier           Tier             `json:"tier"`
	Improvements   []Improvement    `json:"improvements"`

	// ImprovementThreshold es el promedio con el que se calcularon las mejoras.
	ImprovementThreshold float64 `json:"improvementThreshold"`
}

// Result devuelve el resultado de una categoria por id.
func (e Evaluation) Result(categoryID string) (CategoryResult, bool) {
	for _, r := range e.Categories {
		if r.CategoryID == categoryID {
			return r, true
		}
	}
	return CategoryResult{}, false
}

// BelowThreshold indica si el promedio de la categoria queda bajo el umbral
// de mejora, aunque no haya entrado en la lista limitada de Improvements.
func (e Evaluation) BelowThreshold(categoryID string) bool {
	r, ok := e.Result(categoryID)
	return ok && r.Average < e.ImprovementThreshold
}

// NeedsImprovement indica si la categoria aparece en la lista de mejoras.
func (e Evaluation) NeedsImprovement(categoryID string) bool {
	for _, imp := range e.Improvements {
		if imp.CategoryID == categoryID {
			return true
		}
	}
	return false
}

type ContactInfo struct {
	FirstName   string `json:"firstName" validate:"required,min=2,max=50"`
	LastName    string `json:"lastName" validate:"required,min=2,max=50"`
	CompanyName string `json:"companyName" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,max=254,assessment_email"`
}

func (c ContactInfo) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Submission registra un reporte enviado (o intentado) con su contacto.
type Submission struct {
	ID             string      `json:"id"`
	Contact        ContactInfo `json:"contact"`
	Language       Language    `json:"language"`
	Answers        AnswerSet   `json:"answers"`
	TotalScore     int         `json:"totalScore"`
	Tier           Tier        `json:"tier"`
	CatalogVersion string      `json:"catalogVersion"`
	Delivered      bool        `json:"delivered"`
	ClientKey      string      `json:"-"`
	CreatedAt      time.Time   `json:"createdAt"`
}
