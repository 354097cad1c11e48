package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"founder-assessment/internal/domain"
)

//go:embed assessment.yaml
var defaultDocument []byte

var (
	ErrInvalidCatalog = errors.New("invalid catalog")
	ErrUnknownTier    = errors.New("unknown tier")
)

// texts es un valor traducido por idioma.
type texts map[domain.Language]string

func (t texts) get(lang, fallback domain.Language) string {
	if v, ok := t[lang]; ok && v != "" {
		return v
	}
	return t[fallback]
}

// Cotas de los parametros de mejora: el plan de accion nunca lista mas de
// tres categorias y solo marca promedios por debajo de 3.
const (
	MaxImprovementThreshold = 3.0
	MaxImprovementLimit     = 3
)

type document struct {
	Version         string            `yaml:"version"`
	DefaultLanguage domain.Language   `yaml:"default_language"`
	Languages       []domain.Language `yaml:"languages"`
	Scale           domain.Scale      `yaml:"scale"`
	Improvement     struct {
		Threshold      float64 `yaml:"threshold"`
		Limit          int     `yaml:"limit"`
		FallbackAdvice texts   `yaml:"fallback_advice"`
	} `yaml:"improvement"`
	Tiers      map[domain.Tier]tierDocument `yaml:"tiers"`
	Categories []categoryDocument           `yaml:"categories"`
}

type tierDocument struct {
	Label       texts `yaml:"label"`
	Description texts `yaml:"description"`
}

type categoryDocument struct {
	ID        string             `yaml:"id"`
	Weight    int                `yaml:"weight"`
	Name      texts              `yaml:"name"`
	Advice    texts              `yaml:"advice"`
	Questions []questionDocument `yaml:"questions"`
}

type questionDocument struct {
	ID    string `yaml:"id"`
	Text  texts  `yaml:"text"`
	Label texts  `yaml:"label"`
}

// Catalog es la definicion autoritativa y versionada del cuestionario.
type Catalog struct {
	doc document
}

// TierText contiene etiqueta y descripcion localizadas de un tier.
type TierText struct {
	Label       string `json:"label"`
	Description string `json:"description"`
}

// Default devuelve el catalogo embebido en el binario.
func Default() (*Catalog, error) {
	return Parse(defaultDocument)
}

// MustDefault es Default para inicializacion y tests; paniquea si el YAML embebido es invalido.
func MustDefault() *Catalog {
	c, err := Default()
	if err != nil {
		panic(err)
	}
	return c
}

// LoadFile lee un catalogo alternativo desde disco.
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(raw)
}

// Load devuelve el catalogo de path, o el embebido si path es vacio, con el
// idioma por defecto indicado.
func Load(path, defaultLanguage string) (*Catalog, error) {
	var (
		c   *Catalog
		err error
	)
	if path != "" {
		c, err = LoadFile(path)
	} else {
		c, err = Default()
	}
	if err != nil || defaultLanguage == "" {
		return c, err
	}
	return c.WithDefaultLanguage(defaultLanguage)
}

// Parse decodifica y valida un documento YAML de catalogo.
func Parse(raw []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if doc.DefaultLanguage == "" {
		doc.DefaultLanguage = domain.LanguageDutch
	}
	if doc.Improvement.Limit == 0 {
		doc.Improvement.Limit = 3
	}
	c := &Catalog{doc: doc}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Catalog) validate() error {
	d := c.doc
	if strings.TrimSpace(d.Version) == "" {
		return fmt.Errorf("%w: version is required", ErrInvalidCatalog)
	}
	if d.Scale.Max <= d.Scale.Min {
		return fmt.Errorf("%w: scale max %d must exceed min %d", ErrInvalidCatalog, d.Scale.Max, d.Scale.Min)
	}
	if len(d.Categories) == 0 {
		return fmt.Errorf("%w: no categories", ErrInvalidCatalog)
	}
	seen := make(map[string]struct{}, len(d.Categories))
	total := 0
	for _, cat := range d.Categories {
		if cat.ID == "" {
			return fmt.Errorf("%w: category without id", ErrInvalidCatalog)
		}
		if _, dup := seen[cat.ID]; dup {
			return fmt.Errorf("%w: duplicate category %q", ErrInvalidCatalog, cat.ID)
		}
		seen[cat.ID] = struct{}{}
		if cat.Weight <= 0 {
			return fmt.Errorf("%w: category %q has non-positive weight", ErrInvalidCatalog, cat.ID)
		}
		if len(cat.Questions) == 0 {
			return fmt.Errorf("%w: category %q has no questions", ErrInvalidCatalog, cat.ID)
		}
		total += cat.Weight
	}
	if total != 100 {
		return fmt.Errorf("%w: weights sum to %d, must sum to 100", ErrInvalidCatalog, total)
	}
	if th := d.Improvement.Threshold; th < 0 || th > MaxImprovementThreshold {
		return fmt.Errorf("%w: improvement threshold %.2f outside [0, %.0f]", ErrInvalidCatalog, th, MaxImprovementThreshold)
	}
	if limit := d.Improvement.Limit; limit < 0 || limit > MaxImprovementLimit {
		return fmt.Errorf("%w: improvement limit %d outside [0, %d]", ErrInvalidCatalog, limit, MaxImprovementLimit)
	}
	for _, tier := range []domain.Tier{domain.TierExcellent, domain.TierGood, domain.TierModerate, domain.TierWeak, domain.TierCritical} {
		if _, ok := d.Tiers[tier]; !ok {
			return fmt.Errorf("%w: missing tier %q", ErrInvalidCatalog, tier)
		}
	}
	return nil
}

func (c *Catalog) Version() string { return c.doc.Version }

func (c *Catalog) Scale() domain.Scale { return c.doc.Scale }

func (c *Catalog) DefaultLanguage() domain.Language { return c.doc.DefaultLanguage }

// ImprovementThreshold es el promedio por debajo del cual una categoria necesita mejora.
func (c *Catalog) ImprovementThreshold() float64 { return c.doc.Improvement.Threshold }

// ImprovementLimit es la cantidad maxima de categorias en el plan de accion.
func (c *Catalog) ImprovementLimit() int { return c.doc.Improvement.Limit }

// Supports indica si el catalogo tiene textos para el idioma.
func (c *Catalog) Supports(lang domain.Language) bool {
	for _, l := range c.doc.Languages {
		if l == lang {
			return true
		}
	}
	return false
}

// ResolveLanguage convierte un tag libre en un idioma soportado, con fallback al default.
func (c *Catalog) ResolveLanguage(raw string) domain.Language {
	if lang, ok := domain.ParseLanguage(raw); ok && c.Supports(lang) {
		return lang
	}
	return c.doc.DefaultLanguage
}

// WithDefaultLanguage devuelve una copia con otro idioma por defecto.
func (c *Catalog) WithDefaultLanguage(raw string) (*Catalog, error) {
	lang, ok := domain.ParseLanguage(raw)
	if !ok || !c.Supports(lang) {
		return nil, fmt.Errorf("%w: unsupported language %q", ErrInvalidCatalog, raw)
	}
	doc := c.doc
	doc.DefaultLanguage = lang
	return &Catalog{doc: doc}, nil
}

// Categories devuelve las categorias en orden con textos localizados.
func (c *Catalog) Categories(lang domain.Language) []domain.Category {
	fallback := c.doc.DefaultLanguage
	out := make([]domain.Category, 0, len(c.doc.Categories))
	for _, cat := range c.doc.Categories {
		questions := make([]domain.Question, 0, len(cat.Questions))
		for _, q := range cat.Questions {
			questions = append(questions, domain.Question{
				ID:    q.ID,
				Text:  q.Text.get(lang, fallback),
				Label: q.Label.get(lang, fallback),
			})
		}
		out = append(out, domain.Category{
			ID:        cat.ID,
			Name:      cat.Name.get(lang, fallback),
			Weight:    cat.Weight,
			Advice:    cat.Advice.get(lang, fallback),
			Questions: questions,
		})
	}
	return out
}

// Category busca una categoria por id.
func (c *Catalog) Category(id string, lang domain.Language) (domain.Category, bool) {
	for _, cat := range c.Categories(lang) {
		if cat.ID == id {
			return cat, true
		}
	}
	return domain.Category{}, false
}

// QuestionCount devuelve el total de preguntas del catalogo.
func (c *Catalog) QuestionCount() int {
	n := 0
	for _, cat := range c.doc.Categories {
		n += len(cat.Questions)
	}
	return n
}

// Advice devuelve el consejo estatico de una categoria o el generico si no existe.
func (c *Catalog) Advice(categoryID string, lang domain.Language) string {
	for _, cat := range c.doc.Categories {
		if cat.ID == categoryID {
			if advice := cat.Advice.get(lang, c.doc.DefaultLanguage); advice != "" {
				return advice
			}
		}
	}
	return c.doc.Improvement.FallbackAdvice.get(lang, c.doc.DefaultLanguage)
}

// Tier devuelve los textos localizados de un tier.
func (c *Catalog) Tier(tier domain.Tier, lang domain.Language) (TierText, error) {
	t, ok := c.doc.Tiers[tier]
	if !ok {
		return TierText{}, fmt.Errorf("%w: %q", ErrUnknownTier, tier)
	}
	fallback := c.doc.DefaultLanguage
	return TierText{
		Label:       t.Label.get(lang, fallback),
		Description: t.Description.get(lang, fallback),
	}, nil
}

// TierLabel es Tier sin error; usa la clave si el tier no existe.
func (c *Catalog) TierLabel(tier domain.Tier, lang domain.Language) string {
	t, err := c.Tier(tier, lang)
	if err != nil {
		return string(tier)
	}
	return t.Label
}
