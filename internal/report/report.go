package report

import (
	"bytes"
	"fmt"
	"strings"

	"founder-assessment/internal/catalog"
	"founder-assessment/internal/domain"
)

// Options son los datos de marca que no dependen del resultado.
type Options struct {
	ContactURL string
	LogoURL    string
}

type QuestionLine struct {
	Text  string
	Score int
}

type CategorySection struct {
	ID        string
	Name      string
	Weight    int
	Raw       int
	Percent   float64
	Questions []QuestionLine
	Advice    string
}

type ActionItem struct {
	Position int
	Name     string
	Advice   string
}

// Report es el documento listo para mostrar o enviar.
type Report struct {
	Language        domain.Language
	Contact         domain.ContactInfo
	TotalScore      int
	Tier            domain.Tier
	TierLabel       string
	TierDescription string
	Categories      []CategorySection
	ActionPlan      []ActionItem
	Options         Options
	Labels          Labels
}

// Build arma el reporte a partir de la evaluacion y el contacto.
func Build(c *catalog.Catalog, lang domain.Language, contact domain.ContactInfo, eval domain.Evaluation, opts Options) Report {
	tierText, _ := c.Tier(eval.Tier, lang)
	r := Report{
		Language:        lang,
		Contact:         contact,
		TotalScore:      eval.RoundedTotal,
		Tier:            eval.Tier,
		TierLabel:       tierText.Label,
		TierDescription: tierText.Description,
		Options:         opts,
		Labels:          labelsFor(lang),
	}
	if r.TierLabel == "" {
		r.TierLabel = string(eval.Tier)
	}

	names := make(map[string]string)
	for _, cat := range c.Categories(lang) {
		names[cat.ID] = cat.Name
		res, ok := eval.Result(cat.ID)
		if !ok {
			continue
		}
		section := CategorySection{
			ID:      cat.ID,
			Name:    cat.Name,
			Weight:  cat.Weight,
			Raw:     res.Raw,
			Percent: res.Percentage,
		}
		for i, q := range cat.Questions {
			score := c.Scale().Min
			if i < len(res.Answers) {
				score = res.Answers[i]
			}
			section.Questions = append(section.Questions, QuestionLine{Text: q.Text, Score: score})
		}
		if eval.BelowThreshold(cat.ID) {
			section.Advice = c.Advice(cat.ID, lang)
		}
		r.Categories = append(r.Categories, section)
	}

	for i, imp := range eval.Improvements {
		name := names[imp.CategoryID]
		if name == "" {
			name = imp.CategoryID
		}
		r.ActionPlan = append(r.ActionPlan, ActionItem{Position: i + 1, Name: name, Advice: imp.Advice})
	}
	return r
}

// Subject es el asunto del email del reporte.
func (r Report) Subject() string {
	return fmt.Sprintf(r.Labels.Subject, r.Contact.CompanyName, r.TotalScore)
}

// Text renderiza el reporte en texto plano, para terminal y parte alternativa del email.
func (r Report) Text() string {
	l := r.Labels
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n%s\n\n", l.Title, strings.Repeat("=", len([]rune(l.Title))))

	if r.Contact.Email != "" {
		fmt.Fprintf(&b, "%s\n", l.ContactDetails)
		fmt.Fprintf(&b, "  %s: %s\n", l.Name, r.Contact.FullName())
		fmt.Fprintf(&b, "  %s: %s\n", l.Company, r.Contact.CompanyName)
		fmt.Fprintf(&b, "  %s: %s\n\n", l.Email, r.Contact.Email)
	}

	fmt.Fprintf(&b, "%s: %d/100 - %s", l.OverallScore, r.TotalScore, r.TierLabel)
	if r.TierDescription != "" {
		fmt.Fprintf(&b, " (%s)", r.TierDescription)
	}
	b.WriteString("\n\n")

	fmt.Fprintf(&b, "%s\n", l.DetailedScores)
	for _, cat := range r.Categories {
		fmt.Fprintf(&b, "\n%s (%s %d%%) - %.0f%%\n", cat.Name, l.Weight, cat.Weight, cat.Percent)
		for _, q := range cat.Questions {
			fmt.Fprintf(&b, "  [%d] %s\n", q.Score, q.Text)
		}
		if cat.Advice != "" {
			fmt.Fprintf(&b, "  %s: %s\n", l.ImprovementAdvice, cat.Advice)
		}
	}

	if len(r.ActionPlan) > 0 {
		fmt.Fprintf(&b, "\n%s\n%s\n", l.ActionPlan, l.ActionPlanDescription)
		for _, item := range r.ActionPlan {
			fmt.Fprintf(&b, "  %d. %s: %s\n", item.Position, item.Name, item.Advice)
		}
	}

	fmt.Fprintf(&b, "\n%s\n%s\n", l.ScoreExplanation, l.ScoreRange)
	if r.Options.ContactURL != "" {
		fmt.Fprintf(&b, "\n%s\n%s: %s\n", l.CTATitle, l.CTAButton, r.Options.ContactURL)
	}
	fmt.Fprintf(&b, "\n%s\n", l.Disclaimer)
	return b.String()
}

// HTML renderiza el reporte como documento de email. Los valores se escapan.
func (r Report) HTML() (string, error) {
	var buf bytes.Buffer
	if err := htmlTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("render report html: %w", err)
	}
	return buf.String(), nil
}
