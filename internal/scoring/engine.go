package scoring

import (
	"math"
	"sort"

	"founder-assessment/internal/domain"
)

// Tier thresholds, inclusive lower bounds.
const (
	ExcellentThreshold = 80.0
	GoodThreshold      = 60.0
	ModerateThreshold  = 40.0
	WeakThreshold      = 20.0
)

// DefaultImprovementThreshold y DefaultImprovementLimit aplican cuando el catalogo no define otros.
const (
	DefaultImprovementThreshold = 3.0
	DefaultImprovementLimit     = 3
)

// AdviceFunc resuelve el consejo estatico de una categoria.
type AdviceFunc func(categoryID string) string

// Engine calcula resultados para una escala dada. Es puro y determinista.
type Engine struct {
	Scale                domain.Scale
	ImprovementThreshold float64
	ImprovementLimit     int
}

func NewEngine(scale domain.Scale) Engine {
	return Engine{
		Scale:                scale,
		ImprovementThreshold: DefaultImprovementThreshold,
		ImprovementLimit:     DefaultImprovementLimit,
	}
}

// ComputeCategoryResult suma las respuestas de una categoria y las normaliza a porcentaje.
// Respuestas faltantes cuentan como el minimo de la escala; las sobrantes se ignoran.
func (e Engine) ComputeCategoryResult(category domain.Category, answers []int) domain.CategoryResult {
	n := len(category.Questions)
	filled := make([]int, n)
	raw := 0
	for i := 0; i < n; i++ {
		v := e.Scale.Min
		if i < len(answers) {
			v = answers[i]
		}
		filled[i] = v
		raw += v
	}

	res := domain.CategoryResult{
		CategoryID:  category.ID,
		Weight:      category.Weight,
		Answers:     filled,
		Raw:         raw,
		MaxPossible: n * e.Scale.Max,
	}
	if n == 0 {
		return res
	}

	span := n * (e.Scale.Max - e.Scale.Min)
	if span > 0 {
		res.Percentage = float64(raw-n*e.Scale.Min) / float64(span) * 100
	}
	res.WeightedScore = res.Percentage * float64(category.Weight) / 100
	res.Average = float64(raw) / float64(n)
	return res
}

// ComputeCategoryResults aplica ComputeCategoryResult en el orden del catalogo.
func (e Engine) ComputeCategoryResults(categories []domain.Category, answers domain.AnswerSet) []domain.CategoryResult {
	out := make([]domain.CategoryResult, 0, len(categories))
	for _, cat := range categories {
		out = append(out, e.ComputeCategoryResult(cat, answers[cat.ID]))
	}
	return out
}

// ComputeTotalScore es la suma de los puntajes ponderados, en [0,100].
func (e Engine) ComputeTotalScore(categories []domain.Category, answers domain.AnswerSet) float64 {
	return SumWeighted(e.ComputeCategoryResults(categories, answers))
}

func SumWeighted(results []domain.CategoryResult) float64 {
	total := 0.0
	for _, r := range results {
		total += r.WeightedScore
	}
	return total
}

// Classify asigna el tier al puntaje total.
func Classify(total float64) domain.Tier {
	switch {
	case total >= ExcellentThreshold:
		return domain.TierExcellent
	case total >= GoodThreshold:
		return domain.TierGood
	case total >= ModerateThreshold:
		return domain.TierModerate
	case total >= WeakThreshold:
		return domain.TierWeak
	default:
		return domain.TierCritical
	}
}

// SelectImprovementCategories devuelve las categorias con promedio bajo el umbral,
// de menor a mayor promedio, hasta el limite configurado.
func (e Engine) SelectImprovementCategories(results []domain.CategoryResult, advice AdviceFunc) []domain.Improvement {
	threshold := e.ImprovementThreshold
	limit := e.ImprovementLimit
	if limit <= 0 {
		limit = DefaultImprovementLimit
	}

	low := make([]domain.CategoryResult, 0, len(results))
	for _, r := range results {
		if r.Average < threshold {
			low = append(low, r)
		}
	}
	sort.SliceStable(low, func(i, j int) bool {
		return low[i].Average < low[j].Average
	})
	if len(low) > limit {
		low = low[:limit]
	}

	out := make([]domain.Improvement, 0, len(low))
	for _, r := range low {
		imp := domain.Improvement{CategoryID: r.CategoryID, Average: r.Average}
		if advice != nil {
			imp.Advice = advice(r.CategoryID)
		}
		out = append(out, imp)
	}
	return out
}

// Evaluate calcula todo lo que necesita el formateador de reportes.
func (e Engine) Evaluate(categories []domain.Category, answers domain.AnswerSet, advice AdviceFunc) domain.Evaluation {
	results := e.ComputeCategoryResults(categories, answers)
	total := SumWeighted(results)
	return domain.Evaluation{
		Categories:   results,
		TotalScore:   total,
		RoundedTotal: int(math.Round(total)),
		Tier:         Classify(total),
		Improvements: e.SelectImprovementCategories(results, advice),

		ImprovementThreshold: e.ImprovementThreshold,
	}
}
