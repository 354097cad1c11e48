package scoring

import (
	"founder-assessment/internal/catalog"
	"founder-assessment/internal/domain"
)

// ForCatalog construye un Engine con la escala y los parametros de mejora del catalogo.
func ForCatalog(c *catalog.Catalog) Engine {
	e := NewEngine(c.Scale())
	if th := c.ImprovementThreshold(); th > 0 {
		e.ImprovementThreshold = th
	}
	if limit := c.ImprovementLimit(); limit > 0 {
		e.ImprovementLimit = limit
	}
	return e
}

// EvaluateCatalog evalua un AnswerSet contra el catalogo, con consejos en el idioma pedido.
func EvaluateCatalog(c *catalog.Catalog, lang domain.Language, answers domain.AnswerSet) domain.Evaluation {
	e := ForCatalog(c)
	eval := e.Evaluate(c.Categories(lang), answers, func(id string) string {
		return c.Advice(id, lang)
	})
	eval.CatalogVersion = c.Version()
	return eval
}
