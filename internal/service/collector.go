package service

import (
	"errors"
	"fmt"

	"founder-assessment/internal/catalog"
	"founder-assessment/internal/domain"
)

var (
	ErrUnknownCategory = errors.New("unknown category")
	ErrQuestionIndex   = errors.New("question index out of range")
	ErrScoreOutOfRange = errors.New("score out of range")
)

// Collector acumula una respuesta por pregunta durante una sesion.
// No es seguro para uso concurrente: cada sesion tiene el suyo.
type Collector struct {
	catalog *catalog.Catalog
	answers map[string][]*int
}

func NewCollector(c *catalog.Catalog) *Collector {
	col := &Collector{catalog: c}
	col.Reset()
	return col
}

// Reset descarta todas las respuestas.
func (c *Collector) Reset() {
	c.answers = make(map[string][]*int)
	for _, cat := range c.catalog.Categories(c.catalog.DefaultLanguage()) {
		c.answers[cat.ID] = make([]*int, len(cat.Questions))
	}
}

// Record guarda la respuesta de una pregunta. Un valor ya registrado se reemplaza.
func (c *Collector) Record(categoryID string, index, score int) error {
	slots, ok := c.answers[categoryID]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCategory, categoryID)
	}
	if index < 0 || index >= len(slots) {
		return fmt.Errorf("%w: %s[%d]", ErrQuestionIndex, categoryID, index)
	}
	if !c.catalog.Scale().Contains(score) {
		scale := c.catalog.Scale()
		return fmt.Errorf("%w: %d not in [%d,%d]", ErrScoreOutOfRange, score, scale.Min, scale.Max)
	}
	v := score
	slots[index] = &v
	return nil
}

// Answer devuelve la respuesta registrada, si existe.
func (c *Collector) Answer(categoryID string, index int) (int, bool) {
	slots, ok := c.answers[categoryID]
	if !ok || index < 0 || index >= len(slots) || slots[index] == nil {
		return 0, false
	}
	return *slots[index], true
}

// CategoryComplete indica si todas las preguntas de la categoria tienen respuesta.
// El minimo de la escala cuenta como respondido.
func (c *Collector) CategoryComplete(categoryID string) bool {
	slots, ok := c.answers[categoryID]
	if !ok {
		return false
	}
	for _, v := range slots {
		if v == nil {
			return false
		}
	}
	return true
}

func (c *Collector) Complete() bool {
	for id := range c.answers {
		if !c.CategoryComplete(id) {
			return false
		}
	}
	return true
}

// Progress devuelve cuantas preguntas fueron respondidas sobre el total.
func (c *Collector) Progress() (answered, total int) {
	for _, slots := range c.answers {
		for _, v := range slots {
			total++
			if v != nil {
				answered++
			}
		}
	}
	return answered, total
}

// Answers devuelve el AnswerSet, con el minimo de la escala en las preguntas sin respuesta.
func (c *Collector) Answers() domain.AnswerSet {
	min := c.catalog.Scale().Min
	out := make(domain.AnswerSet, len(c.answers))
	for id, slots := range c.answers {
		vals := make([]int, len(slots))
		for i, v := range slots {
			if v == nil {
				vals[i] = min
				continue
			}
			vals[i] = *v
		}
		out[id] = vals
	}
	return out
}
