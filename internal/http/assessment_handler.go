package http

import (
	"errors"
	"math"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"founder-assessment/internal/catalog"
	"founder-assessment/internal/domain"
	"founder-assessment/internal/service"
)

// AssessmentHandler mantiene dependencias para endpoints del assessment.
type AssessmentHandler struct {
	logger     *zap.Logger
	catalog    *catalog.Catalog
	submission *service.SubmissionService
}

// NewAssessmentHandler crea una instancia de AssessmentHandler con dependencias necesarias.
func NewAssessmentHandler(logger *zap.Logger, cat *catalog.Catalog, submission *service.SubmissionService) *AssessmentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentHandler{
		logger:     logger,
		catalog:    cat,
		submission: submission,
	}
}

type categoryResultResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Weight        int     `json:"weight"`
	Raw           int     `json:"raw"`
	MaxPossible   int     `json:"maxPossible"`
	Percentage    float64 `json:"percentage"`
	WeightedScore float64 `json:"weightedScore"`
	Average       float64 `json:"average"`
}

type improvementResponse struct {
	CategoryID string  `json:"categoryId"`
	Name       string  `json:"name"`
	Average    float64 `json:"average"`
	Advice     string  `json:"advice"`
}

type evaluationResponse struct {
	CatalogVersion string                   `json:"catalogVersion"`
	Language       domain.Language          `json:"language"`
	TotalScore     int                      `json:"totalScore"`
	ExactScore     float64                  `json:"exactScore"`
	Tier           domain.Tier              `json:"tier"`
	OverallLevel   string                   `json:"overallLevel"`
	Description    string                   `json:"description"`
	Categories     []categoryResultResponse `json:"categories"`
	Improvements   []improvementResponse    `json:"improvements"`
}

// GetCatalog maneja GET /api/catalog.
func (h *AssessmentHandler) GetCatalog(c *gin.Context) {
	lang := h.catalog.ResolveLanguage(c.Query("lang"))

	tiers := make(map[domain.Tier]catalog.TierText)
	for _, t := range []domain.Tier{domain.TierExcellent, domain.TierGood, domain.TierModerate, domain.TierWeak, domain.TierCritical} {
		text, err := h.catalog.Tier(t, lang)
		if err != nil {
			continue
		}
		tiers[t] = text
	}

	c.JSON(http.StatusOK, gin.H{
		"version":    h.catalog.Version(),
		"language":   lang,
		"scale":      h.catalog.Scale(),
		"categories": h.catalog.Categories(lang),
		"tiers":      tiers,
	})
}

// Score maneja POST /api/assessments/score. Solo calcula, no envia nada.
func (h *AssessmentHandler) Score(c *gin.Context) {
	var req struct {
		Scores   domain.AnswerSet `json:"scores"`
		Language string           `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid score request", zap.Error(err))
		lang := h.submission.Language("")
		c.JSON(http.StatusBadRequest, gin.H{"error": service.InvalidDataMessage(lang)})
		return
	}

	eval, lang, err := h.submission.Evaluate(req.Scores, req.Language)
	if err != nil {
		h.writeError(c, err, lang)
		return
	}
	c.JSON(http.StatusOK, h.evaluationBody(eval, lang))
}

// Submit maneja POST /api/assessments/submit.
func (h *AssessmentHandler) Submit(c *gin.Context) {
	var req struct {
		ContactInfo  *domain.ContactInfo `json:"contactInfo"`
		Scores       domain.AnswerSet    `json:"scores"`
		TotalScore   *float64            `json:"totalScore"`
		OverallLevel string              `json:"overallLevel"`
		Language     string              `json:"language"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid submit request", zap.Error(err))
		lang := h.submission.Language("")
		c.JSON(http.StatusBadRequest, gin.H{"error": service.InvalidDataMessage(lang)})
		return
	}

	input := service.SubmissionInput{
		Contact:      req.ContactInfo,
		Scores:       req.Scores,
		OverallLevel: req.OverallLevel,
		Language:     req.Language,
	}
	if req.TotalScore != nil {
		total := int(math.Round(*req.TotalScore))
		input.TotalScore = &total
	}

	res, err := h.submission.Submit(c.Request.Context(), input, clientKey(c))
	if err != nil {
		if errors.Is(err, service.ErrDeliveryFailed) {
			// Los resultados siguen siendo validos aunque el email no salio.
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":        service.GeneralErrorMessage(res.Language),
				"submissionId": res.ID,
				"totalScore":   res.Evaluation.RoundedTotal,
				"overallLevel": res.TierLabel,
			})
			return
		}
		h.writeError(c, err, res.Language)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":      true,
		"submissionId": res.ID,
		"totalScore":   res.Evaluation.RoundedTotal,
		"overallLevel": res.TierLabel,
	})
}

func (h *AssessmentHandler) writeError(c *gin.Context, err error, lang domain.Language) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		h.logger.Warn("assessment validation failed", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": vErr.Message})
	case errors.Is(err, service.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"error": service.RateLimitMessage(lang)})
	default:
		h.logger.Error("assessment request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": service.GeneralErrorMessage(lang)})
	}
}

func (h *AssessmentHandler) evaluationBody(eval domain.Evaluation, lang domain.Language) evaluationResponse {
	tierText, _ := h.catalog.Tier(eval.Tier, lang)
	body := evaluationResponse{
		CatalogVersion: eval.CatalogVersion,
		Language:       lang,
		TotalScore:     eval.RoundedTotal,
		ExactScore:     eval.TotalScore,
		Tier:           eval.Tier,
		OverallLevel:   tierText.Label,
		Description:    tierText.Description,
		Categories:     make([]categoryResultResponse, 0, len(eval.Categories)),
		Improvements:   make([]improvementResponse, 0, len(eval.Improvements)),
	}

	names := make(map[string]string)
	for _, cat := range h.catalog.Categories(lang) {
		names[cat.ID] = cat.Name
	}
	for _, r := range eval.Categories {
		body.Categories = append(body.Categories, categoryResultResponse{
			ID:            r.CategoryID,
			Name:          names[r.CategoryID],
			Weight:        r.Weight,
			Raw:           r.Raw,
			MaxPossible:   r.MaxPossible,
			Percentage:    r.Percentage,
			WeightedScore: r.WeightedScore,
			Average:       r.Average,
		})
	}
	for _, imp := range eval.Improvements {
		body.Improvements = append(body.Improvements, improvementResponse{
			CategoryID: imp.CategoryID,
			Name:       names[imp.CategoryID],
			Average:    imp.Average,
			Advice:     imp.Advice,
		})
	}
	return body
}

// clientKey identifica al cliente para el rate limit: primer valor de
// X-Forwarded-For, luego X-Real-IP y por ultimo la IP remota.
func clientKey(c *gin.Context) string {
	if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	if realIP := strings.TrimSpace(c.GetHeader("X-Real-IP")); realIP != "" {
		return realIP
	}
	if ip := c.ClientIP(); ip != "" {
		return ip
	}
	return "unknown"
}
