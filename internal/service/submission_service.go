package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"founder-assessment/internal/catalog"
	"founder-assessment/internal/domain"
	"founder-assessment/internal/email"
	"founder-assessment/internal/metrics"
	"founder-assessment/internal/report"
	"founder-assessment/internal/repository"
	"founder-assessment/internal/scoring"
)

var (
	ErrRateLimited    = errors.New("rate limited")
	ErrDeliveryFailed = errors.New("report delivery failed")
	ErrNotConfigured  = errors.New("submission service not configured")
)

// SubmissionInput es el payload de envio de resultados.
// TotalScore y OverallLevel vienen del cliente y solo se comparan con el calculo propio.
type SubmissionInput struct {
	Contact      *domain.ContactInfo
	Scores       domain.AnswerSet
	TotalScore   *int
	OverallLevel string
	Language     string
}

type SubmissionResult struct {
	ID         string
	Language   domain.Language
	Evaluation domain.Evaluation
	TierLabel  string
	Report     report.Report
	Delivered  bool
}

// SubmissionOptions agrupa la configuracion del envio.
type SubmissionOptions struct {
	Inbox           string
	Report          report.Options
	DeliveryTimeout time.Duration
}

// SubmissionService valida, puntua, envia y registra reportes de assessment.
type SubmissionService struct {
	logger      *zap.Logger
	catalog     *catalog.Catalog
	validator   *ContactValidator
	limiter     RateLimiter
	sender      email.Sender
	submissions repository.SubmissionRepository
	metrics     *metrics.Recorder
	opts        SubmissionOptions
	now         Clock
	newID       func() string
}

func NewSubmissionService(
	logger *zap.Logger,
	cat *catalog.Catalog,
	sender email.Sender,
	limiter RateLimiter,
	submissions repository.SubmissionRepository,
	recorder *metrics.Recorder,
	opts SubmissionOptions,
) *SubmissionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if limiter == nil {
		limiter = NewMemoryRateLimiter(DefaultRateLimitWindow, DefaultRateLimitMax, nil)
	}
	if opts.DeliveryTimeout <= 0 {
		opts.DeliveryTimeout = 15 * time.Second
	}
	return &SubmissionService{
		logger:      logger,
		catalog:     cat,
		validator:   NewContactValidator(),
		limiter:     limiter,
		sender:      sender,
		submissions: submissions,
		metrics:     recorder,
		opts:        opts,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Language resuelve el idioma pedido con fallback al del catalogo.
func (s *SubmissionService) Language(raw string) domain.Language {
	if s == nil || s.catalog == nil {
		return domain.LanguageDutch
	}
	return s.catalog.ResolveLanguage(raw)
}

// Evaluate puntua un AnswerSet sin enviar nada.
func (s *SubmissionService) Evaluate(scores domain.AnswerSet, rawLang string) (domain.Evaluation, domain.Language, error) {
	if s == nil || s.catalog == nil {
		return domain.Evaluation{}, domain.LanguageDutch, ErrNotConfigured
	}
	lang := s.catalog.ResolveLanguage(rawLang)
	if err := ValidateScores(s.catalog.Categories(lang), s.catalog.Scale(), scores, lang); err != nil {
		return domain.Evaluation{}, lang, err
	}
	eval := scoring.EvaluateCatalog(s.catalog, lang, scores)
	s.metrics.Evaluation(eval.TotalScore, string(eval.Tier))
	return eval, lang, nil
}

// Submit procesa un envio. Si la entrega falla devuelve ErrDeliveryFailed junto con
// un resultado completo, para que el llamador pueda mostrar los puntajes igual.
func (s *SubmissionService) Submit(ctx context.Context, input SubmissionInput, clientKey string) (SubmissionResult, error) {
	if s == nil || s.catalog == nil || s.sender == nil {
		return SubmissionResult{}, ErrNotConfigured
	}
	lang := s.catalog.ResolveLanguage(input.Language)
	result := SubmissionResult{Language: lang}

	if !s.limiter.Allow(clientKey) {
		s.logger.Warn("rate limit exceeded", zap.String("client", clientKey))
		s.metrics.Submission(metrics.OutcomeRateLimited)
		return result, ErrRateLimited
	}

	if input.Contact == nil || input.Scores == nil {
		s.metrics.Submission(metrics.OutcomeInvalid)
		return result, newValidationError(ErrInvalidData, "", lang, msgInvalidData)
	}
	contact, err := s.validator.Validate(*input.Contact, lang)
	if err != nil {
		s.metrics.Submission(metrics.OutcomeInvalid)
		return result, err
	}

	eval, _, err := s.Evaluate(input.Scores, string(lang))
	if err != nil {
		s.metrics.Submission(metrics.OutcomeInvalid)
		return result, err
	}
	result.Evaluation = eval
	result.TierLabel = s.catalog.TierLabel(eval.Tier, lang)
	s.checkClientTotals(input, eval, result.TierLabel)

	rep := report.Build(s.catalog, lang, contact, eval, s.opts.Report)
	result.Report = rep
	result.ID = s.newID()

	deliverErr := s.deliver(ctx, rep, contact)
	result.Delivered = deliverErr == nil
	if deliverErr != nil {
		s.logger.Error("send assessment report failed",
			zap.Error(deliverErr),
			zap.String("submission_id", result.ID),
		)
		s.metrics.Submission(metrics.OutcomeDeliveryFailed)
	} else {
		s.logger.Info("assessment report sent",
			zap.String("submission_id", result.ID),
			zap.Int("total_score", eval.RoundedTotal),
			zap.String("tier", string(eval.Tier)),
		)
		s.metrics.Submission(metrics.OutcomeDelivered)
	}

	s.record(ctx, domain.Submission{
		ID:             result.ID,
		Contact:        contact,
		Language:       lang,
		Answers:        input.Scores.Clone(),
		TotalScore:     eval.RoundedTotal,
		Tier:           eval.Tier,
		CatalogVersion: eval.CatalogVersion,
		Delivered:      result.Delivered,
		ClientKey:      normalizeClientKey(clientKey),
		CreatedAt:      s.now().UTC(),
	})

	if deliverErr != nil {
		return result, fmt.Errorf("%w: %v", ErrDeliveryFailed, deliverErr)
	}
	return result, nil
}

func (s *SubmissionService) deliver(ctx context.Context, rep report.Report, contact domain.ContactInfo) error {
	html, err := rep.HTML()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.opts.DeliveryTimeout)
	defer cancel()

	return s.sender.SendReport(ctx, email.Message{
		To:      []string{s.opts.Inbox, contact.Email},
		Subject: rep.Subject(),
		HTML:    html,
		Text:    rep.Text(),
	})
}

// record guarda el envio; los errores se registran pero no afectan la respuesta.
func (s *SubmissionService) record(ctx context.Context, sub domain.Submission) {
	if s.submissions == nil {
		return
	}
	if err := s.submissions.Create(ctx, sub); err != nil {
		s.logger.Warn("store submission failed", zap.Error(err), zap.String("submission_id", sub.ID))
	}
}

func (s *SubmissionService) checkClientTotals(input SubmissionInput, eval domain.Evaluation, tierLabel string) {
	if input.TotalScore != nil && *input.TotalScore != eval.RoundedTotal {
		s.logger.Warn("client total score differs from computed score",
			zap.Int("client_total", *input.TotalScore),
			zap.Int("computed_total", eval.RoundedTotal),
		)
	}
	if input.OverallLevel != "" && input.OverallLevel != tierLabel && input.OverallLevel != string(eval.Tier) {
		s.logger.Warn("client overall level differs from computed tier",
			zap.String("client_level", input.OverallLevel),
			zap.String("computed_level", tierLabel),
		)
	}
}
