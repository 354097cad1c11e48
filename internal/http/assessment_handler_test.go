package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"founder-assessment/internal/catalog"
	"founder-assessment/internal/email"
	"founder-assessment/internal/metrics"
	"founder-assessment/internal/service"
)

type mockReportSender struct {
	calls int
	last  email.Message
	err   error
}

func (m *mockReportSender) SendReport(_ context.Context, msg email.Message) error {
	m.calls++
	m.last = msg
	return m.err
}

type mockLimiter struct {
	allow bool
	keys  []string
}

func (m *mockLimiter) Allow(key string) bool {
	m.keys = append(m.keys, key)
	return m.allow
}

func setupAssessmentRouter(sender email.Sender, limiter service.RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cat := catalog.MustDefault()
	reg := prometheus.NewRegistry()
	svc := service.NewSubmissionService(zap.NewNop(), cat, sender, limiter, nil, metrics.NewRecorder(reg), service.SubmissionOptions{
		Inbox: "info@example.com",
	})
	h := NewAssessmentHandler(zap.NewNop(), cat, svc)
	return NewRouter(zap.NewNop(), h, RouterOptions{
		MetricsHandler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
	})
}

func performRequest(r http.Handler, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	var payload []byte
	switch b := body.(type) {
	case nil:
	case string:
		payload = []byte(b)
	default:
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v (%s)", err, rec.Body.String())
	}
	return body
}

func submitPayload() map[string]any {
	return map[string]any{
		"contactInfo": map[string]string{
			"firstName":   "Anna",
			"lastName":    "de Vries",
			"companyName": "Acme BV",
			"email":       "anna@acme.nl",
		},
		"scores": map[string][]int{
			"strategic":   {4, 4, 4, 4},
			"operational": {4, 4, 4, 4},
			"customer":    {4, 4, 4, 4},
			"financial":   {4, 4, 4, 4},
			"leadership":  {4, 4, 4, 4},
			"external":    {4, 4, 4, 4},
		},
		"totalScore":   100,
		"overallLevel": "Excellent",
		"language":     "en",
	}
}

func TestAssessmentHandlerSubmit_Success(t *testing.T) {
	sender := &mockReportSender{}
	limiter := &mockLimiter{allow: true}
	r := setupAssessmentRouter(sender, limiter)

	rec := performRequest(r, http.MethodPost, "/api/assessments/submit", submitPayload(),
		"X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["success"] != true || body["totalScore"] != float64(100) || body["overallLevel"] != "Excellent" {
		t.Fatalf("unexpected body %v", body)
	}
	if id, _ := body["submissionId"].(string); id == "" {
		t.Fatalf("expected submission id")
	}
	if sender.calls != 1 {
		t.Fatalf("expected report to be sent once, got %d", sender.calls)
	}
	if len(limiter.keys) != 1 || limiter.keys[0] != "203.0.113.9" {
		t.Fatalf("expected first forwarded address as client key, got %v", limiter.keys)
	}
}

func TestAssessmentHandlerSubmit_RealIPFallback(t *testing.T) {
	limiter := &mockLimiter{allow: true}
	r := setupAssessmentRouter(&mockReportSender{}, limiter)

	performRequest(r, http.MethodPost, "/api/assessments/submit", submitPayload(), "X-Real-IP", "198.51.100.7")
	if len(limiter.keys) != 1 || limiter.keys[0] != "198.51.100.7" {
		t.Fatalf("expected X-Real-IP as client key, got %v", limiter.keys)
	}
}

func TestAssessmentHandlerSubmit_ValidationError(t *testing.T) {
	sender := &mockReportSender{}
	r := setupAssessmentRouter(sender, &mockLimiter{allow: true})

	payload := submitPayload()
	payload["contactInfo"].(map[string]string)["email"] = "not-an-email"
	rec := performRequest(r, http.MethodPost, "/api/assessments/submit", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Invalid email address" {
		t.Fatalf("unexpected error %v", body["error"])
	}
	if sender.calls != 0 {
		t.Fatalf("expected no email on validation error")
	}
}

func TestAssessmentHandlerSubmit_MissingContact(t *testing.T) {
	r := setupAssessmentRouter(&mockReportSender{}, &mockLimiter{allow: true})

	payload := submitPayload()
	delete(payload, "contactInfo")
	payload["language"] = "nl"
	rec := performRequest(r, http.MethodPost, "/api/assessments/submit", payload)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Ongeldige gegevens ontvangen" {
		t.Fatalf("unexpected error %v", body["error"])
	}
}

func TestAssessmentHandlerSubmit_MalformedJSON(t *testing.T) {
	r := setupAssessmentRouter(&mockReportSender{}, &mockLimiter{allow: true})

	rec := performRequest(r, http.MethodPost, "/api/assessments/submit", "{not json")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestAssessmentHandlerSubmit_RateLimited(t *testing.T) {
	sender := &mockReportSender{}
	r := setupAssessmentRouter(sender, &mockLimiter{allow: false})

	rec := performRequest(r, http.MethodPost, "/api/assessments/submit", submitPayload())
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
	if body := decodeBody(t, rec); body["error"] != "Too many requests. Please try again later." {
		t.Fatalf("unexpected error %v", body["error"])
	}
	if sender.calls != 0 {
		t.Fatalf("expected no email when rate limited")
	}
}

func TestAssessmentHandlerSubmit_SixthRequestLimited(t *testing.T) {
	limiter := service.NewMemoryRateLimiter(service.DefaultRateLimitWindow, service.DefaultRateLimitMax, nil)
	r := setupAssessmentRouter(&mockReportSender{}, limiter)

	for i := 0; i < 5; i++ {
		rec := performRequest(r, http.MethodPost, "/api/assessments/submit", submitPayload(), "X-Forwarded-For", "192.0.2.1")
		if rec.Code != http.StatusOK {
			t.Fatalf("request %d: expected status 200, got %d", i+1, rec.Code)
		}
	}
	rec := performRequest(r, http.MethodPost, "/api/assessments/submit", submitPayload(), "X-Forwarded-For", "192.0.2.1")
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", rec.Code)
	}
	rec = performRequest(r, http.MethodPost, "/api/assessments/submit", submitPayload(), "X-Forwarded-For", "192.0.2.2")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected other clients unaffected, got %d", rec.Code)
	}
}

func TestAssessmentHandlerSubmit_DeliveryFailure(t *testing.T) {
	sender := &mockReportSender{err: errors.New("smtp down")}
	r := setupAssessmentRouter(sender, &mockLimiter{allow: true})

	rec := performRequest(r, http.MethodPost, "/api/assessments/submit", submitPayload())
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected status 500, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["error"] != "An error occurred while sending the email" {
		t.Fatalf("unexpected error %v", body["error"])
	}
	if body["totalScore"] != float64(100) {
		t.Fatalf("expected results alongside delivery failure, got %v", body)
	}
	if strings.Contains(rec.Body.String(), "smtp down") {
		t.Fatalf("internal errors must not leak to clients")
	}
}

func TestAssessmentHandlerScore(t *testing.T) {
	sender := &mockReportSender{}
	r := setupAssessmentRouter(sender, &mockLimiter{allow: true})

	rec := performRequest(r, http.MethodPost, "/api/assessments/score", map[string]any{
		"scores":   map[string][]int{"strategic": {4, 4, 4, 4}},
		"language": "nl",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	var body evaluationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.TotalScore != 25 || body.OverallLevel != "Zwak" || len(body.Categories) != 6 {
		t.Fatalf("unexpected evaluation %+v", body)
	}
	if len(body.Improvements) != 3 || body.Improvements[0].CategoryID != "operational" {
		t.Fatalf("unexpected improvements %+v", body.Improvements)
	}
	if sender.calls != 0 {
		t.Fatalf("score endpoint must not send email")
	}

	rec = performRequest(r, http.MethodPost, "/api/assessments/score", map[string]any{
		"scores": map[string][]int{"strategic": {9}},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", rec.Code)
	}
}

func TestAssessmentHandlerGetCatalog(t *testing.T) {
	r := setupAssessmentRouter(&mockReportSender{}, nil)

	rec := performRequest(r, http.MethodGet, "/api/catalog?lang=en", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if body["language"] != "en" {
		t.Fatalf("expected english catalog, got %v", body["language"])
	}
	cats, _ := body["categories"].([]any)
	if len(cats) != 6 {
		t.Fatalf("expected 6 categories, got %d", len(cats))
	}
}

func TestRouterSecurityHeadersAndPreflight(t *testing.T) {
	r := setupAssessmentRouter(&mockReportSender{}, nil)

	rec := performRequest(r, http.MethodOptions, "/api/assessments/submit", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected CORS header on preflight")
	}

	rec = performRequest(r, http.MethodGet, "/healthz", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"X-XSS-Protection":       "1; mode=block",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
	} {
		if got := rec.Header().Get(header); got != want {
			t.Fatalf("expected %s=%q, got %q", header, want, got)
		}
	}
}

func TestRouterMetricsEndpoint(t *testing.T) {
	r := setupAssessmentRouter(&mockReportSender{}, &mockLimiter{allow: true})
	performRequest(r, http.MethodPost, "/api/assessments/submit", submitPayload())

	rec := performRequest(r, http.MethodGet, "/metrics", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "assessment_submissions_total") {
		t.Fatalf("expected submission counter in exposition")
	}
}
