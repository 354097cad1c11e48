package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterOptions agrupa la configuracion transversal del router.
type RouterOptions struct {
	AllowOrigin    string
	MetricsHandler http.Handler
}

// NewRouter configura el router de Gin con middlewares y rutas del assessment.
func NewRouter(
	logger *zap.Logger,
	assessH *AssessmentHandler,
	opts RouterOptions,
) *gin.Engine {
	r := gin.New()

	// Middlewares basicos: logging, recovery, headers de seguridad y CORS.
	r.Use(zapLoggerMiddleware(logger), gin.Recovery(), securityHeadersMiddleware(opts.AllowOrigin))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	api.GET("/catalog", assessH.GetCatalog)

	assessments := api.Group("/assessments")
	assessments.POST("/score", assessH.Score)
	assessments.POST("/submit", assessH.Submit)

	if opts.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(opts.MetricsHandler))
	}

	return r
}

// zapLoggerMiddleware crea un middleware simple de logging con zap.
func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		latency := time.Since(start)
		logger.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", latency),
			zap.String("client_ip", clientKey(c)),
		)
	}
}

// securityHeadersMiddleware agrega headers de CORS y seguridad a toda respuesta
// y contesta los preflight OPTIONS sin cuerpo.
func securityHeadersMiddleware(allowOrigin string) gin.HandlerFunc {
	if allowOrigin == "" {
		allowOrigin = "*"
	}
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", allowOrigin)
		h.Set("Access-Control-Allow-Headers", "authorization, x-client-info, apikey, content-type")
		h.Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'self'; script-src 'none'; object-src 'none';")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusOK)
			return
		}
		c.Next()
	}
}
