// Package server exposes the analysis engine over HTTP.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/llm"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/pipeline"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/worker"
)

// Server wires the HTTP API: analysis routes, the generation passthrough,
// and the relabel policy endpoint.
type Server struct {
	config       *model.Config
	analyzer     *pipeline.Analyzer
	provider     llm.Provider // nil when generation is disabled
	limiter      *worker.Limiter
	engine       *gin.Engine
	systemPrompt string
}

// New builds a server. provider may be nil; generation routes then return
// 503.
func New(cfg *model.Config, analyzer *pipeline.Analyzer, provider llm.Provider) *Server {
	if !cfg.Output.Verbose {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		config:       cfg,
		analyzer:     analyzer,
		provider:     provider,
		limiter:      worker.NewLimiter(cfg.Server.RequestsPerSecond, cfg.Server.Burst),
		systemPrompt: DefaultSystemPrompt,
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(s.limitBody)
	engine.Use(s.rateLimit)

	api := engine.Group("/api")
	{
		api.GET("/health", s.handleHealth)
		api.GET("/models", s.handleModels)
		api.GET("/axes", s.handleAxes)
		api.POST("/generate", s.handleGenerate)
		api.POST("/relabel", s.handleRelabel)
		api.POST("/diff", s.handleDiff)
		api.POST("/analyze-delta", s.handleDelta)
		api.POST("/transformation-map", s.handleTransformationMap)
	}

	s.engine = engine
	return s
}

// SetSystemPrompt replaces the default system prompt for generate requests
// that do not carry their own. The effective prompt is always hashed into
// the provenance chain, so swapping prompts changes chain IDs.
func (s *Server) SetSystemPrompt(prompt string) {
	if prompt != "" {
		s.systemPrompt = prompt
	}
}

// Handler returns the HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is canceled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:         s.config.Server.Addr,
		Handler:      s.engine,
		ReadTimeout:  s.config.Server.ReadTimeout,
		WriteTimeout: s.config.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.Server.WriteTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// limitBody caps request bodies so a pathological payload cannot exhaust
// memory before the token limit check runs.
func (s *Server) limitBody(c *gin.Context) {
	if s.config.Limits.MaxBodyBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, int64(s.config.Limits.MaxBodyBytes))
	}
	c.Next()
}

// rateLimit applies the per-client token bucket.
func (s *Server) rateLimit(c *gin.Context) {
	if !s.limiter.Allow(c.ClientIP()) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
		return
	}
	c.Next()
}
