package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/delta"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/diff"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/hashing"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/indicator"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/model"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/pipeline"
	"github.com/pipe-works/pipeworks-axis-descriptor-lab/internal/policy"
)

// analyzeRequest is shared by the three text-analysis routes.
type analyzeRequest struct {
	BaselineText string                `json:"baseline_text" binding:"required"`
	CurrentText  string                `json:"current_text" binding:"required"`
	IncludeAll   bool                  `json:"include_all"`
	Indicators   model.IndicatorConfig `json:"indicators"`
}

type generateRequest struct {
	Payload      model.AxisPayload `json:"payload" binding:"required"`
	Model        string            `json:"model"`
	Temperature  float64           `json:"temperature"`
	MaxTokens    int               `json:"max_tokens"`
	SystemPrompt string            `json:"system_prompt"`
}

func (s *Server) handleHealth(c *gin.Context) {
	providerName := "disabled"
	available := false
	if s.provider != nil {
		providerName = s.provider.Name()
		available = s.provider.IsAvailable(c.Request.Context())
	}
	c.JSON(http.StatusOK, gin.H{
		"status":             "ok",
		"provider":           providerName,
		"provider_available": available,
	})
}

// handleModels lists backend models. Backend trouble degrades to an empty
// list so clients can still render.
func (s *Server) handleModels(c *gin.Context) {
	if s.provider == nil {
		c.JSON(http.StatusOK, []string{})
		return
	}
	names, err := s.provider.Models(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusOK, []string{})
		return
	}
	c.JSON(http.StatusOK, names)
}

func (s *Server) handleAxes(c *gin.Context) {
	c.JSON(http.StatusOK, policy.Axes())
}

func (s *Server) handleRelabel(c *gin.Context) {
	var payload model.AxisPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, policy.Apply(payload))
}

// handleGenerate forwards an axis payload to the generation backend and
// returns the text plus the full provenance hash chain.
func (s *Server) handleGenerate(c *gin.Context) {
	if s.provider == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "generation backend is disabled"})
		return
	}

	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	systemPrompt := req.SystemPrompt
	if systemPrompt == "" {
		systemPrompt = s.systemPrompt
	}
	temperature := req.Temperature
	if temperature == 0 {
		temperature = s.config.LLM.Temperature
	}
	maxTokens := req.MaxTokens
	if maxTokens == 0 {
		maxTokens = s.config.LLM.MaxTokens
	}
	modelName := req.Model
	if modelName == "" {
		modelName = s.config.LLM.Model
	}

	// The user turn is the payload itself, pretty-printed.
	userTurn, err := json.MarshalIndent(req.Payload, "", "  ")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := s.provider.Generate(c.Request.Context(), model.GenerateRequest{
		Prompt:       string(userTurn),
		SystemPrompt: systemPrompt,
		Model:        modelName,
		Temperature:  temperature,
		MaxTokens:    maxTokens,
		Seed:         req.Payload.Seed,
	})
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	inputHash, err := hashing.PayloadHash(req.Payload)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	promptHash := hashing.PromptHash(systemPrompt)

	resp.RunID = uuid.NewString()
	resp.InputHash = inputHash
	resp.SystemPromptHash = promptHash
	resp.OutputHash = hashing.OutputHash(resp.Text)
	resp.ChainID = hashing.ChainID(inputHash, promptHash, modelName, temperature, maxTokens, req.Payload.Seed)

	c.JSON(http.StatusOK, resp)
}

// handleDiff returns the raw word-level edit script.
func (s *Server) handleDiff(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	script, err := diff.AlignContext(c.Request.Context(),
		diff.Tokenize(req.BaselineText), diff.Tokenize(req.CurrentText),
		s.config.Limits.MaxTokensPerSide)
	if err != nil {
		s.analysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ops": script})
}

// handleDelta returns the content-word set difference, each side in
// first-occurrence order of its source text.
func (s *Server) handleDelta(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, delta.Compute(s.analyzer.Toolkit(), req.BaselineText, req.CurrentText))
}

// handleTransformationMap runs the full analysis and returns the labeled
// rows plus provenance.
func (s *Server) handleTransformationMap(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := s.analyzer.Analyze(c.Request.Context(), req.BaselineText, req.CurrentText, pipeline.Options{
		IncludeAll: req.IncludeAll,
		Indicators: req.Indicators,
	})
	if err != nil {
		s.analysisError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"rows":       report.LabeledRows,
		"delta":      report.Delta,
		"provenance": report.Provenance,
	})
}

func (s *Server) analysisError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, indicator.ErrInvalidConfig):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, diff.ErrInputTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": err.Error()})
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	}
}
