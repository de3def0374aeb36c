package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/minho-jung/kidlearn/internal/llm"
	"github.com/minho-jung/kidlearn/internal/logger"
	"github.com/minho-jung/kidlearn/internal/prompts"
	"github.com/minho-jung/kidlearn/internal/workflow"
)

type handlers struct {
	orch *workflow.Orchestrator
	log  *logger.Logger
}

func (h *handlers) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// POST /init_profile
func (h *handlers) initProfile(c *gin.Context) {
	var profile workflow.ChildProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.orch.InitProfile(c.Request.Context(), profile)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /submit_assessment
func (h *handlers) submitAssessment(c *gin.Context) {
	var sub workflow.AssessmentSubmission
	if err := c.ShouldBindJSON(&sub); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.orch.SubmitAssessment(c.Request.Context(), sub)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// POST /overall_feedback
func (h *handlers) overallFeedback(c *gin.Context) {
	var req workflow.OverallFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	resp, err := h.orch.OverallFeedback(c.Request.Context(), req)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// fail maps pipeline errors onto HTTP statuses: starved pipelines are the
// caller's fault (422), provider and template failures are upstream
// trouble (502), the rest is 500.
func (h *handlers) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError

	var terminal *workflow.ErrTerminalMissing
	var rateLimit *llm.ErrRateLimit
	var unavailable *llm.ErrProviderUnavailable
	var invalid *llm.ErrInvalidResponse
	var notFound *prompts.ErrTemplateNotFound
	var missing *prompts.ErrMissingVariable

	switch {
	case errors.As(err, &terminal):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &rateLimit), errors.As(err, &unavailable), errors.As(err, &invalid):
		status = http.StatusBadGateway
	case errors.As(err, &notFound), errors.As(err, &missing):
		status = http.StatusBadGateway
	}

	h.log.Error("request failed", "status", status, "error", err.Error())
	c.JSON(status, gin.H{"error": err.Error()})
}
