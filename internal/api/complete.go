package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/apierr"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/completion"
)

const retryMessage = "⚠️ El asistente no está disponible en este momento. Por favor, intentá de nuevo en unos segundos."

type completeRequest struct {
	Prompt    string `json:"prompt"`
	SessionID string `json:"sessionId"`
	System    string `json:"system"`
}

// Complete forwards a prompt to the completion service. Unavailability is
// a retryable 503 carrying a message the client can show as-is.
func (h *Handler) Complete(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		h.fail(c, apierr.BadRequest("Prompt inválido"))
		return
	}
	if h.completion == nil {
		h.unavailable(c, completion.ErrUnavailable)
		return
	}

	content, err := h.completion.Complete(c.Request.Context(), completion.Request{
		System:    req.System,
		Prompt:    req.Prompt,
		SessionID: req.SessionID,
	})
	if errors.Is(err, completion.ErrUnavailable) {
		h.unavailable(c, err)
		return
	}
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"content": content})
}

func (h *Handler) unavailable(c *gin.Context, err error) {
	h.log.Warn("completion unavailable", "error", err)
	c.JSON(http.StatusServiceUnavailable, gin.H{
		"success":   false,
		"error":     "service unavailable",
		"retryable": true,
		"content":   retryMessage,
	})
}
