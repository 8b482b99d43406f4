package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/apierr"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/pipeline"
)

type messageRequest struct {
	Text string `json:"text"`
}

func (h *Handler) StartSession(c *gin.Context) {
	s, reply, err := h.sessions.Start(c.Request.Context(), "")
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "session": s, "reply": reply})
}

func (h *Handler) GetSession(c *gin.Context) {
	s, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": s})
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		h.fail(c, apierr.BadRequest("El mensaje no puede estar vacío"))
		return
	}
	s, reply, err := h.sessions.Send(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": s, "reply": reply})
}

// GenerateFromSession builds a page from whatever the conversation has
// captured so far. With ?stream=true progress is sent as SSE.
func (h *Handler) GenerateFromSession(c *gin.Context) {
	s, err := h.sessions.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	in := pipeline.Input{Profile: s.Profile}
	if c.Query("stream") == "true" {
		h.stream(c, in)
		return
	}
	doc, err := h.generator.Generate(c.Request.Context(), in, nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pageBody(doc))
}
