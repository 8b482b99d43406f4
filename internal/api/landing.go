package api

import (
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/apierr"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/extract"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/pipeline"
)

type landingRequest struct {
	Text string `json:"text"`
}

func (h *Handler) landingInput(c *gin.Context) (pipeline.Input, bool) {
	var req landingRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		h.fail(c, apierr.BadRequest("Prompt inválido"))
		return pipeline.Input{}, false
	}
	return pipeline.Input{Profile: extract.ParsePrompt(req.Text)}, true
}

func pageBody(doc *page.Document) gin.H {
	return gin.H{"success": true, "blocks": page.Record(doc.Blocks), "page": doc}
}

// GenerateLanding builds a page from a free-text business description.
func (h *Handler) GenerateLanding(c *gin.Context) {
	in, ok := h.landingInput(c)
	if !ok {
		return
	}
	doc, err := h.generator.Generate(c.Request.Context(), in, nil)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pageBody(doc))
}

// StreamLanding is GenerateLanding with server-sent progress events,
// ending with a page or error event.
func (h *Handler) StreamLanding(c *gin.Context) {
	in, ok := h.landingInput(c)
	if !ok {
		return
	}
	h.stream(c, in)
}

type generated struct {
	doc *page.Document
	err error
}

func (h *Handler) stream(c *gin.Context, in pipeline.Input) {
	ctx := c.Request.Context()
	progress := make(chan pipeline.Progress)
	done := make(chan generated, 1)
	go func() {
		doc, err := h.generator.Generate(ctx, in, progress)
		done <- generated{doc, err}
	}()

	c.Header("Cache-Control", "no-cache")
	c.Header("X-Accel-Buffering", "no")
	c.Stream(func(io.Writer) bool {
		select {
		case p := <-progress:
			c.SSEvent("progress", p)
			return true
		case r := <-done:
			if r.err != nil {
				ae := classify(r.err)
				c.SSEvent("error", gin.H{"success": false, "status": ae.Status, "error": ae.Error()})
				return false
			}
			c.SSEvent("page", pageBody(r.doc))
			return false
		case <-ctx.Done():
			return false
		}
	})
}
