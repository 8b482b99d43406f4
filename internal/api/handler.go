package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/apierr"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/completion"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/history"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/logger"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/pipeline"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/session"
)

// Generator is satisfied by *pipeline.Generator.
type Generator interface {
	Generate(ctx context.Context, in pipeline.Input, progress chan<- pipeline.Progress) (*page.Document, error)
}

type Deps struct {
	Images     pipeline.ImageResolver
	Generator  Generator
	Completion completion.Client // nil disables /api/ai/complete
	Sessions   *session.Manager
	Designs    history.Store
	Log        *logger.Logger
}

type Handler struct {
	images     pipeline.ImageResolver
	generator  Generator
	completion completion.Client
	sessions   *session.Manager
	designs    history.Store
	log        *logger.Logger
}

func NewHandler(d Deps) *Handler {
	return &Handler{
		images:     d.Images,
		generator:  d.Generator,
		completion: d.Completion,
		sessions:   d.Sessions,
		designs:    d.Designs,
		log:        logger.OrNop(d.Log).With("component", "api"),
	}
}

// Register mounts every /api route on r.
func (h *Handler) Register(r gin.IRouter) {
	api := r.Group("/api")

	api.POST("/images/search", h.SearchImages)
	api.GET("/images/search", h.SearchImages)

	api.POST("/landing/generate", h.GenerateLanding)
	api.POST("/landing/generate/stream", h.StreamLanding)

	api.POST("/ai/complete", h.Complete)

	api.POST("/intake/sessions", h.StartSession)
	api.GET("/intake/sessions/:id", h.GetSession)
	api.POST("/intake/sessions/:id/messages", h.SendMessage)
	api.POST("/intake/sessions/:id/generate", h.GenerateFromSession)

	api.POST("/designs", h.SaveDesign)
	api.GET("/designs", h.ListDesigns)
	api.GET("/designs/:id", h.LoadDesign)
	api.DELETE("/designs/:id", h.DeleteDesign)
	api.POST("/designs/:id/duplicate", h.DuplicateDesign)
}

// classify maps domain errors onto their HTTP form.
func classify(err error) *apierr.Error {
	var ae *apierr.Error
	switch {
	case errors.As(err, &ae):
		return ae
	case errors.Is(err, history.ErrNotFound), errors.Is(err, session.ErrNotFound):
		return apierr.NotFound(err)
	case errors.Is(err, page.ErrInvalidBlock):
		return apierr.New(http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, pipeline.ErrTimeout):
		return apierr.Timeout(err)
	case errors.Is(err, completion.ErrUnavailable):
		return apierr.Unavailable(err)
	}
	return apierr.Internal(err)
}

func (h *Handler) fail(c *gin.Context, err error) {
	ae := classify(err)
	if ae.Status >= 500 {
		h.log.Error("request failed", "path", c.FullPath(), "code", ae.Code, "error", err)
	}
	msg := ae.Error()
	if ae.Status == http.StatusInternalServerError {
		msg = "Error interno del servidor"
	}
	c.JSON(ae.Status, gin.H{"success": false, "error": msg})
}
