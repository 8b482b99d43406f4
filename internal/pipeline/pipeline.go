// Package pipeline runs a full page generation: optional copywriting,
// extraction, concurrent image resolution and block synthesis, under a
// safety timeout.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/completion"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/extract"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/images"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/logger"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/metrics"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/synth"
)

// ErrTimeout is returned when a generation exceeds its wall-clock budget.
var ErrTimeout = errors.New("generation timed out")

const (
	DefaultTimeout     = 120 * time.Second
	defaultConcurrency = 3
)

type ImageResolver interface {
	Resolve(ctx context.Context, keyword string, count int, industryHint string) images.Result
}

type Input struct {
	Profile    models.BusinessProfile
	Transcript string
}

type Generator struct {
	resolver    ImageResolver
	synth       *synth.Synthesizer
	writer      completion.Client
	timeout     time.Duration
	slots       int
	concurrency int
	now         func() time.Time
	log         *logger.Logger
}

type Option func(*Generator)

// WithCopywriter lets the generator ask c for landing copy when the input
// carries no transcript.
func WithCopywriter(c completion.Client) Option {
	return func(g *Generator) {
		g.writer = c
	}
}

func WithTimeout(d time.Duration) Option {
	return func(g *Generator) {
		if d > 0 {
			g.timeout = d
		}
	}
}

func WithImageSlots(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.slots = n
		}
	}
}

func WithConcurrency(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.concurrency = n
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func New(resolver ImageResolver, s *synth.Synthesizer, log *logger.Logger, opts ...Option) *Generator {
	g := &Generator{
		resolver:    resolver,
		synth:       s,
		timeout:     DefaultTimeout,
		slots:       synth.ImageSlots,
		concurrency: defaultConcurrency,
		now:         time.Now,
		log:         logger.OrNop(log),
	}
	if g.synth == nil {
		g.synth = synth.New()
	}
	for _, o := range opts {
		o(g)
	}
	return g
}

type result struct {
	doc *page.Document
	err error
}

// Generate builds a page for in. Progress steps are sent on progress when
// it is non-nil; the channel is never written after Generate returns.
// Exceeding the timeout yields ErrTimeout and discards any partial work.
func (g *Generator) Generate(ctx context.Context, in Input, progress chan<- Progress) (*page.Document, error) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	em := &emitter{ch: progress}
	defer em.close()
	defer cancel()

	done := make(chan result, 1)
	go func() {
		doc, err := g.run(ctx, in, em)
		done <- result{doc, err}
	}()

	var r result
	select {
	case r = <-done:
	case <-ctx.Done():
		r = result{err: ctx.Err()}
	}
	if r.err != nil && errors.Is(r.err, context.DeadlineExceeded) {
		r = result{err: fmt.Errorf("%w after %s", ErrTimeout, g.timeout)}
	}

	outcome := "ok"
	switch {
	case errors.Is(r.err, ErrTimeout):
		outcome = "timeout"
	case r.err != nil:
		outcome = "error"
	}
	metrics.GenerationDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())
	if r.err != nil {
		g.log.Warn("generation failed", "outcome", outcome, "error", r.err)
		return nil, r.err
	}
	return r.doc, nil
}

func (g *Generator) run(ctx context.Context, in Input, em *emitter) (*page.Document, error) {
	em.emit(ctx, StepAnalyzing)
	transcript := in.Transcript
	if transcript == "" && g.writer != nil {
		transcript = g.writeCopy(ctx, in.Profile)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	em.emit(ctx, StepExtracting)
	extracted := extract.Extract(transcript)

	em.emit(ctx, StepImages)
	imgs, err := g.resolveImages(ctx, in.Profile, extracted)
	if err != nil {
		return nil, err
	}

	em.emit(ctx, StepDesigning)
	blocks := g.synth.Synthesize(in.Profile, extracted, imgs)

	em.emit(ctx, StepBuilding)
	doc := &page.Document{
		Title:       firstNonEmpty(in.Profile.BusinessName, "Mi Empresa"),
		Blocks:      blocks,
		GeneratedAt: g.now().UTC(),
	}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("failed to build page: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	em.emit(ctx, StepFinalizing)
	return doc, nil
}

type imageGroup struct {
	keyword string
	count   int
}

// imageGroups splits the page's image slots into independent searches.
func (g *Generator) imageGroups(p models.BusinessProfile, x models.ExtractedLandingData) []imageGroup {
	keyword := firstNonEmpty(x.ImageKeyword, p.Industry, p.BusinessName, "negocio")
	hero := (g.slots + 2) / 3
	products := (g.slots - hero + 1) / 2
	contact := g.slots - hero - products
	groups := []imageGroup{
		{keyword, hero},
		{keyword + " productos", products},
		{keyword + " clientes", contact},
	}
	out := groups[:0]
	for _, gr := range groups {
		if gr.count > 0 {
			out = append(out, gr)
		}
	}
	return out
}

func (g *Generator) resolveImages(ctx context.Context, p models.BusinessProfile, x models.ExtractedLandingData) ([]models.ImageDescriptor, error) {
	if g.resolver == nil {
		return nil, nil
	}
	groups := g.imageGroups(p, x)
	results := make([][]models.ImageDescriptor, len(groups))

	eg, egctx := errgroup.WithContext(ctx)
	eg.SetLimit(g.concurrency)
	for i, gr := range groups {
		eg.Go(func() error {
			if err := egctx.Err(); err != nil {
				return err
			}
			results[i] = g.resolver.Resolve(egctx, gr.keyword, gr.count, p.Industry).Images
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var out []models.ImageDescriptor
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
