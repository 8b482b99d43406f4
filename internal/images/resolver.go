// Package images resolves illustrative imagery through a tiered provider
// chain: a keyword photo API, a broader web search and finally synthetic
// placeholders.
package images

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/industry"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/logger"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/metrics"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
)

const (
	SourceUnsplash = "Unsplash"
	SourceHybrid   = "Hybrid"
	SourceFallback = "Fallback"

	DefaultCount          = 6
	MaxCount              = 30
	defaultSecondaryBatch = 10
)

// Provider returns up to count images for query.
type Provider interface {
	Name() string
	Search(ctx context.Context, query string, count int) ([]models.ImageDescriptor, error)
}

// Config selects and authenticates the providers.
type Config struct {
	UnsplashAccessKey string
	UnsplashBaseURL   string
	SearchProvider    string // serper or brave
	SearchAPIKey      string
	SearchBaseURL     string
	Timeout           time.Duration
	SecondaryBatch    int
}

type Result struct {
	Images []models.ImageDescriptor
	Source string
}

type Resolver struct {
	primary   Provider
	secondary Provider
	bust      CacheBuster
	batch     int
	log       *logger.Logger
}

type Option func(*Resolver)

func WithPrimary(p Provider) Option {
	return func(r *Resolver) { r.primary = p }
}

func WithSecondary(p Provider) Option {
	return func(r *Resolver) { r.secondary = p }
}

func WithCacheBuster(b CacheBuster) Option {
	return func(r *Resolver) { r.bust = b }
}

// NewResolver wires the providers named by cfg. Providers without
// credentials are skipped; options override the configured ones.
func NewResolver(cfg Config, log *logger.Logger, opts ...Option) *Resolver {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	httpClient := &http.Client{Timeout: timeout}

	r := &Resolver{
		bust:  TimestampBuster(nil),
		batch: cfg.SecondaryBatch,
		log:   logger.OrNop(log).With("component", "images"),
	}
	if r.batch <= 0 {
		r.batch = defaultSecondaryBatch
	}
	if cfg.UnsplashAccessKey != "" {
		r.primary = NewUnsplashClient(cfg.UnsplashAccessKey, cfg.UnsplashBaseURL, httpClient)
	}
	if cfg.SearchAPIKey != "" {
		switch strings.ToLower(cfg.SearchProvider) {
		case "brave":
			r.secondary = NewWebImageProvider("brave", BraveSearch{APIKey: cfg.SearchAPIKey, BaseURL: cfg.SearchBaseURL, HTTPClient: httpClient})
		default:
			r.secondary = NewWebImageProvider("serper", SerperSearch{APIKey: cfg.SearchAPIKey, BaseURL: cfg.SearchBaseURL, HTTPClient: httpClient})
		}
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns exactly min(count, MaxCount) images for keyword. Counts
// above MaxCount are reduced to MaxCount; a count below 1 yields none.
// Provider failures degrade to fewer provider hits and synthetic
// placeholders fill the remainder, so the result is never short.
func (r *Resolver) Resolve(ctx context.Context, keyword string, count int, industryHint string) Result {
	if count <= 0 {
		return Result{Source: SourceFallback}
	}
	if count > MaxCount {
		count = MaxCount
	}
	keyword = strings.TrimSpace(keyword)

	entry, matched := industry.Lookup(keyword)
	if !matched && industryHint != "" {
		entry, matched = industry.Lookup(industryHint)
	}
	term := keyword
	terms := industry.General().Terms
	if matched {
		term = entry.Terms[0]
		terms = entry.Terms
	}
	if term == "" {
		term = terms[0]
	}

	acc := newAccumulator(count)
	if r.primary != nil {
		acc.add(r.search(ctx, r.primary, term, count))
	}
	fromPrimary := acc.size()

	if !acc.full() && r.secondary != nil {
		for _, t := range terms {
			if acc.full() {
				break
			}
			acc.add(r.search(ctx, r.secondary, strings.TrimSpace(keyword+" "+t), r.batch))
		}
	}
	fromProviders := acc.size()

	if missing := count - fromProviders; missing > 0 {
		acc.add(fallbackImages(keyword, industryHint, fromProviders, missing))
		metrics.FallbackImages.Add(float64(missing))
		r.log.Debug("filled images with placeholders", "keyword", keyword, "missing", missing)
	}

	out := acc.items
	for i := range out {
		out[i].URL = r.bust(out[i].URL)
		if out[i].Thumbnail != "" {
			out[i].Thumbnail = r.bust(out[i].Thumbnail)
		}
	}

	source := SourceHybrid
	switch {
	case fromProviders == 0:
		source = SourceFallback
	case fromPrimary == count:
		source = SourceUnsplash
	}
	return Result{Images: out, Source: source}
}

// search calls p and absorbs every failure, including panics.
func (r *Resolver) search(ctx context.Context, p Provider, query string, n int) (imgs []models.ImageDescriptor) {
	if ctx.Err() != nil {
		return nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("image provider panicked", "provider", p.Name(), "query", query, "panic", rec)
			metrics.ImageProviderRequests.WithLabelValues(p.Name(), "error").Inc()
			imgs = nil
		}
	}()

	imgs, err := p.Search(ctx, query, n)
	if err != nil {
		r.log.Warn("image provider failed", "provider", p.Name(), "query", query, "error", err)
		metrics.ImageProviderRequests.WithLabelValues(p.Name(), "error").Inc()
		return nil
	}
	if len(imgs) == 0 {
		metrics.ImageProviderRequests.WithLabelValues(p.Name(), "empty").Inc()
		return nil
	}
	metrics.ImageProviderRequests.WithLabelValues(p.Name(), "ok").Inc()
	return imgs
}

// accumulator collects unique, non-empty images up to a limit.
type accumulator struct {
	limit int
	items []models.ImageDescriptor
	seen  map[string]bool
}

func newAccumulator(limit int) *accumulator {
	return &accumulator{limit: limit, seen: make(map[string]bool)}
}

func (a *accumulator) add(imgs []models.ImageDescriptor) {
	for _, img := range imgs {
		if a.full() {
			return
		}
		if img.URL == "" || a.seen[img.URL] {
			continue
		}
		a.seen[img.URL] = true
		a.items = append(a.items, img)
	}
}

func (a *accumulator) size() int  { return len(a.items) }
func (a *accumulator) full() bool { return len(a.items) >= a.limit }
