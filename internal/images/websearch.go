package images

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
	"github.com/avast/retry-go/v4"
)

const (
	DefaultSerperBaseURL = "https://google.serper.dev"
	DefaultBraveBaseURL  = "https://api.search.brave.com"
)

// SearchResult is one organic web search hit.
type SearchResult struct {
	Title   string
	URL     string
	Snippet string
}

// WebSearcher runs a broad text search.
type WebSearcher interface {
	Discover(ctx context.Context, q string, k int) ([]SearchResult, error)
}

type SerperSearch struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func (s SerperSearch) Discover(ctx context.Context, q string, k int) ([]SearchResult, error) {
	payload, _ := json.Marshal(map[string]any{"q": q, "num": k})
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, orDefault(s.BaseURL, DefaultSerperBaseURL)+"/search", strings.NewReader(string(payload)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("X-API-KEY", s.APIKey)
	req.Header.Set("Content-Type", "application/json")

	var raw struct {
		Organic []struct {
			Title   string `json:"title"`
			Link    string `json:"link"`
			Snippet string `json:"snippet"`
		} `json:"organic"`
	}
	if err := doJSON(s.HTTPClient, req, &raw); err != nil {
		return nil, err
	}
	out := make([]SearchResult, 0, len(raw.Organic))
	for i, it := range raw.Organic {
		if i >= k {
			break
		}
		out = append(out, SearchResult{Title: it.Title, URL: it.Link, Snippet: it.Snippet})
	}
	return out, nil
}

type BraveSearch struct {
	APIKey     string
	BaseURL    string
	HTTPClient *http.Client
}

func (b BraveSearch) Discover(ctx context.Context, q string, k int) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("q", q)
	params.Set("count", strconv.Itoa(k))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, orDefault(b.BaseURL, DefaultBraveBaseURL)+"/res/v1/web/search?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Subscription-Token", b.APIKey)

	var raw struct {
		Web struct {
			Results []struct {
				Title       string `json:"title"`
				URL         string `json:"url"`
				Description string `json:"description"`
			} `json:"results"`
		} `json:"web"`
	}
	if err := doJSON(b.HTTPClient, req, &raw); err != nil {
		return nil, err
	}
	out := make([]SearchResult, 0, len(raw.Web.Results))
	for i, it := range raw.Web.Results {
		if i >= k {
			break
		}
		out = append(out, SearchResult{Title: it.Title, URL: it.URL, Snippet: it.Description})
	}
	return out, nil
}

func doJSON(c *http.Client, req *http.Request, v any) error {
	if c == nil {
		c = http.DefaultClient
	}
	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		err := fmt.Errorf("search returned status %d", resp.StatusCode)
		if resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests {
			return retry.Unrecoverable(err)
		}
		return err
	}
	return json.NewDecoder(resp.Body).Decode(v)
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// WebImageProvider adapts a WebSearcher into an image provider by keeping
// only hits that plausibly point at an image.
type WebImageProvider struct {
	name     string
	searcher WebSearcher
	attempts uint
	delay    time.Duration
}

func NewWebImageProvider(name string, searcher WebSearcher) *WebImageProvider {
	return &WebImageProvider{name: name, searcher: searcher, attempts: 2, delay: 200 * time.Millisecond}
}

func (w *WebImageProvider) Name() string { return w.name }

func (w *WebImageProvider) Search(ctx context.Context, query string, count int) ([]models.ImageDescriptor, error) {
	var results []SearchResult
	err := retry.Do(func() error {
		var err error
		results, err = w.searcher.Discover(ctx, query, count)
		return err
	}, retry.Context(ctx), retry.Attempts(w.attempts), retry.Delay(w.delay), retry.LastErrorOnly(true))
	if err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", w.name, err)
	}

	var out []models.ImageDescriptor
	for _, r := range results {
		if !looksLikeImage(r) {
			continue
		}
		u := imageURL(r)
		if u == "" {
			continue
		}
		out = append(out, models.ImageDescriptor{
			ID:          fmt.Sprintf("web-%08x", hashString(u)),
			URL:         u,
			Title:       resultTitle(r),
			Description: r.Snippet,
			Source:      hostOf(r.URL),
			Category:    query,
		})
	}
	return out, nil
}

var (
	imageExtRe   = regexp.MustCompile(`(?i)\.(?:jpe?g|png|gif|webp|avif)(?:$|\?)`)
	inlineURLRe  = regexp.MustCompile(`(?i)https?://[^\s"'<>]+\.(?:jpe?g|png|gif|webp|avif)(?:\?[^\s"'<>]*)?`)
	imageHostsRe = regexp.MustCompile(`(?i)pinterest|pin\.it|pinimg|unsplash|pexels|pixabay|gettyimages|shutterstock|istockphoto|flickr`)
	imageWordsRe = regexp.MustCompile(`(?i)\b(?:image|images|photo|photos|imagen|imágenes|foto|fotos|picture|pictures)\b`)
)

func looksLikeImage(r SearchResult) bool {
	if r.URL == "" {
		return false
	}
	return imageExtRe.MatchString(r.URL) || imageHostsRe.MatchString(r.URL) || imageWordsRe.MatchString(r.Snippet) || inlineURLRe.MatchString(r.Snippet)
}

// imageURL prefers a direct image link over the landing page of the hit.
func imageURL(r SearchResult) string {
	if imageExtRe.MatchString(r.URL) {
		return r.URL
	}
	if m := inlineURLRe.FindString(r.Snippet); m != "" {
		return m
	}
	return r.URL
}

func resultTitle(r SearchResult) string {
	if t := strings.TrimSpace(r.Title); t != "" {
		return t
	}
	words := strings.Fields(r.Snippet)
	if len(words) == 0 {
		return "Professional Image"
	}
	if len(words) > 8 {
		words = words[:8]
	}
	return strings.Join(words, " ")
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "Web"
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}

func hashString(s string) uint32 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return h.Sum32()
}
