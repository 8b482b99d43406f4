package images

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
)

const (
	DefaultUnsplashBaseURL = "https://api.unsplash.com"
	unsplashMaxPerPage     = 30
)

// UnsplashClient is the primary keyword-indexed photo provider.
type UnsplashClient struct {
	accessKey  string
	baseURL    string
	httpClient *http.Client
}

func NewUnsplashClient(accessKey, baseURL string, httpClient *http.Client) *UnsplashClient {
	if baseURL == "" {
		baseURL = DefaultUnsplashBaseURL
	}
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &UnsplashClient{accessKey: accessKey, baseURL: baseURL, httpClient: httpClient}
}

func (u *UnsplashClient) Name() string { return SourceUnsplash }

type unsplashSearchResponse struct {
	Results []struct {
		ID             string `json:"id"`
		Description    string `json:"description"`
		AltDescription string `json:"alt_description"`
		Width          int    `json:"width"`
		Height         int    `json:"height"`
		URLs           struct {
			Regular string `json:"regular"`
			Small   string `json:"small"`
		} `json:"urls"`
	} `json:"results"`
}

func (u *UnsplashClient) Search(ctx context.Context, query string, count int) ([]models.ImageDescriptor, error) {
	if count > unsplashMaxPerPage {
		count = unsplashMaxPerPage
	}
	params := url.Values{}
	params.Set("query", query)
	params.Set("per_page", strconv.Itoa(count))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.baseURL+"/search/photos?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build unsplash request: %w", err)
	}
	req.Header.Set("Authorization", "Client-ID "+u.accessKey)
	req.Header.Set("Accept-Version", "v1")

	resp, err := u.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call unsplash: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("unsplash returned status %d", resp.StatusCode)
	}

	var body unsplashSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode unsplash response: %w", err)
	}

	out := make([]models.ImageDescriptor, 0, len(body.Results))
	for i, r := range body.Results {
		if r.URLs.Regular == "" {
			continue
		}
		title := r.AltDescription
		if title == "" {
			title = fmt.Sprintf("%s professional image %d", query, i+1)
		}
		desc := r.Description
		if desc == "" {
			desc = fmt.Sprintf("High quality %s image from Unsplash", query)
		}
		out = append(out, models.ImageDescriptor{
			ID:          fmt.Sprintf("unsplash-%s-%d", r.ID, i),
			URL:         r.URLs.Regular,
			Thumbnail:   r.URLs.Small,
			Title:       title,
			Description: desc,
			Source:      SourceUnsplash,
			Width:       r.Width,
			Height:      r.Height,
			Category:    query,
		})
	}
	return out, nil
}
