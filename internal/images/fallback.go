package images

import (
	"fmt"
	"strings"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
)

var fallbackSeeds = []string{
	"business-professional",
	"modern-workspace",
	"team-meeting",
	"success-growth",
	"innovation-technology",
	"quality-service",
}

// fallbackImages builds n deterministic placeholders numbered from start.
func fallbackImages(query, industryHint string, start, n int) []models.ImageDescriptor {
	subject := industryHint
	if subject == "" {
		subject = "business"
	}
	category := industryHint
	if category == "" {
		category = "general"
	}
	label := strings.TrimSpace(query)
	if label == "" {
		label = "Business"
	}

	out := make([]models.ImageDescriptor, 0, n)
	for i := 0; i < n; i++ {
		idx := start + i
		seed := fallbackSeeds[idx%len(fallbackSeeds)]
		out = append(out, models.ImageDescriptor{
			ID:          fmt.Sprintf("fallback-%d-%s", idx, seed),
			URL:         fmt.Sprintf("https://picsum.photos/seed/%s-%d/1200/800", seed, idx),
			Thumbnail:   fmt.Sprintf("https://picsum.photos/seed/%s-%d/400/300", seed, idx),
			Title:       fmt.Sprintf("%s - Professional Image %d", label, idx+1),
			Description: fmt.Sprintf("High quality image for %s related to %s", subject, label),
			Source:      SourceFallback,
			Width:       1200,
			Height:      800,
			Category:    category,
		})
	}
	return out
}
