// Package extract recovers structured landing data from assistant-authored
// copy organised by numbered section markers.
package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/industry"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
)

// Lookahead windows, counted in non-blank lines after a marker.
const (
	heroTextWindow    = 4
	heroImageWindow   = 10
	singleLineWindow  = 3
	featureWindow     = 12
	testimonialWindow = 15

	minQualifyingRunes = 4
	defaultFeatureIcon = "⭐"
	defaultRole        = "Cliente"
	defaultRating      = 5
)

var imageURLRe = regexp.MustCompile(`(?i)https?://[^\s"'<>()\[\]]+?\.(?:jpe?g|png|gif|webp|avif|svg)(?:\?[^\s"'<>()\[\]]*)?`)

// Extract parses transcript into ExtractedLandingData. Missing sections
// leave their fields empty; identical input always yields identical output.
func Extract(transcript string) models.ExtractedLandingData {
	return parse(Tokenize(transcript), transcript)
}

type parser struct {
	toks []Token
	data models.ExtractedLandingData
}

func parse(toks []Token, transcript string) models.ExtractedLandingData {
	p := &parser{toks: toks}
	for i, t := range toks {
		if t.Kind != TokenMarker {
			continue
		}
		body := p.sectionBody(i)
		switch t.Section {
		case SectionHero:
			p.hero(body, transcript)
		case SectionIntro:
			p.data.Introduction = firstQualifying(body, singleLineWindow, "")
		case SectionFeatures:
			p.data.Features = features(body)
		case SectionPromo:
			p.data.PromoTitle = firstQualifying(body, singleLineWindow, "")
		case SectionTestimonials:
			p.data.Testimonials = testimonials(body)
		case SectionCTA:
			p.data.CTATitle = firstQualifying(body, singleLineWindow, "")
		}
	}
	return p.data
}

// sectionBody returns the tokens after the marker at i up to the next marker.
func (p *parser) sectionBody(i int) []Token {
	end := len(p.toks)
	for j := i + 1; j < len(p.toks); j++ {
		if p.toks[j].Kind == TokenMarker {
			end = j
			break
		}
	}
	return p.toks[i+1 : end]
}

func (p *parser) hero(body []Token, transcript string) {
	p.data.HeroTitle = firstQualifying(body, heroTextWindow, "")
	p.data.HeroSubtitle = ""
	if p.data.HeroTitle != "" {
		p.data.HeroSubtitle = firstQualifying(body, heroTextWindow, p.data.HeroTitle)
	}

	p.data.HeroImages = nil
	for i, t := range body {
		if i >= heroImageWindow {
			break
		}
		p.data.HeroImages = append(p.data.HeroImages, imageURLRe.FindAllString(t.Raw, -1)...)
	}
	p.data.ImageKeyword = ""
	if len(p.data.HeroImages) == 0 {
		if k, ok := industry.FindKeyword(transcript); ok {
			p.data.ImageKeyword = k
		}
	}
}

// firstQualifying returns the first line within window that still has
// enough text once image URLs are removed and that differs from skip.
func firstQualifying(body []Token, window int, skip string) string {
	for i, t := range body {
		if i >= window {
			break
		}
		text := strings.TrimSpace(imageURLRe.ReplaceAllString(t.Text, ""))
		text = strings.TrimSpace(strings.TrimRight(text, ":"))
		if utf8.RuneCountInString(text) < minQualifyingRunes {
			continue
		}
		if text == skip {
			continue
		}
		return text
	}
	return ""
}

func features(body []Token) []models.Feature {
	var out []models.Feature
	for i, t := range body {
		if i >= featureWindow || t.Kind != TokenBullet {
			break
		}
		title, desc := splitFeature(t.Text)
		if title == "" {
			continue
		}
		icon := t.Icon
		if icon == "" {
			icon = defaultFeatureIcon
		}
		out = append(out, models.Feature{Icon: icon, Title: title, Description: desc})
	}
	return out
}

func splitFeature(s string) (title, desc string) {
	if i := strings.IndexAny(s, "•|"); i >= 0 {
		_, size := utf8.DecodeRuneInString(s[i:])
		return strings.TrimSpace(s[:i]), strings.TrimSpace(s[i+size:])
	}
	return strings.TrimSpace(s), ""
}

func testimonials(body []Token) []models.Testimonial {
	var out []models.Testimonial
	for i := 0; i < len(body) && i < testimonialWindow; i++ {
		t := body[i]
		if t.Kind != TokenQuote || t.Text == "" {
			continue
		}
		author := t.Author
		if author == "" && i+1 < len(body) && hasAttribution(body[i+1]) {
			author = body[i+1].Author
			if author == "" {
				author = afterDelimiter(body[i+1].Raw)
			}
			i++
		}
		if author == "" {
			continue
		}
		name, role := splitAuthor(author)
		if name == "" {
			continue
		}
		out = append(out, models.Testimonial{Name: name, Role: role, Text: t.Text, Rating: defaultRating})
	}
	return out
}

func hasAttribution(t Token) bool {
	if t.Kind == TokenAttribution {
		return true
	}
	return t.Kind != TokenQuote && t.Kind != TokenMarker && strings.ContainsAny(t.Raw, "—–-")
}

func afterDelimiter(s string) string {
	i := strings.IndexAny(s, "—–-")
	if i < 0 {
		return ""
	}
	_, size := utf8.DecodeRuneInString(s[i:])
	return strings.TrimSpace(strings.TrimLeft(s[i+size:], "—–- "))
}

// splitAuthor separates "María, clienta frecuente" and strips rating stars.
func splitAuthor(s string) (name, role string) {
	s = strings.TrimSpace(strings.Trim(s, "⭐★*_ "))
	role = defaultRole
	if i := strings.IndexAny(s, ",("); i > 0 {
		if r := strings.TrimSpace(strings.Trim(s[i+1:], "() ")); r != "" {
			role = r
		}
		s = s[:i]
	}
	return strings.TrimSpace(s), role
}
