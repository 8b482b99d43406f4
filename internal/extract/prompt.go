package extract

import (
	"regexp"
	"strings"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/industry"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/models"
)

var capitalPhraseRe = regexp.MustCompile(`\p{Lu}[\p{L}'&]+(?:\s+(?:de\s+|del\s+|y\s+)?\p{Lu}[\p{L}'&]+)+`)

// ParsePrompt turns a one-shot free-text business description into a
// minimal BusinessProfile.
func ParsePrompt(text string) models.BusinessProfile {
	text = Normalize(text)
	inferred, matched := industry.Infer(text)

	var p models.BusinessProfile
	p.Location = CaptureLocation(text)
	p.BusinessName = CaptureBusinessName(text)
	if p.BusinessName == "" {
		for _, m := range capitalPhraseRe.FindAllString(stripLeadingWord(text), -1) {
			if p.Location == "" || !strings.Contains(p.Location, m) {
				p.BusinessName = m
				break
			}
		}
	}
	if p.BusinessName == "" && matched {
		p.BusinessName = inferred.BusinessType
	}
	p.Industry = CaptureIndustry(text)
	if p.Industry == "" && matched {
		p.Industry = inferred.BusinessType
	}
	if a := CaptureAudience(text); a != "" {
		p.TargetAudience = a
	}
	p.SocialLinks = CaptureSocialLinks(text)
	if matched {
		if p.TargetAudience == "" {
			p.TargetAudience = inferred.TargetAudience
		}
		p.WebGoal = inferred.MainGoal
		p.Differentiator = capitalize(inferred.USP)
		p.BrandStyle = inferred.Personality
		p.PrimaryCallToAction = capitalize(inferred.CallToAction)
	}
	return p
}

// stripLeadingWord skips the sentence-initial capital so "Quiero una web
// para Pan De Oro" does not start the phrase at "Quiero".
func stripLeadingWord(s string) string {
	if i := strings.IndexByte(s, ' '); i > 0 {
		return s[i:]
	}
	return ""
}
