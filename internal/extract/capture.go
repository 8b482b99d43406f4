package extract

import (
	"regexp"
	"strings"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/industry"
)

// Capture helpers pull single profile attributes out of conversational
// replies. Each returns "" when nothing recognisable is present.

var (
	nameIntroRe = regexp.MustCompile(`(?i)(?:^|\s)(?:me llamo|mi nombre es)\s+([\p{L}][\p{L}'-]*)`)
	soyRe       = regexp.MustCompile(`(?:^|\s)[Ss]oy\s+(\p{Lu}[\p{L}'-]*)`)

	businessNamedRe = regexp.MustCompile(`(?i)(?:^|\s)(?:se llama|llamad[oa]|se denomina)\s+(.+?)\s*(?:[.,;!?]|\s+y\s+|\s+en\s+|\s+que\s+|$)`)
	quotedNameRe    = regexp.MustCompile(`["“«]([^"”»]{2,60})["”»]`)

	locatedRe   = regexp.MustCompile(`(?i)(?:ubicad[oa]s?|situad[oa]s?|estamos|queda|quedamos)\s+en\s+(.+?)\s*(?:[.;!?]|\s+y\s+|$)`)
	placeRe     = regexp.MustCompile(`(?:^|\s)(?:en|desde)\s+(\p{Lu}\p{L}+(?:\s+(?:de\s+|del\s+|la\s+|las\s+)?\p{Lu}\p{L}+)*(?:,\s*\p{Lu}\p{L}+(?:\s+\p{Lu}\p{L}+)*)?)`)
	cityCountry = regexp.MustCompile(`^\p{Lu}[\p{L} ]+,\s*\p{Lu}[\p{L} ]+$`)

	audienceRe = regexp.MustCompile(`(?i)(?:^|\s)para\s+(?:los\s+|las\s+)?((?:jóvenes|jovenes|adultos|familias|empresas|niños|ninos|mujeres|hombres|turistas|estudiantes|profesionales|deportistas|mascotas|parejas)(?:\s+y\s+\p{L}+)?)`)

	socialURLRe    = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?(?:instagram|facebook|tiktok|twitter|x|linkedin|youtube)\.com/[^\s,;]+|https?://wa\.me/[^\s,;]+`)
	socialHandleRe = regexp.MustCompile(`(?:^|\s)(@[A-Za-z0-9_.]{2,30})`)
)

var networkNames = map[string]bool{
	"instagram": true, "facebook": true, "tiktok": true, "twitter": true,
	"whatsapp": true, "linkedin": true, "youtube": true, "google": true,
}

// Normalize folds typographic apostrophes so captured names compare equal.
func Normalize(s string) string {
	return strings.NewReplacer("’", "'", "‘", "'").Replace(strings.TrimSpace(s))
}

func CaptureUserName(s string) string {
	s = Normalize(s)
	if m := nameIntroRe.FindStringSubmatch(s); m != nil {
		return capitalize(m[1])
	}
	if m := soyRe.FindStringSubmatch(s); m != nil && !industry.IsKeyword(m[1]) {
		return m[1]
	}
	return ""
}

func CaptureBusinessName(s string) string {
	s = Normalize(s)
	if m := businessNamedRe.FindStringSubmatch(s); m != nil {
		return strings.Trim(m[1], `"“”«» `)
	}
	if m := quotedNameRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func CaptureLocation(s string) string {
	s = Normalize(s)
	if m := locatedRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	for _, m := range placeRe.FindAllStringSubmatch(s, -1) {
		if !networkNames[strings.ToLower(m[1])] {
			return m[1]
		}
	}
	if cityCountry.MatchString(s) {
		return s
	}
	return ""
}

func CaptureIndustry(s string) string {
	k, _ := industry.FindKeyword(s)
	return k
}

func CaptureAudience(s string) string {
	if m := audienceRe.FindStringSubmatch(s); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

func CaptureSocialLinks(s string) string {
	var links []string
	links = append(links, socialURLRe.FindAllString(s, -1)...)
	for _, m := range socialHandleRe.FindAllStringSubmatch(s, -1) {
		links = append(links, m[1])
	}
	return strings.Join(links, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	return strings.ToUpper(string(r[0])) + string(r[1:])
}
