package extract

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/industry"
)

// Section identifies one of the numbered landing copy sections.
type Section int

const (
	SectionNone Section = iota
	SectionHero
	SectionIntro
	SectionFeatures
	SectionPromo
	SectionTestimonials
	SectionCTA
)

func (s Section) String() string {
	switch s {
	case SectionHero:
		return "hero"
	case SectionIntro:
		return "introduction"
	case SectionFeatures:
		return "features"
	case SectionPromo:
		return "promotion"
	case SectionTestimonials:
		return "testimonials"
	case SectionCTA:
		return "cta"
	}
	return "none"
}

type Kind int

const (
	TokenText Kind = iota
	TokenMarker
	TokenBullet
	TokenQuote
	TokenAttribution
)

// Token is one non-blank transcript line, classified.
type Token struct {
	Kind    Kind
	Line    int
	Raw     string
	Text    string
	Section Section // TokenMarker
	Icon    string  // TokenBullet
	Author  string  // TokenQuote with inline attribution, TokenAttribution
}

// Keyword synonyms, matched as whole word sequences on folded text.
var sectionSynonyms = []struct {
	section Section
	phrases []string
}{
	{SectionHero, []string{"hero", "portada", "encabezado", "titulo principal", "banner principal"}},
	{SectionIntro, []string{"introduccion", "introduction", "sobre nosotros", "quienes somos", "about us"}},
	{SectionFeatures, []string{"caracteristicas", "features", "beneficios", "benefits"}},
	{SectionPromo, []string{"promocional", "promocion", "promotion"}},
	{SectionTestimonials, []string{"testimonios", "testimonials", "testimonio", "resenas", "opiniones", "reviews"}},
	{SectionCTA, []string{"cta", "cta final", "llamado a la accion", "call to action", "cierre"}},
}

// A styled heading may carry a few words beyond its keyword
// ("## Hero Principal"). A bare line must be the keyword alone.
const maxHeadingExtraWords = 3

var (
	keycapRe      = regexp.MustCompile(`([1-6])\x{FE0F}?\x{20E3}`)
	sectionNumRe  = regexp.MustCompile(`(?i)^(?:secci[oó]n|section|bloque)\s+([1-6])\b`)
	numeralDotRe  = regexp.MustCompile(`^(\d{1,2})[.)]\s+(.+)$`)
	attributionRe = regexp.MustCompile(`^\s*[—–-]+\s*(.+)$`)
	labelRe       = regexp.MustCompile(`(?i)^(?:t[ií]tulo|subt[ií]tulo|title|subtitle|texto)\s*:\s*`)
)

const quoteOpen = `"“«'`

// Tokenize splits text into classified tokens, dropping blank lines.
func Tokenize(text string) []Token {
	var out []Token
	for i, raw := range strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		out = append(out, classify(i, line))
	}
	return out
}

func classify(n int, line string) Token {
	tok := Token{Kind: TokenText, Line: n, Raw: line, Text: clean(line)}

	if s := markerSection(line); s != SectionNone {
		tok.Kind = TokenMarker
		tok.Section = s
		return tok
	}

	body := strings.TrimLeftFunc(line, isDecoration)
	if body != "" && strings.ContainsRune(quoteOpen, []rune(body)[0]) {
		if text, rest, ok := splitQuote(body); ok {
			tok.Kind = TokenQuote
			tok.Text = text
			if m := attributionRe.FindStringSubmatch(strings.TrimLeft(rest, "* ")); m != nil {
				tok.Author = strings.TrimSpace(m[1])
			}
			return tok
		}
	}

	if m := attributionRe.FindStringSubmatch(line); m != nil {
		tok.Kind = TokenAttribution
		tok.Author = strings.TrimSpace(m[1])
		return tok
	}

	if icon, rest, ok := leadingEmoji(line); ok {
		tok.Kind = TokenBullet
		tok.Icon = icon
		tok.Text = clean(rest)
		return tok
	}
	if m := numeralDotRe.FindStringSubmatch(line); m != nil {
		tok.Kind = TokenBullet
		tok.Text = clean(m[2])
		return tok
	}
	return tok
}

func markerSection(line string) Section {
	if m := keycapRe.FindStringSubmatch(line); m != nil {
		return Section(m[1][0] - '0')
	}
	stripped := clean(line)
	if m := sectionNumRe.FindStringSubmatch(stripped); m != nil {
		return Section(m[1][0] - '0')
	}
	if strings.ContainsAny(stripped, "•|") {
		return SectionNone
	}
	// Pictograph-led lines are bullets even when they open with a keyword.
	if r, _ := utf8.DecodeRuneInString(line); isPictograph(r) {
		return SectionNone
	}
	words := headingWords(stripped)
	extra := 0
	if looksLikeHeading(line) {
		extra = maxHeadingExtraWords
	}
	for _, syn := range sectionSynonyms {
		for _, p := range syn.phrases {
			phrase := strings.Fields(p)
			if len(words) <= len(phrase)+extra && hasPrefix(words, phrase) {
				return syn.section
			}
		}
	}
	return SectionNone
}

// looksLikeHeading reports whether line carries heading markup: a leading
// "#", bold emphasis, a trailing colon, or all caps.
func looksLikeHeading(line string) bool {
	body := strings.TrimLeft(line, "> ")
	if strings.HasPrefix(body, "#") || strings.HasPrefix(body, "**") || strings.HasPrefix(body, "__") {
		return true
	}
	if strings.HasSuffix(strings.TrimRight(body, "*_ "), ":") {
		return true
	}
	letters := false
	for _, r := range body {
		if unicode.IsLower(r) {
			return false
		}
		if unicode.IsLetter(r) {
			letters = true
		}
	}
	return letters
}

// headingWords drops leading numbering ("3.", "Sección") from a line.
func headingWords(s string) []string {
	words := industry.Words(s)
	for len(words) > 0 {
		w := words[0]
		if w == "seccion" || w == "section" || w == "bloque" || strings.Trim(w, "0123456789") == "" {
			words = words[1:]
			continue
		}
		break
	}
	return words
}

func hasPrefix(words, phrase []string) bool {
	if len(phrase) == 0 || len(phrase) > len(words) {
		return false
	}
	for i, p := range phrase {
		if words[i] != p {
			return false
		}
	}
	return true
}

// splitQuote returns the quoted text and whatever follows the closing quote.
func splitQuote(s string) (text, rest string, ok bool) {
	r, size := utf8.DecodeRuneInString(s)
	closing := map[rune]rune{'"': '"', '“': '”', '«': '»', '\'': '\''}[r]
	inner := s[size:]
	end := strings.LastIndexFunc(inner, func(c rune) bool {
		return c == closing || (r == '“' && c == '"') || (r == '"' && c == '”')
	})
	if end <= 0 {
		return "", "", false
	}
	_, csize := utf8.DecodeRuneInString(inner[end:])
	return strings.TrimSpace(inner[:end]), inner[end+csize:], true
}

// leadingEmoji splits a pictographic glyph (with its variation selectors,
// skin tone modifiers and joined glyphs) off the start of line.
func leadingEmoji(line string) (icon, rest string, ok bool) {
	r, size := utf8.DecodeRuneInString(line)
	if !isPictograph(r) {
		return "", "", false
	}
	i := size
loop:
	for i < len(line) {
		c, n := utf8.DecodeRuneInString(line[i:])
		switch {
		case c == 0xFE0F || (c >= 0x1F3FB && c <= 0x1F3FF):
			i += n
		case c == 0x200D:
			next, m := utf8.DecodeRuneInString(line[i+n:])
			if !isPictograph(next) {
				break loop
			}
			i += n + m
		default:
			break loop
		}
	}
	return line[:i], strings.TrimSpace(line[i:]), true
}

func isPictograph(r rune) bool {
	switch {
	case r >= 0x1F300 && r <= 0x1FAFF:
		return true
	case r >= 0x2600 && r <= 0x27BF:
		return true
	case r == 0x2B50 || r == 0x2B55 || r == 0x2705 || r == 0x2714 || r == 0x2728:
		return true
	}
	return false
}

func isDecoration(r rune) bool {
	return unicode.IsSpace(r) || isPictograph(r) || r == 0xFE0F || r == '*' || r == '>'
}

// clean strips markdown emphasis, heading marks and field labels.
func clean(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimLeft(s, "#> ")
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = labelRe.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
