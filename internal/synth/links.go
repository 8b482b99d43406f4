package synth

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/page"
)

var (
	linkSplitRe = regexp.MustCompile(`[,;\s]+`)
	phoneRe     = regexp.MustCompile(`\+?\d[\d\s().-]{6,}\d`)
)

type platform struct {
	id    string
	name  string
	hosts []string
}

var platforms = []platform{
	{"whatsapp", "WhatsApp", []string{"wa.me", "whatsapp.com"}},
	{"instagram", "Instagram", []string{"instagram.com"}},
	{"facebook", "Facebook", []string{"facebook.com", "fb.com"}},
	{"twitter", "Twitter", []string{"twitter.com", "x.com"}},
	{"tiktok", "TikTok", []string{"tiktok.com"}},
	{"linkedin", "LinkedIn", []string{"linkedin.com"}},
	{"youtube", "YouTube", []string{"youtube.com", "youtu.be"}},
}

// parseSocial reads the free-text socialLinks answer. Bare @handles are
// taken as Instagram accounts; URLs on unknown hosts are kept as "Web".
func parseSocial(raw string) []page.SocialLink {
	var out []page.SocialLink
	seen := map[string]bool{}
	add := func(id, name, u string) {
		if seen[u] {
			return
		}
		seen[u] = true
		out = append(out, page.SocialLink{ID: id, Name: name, URL: u, Order: len(out) + 1})
	}
	for _, tok := range linkSplitRe.Split(raw, -1) {
		tok = strings.Trim(tok, ".()")
		switch {
		case strings.HasPrefix(tok, "@") && len(tok) > 1:
			add("instagram", "Instagram", "https://instagram.com/"+tok[1:])
		case strings.Contains(tok, "."):
			u := tok
			if !strings.Contains(u, "://") {
				u = "https://" + u
			}
			parsed, err := url.Parse(u)
			if err != nil || parsed.Host == "" {
				continue
			}
			host := strings.TrimPrefix(strings.ToLower(parsed.Host), "www.")
			if p, ok := platformFor(host); ok {
				add(p.id, p.name, u)
			} else if strings.Contains(host, ".") && strings.ContainsAny(host, "abcdefghijklmnopqrstuvwxyz") {
				add("web", "Web", u)
			}
		}
	}
	return out
}

func platformFor(host string) (platform, bool) {
	for _, p := range platforms {
		for _, h := range p.hosts {
			if host == h || strings.HasSuffix(host, "."+h) {
				return p, true
			}
		}
	}
	return platform{}, false
}

// whatsAppNumber returns "+digits" from a wa.me link or the first phone-like
// run in raw.
func whatsAppNumber(raw string, links []page.SocialLink) string {
	for _, l := range links {
		if l.ID != "whatsapp" {
			continue
		}
		if u, err := url.Parse(l.URL); err == nil {
			if d := digits(u.Path); len(d) >= 7 {
				return "+" + d
			}
		}
	}
	if m := phoneRe.FindString(raw); m != "" {
		if d := digits(m); len(d) >= 7 {
			return "+" + d
		}
	}
	return ""
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
