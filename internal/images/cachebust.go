package images

import (
	"fmt"
	"math/rand/v2"
	"net/url"
	"strings"
	"time"
)

// CacheBuster appends a uniqueness parameter to an image URL.
type CacheBuster func(rawURL string) string

// TimestampBuster tags URLs with v=<unix-millis>_<random>.
func TimestampBuster(now func() time.Time) CacheBuster {
	if now == nil {
		now = time.Now
	}
	return func(rawURL string) string {
		return withParam(rawURL, "v", fmt.Sprintf("%d_%d", now().UnixMilli(), rand.IntN(1_000_000)))
	}
}

func withParam(rawURL, key, value string) string {
	if rawURL == "" {
		return rawURL
	}
	base, frag, hasFrag := strings.Cut(rawURL, "#")
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
		if strings.HasSuffix(base, "?") || strings.HasSuffix(base, "&") {
			sep = ""
		}
	}
	out := base + sep + url.QueryEscape(key) + "=" + url.QueryEscape(value)
	if hasFrag {
		out += "#" + frag
	}
	return out
}
