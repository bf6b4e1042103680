package providers

import (
	"net/url"
	"strings"
)

// RelayURL wraps target so it is fetched through the relay at base.
// An empty base returns target unchanged.
func RelayURL(base, target string) string {
	base = strings.TrimSpace(base)
	if base == "" {
		return target
	}
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	return base + sep + "url=" + url.QueryEscape(target)
}
