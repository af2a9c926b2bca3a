// Package extract turns raw multi-line user input into the deduplicated,
// ordered URL list a batch is built from. Extraction is a pure function and
// is re-run from scratch on every input change.
package extract

import (
	"net/url"
	"strings"
)

// URLs parses raw text into the batch URL list. Lines are split on CRLF or
// LF and trimmed; empty lines and lines that do not parse as absolute URLs
// (scheme and host required) are dropped silently. Duplicates are removed by
// exact post-trim equality, keeping first-seen order.
func URLs(raw string) []string {
	lines := strings.Split(strings.ReplaceAll(raw, "\r\n", "\n"), "\n")

	urls := make([]string, 0, len(lines))
	seen := make(map[string]struct{}, len(lines))

	for _, line := range lines {
		candidate := strings.TrimSpace(line)
		if candidate == "" {
			continue
		}
		if !isAbsoluteURL(candidate) {
			continue
		}
		if _, dup := seen[candidate]; dup {
			continue
		}
		seen[candidate] = struct{}{}
		urls = append(urls, candidate)
	}

	return urls
}

// isAbsoluteURL reports whether s is a structurally valid absolute URL.
func isAbsoluteURL(s string) bool {
	parsed, err := url.Parse(s)
	if err != nil {
		return false
	}
	return parsed.Scheme != "" && parsed.Host != ""
}
