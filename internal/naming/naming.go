// Package naming derives collision-free, filesystem-safe archive entry names
// from source URLs and their resolved content types.
package naming

import (
	"crypto/sha1"
	"encoding/hex"
	"mime"
	"strings"
)

// Entry name constraints
const (
	// MaxStemLength caps the sanitized URL stem so derived names stay well
	// inside common filesystem path limits.
	MaxStemLength = 200

	// ReplacementRune stands in for every character that is unsafe in a
	// file name.
	ReplacementRune = '!'

	// FallbackExtension is used when the content type has no known mapping.
	FallbackExtension = "bin"
)

// preferredExtensions pins the conventional extension for common image
// types. mime.ExtensionsByType returns multi-candidate lists in unstable
// platform-dependent order, so the usual suspects are resolved here first.
var preferredExtensions = map[string]string{
	"image/jpeg":    "jpg",
	"image/png":     "png",
	"image/gif":     "gif",
	"image/webp":    "webp",
	"image/bmp":     "bmp",
	"image/tiff":    "tiff",
	"image/avif":    "avif",
	"image/svg+xml": "svg",
	"image/x-icon":  "ico",
}

// DeriveEntryName produces the archive entry name for a retrieved asset:
// the sanitized URL stem truncated to MaxStemLength, an underscore, the
// SHA-1 hex digest of the source URL, a dot, and the extension resolved
// from the content type. Hashing the URL rather than the content keeps the
// name deterministic for a URL within a batch while guaranteeing distinct
// names for distinct URLs whose stems collide after sanitization.
func DeriveEntryName(rawURL, contentType string) string {
	stem := SanitizeURL(rawURL)
	if len(stem) > MaxStemLength {
		stem = stem[:MaxStemLength]
	}

	var b strings.Builder
	b.WriteString(stem)
	b.WriteByte('_')
	b.WriteString(Digest(rawURL))
	b.WriteByte('.')
	b.WriteString(ExtensionFor(contentType))
	return b.String()
}

// SanitizeURL collapses a URL into an ASCII-safe file name stem: the scheme
// separator and every filesystem-unsafe or non-printable-ASCII rune become
// ReplacementRune, runs are collapsed, and leading/trailing replacements
// are trimmed.
func SanitizeURL(rawURL string) string {
	s := rawURL
	if idx := strings.Index(s, "://"); idx >= 0 {
		s = s[idx+len("://"):]
	}

	var b strings.Builder
	b.Grow(len(s))
	lastReplaced := false
	for _, r := range s {
		if isSafeRune(r) {
			b.WriteRune(r)
			lastReplaced = false
			continue
		}
		if !lastReplaced {
			b.WriteRune(ReplacementRune)
			lastReplaced = true
		}
	}

	return strings.Trim(b.String(), string(ReplacementRune))
}

// isSafeRune reports whether r may appear verbatim in an archive entry name.
func isSafeRune(r rune) bool {
	if r < 0x20 || r > 0x7e {
		return false
	}
	switch r {
	case '/', '\\', '<', '>', ':', '"', '|', '?', '*', '#', '%', ' ':
		return false
	}
	return true
}

// ExtensionFor resolves a file extension (without the dot) for the given
// content type. Unknown types fall back to FallbackExtension; this function
// never fails so a successful retrieval always yields an entry name.
func ExtensionFor(contentType string) string {
	mediaType := contentType
	if parsed, _, err := mime.ParseMediaType(contentType); err == nil {
		mediaType = parsed
	}
	mediaType = strings.ToLower(strings.TrimSpace(mediaType))

	if ext, ok := preferredExtensions[mediaType]; ok {
		return ext
	}

	if exts, err := mime.ExtensionsByType(mediaType); err == nil && len(exts) > 0 {
		return strings.TrimPrefix(exts[0], ".")
	}

	return FallbackExtension
}

// Digest returns the lowercase SHA-1 hex digest of s. Stability and low
// collision probability within a batch are all that is required here.
func Digest(s string) string {
	sum := sha1.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}
