package aggregator

import (
	"regexp"
	"strings"
)

// Known host applications whose branding suffix is stripped from window
// titles, e.g. "Hall.dwg - AutoCAD 2024" -> "hall.dwg".
var (
	appSuffixRegex = regexp.MustCompile(`\s*-\s*(autocad|word|excel|chrome|firefox|code|visual studio).*$`)
	versionRegex   = regexp.MustCompile(`\s*\(v?\d+\)\s*`)
	yearRegex      = regexp.MustCompile(`\s*-\s*\d{4}$`)
)

// NormalizeTitle canonicalizes a raw window title for similarity
// comparison. The transform is lossy on purpose: it lower-cases, strips
// trailing application branding, version markers like "(v2)" and a
// trailing "- 2024" year, then collapses whitespace.
func NormalizeTitle(title string) string {
	if title == "" {
		return ""
	}

	title = strings.ToLower(title)
	title = appSuffixRegex.ReplaceAllString(title, "")
	title = versionRegex.ReplaceAllString(title, " ")
	title = yearRegex.ReplaceAllString(title, "")

	// Collapse repeated whitespace
	title = strings.Join(strings.Fields(title), " ")

	return strings.TrimSpace(title)
}
