package resolving

import "strings"

// ManifestLine is one non-empty line of a plain-text manifest.
type ManifestLine struct {
	Raw     string
	Dir     string // always starts with "/"
	Pattern string // last path segment, trimmed
}

// ParseManifest splits a manifest body into lines, skipping blank ones.
func ParseManifest(body string) []ManifestLine {
	var lines []ManifestLine
	for _, raw := range strings.Split(strings.TrimSpace(body), "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines = append(lines, ParseManifestLine(raw))
	}
	return lines
}

// ParseManifestLine splits "<dir>/<pattern>" on its last slash.
func ParseManifestLine(raw string) ManifestLine {
	segments := strings.Split(raw, "/")
	dir := strings.Join(segments[:len(segments)-1], "/")
	if !strings.HasPrefix(dir, "/") {
		dir = "/" + dir
	}
	return ManifestLine{
		Raw:     raw,
		Dir:     dir,
		Pattern: strings.TrimSpace(segments[len(segments)-1]),
	}
}
