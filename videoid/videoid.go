// Package videoid extracts YouTube video identifiers from user-supplied URLs.
package videoid

import "regexp"

// A video ID is exactly 11 characters drawn from the URL-safe set, found
// immediately after one of the recognized URL prefixes and bounded by a
// delimiter or the end of the string. The ID is not necessarily the first
// query parameter (watch?t=10&v=<id> is accepted).
var videoIDPattern = regexp.MustCompile(
	`(?:youtu\.be/|youtube\.com(?:/embed/|/v/|/shorts/|/watch\?v=|/watch\?.+&v=))([^"&?/\s]{11})(?:["&?/\s]|$)`,
)

// Extract returns the 11-character video ID embedded in rawURL. The second
// return value is false when no recognized shape is present; that is an
// expected outcome, not an error.
func Extract(rawURL string) (string, bool) {
	m := videoIDPattern.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}
