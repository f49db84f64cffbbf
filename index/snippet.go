package index

import (
	"regexp"
	"strings"
)

// snippetContext is the number of runes of context kept on each side of a
// match when extracting a snippet.
const snippetContext = 60

const ellipsis = "…"

var (
	// [text](url) -> text
	linkPattern = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	// Line-anchored heading markers: "## Heading" -> "Heading"
	headingPattern = regexp.MustCompile(`(?m)^\s{0,3}#{1,6}\s+`)
	// Line-anchored bullet and numbered list markers
	listPattern = regexp.MustCompile(`(?m)^\s*(?:[-*+]|\d+[.)])\s+`)
	// Paired emphasis markers, strongest first
	boldStarPattern    = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	boldScorePattern   = regexp.MustCompile(`__([^_]+)__`)
	italicStarPattern  = regexp.MustCompile(`\*([^*]+)\*`)
	italicScorePattern = regexp.MustCompile(`_([^_]+)_`)
	// Any run of whitespace, including newlines
	spacePattern = regexp.MustCompile(`\s+`)
)

// buildSnippet extracts a display snippet around the match at rune offsets
// [start, end) in text. The window extends snippetContext runes on each
// side, clamped to the text bounds; markdown markup is stripped, whitespace
// is collapsed, and an ellipsis marks each side where the window did not
// reach the true text boundary.
func buildSnippet(text string, start, end int) string {
	runes := []rune(text)

	from := start - snippetContext
	if from < 0 {
		from = 0
	}
	to := end + snippetContext
	if to > len(runes) {
		to = len(runes)
	}

	snippet := cleanSnippet(string(runes[from:to]))
	if from > 0 {
		snippet = ellipsis + snippet
	}
	if to < len(runes) {
		snippet += ellipsis
	}
	return snippet
}

// cleanSnippet strips common markdown markup and collapses whitespace so a
// snippet renders as a single plain-text line. Line-anchored markers are
// removed before newlines are collapsed, otherwise list and heading
// prefixes would survive in the middle of the line.
func cleanSnippet(s string) string {
	s = linkPattern.ReplaceAllString(s, "$1")
	s = headingPattern.ReplaceAllString(s, "")
	s = listPattern.ReplaceAllString(s, "")
	s = boldStarPattern.ReplaceAllString(s, "$1")
	s = boldScorePattern.ReplaceAllString(s, "$1")
	s = italicStarPattern.ReplaceAllString(s, "$1")
	s = italicScorePattern.ReplaceAllString(s, "$1")
	s = strings.ReplaceAll(s, "`", "")
	s = spacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
