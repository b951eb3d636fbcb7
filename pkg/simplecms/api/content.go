package api

import (
	"html"
	"strings"
	"unicode/utf8"
)

// sanitizeHTML removes scripts, event handlers and other unsafe markup from
// rich text while keeping ordinary formatting.
func (h *Handler) sanitizeHTML(content string) string {
	return h.sanitizer.Sanitize(content)
}

// plainText strips every tag and collapses whitespace
func (h *Handler) plainText(content string) string {
	text := html.UnescapeString(h.stripper.Sanitize(content))
	return strings.Join(strings.Fields(text), " ")
}

// excerptFrom derives an excerpt from rich text: the first excerptLength
// characters of its plain text, with "..." appended when cut.
func (h *Handler) excerptFrom(content string) string {
	return truncate(h.plainText(content), excerptLength)
}

// truncate shortens s to at most n runes, appending "..." when it cuts
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return strings.TrimSpace(string(runes[:n])) + "..."
}
