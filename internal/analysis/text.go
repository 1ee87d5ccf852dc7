package analysis

import "strings"

var newlineReplacer = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// normalizeNewlines converts CRLF and bare CR line endings to LF.
func normalizeNewlines(text string) string {
	return newlineReplacer.Replace(text)
}

// nonBlankLines returns the trimmed, non-empty lines of text in order.
func nonBlankLines(text string) []string {
	var lines []string
	for _, ln := range strings.Split(normalizeNewlines(text), "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			lines = append(lines, ln)
		}
	}
	return lines
}

// firstLine returns the trimmed first line of text, which may be blank.
func firstLine(text string) string {
	first, _, _ := strings.Cut(normalizeNewlines(text), "\n")
	return strings.TrimSpace(first)
}

func head[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
