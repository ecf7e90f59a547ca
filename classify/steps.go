package classify

import (
	"strings"
	"unicode"
)

// ExtractSteps returns the numbered steps of content followed by its bullet
// steps. Steps are trimmed and empty ones dropped. Documents store this form.
func ExtractSteps(content string) []string {
	var steps []string
	for _, s := range append(numberedSteps(content), bulletSteps(content)...) {
		if s = strings.TrimSpace(s); s != "" {
			steps = append(steps, s)
		}
	}
	return steps
}

// ExtractDisplaySteps returns the numbered steps of content if there are any,
// otherwise its bullet steps. Steps are trimmed but empty ones are kept.
// Responses rendered for a how-to document without stored steps use this form.
func ExtractDisplaySteps(content string) []string {
	steps := numberedSteps(content)
	if len(steps) == 0 {
		steps = bulletSteps(content)
	}
	out := make([]string, len(steps))
	for i, s := range steps {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// numberedSteps scans for "<digits>.<space>" markers. Each step runs to the
// next digit run followed by a dot, or to the end of content.
func numberedSteps(content string) []string {
	return scanSteps([]rune(content), numberedMarker, numberedStop)
}

// bulletSteps scans for "•", "-" or "*" followed by whitespace. Each step runs
// to the next bullet character, or to the end of content.
func bulletSteps(content string) []string {
	return scanSteps([]rune(content), bulletMarker, isBullet)
}

// scanSteps finds non-overlapping markers from left to right. marker reports
// where the step text starts for a marker at i, or -1. stop reports whether
// the step text ends before position p.
func scanSteps(rs []rune, marker func([]rune, int) int, stop func([]rune, int) bool) []string {
	var steps []string
	i := 0
	for i < len(rs) {
		start := marker(rs, i)
		if start < 0 {
			i++
			continue
		}
		end := start
		for end < len(rs) && !stop(rs, end) {
			end++
		}
		steps = append(steps, string(rs[start:end]))
		i = end
	}
	return steps
}

func numberedMarker(rs []rune, i int) int {
	j := i
	for j < len(rs) && unicode.IsDigit(rs[j]) {
		j++
	}
	if j == i || j >= len(rs) || rs[j] != '.' {
		return -1
	}
	return skipSpace(rs, j+1)
}

func numberedStop(rs []rune, p int) bool {
	j := p
	for j < len(rs) && unicode.IsDigit(rs[j]) {
		j++
	}
	return j > p && j < len(rs) && rs[j] == '.'
}

func bulletMarker(rs []rune, i int) int {
	if !isBullet(rs, i) {
		return -1
	}
	return skipSpace(rs, i+1)
}

func isBullet(rs []rune, p int) bool {
	switch rs[p] {
	case '•', '-', '*':
		return true
	}
	return false
}

// skipSpace returns the index after a non-empty whitespace run at i, or -1.
func skipSpace(rs []rune, i int) int {
	j := i
	for j < len(rs) && unicode.IsSpace(rs[j]) {
		j++
	}
	if j == i {
		return -1
	}
	return j
}
