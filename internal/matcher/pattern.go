package matcher

import "strings"

// Mode selects the scoring strategy, per the data model's Pattern type.
type Mode int

const (
	// Fuzzy scores candidates as a fuzzy subsequence match.
	Fuzzy Mode = iota
	// Substring preprocesses the query into space-separated literal
	// terms (ANDed together) and scores each as an exact substring.
	Substring
)

// Pattern is the current query string plus its matching mode. Patterns
// compare equal (for find()'s idempotency check) when both Text and Mode
// match.
type Pattern struct {
	Text string
	Mode Mode

	caseSensitive bool
	terms         []string
}

// NewPattern builds a Pattern, applying smart-case (case-sensitive only
// if the query contains an uppercase rune) and, in Substring mode,
// splitting the query into space-separated terms per spec §4.
func NewPattern(text string, mode Mode) Pattern {
	p := Pattern{Text: text, Mode: mode, caseSensitive: hasUpper(text)}
	if mode == Substring {
		fields := strings.Fields(text)
		p.terms = make([]string, 0, len(fields))
		for _, f := range fields {
			p.terms = append(p.terms, strings.TrimPrefix(f, "'"))
		}
	}
	return p
}

// IsEmpty reports whether the pattern matches everything (empty query).
func (p Pattern) IsEmpty() bool { return len(strings.TrimSpace(p.Text)) == 0 }

func hasUpper(s string) bool {
	for _, r := range s {
		if r >= 'A' && r <= 'Z' {
			return true
		}
	}
	return false
}
