// Package entry defines the atomic candidate record that flows from the
// source runtime through the matcher to the renderer, per the data model:
// raw display text, optional ANSI-styled variant, optional output form,
// optional line number, and match-index ranges over the display text.
package entry

// Offset is an exclusive-end [start, end) range of character positions in
// a displayable string, e.g. the span covered by a single matched chunk.
type Offset [2]int32

// Entry is the atomic candidate. Entries are created by the source
// runtime, consumed immutably elsewhere, and freed with their owning
// matcher. Entries never outlive the pattern that produced their match
// ranges: ranges are recomputed on demand by the matcher, not stored here.
type Entry struct {
	// Raw is the original line of output exactly as the source emitted it
	// (with ANSI codes intact if the channel's ansi flag is set).
	Raw string
	// Display is the rendered form shown in the results list (output of
	// the channel's display template, ANSI-stripped for width math but
	// the matcher and renderer may still consult Raw for styling).
	Display string
	// Output is the rendered form printed on confirmation (output of the
	// channel's output template). Lazily computed by callers that need
	// it; stored here once rendered so repeated lookups (e.g. preview
	// cache keys) are cheap.
	Output string
	// LineNumber is set for grep-style channels (1-based); zero means
	// "no line number".
	LineNumber int
	// Index is this entry's position in the matcher's items vector. Once
	// assigned, an entry's content is immutable for the matcher's
	// lifetime.
	Index uint32
}

// Key returns the preview cache key for this entry: its output-rendered
// form plus line number when present, so that two entries with identical
// output but different line numbers don't collide. Deterministic and
// stable across identical entries, per the data model's cache-key
// invariant.
func (e *Entry) Key() string {
	if e.LineNumber > 0 {
		return e.Output + "\x00" + itoa(e.LineNumber)
	}
	return e.Output
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// MatchedItem is the score-bearing record held in the matcher's ranked
// list: an opaque index into the items vector, a score, and the character
// ranges of matched positions inside the rendered display string
// (computed lazily on slice read).
type MatchedItem struct {
	Index   uint32
	Score   uint16
	Ranges  []Offset
	InsertN uint32 // insertion order, used as the stable tie-break
}
