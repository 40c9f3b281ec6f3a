// Package history implements the append-only per-channel/global query log
// (C5): dedup of consecutive duplicates, trim to max size, and cursor
// navigation. Persisted atomically as JSON via internal/store.
//
// Grounded on the teacher's src/history.go (append/override/current/
// previous/next cursor model), generalized from fzf's single global,
// line-oriented file to the spec's channel-scoped, (query, channel)
// record with JSON persistence.
package history

import (
	"strings"

	"github.com/tvfind/tv/internal/store"
)

// Record is one stored history entry, newest last.
type Record struct {
	Entry     string `json:"entry"`
	Channel   string `json:"channel"`
	Timestamp int64  `json:"timestamp,omitempty"`
}

// History is an append-only, cursor-navigable query log.
type History struct {
	store   *store.JSONStore[[]Record]
	records []Record
	maxSize int
	global  bool // if false, navigation is filtered to the active channel

	cursor int // index into the channel-filtered view; -1 means "past the newest entry"
}

// Load reads path, silently recovering from a missing/empty/corrupt file
// by starting empty.
func Load(path string, maxSize int, global bool) *History {
	s := store.NewJSONStore[[]Record](path)
	records, err := s.Load()
	if err != nil || records == nil {
		records = []Record{}
	}
	h := &History{store: s, records: records, maxSize: maxSize, global: global}
	h.resetCursor()
	return h
}

// Save persists the history to disk.
func (h *History) Save() error {
	return h.store.Save(h.records)
}

// AddEntry ignores empty/whitespace-only queries, skips consecutive
// duplicates of the same (query, channel) pair, and trims the head to
// maxSize. maxSize <= 0 disables history entirely.
func (h *History) AddEntry(query, channel string) {
	if h.maxSize <= 0 {
		return
	}
	if strings.TrimSpace(query) == "" {
		return
	}
	if n := len(h.records); n > 0 {
		last := h.records[n-1]
		if last.Entry == query && last.Channel == channel {
			h.resetCursor()
			return
		}
	}
	h.records = append(h.records, Record{Entry: query, Channel: channel})
	if len(h.records) > h.maxSize {
		h.records = h.records[len(h.records)-h.maxSize:]
	}
	h.resetCursor()
}

func (h *History) resetCursor() { h.cursor = -1 }

func (h *History) view(channel string) []Record {
	if h.global {
		return h.records
	}
	out := make([]Record, 0, len(h.records))
	for _, r := range h.records {
		if r.Channel == channel {
			out = append(out, r)
		}
	}
	return out
}

// GetPreviousEntry moves the cursor back one and returns the entry there.
// Navigating past the start stays pinned at the oldest entry.
func (h *History) GetPreviousEntry(channel string) (string, bool) {
	view := h.view(channel)
	if len(view) == 0 {
		return "", false
	}
	if h.cursor < 0 {
		h.cursor = len(view) - 1
	} else if h.cursor > 0 {
		h.cursor--
	}
	return view[h.cursor].Entry, true
}

// GetNextEntry moves the cursor forward one. Navigating past the newest
// entry returns false and resets the cursor so the next GetPreviousEntry
// starts at the newest entry again.
func (h *History) GetNextEntry(channel string) (string, bool) {
	view := h.view(channel)
	if h.cursor < 0 || h.cursor >= len(view)-1 {
		h.resetCursor()
		return "", false
	}
	h.cursor++
	return view[h.cursor].Entry, true
}
