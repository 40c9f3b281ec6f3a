// Package frecency implements the optional ranking bias (spec.md §4.9):
// a persistent per-channel or global access log that lifts previously
// selected entries in the matcher's ranked list on subsequent runs.
//
// Grounded on the teacher's src/history.go append-on-selection model,
// generalized to an access-count store persisted via internal/store
// (C18) instead of a flat newline-delimited file, since frecency records
// need more than a single string per line.
package frecency

import (
	"sync"

	"github.com/tvfind/tv/internal/store"
)

// Record is one frecency entry: how many times, and how recently, an
// entry was selected in a given channel.
type Record struct {
	Entry       string `json:"entry"`
	Channel     string `json:"channel"`
	AccessCount int     `json:"access_count"`
	LastAccess  int64   `json:"last_access"`
}

// Store tracks selection frequency, recoverable from corrupt JSON by
// starting empty. Increments are atomic per selection.
type Store struct {
	mu      sync.Mutex
	store   *store.JSONStore[[]Record]
	records map[string]*Record // keyed by channel+"\x00"+entry
	global  bool
}

// Load reads path, starting empty on a missing or corrupt file.
func Load(path string, global bool) *Store {
	s := store.NewJSONStore[[]Record](path)
	recs, _ := s.Load()
	byKey := make(map[string]*Record, len(recs))
	for i := range recs {
		r := &recs[i]
		byKey[key(r.Channel, r.Entry)] = r
	}
	return &Store{store: s, records: byKey, global: global}
}

func key(channel, entry string) string { return channel + "\x00" + entry }

// Record increments the access count for (entry, channel) and updates
// last_access to now (expressed as a Unix timestamp supplied by the
// caller, since this package must not call time.Now() directly to stay
// deterministic under test).
func (s *Store) Record(entry, channel string, now int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.global {
		channel = ""
	}
	k := key(channel, entry)
	r, ok := s.records[k]
	if !ok {
		r = &Record{Entry: entry, Channel: channel}
		s.records[k] = r
	}
	r.AccessCount++
	r.LastAccess = now
}

// Score returns the access count for (entry, channel), or 0 if the entry
// has never been recorded. Entries not present in the current dataset are
// the caller's responsibility to ignore: this store only ever answers
// "how many times was this exact entry selected before."
func (s *Store) Score(entry, channel string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.global {
		channel = ""
	}
	if r, ok := s.records[key(channel, entry)]; ok {
		return r.AccessCount
	}
	return 0
}

// Save persists the store to disk.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, *r)
	}
	return s.store.Save(out)
}
