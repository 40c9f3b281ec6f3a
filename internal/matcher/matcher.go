// Package matcher implements the streaming fuzzy/substring matcher (C2):
// parallel ingestion, incremental scoring against the current pattern,
// and a ranked result list with stable tie-breaks.
//
// Grounded on the teacher's src/matcher.go (worker-pool scan/Loop split),
// src/chunklist.go (tail-growing, chunked item storage under a short
// lock), and src/merger.go (the globally-ordered view over locally
// sorted chunks) — generalized from fzf's restart-the-whole-scan-per-
// keystroke model to the spec's pattern-epoch model, where in-flight
// jobs from a stale pattern are discarded on merge instead of cancelled.
package matcher

import (
	"runtime"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/tvfind/tv/internal/algo"
	"github.com/tvfind/tv/internal/entry"
)

const (
	// MaxAcquiredPerTick bounds how many queued items a single tick()
	// moves from the injector queue into the items vector.
	MaxAcquiredPerTick = 1_000_000
	// ChunkSize is the unit of work handed to a single worker job.
	ChunkSize = 64 * 1024
	// MaxLinesInMem is the hard cap on the items vector's size.
	MaxLinesInMem = 10_000_000
)

// Status reports ingestion/scoring activity for the UI spinner.
type Status struct {
	PoolBusy        bool
	InjectorRunning bool
	Truncated       bool
}

// Injector is a cloneable producer handle into the matcher's item queue.
// Push is non-blocking; producers must not hold locks across pushes.
type Injector[T any] struct {
	m *Matcher[T]
}

// Push enqueues item for ingestion on the next tick(). Non-blocking.
func (inj Injector[T]) Push(item T) {
	inj.m.queueMu.Lock()
	inj.m.queue = append(inj.m.queue, item)
	inj.m.queueMu.Unlock()
}

type job[T any] struct {
	items   []T
	start   uint32
	epoch   uint64
	pattern Pattern
}

// Option configures optional Matcher behavior at construction time.
type Option[T any] func(*Matcher[T])

// WithScoreBonus adds bonus(item) to a matched item's score before it is
// merged into the ranked list (spec.md §4.9: frecency's "score bonus at
// merge time"). bonus may return 0 for items with no recorded history.
func WithScoreBonus[T any](bonus func(T) int) Option[T] {
	return func(m *Matcher[T]) { m.scoreBonus = bonus }
}

// Matcher holds a growing, tail-append-only items vector and scores it
// incrementally against a pattern using a worker pool sized to available
// hardware parallelism. The matcher is single-writer: one caller drives
// Tick/Find/Results; workers are pure consumers of immutable chunks plus
// a short-held lock on the ranked vector.
type Matcher[T any] struct {
	intoHaystack func(T) string
	scoreBonus   func(T) int

	mu    sync.Mutex // protects items, acquired, scored, truncated
	items []T

	queueMu sync.Mutex
	queue   []T

	pattern Pattern
	epoch   uint64
	scored  uint32 // items[0:scored] have been submitted to workers for the current epoch

	rankedMu  sync.Mutex
	ranked    []entry.MatchedItem
	needsSort bool

	jobs     chan job[T]
	inFlight int32 // atomic

	insertCounter uint32 // atomic; monotone insertion order for tie-breaks
	truncated     bool
}

// New creates a matcher parameterized by a function mapping stored items
// to the string to be scored, and spawns a worker pool sized to
// available hardware parallelism.
func New[T any](intoHaystack func(T) string, opts ...Option[T]) *Matcher[T] {
	m := &Matcher[T]{
		intoHaystack: intoHaystack,
		jobs:         make(chan job[T], runtime.NumCPU()*4),
	}
	for _, opt := range opts {
		opt(m)
	}
	workers := runtime.NumCPU()
	if workers < 1 {
		workers = 1
	}
	for i := 0; i < workers; i++ {
		go m.worker()
	}
	return m
}

// Injector returns a cloneable producer handle.
func (m *Matcher[T]) Injector() Injector[T] { return Injector[T]{m: m} }

func (m *Matcher[T]) worker() {
	for j := range m.jobs {
		var matches []entry.MatchedItem
		for i, it := range j.items {
			idx := j.start + uint32(i)
			haystack := []rune(m.intoHaystack(it))
			res := score(haystack, j.pattern)
			if res.Matched {
				total := res.Score
				if m.scoreBonus != nil {
					total += m.scoreBonus(it)
				}
				matches = append(matches, entry.MatchedItem{
					Index:   idx,
					Score:   scoreToUint16(total),
					InsertN: idx,
				})
			}
		}
		m.rankedMu.Lock()
		if j.epoch == m.currentEpoch() {
			m.ranked = append(m.ranked, matches...)
			m.needsSort = true
		}
		m.rankedMu.Unlock()
		atomic.AddInt32(&m.inFlight, -1)
	}
}

func (m *Matcher[T]) currentEpoch() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.epoch
}

func score(haystack []rune, p Pattern) algo.Result {
	if p.IsEmpty() {
		return algo.Result{Matched: true, Score: 0}
	}
	switch p.Mode {
	case Substring:
		total := 0
		var ranges [][2]int32
		for _, term := range p.terms {
			r := algo.SubstringMatch(haystack, []rune(term), p.caseSensitive)
			if !r.Matched {
				return algo.Result{Matched: false}
			}
			total += r.Score
			ranges = append(ranges, r.Ranges...)
		}
		return algo.Result{Matched: true, Score: total, Ranges: ranges}
	default:
		return algo.FuzzyMatch(haystack, []rune(p.Text), p.caseSensitive)
	}
}

func scoreToUint16(s int) uint16 {
	if s < 0 {
		return 0
	}
	if s > 0xFFFF {
		return 0xFFFF
	}
	return uint16(s)
}

// Tick drains the injector queue (up to MaxAcquiredPerTick) into the
// items vector, then fans out all newly acquired items in fixed-size
// chunks to worker jobs. Must be called once per event-loop iteration by
// the single driving goroutine.
func (m *Matcher[T]) Tick() Status {
	m.rankedMu.Lock()
	if m.needsSort {
		sort.Slice(m.ranked, func(i, j int) bool {
			if m.ranked[i].Score != m.ranked[j].Score {
				return m.ranked[i].Score > m.ranked[j].Score
			}
			return m.ranked[i].InsertN < m.ranked[j].InsertN
		})
		m.needsSort = false
	}
	m.rankedMu.Unlock()

	m.mu.Lock()
	m.queueMu.Lock()
	drain := len(m.queue)
	if drain > MaxAcquiredPerTick {
		drain = MaxAcquiredPerTick
	}
	if room := MaxLinesInMem - len(m.items); drain > room {
		drain = room
		m.truncated = true
	}
	var newItems []T
	if drain > 0 {
		newItems = m.queue[:drain]
		m.queue = m.queue[drain:]
	}
	injectorRunning := len(m.queue) > 0
	m.queueMu.Unlock()

	if len(newItems) > 0 {
		m.items = append(m.items, newItems...)
	}
	acquired := uint32(len(m.items))
	scored := m.scored
	pattern := m.pattern
	epoch := m.epoch
	truncated := m.truncated
	m.mu.Unlock()

	if scored < acquired {
		toScore := m.items[scored:acquired]
		for start := uint32(0); start < uint32(len(toScore)); start += ChunkSize {
			end := start + ChunkSize
			if end > uint32(len(toScore)) {
				end = uint32(len(toScore))
			}
			chunk := toScore[start:end]
			atomic.AddInt32(&m.inFlight, 1)
			m.jobs <- job[T]{items: chunk, start: scored + start, epoch: epoch, pattern: pattern}
		}
		m.mu.Lock()
		m.scored = acquired
		m.mu.Unlock()
	}

	return Status{
		PoolBusy:        atomic.LoadInt32(&m.inFlight) > 0,
		InjectorRunning: injectorRunning,
		Truncated:       truncated,
	}
}

// Find is idempotent if the pattern is unchanged. Otherwise it clears
// ranked results, resets the "fed" counter, and stores the new pattern;
// subsequent Tick calls rescore everything against it. Pattern changes
// do not cancel in-flight jobs; stale results are discarded on merge by
// checking the pattern epoch.
func (m *Matcher[T]) Find(p Pattern) {
	m.mu.Lock()
	if m.pattern.Text == p.Text && m.pattern.Mode == p.Mode {
		m.mu.Unlock()
		return
	}
	m.pattern = p
	m.epoch++
	m.scored = 0
	m.mu.Unlock()

	m.rankedMu.Lock()
	m.ranked = nil
	m.needsSort = false
	m.rankedMu.Unlock()
}

// Results locks the ranked list, takes n items starting at offset, and
// computes per-item match-character ranges by rescoring against the
// current display string (ranges are never stored longer than one
// results() call, per the data model's invariant that ranges never
// outlive the pattern that produced them).
func (m *Matcher[T]) Results(n, offset int) []entry.MatchedItem {
	m.rankedMu.Lock()
	if offset >= len(m.ranked) {
		m.rankedMu.Unlock()
		return nil
	}
	end := offset + n
	if end > len(m.ranked) {
		end = len(m.ranked)
	}
	slice := make([]entry.MatchedItem, end-offset)
	copy(slice, m.ranked[offset:end])
	m.rankedMu.Unlock()

	m.mu.Lock()
	pattern := m.pattern
	items := m.items
	m.mu.Unlock()

	for i := range slice {
		it := items[slice[i].Index]
		haystack := []rune(m.intoHaystack(it))
		res := score(haystack, pattern)
		for _, r := range res.Ranges {
			slice[i].Ranges = append(slice[i].Ranges, entry.Offset(r))
		}
	}
	return slice
}

// GetResult returns the item at ranked position i, if any.
func (m *Matcher[T]) GetResult(i int) (T, bool) {
	m.rankedMu.Lock()
	if i < 0 || i >= len(m.ranked) {
		m.rankedMu.Unlock()
		var zero T
		return zero, false
	}
	idx := m.ranked[i].Index
	m.rankedMu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	if int(idx) >= len(m.items) {
		var zero T
		return zero, false
	}
	return m.items[idx], true
}

// ResultCount returns the number of items currently in the ranked list.
func (m *Matcher[T]) ResultCount() int {
	m.rankedMu.Lock()
	defer m.rankedMu.Unlock()
	return len(m.ranked)
}

// TotalCount returns the total number of items ingested so far.
func (m *Matcher[T]) TotalCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.items)
}

// Running reports whether the matcher still has unscored items or
// in-flight worker jobs.
func (m *Matcher[T]) Running() bool {
	m.mu.Lock()
	pending := m.scored < uint32(len(m.items))
	m.mu.Unlock()
	return pending || atomic.LoadInt32(&m.inFlight) > 0
}
