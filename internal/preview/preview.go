// Package preview implements the preview runtime (C4): a single actor
// with a request inbox and an LRU cache, coalescing bursts of requests
// down to the latest ticket and killing any in-flight command for a
// superseded ticket before starting the next.
//
// Grounded on the teacher's src/terminal.go previewer/killPreview/
// cancelPreview/printPreview flow, generalized from fzf's synchronous,
// single-threaded preview box messaging to the spec's dedicated actor
// with a monotone ticket sequence and an explicit LRU cache (shaped after
// src/cache.go's ChunkCache).
package preview

import (
	"bufio"
	"context"
	"os/exec"
	"strings"
	"sync"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/quick"
	"github.com/mattn/go-shellwords"
	"github.com/rs/zerolog"

	"github.com/tvfind/tv/internal/ansi"
)

// ContentKind distinguishes the placeholder content states from a real
// rendered preview.
type ContentKind int

const (
	KindPlainText ContentKind = iota
	KindANSI
	KindHighlighted
	KindLoading
	KindNotSupported
	KindFileTooLarge
	KindEmpty
)

// DefaultMaxSize is the per-channel maximum preview content size
// (spec.md §9 open question: ~4 MiB default, configurable).
const DefaultMaxSize = 4 * 1024 * 1024

// Preview is the rendered result for one entry.
type Preview struct {
	Title         string
	Kind          ContentKind
	Content       string
	PartialOffset int
	TotalLines    int
	Stale         bool
}

// Ticket carries the entry to preview plus a monotone sequence number so
// the runtime can discard stale work.
type Ticket struct {
	Seq     uint64
	Key     string // stable cache key, e.g. output-rendered entry + line number
	Title   string
	Command string // fully rendered preview command
	MaxSize int
}

// Runtime is the preview actor. Callers send tickets via Request and
// receive results via Responses(); Shutdown stops the actor.
type Runtime struct {
	logger  zerolog.Logger
	inbox   chan Ticket
	results chan Response
	done    chan struct{}

	cache *lru

	mu      sync.Mutex
	cancel  context.CancelFunc
	current uint64
}

// Response pairs a completed preview with the ticket sequence it answers.
type Response struct {
	Seq     uint64
	Preview Preview
}

// New starts a preview runtime with the given cache capacity.
func New(logger zerolog.Logger, cacheCapacity int) *Runtime {
	r := &Runtime{
		logger:  logger,
		inbox:   make(chan Ticket, 64),
		results: make(chan Response, 64),
		done:    make(chan struct{}),
		cache:   newLRU(cacheCapacity),
	}
	go r.loop()
	return r
}

// Request enqueues a preview ticket. Non-blocking; if the inbox is full
// the oldest queued (not yet in-flight) ticket is dropped to make room,
// preserving "always process only the latest."
func (r *Runtime) Request(t Ticket) {
	select {
	case r.inbox <- t:
	default:
		select {
		case <-r.inbox:
		default:
		}
		r.inbox <- t
	}
}

// Responses returns the channel of completed previews, each tagged with
// the ticket sequence it answers.
func (r *Runtime) Responses() <-chan Response { return r.results }

// Shutdown stops the actor and kills any in-flight preview command.
func (r *Runtime) Shutdown() {
	close(r.done)
	r.mu.Lock()
	cancel := r.cancel
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (r *Runtime) loop() {
	for {
		select {
		case <-r.done:
			return
		case t := <-r.inbox:
			// Drain the inbox to the latest queued ticket (coalescing).
			latest := t
			drained := true
			for drained {
				select {
				case next := <-r.inbox:
					latest = next
				default:
					drained = false
				}
			}
			r.dispatch(latest)
		}
	}
}

// dispatch cancels any command still running for a superseded ticket and
// hands the new one off to its own goroutine, so a slow preview command
// never blocks the actor loop from draining and coalescing further
// requests. Cancelling ctx kills the child process (exec.CommandContext's
// own behavior), satisfying the "SIGKILL the prior child if still
// running" requirement.
func (r *Runtime) dispatch(t Ticket) {
	r.mu.Lock()
	if t.Seq < r.current {
		r.mu.Unlock()
		return // superseded before we even started
	}
	if r.cancel != nil {
		r.cancel() // kill any in-flight command for the previous ticket
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.cancel = cancel
	r.current = t.Seq
	r.mu.Unlock()

	if cached, ok := r.cache.get(t.Key); ok {
		r.emit(t.Seq, cached)
		return
	}

	go r.serve(ctx, t)
}

func (r *Runtime) serve(ctx context.Context, t Ticket) {
	p := r.execute(ctx, t)
	if ctx.Err() != nil {
		return // cancelled by a newer ticket; no response
	}
	r.cache.put(t.Key, p)
	r.emit(t.Seq, p)
}

func (r *Runtime) emit(seq uint64, p Preview) {
	select {
	case r.results <- Response{Seq: seq, Preview: p}:
	case <-r.done:
	}
}

func (r *Runtime) execute(ctx context.Context, t Ticket) Preview {
	maxSize := t.MaxSize
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	words, err := shellwords.Parse(t.Command)
	if err != nil || len(words) == 0 {
		return Preview{Title: t.Title, Kind: KindNotSupported}
	}
	cmd := exec.CommandContext(ctx, "sh", "-c", t.Command)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Preview{Title: t.Title, Kind: KindNotSupported}
	}
	if err := cmd.Start(); err != nil {
		return Preview{Title: t.Title, Kind: KindNotSupported}
	}
	defer cmd.Wait()

	var buf strings.Builder
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	lines := 0
	for scanner.Scan() {
		if buf.Len() >= maxSize {
			return Preview{Title: t.Title, Kind: KindFileTooLarge, Content: buf.String(), TotalLines: lines}
		}
		buf.WriteString(scanner.Text())
		buf.WriteByte('\n')
		lines++
	}
	content := buf.String()
	if content == "" {
		return Preview{Title: t.Title, Kind: KindEmpty}
	}
	if ansi.HasEscapes(content) {
		return Preview{Title: t.Title, Kind: KindANSI, Content: content, TotalLines: lines}
	}
	if hl, ok := highlight(t.Title, content); ok {
		return Preview{Title: t.Title, Kind: KindHighlighted, Content: hl, TotalLines: lines}
	}
	return Preview{Title: t.Title, Kind: KindPlainText, Content: content, TotalLines: lines}
}

// highlight applies chroma syntax highlighting keyed by the preview
// title's apparent file extension; it reports false if no lexer matches.
func highlight(title, content string) (string, bool) {
	lexer := lexers.Match(title)
	if lexer == nil {
		return "", false
	}
	var out strings.Builder
	if err := quick.Highlight(&out, content, lexer.Config().Name, "terminal256", "monokai"); err != nil {
		return "", false
	}
	return out.String(), true
}
