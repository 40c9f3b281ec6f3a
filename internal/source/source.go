// Package source implements the channel/source runtime (C3): spawning
// and streaming the active channel's source command, reload, cycling
// between declared source variants, watch-mode timers, and ANSI/delimiter
// handling.
//
// Grounded on the teacher's src/reader.go (readFromCommand/feed
// line-scanning loop) and src/command.go's shell invocation, generalized
// from fzf's single fixed `$FZF_DEFAULT_COMMAND` to the spec's templated,
// reloadable, multi-variant channel source with watch-timer coalescing.
package source

import (
	"bufio"
	"context"
	"io"
	"os/exec"
	"sync"
	"time"

	"github.com/mattn/go-shellwords"
	"github.com/rs/zerolog"

	"github.com/tvfind/tv/internal/ansi"
	"github.com/tvfind/tv/internal/entry"
	"github.com/tvfind/tv/internal/errs"
)

// Spec describes one source variant: a shell command template, its
// entry delimiter, and whether raw ANSI bytes should be preserved.
type Spec struct {
	Command   string
	Delimiter string // default "\n"
	ANSI      bool
}

// Status mirrors the matcher's pool_busy/injector_running shape for the
// UI's non-fatal error indicator (spec.md §4.3 Failure).
type Status struct {
	Running bool
	Err     error
}

// Runtime owns at most one running source process at a time. Callers
// push lines into Push; Runtime never touches the matcher directly so it
// stays reusable across tests without a live matcher.
type Runtime struct {
	logger zerolog.Logger
	Push   func(entry.Entry)

	mu       sync.Mutex
	cmd      *exec.Cmd
	cancel   context.CancelFunc
	variants []Spec
	variant  int

	watchCancel context.CancelFunc
}

// New creates a source runtime over the given variants (at least one),
// pushing produced entries through push.
func New(logger zerolog.Logger, variants []Spec, push func(entry.Entry)) *Runtime {
	return &Runtime{logger: logger, Push: push, variants: variants}
}

// Start spawns the current source variant. It is equivalent to Reload on
// an idle runtime.
func (r *Runtime) Start() error { return r.Reload() }

// Reload terminates the current process (if any), drops its partial
// output, and respawns the current variant. Broken pipes during kill are
// ignored, matching spec.md §4.3 Failure.
func (r *Runtime) Reload() error {
	r.stopLocked()

	r.mu.Lock()
	spec := r.variants[r.variant]
	r.mu.Unlock()

	return r.spawn(spec)
}

// CycleSources advances to the next declared source variant and
// restarts streaming from it.
func (r *Runtime) CycleSources() error {
	r.mu.Lock()
	if len(r.variants) == 0 {
		r.mu.Unlock()
		return nil
	}
	r.variant = (r.variant + 1) % len(r.variants)
	r.mu.Unlock()
	return r.Reload()
}

// Stop tears down the current process and any watch timer, dropping
// partial output. Used on channel switch.
func (r *Runtime) Stop() {
	r.StopWatch()
	r.stopLocked()
}

func (r *Runtime) stopLocked() {
	r.mu.Lock()
	cancel := r.cancel
	r.cancel = nil
	r.cmd = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (r *Runtime) spawn(spec Spec) error {
	ctx, cancel := context.WithCancel(context.Background())

	words, err := shellwords.Parse(spec.Command)
	if err != nil || len(words) == 0 {
		cancel()
		return errs.Wrap(errs.KindChannel, err, "parsing source command")
	}

	cmd := exec.CommandContext(ctx, "sh", "-c", spec.Command)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		cancel()
		return errs.Wrap(errs.KindChannel, err, "creating source stdout pipe")
	}
	if err := cmd.Start(); err != nil {
		cancel()
		return errs.Wrap(errs.KindChannel, err, "spawning source command")
	}

	r.mu.Lock()
	r.cmd = cmd
	r.cancel = cancel
	r.mu.Unlock()

	delim := spec.Delimiter
	if delim == "" {
		delim = "\n"
	}
	go r.stream(cmd, stdout, delim, spec.ANSI)
	return nil
}

func (r *Runtime) stream(cmd *exec.Cmd, stdout io.ReadCloser, delim string, ansiMode bool) {
	scanner := bufio.NewScanner(stdout)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)
	if delim != "\n" && len(delim) == 1 {
		splitOn := delim[0]
		scanner.Split(splitFunc(splitOn))
	}
	produced := false
	for scanner.Scan() {
		raw := scanner.Text()
		e := entry.Entry{Raw: raw, Display: raw}
		if ansiMode && ansi.HasEscapes(raw) {
			e.Display = ansi.Strip(raw)
		}
		r.Push(e)
		produced = true
	}
	err := cmd.Wait()
	if err != nil && !produced {
		r.logger.Warn().Err(err).Msg("source command exited before producing any entries")
	}
}

func splitFunc(sep byte) bufio.SplitFunc {
	return func(data []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(data) == 0 {
			return 0, nil, nil
		}
		for i, b := range data {
			if b == sep {
				return i + 1, data[:i], nil
			}
		}
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
}

// StartWatch arms a timer that calls onTick at interval. Missed ticks are
// coalesced: a tick is skipped entirely if the previous onTick call is
// still running rather than being queued up.
func (r *Runtime) StartWatch(interval time.Duration, onTick func()) {
	r.StopWatch()
	if interval <= 0 {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	r.mu.Lock()
	r.watchCancel = cancel
	r.mu.Unlock()

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var busy sync.Mutex
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if !busy.TryLock() {
					continue // coalesce: previous reload still running
				}
				go func() {
					defer busy.Unlock()
					onTick()
				}()
			}
		}
	}()
}

// StopWatch disarms the watch timer, if any.
func (r *Runtime) StopWatch() {
	r.mu.Lock()
	cancel := r.watchCancel
	r.watchCancel = nil
	r.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}
