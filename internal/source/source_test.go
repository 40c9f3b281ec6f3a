package source

import (
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tvfind/tv/internal/entry"
)

func collect(t *testing.T) (func(entry.Entry), func() []entry.Entry) {
	t.Helper()
	var mu sync.Mutex
	var got []entry.Entry
	push := func(e entry.Entry) {
		mu.Lock()
		defer mu.Unlock()
		got = append(got, e)
	}
	read := func() []entry.Entry {
		mu.Lock()
		defer mu.Unlock()
		out := make([]entry.Entry, len(got))
		copy(out, got)
		return out
	}
	return push, read
}

func TestStartProducesEntries(t *testing.T) {
	push, read := collect(t)
	r := New(zerolog.Nop(), []Spec{{Command: "printf 'a\\nb\\nc'"}}, push)
	require.NoError(t, r.Start())

	require.Eventually(t, func() bool { return len(read()) == 3 }, time.Second, 5*time.Millisecond)
	entries := read()
	assert.Equal(t, "a", entries[0].Raw)
	assert.Equal(t, "c", entries[2].Raw)
	r.Stop()
}

func TestCycleSourcesAdvances(t *testing.T) {
	push, read := collect(t)
	r := New(zerolog.Nop(), []Spec{
		{Command: "printf 'one'"},
		{Command: "printf 'two'"},
	}, push)
	require.NoError(t, r.Start())
	require.Eventually(t, func() bool { return len(read()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, "one", read()[0].Raw)

	require.NoError(t, r.CycleSources())
	require.Eventually(t, func() bool {
		es := read()
		return len(es) == 2 && es[1].Raw == "two"
	}, time.Second, 5*time.Millisecond)
	r.Stop()
}

func TestWatchCoalescesMissedTicks(t *testing.T) {
	var count int32
	var mu sync.Mutex
	r := New(zerolog.Nop(), []Spec{{Command: "true"}}, func(entry.Entry) {})
	r.StartWatch(10*time.Millisecond, func() {
		mu.Lock()
		count++
		mu.Unlock()
		time.Sleep(50 * time.Millisecond) // slower than the tick interval
	})
	time.Sleep(120 * time.Millisecond)
	r.StopWatch()

	mu.Lock()
	defer mu.Unlock()
	assert.Less(t, int(count), 10) // far fewer than 12 ticks would fire uncoalesced
}
