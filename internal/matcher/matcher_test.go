package matcher

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func haystack(s string) string { return s }

func drainUntilQuiet(t *testing.T, m *Matcher[string]) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		st := m.Tick()
		if !st.PoolBusy && !st.InjectorRunning {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatal("matcher did not quiesce")
}

func TestMonotoneIngestion(t *testing.T) {
	m := New(haystack)
	inj := m.Injector()
	for i := 0; i < 100; i++ {
		inj.Push(fmt.Sprintf("item-%d", i))
	}
	drainUntilQuiet(t, m)
	assert.Equal(t, 100, m.TotalCount())
}

func TestFindThenTickRescoresFuzzy(t *testing.T) {
	m := New(haystack)
	inj := m.Injector()
	inj.Push("apple")
	inj.Push("banana")
	inj.Push("grape")
	drainUntilQuiet(t, m)

	m.Find(NewPattern("ap", Fuzzy))
	drainUntilQuiet(t, m)

	results := m.Results(10, 0)
	require.NotEmpty(t, results)
	for _, r := range results {
		item, ok := m.GetResult(indexOf(m, r.Index))
		require.True(t, ok)
		_ = item
	}
	// "apple" and "grape" both fuzzy-match "ap"; "banana" doesn't.
	names := map[string]bool{}
	for i := 0; i < m.ResultCount(); i++ {
		v, ok := m.GetResult(i)
		require.True(t, ok)
		names[v] = true
	}
	assert.True(t, names["apple"])
	assert.True(t, names["grape"])
	assert.False(t, names["banana"])
}

func indexOf(m *Matcher[string], idx uint32) int {
	for i := 0; i < m.ResultCount(); i++ {
		r := m.Results(1, i)
		if len(r) == 1 && r[0].Index == idx {
			return i
		}
	}
	return -1
}

func TestFindIsIdempotent(t *testing.T) {
	m := New(haystack)
	inj := m.Injector()
	inj.Push("a")
	drainUntilQuiet(t, m)

	m.Find(NewPattern("a", Fuzzy))
	drainUntilQuiet(t, m)
	before := m.ResultCount()

	m.Find(NewPattern("a", Fuzzy)) // same pattern: no-op
	after := m.ResultCount()
	assert.Equal(t, before, after)
}

func TestRankedOrderScoreDescIndexAsc(t *testing.T) {
	m := New(haystack)
	inj := m.Injector()
	inj.Push("xabc")
	inj.Push("abc")
	inj.Push("aXbXc")
	drainUntilQuiet(t, m)

	m.Find(NewPattern("abc", Fuzzy))
	drainUntilQuiet(t, m)

	results := m.Results(10, 0)
	require.Len(t, results, 3)
	for i := 1; i < len(results); i++ {
		assert.GreaterOrEqual(t, results[i-1].Score, results[i].Score)
	}
}

func TestSubstringModeRequiresAllTerms(t *testing.T) {
	m := New(haystack)
	inj := m.Injector()
	inj.Push("hello world")
	inj.Push("hello there")
	drainUntilQuiet(t, m)

	m.Find(NewPattern("hello world", Substring))
	drainUntilQuiet(t, m)

	assert.Equal(t, 1, m.ResultCount())
}

func TestResultsPagination(t *testing.T) {
	m := New(haystack)
	inj := m.Injector()
	for i := 0; i < 10; i++ {
		inj.Push(fmt.Sprintf("abc%d", i))
	}
	drainUntilQuiet(t, m)
	m.Find(NewPattern("abc", Fuzzy))
	drainUntilQuiet(t, m)

	page1 := m.Results(5, 0)
	page2 := m.Results(5, 5)
	assert.Len(t, page1, 5)
	assert.Len(t, page2, 5)
}

func TestEmptyPatternMatchesEverything(t *testing.T) {
	m := New(haystack)
	inj := m.Injector()
	inj.Push("x")
	inj.Push("y")
	drainUntilQuiet(t, m)

	m.Find(NewPattern("", Fuzzy))
	drainUntilQuiet(t, m)
	assert.Equal(t, 2, m.ResultCount())
}
