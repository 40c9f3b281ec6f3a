// Package remote implements the remote-control mode (C11): a secondary
// picker over the cable directory's channel catalog, reusing the same
// streaming matcher the main results pane uses.
//
// Grounded on the channel-switch plumbing in the teacher's src/core.go
// and src/terminal.go (there is no "second matcher" in fzf, since fzf
// has no channel concept; this package is new, built in the teacher's
// idiom of feeding a matcher's injector once at startup and re-finding
// on every query change, exactly like C2/C3 do for the main pane).
package remote

import (
	"github.com/tvfind/tv/internal/cable"
	"github.com/tvfind/tv/internal/matcher"
)

// Item is the matchable unit in the remote picker: a channel name plus
// its description, concatenated for display so both are searchable.
type Item struct {
	Name        string
	Description string
}

func (i Item) searchText() string {
	if i.Description == "" {
		return i.Name
	}
	return i.Name + "  " + i.Description
}

// Picker wraps a Matcher[Item] seeded from a cable.Catalog snapshot.
type Picker struct {
	matcher *matcher.Matcher[Item]
}

// New builds a Picker from the catalog's current prototypes. The catalog
// is read once, at construction: a running remote picker does not
// observe later cable directory reloads, and reopening remote control
// mode only re-runs the query over the same items.
func New(catalog *cable.Catalog) *Picker {
	m := matcher.New(func(it Item) string { return it.searchText() })
	inj := m.Injector()
	for _, p := range catalog.All() {
		inj.Push(Item{Name: p.Name, Description: p.Description})
	}
	return &Picker{matcher: m}
}

// Find re-runs the picker's fuzzy search against query.
func (p *Picker) Find(query string) {
	p.matcher.Find(matcher.NewPattern(query, matcher.Fuzzy))
}

// Tick drains pending scoring work; callers poll it on the same cadence
// as the main matcher (spec.md's tick_rate).
func (p *Picker) Tick() matcher.Status {
	return p.matcher.Tick()
}

// Results returns up to limit ranked channel names starting at offset.
func (p *Picker) Results(offset, limit int) []Item {
	out := make([]Item, 0, limit)
	for i := offset; i < offset+limit; i++ {
		it, ok := p.matcher.GetResult(i)
		if !ok {
			break
		}
		out = append(out, it)
	}
	return out
}

// ResultCount returns the number of entries currently matching the
// picker's pattern.
func (p *Picker) ResultCount() int {
	return p.matcher.ResultCount()
}
