// Package input implements the input map (C7): the key-string grammar
// shared by config files and the CLI, and the event-to-actions binding
// table built from it.
//
// Grounded on the teacher's src/tui/tui.go key-event vocabulary
// (Ctrl*/Alt*/F1-F12/arrow constants) and src/terminal.go's
// defaultKeymap, generalized from fzf's closed Event/actionType pair to
// the spec's named-action vocabulary and symmetric `ctrl-alt-a`-style key
// string grammar.
package input

import (
	"sort"
	"strings"

	"github.com/tvfind/tv/internal/errs"
)

// KeyCombination is a parsed key event: a base key plus modifier flags.
type KeyCombination struct {
	Key   string // "esc", "enter", "a", "1", "f5", ...
	Ctrl  bool
	Alt   bool
	Shift bool
	Super bool
}

var modifierPrefixes = []struct {
	prefix string
	apply  func(*KeyCombination)
}{
	{"ctrl-", func(k *KeyCombination) { k.Ctrl = true }},
	{"alt-", func(k *KeyCombination) { k.Alt = true }},
	{"shift-", func(k *KeyCombination) { k.Shift = true }},
	{"cmd-", func(k *KeyCombination) { k.Super = true }},
	{"super-", func(k *KeyCombination) { k.Super = true }},
}

var namedKeys = map[string]bool{
	"esc": true, "enter": true, "tab": true, "backtab": true,
	"left": true, "right": true, "up": true, "down": true,
	"home": true, "end": true, "pageup": true, "pagedown": true,
	"backspace": true, "delete": true, "insert": true, "space": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true, "f6": true,
	"f7": true, "f8": true, "f9": true, "f10": true, "f11": true, "f12": true,
}

// ParseKey parses a key string per spec.md §4.7's grammar: modifiers
// prefix the key and combine (`ctrl-alt-a`), named keys are a fixed
// vocabulary, and any single character is its own key.
func ParseKey(s string) (KeyCombination, error) {
	var k KeyCombination
	rest := s
	for {
		matched := false
		for _, m := range modifierPrefixes {
			if strings.HasPrefix(rest, m.prefix) {
				m.apply(&k)
				rest = rest[len(m.prefix):]
				matched = true
				break
			}
		}
		if !matched {
			break
		}
	}
	if rest == "" {
		return KeyCombination{}, errs.New(errs.KindConfig, "empty key in binding "+s)
	}
	if namedKeys[rest] || len([]rune(rest)) == 1 {
		k.Key = rest
		return k, nil
	}
	return KeyCombination{}, errs.New(errs.KindConfig, "unrecognized key "+rest+" in binding "+s)
}

// Format renders a KeyCombination back to its canonical string, in fixed
// modifier order (ctrl, alt, shift, super) so parse/format round-trips.
func (k KeyCombination) Format() string {
	var b strings.Builder
	if k.Ctrl {
		b.WriteString("ctrl-")
	}
	if k.Alt {
		b.WriteString("alt-")
	}
	if k.Shift {
		b.WriteString("shift-")
	}
	if k.Super {
		b.WriteString("super-")
	}
	b.WriteString(k.Key)
	return b.String()
}

// EventKind tags the input event union.
type EventKind int

const (
	EventKey EventKind = iota
	EventMouse
	EventResize
	EventCustom
	// EventTick is a synthetic, no-op-for-dispatch wakeup emitted by a
	// renderer with a configured tick rate so the app loop re-renders
	// while the matcher is still scoring in the background.
	EventTick
)

// Event is the tagged union of input events the app loop consumes.
type Event struct {
	Kind EventKind
	Key  KeyCombination

	MouseKind string
	Col, Row  int

	Width, Height int

	CustomName string
}

// Map binds input events to ordered lists of action names. Keys are the
// canonical Format() of a KeyCombination, or "custom:<name>" for named
// events.
type Map struct {
	bindings map[string][]string
}

// NewMap builds a Map from a resolved keybindings table (action -> list
// of key strings), inverting it into key -> ordered actions.
func NewMap(keybindings map[string][]string) (*Map, error) {
	m := &Map{bindings: map[string][]string{}}
	// Deterministic iteration so a key bound to several actions keeps all
	// of them in action-name order, rather than in map-iteration order.
	actions := make([]string, 0, len(keybindings))
	for a := range keybindings {
		actions = append(actions, a)
	}
	sort.Strings(actions)
	for _, action := range actions {
		for _, keyStr := range keybindings[action] {
			kc, err := ParseKey(keyStr)
			if err != nil {
				return nil, err
			}
			canonical := kc.Format()
			m.bindings[canonical] = append(m.bindings[canonical], action)
		}
	}
	return m, nil
}

// Resolve maps an event to zero, one, or many actions. Zero actions for
// a printable key means "fall back to text input"; the caller is
// responsible for emitting AddInputChar in that case.
func (m *Map) Resolve(e Event) []string {
	if e.Kind != EventKey {
		return nil
	}
	return m.bindings[e.Key.Format()]
}
