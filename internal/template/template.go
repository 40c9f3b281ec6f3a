// Package template implements the `{}` / `{N}` / `{op:arg}` template
// grammar used for a channel's source, display, output, and preview
// templates. Parsing happens once at channel-prototype load time;
// rendering happens on the hot path (every keystroke for display
// templates, every preview request for preview templates).
//
// Grounded on the teacher's placeholder pipeline: src/tokenizer.go's
// Tokenize/Transform (field splitting and range selection) and
// src/command.go's replacePlaceholder (the {}/{N}/{q} substitution
// pass), generalized from fzf's fixed placeholder set to the spec's
// open-ended `{op:arg}` string-operation pipeline.
package template

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/tvfind/tv/internal/errs"
)

// Hole kinds.
type holeKind int

const (
	holeWhole holeKind = iota
	holeField
	holeOp
)

type hole struct {
	kind holeKind
	// holeField
	field int
	// holeOp
	op   string
	args []string
}

type segment struct {
	literal string
	isHole  bool
	hole    hole
}

// Template is a parsed template: literal segments interleaved with hole
// segments. Templates are pure and side-effect-free once parsed.
type Template struct {
	source   string
	segments []segment
}

// Source returns the original, unparsed template string.
func (t *Template) Source() string { return t.source }

var builtinOps = map[string]func(args []string, s string) (string, error){
	"upper": func(args []string, s string) (string, error) { return strings.ToUpper(s), nil },
	"lower": func(args []string, s string) (string, error) { return strings.ToLower(s), nil },
	"trim":  func(args []string, s string) (string, error) { return strings.TrimSpace(s), nil },
	"basename": func(args []string, s string) (string, error) {
		s = strings.TrimRight(s, "/")
		if idx := strings.LastIndex(s, "/"); idx >= 0 {
			return s[idx+1:], nil
		}
		return s, nil
	},
	"split": func(args []string, s string) (string, error) {
		if len(args) != 2 {
			return "", errors.New("split requires <sep>:<idx>")
		}
		sep := args[0]
		idx, err := strconv.Atoi(args[1])
		if err != nil {
			return "", errors.Wrap(err, "split index")
		}
		parts := strings.Split(s, sep)
		if idx < 0 {
			idx += len(parts)
		}
		if idx < 0 || idx >= len(parts) {
			return "", nil
		}
		return parts[idx], nil
	},
}

// Parse parses a template string. Unknown ops fail the prototype at load
// (per spec: implementations may extend the op set, but unknown ops are a
// load-time error, not a silent no-op).
func Parse(src string) (*Template, error) {
	t := &Template{source: src}
	i := 0
	n := len(src)
	var lit strings.Builder
	flushLit := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{literal: lit.String()})
			lit.Reset()
		}
	}
	for i < n {
		c := src[i]
		if c == '\\' && i+1 < n && src[i+1] == '{' {
			lit.WriteByte('{')
			i += 2
			continue
		}
		if c != '{' {
			lit.WriteByte(c)
			i++
			continue
		}
		end := strings.IndexByte(src[i:], '}')
		if end < 0 {
			return nil, errs.New(errs.KindConfig, "unterminated template hole in "+src)
		}
		body := src[i+1 : i+end]
		flushLit()
		h, err := parseHole(body)
		if err != nil {
			return nil, errs.Wrap(errs.KindConfig, err, "invalid template hole {"+body+"}")
		}
		t.segments = append(t.segments, segment{isHole: true, hole: h})
		i += end + 1
	}
	flushLit()
	return t, nil
}

func parseHole(body string) (hole, error) {
	if body == "" {
		return hole{kind: holeWhole}, nil
	}
	if n, err := strconv.Atoi(body); err == nil {
		return hole{kind: holeField, field: n}, nil
	}
	parts := strings.Split(body, ":")
	name := parts[0]
	args := parts[1:]
	if name == "" {
		return hole{}, errors.New("empty op name")
	}
	if _, ok := builtinOps[name]; !ok {
		return hole{}, errors.Errorf("unknown template operation %q", name)
	}
	return hole{kind: holeOp, op: name, args: args}, nil
}

// Render renders the template against a single entry's raw text, using
// delim to split fields for {N} holes. Rendering fails only if a
// required field is out of range for a {N} hole and the index was given
// explicitly (negative indices count from the end; both kinds are
// treated the same — "explicitly referencing an out-of-range index" is
// only a hard failure for {N}; {op} ops degrade to empty string on
// malformed input instead, matching the teacher's tolerant placeholder
// substitution).
func (t *Template) Render(raw, delim string) (string, error) {
	var out strings.Builder
	fields := strings.Split(raw, delim)
	for _, seg := range t.segments {
		if !seg.isHole {
			out.WriteString(seg.literal)
			continue
		}
		switch seg.hole.kind {
		case holeWhole:
			out.WriteString(raw)
		case holeField:
			// Spec defines {N} as the 0-based field after splitting; a
			// negative index counts from the end.
			fieldIdx := seg.hole.field
			if fieldIdx < 0 {
				fieldIdx += len(fields)
			}
			if fieldIdx < 0 || fieldIdx >= len(fields) {
				return "", errs.New(errs.KindConfig, "field index out of range in template "+t.source)
			}
			out.WriteString(fields[fieldIdx])
		case holeOp:
			fn := builtinOps[seg.hole.op]
			rendered, err := fn(seg.hole.args, raw)
			if err != nil {
				continue // malformed op input degrades to empty, not a hard failure
			}
			out.WriteString(rendered)
		}
	}
	return out.String(), nil
}

// RenderMulti renders the template against each of entries and joins the
// results with a single space, per the multi-entry rendering rule.
func (t *Template) RenderMulti(entries []string, delim string) (string, error) {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		r, err := t.Render(e, delim)
		if err != nil {
			return "", err
		}
		parts = append(parts, r)
	}
	return strings.Join(parts, " "), nil
}
