// Package brace implements shell-style brace expansion for glob patterns.
//
// Supported forms are comma alternatives ({a,b,c}), numeric ranges
// ({1..5}, {10..0..2}) and arbitrary nesting of both. Expansion is bounded
// by a nesting depth cap and a total output count cap so that hostile
// patterns cannot exhaust memory.
package brace

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxDepth is the maximum brace nesting depth.
	MaxDepth = 8
	// MaxExpansions is the maximum number of strings a single pattern
	// may expand into.
	MaxExpansions = 65536
)

var (
	// ErrDepth is returned when a pattern nests braces deeper than MaxDepth.
	ErrDepth = errors.New("brace expansion exceeded maximum depth")
	// ErrCount is returned when a pattern would expand into more than
	// MaxExpansions strings.
	ErrCount = errors.New("brace expansion exceeded maximum expansions")
)

// Expand expands all brace groups in input into the full list of literal
// patterns. Output order is the lexical left-to-right cartesian enumeration.
// Malformed brace groups are left in place as literal text. Escaped braces
// (\{ and \}) never open or close a group and are preserved verbatim.
func Expand(input string) ([]string, error) {
	n := 0
	return expand(input, 0, &n)
}

func expand(input string, depth int, produced *int) ([]string, error) {
	if depth > MaxDepth {
		return nil, ErrDepth
	}

	st, en, ok := findGroup(input)
	if !ok {
		return []string{input}, nil
	}

	before := input[:st]
	inner := input[st+1 : en]
	after := input[en+1:]

	items, grouped := splitAlternatives(inner)

	// {x} with no top-level comma and no range form is not a group;
	// keep the braces and continue with the tail.
	if !grouped {
		if _, isRange := parseRange(inner); !isRange {
			mids, err := expand(inner, depth+1, produced)
			if err != nil {
				return nil, err
			}
			sufs, err := expand(after, depth+1, produced)
			if err != nil {
				return nil, err
			}
			var out []string
			for _, mid := range mids {
				for _, suf := range sufs {
					out = append(out, before+"{"+mid+"}"+suf)
					*produced++
					if *produced > MaxExpansions {
						return nil, ErrCount
					}
				}
			}
			return out, nil
		}
	}

	// Rewrite numeric ranges into plain alternatives.
	var alts []string
	for _, it := range items {
		if r, isRange := parseRange(it); isRange {
			vals, err := r.enumerate(produced)
			if err != nil {
				return nil, err
			}
			alts = append(alts, vals...)
		} else {
			alts = append(alts, it)
		}
	}

	sufs, err := expand(after, depth+1, produced)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, alt := range alts {
		mids, err := expand(alt, depth+1, produced)
		if err != nil {
			return nil, err
		}
		for _, mid := range mids {
			for _, suf := range sufs {
				out = append(out, before+mid+suf)
				*produced++
				if *produced > MaxExpansions {
					return nil, ErrCount
				}
			}
		}
	}
	return out, nil
}

// findGroup locates the first balanced top-level brace pair, skipping
// escaped braces. Returns ok=false when no complete pair exists.
func findGroup(s string) (start, end int, ok bool) {
	depth := 0
	start = -1
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++ // skip escaped character
		case '{':
			if depth == 0 {
				start = i
			}
			depth++
		case '}':
			if depth == 0 {
				continue // unbalanced close, literal
			}
			depth--
			if depth == 0 {
				return start, i, true
			}
		}
	}
	return 0, 0, false
}

// splitAlternatives splits a group body at top-level commas. grouped
// reports whether at least one top-level comma was present.
func splitAlternatives(inner string) (items []string, grouped bool) {
	depth := 0
	var buf strings.Builder
	for i := 0; i < len(inner); i++ {
		c := inner[i]
		switch {
		case c == '\\':
			buf.WriteByte(c)
			if i+1 < len(inner) {
				i++
				buf.WriteByte(inner[i])
			}
		case c == ',' && depth == 0:
			items = append(items, buf.String())
			buf.Reset()
			grouped = true
		default:
			if c == '{' {
				depth++
			} else if c == '}' && depth > 0 {
				depth--
			}
			buf.WriteByte(c)
		}
	}
	items = append(items, buf.String())
	return items, grouped
}

type numRange struct {
	start, end, step int64
	width            int // zero-pad width, 0 for none
}

// parseRange recognizes {a..b} and {a..b..s} bodies.
func parseRange(s string) (numRange, bool) {
	parts := strings.Split(s, "..")
	if len(parts) != 2 && len(parts) != 3 {
		return numRange{}, false
	}
	a, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return numRange{}, false
	}
	b, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return numRange{}, false
	}
	step := int64(1)
	if len(parts) == 3 {
		step, err = strconv.ParseInt(parts[2], 10, 64)
		if err != nil || step == 0 {
			return numRange{}, false
		}
		if step < 0 {
			step = -step
		}
	}
	if a > b {
		step = -step
	}
	width := 0
	if len(parts[0]) == len(parts[1]) && len(parts[0]) > 1 {
		width = len(parts[0])
	}
	return numRange{start: a, end: b, step: step, width: width}, true
}

func (r numRange) enumerate(produced *int) ([]string, error) {
	var out []string
	for v := r.start; (r.step > 0 && v <= r.end) || (r.step < 0 && v >= r.end); v += r.step {
		out = append(out, r.format(v))
		*produced++
		if *produced > MaxExpansions {
			return nil, ErrCount
		}
	}
	return out, nil
}

func (r numRange) format(v int64) string {
	if r.width > 0 {
		return fmt.Sprintf("%0*d", r.width, v)
	}
	return strconv.FormatInt(v, 10)
}
