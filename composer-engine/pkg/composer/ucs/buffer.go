// Package ucs implements a code-unit-indexed string abstraction: the
// UnicodeBuffer of the composer engine. The code-unit width is a Go type
// parameter (CodeUnit) rather than a fixed choice, so a host can pick
// 8-, 16-, or 32-bit units and every offset the engine hands back is
// expressed in that unit; 16-bit (UTF-16 semantics) is the conventional
// host-facing choice and the one exercised by the default constructors in
// package composer.
package ucs

import (
	"unicode/utf16"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/graphemes"
)

// CodeUnit is the set of integer widths a UnicodeBuffer may be indexed in.
type CodeUnit interface {
	~uint8 | ~uint16 | ~uint32
}

// Len returns the length of s in code units of width U.
func Len[U CodeUnit](s string) int {
	var zero U
	switch any(zero).(type) {
	case uint8:
		return len(s)
	case uint16:
		return utf16Len(s)
	case uint32:
		return utf8.RuneCountInString(s)
	default:
		return len(s)
	}
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}

// boundaries returns, for s, the strictly increasing list of byte offsets
// at which a code unit of width U begins, plus a final entry equal to
// len(s). len(boundaries)-1 equals Len[U](s).
func boundaries[U CodeUnit](s string) []int {
	var zero U
	switch any(zero).(type) {
	case uint8:
		b := make([]int, len(s)+1)
		for i := range b {
			b[i] = i
		}
		return b
	case uint32:
		b := make([]int, 0, utf8.RuneCountInString(s)+1)
		for i := range s {
			b = append(b, i)
		}
		b = append(b, len(s))
		return b
	default: // uint16
		b := make([]int, 0, len(s)+1)
		for i, r := range s {
			b = append(b, i)
			if utf16.RuneLen(r) == 2 {
				// the rune occupies a surrogate pair; the second unit has
				// no distinct byte offset of its own, so we synthesize one
				// pointing at the same rune start. Byte-level slicing at
				// this synthetic boundary is not meaningful and callers
				// must not slice mid-surrogate-pair.
				b = append(b, i)
			}
		}
		b = append(b, len(s))
		return b
	}
}

// Slice returns the substring of s spanning code units [start, end).
func Slice[U CodeUnit](s string, start, end int) string {
	b := boundaries[U](s)
	if start < 0 {
		start = 0
	}
	if end > len(b)-1 {
		end = len(b) - 1
	}
	if start >= end {
		return ""
	}
	return s[b[start]:b[end]]
}

// ByteOffset returns the byte offset into s corresponding to code-unit
// position unitPos, clamped to [0, len(s)].
func ByteOffset[U CodeUnit](s string, unitPos int) int {
	b := boundaries[U](s)
	if unitPos < 0 {
		return 0
	}
	if unitPos > len(b)-1 {
		return len(s)
	}
	return b[unitPos]
}

// Insert returns s with ins inserted before code unit position at.
func Insert[U CodeUnit](s string, at int, ins string) string {
	b := boundaries[U](s)
	if at < 0 {
		at = 0
	}
	if at > len(b)-1 {
		at = len(b) - 1
	}
	return s[:b[at]] + ins + s[b[at]:]
}

// GraphemeBoundaries returns the code-unit offsets, in ascending order, of
// every grapheme cluster boundary in s, including 0 and Len[U](s).
func GraphemeBoundaries[U CodeUnit](s string) []int {
	if s == "" {
		return []int{0}
	}
	byteToUnit := make(map[int]int, len(s)+1)
	b := boundaries[U](s)
	for unit, byteOff := range b {
		if _, ok := byteToUnit[byteOff]; !ok {
			byteToUnit[byteOff] = unit
		}
	}

	offsets := []int{0}
	pos := 0
	seg := graphemes.FromString(s)
	for seg.Next() {
		pos += len(seg.Value())
		if u, ok := byteToUnit[pos]; ok {
			offsets = append(offsets, u)
		} else {
			offsets = append(offsets, Len[U](s[:pos]))
		}
	}
	if last := offsets[len(offsets)-1]; last != Len[U](s) {
		offsets = append(offsets, Len[U](s))
	}
	return offsets
}

// StepForward returns the code-unit offset of the grapheme boundary after
// pos, or Len[U](s) if pos is already at or past the end.
func StepForward[U CodeUnit](s string, pos int) int {
	bs := GraphemeBoundaries[U](s)
	for _, b := range bs {
		if b > pos {
			return b
		}
	}
	return Len[U](s)
}

// StepBackward returns the code-unit offset of the grapheme boundary
// before pos, or 0 if pos is already at or before the start.
func StepBackward[U CodeUnit](s string, pos int) int {
	bs := GraphemeBoundaries[U](s)
	prev := 0
	for _, b := range bs {
		if b >= pos {
			break
		}
		prev = b
	}
	return prev
}
