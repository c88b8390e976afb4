// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Internal constants and character class predicates used by the emitter.
// All predicates take a buffer and an index and are false past the end of
// the buffer.

package libyaml

const (
	outputBufferSize = 128 // Bytes buffered before the write handler is called.

	initialStackSize = 16
	initialQueueSize = 16
)

// Check if the character at the specified position is an alphabetical
// character, a digit, '_', or '-'.
func isAlpha(b []byte, i int) bool {
	if i >= len(b) {
		return false
	}
	c := b[i]
	return c >= '0' && c <= '9' || c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '_' || c == '-'
}

// Check if the character at the start of the buffer can be printed unescaped.
func isPrintable(b []byte, i int) bool {
	if i >= len(b) {
		return false
	}
	at := func(k int) byte {
		if i+k < len(b) {
			return b[i+k]
		}
		return 0
	}
	c := b[i]
	return c == 0x0A || // . == #x0A
		c >= 0x20 && c <= 0x7E || // #x20 <= . <= #x7E
		c == 0xC2 && at(1) >= 0xA0 || // #0xA0 <= . <= #xD7FF
		c > 0xC2 && c < 0xED ||
		c == 0xED && at(1) < 0xA0 ||
		c == 0xEE ||
		c == 0xEF && // #xE000 <= . <= #xFFFD
			!(at(1) == 0xBB && at(2) == 0xBF) && // && . != #xFEFF
			!(at(1) == 0xBF && (at(2) == 0xBE || at(2) == 0xBF))
}

// Check if the character at the specified position is NUL.
func isZeroChar(b []byte, i int) bool {
	return i < len(b) && b[i] == 0x00
}

// Check if the beginning of the buffer is a BOM.
func isBOM(b []byte, i int) bool {
	return i+2 < len(b) && b[i] == 0xEF && b[i+1] == 0xBB && b[i+2] == 0xBF
}

// Check if the character at the specified position is space.
func isSpace(b []byte, i int) bool {
	return i < len(b) && b[i] == ' '
}

// Check if the character at the specified position is tab.
func isTab(b []byte, i int) bool {
	return i < len(b) && b[i] == '\t'
}

// Check if the character at the specified position is blank (space or tab).
func isBlank(b []byte, i int) bool {
	return isSpace(b, i) || isTab(b, i)
}

// Check if the character at the specified position is a line break.
func isLineBreak(b []byte, i int) bool {
	if i >= len(b) {
		return false
	}
	switch b[i] {
	case '\r', '\n':
		return true
	case 0xC2: // NEL (#x85)
		return i+1 < len(b) && b[i+1] == 0x85
	case 0xE2: // LS (#x2028), PS (#x2029)
		return i+2 < len(b) && b[i+1] == 0x80 && (b[i+2] == 0xA8 || b[i+2] == 0xA9)
	}
	return false
}

// Check if the character is a line break or NUL.
func isBreakOrZero(b []byte, i int) bool {
	return isLineBreak(b, i) || isZeroChar(b, i)
}

// Check if the character is a line break, space, tab, or NUL.
// The end of the buffer counts as NUL.
func isBlankOrZero(b []byte, i int) bool {
	return i >= len(b) || isBlank(b, i) || isBreakOrZero(b, i)
}

// Check if the character at the specified position is ASCII.
func isASCII(b []byte, i int) bool {
	return i < len(b) && b[i] <= 0x7F
}

// Determine the width of the character.
func width(b byte) int {
	// Don't replace these by a switch without first
	// confirming that it is being inlined.
	if b&0x80 == 0x00 {
		return 1
	}
	if b&0xE0 == 0xC0 {
		return 2
	}
	if b&0xF0 == 0xE0 {
		return 3
	}
	if b&0xF8 == 0xF0 {
		return 4
	}
	return 0
}
