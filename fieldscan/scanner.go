/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package fieldscan reads the fields of a decrypted driver's license payload.
//
// Fields aren't self-describing: the payload is a run of variable-length
// strings, each terminated by one of two delimiter bytes, followed by
// fixed-width raw fields. A Scanner keeps a cursor into the payload which every
// read advances; it never moves backward.
//
// String bytes are mapped directly onto Unicode code points (0x41 -> 'A',
// 0xC9 -> 'É'), rather than decoded as UTF-8.
package fieldscan

import (
	"github.com/pkg/errors"
	"strings"
)

const (
	// DelimExtra terminates a string and signals that an optional field
	// follows it.
	DelimExtra = byte(0xE0)
	// DelimEnd terminates a string.
	DelimEnd = byte(0xE1)
)

// ErrUnexpectedEnd is the cause of every error returned when the payload ends
// before a field is complete.
var ErrUnexpectedEnd = errors.New("unexpected end of data")

// IsDelimiter returns true if b terminates a string field.
func IsDelimiter(b byte) bool {
	return b == DelimExtra || b == DelimEnd
}

// Scanner reads consecutive fields from a byte slice.
//
// A Scanner is not safe for concurrent use.
type Scanner struct {
	data []byte
	pos  int
}

// NewScanner returns a Scanner positioned at the start of data.
func NewScanner(data []byte) *Scanner {
	return &Scanner{data: data}
}

// Pos returns the index of the next byte the Scanner will read.
func (s *Scanner) Pos() int {
	return s.pos
}

// Remaining returns the number of unread bytes.
func (s *Scanner) Remaining() int {
	return len(s.data) - s.pos
}

// SeekPast moves the cursor to offset bytes past the first occurrence of marker
// in the whole payload. If there's no such byte, the cursor is set to offset.
//
// The search always starts at the beginning of the payload, but the cursor only
// moves forward: a result before the current position leaves it unchanged.
func (s *Scanner) SeekPast(marker byte, offset int) {
	idx := 0
	for i, b := range s.data {
		if b == marker {
			idx = i
			break
		}
	}
	if idx+offset > s.pos {
		s.pos = idx + offset
	}
}

// ReadStrings reads up to count delimited strings.
//
// Empty strings are dropped, so the result may have fewer than count entries.
// If the data ends before the last delimiter, the partially read string is kept
// (unless it's empty) and the reading stops without an error.
func (s *Scanner) ReadStrings(count int) []string {
	strs := make([]string, 0, count)
	for i := 0; i < count; i++ {
		str, _, err := s.ReadString()
		if str != "" {
			strs = append(strs, str)
		}
		if err != nil {
			break
		}
	}
	return strs
}

// ReadString reads a single string up to the next delimiter, and returns the
// string and the delimiter that ended it. The delimiter is consumed.
//
// If the data ends first, the partially read string is returned along with an
// error.
func (s *Scanner) ReadString() (string, byte, error) {
	b := strings.Builder{}
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		if IsDelimiter(c) {
			return b.String(), c, nil
		}
		b.WriteRune(rune(c))
	}
	return b.String(), 0, errors.Wrapf(ErrUnexpectedEnd,
		"no delimiter after %d bytes", b.Len())
}

// ReadRaw reads exactly n bytes, mapping each byte to the code point with the
// same value.
func (s *Scanner) ReadRaw(n int) (string, error) {
	raw, err := s.take(n)
	if err != nil {
		return "", err
	}
	return Codepoints(raw), nil
}

// ReadByte reads a single byte.
func (s *Scanner) ReadByte() (byte, error) {
	raw, err := s.take(1)
	if err != nil {
		return 0, err
	}
	return raw[0], nil
}

// Skip advances the cursor by n bytes.
func (s *Scanner) Skip(n int) error {
	_, err := s.take(n)
	return err
}

// ReadUntil returns the bytes before the next term byte, and consumes the
// term byte. If there isn't one, it returns the rest of the data.
func (s *Scanner) ReadUntil(term byte) []byte {
	start := s.pos
	for s.pos < len(s.data) {
		c := s.data[s.pos]
		s.pos++
		if c == term {
			return s.data[start : s.pos-1]
		}
	}
	return s.data[start:]
}

func (s *Scanner) take(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.Errorf("invalid length %d", n)
	}
	if s.Remaining() < n {
		return nil, errors.Wrapf(ErrUnexpectedEnd,
			"need %d bytes at offset %d, but only %d remain", n, s.pos, s.Remaining())
	}
	raw := s.data[s.pos : s.pos+n]
	s.pos += n
	return raw, nil
}

// Codepoints maps each byte to the Unicode code point with the same value.
func Codepoints(data []byte) string {
	b := strings.Builder{}
	b.Grow(len(data))
	for _, c := range data {
		b.WriteRune(rune(c))
	}
	return b.String()
}
