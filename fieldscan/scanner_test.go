/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package fieldscan

import (
	"fmt"
	"github.com/intel/rsp-sw-toolkit-im-suite-expect"
	"github.com/pkg/errors"
	"testing"
)

// payload joins string and byte parts into a single slice.
func payload(parts ...interface{}) []byte {
	var data []byte
	for _, p := range parts {
		switch v := p.(type) {
		case string:
			data = append(data, v...)
		case byte:
			data = append(data, v)
		default:
			panic(fmt.Sprintf("unsupported part %T", p))
		}
	}
	return data
}

func TestScanner_ReadStrings(t *testing.T) {
	type stringsTest struct {
		name  string
		data  []byte
		count int
		exp   []string
		pos   int
	}

	for i, tt := range []stringsTest{
		{"two", payload("ABC", DelimExtra, "DEF", DelimEnd), 2, []string{"ABC", "DEF"}, 8},
		{"empty first dropped", payload("", DelimExtra, "X", DelimEnd), 2, []string{"X"}, 3},
		{"all empty", payload(DelimEnd, DelimEnd, DelimEnd), 3, []string{}, 3},
		{"stops at count", payload("A", DelimEnd, "B", DelimEnd, "C", DelimEnd), 2, []string{"A", "B"}, 4},
		{"unterminated kept", payload("A", DelimEnd, "BC"), 3, []string{"A", "BC"}, 4},
		{"unterminated empty", payload("A", DelimEnd), 3, []string{"A"}, 2},
		{"no data", nil, 3, []string{}, 0},
		{"high bytes", payload(byte(0xC9), "A", DelimEnd), 1, []string{"ÉA"}, 3},
	} {
		t.Run(fmt.Sprintf("%02d_%s", i, tt.name), func(t *testing.T) {
			w := expect.WrapT(t)
			s := NewScanner(tt.data)
			w.ShouldBeEqual(s.ReadStrings(tt.count), tt.exp)
			w.ShouldBeEqual(s.Pos(), tt.pos)
		})
	}
}

func TestScanner_ReadString(t *testing.T) {
	w := expect.WrapT(t).StopOnMismatch()
	s := NewScanner(payload("SMITH", DelimEnd, "JD", DelimExtra, DelimEnd, "ZA"))

	str, delim, err := s.ReadString()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(str, "SMITH")
	w.ShouldBeEqual(delim, DelimEnd)

	str, delim, err = s.ReadString()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(str, "JD")
	w.ShouldBeEqual(delim, DelimExtra)

	str, delim, err = s.ReadString()
	w.ShouldSucceed(err)
	w.ShouldBeEqual(str, "")
	w.ShouldBeEqual(delim, DelimEnd)

	str, _, err = s.ReadString()
	w.ShouldFail(err)
	w.ShouldBeEqual(errors.Cause(err), ErrUnexpectedEnd)
	w.ShouldBeEqual(str, "ZA")
	w.ShouldBeEqual(s.Remaining(), 0)
}

func TestScanner_ReadRaw(t *testing.T) {
	w := expect.WrapT(t).StopOnMismatch()
	s := NewScanner(payload("8001015009087", byte(0x02), byte(0xE9)))

	w.ShouldBeEqual(w.ShouldHaveResult(s.ReadRaw(13)), "8001015009087")
	w.ShouldBeEqual(w.ShouldHaveResult(s.ReadByte()), byte(0x02))
	w.ShouldBeEqual(s.Pos(), 14)

	// not enough left: nothing is consumed
	_, err := s.ReadRaw(2)
	w.ShouldFail(err)
	w.ShouldBeEqual(errors.Cause(err), ErrUnexpectedEnd)
	w.ShouldBeEqual(s.Pos(), 14)

	// bytes map to code points, not UTF-8
	w.ShouldBeEqual(w.ShouldHaveResult(s.ReadRaw(1)), "é")
	w.ShouldHaveError(s.ReadByte())
	w.ShouldHaveError(s.ReadRaw(-1))
}

func TestScanner_Skip(t *testing.T) {
	w := expect.WrapT(t)
	s := NewScanner(make([]byte, 5))
	w.ShouldSucceed(s.Skip(3))
	w.ShouldBeEqual(s.Pos(), 3)
	w.ShouldFail(s.Skip(3))
	w.ShouldBeEqual(s.Pos(), 3)
	w.ShouldSucceed(s.Skip(2))
	w.ShouldBeEqual(s.Remaining(), 0)
}

func TestScanner_SeekPast(t *testing.T) {
	w := expect.WrapT(t)

	s := NewScanner([]byte{0x00, 0x11, 0x82, 0x03, 0x82, 0x05})
	s.SeekPast(0x82, 2)
	w.As("first occurrence").ShouldBeEqual(s.Pos(), 4)

	s = NewScanner([]byte{0x00, 0x11, 0x22})
	s.SeekPast(0x82, 2)
	w.As("no marker").ShouldBeEqual(s.Pos(), 2)

	s = NewScanner([]byte{0x82, 0x01, 0x02, 0x03})
	w.ShouldSucceed(s.Skip(3))
	s.SeekPast(0x82, 2)
	w.As("never rewinds").ShouldBeEqual(s.Pos(), 3)
}

func TestScanner_ReadUntil(t *testing.T) {
	w := expect.WrapT(t)

	s := NewScanner([]byte{0x12, 0x34, 0x57, 0x00, 0x01})
	w.ShouldBeEqual(s.ReadUntil(0x57), []byte{0x12, 0x34})
	w.ShouldBeEqual(s.Pos(), 3)

	w.ShouldBeEqual(s.ReadUntil(0x57), []byte{0x00, 0x01})
	w.ShouldBeEqual(s.Remaining(), 0)
	w.ShouldBeEqual(s.ReadUntil(0x57), []byte{})
}

func TestCodepoints(t *testing.T) {
	w := expect.WrapT(t)
	w.ShouldBeEqual(Codepoints([]byte("plain")), "plain")
	w.ShouldBeEqual(Codepoints([]byte{0x4D, 0xFC, 0x6C}), "Mül")
	w.ShouldBeEqual(Codepoints(nil), "")
}
