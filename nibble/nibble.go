/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package nibble reads 4-bit packed values, such as the date fields of a
// driver's license barcode.
package nibble

import (
	"github.com/pkg/errors"
	"strconv"
	"strings"
)

const (
	Size = 4
	Mask = (1 << Size) - 1

	// Absent is the nibble value that marks a date group as not present.
	Absent = 10
)

// ErrEmpty is returned when reading from a Queue with no nibbles left.
var ErrEmpty = errors.New("nibble queue is empty")

// Split explodes each byte of data into its high nibble followed by its low
// nibble, preserving byte order.
func Split(data []byte) []uint8 {
	nibbles := make([]uint8, len(data)*2)
	for i, b := range data {
		nibbles[2*i] = b >> Size
		nibbles[2*i+1] = b & Mask
	}
	return nibbles
}

// Queue hands out nibbles in order. It's a view over a fixed slice: reads
// advance an index rather than shrinking the slice.
//
// A Queue is not safe for concurrent use.
type Queue struct {
	nibbles []uint8
	next    int
}

// NewQueue returns a Queue over the nibbles of data.
func NewQueue(data []byte) *Queue {
	return &Queue{nibbles: Split(data)}
}

// Len returns the number of nibbles not yet read.
func (q *Queue) Len() int {
	return len(q.nibbles) - q.next
}

// Pop removes and returns the next nibble, or ErrEmpty if there are none left.
func (q *Queue) Pop() (uint8, error) {
	if q.next >= len(q.nibbles) {
		return 0, ErrEmpty
	}
	n := q.nibbles[q.next]
	q.next++
	return n, nil
}

// ReadCode pops width nibbles and returns them concatenated as decimal values,
// so the nibbles 0, 1 become "01".
func (q *Queue) ReadCode(width int) (string, error) {
	b := strings.Builder{}
	if err := q.appendDigits(&b, width); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (q *Queue) appendDigits(b *strings.Builder, count int) error {
	for i := 0; i < count; i++ {
		n, err := q.Pop()
		if err != nil {
			return err
		}
		b.WriteString(strconv.Itoa(int(n)))
	}
	return nil
}
