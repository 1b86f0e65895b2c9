/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package nibble

import (
	"strconv"
	"strings"
)

// ReadDate reads one date group.
//
// If the first nibble is Absent, the group is empty and ReadDate returns ""
// without reading further. Otherwise the group is 8 nibbles, rendered one
// decimal value per nibble as "yyyy/mm/dd". No calendar validation is done.
func (q *Queue) ReadDate() (string, error) {
	first, err := q.Pop()
	if err != nil {
		return "", err
	}
	if first == Absent {
		return "", nil
	}

	b := strings.Builder{}
	b.Grow(10)
	b.WriteString(strconv.Itoa(int(first)))
	if err := q.appendDigits(&b, 3); err != nil {
		return "", err
	}
	b.WriteByte('/')
	if err := q.appendDigits(&b, 2); err != nil {
		return "", err
	}
	b.WriteByte('/')
	if err := q.appendDigits(&b, 2); err != nil {
		return "", err
	}
	return b.String(), nil
}

// ReadDateList reads count date groups and returns those that are present.
func (q *Queue) ReadDateList(count int) ([]string, error) {
	dates := make([]string, 0, count)
	for i := 0; i < count; i++ {
		d, err := q.ReadDate()
		if err != nil {
			return nil, err
		}
		if d != "" {
			dates = append(dates, d)
		}
	}
	return dates, nil
}
