/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package driverslicense

import (
	"fmt"
	"github.com/pkg/errors"
)

// ErrorKind classifies why a driver's license couldn't be decoded.
type ErrorKind int

const (
	// InsufficientBytes means the input isn't exactly Size bytes.
	InsufficientBytes ErrorKind = iota + 1
	// UnknownVersion means the input doesn't start with a known magic prefix.
	UnknownVersion
	// MalformedField means the decrypted data ran out while reading a field.
	MalformedField
)

func (k ErrorKind) String() string {
	switch k {
	case InsufficientBytes:
		return "InsufficientBytes"
	case UnknownVersion:
		return "UnknownVersion"
	case MalformedField:
		return "MalformedField"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned for every decoding failure.
type Error struct {
	Kind ErrorKind
	// Field names the field being read when a MalformedField error occurred.
	Field string
	Err   error
}

func (e *Error) Error() string {
	switch e.Kind {
	case InsufficientBytes:
		return "invalid license (insufficient bytes)"
	case UnknownVersion:
		return "unrecognized license version"
	case MalformedField:
		if e.Err != nil {
			return fmt.Sprintf("malformed license field %s: %v", e.Field, e.Err)
		}
		return fmt.Sprintf("malformed license field %s", e.Field)
	}
	return e.Kind.String()
}

// Cause returns the underlying error, if any, for use with errors.Cause.
func (e *Error) Cause() error {
	return e.Err
}

// Unwrap returns the underlying error, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind of err, or 0 if err isn't an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func malformed(field string, err error) error {
	return &Error{Kind: MalformedField, Field: field, Err: err}
}
