/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package vehicle decodes the barcode on a vehicle license disc, which is
// plain text with fields separated by '%'.
package vehicle

import (
	"fmt"
	"github.com/pkg/errors"
	"strings"
	"unicode/utf8"
)

const (
	// Separator separates the fields of a vehicle license.
	Separator = "%"
	// MinParts is the number of fields a vehicle license must have.
	MinParts = 16
)

// field indices within the separated text
const (
	idxLicenseNumber  = 6
	idxRegisterNumber = 7
	idxDescription    = 8
	idxMake           = 9
	idxMakeDetail     = 10
	idxColor          = 11
	idxVIN            = 12
	idxEngineNumber   = 13
	idxExpiryDate     = 14
)

// ErrorKind classifies why a vehicle license couldn't be decoded.
type ErrorKind int

const (
	// InvalidText means the data isn't valid UTF-8.
	InvalidText ErrorKind = iota + 1
	// InsufficientParts means the text has fewer than MinParts fields.
	InsufficientParts
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidText:
		return "InvalidText"
	case InsufficientParts:
		return "InsufficientParts"
	}
	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Error is returned for every decoding failure.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case InvalidText:
		if e.Err != nil {
			return fmt.Sprintf("invalid UTF-8: %v", e.Err)
		}
		return "invalid UTF-8"
	case InsufficientParts:
		return "input data does not contain enough parts"
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

// Record is a decoded vehicle license.
type Record struct {
	Make                  string `json:"make"`
	Description           string `json:"description"`
	Color                 string `json:"color"`
	LicenseNumber         string `json:"license_number"`
	VINNumber             string `json:"vin_number"`
	VehicleRegisterNumber string `json:"vehicle_register_number"`
	EngineNumber          string `json:"engine_number"`
	ExpiryDate            string `json:"expiry_date"`
}

// Decode decodes the raw bytes of a vehicle license barcode.
func Decode(data []byte) (*Record, error) {
	if !utf8.Valid(data) {
		return nil, &Error{Kind: InvalidText, Err: errors.Errorf(
			"invalid byte sequence at offset %d", invalidOffset(data))}
	}
	return DecodeString(string(data))
}

// DecodeString decodes the text of a vehicle license barcode.
func DecodeString(text string) (*Record, error) {
	return FromParts(strings.Split(text, Separator))
}

// FromParts builds a Record from already separated fields.
func FromParts(parts []string) (*Record, error) {
	if len(parts) < MinParts {
		return nil, &Error{Kind: InsufficientParts, Err: errors.Errorf(
			"missing %d fields", MinParts-len(parts))}
	}

	return &Record{
		Make:                  parts[idxMake] + " " + parts[idxMakeDetail],
		Description:           parts[idxDescription],
		Color:                 parts[idxColor],
		LicenseNumber:         parts[idxLicenseNumber],
		VINNumber:             parts[idxVIN],
		VehicleRegisterNumber: parts[idxRegisterNumber],
		EngineNumber:          parts[idxEngineNumber],
		ExpiryDate:            parts[idxExpiryDate],
	}, nil
}

func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return len(data)
}
