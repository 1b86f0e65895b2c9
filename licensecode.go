/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package licensecode decodes license barcodes of either supported format and
// converts the results into a single error type and a JSON representation, so
// callers needn't deal with each decoder separately.
package licensecode

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/driverslicense"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/vehicle"
	"github.com/pkg/errors"
	"strings"
)

// Format names a barcode format.
type Format string

const (
	DriversLicense Format = "drivers"
	VehicleLicense Format = "vehicle"
)

// Formats lists every supported format.
var Formats = []Format{DriversLicense, VehicleLicense}

// ParseFormat returns the Format with the given name, ignoring case.
func ParseFormat(name string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", errors.Errorf("unknown format %q; expected one of %q", name, Formats)
}

// Kind classifies a decoding failure of any format.
type Kind int

const (
	// Internal covers failures that aren't caused by the input data.
	Internal Kind = iota
	InsufficientBytes
	UnknownVersion
	MalformedField
	InvalidText
	InsufficientParts
)

var kindNames = [...]string{
	Internal:          "Internal",
	InsufficientBytes: "InsufficientBytes",
	UnknownVersion:    "UnknownVersion",
	MalformedField:    "MalformedField",
	InvalidText:       "InvalidText",
	InsufficientParts: "InsufficientParts",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText encodes the Kind as its name.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Error is a decoding failure from either decoder.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	return e.Err.Error()
}

// Cause returns the decoder's original error.
func (e *Error) Cause() error {
	return e.Err
}

// Unwrap returns the decoder's original error.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of err, or Internal if err isn't an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// FromDriversLicense converts an error from the driverslicense package. It
// returns nil if err is nil.
func FromDriversLicense(err error) error {
	if err == nil {
		return nil
	}
	kind := Internal
	switch driverslicense.KindOf(err) {
	case driverslicense.InsufficientBytes:
		kind = InsufficientBytes
	case driverslicense.UnknownVersion:
		kind = UnknownVersion
	case driverslicense.MalformedField:
		kind = MalformedField
	}
	return &Error{Kind: kind, Err: err}
}

// FromVehicle converts an error from the vehicle package. It returns nil if
// err is nil.
func FromVehicle(err error) error {
	if err == nil {
		return nil
	}
	kind := Internal
	switch vehicle.KindOf(err) {
	case vehicle.InvalidText:
		kind = InvalidText
	case vehicle.InsufficientParts:
		kind = InsufficientParts
	}
	return &Error{Kind: kind, Err: err}
}

// Decode decodes data in the given format. The result is a
// *driverslicense.Record or a *vehicle.Record; errors are always an *Error.
func Decode(format Format, data []byte) (interface{}, error) {
	switch format {
	case DriversLicense:
		rec, err := driverslicense.Decode(data)
		if err != nil {
			return nil, FromDriversLicense(err)
		}
		return rec, nil
	case VehicleLicense:
		rec, err := vehicle.Decode(data)
		if err != nil {
			return nil, FromVehicle(err)
		}
		return rec, nil
	}
	return nil, &Error{Kind: Internal, Err: errors.Errorf("unknown format %q", format)}
}

// DecodeString is a convenience function that decodes hex-encoded data.
func DecodeString(format Format, data string) (interface{}, error) {
	byteData, err := hex.DecodeString(strings.TrimSpace(data))
	if err != nil {
		return nil, &Error{Kind: Internal,
			Err: errors.Wrapf(err, "unable to decode data as hex")}
	}
	return Decode(format, byteData)
}

// Marshal returns the JSON representation of a decoded record.
func Marshal(record interface{}) ([]byte, error) {
	b, err := json.Marshal(record)
	return b, errors.Wrap(err, "unable to marshal record")
}

// ErrorBody is the JSON representation of a decoding failure.
type ErrorBody struct {
	Error string `json:"error"`
	Kind  Kind   `json:"kind"`
}

// NewErrorBody returns the JSON representation of err.
func NewErrorBody(err error) ErrorBody {
	return ErrorBody{Error: err.Error(), Kind: KindOf(err)}
}
