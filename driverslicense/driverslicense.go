/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package driverslicense

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/blockcrypt"
	"github.com/pkg/errors"
)

const (
	// Size is the exact length of a driver's license barcode capture.
	Size = 720
	// headerSize is the number of bytes before the encrypted payload; only the
	// first 4 identify the version.
	headerSize = Size - blockcrypt.PayloadSize
)

// Version is a barcode format version, identified by the magic prefix of the
// raw data.
type Version int

const (
	V1 Version = iota + 1
	V2
)

var (
	magicV1 = []byte{0x01, 0xE1, 0x02, 0x45}
	magicV2 = []byte{0x01, 0x9B, 0x09, 0x45}
)

func (v Version) String() string {
	switch v {
	case V1:
		return "V1"
	case V2:
		return "V2"
	}
	return fmt.Sprintf("Version(%d)", int(v))
}

// DetectVersion returns the Version matching the first 4 bytes of data.
func DetectVersion(data []byte) (Version, error) {
	switch {
	case bytes.HasPrefix(data, magicV1):
		return V1, nil
	case bytes.HasPrefix(data, magicV2):
		return V2, nil
	}
	return 0, &Error{Kind: UnknownVersion}
}

// Decoder decodes driver's license barcodes using a set of keys.
//
// A Decoder holds no mutable state and is safe for concurrent use.
type Decoder struct {
	keys KeyStore
}

// NewDecoder returns a Decoder using the keys printed barcodes are made with.
func NewDecoder() Decoder {
	return Decoder{keys: defaultKeys}
}

// NewDecoderWithKeys returns a Decoder using the given keys instead of the
// built-in ones.
func NewDecoderWithKeys(keys KeyStore) Decoder {
	return Decoder{keys: keys}
}

var defaultDecoder = NewDecoder()

// Decode decodes a raw barcode capture using the built-in keys.
func Decode(data []byte) (*Record, error) {
	return defaultDecoder.Decode(data)
}

// DecodeString is a convenience function that decodes hex-encoded capture data.
func DecodeString(data string) (*Record, error) {
	return defaultDecoder.DecodeString(data)
}

// DecodeString is a convenience method that decodes hex-encoded capture data.
func (d Decoder) DecodeString(data string) (*Record, error) {
	byteData, err := hex.DecodeString(data)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decode capture data as hex")
	}
	return d.Decode(byteData)
}

// Decode decodes a raw barcode capture, which must be exactly Size bytes.
//
// Errors caused by the capture's content are always an *Error.
func (d Decoder) Decode(data []byte) (*Record, error) {
	plain, err := d.Decrypt(data)
	if err != nil {
		return nil, err
	}
	return parseRecord(plain)
}

// Decrypt checks the capture's length and version and returns its decrypted
// payload without parsing it.
func (d Decoder) Decrypt(data []byte) ([]byte, error) {
	if len(data) != Size {
		return nil, &Error{Kind: InsufficientBytes,
			Err: errors.Errorf("invalid data length %d; expected %d bytes", len(data), Size)}
	}

	version, err := DetectVersion(data)
	if err != nil {
		return nil, err
	}
	return d.decrypt(version, data[headerSize:])
}

func (d Decoder) decrypt(version Version, payload []byte) ([]byte, error) {
	keys, err := d.keys.Keys(version)
	if err != nil {
		return nil, err
	}
	plain, err := blockcrypt.DecryptPayload(payload, keys)
	if err != nil {
		return nil, errors.Wrapf(err, "unable to decrypt %s payload", version)
	}
	return plain, nil
}
