/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package blockcrypt recovers barcode payloads that were transformed block by
// block with textbook RSA: every block is read as a big-endian unsigned integer
// x and replaced by x^e mod n.
package blockcrypt

import (
	"github.com/pkg/errors"
	"math/big"
	"strings"
)

const (
	// BlockSize is the size of each leading payload block.
	BlockSize = 128
	// BlockCount is the number of leading blocks in a payload.
	BlockCount = 5
	// TailSize is the size of the final payload block.
	TailSize = 74
	// PayloadSize is the total size of an encrypted payload.
	PayloadSize = BlockCount*BlockSize + TailSize
)

// KeyParams is a public key: a modulus N and an exponent E.
//
// KeyParams are shared between goroutines and must not be modified after
// construction.
type KeyParams struct {
	N *big.Int
	E *big.Int
}

// ParseKey parses a hex-encoded modulus and exponent. Colons between hex pairs
// are ignored, so values copied from openssl's text output can be used as-is.
func ParseKey(modulusHex, exponentHex string) (KeyParams, error) {
	n, ok := new(big.Int).SetString(strings.Replace(modulusHex, ":", "", -1), 16)
	if !ok || n.Sign() <= 0 {
		return KeyParams{}, errors.Errorf("invalid key modulus %q", modulusHex)
	}
	e, ok := new(big.Int).SetString(strings.Replace(exponentHex, ":", "", -1), 16)
	if !ok || e.Sign() <= 0 {
		return KeyParams{}, errors.Errorf("invalid key exponent %q", exponentHex)
	}
	return KeyParams{N: n, E: e}, nil
}

// MustParseKey is like ParseKey, but panics if the key can't be parsed. It's
// meant for initializing package-level key tables.
func MustParseKey(modulusHex, exponentHex string) KeyParams {
	k, err := ParseKey(modulusHex, exponentHex)
	if err != nil {
		panic(err)
	}
	return k
}

// KeySet holds the key for the leading BlockSize blocks and the key for the
// final TailSize block of a payload.
type KeySet struct {
	Block KeyParams
	Tail  KeyParams
}

// For returns the key used for blocks of the given size.
func (ks KeySet) For(blockSize int) (KeyParams, error) {
	switch blockSize {
	case BlockSize:
		return ks.Block, nil
	case TailSize:
		return ks.Tail, nil
	}
	return KeyParams{}, errors.Errorf("no key for %d byte blocks", blockSize)
}

// DecryptBlock computes block^E mod N and returns the result's big-endian bytes.
//
// The result has no leading zero bytes, so it may be shorter than the block;
// callers relying on fixed offsets should keep this in mind.
func DecryptBlock(block []byte, key KeyParams) []byte {
	x := new(big.Int).SetBytes(block)
	return x.Exp(x, key.E, key.N).Bytes()
}

// DecryptPayload splits the payload into BlockCount blocks of BlockSize bytes
// followed by one block of TailSize bytes, decrypts each with the matching key
// from keys, and returns the concatenated results in block order.
func DecryptPayload(payload []byte, keys KeySet) ([]byte, error) {
	if len(payload) != PayloadSize {
		return nil, errors.Errorf("invalid payload length %d; expected %d bytes",
			len(payload), PayloadSize)
	}

	decrypted := make([]byte, 0, PayloadSize)
	for off := 0; off < PayloadSize; {
		size := BlockSize
		if off == BlockCount*BlockSize {
			size = TailSize
		}
		key, err := keys.For(size)
		if err != nil {
			return nil, err
		}
		decrypted = append(decrypted, DecryptBlock(payload[off:off+size], key)...)
		off += size
	}
	return decrypted, nil
}
