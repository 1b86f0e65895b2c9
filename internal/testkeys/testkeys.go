/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package testkeys generates throwaway key pairs and produces payloads that the
// decoders accept. It exists only for tests.
package testkeys

import (
	"crypto/rand"
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/blockcrypt"
	"github.com/pkg/errors"
	"math/big"
)

var publicExponent = big.NewInt(65537)

// Pair is a generated key: the public half used by the decoders and the
// private exponent used to produce test ciphertext.
type Pair struct {
	Public blockcrypt.KeyParams
	D      *big.Int
}

// Generate returns a key pair whose modulus is exactly bytes long and has its
// top bit set, so any block starting with a byte below 0x80 is smaller than it.
func Generate(bytes int) (Pair, error) {
	if bytes < 8 || bytes%2 != 0 {
		return Pair{}, errors.Errorf("unsupported key size %d", bytes)
	}

	one := big.NewInt(1)
	for attempt := 0; attempt < 64; attempt++ {
		// rand.Prime sets the top two bits, so the product has exactly
		// 2*bits bits.
		p, err := rand.Prime(rand.Reader, bytes*4)
		if err != nil {
			return Pair{}, errors.Wrap(err, "generating p")
		}
		q, err := rand.Prime(rand.Reader, bytes*4)
		if err != nil {
			return Pair{}, errors.Wrap(err, "generating q")
		}
		if p.Cmp(q) == 0 {
			continue
		}

		n := new(big.Int).Mul(p, q)
		phi := new(big.Int).Mul(new(big.Int).Sub(p, one), new(big.Int).Sub(q, one))
		d := new(big.Int).ModInverse(publicExponent, phi)
		if d == nil {
			continue
		}
		return Pair{
			Public: blockcrypt.KeyParams{N: n, E: new(big.Int).Set(publicExponent)},
			D:      d,
		}, nil
	}
	return Pair{}, errors.New("unable to generate a usable key pair")
}

// Encrypt computes plain^D mod N and left-pads the result to size bytes.
func (p Pair) Encrypt(plain []byte, size int) []byte {
	m := new(big.Int).SetBytes(plain)
	c := m.Exp(m, p.D, p.Public.N)
	return c.FillBytes(make([]byte, size))
}

// KeySet is a generated key pair for each block class.
type KeySet struct {
	Block Pair
	Tail  Pair
}

// GenerateSet generates keys sized for blockcrypt's block and tail blocks.
func GenerateSet() (KeySet, error) {
	block, err := Generate(blockcrypt.BlockSize)
	if err != nil {
		return KeySet{}, err
	}
	tail, err := Generate(blockcrypt.TailSize)
	if err != nil {
		return KeySet{}, err
	}
	return KeySet{Block: block, Tail: tail}, nil
}

// Public returns the public halves as a blockcrypt.KeySet.
func (ks KeySet) Public() blockcrypt.KeySet {
	return blockcrypt.KeySet{Block: ks.Block.Public, Tail: ks.Tail.Public}
}

// EncryptPayload encrypts a blockcrypt.PayloadSize plaintext block by block.
//
// To survive decryption unchanged, the first byte of every block must be
// non-zero and below 0x80.
func (ks KeySet) EncryptPayload(plain []byte) ([]byte, error) {
	if len(plain) != blockcrypt.PayloadSize {
		return nil, errors.Errorf("invalid plaintext length %d; expected %d bytes",
			len(plain), blockcrypt.PayloadSize)
	}

	out := make([]byte, 0, blockcrypt.PayloadSize)
	for i := 0; i < blockcrypt.BlockCount; i++ {
		block := plain[i*blockcrypt.BlockSize : (i+1)*blockcrypt.BlockSize]
		out = append(out, ks.Block.Encrypt(block, blockcrypt.BlockSize)...)
	}
	tail := plain[blockcrypt.BlockCount*blockcrypt.BlockSize:]
	out = append(out, ks.Tail.Encrypt(tail, blockcrypt.TailSize)...)
	return out, nil
}
