/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

package driverslicense

import (
	"github.com/intel/rsp-sw-toolkit-im-suite-licensecode/blockcrypt"
	"github.com/pkg/errors"
)

// KeyStore maps each barcode version to the keys for its payload blocks.
type KeyStore map[Version]blockcrypt.KeySet

// Keys returns the key set for the version.
func (ks KeyStore) Keys(v Version) (blockcrypt.KeySet, error) {
	keys, ok := ks[v]
	if !ok {
		return blockcrypt.KeySet{}, errors.Errorf("no keys configured for %s", v)
	}
	return keys, nil
}

// Key returns the version's key for blocks of the given size.
func (ks KeyStore) Key(v Version, blockSize int) (blockcrypt.KeyParams, error) {
	keys, err := ks.Keys(v)
	if err != nil {
		return blockcrypt.KeyParams{}, err
	}
	return keys.For(blockSize)
}

// defaultKeys are the public keys printed barcodes are recovered with. They're
// parsed once and never modified.
var defaultKeys = KeyStore{
	V1: {
		Block: blockcrypt.MustParseKey(
			"00fed2e1c27e3363316e77317a7a52c54981395186be4974760c72518d63e0544a"+
				"48d088b332c5b0c370c765d65d983c1f9de0a42b310ccc07ae770bd2b61d6a4d"+
				"cceac757689bdcbf608478faf312f6087cc496c3762cf5c4651caecda3499fae"+
				"7edb7e0e3e18eb304170e91ed5b156aace6f432d6eca6cc35851de8c678f67",
			"00bb797ffdec7f9e42c9d6f79b137059db"),
		Tail: blockcrypt.MustParseKey(
			"00ff3cec6b5f40e3c3661451b9fcfaef3aeb06dc2329c0e6f4dccc9279726716ce"+
				"15bbe05eed2c5711bcf8f5b6c8f7276db5c43bfaa3040dc01ab14b9c4d16f71c"+
				"0ce5ea953f0c754c6b17",
			"00db05ba822d9acc33fab7d8f427f9ce65"),
	},
	V2: {
		Block: blockcrypt.MustParseKey(
			"00ca9f18ef6c3f3fa4c5a461fea54ab19406ba5ecd746d60a27492dca3d74e3b5c"+
				"1d315f7b10383241809b029ebbd5de4d116030cc57f7d5a6c9a16f373bb14a50"+
				"8523f7e80a4c744d9085663a4a1472d7af2c56ae41b5065f7efa0293bd3278ad"+
				"693546f9f16219b79ff471a3636824cffcdb63a8ed8059e6b9a4f0db895381cb",
			"187092da6454ceb1853e6915f8466a05"),
		Tail: blockcrypt.MustParseKey(
			"00b404a0df11d1cacf1a1a048d4d573f953a62c583d74925927561a6d7a1e2b140"+
				"42526af70b550547390ea6ec748d30fdb81adb490e0c36a1986b404b2f5f69ef"+
				"5da1b663e59509130e7",
			"309cfed9719fe2a5e20c9bb44765382b"),
	},
}
