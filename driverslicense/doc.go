/* Apache v2 license
 * Copyright (C) 2019 Intel Corporation
 *
 * SPDX-License-Identifier: Apache-2.0
 */

// Package driverslicense decodes the 2D barcode printed on the back of a
// driver's license card.
//
// A scanner produces exactly 720 bytes. The first 4 are a magic prefix that
// identifies the format version; bytes 4 and 5 are unused; the remaining 714
// are the payload, made of five 128 byte blocks and a final 74 byte block. Each
// version has its own pair of public keys (one for the 128 byte blocks, one for
// the 74 byte block), and each block is recovered independently by modular
// exponentiation, then the results are concatenated.
//
// The recovered data is not self-describing. After a 0x82 marker byte comes:
//     vehicle codes        up to 3 strings
//     surname              string
//     initials             string; if ended by 0xE0, a permit code follows
//     permit code          string (optional)
//     ID country of issue  string
//     license country      string
//     vehicle restrictions up to 3 strings
//     license number       string
//     ID number            13 raw bytes
//     ID number type       1 byte, formatted as 2 decimal digits
//     nibble section       4-bit values up to a 0x57 byte
//     image width/height   single bytes following the nibble section
// where each string is ended by either 0xE0 or 0xE1. The nibble section holds
// the dates and short numeric codes: 4 license code issue dates, a 2 digit
// restriction code, the permit expiry date, a 2 digit issue number, the birth,
// issue and expiry dates, and a 2 digit gender code. A date is 8 nibbles
// (yyyymmdd), or a single nibble with the value 10 if the date is absent.
//
// Because block results are concatenated without padding, a block whose
// plaintext starts with zero bytes shortens the data, shifting every later
// field. Real captures aren't known to do so, and this package doesn't try to
// correct for it.
package driverslicense
