// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package codec - canonical binary wire format primitives
//
// every stored record is built from these primitives so that any two
// conforming nodes produce identical bytes for identical logical
// values; state commitments hash these bytes directly
//
// layout rules:
// 1. fixed width integers    = little endian, fixed size
// 2. bytes / string          = uint32 LE byte count ++ payload
// 3. list                    = uint32 LE element count ++ each element
// 4. fixed 32 byte address   = raw bytes, no prefix
//
// packing is total and cannot fail for in-memory-valid values;
// unpacking consumes a prefix of the buffer and returns the unconsumed
// suffix so composite decoders can chain - trailing bytes are the
// caller's responsibility
package codec
