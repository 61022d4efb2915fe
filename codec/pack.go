// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"encoding/binary"
)

// Packed - a packed record is just a byte slice
type Packed []byte

// AddressLength - size of a raw state address
const AddressLength = 32

// Address - fixed size state address
type Address [AddressLength]byte

// AppendUint8 - append a single byte
func AppendUint8(buffer Packed, value uint8) Packed {
	return append(buffer, value)
}

// AppendUint32 - append a fixed 4 byte little endian value
func AppendUint32(buffer Packed, value uint32) Packed {
	scratch := make([]byte, 4)
	binary.LittleEndian.PutUint32(scratch, value)
	return append(buffer, scratch...)
}

// AppendInt32 - append a fixed 4 byte little endian two's complement value
func AppendInt32(buffer Packed, value int32) Packed {
	return AppendUint32(buffer, uint32(value))
}

// AppendUint64 - append a fixed 8 byte little endian value
func AppendUint64(buffer Packed, value uint64) Packed {
	scratch := make([]byte, 8)
	binary.LittleEndian.PutUint64(scratch, value)
	return append(buffer, scratch...)
}

// AppendBytes - append a length prefixed byte sequence
func AppendBytes(buffer Packed, data []byte) Packed {
	buffer = AppendUint32(buffer, uint32(len(data)))
	return append(buffer, data...)
}

// AppendString - append a length prefixed UTF-8 string
func AppendString(buffer Packed, s string) Packed {
	buffer = AppendUint32(buffer, uint32(len(s)))
	return append(buffer, s...)
}

// AppendInt32List - append a count prefixed list of int32
func AppendInt32List(buffer Packed, list []int32) Packed {
	buffer = AppendUint32(buffer, uint32(len(list)))
	for _, item := range list {
		buffer = AppendInt32(buffer, item)
	}
	return buffer
}

// AppendStringList - append a count prefixed list of strings
func AppendStringList(buffer Packed, list []string) Packed {
	buffer = AppendUint32(buffer, uint32(len(list)))
	for _, item := range list {
		buffer = AppendString(buffer, item)
	}
	return buffer
}

// AppendAddress - append exactly 32 raw bytes, no prefix
func AppendAddress(buffer Packed, address Address) Packed {
	return append(buffer, address[:]...)
}
