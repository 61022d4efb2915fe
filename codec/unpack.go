// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package codec

import (
	"encoding/binary"

	"github.com/capnode/capstate/fault"
)

// DecodeUint8 - consume a single byte
func DecodeUint8(buffer Packed) (uint8, Packed, error) {
	if len(buffer) < 1 {
		return 0, nil, fault.ErrEarlyEndOfInput
	}
	return buffer[0], buffer[1:], nil
}

// DecodeUint32 - consume a fixed 4 byte little endian value
func DecodeUint32(buffer Packed) (uint32, Packed, error) {
	if len(buffer) < 4 {
		return 0, nil, fault.ErrEarlyEndOfInput
	}
	return binary.LittleEndian.Uint32(buffer), buffer[4:], nil
}

// DecodeInt32 - consume a fixed 4 byte little endian two's complement value
func DecodeInt32(buffer Packed) (int32, Packed, error) {
	u, rest, err := DecodeUint32(buffer)
	if nil != err {
		return 0, nil, err
	}
	return int32(u), rest, nil
}

// DecodeUint64 - consume a fixed 8 byte little endian value
func DecodeUint64(buffer Packed) (uint64, Packed, error) {
	if len(buffer) < 8 {
		return 0, nil, fault.ErrEarlyEndOfInput
	}
	return binary.LittleEndian.Uint64(buffer), buffer[8:], nil
}

// read a length prefix and ensure the remainder can satisfy it
func decodeLength(buffer Packed) (int, Packed, error) {
	n, rest, err := DecodeUint32(buffer)
	if nil != err {
		return 0, nil, err
	}
	if uint64(n) > uint64(len(rest)) {
		return 0, nil, fault.ErrEarlyEndOfInput
	}
	return int(n), rest, nil
}

// DecodeBytes - consume a length prefixed byte sequence
//
// the result is a copy, detached from the input buffer
func DecodeBytes(buffer Packed) ([]byte, Packed, error) {
	n, rest, err := decodeLength(buffer)
	if nil != err {
		return nil, nil, err
	}
	data := make([]byte, n)
	copy(data, rest[:n])
	return data, rest[n:], nil
}

// DecodeString - consume a length prefixed UTF-8 string
func DecodeString(buffer Packed) (string, Packed, error) {
	n, rest, err := decodeLength(buffer)
	if nil != err {
		return "", nil, err
	}
	return string(rest[:n]), rest[n:], nil
}

// DecodeInt32List - consume a count prefixed list of int32
func DecodeInt32List(buffer Packed) ([]int32, Packed, error) {
	count, rest, err := DecodeUint32(buffer)
	if nil != err {
		return nil, nil, err
	}
	if uint64(count)*4 > uint64(len(rest)) {
		return nil, nil, fault.ErrEarlyEndOfInput
	}
	list := make([]int32, count)
	for i := range list {
		list[i], rest, err = DecodeInt32(rest)
		if nil != err {
			return nil, nil, err
		}
	}
	return list, rest, nil
}

// DecodeStringList - consume a count prefixed list of strings
func DecodeStringList(buffer Packed) ([]string, Packed, error) {
	count, rest, err := DecodeUint32(buffer)
	if nil != err {
		return nil, nil, err
	}
	if uint64(count)*4 > uint64(len(rest)) {
		return nil, nil, fault.ErrEarlyEndOfInput
	}
	list := make([]string, count)
	for i := range list {
		list[i], rest, err = DecodeString(rest)
		if nil != err {
			return nil, nil, err
		}
	}
	return list, rest, nil
}

// DecodeAddress - consume exactly 32 raw bytes
func DecodeAddress(buffer Packed) (Address, Packed, error) {
	var address Address
	if len(buffer) < AddressLength {
		return address, nil, fault.ErrEarlyEndOfInput
	}
	copy(address[:], buffer[:AddressLength])
	return address, buffer[AddressLength:], nil
}
