// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storevalue

import (
	"github.com/capnode/capstate/codec"
	"github.com/capnode/capstate/fault"
	"github.com/capnode/capstate/storekey"
)

// Unpack - turn a byte slice back into a value
//
// returns the decoded value and the number of bytes consumed; trailing
// bytes are permitted and left for the caller to judge
//
// must cast result to correct type
//
// e.g.
//   n, ok := result.(storevalue.Int32)
// or:
//   switch v := result.(type) {
//   case storevalue.Int32:
func Unpack(buffer codec.Packed) (Value, int, error) {
	tag, rest, err := codec.DecodeUint8(buffer)
	if nil != err {
		return nil, 0, err
	}

	var value Value

	switch TagType(tag) {

	case Int32Tag:
		var i int32
		i, rest, err = codec.DecodeInt32(rest)
		value = Int32(i)

	case ByteArrayTag:
		var data []byte
		data, rest, err = codec.DecodeBytes(rest)
		value = ByteArray(data)

	case ListInt32Tag:
		var list []int32
		list, rest, err = codec.DecodeInt32List(rest)
		value = ListInt32(list)

	case StringTag:
		var s string
		s, rest, err = codec.DecodeString(rest)
		value = String(s)

	case ListStringTag:
		var list []string
		list, rest, err = codec.DecodeStringList(rest)
		value = ListString(list)

	case NamedKeyTag:
		var name string
		var key storekey.Key
		name, rest, err = codec.DecodeString(rest)
		if nil == err {
			key, rest, err = storekey.DecodeKey(rest)
		}
		value = NamedKey{Name: name, Key: key}

	case AccountTag:
		var account *Account
		account, rest, err = unpackAccount(rest)
		value = account

	case ContractTag:
		var contract *Contract
		contract, rest, err = unpackContract(rest)
		value = contract

	default:
		return nil, 0, fault.ErrInvalidValueTag
	}

	if nil != err {
		return nil, 0, err
	}
	return value, len(buffer) - len(rest), nil
}

// ValueFromBytes - decode a single value, trailing bytes are rejected
func ValueFromBytes(buffer []byte) (Value, error) {
	value, n, err := Unpack(buffer)
	if nil != err {
		return nil, err
	}
	if n != len(buffer) {
		return nil, fault.ErrInvalidStructure
	}
	return value, nil
}
