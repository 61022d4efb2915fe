// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storekey

import (
	"github.com/capnode/capstate/codec"
	"github.com/capnode/capstate/fault"
)

// KeyTag - wire tag for the key variants
type KeyTag uint8

// the closed key tag set - append only, never renumber
const (
	AccountTag KeyTag = 0x00
	HashTag    KeyTag = 0x01
	URefTag    KeyTag = 0x02
)

// Key - a discriminated address into global state
//
// the rights field is only meaningful for the uref variant and never
// takes part in equality
type Key struct {
	tag     KeyTag
	address codec.Address
	rights  AccessRights
}

// AccountKey - address of an account record
func AccountKey(address codec.Address) Key {
	return Key{
		tag:     AccountTag,
		address: address,
	}
}

// HashKey - content derived address of an immutable record
func HashKey(address codec.Address) Key {
	return Key{
		tag:     HashTag,
		address: address,
	}
}

// Tag - which variant this key is
func (key Key) Tag() KeyTag {
	return key.tag
}

// Address - the raw 32 byte address portion
func (key Key) Address() codec.Address {
	return key.address
}

// IsURef - classify without unwrapping
func (key Key) IsURef() bool {
	return URefTag == key.tag
}

// URef - narrow to the uref variant
//
// this is a deliberate narrowing check: a key received from outside
// cannot be assumed to be a uref
func (key Key) URef() (URef, error) {
	if URefTag != key.tag {
		return URef{}, fault.ErrUnexpectedKeyVariant
	}
	return NewURef(key.address, key.rights), nil
}

// Equal - same variant and same address; uref rights are ignored
func (key Key) Equal(other Key) bool {
	return key.tag == other.tag && key.address == other.address
}

// Pack - append the canonical encoding of the key
func (key Key) Pack(buffer codec.Packed) codec.Packed {
	buffer = codec.AppendUint8(buffer, uint8(key.tag))
	buffer = codec.AppendAddress(buffer, key.address)
	if URefTag == key.tag {
		buffer = codec.AppendUint8(buffer, uint8(key.rights))
	}
	return buffer
}

// Bytes - the packed form as a fresh slice
func (key Key) Bytes() []byte {
	return key.Pack(codec.Packed{})
}

// StateBytes - the packed form used to address a state cell
//
// uref rights never take part in indexing: two urefs to the same
// address must land on the same cell no matter how attenuated, so the
// rights byte is zeroed before packing
func (key Key) StateBytes() []byte {
	normal := key
	normal.rights = None
	return normal.Pack(codec.Packed{})
}

// DecodeKey - consume one packed key, returning the unconsumed suffix
func DecodeKey(buffer codec.Packed) (Key, codec.Packed, error) {
	tag, rest, err := codec.DecodeUint8(buffer)
	if nil != err {
		return Key{}, nil, err
	}

	// reject the tag before consuming any payload so that an unknown
	// variant is always a formatting error, not a length error
	switch KeyTag(tag) {
	case AccountTag, HashTag, URefTag:
	default:
		return Key{}, nil, fault.ErrInvalidStructure
	}

	address, rest, err := codec.DecodeAddress(rest)
	if nil != err {
		return Key{}, nil, err
	}

	switch KeyTag(tag) {
	case AccountTag:
		return AccountKey(address), rest, nil

	case HashTag:
		return HashKey(address), rest, nil

	case URefTag:
		b, rest, err := codec.DecodeUint8(rest)
		if nil != err {
			return Key{}, nil, err
		}
		rights, err := decodeAccessRights(b)
		if nil != err {
			return Key{}, nil, err
		}
		return NewURef(address, rights).Key(), rest, nil

	default:
		return Key{}, nil, fault.ErrInvalidStructure
	}
}

// KeyFromBytes - decode a single key, trailing bytes are rejected
func KeyFromBytes(buffer []byte) (Key, error) {
	key, rest, err := DecodeKey(buffer)
	if nil != err {
		return Key{}, err
	}
	if 0 != len(rest) {
		return Key{}, fault.ErrKeyLength
	}
	return key, nil
}

// display form for logs and the dump tool
func (key Key) String() string {
	switch key.tag {
	case AccountTag:
		return "account:" + base58Address(key.address)
	case HashTag:
		return "hash:" + base58Address(key.address)
	case URefTag:
		return NewURef(key.address, key.rights).String()
	default:
		return "invalid-key"
	}
}
