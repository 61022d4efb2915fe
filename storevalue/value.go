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

// TagType - type code for stored values
type TagType uint8

// the closed value tag set - append only, never renumber
const (
	Int32Tag      TagType = 0x00
	ByteArrayTag  TagType = 0x01
	ListInt32Tag  TagType = 0x02
	StringTag     TagType = 0x03
	AccountTag    TagType = 0x04
	ContractTag   TagType = 0x05
	NamedKeyTag   TagType = 0x06
	ListStringTag TagType = 0x07

	// this item must be last
	InvalidTag TagType = 0x08
)

// Value - generic stored value interface
//
// Pack appends the tag byte and the variant payload; it is total and
// cannot fail for an in-memory-valid value
type Value interface {
	Pack(buffer codec.Packed) codec.Packed
	Tag() TagType
	TypeString() string
}

// Bytes - pack a value into a fresh buffer
func Bytes(value Value) codec.Packed {
	return value.Pack(codec.Packed{})
}

// Int32 - a signed 32 bit scalar
type Int32 int32

func (value Int32) Pack(buffer codec.Packed) codec.Packed {
	buffer = codec.AppendUint8(buffer, uint8(Int32Tag))
	return codec.AppendInt32(buffer, int32(value))
}

func (value Int32) Tag() TagType       { return Int32Tag }
func (value Int32) TypeString() string { return "Int32" }

// ByteArray - an opaque byte sequence
type ByteArray []byte

func (value ByteArray) Pack(buffer codec.Packed) codec.Packed {
	buffer = codec.AppendUint8(buffer, uint8(ByteArrayTag))
	return codec.AppendBytes(buffer, value)
}

func (value ByteArray) Tag() TagType       { return ByteArrayTag }
func (value ByteArray) TypeString() string { return "ByteArray" }

// ListInt32 - a list of signed 32 bit scalars
type ListInt32 []int32

func (value ListInt32) Pack(buffer codec.Packed) codec.Packed {
	buffer = codec.AppendUint8(buffer, uint8(ListInt32Tag))
	return codec.AppendInt32List(buffer, value)
}

func (value ListInt32) Tag() TagType       { return ListInt32Tag }
func (value ListInt32) TypeString() string { return "List[Int32]" }

// String - UTF-8 text
type String string

func (value String) Pack(buffer codec.Packed) codec.Packed {
	buffer = codec.AppendUint8(buffer, uint8(StringTag))
	return codec.AppendString(buffer, string(value))
}

func (value String) Tag() TagType       { return StringTag }
func (value String) TypeString() string { return "String" }

// ListString - a list of UTF-8 strings
type ListString []string

func (value ListString) Pack(buffer codec.Packed) codec.Packed {
	buffer = codec.AppendUint8(buffer, uint8(ListStringTag))
	return codec.AppendStringList(buffer, value)
}

func (value ListString) Tag() TagType       { return ListStringTag }
func (value ListString) TypeString() string { return "List[String]" }

// NamedKey - a single name to key binding
type NamedKey struct {
	Name string
	Key  storekey.Key
}

func (value NamedKey) Pack(buffer codec.Packed) codec.Packed {
	buffer = codec.AppendUint8(buffer, uint8(NamedKeyTag))
	buffer = codec.AppendString(buffer, value.Name)
	return value.Key.Pack(buffer)
}

func (value NamedKey) Tag() TagType       { return NamedKeyTag }
func (value NamedKey) TypeString() string { return "NamedKey" }

// AsAccount - unchecked narrowing to the account variant
//
// callers must already have established the variant via control flow;
// a mismatch is a programming error and aborts the invocation
func AsAccount(value Value) *Account {
	account, ok := value.(*Account)
	if !ok {
		fault.PanicWithError("storevalue.AsAccount: "+value.TypeString(), fault.ErrWrongValueType)
	}
	return account
}

// ToAccount - checked narrowing for call sites without a proven variant
func ToAccount(value Value) (*Account, error) {
	account, ok := value.(*Account)
	if !ok {
		return nil, fault.ErrWrongValueType
	}
	return account, nil
}
