// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/capnode/capstate/codec"
	"github.com/capnode/capstate/fault"
	"github.com/capnode/capstate/storekey"
	"github.com/capnode/capstate/storevalue"
)

// TRef - a capability reference bound to one value type
//
// holding a TRef is holding both the capability (the uref rights) and
// a promise about what is stored there; Read enforces the promise by
// checking the decoded tag
type TRef struct {
	uref storekey.URef
	tag  storevalue.TagType
}

// NewTRef - bind a uref to a value type
func NewTRef(uref storekey.URef, tag storevalue.TagType) TRef {
	return TRef{
		uref: uref,
		tag:  tag,
	}
}

// TRefFromKey - narrow a generic key back to a typed reference
//
// this is a deliberate narrowing check: only the uref variant carries
// a capability
func TRefFromKey(key storekey.Key, tag storevalue.TagType) (TRef, error) {
	uref, err := key.URef()
	if nil != err {
		return TRef{}, err
	}
	return NewTRef(uref, tag), nil
}

// URef - the underlying capability
func (ref TRef) URef() storekey.URef {
	return ref.uref
}

// ValueTag - the bound value type
func (ref TRef) ValueTag() storevalue.TagType {
	return ref.tag
}

// Key - erase rights and type information into the generic key form
func (ref TRef) Key() storekey.Key {
	return ref.uref.Key()
}

// ContractRef - where a stored function was registered
//
// discriminated by addressing scheme: a mutable uref or an immutable
// content derived hash
type ContractRef struct {
	key storekey.Key
}

// Key - the generic key form, suitable for a capability table
func (ref ContractRef) Key() storekey.Key {
	return ref.key
}

// IsHash - true when registered under an immutable hash address
func (ref ContractRef) IsHash() bool {
	return storekey.HashTag == ref.key.Tag()
}

// URef - narrow to the mutable uref form
func (ref ContractRef) URef() (storekey.URef, error) {
	return ref.key.URef()
}

// TRef - the typed reference form for Read of the stored contract
func (ref ContractRef) TRef() (TRef, error) {
	return TRefFromKey(ref.key, storevalue.ContractTag)
}

// internal constructors used by the store operations
func contractRefFromURef(uref storekey.URef) ContractRef {
	return ContractRef{key: uref.Key()}
}

func contractRefFromHash(address codec.Address) ContractRef {
	return ContractRef{key: storekey.HashKey(address)}
}

// ensure the minted key is usable or abort
func mintedTRef(packedKey []byte, tag storevalue.TagType) TRef {
	key, err := storekey.KeyFromBytes(packedKey)
	fault.PanicIfError("storage: minted key", err)

	uref, err := key.URef()
	if nil != err {
		fault.PanicWithError("storage: minted key", fault.ErrUnexpectedKeyVariant)
	}
	if !uref.Rights.Has(storekey.ReadAddWrite) {
		fault.PanicWithError("storage: minted rights", fault.ErrInvalidAccessRights)
	}
	return NewTRef(uref, tag)
}
