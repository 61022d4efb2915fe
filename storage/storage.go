// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/capnode/capstate/fault"
	"github.com/capnode/capstate/storekey"
	"github.com/capnode/capstate/storevalue"
)

// Read - look up the value behind a typed reference
//
// absent is (nil, nil); malformed bytes or a stored value of a
// different type come back as typed errors; a reference without the
// read right aborts
func Read(ref TRef) (storevalue.Value, error) {
	requireRights(ref, "read", ref.URef().Rights.CanRead())

	data, ok := transport().ReadValue(ref.Key().StateBytes())
	if !ok {
		return nil, nil
	}

	value, err := storevalue.ValueFromBytes(data)
	if nil != err {
		return nil, err
	}
	if value.Tag() != ref.ValueTag() {
		return nil, fault.ErrWrongValueType
	}
	return value, nil
}

// ReadLocal - look up a value in the caller's local partition
//
// local state is scoped to the calling context by construction, so
// there is no rights gate; the key is any packed byte form
func ReadLocal(key []byte) (storevalue.Value, error) {
	data, ok := transport().ReadValueLocal(key)
	if !ok {
		return nil, nil
	}
	return storevalue.ValueFromBytes(data)
}

// Write - unconditionally overwrite the value behind the reference
func Write(ref TRef, value storevalue.Value) {
	requireRights(ref, "write", ref.URef().Rights.CanWrite())
	transport().Write(ref.Key().StateBytes(), packOrAbort(value, ref))
}

// WriteLocal - as Write for the caller's local partition
func WriteLocal(key []byte, value storevalue.Value) {
	if nil == value {
		fault.PanicWithError("storage.WriteLocal", fault.ErrSerializationImpossible)
	}
	transport().WriteLocal(key, storevalue.Bytes(value))
}

// Add - combine a value with the one already stored
//
// the combination rule is the backend's per type monoid; a mismatch
// between stored and incoming types traps at the host boundary
func Add(ref TRef, value storevalue.Value) {
	requireRights(ref, "add", ref.URef().Rights.CanAdd())
	transport().Add(ref.Key().StateBytes(), packOrAbort(value, ref))
}

// NewTURef - mint a fresh capability
//
// the backend stores init under a new address and grants full rights;
// this is the only sanctioned way contract code creates capabilities
func NewTURef(init storevalue.Value) TRef {
	if nil == init {
		fault.PanicWithError("storage.NewTURef", fault.ErrSerializationImpossible)
	}
	packedKey := transport().NewURef(storevalue.Bytes(init))
	return mintedTRef(packedKey, init.Tag())
}

// StoreFunction - register an exported function under a fresh uref
//
// the returned reference is mutable: the registration can later be
// overwritten through the uref
func StoreFunction(name string, namedKeys storekey.NamedKeys) ContractRef {
	address := transport().StoreFunction(name, namedKeys.Bytes())
	return contractRefFromURef(storekey.NewURef(address, storekey.ReadAddWrite))
}

// StoreFunctionAtHash - register under an immutable content derived
// hash address
func StoreFunctionAtHash(name string, namedKeys storekey.NamedKeys) ContractRef {
	address := transport().StoreFunctionAtHash(name, namedKeys.Bytes())
	return contractRefFromHash(address)
}

// capability check, logically before any transport call is issued
func requireRights(ref TRef, operation string, allowed bool) {
	if allowed {
		return
	}
	globalData.RLock()
	log := globalData.log
	globalData.RUnlock()
	if nil != log {
		log.Errorf("%s denied: %s", operation, ref.URef())
	}
	fault.PanicWithError("storage."+operation, fault.ErrAccessDenied)
}

// pack a value or abort: offering an unpackable value is a
// programming error, also enforce the reference's type promise
func packOrAbort(value storevalue.Value, ref TRef) []byte {
	if nil == value {
		fault.PanicWithError("storage: nil value", fault.ErrSerializationImpossible)
	}
	if value.Tag() != ref.ValueTag() {
		fault.PanicWithError("storage: "+value.TypeString(), fault.ErrWrongValueType)
	}
	return storevalue.Bytes(value)
}
