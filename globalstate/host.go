// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package globalstate

import (
	"encoding/binary"

	"github.com/syndtr/goleveldb/leveldb"
	"golang.org/x/crypto/sha3"

	"github.com/capnode/capstate/codec"
	"github.com/capnode/capstate/fault"
	"github.com/capnode/capstate/storage"
	"github.com/capnode/capstate/storekey"
	"github.com/capnode/capstate/storevalue"
)

// backend - implements the host transport over the open database
type backend struct{}

// interface compliance
var _ storage.Host = backend{}

// prepend the pool prefix onto a global partition key
func globalKey(key []byte) []byte {
	prefixed := make([]byte, 1, 1+len(key))
	prefixed[0] = globalPrefix
	return append(prefixed, key...)
}

// local partition keys are scoped by the invocation seed
func localKey(key []byte) []byte {
	globalData.RLock()
	seed := globalData.seed
	globalData.RUnlock()

	prefixed := make([]byte, 1, 1+len(seed)+len(key))
	prefixed[0] = localPrefix
	prefixed = append(prefixed, seed[:]...)
	return append(prefixed, key...)
}

// read through the pending write overlay then the database
func get(prefixed []byte) ([]byte, bool) {
	globalData.RLock()
	defer globalData.RUnlock()

	if nil == globalData.db {
		fault.PanicWithError("globalstate.get", fault.ErrNotInitialised)
	}

	if value, found := globalData.cache.Get(string(prefixed)); found {
		return value, true
	}

	value, err := globalData.db.Get(prefixed, nil)
	if leveldb.ErrNotFound == err {
		return nil, false
	}
	fault.PanicIfError("globalstate.get", err)
	return value, true
}

// stage a write in the batch and the overlay
func put(prefixed []byte, value []byte) {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.db {
		fault.PanicWithError("globalstate.put", fault.ErrNotInitialised)
	}

	globalData.cache.Set(dbPut, string(prefixed), value)
	globalData.batch.Put(prefixed, value)
}

func (backend) ReadValue(key []byte) ([]byte, bool) {
	return get(globalKey(key))
}

func (backend) ReadValueLocal(key []byte) ([]byte, bool) {
	return get(localKey(key))
}

func (backend) Write(key []byte, value []byte) {
	put(globalKey(key), value)
}

func (backend) WriteLocal(key []byte, value []byte) {
	put(localKey(key), value)
}

// Add - combine with the stored value using the per type rule
//
// no stored value behaves as a plain write; a pairing outside the
// rule table traps and the invocation is reverted
func (backend) Add(key []byte, value []byte) {
	prefixed := globalKey(key)

	stored, ok := get(prefixed)
	if !ok {
		put(prefixed, value)
		return
	}

	storedValue, err := storevalue.ValueFromBytes(stored)
	fault.PanicIfError("globalstate.Add stored", err)

	incomingValue, err := storevalue.ValueFromBytes(value)
	fault.PanicIfError("globalstate.Add incoming", err)

	put(prefixed, storevalue.Bytes(combine(storedValue, incomingValue)))
}

// the add monoid, see the package documentation for the rule table
func combine(stored storevalue.Value, incoming storevalue.Value) storevalue.Value {
	switch storedValue := stored.(type) {

	case storevalue.Int32:
		if incomingInt, ok := incoming.(storevalue.Int32); ok {
			return storedValue + incomingInt
		}

	case storevalue.ListInt32:
		if incomingList, ok := incoming.(storevalue.ListInt32); ok {
			return append(storedValue[:len(storedValue):len(storedValue)], incomingList...)
		}

	case storevalue.ListString:
		if incomingList, ok := incoming.(storevalue.ListString); ok {
			return append(storedValue[:len(storedValue):len(storedValue)], incomingList...)
		}

	case *storevalue.Account:
		if namedKey, ok := incoming.(storevalue.NamedKey); ok {
			storedValue.InsertURefs(storekey.NamedKeys{namedKey.Name: namedKey.Key})
			return storedValue
		}

	case *storevalue.Contract:
		if namedKey, ok := incoming.(storevalue.NamedKey); ok {
			storedValue.InsertURefs(storekey.NamedKeys{namedKey.Name: namedKey.Key})
			return storedValue
		}
	}

	globalData.RLock()
	log := globalData.log
	globalData.RUnlock()
	if nil != log {
		log.Errorf("add: %s + %s", stored.TypeString(), incoming.TypeString())
	}
	fault.PanicWithError("globalstate.Add", fault.ErrAddIncompatibleType)
	return nil // not reached
}

// mint a fresh unforgeable address
//
// SHA3-256 over the invocation seed and a persistent counter, so a
// replayed invocation mints the same addresses
func mintAddress() codec.Address {
	globalData.Lock()
	defer globalData.Unlock()

	globalData.counter += 1

	scratch := make([]byte, 8+len(globalData.seed))
	binary.LittleEndian.PutUint64(scratch, globalData.counter)
	copy(scratch[8:], globalData.seed[:])
	return sha3.Sum256(scratch)
}

func (backend) NewURef(value []byte) []byte {
	uref := storekey.NewURef(mintAddress(), storekey.ReadAddWrite)

	// the cell is addressed by the rights-stripped form; the full
	// rights ride only on the returned capability
	put(globalKey(uref.Key().StateBytes()), value)
	return uref.Key().Bytes()
}

// assemble the contract record for a registered function
func contractFor(name string, namedKeys []byte) *storevalue.Contract {
	globalData.RLock()
	code, ok := globalData.functions[name]
	globalData.RUnlock()
	if !ok {
		fault.PanicWithError("globalstate.StoreFunction: "+name, fault.ErrFunctionNotFound)
	}

	nk, rest, err := storekey.DecodeNamedKeys(namedKeys)
	fault.PanicIfError("globalstate.StoreFunction keys", err)
	if 0 != len(rest) {
		fault.PanicWithError("globalstate.StoreFunction keys", fault.ErrInvalidStructure)
	}

	return storevalue.NewContract(code, nk)
}

func (backend) StoreFunction(name string, namedKeys []byte) codec.Address {
	contract := contractFor(name, namedKeys)

	uref := storekey.NewURef(mintAddress(), storekey.ReadAddWrite)
	put(globalKey(uref.Key().StateBytes()), storevalue.Bytes(contract))
	return uref.Address
}

func (backend) StoreFunctionAtHash(name string, namedKeys []byte) codec.Address {
	contract := contractFor(name, namedKeys)

	// content derived: registering the same contract twice lands on
	// the same immutable address
	packed := storevalue.Bytes(contract)
	address := sha3.Sum256(packed)
	put(globalKey(storekey.HashKey(address).Bytes()), packed)
	return address
}
