// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"github.com/capnode/capstate/codec"
)

// Host - the opaque synchronous transport to the state backend
//
// all parameters and results are canonical packed bytes; the backend
// owns the physical mutation and the per key atomicity guarantee
//
// read results return ok == false for "no value at this key" - the
// absent marker is not an error
//
// a backend failure does not come back as a return code: the backend
// traps, i.e. panics through the fault abort helpers, and the
// invocation is reverted as a whole
type Host interface {
	// exact key lookup in the global partition
	ReadValue(key []byte) (value []byte, ok bool)

	// exact key lookup in the caller's local partition
	ReadValueLocal(key []byte) (value []byte, ok bool)

	// unconditional overwrite, fire and forget
	Write(key []byte, value []byte)

	// as Write, local partition
	WriteLocal(key []byte, value []byte)

	// combine with the stored value using the backend's per type rule;
	// traps on a type mismatch
	Add(key []byte, value []byte)

	// mint a fresh uref with full rights, store value under it and
	// return the new key in packed form
	NewURef(value []byte) []byte

	// package the named function together with a capability table and
	// register it under a freshly minted uref address
	StoreFunction(name string, namedKeys []byte) codec.Address

	// as StoreFunction but under an immutable content derived hash
	StoreFunctionAtHash(name string, namedKeys []byte) codec.Address
}
