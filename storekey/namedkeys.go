// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storekey

import (
	"sort"

	"github.com/capnode/capstate/codec"
	"github.com/capnode/capstate/fault"
)

// NamedKeys - a capability table mapping readable names to keys
//
// this is the mechanism by which capabilities propagate from a
// granting context into a callee context: accounts and contracts each
// carry one
type NamedKeys map[string]Key

// Pack - append the canonical encoding
//
// entries are emitted in sorted name order; the ordering is part of
// the wire format, the same logical table must always hash identically
func (nk NamedKeys) Pack(buffer codec.Packed) codec.Packed {
	names := make([]string, 0, len(nk))
	for name := range nk {
		names = append(names, name)
	}
	sort.Strings(names)

	buffer = codec.AppendUint32(buffer, uint32(len(names)))
	for _, name := range names {
		buffer = codec.AppendString(buffer, name)
		buffer = nk[name].Pack(buffer)
	}
	return buffer
}

// Bytes - the packed form as a fresh slice
func (nk NamedKeys) Bytes() []byte {
	return nk.Pack(codec.Packed{})
}

// DecodeNamedKeys - consume one packed table
func DecodeNamedKeys(buffer codec.Packed) (NamedKeys, codec.Packed, error) {
	count, rest, err := codec.DecodeUint32(buffer)
	if nil != err {
		return nil, nil, err
	}

	// each entry needs at least a name length prefix, a tag byte and
	// an address; reject an impossible count before allocating
	const minimumEntrySize = 4 + 1 + codec.AddressLength
	if uint64(count)*minimumEntrySize > uint64(len(rest)) {
		return nil, nil, fault.ErrEarlyEndOfInput
	}

	nk := make(NamedKeys, count)
	for i := uint32(0); i < count; i += 1 {
		var name string
		var key Key
		name, rest, err = codec.DecodeString(rest)
		if nil != err {
			return nil, nil, err
		}
		key, rest, err = DecodeKey(rest)
		if nil != err {
			return nil, nil, err
		}
		nk[name] = key
	}
	return nk, rest, nil
}

// Merge - fold an incoming table into this one
//
// a colliding name takes the incoming entry: last write wins
func (nk NamedKeys) Merge(incoming NamedKeys) {
	for name, key := range incoming {
		nk[name] = key
	}
}

// Clone - an independent copy
func (nk NamedKeys) Clone() NamedKeys {
	duplicate := make(NamedKeys, len(nk))
	for name, key := range nk {
		duplicate[name] = key
	}
	return duplicate
}

// Equal - same names mapping to equal keys (uref rights ignored)
func (nk NamedKeys) Equal(other NamedKeys) bool {
	if len(nk) != len(other) {
		return false
	}
	for name, key := range nk {
		o, ok := other[name]
		if !ok || !key.Equal(o) {
			return false
		}
	}
	return true
}
