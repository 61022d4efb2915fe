// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storekey

import (
	"golang.org/x/crypto/sha3"

	"github.com/capnode/capstate/codec"
	"github.com/capnode/capstate/util"
)

// URef - an unforgeable reference into global state
//
// the address is minted by the state backend and never constructed ad
// hoc by contract code; the rights ride alongside the address and are
// checked on every storage operation
type URef struct {
	Address codec.Address
	Rights  AccessRights
}

// NewURef - attach rights to a minted address
func NewURef(address codec.Address, rights AccessRights) URef {
	return URef{
		Address: address,
		Rights:  rights,
	}
}

// StripRights - the bare address form used for identity comparison
func (uref URef) StripRights() URef {
	return URef{
		Address: uref.Address,
	}
}

// Equal - identity comparison, rights bits are ignored
func (uref URef) Equal(other URef) bool {
	return uref.Address == other.Address
}

// Key - wrap as the uref key variant
func (uref URef) Key() Key {
	return Key{
		tag:     URefTag,
		address: uref.Address,
		rights:  uref.Rights,
	}
}

// display form: base58 address with checksum, then symbolic rights
func (uref URef) String() string {
	return "uref:" + base58Address(uref.Address) + ":" + uref.Rights.String()
}

// base58 with a 4 byte SHA3-256 checksum suffix
func base58Address(address codec.Address) string {
	digest := sha3.Sum256(address[:])
	buffer := make([]byte, 0, codec.AddressLength+checksumLength)
	buffer = append(buffer, address[:]...)
	buffer = append(buffer, digest[:checksumLength]...)
	return util.ToBase58(buffer)
}

const checksumLength = 4
