// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storevalue

import (
	"github.com/capnode/capstate/codec"
	"github.com/capnode/capstate/storekey"
)

// Account - an account record
//
// pure data: no capability checks happen here, those belong to the
// storage layer; the nonce is advanced by the node at deploy time
type Account struct {
	publicKey  codec.Address
	nonce      uint64
	knownURefs storekey.NamedKeys
}

// NewAccount - construct; done once by the node at account creation
func NewAccount(publicKey codec.Address, nonce uint64, knownURefs storekey.NamedKeys) *Account {
	if nil == knownURefs {
		knownURefs = storekey.NamedKeys{}
	}
	return &Account{
		publicKey:  publicKey,
		nonce:      nonce,
		knownURefs: knownURefs,
	}
}

// InsertURefs - merge an incoming capability table
//
// a colliding name takes the incoming entry: last write wins
func (account *Account) InsertURefs(incoming storekey.NamedKeys) {
	account.knownURefs.Merge(incoming)
}

// URefsLookup - shared read-only view of the capability table
//
// the caller must not modify the result
func (account *Account) URefsLookup() storekey.NamedKeys {
	return account.knownURefs
}

// GetURefsLookup - take ownership of the capability table
//
// the account is being torn down or replaced: afterwards its table is
// empty
func (account *Account) GetURefsLookup() storekey.NamedKeys {
	knownURefs := account.knownURefs
	account.knownURefs = storekey.NamedKeys{}
	return knownURefs
}

// PubKey - the raw 32 byte public key
func (account *Account) PubKey() []byte {
	return account.publicKey[:]
}

// Nonce - current replay protection counter
func (account *Account) Nonce() uint64 {
	return account.nonce
}

// IncrementNonce - advance the replay protection counter
//
// monotonicity across deploys is the execution layer's concern
func (account *Account) IncrementNonce() {
	account.nonce += 1
}

// Pack - tag ++ public key ++ nonce ++ capability table
func (account *Account) Pack(buffer codec.Packed) codec.Packed {
	buffer = codec.AppendUint8(buffer, uint8(AccountTag))
	buffer = codec.AppendAddress(buffer, account.publicKey)
	buffer = codec.AppendUint64(buffer, account.nonce)
	return account.knownURefs.Pack(buffer)
}

func (account *Account) Tag() TagType       { return AccountTag }
func (account *Account) TypeString() string { return "Account" }

// consume the payload following an account tag
func unpackAccount(buffer codec.Packed) (*Account, codec.Packed, error) {
	publicKey, rest, err := codec.DecodeAddress(buffer)
	if nil != err {
		return nil, nil, err
	}
	nonce, rest, err := codec.DecodeUint64(rest)
	if nil != err {
		return nil, nil, err
	}
	knownURefs, rest, err := storekey.DecodeNamedKeys(rest)
	if nil != err {
		return nil, nil, err
	}
	return NewAccount(publicKey, nonce, knownURefs), rest, nil
}
