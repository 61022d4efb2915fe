// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package globalstate

import (
	"github.com/capnode/capstate/codec"
	"github.com/capnode/capstate/fault"
	"github.com/capnode/capstate/storekey"
	"github.com/capnode/capstate/storevalue"
)

// node side account management: contract code never calls these, an
// account record is created once and its nonce is advanced by the
// execution layer at deploy time

// CreateAccount - store a fresh account record under its account key
func CreateAccount(publicKey codec.Address, knownURefs storekey.NamedKeys) error {
	accountKey := globalKey(storekey.AccountKey(publicKey).Bytes())

	if _, ok := get(accountKey); ok {
		return fault.ErrAccountAlreadyExists
	}

	account := storevalue.NewAccount(publicKey, 0, knownURefs)
	put(accountKey, storevalue.Bytes(account))
	return nil
}

// ReadAccount - fetch and narrow the account record
func ReadAccount(publicKey codec.Address) (*storevalue.Account, error) {
	accountKey := globalKey(storekey.AccountKey(publicKey).Bytes())

	data, ok := get(accountKey)
	if !ok {
		return nil, fault.ErrAccountDoesNotExist
	}

	value, err := storevalue.ValueFromBytes(data)
	if nil != err {
		return nil, err
	}
	return storevalue.ToAccount(value)
}

// IncrementNonce - advance the replay protection counter by one
func IncrementNonce(publicKey codec.Address) error {
	account, err := ReadAccount(publicKey)
	if nil != err {
		return err
	}

	account.IncrementNonce()
	put(globalKey(storekey.AccountKey(publicKey).Bytes()), storevalue.Bytes(account))
	return nil
}
