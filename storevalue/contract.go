// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storevalue

import (
	"github.com/capnode/capstate/codec"
	"github.com/capnode/capstate/storekey"
)

// Contract - immutable executable bytes plus a capability table
//
// the table has the same shape and semantics as the account table:
// it is how capabilities propagate into a callee context
type Contract struct {
	code       []byte
	knownURefs storekey.NamedKeys
}

// NewContract - bind executable bytes to a capability table
func NewContract(code []byte, knownURefs storekey.NamedKeys) *Contract {
	if nil == knownURefs {
		knownURefs = storekey.NamedKeys{}
	}
	return &Contract{
		code:       code,
		knownURefs: knownURefs,
	}
}

// Code - the executable bytes
//
// the caller must not modify the result
func (contract *Contract) Code() []byte {
	return contract.code
}

// URefsLookup - shared read-only view of the capability table
func (contract *Contract) URefsLookup() storekey.NamedKeys {
	return contract.knownURefs
}

// InsertURefs - merge an incoming capability table, last write wins
//
// the executable bytes stay immutable; only the table can grow
func (contract *Contract) InsertURefs(incoming storekey.NamedKeys) {
	contract.knownURefs.Merge(incoming)
}

// Pack - tag ++ code ++ capability table
func (contract *Contract) Pack(buffer codec.Packed) codec.Packed {
	buffer = codec.AppendUint8(buffer, uint8(ContractTag))
	buffer = codec.AppendBytes(buffer, contract.code)
	return contract.knownURefs.Pack(buffer)
}

func (contract *Contract) Tag() TagType       { return ContractTag }
func (contract *Contract) TypeString() string { return "Contract" }

// consume the payload following a contract tag
func unpackContract(buffer codec.Packed) (*Contract, codec.Packed, error) {
	code, rest, err := codec.DecodeBytes(buffer)
	if nil != err {
		return nil, nil, err
	}
	knownURefs, rest, err := storekey.DecodeNamedKeys(rest)
	if nil != err {
		return nil, nil, err
	}
	return NewContract(code, knownURefs), rest, nil
}
