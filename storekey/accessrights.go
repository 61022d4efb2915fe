// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storekey

import (
	"strings"

	"github.com/capnode/capstate/fault"
)

// AccessRights - capability bits carried by a uref
type AccessRights uint8

// individual rights bits
const (
	None  AccessRights = 0x00
	Read  AccessRights = 0x01
	Write AccessRights = 0x02
	Add   AccessRights = 0x04

	// composites
	ReadWrite    AccessRights = Read | Write
	ReadAdd      AccessRights = Read | Add
	AddWrite     AccessRights = Add | Write
	ReadAddWrite AccessRights = Read | Add | Write

	// mask of all valid bits
	rightsLimit AccessRights = ReadAddWrite
)

// Has - true if every bit of required is present
func (rights AccessRights) Has(required AccessRights) bool {
	return required == rights&required
}

// CanRead - read operations need the read bit
func (rights AccessRights) CanRead() bool {
	return rights.Has(Read)
}

// CanWrite - write operations need the write bit
func (rights AccessRights) CanWrite() bool {
	return rights.Has(Write)
}

// CanAdd - add operations accept either the add or the write bit
func (rights AccessRights) CanAdd() bool {
	return rights.Has(Add) || rights.Has(Write)
}

// IsValid - no bits outside the defined set
func (rights AccessRights) IsValid() bool {
	return rights == rights&rightsLimit
}

// convert rights bits to a symbolic form for logs and error messages
func (rights AccessRights) String() string {
	if None == rights {
		return "NONE"
	}
	parts := make([]string, 0, 3)
	if rights.Has(Read) {
		parts = append(parts, "READ")
	}
	if rights.Has(Add) {
		parts = append(parts, "ADD")
	}
	if rights.Has(Write) {
		parts = append(parts, "WRITE")
	}
	if !rights.IsValid() {
		parts = append(parts, "INVALID")
	}
	return strings.Join(parts, "_")
}

// decode a rights byte, rejecting undefined bits
func decodeAccessRights(b uint8) (AccessRights, error) {
	rights := AccessRights(b)
	if !rights.IsValid() {
		return None, fault.ErrInvalidAccessRights
	}
	return rights, nil
}
