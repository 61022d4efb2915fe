// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storekey - the global state address space
//
// three kinds of address:
// 1. account = 32 byte public key hash of an account record
// 2. hash    = 32 byte content derived address of an immutable record
// 3. uref    = 32 byte unforgeable reference minted by the state backend
//
// a uref carries access rights bits alongside its address; possession
// of the uref is possession of the capability - there is no separate
// permission table anywhere.  The rights bits never take part in key
// equality or ordering: identity is variant plus address only.
//
// wire layout (closed tag set, append only):
//   account:  0x00 ++ address
//   hash:     0x01 ++ address
//   uref:     0x02 ++ address ++ rights byte
package storekey
