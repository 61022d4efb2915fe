// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storage - the contract facing global state operations
//
// a contract reaches global state only through this package: each
// operation packs its value with the canonical codec, proves its
// capability (the rights bits on the uref in hand) and crosses the
// injected host boundary as a single synchronous call
//
// failure policy:
// 1. absent            = nil result, not an error
// 2. malformed data    = typed decode error returned to the caller
// 3. access denied     = abort, the invocation cannot continue
// 4. wrong key variant = abort
// 5. unpackable value  = abort, programming error
//
// an abort panics carrying the fault error instance; the execution
// harness recovers it at the invocation boundary and reverts, so no
// partial writes survive
package storage
