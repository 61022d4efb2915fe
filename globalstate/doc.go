// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package globalstate - reference state backend
//
// an in-process implementation of the storage host transport over a
// single LevelDB database, for nodes and tests; a production trie
// backed store satisfies the same interface
//
// the database is split into pools by a single byte prefix:
//
//   G ++ packed key            - global partition
//                                data: packed value
//   L ++ seed ++ local key     - context local partition
//                                data: packed value
//   C ++ name                  - control records
//                                data: mint counter, version
//
// writes accumulate in a batch and land atomically when the
// invocation commits; an abort throws the whole batch away, so a
// reverted invocation leaves no trace
//
// the add operation combines with the stored value per type:
//   Int32        + Int32        = wrapping sum
//   List[Int32]  + List[Int32]  = concatenation
//   List[String] + List[String] = concatenation
//   Account      + NamedKey     = table merge, last write wins
//   Contract     + NamedKey     = table merge, last write wins
// any other pairing traps and reverts the invocation
package globalstate
