// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package fault - error instances
//
// Provides a single instance of errors to allow easy comparison
// without having to resort to partial string matches
//
// Also provides the abort helpers used for unrecoverable conditions:
// an abort logs to the PANIC channel and then panics carrying the
// error instance so the invocation harness can report the reason.
package fault
