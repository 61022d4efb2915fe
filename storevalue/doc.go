// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package storevalue - the closed union of storable values
//
// every record in global state is one of these variants; the wire
// form is one tag byte followed by the variant payload built from the
// codec primitives
//
// the tag set is closed and version pinned: state commitments hash
// these exact bytes, so adding a variant must append a new tag and an
// existing tag's payload shape can never be reinterpreted
//
// unpacking an unknown tag is a formatting error, never a default
package storevalue
