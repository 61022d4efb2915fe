// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage_test

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/bitmark-inc/logger"
	"github.com/stretchr/testify/assert"

	"github.com/capnode/capstate/codec"
	"github.com/capnode/capstate/fault"
	"github.com/capnode/capstate/storage"
	"github.com/capnode/capstate/storekey"
	"github.com/capnode/capstate/storevalue"
)

const (
	testingDirName = "testing"
)

func setupTestLogger() {
	removeFiles()
	_ = os.Mkdir(testingDirName, 0700)

	logging := logger.Configuration{
		Directory: testingDirName,
		File:      "testing.log",
		Size:      1048576,
		Count:     10,
		Console:   false,
		Levels: map[string]string{
			logger.DefaultTag: "critical",
		},
	}

	// start logging
	_ = logger.Initialise(logging)
}

func teardownTestLogger() {
	logger.Finalise()
	removeFiles()
}

func removeFiles() {
	_ = os.RemoveAll(testingDirName)
}

// minimal in-memory host for exercising the API layer
type fakeHost struct {
	global map[string][]byte
	local  map[string][]byte
	minted uint64
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		global: map[string][]byte{},
		local:  map[string][]byte{},
	}
}

func (h *fakeHost) ReadValue(key []byte) ([]byte, bool) {
	data, ok := h.global[string(key)]
	return data, ok
}

func (h *fakeHost) ReadValueLocal(key []byte) ([]byte, bool) {
	data, ok := h.local[string(key)]
	return data, ok
}

func (h *fakeHost) Write(key []byte, value []byte) {
	h.global[string(key)] = value
}

func (h *fakeHost) WriteLocal(key []byte, value []byte) {
	h.local[string(key)] = value
}

func (h *fakeHost) Add(key []byte, value []byte) {
	// only int32 addition, anything else traps like a real backend
	stored, ok := h.global[string(key)]
	if !ok {
		h.global[string(key)] = value
		return
	}
	storedValue, err := storevalue.ValueFromBytes(stored)
	fault.PanicIfError("fake host add", err)
	incomingValue, err := storevalue.ValueFromBytes(value)
	fault.PanicIfError("fake host add", err)

	storedInt, ok1 := storedValue.(storevalue.Int32)
	incomingInt, ok2 := incomingValue.(storevalue.Int32)
	if !ok1 || !ok2 {
		fault.PanicWithError("fake host add", fault.ErrAddIncompatibleType)
	}
	h.global[string(key)] = storevalue.Bytes(storedInt + incomingInt)
}

func (h *fakeHost) mintAddress() codec.Address {
	h.minted += 1
	var address codec.Address
	binary.LittleEndian.PutUint64(address[:], h.minted)
	return address
}

func (h *fakeHost) NewURef(value []byte) []byte {
	uref := storekey.NewURef(h.mintAddress(), storekey.ReadAddWrite)
	h.global[string(uref.Key().StateBytes())] = value
	return uref.Key().Bytes()
}

func (h *fakeHost) StoreFunction(name string, namedKeys []byte) codec.Address {
	address := h.mintAddress()
	h.global[string(storekey.NewURef(address, storekey.ReadAddWrite).Key().StateBytes())] = nil
	return address
}

func (h *fakeHost) StoreFunctionAtHash(name string, namedKeys []byte) codec.Address {
	address := h.mintAddress()
	h.global[string(storekey.HashKey(address).Bytes())] = nil
	return address
}

func setup(t *testing.T) *fakeHost {
	setupTestLogger()
	host := newFakeHost()
	if err := storage.Initialise(host); nil != err {
		t.Fatalf("initialise error: %s", err)
	}
	return host
}

func teardown() {
	_ = storage.Finalise()
	teardownTestLogger()
}

// run an operation expected to abort and report the recovered reason
func abortReason(f func()) (reason interface{}) {
	defer func() {
		reason = recover()
	}()
	f()
	return nil
}

// mint, read back, overwrite, read again
func TestNewTURefReadWrite(t *testing.T) {
	_ = setup(t)
	defer teardown()

	ref := storage.NewTURef(storevalue.String("hi"))
	assert.Equal(t, storevalue.StringTag, ref.ValueTag(), "wrong bound tag")
	assert.True(t, ref.URef().Rights.Has(storekey.ReadAddWrite), "minted rights must be full")

	value, err := storage.Read(ref)
	assert.Nil(t, err, "read error")
	assert.Equal(t, storevalue.String("hi"), value, "wrong value")

	storage.Write(ref, storevalue.String("bye"))
	value, err = storage.Read(ref)
	assert.Nil(t, err, "read error")
	assert.Equal(t, storevalue.String("bye"), value, "wrong value after overwrite")
}

// absent is a nil result, not an error
func TestReadAbsent(t *testing.T) {
	_ = setup(t)
	defer teardown()

	ref := storage.NewTRef(storekey.NewURef(codec.Address{0x99}, storekey.Read), storevalue.Int32Tag)
	value, err := storage.Read(ref)
	assert.Nil(t, err, "read error")
	assert.Nil(t, value, "absent must be nil")

	value, err = storage.ReadLocal([]byte("nobody home"))
	assert.Nil(t, err, "read local error")
	assert.Nil(t, value, "absent must be nil")
}

// malformed stored bytes surface as a typed decode error
func TestReadMalformed(t *testing.T) {
	host := setup(t)
	defer teardown()

	uref := storekey.NewURef(codec.Address{0x42}, storekey.Read)
	host.global[string(uref.Key().StateBytes())] = []byte{0xff, 0x01}

	_, err := storage.Read(storage.NewTRef(uref, storevalue.Int32Tag))
	assert.Equal(t, fault.ErrInvalidValueTag, err, "wrong error")
}

// a stored value of a different type than the reference promises
func TestReadWrongType(t *testing.T) {
	host := setup(t)
	defer teardown()

	uref := storekey.NewURef(codec.Address{0x43}, storekey.Read)
	host.global[string(uref.Key().StateBytes())] = storevalue.Bytes(storevalue.String("text"))

	_, err := storage.Read(storage.NewTRef(uref, storevalue.Int32Tag))
	assert.Equal(t, fault.ErrWrongValueType, err, "wrong error")
}

// rights enforcement for every operation
func TestAccessEnforcement(t *testing.T) {
	_ = setup(t)
	defer teardown()

	address := codec.Address{0x77}

	// read only: write and add must abort
	readOnly := storage.NewTRef(storekey.NewURef(address, storekey.Read), storevalue.Int32Tag)
	reason := abortReason(func() { storage.Write(readOnly, storevalue.Int32(1)) })
	assert.Equal(t, fault.ErrAccessDenied, reason, "write with read rights")
	reason = abortReason(func() { storage.Add(readOnly, storevalue.Int32(1)) })
	assert.Equal(t, fault.ErrAccessDenied, reason, "add with read rights")

	// write implies add but not read
	writeOnly := storage.NewTRef(storekey.NewURef(address, storekey.Write), storevalue.Int32Tag)
	reason = abortReason(func() { storage.Write(writeOnly, storevalue.Int32(1)) })
	assert.Nil(t, reason, "write with write rights must pass")
	reason = abortReason(func() { storage.Add(writeOnly, storevalue.Int32(1)) })
	assert.Nil(t, reason, "add with write rights must pass")
	reason = abortReason(func() { _, _ = storage.Read(writeOnly) })
	assert.Equal(t, fault.ErrAccessDenied, reason, "read with write rights")

	// add only: read and write must abort
	addOnly := storage.NewTRef(storekey.NewURef(address, storekey.Add), storevalue.Int32Tag)
	reason = abortReason(func() { storage.Add(addOnly, storevalue.Int32(1)) })
	assert.Nil(t, reason, "add with add rights must pass")
	reason = abortReason(func() { storage.Write(addOnly, storevalue.Int32(1)) })
	assert.Equal(t, fault.ErrAccessDenied, reason, "write with add rights")
	reason = abortReason(func() { _, _ = storage.Read(addOnly) })
	assert.Equal(t, fault.ErrAccessDenied, reason, "read with add rights")
}

// urefs to one address with different rights share one state cell
func TestAttenuatedURefSameCell(t *testing.T) {
	_ = setup(t)
	defer teardown()

	full := storage.NewTURef(storevalue.String("hi"))

	// hand out a read-only capability to the same address
	readOnly := storage.NewTRef(
		storekey.NewURef(full.URef().Address, storekey.Read),
		storevalue.StringTag,
	)
	assert.True(t, readOnly.Key().Equal(full.Key()), "keys must be identical")

	value, err := storage.Read(readOnly)
	assert.Nil(t, err, "read error")
	assert.Equal(t, storevalue.String("hi"), value, "attenuated read must see the cell")

	// a write through a differently attenuated uref lands in the
	// same cell, not a parallel one
	writeOnly := storage.NewTRef(
		storekey.NewURef(full.URef().Address, storekey.Write),
		storevalue.StringTag,
	)
	storage.Write(writeOnly, storevalue.String("bye"))

	value, err = storage.Read(full)
	assert.Nil(t, err, "read error")
	assert.Equal(t, storevalue.String("bye"), value, "write must land in the shared cell")
}

// the backend combines like types, traps on mismatch
func TestAdd(t *testing.T) {
	_ = setup(t)
	defer teardown()

	ref := storage.NewTURef(storevalue.Int32(40))
	storage.Add(ref, storevalue.Int32(2))

	value, err := storage.Read(ref)
	assert.Nil(t, err, "read error")
	assert.Equal(t, storevalue.Int32(42), value, "wrong sum")

	// a numeric add onto a stored string traps at the host boundary
	text := storage.NewTURef(storevalue.String("hi"))
	mismatched := storage.NewTRef(text.URef(), storevalue.Int32Tag)
	reason := abortReason(func() { storage.Add(mismatched, storevalue.Int32(1)) })
	assert.Equal(t, fault.ErrAddIncompatibleType, reason, "wrong abort reason")
}

// the local partition has no rights gate
func TestLocalPartition(t *testing.T) {
	_ = setup(t)
	defer teardown()

	key := codec.AppendString(codec.Packed{}, "session")
	storage.WriteLocal(key, storevalue.ListInt32{1, 2, 3})

	value, err := storage.ReadLocal(key)
	assert.Nil(t, err, "read local error")
	assert.Equal(t, storevalue.ListInt32{1, 2, 3}, value, "wrong value")
}

// writing a value that does not match the reference's promise aborts
func TestWriteWrongType(t *testing.T) {
	_ = setup(t)
	defer teardown()

	ref := storage.NewTURef(storevalue.Int32(1))
	reason := abortReason(func() { storage.Write(ref, storevalue.String("no")) })
	assert.Equal(t, fault.ErrWrongValueType, reason, "wrong abort reason")

	reason = abortReason(func() { storage.Write(ref, nil) })
	assert.Equal(t, fault.ErrSerializationImpossible, reason, "wrong abort reason")
}

// store function registration under both addressing schemes
func TestStoreFunction(t *testing.T) {
	_ = setup(t)
	defer teardown()

	namedKeys := storekey.NamedKeys{
		"counter": storage.NewTURef(storevalue.Int32(0)).Key(),
	}

	mutable := storage.StoreFunction("do_thing", namedKeys)
	assert.False(t, mutable.IsHash(), "expected the uref scheme")
	uref, err := mutable.URef()
	assert.Nil(t, err, "uref error")
	assert.True(t, uref.Rights.Has(storekey.ReadAddWrite), "registration rights must be full")

	immutable := storage.StoreFunctionAtHash("do_thing", namedKeys)
	assert.True(t, immutable.IsHash(), "expected the hash scheme")
	_, err = immutable.URef()
	assert.Equal(t, fault.ErrUnexpectedKeyVariant, err, "wrong error")
}

// a hash key can never become a typed capability reference
func TestTRefFromKeyVariant(t *testing.T) {
	hash := storekey.HashKey(codec.Address{0x01})
	_, err := storage.TRefFromKey(hash, storevalue.Int32Tag)
	assert.Equal(t, fault.ErrUnexpectedKeyVariant, err, "wrong error")

	uref := storekey.NewURef(codec.Address{0x02}, storekey.Read).Key()
	ref, err := storage.TRefFromKey(uref, storevalue.StringTag)
	assert.Nil(t, err, "unexpected error")
	assert.Equal(t, storevalue.StringTag, ref.ValueTag(), "wrong bound tag")
	assert.True(t, ref.Key().Equal(uref), "erasure must preserve identity")
}

// operations without an injected host abort rather than misbehave
func TestUninitialised(t *testing.T) {
	setupTestLogger()
	defer teardownTestLogger()

	ref := storage.NewTRef(storekey.NewURef(codec.Address{}, storekey.Read), storevalue.Int32Tag)
	reason := abortReason(func() { _, _ = storage.Read(ref) })
	assert.Equal(t, fault.ErrNotInitialised, reason, "wrong abort reason")
}
