// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package globalstate

import (
	"encoding/binary"
	"sync"

	"github.com/bitmark-inc/logger"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_opt "github.com/syndtr/goleveldb/leveldb/opt"

	"github.com/capnode/capstate/codec"
	"github.com/capnode/capstate/fault"
	"github.com/capnode/capstate/storage"
)

// pool prefix bytes
const (
	globalPrefix  = 'G'
	localPrefix   = 'L'
	controlPrefix = 'C'
)

// control record names
var (
	versionKey = []byte{controlPrefix, 'V', 'E', 'R', 'S', 'I', 'O', 'N'}
	counterKey = []byte{controlPrefix, 'C', 'O', 'U', 'N', 'T', 'E', 'R'}
)

const currentDBVersion = 0x100

// holds the database handle and the current invocation state
var globalData struct {
	sync.RWMutex
	db        *leveldb.DB
	batch     *leveldb.Batch
	cache     Cache
	functions map[string][]byte
	seed      codec.Address
	counter   uint64
	log       *logger.L
}

// Initialise - open the database
//
// this must be called before the transport is handed to the storage
// layer
func Initialise(database string) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.db {
		return fault.ErrAlreadyInitialised
	}

	globalData.log = logger.New("globalstate")

	db, err := leveldb.OpenFile(database, &ldb_opt.Options{})
	if nil != err {
		return err
	}

	// ensure no database downgrade
	version, err := db.Get(versionKey, nil)
	switch err {
	case nil:
		stored := binary.BigEndian.Uint32(version)
		if stored > currentDBVersion {
			_ = db.Close()
			globalData.log.Criticalf("database version: %d > current version: %d", stored, currentDBVersion)
			return fault.ErrInvalidStructure
		}
	case leveldb.ErrNotFound:
		scratch := make([]byte, 4)
		binary.BigEndian.PutUint32(scratch, currentDBVersion)
		err = db.Put(versionKey, scratch, nil)
		if nil != err {
			_ = db.Close()
			return err
		}
	default:
		_ = db.Close()
		return err
	}

	counter := uint64(0)
	if data, err := db.Get(counterKey, nil); nil == err {
		counter = binary.BigEndian.Uint64(data)
	}

	globalData.db = db
	globalData.batch = new(leveldb.Batch)
	globalData.cache = newCache()
	globalData.functions = map[string][]byte{}
	globalData.counter = counter
	globalData.log.Infof("initialise: %q  mint counter: %d", database, counter)
	return nil
}

// Finalise - close the database
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.db {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("finalise")
	globalData.log.Flush()
	err := globalData.db.Close()
	globalData.db = nil
	globalData.batch = nil
	globalData.cache = nil
	globalData.functions = nil
	return err
}

// Transport - the host transport singleton for the storage layer
func Transport() storage.Host {
	return backend{}
}

// RegisterFunction - bind an exported function name to its bytes
//
// stands in for the execution environment's export table
func RegisterFunction(name string, code []byte) {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.db {
		fault.PanicWithError("globalstate.RegisterFunction", fault.ErrNotInitialised)
	}
	globalData.functions[name] = code
}

// BeginInvocation - start an invocation scope
//
// seed selects the context local partition; all writes accumulate in
// the batch until commit
func BeginInvocation(seed codec.Address) {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.db {
		fault.PanicWithError("globalstate.BeginInvocation", fault.ErrNotInitialised)
	}
	globalData.seed = seed
	globalData.log.Debugf("begin invocation: seed: %x", seed)
}

// CommitInvocation - land every pending write atomically
func CommitInvocation() error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.db {
		return fault.ErrNotInitialised
	}

	scratch := make([]byte, 8)
	binary.BigEndian.PutUint64(scratch, globalData.counter)
	globalData.batch.Put(counterKey, scratch)

	err := globalData.db.Write(globalData.batch, nil)
	globalData.batch.Reset()
	globalData.log.Debug("commit invocation")
	return err
}

// AbortInvocation - throw every pending write away
//
// a reverted invocation leaves no partial state
func AbortInvocation() {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.db {
		return
	}
	globalData.batch.Reset()
	globalData.cache.Clear()
	globalData.log.Debug("abort invocation")
}
