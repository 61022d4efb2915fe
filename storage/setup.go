// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package storage

import (
	"sync"

	"github.com/bitmark-inc/logger"

	"github.com/capnode/capstate/fault"
)

// holds the injected host transport
var globalData struct {
	sync.RWMutex
	host Host
	log  *logger.L
}

// Initialise - inject the host transport
//
// this must be called before any operation is attempted
func Initialise(host Host) error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil != globalData.host {
		return fault.ErrAlreadyInitialised
	}
	if nil == host {
		return fault.ErrNotInitialised
	}

	globalData.log = logger.New("storage")
	globalData.host = host
	globalData.log.Info("initialise")
	return nil
}

// Finalise - drop the host transport
func Finalise() error {
	globalData.Lock()
	defer globalData.Unlock()

	if nil == globalData.host {
		return fault.ErrNotInitialised
	}

	globalData.log.Info("finalise")
	globalData.log.Flush()
	globalData.host = nil
	return nil
}

// fetch the transport or abort: an operation without a host is a
// wiring error, not a recoverable condition
func transport() Host {
	globalData.RLock()
	host := globalData.host
	globalData.RUnlock()

	if nil == host {
		fault.PanicWithError("storage: no host transport", fault.ErrNotInitialised)
	}
	return host
}
