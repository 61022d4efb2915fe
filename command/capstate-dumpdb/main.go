// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/bitmark-inc/exitwithstatus"
	"github.com/bitmark-inc/getoptions"
	"github.com/syndtr/goleveldb/leveldb"
	ldb_util "github.com/syndtr/goleveldb/leveldb/util"

	"github.com/capnode/capstate/storekey"
	"github.com/capnode/capstate/storevalue"
)

// set by the linker: go build -ldflags "-X main.version=M.N" ./...
var version = "zero" // do not change this value

// partitions of the state database
var partitions = map[string]byte{
	"global":  'G',
	"local":   'L',
	"control": 'C',
}

// main program
func main() {
	// ensure exit handler is first
	defer exitwithstatus.Handler()

	flags := []getoptions.Option{
		{Long: "help", HasArg: getoptions.NO_ARGUMENT, Short: 'h'},
		{Long: "verbose", HasArg: getoptions.NO_ARGUMENT, Short: 'v'},
		{Long: "version", HasArg: getoptions.NO_ARGUMENT, Short: 'V'},
		{Long: "file", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'f'},
		{Long: "count", HasArg: getoptions.REQUIRED_ARGUMENT, Short: 'c'},
	}

	program, options, arguments, err := getoptions.GetOS(flags)
	if nil != err {
		exitwithstatus.Message("%s: getoptions error: %s", program, err)
	}

	if len(options["version"]) > 0 {
		exitwithstatus.Message("%s: version: %s", program, version)
	}

	if len(options["help"]) > 0 || 0 == len(arguments) || 1 != len(options["file"]) {
		exitwithstatus.Message("usage: %s [--help] [--verbose] [--count=N] --file=FILE partition [key-prefix-hex]", program)
	}

	verbose := len(options["verbose"]) > 0

	count := 10
	if len(options["count"]) > 0 {
		count, err = strconv.Atoi(options["count"][0])
		if nil != err {
			exitwithstatus.Message("%s: convert count error: %s", program, err)
		}
		if count < 1 {
			exitwithstatus.Message("%s: invalid count: %d", program, count)
		}
	}

	filename := options["file"][0]
	partition := arguments[0]

	prefixByte, ok := partitions[partition]
	if !ok {
		exitwithstatus.Message("%s: invalid partition: %q  (expected: global, local or control)", program, partition)
	}

	prefix := []byte{prefixByte}
	if len(arguments) > 1 {
		keyPrefix, err := hex.DecodeString(arguments[1])
		if nil != err {
			exitwithstatus.Message("%s: convert prefix error: %s", program, err)
		}
		prefix = append(prefix, keyPrefix...)
	}

	if verbose {
		fmt.Printf("dump partition: %s from file: %q\n", partition, filename)
	}

	db, err := leveldb.OpenFile(filename, nil)
	if nil != err {
		exitwithstatus.Message("%s: open database error: %s", program, err)
	}
	defer db.Close()

	iterator := db.NewIterator(ldb_util.BytesPrefix(prefix), nil)
	defer iterator.Release()

	n := 0
	for iterator.Next() {
		if n >= count {
			fmt.Printf("...\n")
			break
		}
		n += 1

		rawKey := iterator.Key()[1:] // strip the partition byte
		value := iterator.Value()

		switch prefixByte {
		case 'G':
			printGlobal(rawKey, value, verbose)
		default:
			fmt.Printf("key: %x\ndata: %x\n", rawKey, value)
		}
	}
	if err := iterator.Error(); nil != err {
		exitwithstatus.Message("%s: iterator error: %s", program, err)
	}
}

// decode and display one global partition record
func printGlobal(rawKey []byte, data []byte, verbose bool) {
	key, err := storekey.KeyFromBytes(rawKey)
	if nil != err {
		fmt.Printf("key: %x  (undecodable: %s)\n", rawKey, err)
		fmt.Printf("data: %x\n", data)
		return
	}

	value, err := storevalue.ValueFromBytes(data)
	if nil != err {
		fmt.Printf("key: %s\ndata: %x  (undecodable: %s)\n", key, data, err)
		return
	}

	fmt.Printf("key: %s\ntype: %s\n", key, value.TypeString())
	if verbose {
		fmt.Printf("data: %#v\n", value)
	}
}
