// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2020 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package fault

// error base
type GenericError string

// to allow for different classes of errors
type AccessError GenericError
type ExistsError GenericError
type InvalidError GenericError
type LengthError GenericError
type NotFoundError GenericError
type ProcessError GenericError

// common errors - keep in alphabetic order
var (
	ErrAccessDenied            = AccessError("access denied")
	ErrAccountAlreadyExists    = ExistsError("account already exists")
	ErrAccountDoesNotExist     = NotFoundError("account does not exist")
	ErrAddIncompatibleType     = ProcessError("add with incompatible stored type")
	ErrAlreadyInitialised      = ProcessError("already initialised")
	ErrEarlyEndOfInput         = LengthError("early end of input")
	ErrFunctionNotFound        = NotFoundError("function is not registered")
	ErrInvalidAccessRights     = InvalidError("access rights are invalid")
	ErrInvalidLoggerChannel    = InvalidError("logger channel failed")
	ErrInvalidStructure        = InvalidError("formatting error")
	ErrInvalidValueTag         = InvalidError("value tag is not in the known set")
	ErrKeyLength               = LengthError("key length is invalid")
	ErrNotInitialised          = ProcessError("not initialised")
	ErrSerializationImpossible = ProcessError("value cannot be serialized")
	ErrUnexpectedKeyVariant    = InvalidError("unexpected key variant")
	ErrWrongValueType          = InvalidError("stored value has a different type")
)

// the error interface base method
func (e GenericError) Error() string { return string(e) }

// the error interface methods
func (e AccessError) Error() string   { return string(e) }
func (e ExistsError) Error() string   { return string(e) }
func (e InvalidError) Error() string  { return string(e) }
func (e LengthError) Error() string   { return string(e) }
func (e NotFoundError) Error() string { return string(e) }
func (e ProcessError) Error() string  { return string(e) }

// determine the class of an error
func IsErrAccess(e error) bool   { _, ok := e.(AccessError); return ok }
func IsErrExists(e error) bool   { _, ok := e.(ExistsError); return ok }
func IsErrInvalid(e error) bool  { _, ok := e.(InvalidError); return ok }
func IsErrLength(e error) bool   { _, ok := e.(LengthError); return ok }
func IsErrNotFound(e error) bool { _, ok := e.(NotFoundError); return ok }
func IsErrProcess(e error) bool  { _, ok := e.(ProcessError); return ok }
