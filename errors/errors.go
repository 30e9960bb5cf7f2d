//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

/*
Package errors provides user-visible errors and warnings. These
errors include error codes and will eventually provide multi-language
messages.
*/
package errors

import (
	"fmt"
	"path"
	"runtime"
	"strings"
)

const (
	EXCEPTION = iota
	ERROR
	WARNING
	NOTICE
	INFO
	LOG
	DEBUG
)

type ErrorCode int32

type Errors []Error

// Error will eventually include code, message key, and internal error
// object (cause) and message
type Error interface {
	error
	Code() ErrorCode
	TranslationKey() string
	GetICause() error
	Level() int
	IsFatal() bool
	IsWarning() bool
}

type ErrorChannel chan Error

func NewError(e error, internalMsg string) Error {
	switch e := e.(type) {
	case Error: // if given error is already an Error, just return it:
		return e
	default:
		return &err{level: EXCEPTION, ICode: E_INTERNAL, IKey: "Internal Error", ICause: e,
			InternalMsg: internalMsg, InternalCaller: CallerN(1)}
	}
}

func NewWarning(internalMsg string) Error {
	return &err{level: WARNING, InternalMsg: internalMsg, InternalCaller: CallerN(1)}
}

type err struct {
	ICode          ErrorCode
	IKey           string
	ICause         error
	InternalMsg    string
	InternalCaller string
	level          int
}

func (e *err) Error() string {
	switch {
	default:
		return "Unspecified error."
	case e.InternalMsg != "" && e.ICause != nil:
		return e.InternalMsg + " - cause: " + e.ICause.Error()
	case e.InternalMsg != "":
		return e.InternalMsg
	case e.ICause != nil:
		return e.ICause.Error()
	}
}

func (e *err) Level() int {
	return e.level
}

func (e *err) IsFatal() bool {
	return e.level == EXCEPTION
}

func (e *err) IsWarning() bool {
	return e.level == WARNING
}

func (e *err) Code() ErrorCode {
	return e.ICode
}

func (e *err) TranslationKey() string {
	return e.IKey
}

func (e *err) GetICause() error {
	return e.ICause
}

const E_INTERNAL ErrorCode = 5000

func Caller() string {
	return CallerN(1)
}

// Returns "FileName:LineNum" of the Nth caller on the call stack,
// where level of 0 is the caller of CallerN.
func CallerN(level int) string {
	_, fname, lineno, ok := runtime.Caller(1 + level)
	if !ok {
		return "unknown:0"
	}
	return fmt.Sprintf("%s:%d",
		strings.Split(path.Base(fname), ".")[0], lineno)
}
