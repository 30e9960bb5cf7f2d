//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package logging

import (
	"os"
	"strings"
	"sync"
)

type Level int

const (
	NONE   = Level(iota) // Disable all logging
	FATAL                // System is in severe error state and has to terminate
	SEVERE               // System is in severe error state and cannot recover reliably
	ERROR                // System is in error state but can recover and continue reliably
	WARN                 // System approaching error state, or is in a correct but undesirable state
	INFO                 // System-level events and status, in correct states
	DEBUG                // Debug
	TRACE                // Trace detailed system execution, e.g. function entry / exit
)

func (level Level) String() string {
	return _LEVEL_NAMES[level]
}

var _LEVEL_NAMES = []string{
	DEBUG:  "DEBUG",
	TRACE:  "TRACE",
	INFO:   "INFO",
	WARN:   "WARN",
	ERROR:  "ERROR",
	SEVERE: "SEVERE",
	FATAL:  "FATAL",
	NONE:   "NONE",
}

var _LEVEL_MAP = map[string]Level{
	"debug":  DEBUG,
	"trace":  TRACE,
	"info":   INFO,
	"warn":   WARN,
	"error":  ERROR,
	"severe": SEVERE,
	"fatal":  FATAL,
	"none":   NONE,
}

func ParseLevel(name string) (level Level, ok bool) {
	level, ok = _LEVEL_MAP[strings.ToLower(name)]
	return
}

// cache logging enablement to improve runtime performance (reduces
// from multiple tests to a single test on each call)
var (
	cachedDebug bool
	cachedTrace bool
	cachedInfo  bool
	cachedWarn  bool
	cachedError bool
)

// maintain the cached logging state
func cacheLoggingChange() {
	cachedDebug = logger.Level() >= DEBUG
	cachedTrace = logger.Level() >= TRACE
	cachedInfo = logger.Level() >= INFO
	cachedWarn = logger.Level() >= WARN
	cachedError = logger.Level() >= ERROR
}

type Logger interface {
	Level() Level
	SetLevel(Level)

	Fatalf(fmt string, args ...interface{})
	Severef(fmt string, args ...interface{})
	Errorf(fmt string, args ...interface{})
	Warnf(fmt string, args ...interface{})
	Infof(fmt string, args ...interface{})
	Debugf(fmt string, args ...interface{})
	Tracef(fmt string, args ...interface{})
}

var (
	logger Logger
	lock   sync.Mutex
)

func init() {
	logger = NewLogger(os.Stderr, INFO)
	cacheLoggingChange()
}

func SetLogger(newLogger Logger) {
	lock.Lock()
	defer lock.Unlock()
	logger = newLogger
	cacheLoggingChange()
}

func SetLevel(level Level) {
	lock.Lock()
	defer lock.Unlock()
	logger.SetLevel(level)
	cacheLoggingChange()
}

func LogLevel() Level {
	return logger.Level()
}

func Fatalf(fmt string, args ...interface{}) {
	logger.Fatalf(fmt, args...)
}

func Severef(fmt string, args ...interface{}) {
	logger.Severef(fmt, args...)
}

func Errorf(fmt string, args ...interface{}) {
	if !cachedError {
		return
	}
	logger.Errorf(fmt, args...)
}

func Warnf(fmt string, args ...interface{}) {
	if !cachedWarn {
		return
	}
	logger.Warnf(fmt, args...)
}

func Infof(fmt string, args ...interface{}) {
	if !cachedInfo {
		return
	}
	logger.Infof(fmt, args...)
}

func Debugf(fmt string, args ...interface{}) {
	if !cachedDebug {
		return
	}
	logger.Debugf(fmt, args...)
}

func Tracef(fmt string, args ...interface{}) {
	if !cachedTrace {
		return
	}
	logger.Tracef(fmt, args...)
}
