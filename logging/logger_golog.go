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
	"fmt"
	"io"
	"log"
	"sync"
	"time"
)

type goLogger struct {
	mu     sync.Mutex
	logger *log.Logger
	level  Level
}

func NewLogger(out io.Writer, lvl Level) Logger {
	return &goLogger{
		logger: log.New(out, "", 0),
		level:  lvl,
	}
}

func (gl *goLogger) Level() Level {
	return gl.level
}

func (gl *goLogger) SetLevel(lvl Level) {
	gl.level = lvl
}

func (gl *goLogger) logf(level Level, f string, args ...interface{}) {
	if gl.logger == nil || level > gl.level {
		return
	}

	gl.mu.Lock()
	gl.logger.Printf("%s [%s] %s", time.Now().Format("2006-01-02T15:04:05.000-07:00"),
		level, fmt.Sprintf(f, args...))
	gl.mu.Unlock()
}

func (gl *goLogger) Fatalf(f string, args ...interface{}) {
	gl.logf(FATAL, f, args...)
}

func (gl *goLogger) Severef(f string, args ...interface{}) {
	gl.logf(SEVERE, f, args...)
}

func (gl *goLogger) Errorf(f string, args ...interface{}) {
	gl.logf(ERROR, f, args...)
}

func (gl *goLogger) Warnf(f string, args ...interface{}) {
	gl.logf(WARN, f, args...)
}

func (gl *goLogger) Infof(f string, args ...interface{}) {
	gl.logf(INFO, f, args...)
}

func (gl *goLogger) Debugf(f string, args ...interface{}) {
	gl.logf(DEBUG, f, args...)
}

func (gl *goLogger) Tracef(f string, args ...interface{}) {
	gl.logf(TRACE, f, args...)
}
