/*
 * Copyright 2024 The ra Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package xlog provides the logging interface shared across the module,
// mirroring badger's y.Logger so callers can plug in their own sink.
package xlog

import (
	"log"
	"os"
)

// Logger is implemented by any logging system used for the module's
// diagnostic output. Construction paths log at Infof; recoverable
// format quirks log at Warningf. Nothing in the read path (At/Substr) logs.
type Logger interface {
	Errorf(string, ...interface{})
	Warningf(string, ...interface{})
	Infof(string, ...interface{})
	Debugf(string, ...interface{})
}

type defaultLog struct {
	*log.Logger
}

var defaultLogger = &defaultLog{Logger: log.New(os.Stderr, "ra ", log.LstdFlags)}

// Default returns the package-level default logger, which writes to stderr.
func Default() Logger {
	return defaultLogger
}

func (l *defaultLog) Errorf(f string, v ...interface{}) {
	l.Printf("ERROR: "+f, v...)
}

func (l *defaultLog) Warningf(f string, v ...interface{}) {
	l.Printf("WARNING: "+f, v...)
}

func (l *defaultLog) Infof(f string, v ...interface{}) {
	l.Printf("INFO: "+f, v...)
}

func (l *defaultLog) Debugf(f string, v ...interface{}) {
	l.Printf("DEBUG: "+f, v...)
}

// noopLog discards everything. Useful in tests that don't want stderr noise.
type noopLog struct{}

// Noop returns a Logger that discards all messages.
func Noop() Logger { return noopLog{} }

func (noopLog) Errorf(string, ...interface{})   {}
func (noopLog) Warningf(string, ...interface{}) {}
func (noopLog) Infof(string, ...interface{})    {}
func (noopLog) Debugf(string, ...interface{})   {}
