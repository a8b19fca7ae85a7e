/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package logger provides the printf-style logger used while resolving
// configuration groups. Debug output is off unless verbose mode is set.
package logger

import (
	"io"
	"log"
	"os"
	"sync"
)

var (
	mu      sync.RWMutex
	output  io.Writer = os.Stderr
	logger            = log.New(output, "", 0)
	verbose bool
)

// SetOutput configures the logger output destination.
// Use io.Discard to silence all logging.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	logger = log.New(output, "", 0)
}

// SetVerbose enables or disables Debug output.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	current().Printf("warning: "+format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	current().Printf(format, args...)
}

// Debug logs a debug message when verbose mode is on.
func Debug(format string, args ...any) {
	mu.RLock()
	on := verbose
	mu.RUnlock()
	if !on {
		return
	}
	current().Printf("debug: "+format, args...)
}

func current() *log.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return logger
}
