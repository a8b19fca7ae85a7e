/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package group

import (
	"errors"
	"fmt"
)

// Sentinel errors for group configuration.
var (
	// ErrUnknownOption indicates an unrecognized configuration key.
	ErrUnknownOption = errors.New("unknown configuration option")

	// ErrNoConfigure indicates an extension module without a Configure method.
	ErrNoConfigure = errors.New("has no 'configure' method")

	// ErrInvalidServer indicates a server address that cannot be parsed.
	ErrInvalidServer = errors.New("invalid server address")
)

// unknownOptionHelp maps common typos to a hint.
var unknownOptionHelp = map[string]string{
	"load":     "Did you mean one of: deps, libs, src, sources, testLibs, tests, specLibs, specs?",
	"extend":   "Did you mean extends?",
	"resource": "Did you mean resources?",
	"root":     "Did you mean rootPath?",
}

// UnknownOptionError reports a configuration key the group does not know.
type UnknownOptionError struct {
	Option string
	Hint   string
}

func (e *UnknownOptionError) Error() string {
	msg := fmt.Sprintf("Unknown configuration option '%s'", e.Option)
	if e.Hint != "" {
		msg += "\n" + e.Hint
	}
	return msg
}

func (e *UnknownOptionError) Unwrap() error {
	return ErrUnknownOption
}

// ExtensionError wraps a failure to load or configure an extension.
type ExtensionError struct {
	Err error
}

func (e *ExtensionError) Error() string {
	return "Failed loading extensions: " + e.Err.Error()
}

func (e *ExtensionError) Unwrap() error {
	return e.Err
}
