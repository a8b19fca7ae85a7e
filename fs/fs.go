/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

// Package fs provides the filesystem capability used when resolving
// configuration groups. Globbing and resource reads go through this
// interface so tests can substitute an in-memory implementation.
package fs

import (
	"io/fs"
	"os"
)

// FileSystem is the read-only view of a project tree that group
// resolution needs. Paths are absolute, slash-separated.
type FileSystem interface {
	// ReadFile reads the entire contents of a file.
	ReadFile(name string) ([]byte, error)

	// ReadDir lists a directory. Implementing this makes a FileSystem
	// an fs.ReadDirFS, which fs.WalkDir uses directly.
	ReadDir(name string) ([]fs.DirEntry, error)

	Stat(name string) (fs.FileInfo, error)
	Exists(path string) bool

	// fs.FS compatibility - allows use with fs.WalkDir
	Open(name string) (fs.File, error)
}

// OSFileSystem implements FileSystem using the standard os package.
type OSFileSystem struct{}

// NewOSFileSystem creates a new filesystem that uses the standard os package.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

// ReadFile reads the entire contents of a file.
func (f *OSFileSystem) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

// ReadDir reads the named directory and returns its entries.
func (f *OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) {
	return os.ReadDir(name)
}

// Stat returns file information for the named file.
func (f *OSFileSystem) Stat(name string) (fs.FileInfo, error) {
	return os.Stat(name)
}

// Exists returns true if the path exists.
func (f *OSFileSystem) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Open opens the named file for reading.
func (f *OSFileSystem) Open(name string) (fs.File, error) {
	return os.Open(name)
}

// IsDir reports whether name exists and is a directory.
func IsDir(filesystem FileSystem, name string) bool {
	info, err := filesystem.Stat(name)
	return err == nil && info.IsDir()
}

// IsFile reports whether name exists and is not a directory.
func IsFile(filesystem FileSystem, name string) bool {
	info, err := filesystem.Stat(name)
	return err == nil && !info.IsDir()
}
