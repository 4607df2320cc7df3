package models

import (
	"errors"
	"fmt"
)

var (
	// ErrStorage means the selections file could not be read, parsed or written
	ErrStorage = errors.New("storage error")
	// ErrFilesystem means an expected directory or file is missing or unreadable
	ErrFilesystem = errors.New("filesystem error")
	// ErrParse means a name or file does not fit the expected format
	ErrParse = errors.New("parse error")
)

// Error attaches a kind and the offending path to an underlying failure.
type Error struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Kind.Error()
	if e.Op != "" {
		msg += ": " + e.Op
	}
	if e.Path != "" {
		msg += " " + e.Path
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func StorageError(op, path string, err error) error {
	return &Error{Kind: ErrStorage, Op: op, Path: path, Err: err}
}

func FilesystemError(op, path string, err error) error {
	return &Error{Kind: ErrFilesystem, Op: op, Path: path, Err: err}
}

func ParseErrorf(path, format string, args ...any) error {
	return &Error{Kind: ErrParse, Path: path, Err: fmt.Errorf(format, args...)}
}
