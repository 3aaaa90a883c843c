package settings

import (
	"errors"
	"fmt"
)

var (
	// ErrRead classifies failures to read the settings file.
	ErrRead = errors.New("settings file unreadable")
	// ErrParse classifies malformed settings documents.
	ErrParse = errors.New("settings file malformed")
	// ErrNoHome is returned when the home directory cannot be determined.
	ErrNoHome = errors.New("home directory not set")
)

// ReadError is returned by Load when the settings file cannot be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read settings file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() []error { return []error{ErrRead, e.Err} }

// ParseError is returned by Load when the settings document is malformed.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse settings file %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() []error { return []error{ErrParse, e.Err} }
