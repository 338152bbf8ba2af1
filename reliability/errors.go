// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package reliability

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyGraph is returned for a graph without edges.
	ErrEmptyGraph = errors.New("the graph is empty")
	// ErrIncompatibleOptions is returned when all-terminal reliability is
	// requested together with imperfect vertices.
	ErrIncompatibleOptions = errors.New("all-terminal reliability is not compatible with imperfect vertices")
	// ErrTooLarge is returned by BruteForce when there are too many components
	// to enumerate.
	ErrTooLarge = errors.New("too many components for an exhaustive enumeration")
)

// ConfigurationError reports a problem with the parameters of a computation,
// detected before any diagram is built.
type ConfigurationError struct {
	Op  string
	Err error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Op, e.Err)
}

func (e *ConfigurationError) Unwrap() error { return e.Err }

// InputError reports an unreadable or malformed input file.
type InputError struct {
	Path string
	Err  error
}

func (e *InputError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("input error: %s", e.Err)
	}
	return fmt.Sprintf("input error in %s: %s", e.Path, e.Err)
}

func (e *InputError) Unwrap() error { return e.Err }
