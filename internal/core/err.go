package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrGeometry       = errors.New("geometry unsupported")
	ErrUnknownDisplay = errors.New("unknown display")
)

// GeometryError reports a screen size that cannot be simulated.
type GeometryError struct {
	Requested Size
	Limit     Size
}

func (e *GeometryError) Error() string {
	return fmt.Sprintf("%v: %dx%d (limit %dx%d, minimum 2x2)",
		ErrGeometry, e.Requested.W, e.Requested.H, e.Limit.W, e.Limit.H)
}

func (e *GeometryError) Unwrap() error { return ErrGeometry }

// UnknownDisplayError names a display missing from the registry.
type UnknownDisplayError struct {
	Name  string
	Known []string
}

func (e *UnknownDisplayError) Error() string {
	return fmt.Sprintf("%v %q (have: %s)", ErrUnknownDisplay, e.Name, strings.Join(e.Known, ", "))
}

func (e *UnknownDisplayError) Unwrap() error { return ErrUnknownDisplay }
