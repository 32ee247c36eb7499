package deskew

import (
	"errors"
	"fmt"
)

// ErrorKind classifies where in the decode/estimate/rotate/encode chain
// a file failed.
type ErrorKind string

const (
	KindDecode      ErrorKind = "decode"
	KindNoSignal    ErrorKind = "no_signal"
	KindGeometry    ErrorKind = "geometry"
	KindEncode      ErrorKind = "encode"
	KindTraversal   ErrorKind = "traversal"
	KindOutputSetup ErrorKind = "output_setup"
)

// ErrNoSignal is reported when automatic estimation found no line
// segments at all in an image.
var ErrNoSignal = errors.New("no rotation angle could be detected")

// ErrZeroAngle is reported when the resolved angle is exactly zero.
// A zero angle means "no rotation requested" and is never applied;
// any other value, including 360, is rotated normally.
var ErrZeroAngle = errors.New("rotation angle is zero, nothing to rotate")

// ErrEmptyResult is reported when rotation produced an empty image.
var ErrEmptyResult = errors.New("rotation produced an empty image")

// ProcessError is a classified failure tied to the file that caused it.
type ProcessError struct {
	Kind ErrorKind
	Path string
	Err  error
}

func (e *ProcessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Path, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Path)
}

func (e *ProcessError) Unwrap() error {
	return e.Err
}
