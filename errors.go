package sketchpad

import "errors"

// Errors returned by scene mutators. Lookups never return errors; they report
// absence with a boolean instead.
var (
	ErrNodeNotFound   = errors.New("sketchpad: node not found")
	ErrNodeExists     = errors.New("sketchpad: guid already in use")
	ErrParentNotFound = errors.New("sketchpad: parent not found")
	ErrCycle          = errors.New("sketchpad: parent change would create a cycle")
	ErrWrongNodeType  = errors.New("sketchpad: field not supported by node type")
	ErrInvalidValue   = errors.New("sketchpad: invalid value for field")
)
