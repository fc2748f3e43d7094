package geo

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownUnit is returned when a unit name does not resolve to a scale.
	ErrUnknownUnit = errors.New("unknown unit")

	// ErrInvalidConfig marks configuration values other than the unit that cannot be used.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrMissingFeatures is returned when the root object has no usable "features" array.
	ErrMissingFeatures = errors.New("missing features array")

	// ErrInvalidDocument is returned when the input is not a JSON object.
	ErrInvalidDocument = errors.New("invalid GeoJSON document")
)

// ShapeError reports a feature whose JSON shape does not match its declared geometry type.
type ShapeError struct {
	Type    string
	Reason  string
	Feature int
}

func (e *ShapeError) Error() string {
	if e.Type != "" {
		return fmt.Sprintf("feature %d (%s): %s", e.Feature, e.Type, e.Reason)
	}
	return fmt.Sprintf("feature %d: %s", e.Feature, e.Reason)
}

// ErrorKind classifies failures so callers can tell configuration problems
// from bad input.
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindConfig
	KindInput
	KindShape
	KindOther
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindConfig:
		return "config"
	case KindInput:
		return "input"
	case KindShape:
		return "shape"
	default:
		return "other"
	}
}

// KindOf returns the category of err.
func KindOf(err error) ErrorKind {
	if err == nil {
		return KindNone
	}

	var shapeErr *ShapeError
	switch {
	case errors.Is(err, ErrUnknownUnit), errors.Is(err, ErrInvalidConfig):
		return KindConfig
	case errors.Is(err, ErrMissingFeatures), errors.Is(err, ErrInvalidDocument):
		return KindInput
	case errors.As(err, &shapeErr):
		return KindShape
	default:
		return KindOther
	}
}
