package codec

import "errors"

var (
	// ErrUnsupportedFormat is returned when parsing is requested for a format without a parser.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrInvalidFormat is returned when input text does not have the structure its format requires.
	ErrInvalidFormat = errors.New("invalid format")
)
