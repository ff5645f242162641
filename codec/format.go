package codec

import (
	"fmt"
	"strings"
)

// Format names an interchange format for cookie collections.
type Format string

const (
	JSON     Format = "json"
	CSV      Format = "csv"
	XML      Format = "xml"
	Netscape Format = "netscape"
)

// Formats lists every format Serialize can produce.
var Formats = []Format{JSON, CSV, XML, Netscape}

// ParseableFormats lists every format Parse can read.
var ParseableFormats = []Format{JSON, CSV, Netscape}

// String returns the format tag.
func (f Format) String() string {
	return string(f)
}

// Key returns the name the serialized output is published under.
func (f Format) Key() string {
	switch f {
	case CSV:
		return "csv"
	case XML:
		return "xml"
	case Netscape:
		return "netscape"
	default:
		return "cookies"
	}
}

// Extension returns a file extension suited to the format.
func (f Format) Extension() string {
	switch f {
	case CSV:
		return ".csv"
	case XML:
		return ".xml"
	case Netscape:
		return ".txt"
	default:
		return ".json"
	}
}

// Parseable reports whether Parse accepts the format.
func (f Format) Parseable() bool {
	switch f {
	case JSON, CSV, Netscape:
		return true
	}
	return false
}

// LookupFormat matches a user supplied tag, ignoring case and surrounding space.
func LookupFormat(tag string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(tag)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, tag)
}
