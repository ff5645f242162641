package codec

import (
	"encoding/json"
	"io"
)

// tokenDecoder is the slice of encoding/json.Decoder the streaming readers rely on,
// kept as an interface so a faster decoder can be dropped in.
type tokenDecoder interface {
	// Token returns the next JSON token in the input stream
	Token() (json.Token, error)

	// Decode decodes the next JSON value into v
	Decode(v interface{}) error

	// More reports whether there is another element in the current array or object
	More() bool
}

func newTokenDecoder(r io.Reader) tokenDecoder {
	return json.NewDecoder(r)
}

type jsonHelper struct{}

var helper = &jsonHelper{}

func (h *jsonHelper) skipValue(decoder tokenDecoder) error {
	token, err := decoder.Token()
	if err != nil {
		return err
	}

	switch token {
	case json.Delim('{'):
		return h.skipObject(decoder)
	case json.Delim('['):
		return h.skipArray(decoder)
	}

	return nil
}

func (h *jsonHelper) skipObject(decoder tokenDecoder) error {
	for decoder.More() {
		if _, err := decoder.Token(); err != nil {
			return err
		}
		if err := h.skipValue(decoder); err != nil {
			return err
		}
	}
	_, err := decoder.Token()
	return err
}

func (h *jsonHelper) skipArray(decoder tokenDecoder) error {
	for decoder.More() {
		if err := h.skipValue(decoder); err != nil {
			return err
		}
	}
	_, err := decoder.Token()
	return err
}

// firstByte returns the first non-whitespace byte of a raw JSON value.
func firstByte(raw json.RawMessage) byte {
	for _, b := range raw {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		}
		return b
	}
	return 0
}
