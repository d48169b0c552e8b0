package loader

import (
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Decoder turns one window of raw bytes into text. first is true until a
// window of the current load has decoded successfully.
type Decoder interface {
	Decode(window []byte, first bool) (string, error)
}

// UTF8 decodes windows as UTF-8 and drops a byte order mark at the start of
// the first decoded window. Invalid bytes become U+FFFD unless Strict is set, in
// which case the whole window fails to decode.
type UTF8 struct {
	Strict bool
}

// Decode implements Decoder.
func (d UTF8) Decode(window []byte, first bool) (string, error) {
	var t transform.Transformer = encoding.Nop.NewDecoder()
	if first {
		t = unicode.UTF8BOM.NewDecoder()
	}
	if d.Strict {
		t = transform.Chain(encoding.UTF8Validator, t)
	} else if !first {
		t = unicode.UTF8.NewDecoder()
	}

	out, _, err := transform.Bytes(t, window)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// DecoderFunc adapts a function to the Decoder interface.
type DecoderFunc func(window []byte, first bool) (string, error)

// Decode implements Decoder.
func (f DecoderFunc) Decode(window []byte, first bool) (string, error) {
	return f(window, first)
}
