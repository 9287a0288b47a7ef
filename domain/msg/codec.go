package msg

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Supported record encodings.
const (
	EncodingLatin1 = "latin1"
	EncodingUTF8   = "utf8"
)

// Codec converts between Go strings and the byte representation stored in a record.
type Codec interface {
	// Name returns the encoding name used in configuration.
	Name() string

	// Encode converts text to record bytes. It fails if text is not representable.
	Encode(text string) ([]byte, error)

	// Decode converts record bytes back to a Go (UTF-8) string.
	Decode(data []byte) (string, error)
}

// CodecFor returns the codec registered under name.
func CodecFor(name string) (Codec, error) {
	switch name {
	case EncodingLatin1, "":
		return latin1Codec{}, nil
	case EncodingUTF8:
		return utf8Codec{}, nil
	default:
		return nil, fmt.Errorf("unsupported encoding %q", name)
	}
}

// latin1Codec stores text as ISO-8859-1, one byte per rune.
type latin1Codec struct{}

func (latin1Codec) Name() string { return EncodingLatin1 }

func (latin1Codec) Encode(text string) ([]byte, error) {
	return charmap.ISO8859_1.NewEncoder().Bytes([]byte(text))
}

func (latin1Codec) Decode(data []byte) (string, error) {
	out, err := charmap.ISO8859_1.NewDecoder().Bytes(data)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// utf8Codec stores text as-is and only checks it is valid UTF-8.
type utf8Codec struct{}

func (utf8Codec) Name() string { return EncodingUTF8 }

func (utf8Codec) Encode(text string) ([]byte, error) {
	if !utf8.ValidString(text) {
		return nil, fmt.Errorf("invalid UTF-8")
	}
	return []byte(text), nil
}

func (utf8Codec) Decode(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("invalid UTF-8")
	}
	return string(data), nil
}
