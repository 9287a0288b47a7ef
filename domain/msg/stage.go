package msg

import (
	"bytes"
	"fmt"

	domainerrors "github.com/reglet-dev/rosmsg-sdk/go/domain/errors"
)

// StageBufferSize is the size of the stage buffer text is copied through,
// terminator included.
const StageBufferSize = 128

// MaxDataLength is the largest payload, in encoded bytes, a record accepts.
const MaxDataLength = StageBufferSize - 1

var errEmbeddedNUL = fmt.Errorf("text contains a NUL byte")

// Stage encodes text with codec and copies it into a zero-filled stage buffer.
// limit caps the encoded length; values outside 1..MaxDataLength mean MaxDataLength.
// Text that does not fit is rejected with a TextTooLongError, never truncated.
func Stage(text string, codec Codec, limit int) ([]byte, error) {
	if limit <= 0 || limit > MaxDataLength {
		limit = MaxDataLength
	}

	encoded, err := codec.Encode(text)
	if err != nil {
		return nil, &domainerrors.EncodingError{Encoding: codec.Name(), Err: err}
	}
	if len(encoded) > limit {
		return nil, &domainerrors.TextTooLongError{Length: len(encoded), Limit: limit}
	}
	if bytes.IndexByte(encoded, 0) >= 0 {
		return nil, &domainerrors.EncodingError{Encoding: codec.Name(), Err: errEmbeddedNUL}
	}

	var buf [StageBufferSize]byte
	n := copy(buf[:], encoded)
	return buf[:n], nil
}
