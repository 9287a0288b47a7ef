package hostfuncs

import (
	"bytes"
	"encoding/json"

	"github.com/reglet-dev/rosmsg-sdk/go/domain/entities"
)

// CallRequest is the request body of every string-message host function.
type CallRequest struct {
	// Args holds the positional arguments, one JSON value per term.
	Args []json.RawMessage `json:"args"`
}

// CallResponse is the success body of every string-message host function.
type CallResponse struct {
	// Handle is set by string_create_empty and string_init.
	Handle *entities.Handle `json:"handle,omitempty"`

	// Data is set by string_read_data. It is a pointer so that an empty
	// payload is still present in the response.
	Data *string `json:"data,omitempty"`

	// Result is always "ok".
	Result string `json:"result"`
}

// foreignTerm is a JSON value that is neither a text nor a handle.
type foreignTerm struct {
	kind string
}

// TermType reports the JSON type of the term, for error messages.
func (t foreignTerm) TermType() string { return t.kind }

// decodeTerm maps a JSON argument to the value the adapter expects:
// a JSON string becomes a string, a JSON object a Handle. Anything else,
// including objects that are not handles, is passed on as a foreignTerm so
// the adapter rejects it as a term of the wrong type.
func decodeTerm(raw json.RawMessage) any {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return foreignTerm{kind: "empty"}
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return foreignTerm{kind: "string"}
		}
		return s
	case '{':
		dec := json.NewDecoder(bytes.NewReader(trimmed))
		dec.DisallowUnknownFields()
		var h entities.Handle
		if err := dec.Decode(&h); err != nil {
			return foreignTerm{kind: "object"}
		}
		return h
	case '[':
		return foreignTerm{kind: "array"}
	case 't', 'f':
		return foreignTerm{kind: "boolean"}
	case 'n':
		return foreignTerm{kind: "null"}
	default:
		return foreignTerm{kind: "number"}
	}
}
