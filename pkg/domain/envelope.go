package domain

import (
	"encoding/json"
	"fmt"
)

// Envelope is the structured value that follows ResponsePrefix in a response body.
// Every field is optional.
type Envelope struct {
	// Error, when truthy, turns the response into a failure carrying this value.
	Error any `json:"error,omitempty"`

	// Payload is the logical result delivered to done subscribers.
	Payload any `json:"payload,omitempty"`

	// Metadata is merged into the dispatcher's metadata store.
	Metadata map[string]any `json:"javelin_metadata,omitempty"`

	// Behaviors maps a behavior name to the configs it is initialized with.
	Behaviors map[string][]any `json:"javelin_behaviors,omitempty"`

	// Onload lists instructions run after success, before the payload is delivered.
	Onload []OnloadInstruction `json:"onload,omitempty"`

	// Fields holds every top-level key of a parsed envelope, including keys
	// the fields above do not model. Nil for envelopes built in code.
	Fields map[string]any `json:"-"`
}

// Failed reports whether the envelope carries a truthy error.
func (e *Envelope) Failed() bool {
	return Truthy(e.Error)
}

// OnloadInstruction names a registered callback and its arguments.
// On the wire it is either a bare string (the name) or an object
// {"call": name, "args": {...}}.
type OnloadInstruction struct {
	Call string         `json:"call"`
	Args map[string]any `json:"args,omitempty"`
}

// UnmarshalJSON accepts both the bare-name and the object forms.
func (o *OnloadInstruction) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err == nil {
		*o = OnloadInstruction{Call: name}
		return nil
	}

	type plain OnloadInstruction
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return fmt.Errorf("invalid onload instruction: %w", err)
	}
	*o = OnloadInstruction(p)
	return nil
}

// Truthy applies the loose truthiness the envelope protocol uses for "error":
// nil, false, zero numbers and the empty string are falsy.
func Truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case int:
		return t != 0
	case json.Number:
		return t.String() != "0" && t.String() != ""
	default:
		return true
	}
}
