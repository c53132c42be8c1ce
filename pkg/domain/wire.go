package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// ParseResponse validates a response body and decodes the envelope that follows the prefix.
func ParseResponse(body []byte) (*Envelope, error) {
	if len(body) == 0 {
		return nil, ErrEmptyResponse
	}
	if !bytes.HasPrefix(body, []byte(ResponsePrefix)) {
		return nil, ErrMissingPrefix
	}

	data := body[len(ResponsePrefix):]
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	if err := json.Unmarshal(data, &env.Fields); err != nil {
		return nil, fmt.Errorf("failed to decode envelope: %w", err)
	}
	return &env, nil
}

// EncodeResponse renders an envelope as a response body, prefix included.
func EncodeResponse(env *Envelope) ([]byte, error) {
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("failed to encode envelope: %w", err)
	}
	return append([]byte(ResponsePrefix), data...), nil
}
