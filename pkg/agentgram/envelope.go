package agentgram

import (
	"encoding/json"
	"errors"
)

// Meta carries the pagination block returned alongside list payloads.
type Meta struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// envelopeError is the error detail embedded in a failure envelope.
type envelopeError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// envelope is the wire-level wrapper every Agentgram response uses. Exactly
// one variant is present: success carries data (and optionally meta), failure
// carries error.
type envelope struct {
	Success *bool           `json:"success"`
	Data    json.RawMessage `json:"data"`
	Meta    *Meta           `json:"meta"`
	Error   *envelopeError  `json:"error"`
}

var errMissingDiscriminant = errors.New(`response envelope has no "success" field`)

// decodeEnvelope parses raw as the tagged-union envelope. A body that is not
// JSON, or that lacks the success discriminant, is a protocol violation; the
// caller turns that into a parse error. decodeEnvelope never interprets HTTP
// statuses.
func decodeEnvelope(raw []byte) (*envelope, error) {
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, err
	}
	if env.Success == nil {
		return nil, errMissingDiscriminant
	}
	return &env, nil
}
