package domain

import (
	"context"
	"time"
)

// Outcome is the terminal state reached by a request.
type Outcome string

const (
	OutcomePending Outcome = ""
	OutcomeSuccess Outcome = "success"
	OutcomeError   Outcome = "error"
	OutcomeTimeout Outcome = "timeout"
	OutcomeAborted Outcome = "aborted"
)

// RequestEvent describes a request at a lifecycle boundary.
type RequestEvent struct {
	Timestamp time.Time     `json:"timestamp"`
	RequestID string        `json:"request_id"`
	Method    Method        `json:"method"`
	URI       string        `json:"uri"`
	Status    int           `json:"status,omitempty"`
	Outcome   Outcome       `json:"outcome,omitempty"`
	Duration  time.Duration `json:"duration,omitempty"`
}

// RequestHooks defines callbacks for request observability.
type RequestHooks struct {
	OnSend   func(context.Context, *RequestEvent)
	OnFinish func(context.Context, *RequestEvent)
}
