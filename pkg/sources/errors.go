package sources

import "fmt"

// Error is the single failure shape returned by every source.
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return e.Message
	}
	return fmt.Sprintf("%s (%v)", e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// failure labels only appear in logs.
type failure string

const (
	failConfig  failure = "configuration"
	failRequest failure = "request_construction"
	failNetwork failure = "network"
	failParse   failure = "parse"
)

const (
	msgInvalidConfig      = "invalid configuration"
	msgCouldNotCreate     = "could not create request"
	msgRequestFailed      = "request failed"
	msgUnexpectedResponse = "unexpected response"
)
