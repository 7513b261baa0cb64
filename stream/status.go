package stream

import "fmt"

// State is a Streamer's (present) state.
type State int

const (
	// StateAwaitingRoot is the initial state: chunks are consumed until
	// the document root's start tag is observed.
	StateAwaitingRoot State = iota
	// StateStreaming indicates the root has been captured and direct
	// children of the root are being parsed and dispatched.
	StateStreaming
	// StateTerminated is the absorbing final state; no further chunks
	// are read and no further dispatch occurs.
	StateTerminated
)

func (s State) String() string {
	switch s {
	case StateAwaitingRoot:
		return "awaiting-root"
	case StateStreaming:
		return "streaming"
	case StateTerminated:
		return "terminated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Reason records why a run terminated. It is observable through
// Streamer.Reason for diagnostics and tests; it is never surfaced to
// the caller as an error.
type Reason int

const (
	// ReasonNone means the run has not terminated.
	ReasonNone Reason = iota
	// ReasonCancelled means PoisonPill was received.
	ReasonCancelled
	// ReasonParseError means the input was rejected as malformed XML.
	ReasonParseError
	// ReasonStreamExhausted means the chunk source closed without a
	// PoisonPill. Treated exactly like cancellation.
	ReasonStreamExhausted
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonCancelled:
		return "cancelled"
	case ReasonParseError:
		return "parse-error"
	case ReasonStreamExhausted:
		return "stream-exhausted"
	default:
		return fmt.Sprintf("Reason(%d)", int(r))
	}
}
