package log

import "time"

// Event is one entry of a batch trace.
// CBOR encoding uses integer keys for compactness.
type Event struct {
	// Timestamp when the event occurred (nanosecond precision).
	Timestamp time.Time `cbor:"1,keyasint"`

	// BatchID identifies the batch invocation (UUID).
	BatchID string `cbor:"2,keyasint"`

	// Device is the character device path the batch ran against.
	Device string `cbor:"3,keyasint,omitempty"`

	// Direction indicates message flow relative to the host.
	Direction Direction `cbor:"4,keyasint"`

	// Category classifies the event type.
	Category Category `cbor:"5,keyasint"`

	// Exactly one of these is set, matching Category.
	Message *MessageEvent `cbor:"10,keyasint,omitempty"`
	State   *StateEvent   `cbor:"11,keyasint,omitempty"`
	Error   *ErrorEvent   `cbor:"12,keyasint,omitempty"`
}

// Direction indicates the direction of message flow.
type Direction uint8

const (
	// DirectionIn is a response read from the device.
	DirectionIn Direction = 0
	// DirectionOut is a request written to the device.
	DirectionOut Direction = 1
)

// String returns the direction name.
func (d Direction) String() string {
	switch d {
	case DirectionIn:
		return "IN"
	case DirectionOut:
		return "OUT"
	default:
		return "UNKNOWN"
	}
}

// Category classifies the event type.
type Category uint8

const (
	// CategoryMessage is a request or response.
	CategoryMessage Category = 0
	// CategoryState is a batch lifecycle change.
	CategoryState Category = 1
	// CategoryError is a failure that aborted the batch.
	CategoryError Category = 2
)

// String returns the category name.
func (c Category) String() string {
	switch c {
	case CategoryMessage:
		return "MESSAGE"
	case CategoryState:
		return "STATE"
	case CategoryError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// MessageEvent captures a request sent to, or a response read from, the device.
type MessageEvent struct {
	// MsgID is the correlation identifier (the request's slot index).
	MsgID int64 `cbor:"1,keyasint"`

	// Channel and Slave address the target on the management bus (requests only).
	Channel uint16 `cbor:"2,keyasint,omitempty"`
	Slave   uint8  `cbor:"3,keyasint,omitempty"`

	// NetFn and Cmd are the two header bytes (requests only).
	NetFn uint8 `cbor:"4,keyasint,omitempty"`
	Cmd   uint8 `cbor:"5,keyasint,omitempty"`

	// Data is the payload following the header for requests, or the full
	// response payload for responses.
	Data []byte `cbor:"6,keyasint,omitempty"`

	// Inflight is the number of unacknowledged requests after this event.
	Inflight int `cbor:"7,keyasint"`
}

// BatchState is a batch lifecycle state.
type BatchState uint8

const (
	// BatchStarted is logged after validation, before the device is opened.
	BatchStarted BatchState = 0
	// BatchCompleted is logged when every slot has been correlated.
	BatchCompleted BatchState = 1
	// BatchFailed is logged when the batch aborted.
	BatchFailed BatchState = 2
)

// String returns the state name.
func (s BatchState) String() string {
	switch s {
	case BatchStarted:
		return "STARTED"
	case BatchCompleted:
		return "COMPLETED"
	case BatchFailed:
		return "FAILED"
	default:
		return "UNKNOWN"
	}
}

// StateEvent captures a batch lifecycle change.
type StateEvent struct {
	State BatchState `cbor:"1,keyasint"`

	// Requests is the batch size.
	Requests int `cbor:"2,keyasint"`

	// Window is the configured maximum number of outstanding requests.
	Window int `cbor:"3,keyasint"`

	// Code is the outcome code (end states only).
	Code int `cbor:"4,keyasint,omitempty"`

	// Elapsed is the batch duration (end states only).
	Elapsed time.Duration `cbor:"5,keyasint,omitempty"`
}

// ErrorEvent captures the failure that aborted a batch.
type ErrorEvent struct {
	// Code is the outcome code.
	Code int `cbor:"1,keyasint"`

	// Errno is the captured system error number, zero if none.
	Errno int `cbor:"2,keyasint,omitempty"`

	// Message is the diagnostic string.
	Message string `cbor:"3,keyasint"`

	// Submitted and Correlated are the window counters at the failure point.
	Submitted  int `cbor:"4,keyasint"`
	Correlated int `cbor:"5,keyasint"`
}
