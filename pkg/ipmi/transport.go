package ipmi

import "time"

// Message is a response envelope read from the device.
type Message struct {
	// MsgID is the identifier the request was sent with.
	MsgID int64

	// Data is the response payload. It may be truncated to the transport's
	// buffer size, and is only valid until the next Receive.
	Data []byte
}

// Transport is an open session to the management channel.
// A Transport is used by one batch at a time.
type Transport interface {
	// Send queues a request to addr tagged with msgID. It does not wait
	// for the response.
	Send(addr Address, msgID int64, netFn, cmd uint8, data []byte) error

	// Wait blocks until a response is available or timeout elapses.
	// It returns false with a nil error on timeout.
	Wait(timeout time.Duration) (bool, error)

	// Receive reads one available response.
	Receive() (Message, error)

	// Close releases the session.
	Close() error
}

// Opener opens transports by device path.
type Opener interface {
	Open(path string) (Transport, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(path string) (Transport, error)

// Open calls f(path).
func (f OpenerFunc) Open(path string) (Transport, error) {
	return f(path)
}

var (
	_ Opener    = OpenerFunc(nil)
	_ Opener    = (*DevOpener)(nil)
	_ Transport = (*devTransport)(nil)
)
