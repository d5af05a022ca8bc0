package ipmi

import (
	"errors"
	"fmt"
	"syscall"
	"unicode/utf8"
)

// Code classifies the outcome of a batch.
type Code int

const (
	// CodeOK means every request was answered and correlated.
	CodeOK Code = 0

	// CodeInvalidCall means the call itself was malformed (window size,
	// output array length, missing opener). No I/O was attempted.
	CodeInvalidCall Code = -1

	// CodeShortPayload means a request lacked the NetFn/Cmd header.
	// No I/O was attempted.
	CodeShortPayload Code = -2

	// CodeOpenFailed means the device could not be opened.
	CodeOpenFailed Code = 100

	// CodeSendFailed means the device rejected a request.
	CodeSendFailed Code = 220

	// CodeWaitFailed means waiting for a response failed at the system level.
	CodeWaitFailed Code = 300

	// CodeTimeout means no response arrived within the wait timeout.
	CodeTimeout Code = 310

	// CodeReceiveFailed means reading an available response failed.
	CodeReceiveFailed Code = 320

	// CodeBadMessageID means a response echoed a message ID that was not
	// outstanding in this batch.
	CodeBadMessageID Code = 330
)

// String returns the code name.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "OK"
	case CodeInvalidCall:
		return "INVALID_CALL"
	case CodeShortPayload:
		return "SHORT_PAYLOAD"
	case CodeOpenFailed:
		return "OPEN_FAILED"
	case CodeSendFailed:
		return "SEND_FAILED"
	case CodeWaitFailed:
		return "WAIT_FAILED"
	case CodeTimeout:
		return "TIMEOUT"
	case CodeReceiveFailed:
		return "RECEIVE_FAILED"
	case CodeBadMessageID:
		return "BAD_MESSAGE_ID"
	default:
		return fmt.Sprintf("CODE(%d)", int(c))
	}
}

// IsSuccess returns true for CodeOK.
func (c Code) IsSuccess() bool { return c == CodeOK }

// IsCallerError returns true for codes raised before any I/O.
func (c Code) IsCallerError() bool { return c < 0 }

// Sentinel errors, one per failure class. A *Status unwraps to the one
// matching its Code, so callers can use errors.Is.
var (
	ErrInvalidCall   = errors.New("invalid call")
	ErrShortPayload  = errors.New("request payload too short")
	ErrOpen          = errors.New("device open failed")
	ErrSend          = errors.New("send failed")
	ErrWait          = errors.New("wait for response failed")
	ErrTimeout       = errors.New("timed out waiting for response")
	ErrReceive       = errors.New("receive failed")
	ErrBadMessageID  = errors.New("unexpected message id")
	errUnknownStatus = errors.New("unknown status")
)

func (c Code) sentinel() error {
	switch c {
	case CodeInvalidCall:
		return ErrInvalidCall
	case CodeShortPayload:
		return ErrShortPayload
	case CodeOpenFailed:
		return ErrOpen
	case CodeSendFailed:
		return ErrSend
	case CodeWaitFailed:
		return ErrWait
	case CodeTimeout:
		return ErrTimeout
	case CodeReceiveFailed:
		return ErrReceive
	case CodeBadMessageID:
		return ErrBadMessageID
	default:
		return errUnknownStatus
	}
}

// MaxMessageLen bounds Status.Message in bytes.
const MaxMessageLen = 256

// Status is the single outcome of a batch call.
type Status struct {
	// Code classifies the outcome.
	Code Code

	// Message is a human-readable diagnostic. For system-level failures it
	// is the system's description of Errno.
	Message string

	// Errno is the captured system error number, zero if none.
	Errno syscall.Errno

	// Err is the underlying error reported by the transport, if any.
	Err error
}

// Error implements error.
func (s *Status) Error() string {
	if s.Errno != 0 {
		return fmt.Sprintf("ipmi: %s (%d): %s (errno %d)", s.Code, int(s.Code), s.Message, int(s.Errno))
	}
	return fmt.Sprintf("ipmi: %s (%d): %s", s.Code, int(s.Code), s.Message)
}

// Unwrap exposes the class sentinel and the transport error.
func (s *Status) Unwrap() []error {
	if s.Err != nil {
		return []error{s.Code.sentinel(), s.Err}
	}
	return []error{s.Code.sentinel()}
}

// OK returns true if the status is success.
func (s *Status) OK() bool {
	return s == nil || s.Code == CodeOK
}

func newStatus(code Code, format string, args ...any) *Status {
	return &Status{Code: code, Message: bound(fmt.Sprintf(format, args...))}
}

// sysStatus classifies err under code. When err carries an errno, the
// diagnostic is the errno's standard description.
func sysStatus(code Code, err error) *Status {
	st := &Status{Code: code, Err: err}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		st.Errno = errno
		st.Message = bound(errno.Error())
	} else {
		st.Message = bound(err.Error())
	}
	return st
}

// bound truncates s to MaxMessageLen bytes without splitting a rune.
func bound(s string) string {
	if len(s) <= MaxMessageLen {
		return s
	}
	n := MaxMessageLen
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// CodeOf extracts the outcome code from an error returned by this package.
// nil maps to CodeOK; errors that are not a *Status map to CodeInvalidCall.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var st *Status
	if errors.As(err, &st) {
		return st.Code
	}
	return CodeInvalidCall
}
