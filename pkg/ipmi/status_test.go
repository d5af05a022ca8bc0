package ipmi

import (
	"errors"
	"fmt"
	"strings"
	"syscall"
	"testing"
	"unicode/utf8"
)

func TestCodeValues(t *testing.T) {
	// Callers compare these numerically.
	tests := []struct {
		code Code
		want int
	}{
		{CodeOK, 0},
		{CodeInvalidCall, -1},
		{CodeShortPayload, -2},
		{CodeOpenFailed, 100},
		{CodeSendFailed, 220},
		{CodeWaitFailed, 300},
		{CodeTimeout, 310},
		{CodeReceiveFailed, 320},
		{CodeBadMessageID, 330},
	}
	for _, tt := range tests {
		if int(tt.code) != tt.want {
			t.Errorf("%s = %d, want %d", tt.code, int(tt.code), tt.want)
		}
	}
}

func TestCodeString(t *testing.T) {
	if CodeTimeout.String() != "TIMEOUT" {
		t.Errorf("got %q", CodeTimeout.String())
	}
	if Code(7).String() != "CODE(7)" {
		t.Errorf("got %q", Code(7).String())
	}
}

func TestCodeClassification(t *testing.T) {
	if !CodeOK.IsSuccess() || CodeTimeout.IsSuccess() {
		t.Error("IsSuccess misclassifies")
	}
	if !CodeShortPayload.IsCallerError() || CodeOpenFailed.IsCallerError() || CodeOK.IsCallerError() {
		t.Error("IsCallerError misclassifies")
	}
}

func TestSysStatusCapturesErrno(t *testing.T) {
	st := sysStatus(CodeOpenFailed, fmt.Errorf("open /dev/ipmi0: %w", syscall.EACCES))

	if st.Errno != syscall.EACCES {
		t.Errorf("Errno: got %v, want EACCES", st.Errno)
	}
	if st.Message != syscall.EACCES.Error() {
		t.Errorf("Message: got %q, want %q", st.Message, syscall.EACCES.Error())
	}
	if !strings.Contains(st.Error(), "errno") {
		t.Errorf("Error() should mention errno: %q", st.Error())
	}
}

func TestSysStatusWithoutErrno(t *testing.T) {
	st := sysStatus(CodeSendFailed, errors.New("device gone"))

	if st.Errno != 0 {
		t.Errorf("Errno: got %v, want 0", st.Errno)
	}
	if st.Message != "device gone" {
		t.Errorf("Message: got %q", st.Message)
	}
}

func TestStatusMessageIsBounded(t *testing.T) {
	st := sysStatus(CodeReceiveFailed, errors.New(strings.Repeat("x", 4*MaxMessageLen)))
	if len(st.Message) != MaxMessageLen {
		t.Errorf("Message length: got %d, want %d", len(st.Message), MaxMessageLen)
	}
}

func TestStatusMessageKeepsRunesWhole(t *testing.T) {
	// Two ASCII bytes put the limit inside a 3-byte rune.
	msg := "xx" + strings.Repeat("€", MaxMessageLen)
	st := newStatus(CodeReceiveFailed, "%s", msg)

	if len(st.Message) > MaxMessageLen {
		t.Errorf("Message length: got %d, want at most %d", len(st.Message), MaxMessageLen)
	}
	if !utf8.ValidString(st.Message) {
		t.Errorf("Message is not valid UTF-8: %q", st.Message[len(st.Message)-4:])
	}
	if want := 2 + 3*((MaxMessageLen-2)/3); len(st.Message) != want {
		t.Errorf("Message length: got %d, want %d", len(st.Message), want)
	}
}

func TestStatusUnwrap(t *testing.T) {
	st := sysStatus(CodeWaitFailed, syscall.EINVAL)

	if !errors.Is(st, ErrWait) {
		t.Error("expected errors.Is(st, ErrWait)")
	}
	if !errors.Is(st, syscall.EINVAL) {
		t.Error("expected errors.Is(st, EINVAL)")
	}
	if errors.Is(st, ErrTimeout) {
		t.Error("wait failure must not match ErrTimeout")
	}
}

func TestStatusOK(t *testing.T) {
	var nilStatus *Status
	if !nilStatus.OK() {
		t.Error("nil status should be OK")
	}
	if (&Status{Code: CodeTimeout}).OK() {
		t.Error("timeout status should not be OK")
	}
}

func TestCodeOf(t *testing.T) {
	if CodeOf(nil) != CodeOK {
		t.Error("nil should map to CodeOK")
	}
	wrapped := fmt.Errorf("collect: %w", newStatus(CodeTimeout, "Timeout on read select."))
	if CodeOf(wrapped) != CodeTimeout {
		t.Errorf("got %s, want TIMEOUT", CodeOf(wrapped))
	}
	if CodeOf(errors.New("other")) != CodeInvalidCall {
		t.Error("foreign errors should map to CodeInvalidCall")
	}
}
