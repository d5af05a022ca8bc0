//go:build linux

package ipmi

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"syscall"
	"testing"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

func TestKernelStructLayout(t *testing.T) {
	if unsafe.Sizeof(ipmbAddr{}) != 8 {
		t.Errorf("ipmbAddr size: got %d, want 8", unsafe.Sizeof(ipmbAddr{}))
	}
	if strconv.IntSize != 64 {
		t.Skip("layout expectations below are for 64-bit kernels")
	}
	if got := unsafe.Sizeof(ipmiMsg{}); got != 16 {
		t.Errorf("ipmiMsg size: got %d, want 16", got)
	}
	if got := unsafe.Sizeof(ipmiReq{}); got != 40 {
		t.Errorf("ipmiReq size: got %d, want 40", got)
	}
	if got := unsafe.Sizeof(ipmiRecv{}); got != 48 {
		t.Errorf("ipmiRecv size: got %d, want 48", got)
	}
}

func TestIoctlNumbers(t *testing.T) {
	if strconv.IntSize != 64 {
		t.Skip("ioctl numbers below are for 64-bit kernels")
	}
	// Values from linux/ipmi.h on x86_64 and arm64.
	if ioctlSendCommand != 0x8028690d {
		t.Errorf("IPMICTL_SEND_COMMAND: got %#x, want 0x8028690d", ioctlSendCommand)
	}
	if ioctlReceiveMsgTrunc != 0xc030690b {
		t.Errorf("IPMICTL_RECEIVE_MSG_TRUNC: got %#x, want 0xc030690b", ioctlReceiveMsgTrunc)
	}
}

func TestDevOpenerMissingDevice(t *testing.T) {
	_, err := NewDevOpener().Open(filepath.Join(t.TempDir(), "ipmi0"))
	if !errors.Is(err, syscall.ENOENT) {
		t.Errorf("got %v, want ENOENT", err)
	}
}

func TestDevTransportWaitTimesOut(t *testing.T) {
	// A pipe's read end stays unreadable while nothing is written.
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	tr := &devTransport{fd: int(r.Fd()), buf: make([]byte, MaxDataLen)}
	start := time.Now()
	ready, err := tr.Wait(30 * time.Millisecond)
	if err != nil {
		t.Fatalf("Wait: %v", err)
	}
	if ready {
		t.Error("expected timeout")
	}
	if elapsed := time.Since(start); elapsed < 25*time.Millisecond {
		t.Errorf("returned after %v, before the timeout", elapsed)
	}

	if _, err := w.Write([]byte{1}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	ready, err = tr.Wait(time.Second)
	if err != nil || !ready {
		t.Errorf("after write: ready=%v err=%v", ready, err)
	}
}

func TestDevTransportWaitOnClosedDescriptor(t *testing.T) {
	fds := make([]int, 2)
	if err := unix.Pipe(fds); err != nil {
		t.Fatalf("Pipe: %v", err)
	}
	defer unix.Close(fds[1])
	if err := unix.Close(fds[0]); err != nil {
		t.Fatalf("Close: %v", err)
	}

	tr := &devTransport{fd: fds[0], buf: make([]byte, MaxDataLen)}
	ready, err := tr.Wait(time.Second)
	if ready {
		t.Error("closed descriptor reported ready")
	}
	if !errors.Is(err, syscall.EBADF) {
		t.Fatalf("got %v, want EBADF", err)
	}

	st := sysStatus(CodeWaitFailed, err)
	if st.Code != CodeWaitFailed || st.Errno != syscall.EBADF {
		t.Errorf("got %v", st)
	}
}

// stubIoctl replaces the device ioctl for the duration of the test.
func stubIoctl(t *testing.T, fn func(fd int, req uintptr, arg unsafe.Pointer) error) {
	t.Helper()
	prev := sysIoctl
	sysIoctl = fn
	t.Cleanup(func() { sysIoctl = prev })
}

func TestDevTransportReceiveTruncated(t *testing.T) {
	stubIoctl(t, func(_ int, req uintptr, arg unsafe.Pointer) error {
		if req != ioctlReceiveMsgTrunc {
			t.Fatalf("unexpected ioctl %#x", req)
		}
		recv := (*ipmiRecv)(arg)
		buf := unsafe.Slice(recv.msg.data, recv.msg.dataLen)
		for i := range buf {
			buf[i] = byte(0xa0 + i)
		}
		recv.msgid = 7
		return unix.EMSGSIZE
	})

	tr := &devTransport{fd: -1, buf: make([]byte, 4)}
	msg, err := tr.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if msg.MsgID != 7 {
		t.Errorf("MsgID: got %d, want 7", msg.MsgID)
	}
	if string(msg.Data) != "\xa0\xa1\xa2\xa3" {
		t.Errorf("Data: got % x, want a0 a1 a2 a3", msg.Data)
	}
}

func TestDevTransportReceiveClampsLength(t *testing.T) {
	stubIoctl(t, func(_ int, _ uintptr, arg unsafe.Pointer) error {
		recv := (*ipmiRecv)(arg)
		recv.msg.dataLen = 200
		return unix.EMSGSIZE
	})

	tr := &devTransport{fd: -1, buf: make([]byte, 4)}
	msg, err := tr.Receive()
	if err != nil {
		t.Fatalf("Receive: %v", err)
	}
	if len(msg.Data) != 4 {
		t.Errorf("len: got %d, want 4", len(msg.Data))
	}
}

func TestDevTransportReceiveError(t *testing.T) {
	stubIoctl(t, func(int, uintptr, unsafe.Pointer) error { return unix.EAGAIN })

	tr := &devTransport{fd: -1, buf: make([]byte, 4)}
	if _, err := tr.Receive(); !errors.Is(err, syscall.EAGAIN) {
		t.Errorf("got %v, want EAGAIN", err)
	}
}

func TestDevTransportSendEncodesRequest(t *testing.T) {
	var (
		addr ipmbAddr
		req  ipmiReq
		body []byte
	)
	stubIoctl(t, func(_ int, code uintptr, arg unsafe.Pointer) error {
		if code != ioctlSendCommand {
			t.Fatalf("unexpected ioctl %#x", code)
		}
		req = *(*ipmiReq)(arg)
		addr = *(*ipmbAddr)(unsafe.Pointer(req.addr))
		body = append([]byte(nil), unsafe.Slice(req.msg.data, req.msg.dataLen)...)
		return nil
	})

	tr := &devTransport{fd: -1, buf: make([]byte, 4)}
	if err := tr.Send(Address{Channel: 6, Slave: 0x2c}, 3, 0x2e, 0xc8, []byte{0x57, 0x01, 0x00}); err != nil {
		t.Fatalf("Send: %v", err)
	}

	if addr.addrType != ipmbAddrType || addr.channel != 6 || addr.slaveAddr != 0x2c || addr.lun != 0 {
		t.Errorf("address: got %+v", addr)
	}
	if req.addrLen != uint32(unsafe.Sizeof(addr)) {
		t.Errorf("addrLen: got %d", req.addrLen)
	}
	if req.msgid != 3 || req.msg.netfn != 0x2e || req.msg.cmd != 0xc8 {
		t.Errorf("header: msgid=%d netfn=%#x cmd=%#x", req.msgid, req.msg.netfn, req.msg.cmd)
	}
	if string(body) != "\x57\x01\x00" {
		t.Errorf("body: got % x", body)
	}
}
