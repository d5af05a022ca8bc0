//go:build linux

package ipmi

import (
	"errors"
	"fmt"
	"math"
	"runtime"
	"time"
	"unsafe"

	"golang.org/x/sys/unix"
)

// OpenIPMI device interface constants (linux/ipmi.h).
const (
	ipmiIOCMagic = 'i'

	ipmbAddrType = 0x01
)

// Kernel structures, laid out to match the C definitions. cLong follows the
// size of C long on Linux, which is the native word size.
type (
	cLong = int

	ipmbAddr struct {
		addrType  int32
		channel   int16
		slaveAddr uint8
		lun       uint8
	}

	ipmiMsg struct {
		netfn   uint8
		cmd     uint8
		dataLen uint16
		data    *byte
	}

	ipmiReq struct {
		addr    *byte
		addrLen uint32
		msgid   cLong
		msg     ipmiMsg
	}

	ipmiRecv struct {
		recvType int32
		addr     *byte
		addrLen  uint32
		msgid    cLong
		msg      ipmiMsg
	}
)

// Generic Linux _IOC encoding.
const (
	iocWrite = 1
	iocRead  = 2

	iocNRShift   = 0
	iocTypeShift = 8
	iocSizeShift = 16
	iocDirShift  = 30
)

func ioc(dir, typ, nr, size uintptr) uintptr {
	return dir<<iocDirShift | typ<<iocTypeShift | nr<<iocNRShift | size<<iocSizeShift
}

var (
	ioctlSendCommand     = ioc(iocRead, ipmiIOCMagic, 13, unsafe.Sizeof(ipmiReq{}))
	ioctlReceiveMsgTrunc = ioc(iocRead|iocWrite, ipmiIOCMagic, 11, unsafe.Sizeof(ipmiRecv{}))
)

// sysIoctl issues device ioctls. Tests replace it.
var sysIoctl = ioctl

func ioctl(fd int, req uintptr, arg unsafe.Pointer) error {
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), req, uintptr(arg))
	if errno != 0 {
		return errno
	}
	return nil
}

// DevOpener opens the OpenIPMI character device.
type DevOpener struct {
	// BufferSize is the receive buffer size. Longer responses are
	// truncated. Defaults to MaxDataLen.
	BufferSize int
}

// NewDevOpener returns a DevOpener with a MaxDataLen receive buffer.
func NewDevOpener() *DevOpener {
	return &DevOpener{BufferSize: MaxDataLen}
}

// Open opens path read-write.
func (o *DevOpener) Open(path string) (Transport, error) {
	fd, err := unix.Open(path, unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	size := o.BufferSize
	if size <= 0 || size > math.MaxUint16 {
		size = MaxDataLen
	}
	return &devTransport{fd: fd, buf: make([]byte, size)}, nil
}

type devTransport struct {
	fd  int
	buf []byte
}

func (t *devTransport) Send(addr Address, msgID int64, netFn, cmd uint8, data []byte) error {
	if len(data) > math.MaxUint16 {
		return unix.EMSGSIZE
	}

	ipmb := ipmbAddr{
		addrType:  ipmbAddrType,
		channel:   int16(addr.Channel),
		slaveAddr: addr.Slave,
	}
	req := ipmiReq{
		addr:    (*byte)(unsafe.Pointer(&ipmb)),
		addrLen: uint32(unsafe.Sizeof(ipmb)),
		msgid:   cLong(msgID),
		msg: ipmiMsg{
			netfn:   netFn,
			cmd:     cmd,
			dataLen: uint16(len(data)),
		},
	}
	if len(data) > 0 {
		req.msg.data = &data[0]
	}

	err := sysIoctl(t.fd, ioctlSendCommand, unsafe.Pointer(&req))
	runtime.KeepAlive(&ipmb)
	runtime.KeepAlive(data)
	return err
}

// Wait polls the device for readability. Interrupted polls are resumed with
// the remaining time. An invalid or failed descriptor is a wait error, not a
// ready device.
func (t *devTransport) Wait(timeout time.Duration) (bool, error) {
	deadline := time.Now().Add(timeout)
	fds := []unix.PollFd{{Fd: int32(t.fd), Events: unix.POLLIN}}
	for {
		ms := int(time.Until(deadline).Milliseconds())
		if ms < 0 {
			ms = 0
		}
		n, err := unix.Poll(fds, ms)
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			return false, err
		}
		if n == 0 {
			return false, nil
		}
		switch revents := fds[0].Revents; {
		case revents&unix.POLLNVAL != 0:
			return false, unix.EBADF
		case revents&unix.POLLERR != 0:
			return false, unix.EIO
		}
		return true, nil
	}
}

// Receive reads one message with IPMICTL_RECEIVE_MSG_TRUNC. A response that
// does not fit the buffer is returned truncated, not as an error.
func (t *devTransport) Receive() (Message, error) {
	var addr ipmbAddr
	recv := ipmiRecv{
		addr:    (*byte)(unsafe.Pointer(&addr)),
		addrLen: uint32(unsafe.Sizeof(addr)),
		msg: ipmiMsg{
			dataLen: uint16(len(t.buf)),
			data:    &t.buf[0],
		},
	}

	err := sysIoctl(t.fd, ioctlReceiveMsgTrunc, unsafe.Pointer(&recv))
	runtime.KeepAlive(&addr)
	if err != nil && !errors.Is(err, unix.EMSGSIZE) {
		return Message{}, err
	}

	n := int(recv.msg.dataLen)
	if n > len(t.buf) {
		n = len(t.buf)
	}
	return Message{MsgID: int64(recv.msgid), Data: t.buf[:n]}, nil
}

func (t *devTransport) Close() error {
	return unix.Close(t.fd)
}
