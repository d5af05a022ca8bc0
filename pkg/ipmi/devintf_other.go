//go:build !linux

package ipmi

import (
	"errors"
	"time"
)

// ErrUnsupportedPlatform is returned when opening the device interface on a
// platform without OpenIPMI.
var ErrUnsupportedPlatform = errors.New("ipmi: device interface requires linux")

// DevOpener opens the OpenIPMI character device. Only available on Linux.
type DevOpener struct {
	BufferSize int
}

// NewDevOpener returns a DevOpener.
func NewDevOpener() *DevOpener {
	return &DevOpener{BufferSize: MaxDataLen}
}

// Open always fails with ErrUnsupportedPlatform.
func (o *DevOpener) Open(path string) (Transport, error) {
	return nil, ErrUnsupportedPlatform
}

type devTransport struct{}

func (*devTransport) Send(Address, int64, uint8, uint8, []byte) error { return ErrUnsupportedPlatform }
func (*devTransport) Wait(time.Duration) (bool, error)                { return false, ErrUnsupportedPlatform }
func (*devTransport) Receive() (Message, error)                       { return Message{}, ErrUnsupportedPlatform }
func (*devTransport) Close() error                                    { return nil }
