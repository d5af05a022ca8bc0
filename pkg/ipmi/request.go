package ipmi

import "fmt"

// MaxDataLen is the largest payload, request or response, the device interface carries.
const MaxDataLen = 1024

// HeaderLen is the number of mandatory leading payload bytes (NetFn, Cmd).
const HeaderLen = 2

// Address selects a peer on the management bus.
type Address struct {
	// Channel is the IPMB channel number.
	Channel uint16

	// Slave is the target's slave address.
	Slave uint8
}

func (a Address) String() string {
	return fmt.Sprintf("%d:0x%02x", a.Channel, a.Slave)
}

// Request is one raw IPMI command.
// Data[0] is the network function, Data[1] the command; the rest is command data.
type Request struct {
	Channel uint16
	Slave   uint8
	Data    []byte
}

// Address returns the request's bus address.
func (r *Request) Address() Address {
	return Address{Channel: r.Channel, Slave: r.Slave}
}

// NetFn returns the network function byte. Call only on validated requests.
func (r *Request) NetFn() uint8 { return r.Data[0] }

// Cmd returns the command byte. Call only on validated requests.
func (r *Request) Cmd() uint8 { return r.Data[1] }

// Body returns the command data following the header.
func (r *Request) Body() []byte { return r.Data[HeaderLen:] }

// Response is the payload returned for one request.
// The first byte is normally the IPMI completion code.
type Response struct {
	Data []byte
}

// Len returns the payload length.
func (r *Response) Len() int { return len(r.Data) }

// ValidateRequests checks that every request carries the NetFn and Cmd header.
// It reports the first offending slot as a CodeShortPayload status. Payload
// content and addressing are left to the device.
func ValidateRequests(requests []Request) *Status {
	for i := range requests {
		if len(requests[i].Data) < HeaderLen {
			return newStatus(CodeShortPayload, "Supplied buffer too short in msg %d", i)
		}
	}
	return nil
}
