// Package ipmi executes batches of raw IPMI commands over the Linux OpenIPMI
// character device (/dev/ipmi0).
//
// The device accepts several outstanding requests at once and returns their
// responses in whatever order the management controller produces them. The
// Engine pipelines a batch through the device with a bounded window:
//
//   - every request is validated before the device is opened
//   - requests are sent in slot order while fewer than the window size are
//     outstanding
//   - when the window is full (or everything is sent) the engine blocks for
//     one response, bounded by Config.Timeout
//   - each response carries the message ID it was sent with, which is the
//     request's slot index, and is written into that slot of the output array
//
// # Usage
//
//	engine := ipmi.NewEngine(ipmi.DefaultConfig())
//
//	requests := []ipmi.Request{
//	    {Channel: 0, Slave: 0x20, Data: []byte{0x06, 0x01}}, // Get Device ID
//	    {Channel: 6, Slave: 0x2c, Data: []byte{0x2e, 0xc8, 0x57, 0x01, 0x00, 0x01, 0x00, 0x00}},
//	}
//	responses := make([]ipmi.Response, len(requests))
//
//	if err := engine.Exec(requests, responses, 2); err != nil {
//	    var st *ipmi.Status
//	    errors.As(err, &st) // st.Code, st.Message, st.Errno
//	}
//
// # Outcome Codes
//
// Every batch yields exactly one Status. Zero is success, negative codes are
// caller mistakes detected before any I/O, and positive codes identify the
// phase in which device I/O failed. The numeric values are shared with
// existing callers and must not change.
//
// No failure is retried. A failed batch leaves some output slots written and
// others untouched; callers must treat the whole output array as invalid.
package ipmi
