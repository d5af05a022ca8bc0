// Package format decodes raw IPMI responses into named metric values.
//
// A Format knows which metrics one response carries, how to check that the
// response is usable, and where each metric sits in the payload. Multi-byte
// fields are little-endian. The first payload byte of every response is the
// IPMI completion code.
//
// Parsers tolerate short responses: a field that does not fit the payload is
// left out of the result rather than read past the end.
package format
