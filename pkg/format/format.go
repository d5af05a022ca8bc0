package format

import (
	"errors"
	"fmt"
	"sort"
)

// Format describes the layout of one kind of response.
type Format interface {
	// Metrics lists the metric names the format produces, relative to the
	// request's metrics root. The empty name denotes the root itself.
	Metrics() []string

	// Validate reports whether the response can be parsed.
	Validate(response []byte) error

	// Parse extracts metric values from a validated response.
	Parse(response []byte) map[string]uint16
}

// Validation errors.
var (
	ErrEmptyResponse  = errors.New("zero length response")
	ErrCompletionCode = errors.New("unexpected completion code")
	ErrUnknownFormat  = errors.New("unknown format")
)

// CompletionCodeError carries a non-zero completion code.
type CompletionCodeError struct {
	Code byte
}

func (e *CompletionCodeError) Error() string {
	return fmt.Sprintf("unexpected completion code: %d", e.Code)
}

// Unwrap returns ErrCompletionCode.
func (e *CompletionCodeError) Unwrap() error {
	return ErrCompletionCode
}

// GenericValidator accepts non-empty responses with a zero completion code.
type GenericValidator struct{}

// Validate implements Format.
func (GenericValidator) Validate(response []byte) error {
	if len(response) == 0 {
		return ErrEmptyResponse
	}
	if response[0] != 0 {
		return &CompletionCodeError{Code: response[0]}
	}
	return nil
}

// word reads the little-endian uint16 at off into m[name] if it fits.
func word(m map[string]uint16, response []byte, name string, off int) {
	if off+2 <= len(response) {
		m[name] = uint16(response[off]) | uint16(response[off+1])<<8
	}
}

// octet reads the byte at off into m[name] if it fits.
func octet(m map[string]uint16, response []byte, name string, off int) {
	if off < len(response) {
		m[name] = uint16(response[off])
	}
}

var registry = map[string]Format{
	"cups":         CUPS,
	"node_manager": NodeManager,
	"temp":         Temp,
	"peci":         PECI,
	"pmbus":        PMBus,
	"sensor":       SensorReading,
}

// Lookup returns the format registered under name.
func Lookup(name string) (Format, error) {
	f, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
	return f, nil
}

// Name returns the name f is registered under, or "" for unregistered formats.
func Name(f Format) string {
	for name, r := range registry {
		if r == f {
			return name
		}
	}
	return ""
}

// Names returns the registered format names, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
