package collector

import (
	"embed"
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/ipmi-go/pkg/format"
	"github.com/mash-protocol/ipmi-go/pkg/ipmi"
)

//go:embed vendors/*.yaml
var vendorFS embed.FS

// DefaultVendorName is the built-in vendor description.
const DefaultVendorName = "intel-node-manager"

// RequestDescription binds one raw request to the metrics its response carries.
type RequestDescription struct {
	// Request is sent once per collection that needs any of its metrics.
	Request ipmi.Request

	// MetricsRoot prefixes every metric name the format produces.
	MetricsRoot string

	// Format decodes the response.
	Format format.Format
}

// Vendor is a named list of request descriptions.
type Vendor struct {
	Name     string
	Requests []RequestDescription
}

type vendorFile struct {
	Vendor   string          `yaml:"vendor"`
	Requests []requestSource `yaml:"requests"`
}

type requestSource struct {
	Root    string `yaml:"root"`
	Format  string `yaml:"format"`
	Channel uint16 `yaml:"channel"`
	Slave   uint8  `yaml:"slave"`
	Data    string `yaml:"data"`
}

// LoadError provides details about a vendor file loading error.
type LoadError struct {
	// File is the path to the file that failed to load.
	File string

	// Index is the offending request entry, or -1.
	Index int

	// Message describes the error.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

func (e *LoadError) Error() string {
	var b strings.Builder
	if e.File != "" {
		b.WriteString(e.File)
		b.WriteString(": ")
	}
	if e.Index >= 0 {
		fmt.Fprintf(&b, "request %d: ", e.Index)
	}
	b.WriteString(e.Message)
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}

// ParseVendor parses a vendor description from YAML bytes.
func ParseVendor(data []byte) (*Vendor, error) {
	var vf vendorFile
	if err := yaml.Unmarshal(data, &vf); err != nil {
		return nil, &LoadError{Index: -1, Message: "failed to parse YAML", Cause: err}
	}
	if vf.Vendor == "" {
		return nil, &LoadError{Index: -1, Message: "vendor name is required"}
	}
	if len(vf.Requests) == 0 {
		return nil, &LoadError{Index: -1, Message: "vendor must describe at least one request"}
	}

	v := &Vendor{Name: vf.Vendor, Requests: make([]RequestDescription, 0, len(vf.Requests))}
	seen := make(map[string]int)
	for i, src := range vf.Requests {
		desc, err := src.description()
		if err != nil {
			return nil, &LoadError{Index: i, Message: err.Error()}
		}
		for _, m := range desc.Format.Metrics() {
			name := metricPath(desc.MetricsRoot, m)
			if prev, dup := seen[name]; dup {
				return nil, &LoadError{Index: i, Message: fmt.Sprintf("metric %q already produced by request %d", name, prev)}
			}
			seen[name] = i
		}
		v.Requests = append(v.Requests, desc)
	}
	return v, nil
}

func (s requestSource) description() (RequestDescription, error) {
	f, err := format.Lookup(s.Format)
	if err != nil {
		return RequestDescription{}, err
	}
	data, err := hex.DecodeString(strings.Join(strings.Fields(s.Data), ""))
	if err != nil {
		return RequestDescription{}, fmt.Errorf("bad request data %q: %w", s.Data, err)
	}
	if len(data) < ipmi.HeaderLen {
		return RequestDescription{}, fmt.Errorf("request data %q lacks NetFn and Cmd", s.Data)
	}
	return RequestDescription{
		Request:     ipmi.Request{Channel: s.Channel, Slave: s.Slave, Data: data},
		MetricsRoot: strings.Trim(s.Root, "/"),
		Format:      f,
	}, nil
}

// LoadVendor loads a vendor description from a file.
func LoadVendor(path string) (*Vendor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{File: path, Index: -1, Message: "failed to read file", Cause: err}
	}

	v, err := ParseVendor(data)
	if err != nil {
		if le, ok := err.(*LoadError); ok {
			le.File = path
		}
		return nil, err
	}
	return v, nil
}

// DefaultVendor returns the built-in Intel Node Manager description.
func DefaultVendor() *Vendor {
	data, err := vendorFS.ReadFile("vendors/" + DefaultVendorName + ".yaml")
	if err != nil {
		panic(err)
	}
	v, err := ParseVendor(data)
	if err != nil {
		panic(err)
	}
	return v
}
