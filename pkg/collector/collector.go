package collector

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mash-protocol/ipmi-go/pkg/ipmi"
)

// NamespacePrefix leads every metric namespace.
var NamespacePrefix = []string{"intel", "ipmi"}

// DefaultNSim is the window size when none is configured.
const DefaultNSim = 4

// Collection errors.
var (
	ErrNamespacePrefix = errors.New("wrong namespace prefix")
	ErrUnknownMetric   = errors.New("unknown metric")
)

// Metric is one collected value.
type Metric struct {
	Namespace []string
	Source    string
	Timestamp time.Time
	Data      uint16
}

// Name returns the metric path below the namespace prefix.
func (m Metric) Name() string {
	return parseName(m.Namespace)
}

// String renders the metric as "<namespace> <value>".
func (m Metric) String() string {
	return fmt.Sprintf("%s %d", strings.Join(m.Namespace, "/"), m.Data)
}

// Collector reads metrics described by a vendor over an IPMI layer.
type Collector struct {
	// Layer executes the batches.
	Layer ipmi.Layer

	// NSim is the window size. Zero means DefaultNSim.
	NSim int

	// Vendor lists the available requests.
	Vendor []RequestDescription

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	indexOnce sync.Once
	index     map[string]int
}

// New returns a collector for vendor over layer.
func New(layer ipmi.Layer, vendor *Vendor, nSim int) *Collector {
	return &Collector{Layer: layer, NSim: nSim, Vendor: vendor.Requests}
}

// Namespace returns the full namespace of a metric path such as
// "power/system/avg".
func Namespace(metric string) []string {
	ns := make([]string, 0, len(NamespacePrefix)+2)
	ns = append(ns, NamespacePrefix...)
	return append(ns, strings.Split(strings.Trim(metric, "/"), "/")...)
}

func parseName(namespace []string) string {
	if len(namespace) <= len(NamespacePrefix) {
		return ""
	}
	return strings.Join(namespace[len(NamespacePrefix):], "/")
}

func metricPath(root, metric string) string {
	if metric == "" {
		return root
	}
	if root == "" {
		return metric
	}
	return root + "/" + metric
}

func (c *Collector) buildIndex() {
	c.index = make(map[string]int)
	for i, desc := range c.Vendor {
		for _, m := range desc.Format.Metrics() {
			c.index[metricPath(desc.MetricsRoot, m)] = i
		}
	}
}

func (c *Collector) lookup(namespace []string) (int, error) {
	if len(namespace) <= len(NamespacePrefix) {
		return 0, fmt.Errorf("%w in namespace %v", ErrNamespacePrefix, namespace)
	}
	for i, e := range NamespacePrefix {
		if namespace[i] != e {
			return 0, fmt.Errorf("%w in namespace %v", ErrNamespacePrefix, namespace)
		}
	}
	name := parseName(namespace)
	idx, ok := c.index[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownMetric, name)
	}
	return idx, nil
}

// MetricTypes returns the namespace of every metric the vendor provides,
// in vendor order.
func (c *Collector) MetricTypes() [][]string {
	var out [][]string
	for _, desc := range c.Vendor {
		for _, m := range desc.Format.Metrics() {
			out = append(out, Namespace(metricPath(desc.MetricsRoot, m)))
		}
	}
	return out
}

// Collect reads the requested metrics. Each underlying request is sent at
// most once, in vendor order, in a single batch. The timestamp of every
// metric is the batch completion time.
func (c *Collector) Collect(namespaces [][]string) ([]Metric, error) {
	c.indexOnce.Do(c.buildIndex)
	logger := c.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	needed := make([]bool, len(c.Vendor))
	for _, ns := range namespaces {
		idx, err := c.lookup(ns)
		if err != nil {
			return nil, err
		}
		needed[idx] = true
	}

	var (
		requests []ipmi.Request
		descs    []*RequestDescription
	)
	for i := range c.Vendor {
		if needed[i] {
			requests = append(requests, c.Vendor[i].Request)
			descs = append(descs, &c.Vendor[i])
		}
	}

	if len(requests) == 0 {
		return []Metric{}, nil
	}

	nSim := c.NSim
	if nSim <= 0 {
		nSim = DefaultNSim
	}
	responses, err := c.Layer.BatchExecRaw(requests, nSim)
	if err != nil {
		return nil, err
	}
	if len(responses) != len(requests) {
		return nil, fmt.Errorf("got %d responses for %d requests", len(responses), len(requests))
	}

	values := make(map[string]uint16)
	for i, resp := range responses {
		desc := descs[i]
		if err := desc.Format.Validate(resp.Data); err != nil {
			return nil, fmt.Errorf("%s: %w", desc.MetricsRoot, err)
		}
		for k, v := range desc.Format.Parse(resp.Data) {
			values[metricPath(desc.MetricsRoot, k)] = v
		}
	}

	ts := time.Now()
	host, _ := os.Hostname()
	results := make([]Metric, len(namespaces))
	for i, ns := range namespaces {
		name := parseName(ns)
		v, ok := values[name]
		if !ok {
			logger.Debug("metric missing from response", "metric", name)
		}
		results[i] = Metric{
			Namespace: append([]string(nil), ns...),
			Source:    host,
			Timestamp: ts,
			Data:      v,
		}
	}

	logger.Debug("collected",
		"metrics", len(results),
		"requests", len(requests))
	return results, nil
}

// CollectAll reads every metric the vendor provides.
func (c *Collector) CollectAll() ([]Metric, error) {
	return c.Collect(c.MetricTypes())
}
