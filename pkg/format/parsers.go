package format

import "fmt"

// Registered formats.
var (
	CUPS          Format = &cupsFormat{}
	NodeManager   Format = &nodeManagerFormat{}
	Temp          Format = newTempFormat()
	PECI          Format = &peciFormat{}
	PMBus         Format = &pmbusFormat{}
	SensorReading Format = &sensorFormat{}
)

// cupsFormat decodes the Compute Usage Per Second response: CPU C-state
// residency plus memory and I/O bandwidth.
type cupsFormat struct{ GenericValidator }

func (*cupsFormat) Metrics() []string {
	return []string{"cpu_cstate", "memory_bandwith", "io_bandwith"}
}

func (*cupsFormat) Parse(response []byte) map[string]uint16 {
	m := make(map[string]uint16, 3)
	word(m, response, "cpu_cstate", 4)
	word(m, response, "memory_bandwith", 6)
	word(m, response, "io_bandwith", 8)
	return m
}

// nodeManagerFormat decodes Get Node Manager Statistics: current value at
// the root, then minimum, maximum and average.
type nodeManagerFormat struct{ GenericValidator }

func (*nodeManagerFormat) Metrics() []string {
	return []string{"", "min", "max", "avg"}
}

func (*nodeManagerFormat) Parse(response []byte) map[string]uint16 {
	m := make(map[string]uint16, 4)
	word(m, response, "", 4)
	word(m, response, "min", 6)
	word(m, response, "max", 8)
	word(m, response, "avg", 10)
	return m
}

const (
	tempCPUs  = 4
	tempDIMMs = 64
	tempFirst = 4
)

// tempFormat decodes one-byte temperatures of the first four CPUs followed
// by up to 64 DIMMs.
type tempFormat struct {
	GenericValidator
	metrics []string
}

func newTempFormat() *tempFormat {
	metrics := make([]string, 0, tempCPUs+tempDIMMs)
	for i := 0; i < tempCPUs; i++ {
		metrics = append(metrics, fmt.Sprintf("cpu/cpu%d", i))
	}
	for i := 0; i < tempDIMMs; i++ {
		metrics = append(metrics, fmt.Sprintf("memory/dimm%d", i))
	}
	return &tempFormat{metrics: metrics}
}

func (f *tempFormat) Metrics() []string {
	return append([]string(nil), f.metrics...)
}

func (f *tempFormat) Parse(response []byte) map[string]uint16 {
	m := make(map[string]uint16, len(f.metrics))
	for i, name := range f.metrics {
		octet(m, response, name, tempFirst+i)
	}
	return m
}

// peciFormat decodes the PECI thermal margin response. The root metric is
// Tj max; margin_offset is the current reduction applied to it.
type peciFormat struct{ GenericValidator }

func (*peciFormat) Metrics() []string {
	return []string{"", "margin_offset"}
}

func (*peciFormat) Parse(response []byte) map[string]uint16 {
	m := make(map[string]uint16, 2)
	octet(m, response, "margin_offset", 6)
	word(m, response, "", 7)
	return m
}

const pmbusRegulators = 6

// pmbusFormat decodes voltage regulator temperatures VR0 to VR5.
type pmbusFormat struct{ GenericValidator }

func (*pmbusFormat) Metrics() []string {
	return []string{"VR0", "VR1", "VR2", "VR3", "VR4", "VR5"}
}

func (p *pmbusFormat) Parse(response []byte) map[string]uint16 {
	m := make(map[string]uint16, pmbusRegulators)
	for i, name := range p.Metrics() {
		word(m, response, name, 4+2*i)
	}
	return m
}

// sensorFormat decodes the reading byte of Get Sensor Reading.
type sensorFormat struct{ GenericValidator }

func (*sensorFormat) Metrics() []string {
	return []string{""}
}

func (*sensorFormat) Parse(response []byte) map[string]uint16 {
	m := make(map[string]uint16, 1)
	octet(m, response, "", 1)
	return m
}
