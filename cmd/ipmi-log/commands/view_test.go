package commands

import (
	"bytes"
	"flag"
	"strings"
	"testing"
	"time"

	"github.com/mash-protocol/ipmi-go/pkg/log"
)

func TestFormatRequestEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	event := batchTrace(ts, 0)[1]

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	for _, want := range []string{
		"2026-01-28T10:15:32.124456Z",
		"[batch:5f0c2d1e]",
		"OUT Request",
		"MsgID: 0  Inflight: 1",
		"Target: 6:0x2c  NetFn: 0x2e  Cmd: 0xc8",
		"Data: 570100",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatResponseEvent(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	event := batchTrace(ts, 0)[3]

	var buf bytes.Buffer
	formatEvent(&buf, event)
	output := buf.String()

	if !strings.Contains(output, "IN  Response") {
		t.Errorf("expected IN Response header, got: %s", output)
	}
	if !strings.Contains(output, "Completion: 0x00") {
		t.Errorf("expected completion code, got: %s", output)
	}
	if strings.Contains(output, "Target:") {
		t.Errorf("responses carry no target, got: %s", output)
	}
}

func TestFormatStateAndErrorEvents(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	events := batchTrace(ts, 310)

	var buf bytes.Buffer
	for _, e := range events[len(events)-2:] {
		formatEvent(&buf, e)
	}
	output := buf.String()

	for _, want := range []string{
		"Error",
		"Code: TIMEOUT (310)",
		"Message: Timeout on read select.",
		"Progress: 2 submitted, 1 correlated",
		"Batch FAILED",
		"Result: TIMEOUT (310)",
		"Duration: 5.000ms",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Nanosecond, "0.500us"},
		{1500 * time.Microsecond, "1.500ms"},
		{2500 * time.Millisecond, "2.500s"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.d); got != tt.want {
			t.Errorf("formatDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestSelectionFilter(t *testing.T) {
	filter, err := Selection{
		BatchID:   testBatchID,
		Device:    "/dev/ipmi0",
		Since:     "2026-01-28T10:00:00Z",
		Until:     "2026-01-28T11:00:00Z",
		Direction: "OUT",
		Category:  "state",
	}.Filter()
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if filter.BatchID != testBatchID || filter.Device != "/dev/ipmi0" {
		t.Errorf("unexpected filter: %+v", filter)
	}
	if filter.Direction == nil || *filter.Direction != log.DirectionOut {
		t.Errorf("direction: got %v", filter.Direction)
	}
	if filter.Category == nil || *filter.Category != log.CategoryState {
		t.Errorf("category: got %v", filter.Category)
	}
	if filter.TimeStart == nil || filter.TimeEnd == nil || !filter.TimeStart.Before(*filter.TimeEnd) {
		t.Errorf("time range: %v - %v", filter.TimeStart, filter.TimeEnd)
	}

	empty, err := Selection{}.Filter()
	if err != nil {
		t.Fatalf("Filter failed: %v", err)
	}
	if empty.Direction != nil || empty.Category != nil || empty.TimeStart != nil || empty.TimeEnd != nil {
		t.Errorf("empty selection should match everything: %+v", empty)
	}
}

func TestSelectionFilterErrors(t *testing.T) {
	for _, sel := range []Selection{
		{Since: "yesterday"},
		{Until: "tomorrow"},
		{Direction: "sideways"},
		{Category: "frame"},
	} {
		if _, err := sel.Filter(); err == nil {
			t.Errorf("expected error for %+v", sel)
		}
	}
}

func TestSelectionRegister(t *testing.T) {
	var sel Selection
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	sel.Register(fs)
	if err := fs.Parse([]string{"-batch-id", "abc", "-device", "/dev/ipmi1", "-direction", "in", "trace.ilog"}); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if sel.BatchID != "abc" || sel.Device != "/dev/ipmi1" || sel.Direction != "in" {
		t.Errorf("unexpected selection: %+v", sel)
	}
	if fs.Arg(0) != "trace.ilog" {
		t.Errorf("expected trace.ilog argument, got %q", fs.Arg(0))
	}
}

func TestRunViewFiltersByDirection(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	path := createTestLogFile(t, batchTrace(ts, 0))

	var buf bytes.Buffer
	if err := RunView(path, Selection{Direction: "in", Category: "message"}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	if got := strings.Count(output, "Response"); got != 2 {
		t.Errorf("expected 2 responses, got %d:\n%s", got, output)
	}
	if strings.Contains(output, "Request") || strings.Contains(output, "Batch") {
		t.Errorf("unexpected events in output:\n%s", output)
	}
}

func TestRunViewDirectionExcludesLifecycleEvents(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	path := createTestLogFile(t, batchTrace(ts, 310))

	var buf bytes.Buffer
	if err := RunView(path, Selection{Direction: "in"}, &buf); err != nil {
		t.Fatalf("RunView failed: %v", err)
	}

	output := buf.String()
	if got := strings.Count(output, "Response"); got != 1 {
		t.Errorf("expected 1 response, got %d:\n%s", got, output)
	}
	if strings.Contains(output, "] -- ") {
		t.Errorf("state or error events in output:\n%s", output)
	}
}

func TestRunViewMissingFile(t *testing.T) {
	var buf bytes.Buffer
	if err := RunView("/nonexistent/file.ilog", Selection{}, &buf); err == nil {
		t.Error("expected error for missing file")
	}
}
