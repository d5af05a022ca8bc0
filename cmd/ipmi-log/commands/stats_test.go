package commands

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mash-protocol/ipmi-go/pkg/log"
)

func TestStatsAggregation(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	stats := newStats()
	for _, e := range batchTrace(ts, 0) {
		stats.add(e)
	}

	if stats.TotalEvents != 6 {
		t.Errorf("TotalEvents = %d, want 6", stats.TotalEvents)
	}
	if stats.EventsByDirection[log.DirectionOut] != 2 || stats.EventsByDirection[log.DirectionIn] != 2 {
		t.Errorf("EventsByDirection = %v", stats.EventsByDirection)
	}
	if stats.Outcomes[0] != 1 {
		t.Errorf("Outcomes = %v", stats.Outcomes)
	}

	b := stats.Batches[testBatchID]
	if b == nil {
		t.Fatal("batch not tracked")
	}
	if b.Sent != 2 || b.Received != 2 || b.MaxInflight != 2 || b.Window != 2 || !b.Done {
		t.Errorf("unexpected batch stats: %+v", b)
	}
	if b.Device != "/dev/ipmi0" {
		t.Errorf("Device = %q", b.Device)
	}
}

func TestRunStats(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	path := createTestLogFile(t, batchTrace(ts, 310))

	var buf bytes.Buffer
	if err := RunStats(path, Selection{}, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	output := buf.String()

	for _, want := range []string{
		"Total Events: 6",
		"TIMEOUT:",
		"Batches: 1",
		"[5f0c2d1e] 1/2 answered, window 2, peak inflight 2, TIMEOUT in 5.000ms",
		"Errors: 1",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %q in output:\n%s", want, output)
		}
	}
}

func TestRunStatsEmptyFile(t *testing.T) {
	path := createTestLogFile(t, nil)

	var buf bytes.Buffer
	if err := RunStats(path, Selection{}, &buf); err != nil {
		t.Fatalf("RunStats failed: %v", err)
	}
	if !strings.Contains(buf.String(), "Total Events: 0") {
		t.Errorf("unexpected output:\n%s", buf.String())
	}
}
