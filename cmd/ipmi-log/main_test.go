package main

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mash-protocol/ipmi-go/pkg/log"
)

func writeCapture(t *testing.T, events ...log.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.ilog")
	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()
	return path
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"view", "stats", "export", "filter"} {
		if _, ok := lookup(name); !ok {
			t.Errorf("command %q not found", name)
		}
	}
	if _, ok := lookup("tail"); ok {
		t.Error("unexpected command tail")
	}
}

func TestPrintUsageListsCommands(t *testing.T) {
	var buf bytes.Buffer
	printUsage(&buf)
	for _, c := range commandTable {
		if !strings.Contains(buf.String(), c.name) {
			t.Errorf("usage does not mention %s:\n%s", c.name, buf.String())
		}
	}
}

func TestRunRequiresOneFile(t *testing.T) {
	c, _ := lookup("view")
	for _, args := range [][]string{nil, {"a.ilog", "b.ilog"}, {"-bogus", "a.ilog"}} {
		if err := c.run(args); !errors.Is(err, errUsage) {
			t.Errorf("args %v: got %v, want usage error", args, err)
		}
	}
}

func TestRunFilterSelection(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	path := writeCapture(t,
		log.Event{Timestamp: ts, BatchID: "a", Device: "/dev/ipmi0", Category: log.CategoryState, State: &log.StateEvent{}},
		log.Event{Timestamp: ts, BatchID: "a", Device: "/dev/ipmi0", Direction: log.DirectionIn, Category: log.CategoryMessage, Message: &log.MessageEvent{}},
		log.Event{Timestamp: ts, BatchID: "b", Device: "/dev/ipmi1", Direction: log.DirectionIn, Category: log.CategoryMessage, Message: &log.MessageEvent{}},
	)
	out := filepath.Join(t.TempDir(), "out.ilog")

	c, _ := lookup("filter")
	if err := c.run([]string{"-o", out, "-device", "/dev/ipmi0", "-direction", "in", path}); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	reader, err := log.NewReader(out)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	defer reader.Close()
	event, err := reader.Next()
	if err != nil {
		t.Fatalf("Next failed: %v", err)
	}
	if event.BatchID != "a" || event.Category != log.CategoryMessage {
		t.Errorf("unexpected event %+v", event)
	}
	if _, err := reader.Next(); err == nil {
		t.Error("expected exactly one event")
	}
}

func TestRunFilterNeedsOutput(t *testing.T) {
	path := writeCapture(t)
	c, _ := lookup("filter")
	if err := c.run([]string{path}); err == nil || errors.Is(err, errUsage) {
		t.Errorf("got %v, want missing output error", err)
	}
}
