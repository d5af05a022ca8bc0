package commands

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/mash-protocol/ipmi-go/pkg/log"
)

func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.ilog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

const testBatchID = "5f0c2d1e-8a7b-4c3d-9e2f-0123456789ab"

// batchTrace returns the events of a two-request batch with window 2 that
// ends with outcome code.
func batchTrace(ts time.Time, code int) []log.Event {
	ev := func(offset time.Duration, e log.Event) log.Event {
		e.Timestamp = ts.Add(offset)
		e.BatchID = testBatchID
		e.Device = "/dev/ipmi0"
		return e
	}
	events := []log.Event{
		ev(0, log.Event{Category: log.CategoryState, State: &log.StateEvent{State: log.BatchStarted, Requests: 2, Window: 2}}),
		ev(time.Millisecond, log.Event{Direction: log.DirectionOut, Category: log.CategoryMessage,
			Message: &log.MessageEvent{MsgID: 0, Channel: 6, Slave: 0x2c, NetFn: 0x2e, Cmd: 0xc8, Data: []byte{0x57, 0x01, 0x00}, Inflight: 1}}),
		ev(2*time.Millisecond, log.Event{Direction: log.DirectionOut, Category: log.CategoryMessage,
			Message: &log.MessageEvent{MsgID: 1, Channel: 6, Slave: 0x2c, NetFn: 0x2e, Cmd: 0x65, Inflight: 2}}),
		ev(3*time.Millisecond, log.Event{Direction: log.DirectionIn, Category: log.CategoryMessage,
			Message: &log.MessageEvent{MsgID: 1, Data: []byte{0x00, 0x57, 0x01, 0x00}, Inflight: 1}}),
	}
	if code != 0 {
		events = append(events,
			ev(4*time.Millisecond, log.Event{Category: log.CategoryError,
				Error: &log.ErrorEvent{Code: code, Message: "Timeout on read select.", Submitted: 2, Correlated: 1}}),
			ev(5*time.Millisecond, log.Event{Category: log.CategoryState,
				State: &log.StateEvent{State: log.BatchFailed, Requests: 2, Window: 2, Code: code, Elapsed: 5 * time.Millisecond}}))
		return events
	}
	return append(events,
		ev(4*time.Millisecond, log.Event{Direction: log.DirectionIn, Category: log.CategoryMessage,
			Message: &log.MessageEvent{MsgID: 0, Data: []byte{0x00}, Inflight: 0}}),
		ev(5*time.Millisecond, log.Event{Category: log.CategoryState,
			State: &log.StateEvent{State: log.BatchCompleted, Requests: 2, Window: 2, Elapsed: 5 * time.Millisecond}}))
}
