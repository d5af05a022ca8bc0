// Package commands implements the ipmi-log CLI commands.
package commands

import (
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"github.com/mash-protocol/ipmi-go/pkg/ipmi"
	"github.com/mash-protocol/ipmi-go/pkg/log"
)

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [batch:id] DIRECTION Type
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	batchID := shortenBatchID(event.BatchID)

	var typeLabel, dir string
	switch {
	case event.Message != nil && event.Direction == log.DirectionOut:
		typeLabel, dir = "Request", "OUT"
	case event.Message != nil:
		typeLabel, dir = "Response", "IN"
	case event.State != nil:
		typeLabel, dir = "Batch "+event.State.State.String(), "--"
	case event.Error != nil:
		typeLabel, dir = "Error", "--"
	default:
		typeLabel, dir = "Unknown", "--"
	}

	fmt.Fprintf(w, "%s [batch:%s] %-3s %s\n", ts, batchID, dir, typeLabel)

	switch {
	case event.Message != nil:
		formatMessageDetails(w, event.Direction, event.Message)
	case event.State != nil:
		formatStateDetails(w, event.Device, event.State)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w)
}

// shortenBatchID returns the first 8 characters of the batch ID.
func shortenBatchID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

func formatMessageDetails(w io.Writer, dir log.Direction, msg *log.MessageEvent) {
	fmt.Fprintf(w, "  MsgID: %d  Inflight: %d\n", msg.MsgID, msg.Inflight)
	if dir == log.DirectionOut {
		fmt.Fprintf(w, "  Target: %s  NetFn: 0x%02x  Cmd: 0x%02x\n",
			ipmi.Address{Channel: msg.Channel, Slave: msg.Slave}, msg.NetFn, msg.Cmd)
	} else if len(msg.Data) > 0 {
		fmt.Fprintf(w, "  Completion: 0x%02x\n", msg.Data[0])
	}
	if len(msg.Data) > 0 {
		fmt.Fprintf(w, "  Data: %s\n", hex.EncodeToString(msg.Data))
	}
}

func formatStateDetails(w io.Writer, device string, st *log.StateEvent) {
	if device != "" {
		fmt.Fprintf(w, "  Device: %s\n", device)
	}
	fmt.Fprintf(w, "  Requests: %d  Window: %d\n", st.Requests, st.Window)
	if st.State != log.BatchStarted {
		fmt.Fprintf(w, "  Result: %s (%d)\n", ipmi.Code(st.Code), st.Code)
		fmt.Fprintf(w, "  Duration: %s\n", formatDuration(st.Elapsed))
	}
}

func formatErrorDetails(w io.Writer, e *log.ErrorEvent) {
	fmt.Fprintf(w, "  Code: %s (%d)\n", ipmi.Code(e.Code), e.Code)
	fmt.Fprintf(w, "  Message: %s\n", e.Message)
	if e.Errno != 0 {
		fmt.Fprintf(w, "  Errno: %d\n", e.Errno)
	}
	fmt.Fprintf(w, "  Progress: %d submitted, %d correlated\n", e.Submitted, e.Correlated)
}

// formatDuration formats a duration for display.
func formatDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%.3fus", float64(d.Nanoseconds())/1000)
	}
	if d < time.Second {
		return fmt.Sprintf("%.3fms", float64(d.Microseconds())/1000)
	}
	return fmt.Sprintf("%.3fs", d.Seconds())
}

// RunView prints the selected events of path in human-readable form.
func RunView(path string, sel Selection, output io.Writer) error {
	reader, err := sel.open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		formatEvent(output, event)
	}

	return nil
}
