package commands

import (
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/mash-protocol/ipmi-go/pkg/log"
)

// RunExport writes the selected events of path as jsonl or csv.
func RunExport(path, format, output string, sel Selection) error {
	if format != "jsonl" && format != "csv" {
		return fmt.Errorf("unknown format: %s (supported: jsonl, csv)", format)
	}

	reader, err := sel.open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	if format == "csv" {
		return exportCSV(reader, w)
	}
	return exportJSONL(reader, w)
}

func exportJSONL(reader *log.Reader, w io.Writer) error {
	encoder := json.NewEncoder(w)
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		if err := encoder.Encode(event); err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
	}
	return nil
}

func exportCSV(reader *log.Reader, w io.Writer) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"timestamp", "batch_id", "device", "direction", "category", "msg_id", "netfn", "cmd", "data", "code", "detail"}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		var msgID, netFn, cmd, data, code, detail string
		switch {
		case event.Message != nil:
			m := event.Message
			msgID = strconv.FormatInt(m.MsgID, 10)
			if event.Direction == log.DirectionOut {
				netFn = fmt.Sprintf("0x%02x", m.NetFn)
				cmd = fmt.Sprintf("0x%02x", m.Cmd)
			}
			data = hex.EncodeToString(m.Data)
		case event.State != nil:
			detail = event.State.State.String()
			if event.State.State != log.BatchStarted {
				code = strconv.Itoa(event.State.Code)
			}
		case event.Error != nil:
			code = strconv.Itoa(event.Error.Code)
			detail = event.Error.Message
		}

		row := []string{
			event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z"),
			event.BatchID,
			event.Device,
			event.Direction.String(),
			event.Category.String(),
			msgID,
			netFn,
			cmd,
			data,
			code,
			detail,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}
	return nil
}
