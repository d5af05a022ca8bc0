package commands

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/mash-protocol/ipmi-go/pkg/log"
)

// Selection narrows a capture down to the events of interest. Every command
// accepts the same selection flags.
type Selection struct {
	BatchID   string
	Device    string
	Since     string
	Until     string
	Direction string
	Category  string
}

// Register binds the selection flags to fs.
func (s *Selection) Register(fs *flag.FlagSet) {
	fs.StringVar(&s.BatchID, "batch-id", "", "Only events of this batch")
	fs.StringVar(&s.Device, "device", "", "Only batches run against this device path")
	fs.StringVar(&s.Since, "since", "", "Only events at or after this time (RFC3339)")
	fs.StringVar(&s.Until, "until", "", "Only events before this time (RFC3339)")
	fs.StringVar(&s.Direction, "direction", "", "Only requests (out) or responses (in)")
	fs.StringVar(&s.Category, "category", "", "Only message, state or error events")
}

// Filter converts the selection into a reader filter.
func (s Selection) Filter() (log.Filter, error) {
	filter := log.Filter{BatchID: s.BatchID, Device: s.Device}

	var err error
	if filter.TimeStart, err = parseTime("since", s.Since); err != nil {
		return log.Filter{}, err
	}
	if filter.TimeEnd, err = parseTime("until", s.Until); err != nil {
		return log.Filter{}, err
	}

	if s.Direction != "" {
		d, err := parseDirection(s.Direction)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Direction = &d
	}
	if s.Category != "" {
		c, err := parseCategory(s.Category)
		if err != nil {
			return log.Filter{}, err
		}
		filter.Category = &c
	}
	return filter, nil
}

// open opens path with the selection applied.
func (s Selection) open(path string) (*log.Reader, error) {
	filter, err := s.Filter()
	if err != nil {
		return nil, err
	}
	reader, err := log.NewFilteredReader(path, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return reader, nil
}

func parseTime(name, s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return nil, fmt.Errorf("invalid -%s time %q: %w", name, s, err)
	}
	return &t, nil
}

func parseDirection(s string) (log.Direction, error) {
	switch strings.ToLower(s) {
	case "in":
		return log.DirectionIn, nil
	case "out":
		return log.DirectionOut, nil
	default:
		return 0, fmt.Errorf("invalid direction: %s (must be in or out)", s)
	}
}

func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "message":
		return log.CategoryMessage, nil
	case "state":
		return log.CategoryState, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be message, state, or error)", s)
	}
}
