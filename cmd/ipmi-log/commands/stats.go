package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/mash-protocol/ipmi-go/pkg/ipmi"
	"github.com/mash-protocol/ipmi-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents       int
	EventsByCategory  map[log.Category]int
	EventsByDirection map[log.Direction]int
	Batches           map[string]*BatchStats
	Outcomes          map[int]int
	Errors            int
	TimeRange         struct {
		Start time.Time
		End   time.Time
	}
}

// BatchStats holds statistics for a single batch.
type BatchStats struct {
	FirstSeen time.Time
	Device    string
	Requests  int
	Window    int
	Sent      int
	Received  int
	// MaxInflight is the largest number of outstanding requests observed.
	MaxInflight int
	Done        bool
	Code        int
	Elapsed     time.Duration
}

func newStats() *Stats {
	return &Stats{
		EventsByCategory:  make(map[log.Category]int),
		EventsByDirection: make(map[log.Direction]int),
		Batches:           make(map[string]*BatchStats),
		Outcomes:          make(map[int]int),
	}
}

func (s *Stats) add(event log.Event) {
	s.TotalEvents++
	s.EventsByCategory[event.Category]++
	if event.Category == log.CategoryMessage {
		s.EventsByDirection[event.Direction]++
	}

	if s.TimeRange.Start.IsZero() || event.Timestamp.Before(s.TimeRange.Start) {
		s.TimeRange.Start = event.Timestamp
	}
	if event.Timestamp.After(s.TimeRange.End) {
		s.TimeRange.End = event.Timestamp
	}

	b, ok := s.Batches[event.BatchID]
	if !ok {
		b = &BatchStats{FirstSeen: event.Timestamp, Device: event.Device}
		s.Batches[event.BatchID] = b
	}

	switch {
	case event.Message != nil:
		if event.Direction == log.DirectionOut {
			b.Sent++
		} else {
			b.Received++
		}
		if event.Message.Inflight > b.MaxInflight {
			b.MaxInflight = event.Message.Inflight
		}
	case event.State != nil:
		b.Requests = event.State.Requests
		b.Window = event.State.Window
		if event.State.State != log.BatchStarted {
			b.Done = true
			b.Code = event.State.Code
			b.Elapsed = event.State.Elapsed
			s.Outcomes[event.State.Code]++
		}
	case event.Error != nil:
		s.Errors++
	}
}

// RunStats summarizes the selected events of path.
func RunStats(path string, sel Selection, w io.Writer) error {
	reader, err := sel.open(path)
	if err != nil {
		return err
	}
	defer reader.Close()

	stats := newStats()
	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}
		stats.add(event)
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== IPMI Batch Log Statistics ===")
	fmt.Fprintln(w)

	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryMessage, log.CategoryState, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Messages by Direction:")
	for _, dir := range []log.Direction{log.DirectionIn, log.DirectionOut} {
		if count := stats.EventsByDirection[dir]; count > 0 {
			fmt.Fprintf(w, "  %-12s %d\n", dir.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	if len(stats.Outcomes) > 0 {
		codes := make([]int, 0, len(stats.Outcomes))
		for c := range stats.Outcomes {
			codes = append(codes, c)
		}
		sort.Ints(codes)
		fmt.Fprintln(w, "Outcomes:")
		for _, c := range codes {
			fmt.Fprintf(w, "  %-16s %d\n", fmt.Sprintf("%s:", ipmi.Code(c)), stats.Outcomes[c])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintf(w, "Batches: %d\n", len(stats.Batches))
	if len(stats.Batches) > 0 {
		type batchInfo struct {
			id    string
			stats *BatchStats
		}
		batches := make([]batchInfo, 0, len(stats.Batches))
		for id, bs := range stats.Batches {
			batches = append(batches, batchInfo{id, bs})
		}
		sort.Slice(batches, func(i, j int) bool {
			return batches[i].stats.FirstSeen.Before(batches[j].stats.FirstSeen)
		})

		fmt.Fprintln(w)
		for _, b := range batches {
			result := "incomplete"
			if b.stats.Done {
				result = fmt.Sprintf("%s in %s", ipmi.Code(b.stats.Code), formatDuration(b.stats.Elapsed))
			}
			fmt.Fprintf(w, "  [%s] %d/%d answered, window %d, peak inflight %d, %s\n",
				shortenBatchID(b.id), b.stats.Received, b.stats.Requests,
				b.stats.Window, b.stats.MaxInflight, result)
			if b.stats.Device != "" {
				fmt.Fprintf(w, "             Device: %s\n", b.stats.Device)
			}
		}
	}

	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
