package log

import (
	"context"
	"log/slog"
)

// SlogAdapter writes protocol events to an slog.Logger at Debug level.
type SlogAdapter struct {
	logger *slog.Logger
}

// NewSlogAdapter returns an adapter writing to logger.
func NewSlogAdapter(logger *slog.Logger) *SlogAdapter {
	return &SlogAdapter{logger: logger}
}

// Log writes the event.
func (a *SlogAdapter) Log(event Event) {
	attrs := []slog.Attr{
		slog.String("batch_id", event.BatchID),
		slog.String("direction", event.Direction.String()),
		slog.String("category", event.Category.String()),
	}
	if event.Device != "" {
		attrs = append(attrs, slog.String("device", event.Device))
	}

	switch {
	case event.Message != nil:
		m := event.Message
		attrs = append(attrs,
			slog.Int64("msg_id", m.MsgID),
			slog.Int("data_len", len(m.Data)),
			slog.Int("inflight", m.Inflight),
		)
		if event.Direction == DirectionOut {
			attrs = append(attrs,
				slog.Uint64("channel", uint64(m.Channel)),
				slog.Uint64("slave", uint64(m.Slave)),
				slog.Uint64("netfn", uint64(m.NetFn)),
				slog.Uint64("cmd", uint64(m.Cmd)),
			)
		}
	case event.State != nil:
		s := event.State
		attrs = append(attrs,
			slog.String("state", s.State.String()),
			slog.Int("requests", s.Requests),
			slog.Int("window", s.Window),
		)
		if s.State != BatchStarted {
			attrs = append(attrs,
				slog.Int("code", s.Code),
				slog.Duration("elapsed", s.Elapsed),
			)
		}
	case event.Error != nil:
		e := event.Error
		attrs = append(attrs,
			slog.Int("code", e.Code),
			slog.String("error_msg", e.Message),
			slog.Int("submitted", e.Submitted),
			slog.Int("correlated", e.Correlated),
		)
		if e.Errno != 0 {
			attrs = append(attrs, slog.Int("errno", e.Errno))
		}
	}

	a.logger.LogAttrs(context.Background(), slog.LevelDebug, "ipmi", attrs...)
}

var _ Logger = (*SlogAdapter)(nil)
