package ipmi

import (
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/mash-protocol/ipmi-go/pkg/log"
)

// Engine defaults.
const (
	// DefaultDevice is the OpenIPMI character device.
	DefaultDevice = "/dev/ipmi0"

	// DefaultTimeout bounds each wait for a response.
	DefaultTimeout = 5 * time.Second
)

// Config configures an Engine.
type Config struct {
	// Device is the character device path.
	Device string

	// Timeout bounds every individual wait for a response. It does not
	// bound the batch as a whole.
	Timeout time.Duration

	// Opener opens the device. Defaults to the OpenIPMI device interface.
	Opener Opener

	// TrustMessageIDs skips the check that a response's message ID is
	// outstanding and not already answered. IDs outside the batch are
	// always rejected.
	TrustMessageIDs bool

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger

	// ProtocolLogger receives a trace of every batch.
	// If nil, no trace is captured.
	ProtocolLogger log.Logger
}

// DefaultConfig returns a Config for /dev/ipmi0 with a 5 second wait timeout.
func DefaultConfig() Config {
	return Config{
		Device:  DefaultDevice,
		Timeout: DefaultTimeout,
	}
}

// Engine runs batches against one device. Each call to Exec opens and
// closes its own transport, so an Engine may be shared between goroutines.
type Engine struct {
	config Config
	logger *slog.Logger
	plog   log.Logger
}

// NewEngine creates an engine, filling unset fields of config with defaults.
func NewEngine(config Config) *Engine {
	if config.Device == "" {
		config.Device = DefaultDevice
	}
	if config.Timeout <= 0 {
		config.Timeout = DefaultTimeout
	}
	if config.Opener == nil {
		config.Opener = NewDevOpener()
	}

	e := &Engine{config: config, logger: config.Logger, plog: config.ProtocolLogger}
	if e.logger == nil {
		e.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if e.plog == nil {
		e.plog = log.NoopLogger{}
	}
	return e
}

// Config returns the effective configuration.
func (e *Engine) Config() Config {
	return e.config
}

// Exec sends every request and stores each response in the output slot with
// the same index, keeping at most nSim requests outstanding. len(outputs)
// must equal len(inputs).
//
// It returns nil on success and a *Status otherwise. On failure, outputs may
// be partially written.
func (e *Engine) Exec(inputs []Request, outputs []Response, nSim int) error {
	b := &batch{
		engine:  e,
		id:      uuid.New().String(),
		inputs:  inputs,
		outputs: outputs,
		nSim:    nSim,
	}
	if st := b.run(); !st.OK() {
		return st
	}
	return nil
}

// BatchCommands runs one batch against device with default settings and
// records the outcome in info, which may be nil. It returns the outcome code.
func BatchCommands(device string, inputs []Request, outputs []Response, nSim int, info *Status) Code {
	cfg := DefaultConfig()
	cfg.Device = device
	return NewEngine(cfg).execStatus(inputs, outputs, nSim, info)
}

func (e *Engine) execStatus(inputs []Request, outputs []Response, nSim int, info *Status) Code {
	err := e.Exec(inputs, outputs, nSim)
	st, _ := err.(*Status)
	if info != nil {
		if st != nil {
			*info = *st
		} else {
			*info = Status{}
		}
	}
	if st == nil {
		return CodeOK
	}
	return st.Code
}

// window tracks outstanding requests.
// Invariants: correlated <= submitted <= total and submitted-correlated <= nSim.
type window struct {
	total      int
	nSim       int
	submitted  int
	correlated int
	answered   []bool
}

func (w *window) inflight() int { return w.submitted - w.correlated }

// canSubmit reports whether the next request may be sent now.
func (w *window) canSubmit() bool {
	return w.submitted < w.total && w.inflight() < w.nSim
}

func (w *window) done() bool { return w.correlated >= w.total }

type batch struct {
	engine  *Engine
	id      string
	inputs  []Request
	outputs []Response
	nSim    int
	win     window
	started time.Time
}

func (b *batch) run() *Status {
	e := b.engine
	b.started = time.Now()
	if st := b.validate(); st != nil {
		e.logger.Debug("batch rejected", "batch_id", b.id, "code", st.Code, "reason", st.Message)
		b.logError(st)
		b.logState(log.BatchFailed, st.Code)
		return st
	}

	b.win = window{total: len(b.inputs), nSim: b.nSim, answered: make([]bool, len(b.inputs))}
	b.logState(log.BatchStarted, CodeOK)

	st := b.drive()
	if st != nil {
		b.logError(st)
		b.logState(log.BatchFailed, st.Code)
		e.logger.Warn("batch failed",
			"batch_id", b.id,
			"device", e.config.Device,
			"code", int(st.Code),
			"error", st.Message,
			"submitted", b.win.submitted,
			"correlated", b.win.correlated)
		return st
	}
	b.logState(log.BatchCompleted, CodeOK)
	e.logger.Debug("batch completed",
		"batch_id", b.id,
		"requests", len(b.inputs),
		"elapsed", time.Since(b.started))
	return nil
}

func (b *batch) validate() *Status {
	if b.nSim < 1 {
		return newStatus(CodeInvalidCall, "window size must be at least 1, got %d", b.nSim)
	}
	if len(b.outputs) != len(b.inputs) {
		return newStatus(CodeInvalidCall, "have %d output slots for %d requests", len(b.outputs), len(b.inputs))
	}
	return ValidateRequests(b.inputs)
}

// drive opens the device and pipelines the batch through it.
func (b *batch) drive() *Status {
	e := b.engine
	t, err := e.config.Opener.Open(e.config.Device)
	if err != nil {
		return sysStatus(CodeOpenFailed, err)
	}
	defer func() {
		if err := t.Close(); err != nil {
			e.logger.Debug("close failed", "batch_id", b.id, "error", err)
		}
	}()

	w := &b.win
	for !w.done() {
		if w.canSubmit() {
			if st := b.submit(t, w.submitted); st != nil {
				return st
			}
			continue
		}

		ready, err := t.Wait(e.config.Timeout)
		if err != nil {
			return sysStatus(CodeWaitFailed, err)
		}
		if !ready {
			return newStatus(CodeTimeout, "Timeout on read select.")
		}

		msg, err := t.Receive()
		if err != nil {
			return sysStatus(CodeReceiveFailed, err)
		}
		if st := b.correlate(msg); st != nil {
			return st
		}
	}
	return nil
}

func (b *batch) submit(t Transport, slot int) *Status {
	req := &b.inputs[slot]
	if err := t.Send(req.Address(), int64(slot), req.NetFn(), req.Cmd(), req.Body()); err != nil {
		return sysStatus(CodeSendFailed, err)
	}
	b.win.submitted++

	b.engine.plog.Log(log.Event{
		Timestamp: time.Now(),
		BatchID:   b.id,
		Device:    b.engine.config.Device,
		Direction: log.DirectionOut,
		Category:  log.CategoryMessage,
		Message: &log.MessageEvent{
			MsgID:    int64(slot),
			Channel:  req.Channel,
			Slave:    req.Slave,
			NetFn:    req.NetFn(),
			Cmd:      req.Cmd(),
			Data:     req.Body(),
			Inflight: b.win.inflight(),
		},
	})
	return nil
}

// correlate stores msg in the output slot named by its message ID.
func (b *batch) correlate(msg Message) *Status {
	w := &b.win
	id := msg.MsgID
	if id < 0 || id >= int64(w.submitted) {
		return newStatus(CodeBadMessageID, "response for msg %d which was never sent", id)
	}
	if w.answered[id] && !b.engine.config.TrustMessageIDs {
		return newStatus(CodeBadMessageID, "second response for msg %d", id)
	}
	w.answered[id] = true

	out := &b.outputs[id]
	out.Data = append(out.Data[:0], msg.Data...)
	w.correlated++

	b.engine.plog.Log(log.Event{
		Timestamp: time.Now(),
		BatchID:   b.id,
		Device:    b.engine.config.Device,
		Direction: log.DirectionIn,
		Category:  log.CategoryMessage,
		Message: &log.MessageEvent{
			MsgID:    id,
			Data:     out.Data,
			Inflight: w.inflight(),
		},
	})
	return nil
}

func (b *batch) logState(state log.BatchState, code Code) {
	ev := &log.StateEvent{State: state, Requests: len(b.inputs), Window: b.nSim}
	if state != log.BatchStarted {
		ev.Code = int(code)
		ev.Elapsed = time.Since(b.started)
	}
	b.engine.plog.Log(log.Event{
		Timestamp: time.Now(),
		BatchID:   b.id,
		Device:    b.engine.config.Device,
		Category:  log.CategoryState,
		State:     ev,
	})
}

func (b *batch) logError(st *Status) {
	b.engine.plog.Log(log.Event{
		Timestamp: time.Now(),
		BatchID:   b.id,
		Device:    b.engine.config.Device,
		Category:  log.CategoryError,
		Error: &log.ErrorEvent{
			Code:       int(st.Code),
			Errno:      int(st.Errno),
			Message:    st.Message,
			Submitted:  b.win.submitted,
			Correlated: b.win.correlated,
		},
	})
}
