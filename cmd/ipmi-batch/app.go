package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mash-protocol/ipmi-go/pkg/collector"
	"github.com/mash-protocol/ipmi-go/pkg/config"
	"github.com/mash-protocol/ipmi-go/pkg/ipmi"
	ipmilog "github.com/mash-protocol/ipmi-go/pkg/log"
	"github.com/mash-protocol/ipmi-go/pkg/retry"
)

var errStopped = errors.New("stopped by signal")

// app holds the wiring shared by every command.
type app struct {
	cfg       *config.Config
	layer     ipmi.Layer
	collector *collector.Collector
	out       io.Writer
	capture   *ipmilog.FileLogger
}

// setupApp builds the engine, protocol capture and collector from cfg.
func setupApp(cfg *config.Config) (*app, error) {
	level, err := config.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	a := &app{cfg: cfg, out: os.Stdout}

	var loggers []ipmilog.Logger
	if cfg.ProtocolLog != "" {
		a.capture, err = ipmilog.NewFileLogger(cfg.ProtocolLog)
		if err != nil {
			return nil, fmt.Errorf("failed to create protocol logger: %w", err)
		}
		loggers = append(loggers, a.capture)
		log.Printf("Protocol logging to: %s", cfg.ProtocolLog)
	}
	if level <= slog.LevelDebug {
		loggers = append(loggers, ipmilog.NewSlogAdapter(logger))
	}

	var plog ipmilog.Logger
	if len(loggers) > 0 {
		plog = ipmilog.NewMultiLogger(loggers...)
	}

	vendor, err := cfg.Vendor()
	if err != nil {
		a.Close()
		return nil, err
	}

	a.layer = ipmi.NewInBand(ipmi.NewEngine(cfg.Engine(logger, plog)))
	a.collector = collector.New(a.layer, vendor, cfg.NSim)
	a.collector.Logger = logger
	return a, nil
}

// Close flushes the protocol capture.
func (a *app) Close() {
	if a.capture != nil {
		a.capture.Close()
	}
}

func (a *app) run(cmd string, args []string) error {
	switch cmd {
	case "raw":
		return a.runRaw(args)
	case "metrics":
		return a.runMetrics()
	case "collect":
		return a.runCollect(args)
	case "watch":
		return a.runWatch(context.Background(), args)
	case "shell":
		return a.runShell()
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// parseByte parses a hex byte with or without a 0x prefix.
func parseByte(s string) (byte, error) {
	v, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(s), "0x"), 16, 8)
	if err != nil {
		return 0, fmt.Errorf("invalid byte %q", s)
	}
	return byte(v), nil
}

// parseRaw parses raw command arguments into a batch.
func parseRaw(args []string) ([]ipmi.Request, error) {
	fs := flag.NewFlagSet("raw", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	channel := fs.Uint("channel", 0, "IPMB channel number")
	slave := fs.String("slave", "0x20", "Slave address (hex)")
	repeat := fs.Int("repeat", 1, "Number of copies of the request in the batch")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() < ipmi.HeaderLen {
		return nil, errors.New("usage: raw [-channel C] [-slave S] [-repeat N] <netfn> <cmd> [data...]")
	}
	if *channel > 0xffff {
		return nil, fmt.Errorf("channel %d out of range", *channel)
	}
	if *repeat < 1 {
		return nil, fmt.Errorf("repeat must be at least 1, got %d", *repeat)
	}
	sa, err := parseByte(*slave)
	if err != nil {
		return nil, err
	}

	data := make([]byte, fs.NArg())
	for i, arg := range fs.Args() {
		if data[i], err = parseByte(arg); err != nil {
			return nil, err
		}
	}

	reqs := make([]ipmi.Request, *repeat)
	for i := range reqs {
		reqs[i] = ipmi.Request{Channel: uint16(*channel), Slave: sa, Data: data}
	}
	return reqs, nil
}

func (a *app) runRaw(args []string) error {
	reqs, err := parseRaw(args)
	if err != nil {
		return err
	}

	start := time.Now()
	resps, err := a.layer.BatchExecRaw(reqs, a.cfg.NSim)
	if err != nil {
		return err
	}
	log.Printf("%d request(s) answered in %s", len(resps), time.Since(start).Round(time.Microsecond))

	for i, r := range resps {
		if r.Len() == 0 {
			fmt.Fprintf(a.out, "[%d] (empty)\n", i)
			continue
		}
		fmt.Fprintf(a.out, "[%d] cc=0x%02x %s\n", i, r.Data[0], hexBytes(r.Data[1:]))
	}
	return nil
}

func hexBytes(data []byte) string {
	parts := make([]string, len(data))
	for i, b := range data {
		parts[i] = fmt.Sprintf("%02x", b)
	}
	return strings.Join(parts, " ")
}

func (a *app) runMetrics() error {
	for _, ns := range a.collector.MetricTypes() {
		fmt.Fprintln(a.out, strings.Join(ns, "/"))
	}
	return nil
}

// namespaces resolves metric paths; none means every metric.
func (a *app) namespaces(names []string) [][]string {
	if len(names) == 0 {
		return a.collector.MetricTypes()
	}
	out := make([][]string, len(names))
	for i, name := range names {
		out[i] = collector.Namespace(name)
	}
	return out
}

func (a *app) collectOnce(namespaces [][]string) error {
	metrics, err := a.collector.Collect(namespaces)
	if err != nil {
		return err
	}
	for _, m := range metrics {
		fmt.Fprintf(a.out, "%s %s\n", stamp(m.Timestamp), m)
	}
	return nil
}

func (a *app) runCollect(args []string) error {
	return a.collectOnce(a.namespaces(args))
}

func (a *app) runWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	interval := fs.Duration("interval", a.cfg.Interval, "Collection period")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *interval <= 0 {
		return fmt.Errorf("interval must be positive, got %s", *interval)
	}
	namespaces := a.namespaces(fs.Args())

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		select {
		case sig := <-sigCh:
			log.Printf("Received signal: %v", sig)
			return errStopped
		case <-gctx.Done():
			return nil
		}
	})

	g.Go(func() error {
		return a.watch(gctx, *interval, namespaces)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errStopped) {
		return err
	}
	return nil
}

// watch collects every interval until ctx is done. A failed collection is
// logged and retried with backoff, never waiting longer than interval.
func (a *app) watch(ctx context.Context, interval time.Duration, namespaces [][]string) error {
	backoff := retry.New(retry.Config{
		Initial: min(retry.DefaultInitial, interval),
		Max:     interval,
		Jitter:  retry.DefaultJitter,
	})

	for {
		delay := interval
		if err := a.collectOnce(namespaces); err != nil {
			delay = backoff.Next()
			log.Printf("Collection failed (attempt %d, retry in %s): %v", backoff.Attempts(), delay, err)
		} else {
			backoff.Reset()
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil
		case <-timer.C:
		}
	}
}
