// Package log provides protocol capture for in-band IPMI batches.
//
// Every batch executed by the ipmi engine can emit a trace of events: the
// batch starting, each request handed to the device, each response pulled
// off the device, errors, and the final outcome. The trace is separate from
// operational logging (slog) and is meant for offline analysis.
//
// # Basic Usage
//
//	// Console while developing
//	cfg.ProtocolLogger = log.NewSlogAdapter(slog.Default())
//
//	// Binary capture for the ipmi-log tool
//	fl, _ := log.NewFileLogger("/var/log/ipmi/batch.ilog")
//	cfg.ProtocolLogger = fl
//
//	// Both
//	cfg.ProtocolLogger = log.NewMultiLogger(log.NewSlogAdapter(slog.Default()), fl)
//
// # File Format
//
// Log files are a stream of CBOR-encoded events with integer keys, using the
// .ilog extension. Reader iterates them with an optional Filter.
package log
