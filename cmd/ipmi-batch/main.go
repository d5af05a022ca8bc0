// Command ipmi-batch sends raw IPMI requests and collects platform metrics
// over the local OpenIPMI device.
//
// Usage:
//
//	ipmi-batch [flags] <command> [args]
//
// Flags:
//
//	-config string        Configuration file path
//	-device string        IPMI character device (default "/dev/ipmi0")
//	-nsim int             Maximum outstanding requests per batch (default 4)
//	-timeout duration     Timeout for each wait on the device (default 5s)
//	-log-level string     Log level: debug, info, warn, error (default "info")
//	-protocol-log string  File path for batch event capture (CBOR format)
//	-vendor string        Vendor description file (default: built-in Intel Node Manager)
//	-trust-ids            Accept repeated responses for the same request
//
// Commands:
//
//	raw [-channel C] [-slave S] [-repeat N] <netfn> <cmd> [data...]
//	                     Send one raw request (N times) and print the responses
//	metrics              List the metrics of the vendor description
//	collect [metric...]  Collect metrics once (all when none are named)
//	watch [-interval D] [metric...]
//	                     Collect periodically until interrupted
//	shell                Interactive command mode
//
// Examples:
//
//	# Get Device ID from the BMC
//	ipmi-batch raw 06 01
//
//	# Read Node Manager platform power, four requests in flight
//	ipmi-batch -nsim 4 collect power/system power/system/avg
//
//	# Watch all metrics every 30 seconds, capturing every batch
//	ipmi-batch -protocol-log /var/log/ipmi.ilog watch -interval 30s
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mash-protocol/ipmi-go/pkg/config"
)

var (
	configFile  = flag.String("config", "", "Configuration file path")
	device      = flag.String("device", "", "IPMI character device (default \"/dev/ipmi0\")")
	nSim        = flag.Int("nsim", 0, "Maximum outstanding requests per batch (default 4)")
	timeout     = flag.Duration("timeout", 0, "Timeout for each wait on the device (default 5s)")
	logLevel    = flag.String("log-level", "", "Log level: debug, info, warn, error (default \"info\")")
	protocolLog = flag.String("protocol-log", "", "File path for batch event capture (CBOR format)")
	vendorFile  = flag.String("vendor", "", "Vendor description file (default: built-in Intel Node Manager)")
	trustIDs    = flag.Bool("trust-ids", false, "Accept repeated responses for the same request")
)

const usage = `ipmi-batch - windowed in-band IPMI requests

Usage:
  ipmi-batch [flags] <command> [args]

Commands:
  raw      Send a raw request and print the responses
  metrics  List the metrics of the vendor description
  collect  Collect metrics once
  watch    Collect metrics periodically until interrupted
  shell    Interactive command mode

Flags:
`

func main() {
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	setupLogging(cfg.LogLevel)

	a, err := setupApp(cfg)
	if err != nil {
		log.Fatalf("Failed to set up: %v", err)
	}
	defer a.Close()

	if err := a.run(flag.Arg(0), flag.Args()[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		a.Close()
		os.Exit(1)
	}
}

// applyFlags overrides cfg with the flags given on the command line.
func applyFlags(cfg *config.Config) {
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "device":
			cfg.Device = *device
		case "nsim":
			cfg.NSim = *nSim
		case "timeout":
			cfg.Timeout = *timeout
		case "log-level":
			cfg.LogLevel = *logLevel
		case "protocol-log":
			cfg.ProtocolLog = *protocolLog
		case "vendor":
			cfg.VendorFile = *vendorFile
		case "trust-ids":
			cfg.TrustMessageIDs = *trustIDs
		}
	})
}

func setupLogging(level string) {
	log.SetFlags(log.Ltime | log.Lmicroseconds)

	switch level {
	case "debug":
		log.SetFlags(log.Ltime | log.Lmicroseconds | log.Lshortfile)
	case "warn", "error":
		log.SetFlags(log.Ltime)
	}
}

// stamp formats a metric timestamp for output.
func stamp(t time.Time) string {
	return t.Format("15:04:05.000")
}
