// Command copperd runs one copper wire simulation: it loads a
// transceiver configuration, attaches it to a broker-procured wire,
// and either runs headless for a fixed duration or drops into the
// interactive cli console. The -speed flag throttles both modes
// against wall-clock time, the same knob otns_main.go exposes over
// its dispatcher. Grounded on otns_main/otns_main.go's
// flag-parse-then-run shape, reduced to this module's single-process,
// single-wire scope (no visualizer, no web UI, no signal-driven
// shutdown coordination, since this module has no long-lived
// background goroutines to tear down).
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/openwns/copper/cli"
	"github.com/openwns/copper/config"
	"github.com/openwns/copper/copper"
	"github.com/openwns/copper/logger"
	"github.com/openwns/copper/prng"
	"github.com/openwns/copper/scheduler"
	"github.com/openwns/copper/transceiver"
)

type mainArgs struct {
	configPath string
	logLevel   string
	interact   bool
	runFor     float64
	speed      string
}

func parseArgs() mainArgs {
	var a mainArgs
	flag.StringVar(&a.configPath, "config", "config.yaml", "path to the transceiver configuration file")
	flag.StringVar(&a.logLevel, "log", "info", "log level: trace, debug, info, warn, error, off")
	flag.BoolVar(&a.interact, "cli", false, "drop into the interactive console instead of running headless")
	flag.Float64Var(&a.runFor, "run", 10, "headless run duration in simulated seconds (ignored with -cli)")
	flag.StringVar(&a.speed, "speed", "1", "simulating speed: simulated seconds per wall-clock second, or \"max\" to run unthrottled")
	flag.Parse()
	return a
}

// parseSpeed parses the -speed flag the way otns_main.go parses its own:
// "max" selects scheduler.MaxSimulateSpeed, anything else is a float64.
func parseSpeed(s string) (float64, error) {
	if strings.ToLower(s) == "max" {
		return scheduler.MaxSimulateSpeed, nil
	}
	speed, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "parsing -speed %q", s)
	}
	return speed, nil
}

func main() {
	a := parseArgs()

	level, err := logger.ParseLevel(a.logLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "copperd: %v\n", err)
		os.Exit(1)
	}
	logger.SetLevel(level)

	cfg, err := config.Load(a.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "copperd: %v\n", err)
		os.Exit(1)
	}

	speed, err := parseSpeed(a.speed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "copperd: %v\n", err)
		os.Exit(1)
	}

	prng.Init(cfg.Seed)

	sched := scheduler.New()
	broker := copper.NewBroker(sched, sched)

	ber, err := cfg.BuildBER()
	if err != nil {
		fmt.Fprintf(os.Stderr, "copperd: %v\n", err)
		os.Exit(1)
	}

	tc := transceiver.New(broker, sched, sched, transceiver.Config{
		WireName:            cfg.Wire.Name,
		TransmitterDataRate: cfg.Transmitter.DataRate,
		TransmitterSensing:  cfg.Transmitter.SensingTime,
		ReceiverSensing:     cfg.Receiver.SensingTime,
		ReceiverBER:         ber,
	})

	session := cli.NewSession(tc, sched)
	session.SetSpeed(speed)

	if a.interact {
		if err := cli.Run(session); err != nil {
			fmt.Fprintf(os.Stderr, "copperd: %v\n", err)
			os.Exit(1)
		}
		return
	}

	session.Advance(a.runFor)
	fmt.Println(session.Status())
}
