package alarm

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/oshokin/bike-alarm/internal/config"
	"github.com/oshokin/bike-alarm/internal/hardware"
	"github.com/oshokin/bike-alarm/internal/logger"
	repo "github.com/oshokin/bike-alarm/internal/repository/flag"
)

// Options controls the bike-alarm process and configuration.
type Options struct {
	// ConfigPath specifies the path to the settings YAML file.
	ConfigPath string
	// StateFile overrides the persisted-flags file path from the config.
	StateFile string
	// Input is the stream of switch commands for the simulated board.
	// Defaults to os.Stdin.
	Input io.Reader
}

// Run starts the control loop against the simulated board and blocks until
// the context is canceled or the operator quits.
func Run(ctx context.Context, opts *Options) error {
	// Set context with logger name for tracking.
	ctx = logger.WithName(ctx, "bike-alarm")

	settings, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	// Use StateFile from config unless overridden by command line option.
	stateFile := settings.StateFile
	if opts.StateFile != "" {
		stateFile = opts.StateFile
	}

	board := hardware.NewSimBoard(nil)
	store := repo.NewFileStore(stateFile)

	controller := NewController(ctx, settings, board, store)
	controller.Start()

	input := opts.Input
	if input == nil {
		input = os.Stdin
	}

	// The switch reader may ask us to quit.
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go readSwitches(ctx, cancel, board, input)

	interval := settings.CycleInterval
	if interval <= 0 {
		interval = config.DefaultCycleInterval
	}

	logger.InfoKV(ctx, "Control loop running",
		"state_file", stateFile,
		"cycle_interval", interval,
		"auto_disarm", settings.AutoDisarm,
	)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "Control loop stopped")

			return nil
		case <-ticker.C:
			controller.Step()
		}
	}
}

// readSwitches feeds the simulated board from a line-based command stream:
// "b" toggles the button, "k" toggles the kickstand, "q" quits. The stream
// ending is not a quit, so the loop survives a detached stdin.
func readSwitches(
	ctx context.Context,
	cancel context.CancelFunc,
	board *hardware.SimBoard,
	input io.Reader,
) {
	var (
		buttonClosed    bool
		kickstandClosed bool
		scanner         = bufio.NewScanner(input)
	)

	for scanner.Scan() {
		if ctx.Err() != nil {
			return
		}

		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "b", "button":
			buttonClosed = !buttonClosed
			board.SetSwitch(hardware.PinButton, buttonClosed)

			logger.InfoKV(ctx, "Button toggled", "pressed", buttonClosed)
		case "k", "kickstand":
			kickstandClosed = !kickstandClosed
			board.SetSwitch(hardware.PinKickstand, kickstandClosed)

			logger.InfoKV(ctx, "Kickstand toggled", "down", kickstandClosed)
		case "s", "status":
			r, g, b := board.Color()

			logger.InfoKV(ctx, "Board status",
				"button_pressed", buttonClosed,
				"kickstand_down", kickstandClosed,
				"actuator_on", board.Output(hardware.PinAlarm),
				"indicator", fmt.Sprintf("#%02x%02x%02x", r, g, b),
			)
		case "q", "quit":
			cancel()

			return
		case "":
			// Blank line: ignore.
		default:
			logger.Warnf(ctx, "Unknown command %q (use b, k, s, q)", scanner.Text())
		}
	}
}
