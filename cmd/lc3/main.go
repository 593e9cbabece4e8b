// Command lc3 loads an LC-3 image and runs it to completion, servicing
// console I/O through the host terminal.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cagiraud/lc3/pkg/tty"
	"github.com/cagiraud/lc3/pkg/vm"
)

var (
	verbose bool
	debug   bool
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	root := &cobra.Command{
		Use:   "lc3 <imagepath>",
		Short: "LC-3 instruction set emulator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], logger)
		},
		SilenceUsage: true,
	}
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "trace each instruction before executing it")
	root.Flags().BoolVarP(&debug, "debug", "d", false, "pause for Enter between instructions")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(imagepath string, logger *slog.Logger) error {
	fp, err := os.Open(imagepath)
	if err != nil {
		return fmt.Errorf("lc3: %w", err)
	}
	defer fp.Close()

	console, err := tty.NewRawConsole()
	if err != nil {
		return fmt.Errorf("lc3: %w", err)
	}
	defer console.Close()

	// SIGINT must still restore the terminal; the core itself has no
	// notion of signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT)
	go func() {
		<-sigs
		console.Close()
		os.Exit(130)
	}()

	machine := vm.New(console)
	if err := vm.LoadImage(machine, fp); err != nil {
		return fmt.Errorf("lc3: %w", err)
	}

	var trace func(m *vm.Machine, ci uint16)
	if verbose || debug {
		trace = func(m *vm.Machine, ci uint16) {
			if verbose {
				logger.Info("fetch", "state", m.String(), "instr", fmt.Sprintf("%#04x", ci))
			}
			if debug {
				logger.Info("paused, press Enter to continue")
				// stdin is in raw mode, so Enter arrives as '\r'
				for {
					b, err := console.ReadByte()
					if err != nil || b == '\r' || b == '\n' {
						break
					}
				}
			}
		}
	}
	machine.Run(trace)
	return nil
}
