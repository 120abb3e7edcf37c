// Command bedrock runs the Bedrock virtual machine.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/daviddetweiler/bedrock/internal/firmware"
	"github.com/daviddetweiler/bedrock/internal/log"
	"github.com/daviddetweiler/bedrock/internal/tty"
	"github.com/daviddetweiler/bedrock/internal/vm"
)

// ErrArguments reports a malformed command line: the wrong number of
// arguments, or a disk path that is neither "--" nor an existing file.
var ErrArguments = errors.New("bedrock: argument error")

func main() {
	logger := log.NewFormattedLogger(os.Stderr)
	log.SetDefault(logger)

	level, args, err := parseArgs(os.Args[1:])
	if err != nil {
		logger.Error("fatal", "err", err)
		os.Exit(1)
	}

	log.LogLevel.Set(level)

	if err := run(args, logger); err != nil {
		logger.Error("fatal", "err", err)

		if errors.Is(err, ErrArguments) {
			os.Exit(1)
		}

		os.Exit(2)
	}
}

// parseArgs pulls the optional "-loglevel level" (or "-loglevel=level")
// switch out of args and returns the rest untouched, in order. Unlike
// package flag's FlagSet.Parse, a bare "--" is never treated as an
// end-of-flags terminator and consumed: spec.md §6 gives "--" its own
// positional meaning ("no disk attached"), so it must pass through to the
// disk arguments exactly as typed, in either position.
func parseArgs(args []string) (slog.Level, []string, error) {
	var level slog.Level

	positional := make([]string, 0, len(args))

	for i := 0; i < len(args); i++ {
		arg := args[i]

		switch {
		case arg == "-loglevel" || arg == "--loglevel":
			i++
			if i >= len(args) {
				return level, nil, fmt.Errorf("%w: -loglevel requires a value", ErrArguments)
			}

			if err := level.UnmarshalText([]byte(args[i])); err != nil {
				return level, nil, fmt.Errorf("%w: %w", ErrArguments, err)
			}

		case strings.HasPrefix(arg, "-loglevel="):
			if err := level.UnmarshalText([]byte(strings.TrimPrefix(arg, "-loglevel="))); err != nil {
				return level, nil, fmt.Errorf("%w: %w", ErrArguments, err)
			}

		case strings.HasPrefix(arg, "--loglevel="):
			if err := level.UnmarshalText([]byte(strings.TrimPrefix(arg, "--loglevel="))); err != nil {
				return level, nil, fmt.Errorf("%w: %w", ErrArguments, err)
			}

		default:
			positional = append(positional, arg)
		}
	}

	return level, positional, nil
}

func run(args []string, logger *log.Logger) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: usage: bedrock [-loglevel level] <disk0-path> <disk1-path>", ErrArguments)
	}

	disk0, err := openDisk(args[0])
	if err != nil {
		return err
	}

	if disk0 != nil {
		defer disk0.Close()
	}

	disk1, err := openDisk(args[1])
	if err != nil {
		return err
	}

	if disk1 != nil {
		defer disk1.Close()
	}

	console, err := tty.NewConsole(os.Stdin, os.Stdout)
	if err != nil && !errors.Is(err, tty.ErrNoTTY) {
		return fmt.Errorf("bedrock: console: %w", err)
	}

	defer console.Restore()

	machine := vm.New(
		firmware.Image,
		console,
		vmDisk(disk0),
		vmDisk(disk1),
		vm.WithLogger(logger),
	)

	logger.Info("starting machine", "disk0", args[0], "disk1", args[1])

	if err := machine.Run(); err != nil {
		return fmt.Errorf("bedrock: %w", err)
	}

	logger.Info("halted")

	return nil
}

// openDisk opens path as a disk image, unless path is the literal string
// "--", meaning no disk is attached to that slot.
func openDisk(path string) (*os.File, error) {
	if path == "--" {
		return nil, nil
	}

	f, err := os.OpenFile(path, os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrArguments, path, err)
	}

	return f, nil
}

// vmDisk builds a disk controller for f, or an absent controller if f is
// nil.
func vmDisk(f *os.File) *vm.Disk {
	if f == nil {
		return vm.NewDisk(nil, 0)
	}

	info, err := f.Stat()
	if err != nil {
		return vm.NewDisk(nil, 0)
	}

	return vm.NewDisk(f, info.Size())
}
