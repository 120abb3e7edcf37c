package main

import (
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/daviddetweiler/bedrock/internal/log"
)

// TestParseArgsDashDashIsPositional pins down the bug a stdlib
// flag.FlagSet.Parse/Args pipeline has here: "--" is a meaningful
// positional token (spec.md §6, "no disk attached"), not an end-of-flags
// terminator, and it must survive in whichever slot it's typed.
func TestParseArgsDashDashIsPositional(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		args []string
		want []string
	}{
		{"disk0 absent", []string{"--", "disk1.img"}, []string{"--", "disk1.img"}},
		{"disk1 absent", []string{"disk0.img", "--"}, []string{"disk0.img", "--"}},
		{"both absent", []string{"--", "--"}, []string{"--", "--"}},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()

			_, got, err := parseArgs(c.args)
			if err != nil {
				t.Fatalf("parseArgs(%v): %s", c.args, err)
			}

			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("parseArgs(%v) = %v, want %v", c.args, got, c.want)
			}
		})
	}
}

func TestParseArgsLogLevel(t *testing.T) {
	t.Parallel()

	level, positional, err := parseArgs([]string{"-loglevel", "debug", "--", "disk1.img"})
	if err != nil {
		t.Fatalf("parseArgs: %s", err)
	}

	if level != slog.LevelDebug {
		t.Errorf("level = %s, want debug", level)
	}

	if !reflect.DeepEqual(positional, []string{"--", "disk1.img"}) {
		t.Errorf("positional = %v, want [-- disk1.img]", positional)
	}
}

func TestParseArgsLogLevelEquals(t *testing.T) {
	t.Parallel()

	level, positional, err := parseArgs([]string{"-loglevel=warn", "a", "b"})
	if err != nil {
		t.Fatalf("parseArgs: %s", err)
	}

	if level != slog.LevelWarn {
		t.Errorf("level = %s, want warn", level)
	}

	if !reflect.DeepEqual(positional, []string{"a", "b"}) {
		t.Errorf("positional = %v, want [a b]", positional)
	}
}

func TestParseArgsLogLevelMissingValue(t *testing.T) {
	t.Parallel()

	if _, _, err := parseArgs([]string{"-loglevel"}); !errors.Is(err, ErrArguments) {
		t.Errorf("parseArgs with a dangling -loglevel: err = %v, want ErrArguments", err)
	}
}

func TestRunArgumentCount(t *testing.T) {
	t.Parallel()

	logger := log.NewFormattedLogger(io.Discard)

	if err := run([]string{"one-arg"}, logger); !errors.Is(err, ErrArguments) {
		t.Errorf("run with one argument: err = %v, want ErrArguments", err)
	}

	if err := run([]string{"a", "b", "c"}, logger); !errors.Is(err, ErrArguments) {
		t.Errorf("run with three arguments: err = %v, want ErrArguments", err)
	}
}

func TestRunMissingDiskPath(t *testing.T) {
	t.Parallel()

	logger := log.NewFormattedLogger(io.Discard)

	err := run([]string{filepath.Join(t.TempDir(), "does-not-exist"), "--"}, logger)
	if !errors.Is(err, ErrArguments) {
		t.Errorf("run with a missing disk path: err = %v, want ErrArguments", err)
	}
}

func TestOpenDiskNoDisk(t *testing.T) {
	t.Parallel()

	f, err := openDisk("--")
	if err != nil {
		t.Fatalf("openDisk(\"--\"): %s", err)
	}

	if f != nil {
		t.Errorf("openDisk(\"--\") = %v, want nil", f)
	}
}

func TestOpenDiskExisting(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "disk0.img")
	if err := os.WriteFile(path, make([]byte, 512), 0o600); err != nil {
		t.Fatalf("WriteFile: %s", err)
	}

	f, err := openDisk(path)
	if err != nil {
		t.Fatalf("openDisk(%q): %s", path, err)
	}

	defer f.Close()

	if d := vmDisk(f); d.SectorCount() != 1 {
		t.Errorf("vmDisk(f).SectorCount() = %d, want 1", d.SectorCount())
	}
}
