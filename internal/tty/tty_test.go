// Package tty_test exercises the console adapter.
//
// The raw-mode path is skipped when stdin is not a terminal (ErrNoTTY).
// Notably this includes "go test", which redirects the test binary's
// standard streams. Build and run the test binary directly to exercise it:
//
//	$ go test -c && ./tty.test
package tty_test

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/daviddetweiler/bedrock/internal/tty"
)

func TestConsoleRaw(t *testing.T) {
	console, err := tty.NewConsole(os.Stdin, os.Stdout)
	if errors.Is(err, tty.ErrNoTTY) {
		t.Skipf("stdin is not a terminal: %s", err)
	}

	if err != nil {
		t.Fatalf("NewConsole: %s", err)
	}

	defer console.Restore()
}

func TestConsoleReadWrite(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %s", err)
	}

	defer r.Close()
	defer w.Close()

	var out bytes.Buffer

	console, err := tty.NewConsole(r, &out)
	if err != nil && !errors.Is(err, tty.ErrNoTTY) {
		t.Fatalf("NewConsole: %s", err)
	}

	if _, writeErr := w.Write([]byte("A")); writeErr != nil {
		t.Fatalf("write to pipe: %s", writeErr)
	}

	got, err := console.ReadByte()
	if err != nil {
		t.Fatalf("ReadByte: %s", err)
	}

	if got != 'A' {
		t.Errorf("ReadByte() = %q, want %q", got, 'A')
	}

	if err := console.WriteByte('B'); err != nil {
		t.Fatalf("WriteByte: %s", err)
	}

	if out.String() != "B" {
		t.Errorf("console wrote %q, want %q", out.String(), "B")
	}
}
