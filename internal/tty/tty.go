// Package tty adapts the host's standard input and output to the
// machine's serial bus device.
package tty

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// ErrNoTTY is returned by NewConsole when standard input is not a
// terminal. Callers may ignore it: [NewConsole] still returns a usable
// Console, just one that reads line-buffered input with host-side echo
// instead of raw keystrokes.
var ErrNoTTY = errors.New("console: not a TTY")

// Console is the machine's serial console: a byte-oriented, blocking
// keyboard and a byte-oriented display, backed by the host's standard
// input and output. Unlike a line-editing terminal, the bootstrap
// assembler wants every keystroke the moment it is typed, so when
// standard input is a terminal, Console puts it into raw mode for the
// life of the machine.
type Console struct {
	in  *bufio.Reader
	out io.Writer

	fd    int
	raw   bool
	state *term.State
}

// NewConsole adapts sin and sout to a Console. If sin is a terminal, it is
// switched to raw mode (no line editing, no local echo) so single
// keystrokes reach the guest without waiting for a newline. If sin is not a
// terminal (or raw mode cannot be entered), the returned error is
// [ErrNoTTY], and callers that don't need raw
// keystrokes (tests piping in canned input, for instance) may proceed with
// the Console anyway. Callers that do get a terminal must call [Restore]
// when finished to leave the user's terminal as they found it.
func NewConsole(sin *os.File, sout io.Writer) (*Console, error) {
	fd := int(sin.Fd())

	c := &Console{
		in:  bufio.NewReader(sin),
		out: sout,
		fd:  fd,
	}

	if !term.IsTerminal(fd) {
		return c, ErrNoTTY
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return c, fmt.Errorf("%w: %w", ErrNoTTY, err)
	}

	if err := setBlockingReads(fd); err != nil {
		_ = term.Restore(fd, state)

		return c, fmt.Errorf("console: %w", err)
	}

	c.raw = true
	c.state = state

	return c, nil
}

// setBlockingReads configures VMIN/VTIME so a raw-mode read blocks for
// exactly one byte, rather than returning immediately with whatever is
// buffered.
func setBlockingReads(fd int) error {
	termios, err := unix.IoctlGetTermios(fd, getTermiosIoctl)
	if err != nil {
		return err
	}

	termios.Cc[unix.VMIN] = 1
	termios.Cc[unix.VTIME] = 0

	return unix.IoctlSetTermios(fd, setTermiosIoctl, termios)
}

// Restore returns a raw terminal to its original state. It is a no-op if
// standard input was never put into raw mode.
func (c *Console) Restore() {
	if c.raw {
		_ = term.Restore(c.fd, c.state)
	}
}

// ReadByte satisfies [vm.Serial]. It blocks until a byte is available.
func (c *Console) ReadByte() (byte, error) {
	return c.in.ReadByte()
}

// WriteByte satisfies [vm.Serial]. The byte reaches the underlying writer
// before WriteByte returns.
func (c *Console) WriteByte(b byte) error {
	_, err := c.out.Write([]byte{b})

	return err
}
