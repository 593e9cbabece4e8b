package tty

import (
	"bufio"
	"os"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// RawConsole is the production Console backend: it puts stdin into
// non-canonical, no-echo mode for the lifetime of the emulation run and
// polls its file descriptor with a zero-timeout poll(2) to implement
// PollReady without blocking the fetch/execute loop.
type RawConsole struct {
	in       *os.File
	out      *bufio.Writer
	oldState *term.State
}

// NewRawConsole puts stdin into raw mode and returns a Console backed by
// the real terminal. The caller must call Close to restore the terminal,
// normally via a deferred call right after a successful NewRawConsole, or
// from a SIGINT handler if the process is interrupted mid-run.
func NewRawConsole() (*RawConsole, error) {
	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return &RawConsole{
		in:       os.Stdin,
		out:      bufio.NewWriter(os.Stdout),
		oldState: oldState,
	}, nil
}

// Close restores the terminal to the mode it was in before NewRawConsole.
func (c *RawConsole) Close() error {
	fd := int(os.Stdin.Fd())
	return term.Restore(fd, c.oldState)
}

// PollReady implements Console.
func (c *RawConsole) PollReady() bool {
	fds := []unix.PollFd{{Fd: int32(c.in.Fd()), Events: unix.POLLIN}}
	n, err := unix.Poll(fds, 0) // zero timeout: never blocks
	if err != nil {
		return false
	}
	return n > 0 && (fds[0].Revents&unix.POLLIN) != 0
}

// ReadByte implements Console.
func (c *RawConsole) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := c.in.Read(b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// WriteByte implements Console.
func (c *RawConsole) WriteByte(b byte) error {
	return c.out.WriteByte(b)
}

// Flush implements Console.
func (c *RawConsole) Flush() error {
	return c.out.Flush()
}

var _ Console = &RawConsole{}
