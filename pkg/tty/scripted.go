package tty

import (
	"bytes"
	"errors"
)

// ErrNoMoreInput is returned by ScriptedConsole.ReadByte once the scripted
// input has been exhausted.
var ErrNoMoreInput = errors.New("tty: no more scripted input")

// ScriptedConsole is an in-memory Console used by tests: input is a fixed
// byte sequence fed in order, output accumulates in a buffer the test can
// inspect afterwards.
type ScriptedConsole struct {
	in      []byte
	pos     int
	Out     bytes.Buffer
	Flushes int
}

// NewScriptedConsole returns a Console that yields the bytes of in, in
// order, to GETC/IN and to MR_KBSR reads, and records everything written
// to stdout in Out.
func NewScriptedConsole(in []byte) *ScriptedConsole {
	return &ScriptedConsole{in: in}
}

// PollReady implements Console.
func (c *ScriptedConsole) PollReady() bool {
	return c.pos < len(c.in)
}

// ReadByte implements Console.
func (c *ScriptedConsole) ReadByte() (byte, error) {
	if c.pos >= len(c.in) {
		return 0, ErrNoMoreInput
	}
	b := c.in[c.pos]
	c.pos++
	return b, nil
}

// WriteByte implements Console.
func (c *ScriptedConsole) WriteByte(b byte) error {
	return c.Out.WriteByte(b)
}

// Flush implements Console.
func (c *ScriptedConsole) Flush() error {
	c.Flushes++
	return nil
}

var _ Console = &ScriptedConsole{}
