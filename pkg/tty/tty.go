// Package tty is the host I/O adapter the LC-3 core reads and writes
// through: a byte-oriented stdin/stdout pair plus a non-blocking
// "is a key ready?" poll, abstracted so the core and its tests never touch
// a real terminal directly.
package tty

// Console is the boundary between the LC-3 core and the host. Reads and
// writes are single bytes, matching the ISA's 8-bit trap semantics.
type Console interface {
	// PollReady reports whether a byte is available on stdin without
	// blocking. Called every time the core reads MR_KBSR.
	PollReady() bool

	// ReadByte blocks until one byte is available on stdin and returns it.
	// Called by the GETC and IN traps, and by the MR_KBSR handler once
	// PollReady has reported a byte is available.
	ReadByte() (byte, error)

	// WriteByte writes one byte to stdout. Unbuffered ordering is not
	// required; Flush is called after every trap that writes output.
	WriteByte(b byte) error

	// Flush ensures every byte written so far is visible to the user.
	Flush() error
}
