// Package vm implements the LC-3 instruction set: fetch/decode/execute,
// memory-mapped keyboard I/O, and the six console traps.
//
// The architecture is the classic LC-3 <https://en.wikipedia.org/wiki/LC-3>:
// 65,536 cells of 16-bit memory, eight general-purpose registers, a program
// counter, and a one-hot condition register fed by every ALU/load/LEA write.
package vm

import (
	"fmt"

	"github.com/cagiraud/lc3/pkg/tty"
)

// Register indices into Machine.Reg. R7 doubles as the link register
// written by JSR/JSRR/TRAP.
const (
	R0 = iota
	R1
	R2
	R3
	R4
	R5
	R6
	R7
	NumRegisters
)

// Condition flags. Encoded one-hot so that a BR instruction's nzp field
// (bits 11..9 of the encoded instruction) can be tested against Cond with
// a plain bitwise AND (see §4.5 of the instruction set).
const (
	FlagPos  = uint16(1 << 0)
	FlagZero = uint16(1 << 1)
	FlagNeg  = uint16(1 << 2)
)

// Reserved memory-mapped addresses. No other address is special.
const (
	MrKBSR = 0xFE00 // keyboard status register
	MrKBDR = 0xFE02 // keyboard data register
)

// MemSize is the number of 16-bit cells in the address space.
const MemSize = 1 << 16

// Machine is one LC-3 instance: memory, registers, PC, condition flags, and
// the running flag that the fetch/execute loop clears on HALT or RES. The
// zero value is not ready to run; use New.
type Machine struct {
	Mem     [MemSize]uint16
	Reg     [NumRegisters]uint16
	PC      uint16
	Cond    uint16
	Running bool

	Console tty.Console
}

// New returns a machine with memory and registers zeroed, Cond initialized
// to FlagZero (matching a freshly-zeroed R0..R7), and Running set so that
// Run executes at least the first fetch. console is the host I/O adapter
// used by memory-mapped keyboard reads and by the trap routines; it must be
// non-nil.
func New(console tty.Console) *Machine {
	return &Machine{
		Cond:    FlagZero,
		Running: true,
		Console: console,
	}
}

// String renders the machine's registers and PC as a compact one-line dump,
// useful for -v tracing.
func (m *Machine) String() string {
	return fmt.Sprintf(
		"{PC:%#04x Cond:%03b Reg:%+v}", m.PC, m.Cond, m.Reg,
	)
}
