package vm

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cagiraud/lc3/pkg/tty"
)

func newTestMachine() *Machine {
	return New(tty.NewScriptedConsole(nil))
}

func TestOpADDRegister(t *testing.T) {
	m := newTestMachine()
	m.Reg[R1] = 3
	m.Reg[R2] = 4
	// ADD R0, R1, R2
	m.Execute(0b0001_000_001_0_00_010)
	require.EqualValues(t, 7, m.Reg[R0])
	require.Equal(t, FlagPos, m.Cond)
}

func TestOpADDImmediatePositive(t *testing.T) {
	// scenario 1's ADD R0, R0, #2, executed on its own without the HALT
	m := newTestMachine()
	m.Execute(0x1022)
	require.EqualValues(t, 2, m.Reg[R0])
	require.Equal(t, FlagPos, m.Cond)
}

func TestOpADDImmediateNegativeWraps(t *testing.T) {
	// scenario 2: ADD R0, R0, #-1 wraps to 0xFFFF and sets NEG
	m := newTestMachine()
	m.Reg[R0] = 0
	m.Execute(0x103F)
	require.EqualValues(t, 0xFFFF, m.Reg[R0])
	require.Equal(t, FlagNeg, m.Cond)
}

func TestArithmeticWrapsModulo2To16(t *testing.T) {
	for a := uint16(0); a < 0xFFFF; a += 4093 { // sparse sweep, full range too slow
		for b := uint16(0); b < 0xFFFF; b += 4093 {
			m := newTestMachine()
			m.Reg[R1] = a
			m.Reg[R2] = b
			m.Execute(0b0001_000_001_0_00_010) // ADD R0, R1, R2
			require.EqualValues(t, uint16(uint32(a)+uint32(b)), m.Reg[R0])
		}
	}
}

func TestOpANDRegisterAndImmediate(t *testing.T) {
	m := newTestMachine()
	m.Reg[R1] = 0b1100
	m.Reg[R2] = 0b1010
	m.Execute(0b0101_000_001_0_00_010) // AND R0, R1, R2
	require.EqualValues(t, 0b1000, m.Reg[R0])

	m.Reg[R1] = 0xFF
	m.Execute(0b0101_000_001_1_00011) // AND R0, R1, #3
	require.EqualValues(t, 3, m.Reg[R0])
}

func TestOpNOT(t *testing.T) {
	m := newTestMachine()
	m.Reg[R1] = 0x00FF
	m.Execute(0b1001_000_001_111111) // NOT R0, R1
	require.EqualValues(t, 0xFF00, m.Reg[R0])
}

func TestOpLDAndST(t *testing.T) {
	m := newTestMachine()
	m.PC = 0x3000
	m.Mem[0x3005] = 0x1234
	// Execute is called directly rather than after Fetch, so PC (0x3000) is
	// used as-is as the base of the PC-relative offset
	m.Execute(0b0010_000_000000101) // LD R0, #5 -> addr PC+5 = 0x3005
	require.EqualValues(t, 0x1234, m.Reg[R0])

	m.Reg[R1] = 0xBEEF
	m.Execute(0b0011_001_000000110) // ST R1, #6 -> addr PC+6 = 0x3006
	require.EqualValues(t, 0xBEEF, m.Mem[0x3006])
}

func TestOpLDRAndSTR(t *testing.T) {
	m := newTestMachine()
	m.Reg[R1] = 0x4000
	m.Mem[0x4003] = 0x5555
	m.Execute(0b0110_000_001_000011) // LDR R0, R1, #3
	require.EqualValues(t, 0x5555, m.Reg[R0])

	m.Reg[R2] = 0xAAAA
	m.Execute(0b0111_010_001_000100) // STR R2, R1, #4
	require.EqualValues(t, 0xAAAA, m.Mem[0x4004])
}

func TestOpLDIEquivalentToLDRViaTemp(t *testing.T) {
	// LDI dr,off must behave exactly like LD r_tmp,off; LDR dr,r_tmp,0
	m1 := newTestMachine()
	m1.PC = 0x3000
	m1.Mem[0x3005] = 0x4000 // pointer cell
	m1.Mem[0x4000] = 0x9999
	m1.Execute(0b1010_000_000000101) // LDI R0, #5

	m2 := newTestMachine()
	m2.PC = 0x3000
	m2.Mem[0x3005] = 0x4000
	m2.Mem[0x4000] = 0x9999
	m2.Execute(0b0010_111_000000101) // LD R7 (temp), #5
	m2.Execute(0b0110_000_111_000000) // LDR R0, R7, #0

	require.Equal(t, m1.Reg[R0], m2.Reg[R0])
	require.EqualValues(t, 0x9999, m1.Reg[R0])
}

func TestOpSTI(t *testing.T) {
	m := newTestMachine()
	m.PC = 0x3000
	m.Mem[0x3005] = 0x4000
	m.Reg[R1] = 0x7777
	m.Execute(0b1011_001_000000101) // STI R1, #5
	require.EqualValues(t, 0x7777, m.Mem[0x4000])
}

func TestOpLEA(t *testing.T) {
	m := newTestMachine()
	m.PC = 0x3000
	m.Execute(0b1110_000_000001010) // LEA R0, #10
	require.EqualValues(t, 0x300A, m.Reg[R0])
	require.Equal(t, FlagPos, m.Cond)
}

func TestOpJMPAndRET(t *testing.T) {
	m := newTestMachine()
	m.Reg[R5] = 0x5000
	m.Execute(0b1100_000_101_000000) // JMP R5
	require.EqualValues(t, 0x5000, m.PC)

	m.Reg[R7] = 0x6000
	m.Execute(0b1100_000_111_000000) // RET (JMP R7)
	require.EqualValues(t, 0x6000, m.PC)
}

func TestJSRAndJSRR(t *testing.T) {
	m := newTestMachine()
	m.PC = 0x3000
	m.Execute(0b0100_1_00000000010) // JSR +2
	require.EqualValues(t, 0x3002, m.PC)
	require.EqualValues(t, 0x3000, m.Reg[R7])

	m.PC = 0x4000
	m.Reg[R2] = 0x5050
	m.Execute(0b0100_0_00_010_000000) // JSRR R2
	require.EqualValues(t, 0x5050, m.PC)
	require.EqualValues(t, 0x4000, m.Reg[R7])
}

func TestBRNotTakenThenTaken(t *testing.T) {
	// BRp not taken while COND is ZERO, then taken once COND is POS
	m := newTestMachine()
	m.PC = 0x3000
	m.Mem[0x3000] = 0b0101_000_000_1_00000 // AND R0,R0,#0
	m.Mem[0x3001] = 0b0000_001_000000001   // BRp +1
	m.Mem[0x3002] = 0b0001_000_000_1_00001 // ADD R0,R0,#1
	m.Mem[0x3003] = 0b0000_001_000000001   // BRp +1
	m.Mem[0x3004] = 0b0001_000_000_1_00101 // ADD R0,R0,#5 (skipped)
	m.Mem[0x3005] = 0xF025                 // HALT

	for m.Running {
		m.Execute(m.Fetch())
	}
	require.EqualValues(t, 1, m.Reg[R0])
}

func TestBRAllZeroIsNoOpAllOnesIsUnconditional(t *testing.T) {
	m := newTestMachine()
	m.PC = 0x3000
	m.Cond = FlagZero
	m.Execute(0b0000_000_000000001) // nzp=000: no-op regardless of Cond
	require.EqualValues(t, 0x3000, m.PC)

	m.PC = 0x3000
	m.Execute(0b0000_111_000000001) // nzp=111: always taken
	require.EqualValues(t, 0x3001, m.PC)
}

func TestJSRRetScenario(t *testing.T) {
	// JSR into a subroutine that mutates a register, then RET back
	m := newTestMachine()
	m.PC = 0x3000
	m.Mem[0x3000] = 0b0100_1_00000000010 // JSR +2
	m.Mem[0x3001] = 0xF025               // HALT
	m.Mem[0x3003] = 0b0001_001_001_1_00111 // ADD R1,R1,#7
	m.Mem[0x3004] = 0b1100_000_111_000000  // RET

	for m.Running {
		m.Execute(m.Fetch())
	}
	require.EqualValues(t, 7, m.Reg[R1])
	require.EqualValues(t, 0x3002, m.PC)
}

func TestRESTerminates(t *testing.T) {
	m := newTestMachine()
	m.Execute(0b1101_000_000000000)
	require.False(t, m.Running)
}

func TestRTIIsNoOp(t *testing.T) {
	m := newTestMachine()
	before := *m
	m.Execute(0b1000_000_000000000)
	require.Equal(t, before.PC, m.PC)
	require.True(t, m.Running)
}
