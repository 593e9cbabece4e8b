package vm

// Trap vectors, the low 8 bits of a TRAP instruction.
const (
	TrapGETC  = 0x20
	TrapOUT   = 0x21
	TrapPUTS  = 0x22
	TrapIN    = 0x23
	TrapPUTSP = 0x24
	TrapHALT  = 0x25
)

// trapHandler services one trap vector. R7 already holds the caller's
// return address by the time this runs (set by the TRAP opcode handler);
// callers return with a plain JMP R7, so no handler here touches PC.
type trapHandler func(m *Machine)

// trapTable is a sparse map over the six known vectors, per §9 of the
// design notes ("same pattern on the low 8 bits of TRAP, with a sparse map
// or switch over the six known vectors"). Vectors outside this map are
// silently ignored.
var trapTable = map[uint16]trapHandler{
	TrapGETC:  trapGETC,
	TrapOUT:   trapOUT,
	TrapPUTS:  trapPUTS,
	TrapIN:    trapIN,
	TrapPUTSP: trapPUTSP,
	TrapHALT:  trapHALT,
}

// trap dispatches to the handler for vec, if any; unknown vectors are a
// silent no-op by design (ISA programs never execute a vector the running
// program doesn't know about).
func (m *Machine) trap(vec uint16) {
	if h, ok := trapTable[vec]; ok {
		h(m)
	}
}

// readByteOrZero reads one byte from the console, treating EOF (or any
// other read error) as a zero byte rather than copying the reference C
// implementation's lossy cast of getc()'s -1 sentinel into a 16-bit
// register (see §9, Open question).
func readByteOrZero(m *Machine) byte {
	b, err := m.Console.ReadByte()
	if err != nil {
		return 0
	}
	return b
}

func trapGETC(m *Machine) {
	m.Reg[R0] = uint16(readByteOrZero(m))
	m.updateFlag(R0)
}

func trapOUT(m *Machine) {
	m.Console.WriteByte(byte(m.Reg[R0] & 0xFF))
	m.Console.Flush()
}

func trapPUTS(m *Machine) {
	for addr := m.Reg[R0]; m.Mem[addr] != 0; addr++ {
		m.Console.WriteByte(byte(m.Mem[addr] & 0xFF))
	}
	m.Console.Flush()
}

func trapIN(m *Machine) {
	m.Console.WriteByte('>')
	m.Console.Flush()
	b := readByteOrZero(m)
	m.Console.WriteByte(b)
	m.Console.Flush()
	m.Reg[R0] = uint16(b)
	m.updateFlag(R0)
}

func trapPUTSP(m *Machine) {
	for addr := m.Reg[R0]; ; addr++ {
		cell := m.Mem[addr]
		lo := byte(cell & 0xFF)
		hi := byte(cell >> 8)
		if lo == 0 {
			break
		}
		m.Console.WriteByte(lo)
		if hi == 0 {
			break
		}
		m.Console.WriteByte(hi)
	}
	m.Console.Flush()
}

func trapHALT(m *Machine) {
	for _, b := range []byte("exiting...") {
		m.Console.WriteByte(b)
	}
	m.Console.WriteByte('\n')
	m.Console.Flush()
	m.Running = false
}
