package vm

// Opcodes, bits 15..12 of the encoded instruction.
const (
	OpBR = iota
	OpADD
	OpLD
	OpST
	OpJSR
	OpAND
	OpLDR
	OpSTR
	OpRTI
	OpNOT
	OpLDI
	OpSTI
	OpJMP
	OpRES
	OpLEA
	OpTRAP
	numOpcodes
)

// opHandler executes one decoded instruction against m.
type opHandler func(m *Machine, ci uint16)

// opTable is a dense dispatch table indexed by opcode, avoiding the large
// conditional the reference C implementation used (see §9 of the design
// notes: "a dense table indexed by the 4-bit opcode ... is idiomatic in any
// target language").
var opTable = [numOpcodes]opHandler{
	OpBR:  opBR,
	OpADD: opADD,
	OpLD:  opLD,
	OpST:  opST,
	OpJSR: opJSR,
	OpAND: opAND,
	OpLDR: opLDR,
	OpSTR: opSTR,
	OpRTI: opRTI,
	OpNOT: opNOT,
	OpLDI: opLDI,
	OpSTI: opSTI,
	OpJMP: opJMP,
	OpRES: opRES,
	OpLEA: opLEA,
	OpTRAP: func(m *Machine, ci uint16) {
		m.Reg[R7] = m.PC
		m.trap(trapVec(ci))
	},
}

func opBR(m *Machine, ci uint16) {
	nzp := field11_9(ci)
	if nzp&m.Cond != 0 {
		m.PC += imm9(ci)
	}
}

func opADD(m *Machine, ci uint16) {
	dr, sr1 := field11_9(ci), field8_6(ci)
	if bit5(ci) == 1 {
		m.Reg[dr] = m.Reg[sr1] + imm5(ci)
	} else {
		m.Reg[dr] = m.Reg[sr1] + m.Reg[field2_0(ci)]
	}
	m.updateFlag(dr)
}

func opAND(m *Machine, ci uint16) {
	dr, sr1 := field11_9(ci), field8_6(ci)
	if bit5(ci) == 1 {
		m.Reg[dr] = m.Reg[sr1] & imm5(ci)
	} else {
		m.Reg[dr] = m.Reg[sr1] & m.Reg[field2_0(ci)]
	}
	m.updateFlag(dr)
}

func opNOT(m *Machine, ci uint16) {
	dr := field11_9(ci)
	m.Reg[dr] = ^m.Reg[field8_6(ci)]
	m.updateFlag(dr)
}

func opLD(m *Machine, ci uint16) {
	dr := field11_9(ci)
	m.Reg[dr] = m.MemRead(m.PC + imm9(ci))
	m.updateFlag(dr)
}

func opST(m *Machine, ci uint16) {
	m.MemWrite(m.PC+imm9(ci), m.Reg[field11_9(ci)])
}

func opLDR(m *Machine, ci uint16) {
	dr := field11_9(ci)
	m.Reg[dr] = m.MemRead(m.Reg[field8_6(ci)] + imm6(ci))
	m.updateFlag(dr)
}

func opSTR(m *Machine, ci uint16) {
	m.MemWrite(m.Reg[field8_6(ci)]+imm6(ci), m.Reg[field11_9(ci)])
}

func opLDI(m *Machine, ci uint16) {
	dr := field11_9(ci)
	m.Reg[dr] = m.MemRead(m.MemRead(m.PC + imm9(ci)))
	m.updateFlag(dr)
}

func opSTI(m *Machine, ci uint16) {
	m.MemWrite(m.MemRead(m.PC+imm9(ci)), m.Reg[field11_9(ci)])
}

func opLEA(m *Machine, ci uint16) {
	dr := field11_9(ci)
	m.Reg[dr] = m.PC + imm9(ci)
	m.updateFlag(dr)
}

func opJMP(m *Machine, ci uint16) {
	m.PC = m.Reg[field8_6(ci)]
}

func opJSR(m *Machine, ci uint16) {
	m.Reg[R7] = m.PC
	if bit11(ci) == 1 {
		m.PC += imm11(ci)
	} else {
		m.PC = m.Reg[field8_6(ci)]
	}
}

// opRTI is unprivileged-only: the ISA reserves supervisor-mode behavior for
// RTI, so here it is a pure no-op (§1, Non-goals: "supervisor-mode behavior
// ... explicit no-ops/terminators").
func opRTI(m *Machine, ci uint16) {}

// opRES is the reserved opcode; treated as a terminator.
func opRES(m *Machine, ci uint16) {
	m.Running = false
}
