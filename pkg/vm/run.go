package vm

// Fetch reads memory[PC] through the memory interface (so a PC that somehow
// points at MR_KBSR still triggers the keyboard poll, per §4.7) and
// post-increments PC modulo 2^16.
func (m *Machine) Fetch() uint16 {
	ci := m.MemRead(m.PC)
	m.PC++
	return ci
}

// Execute dispatches ci to its opcode handler. It is exported so the
// reference scenarios in the test suite can execute one already-fetched
// instruction without re-running Fetch; Run calls it once per fetch.
func (m *Machine) Execute(ci uint16) {
	op := opcode(ci)
	if op >= numOpcodes {
		// Unreachable when decoding 4 bits, but defensive per §7.
		m.Running = false
		return
	}
	opTable[op](m, ci)
}

// Run executes instructions until HALT or a reserved/illegal opcode clears
// Running. trace, if non-nil, is called with the machine and the fetched
// instruction, with PC still pointing at the instruction just fetched (not
// yet advanced past it), immediately before that instruction executes; it
// exists purely for the -v/-d flags in cmd/lc3 and has no effect on ISA
// semantics.
func (m *Machine) Run(trace func(m *Machine, ci uint16)) {
	for m.Running {
		fetchPC := m.PC
		ci := m.Fetch()
		if trace != nil {
			traced := m.PC
			m.PC = fetchPC
			trace(m, ci)
			m.PC = traced
		}
		m.Execute(ci)
	}
}
