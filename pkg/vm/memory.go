package vm

// MemRead returns memory[addr]. Reading MR_KBSR first polls the console:
// if a byte is ready, it is read synchronously into MR_KBDR and MR_KBSR is
// set to 0x8000; otherwise MR_KBSR is cleared. Reading MR_KBDR itself has
// no side effect.
func (m *Machine) MemRead(addr uint16) uint16 {
	if addr == MrKBSR {
		if m.Console.PollReady() {
			b, err := m.Console.ReadByte()
			if err == nil {
				m.Mem[MrKBDR] = uint16(b)
				m.Mem[MrKBSR] = 0x8000
			} else {
				m.Mem[MrKBSR] = 0
			}
		} else {
			m.Mem[MrKBSR] = 0
		}
	}
	return m.Mem[addr]
}

// MemWrite sets memory[addr] = value. Writes to the keyboard-mapped
// addresses are ordinary, observable writes; they are not latched to any
// hardware behavior.
func (m *Machine) MemWrite(addr, value uint16) {
	m.Mem[addr] = value
}
