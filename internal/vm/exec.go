package vm

// exec.go is the fetch-decode-execute loop. Bedrock has no interrupts and no
// privilege levels, so the loop is a flat repetition of fetch, increment,
// decode, execute until the halt latch is set or an instruction returns an
// error.

// Step fetches, decodes, and executes exactly one instruction, advancing PC
// by one word beforehand (so a jump's link register captures the address of
// the instruction following the jump, and a non-jump instruction simply
// proceeds to the next word).
func (m *Machine) Step() error {
	pc := m.PC
	word := m.Mem.Read(m.PC)
	m.PC++

	in := Decode(word)
	m.log.Debug("step", "pc", pc.String(), "instr", in.String())

	return m.step(in)
}

// Run executes instructions until the bus halt latch is set or a Step
// returns an error. A host I/O failure surfaces here unwrapped from the
// caller's perspective; the caller decides how to report it.
func (m *Machine) Run() error {
	for !m.Bus.Halted {
		if err := m.Step(); err != nil {
			return err
		}
	}

	m.log.Info("halted", "pc", m.PC.String())

	return nil
}
