package vm

// machine.go assembles the machine: program counter, register file, the
// hidden hi register, memory, both disk controllers, and the halt latch.

import (
	"github.com/daviddetweiler/bedrock/internal/log"
)

// Machine is the aggregate virtual machine state. The zero value is not
// usable; construct one with [New].
type Machine struct {
	PC  Word
	Hi  Word
	Reg RegisterFile

	Mem *Memory
	Bus *Bus

	log *log.Logger
}

// OptionFn configures a [Machine] during construction.
type OptionFn func(m *Machine)

// WithLogger overrides the machine's logger.
func WithLogger(logger *log.Logger) OptionFn {
	return func(m *Machine) { m.log = logger }
}

// New creates a machine with the given firmware image mapped into the
// bottom of memory and both disk controllers attached (use a controller
// with no file, such as NewDisk(nil, 0), for an absent controller; the
// *Disk must not be nil). The program counter,
// registers, and hi all start at zero, and the halt flag is clear.
func New(firmware []Word, serial Serial, disk0, disk1 *Disk, opts ...OptionFn) *Machine {
	mem := NewMemory(firmware)

	m := &Machine{
		Mem: mem,
		Bus: NewBus(serial, disk0, disk1, mem),
		log: log.DefaultLogger(),
	}

	for _, opt := range opts {
		opt(m)
	}

	return m
}

func (m *Machine) String() string {
	return "PC:" + Word(m.PC).String() + " HI:" + m.Hi.String() + " " + m.Reg.String()
}
