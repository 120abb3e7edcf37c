package vm

// bus.go dispatches the eight meaningful bus addresses to serial I/O, the
// two disk controllers, and the halt latch. Every other bus address reads
// as zero and silently drops writes.

import (
	"errors"
	"io"
)

// Serial is the machine's byte-oriented console. ReadByte blocks until a byte
// is available; once the input stream is exhausted it returns io.EOF, which
// the bus translates into [SerialEOF] without blocking. Any other error is a
// genuine host I/O failure and is fatal. WriteByte emits one byte and must
// complete before the bus access returns, so output is visible before the
// next instruction is fetched.
type Serial interface {
	ReadByte() (byte, error)
	WriteByte(b byte) error
}

// SerialEOF is the whole word returned by a bus-read from address 0x0 once
// standard input is exhausted. This is the canonical end-of-input sentinel.
const SerialEOF Word = 0xFFFF

// Bus addresses with defined behavior; all others are unmapped.
const (
	BusSerial       Word = 0x0
	BusDisk0Command Word = 0x1
	BusDisk0Sector  Word = 0x2
	BusDisk0Address Word = 0x3
	BusDisk1Command Word = 0x4
	BusDisk1Sector  Word = 0x5
	BusDisk1Address Word = 0x6
	BusHalt         Word = 0x7
)

// Bus is the peripheral dispatch layer: a 2^16-word address space of which
// only eight addresses are mapped.
type Bus struct {
	Serial Serial
	Disk0  *Disk
	Disk1  *Disk
	Halted bool

	mem *Memory
}

// NewBus creates a bus wired to a console, both disk controllers, and the
// memory adapter disk commands transfer through.
func NewBus(serial Serial, disk0, disk1 *Disk, mem *Memory) *Bus {
	return &Bus{Serial: serial, Disk0: disk0, Disk1: disk1, mem: mem}
}

// Read dispatches a bus-read. Unmapped addresses read as zero.
func (b *Bus) Read(addr Word) (Word, error) {
	switch addr {
	case BusSerial:
		c, err := b.Serial.ReadByte()

		switch {
		case err == nil:
			return Word(c), nil
		case errors.Is(err, io.EOF):
			return SerialEOF, nil
		default:
			return SerialEOF, err
		}
	case BusDisk0Command:
		return b.Disk0.SectorCount(), nil
	case BusDisk0Sector:
		return b.Disk0.Sector(), nil
	case BusDisk0Address:
		return b.Disk0.Address(), nil
	case BusDisk1Command:
		return b.Disk1.SectorCount(), nil
	case BusDisk1Sector:
		return b.Disk1.Sector(), nil
	case BusDisk1Address:
		return b.Disk1.Address(), nil
	case BusHalt:
		return 0, nil
	default:
		return 0, nil
	}
}

// Write dispatches a bus-write. Unmapped addresses silently drop the value.
func (b *Bus) Write(addr Word, w Word) error {
	switch addr {
	case BusSerial:
		return b.Serial.WriteByte(byte(w))
	case BusDisk0Command:
		return b.Disk0.Command(w, b.mem)
	case BusDisk0Sector:
		b.Disk0.SetSector(w)
	case BusDisk0Address:
		b.Disk0.SetAddress(w)
	case BusDisk1Command:
		return b.Disk1.Command(w, b.mem)
	case BusDisk1Sector:
		b.Disk1.SetSector(w)
	case BusDisk1Address:
		b.Disk1.SetAddress(w)
	case BusHalt:
		if w != 0 {
			b.Halted = true
		}
	}

	return nil
}
