package firmware

import "github.com/daviddetweiler/bedrock/internal/vm"

// boot.go assembles the 40-word firmware image: a disk-boot check followed
// by an interactive hex-entry assembler that falls back to for programs
// typed at the console when no disk is attached.
//
// Register conventions used throughout this image (none of it is visible
// to guest code running past address 0x28):
//
//	R0  scratch: disk sector count, then nibble raw value
//	R1  bus port selector
//	R2  constant 1, used as the "always true" jump condition
//	R3  discard: jump's link register, never read
//	R4  nibble accumulator
//	R5  nibble count in the current word (0..4)
//	R6  last character read
//	R7  memory write pointer for assembled words
//	R8  scratch jump-target register for one-off branches
//	R9  scratch: small constants and the digit/hex borrow flag
//	R10 scratch: subtraction results
//	R11 constant 0x28, the assembled program's entry point
//	R12 constant: the assembler's main loop address
//	R13 set once a newline has been seen with nothing typed since
//
// A program is terminated by a blank line: a newline immediately following
// another newline (with no hex digits between them) jumps to 0x28. A single
// newline between words is just a separator.
var Image = build()

func build() []vm.Word {
	b := &builder{labels: map[string]int{}}

	b.set(vm.GPR(2), 1)
	b.set(vm.GPR(11), 0x28)
	b.set(vm.GPR(1), 0x01)
	b.busRead(vm.GPR(0), vm.GPR(1))
	b.setLabel(vm.GPR(8), "diskboot")
	b.jump(vm.GPR(3), vm.GPR(0), vm.GPR(8))

	b.set(vm.GPR(7), 0x28)
	b.set(vm.GPR(1), 0x00)
	b.setLabel(vm.GPR(12), "loop")

	b.mark("loop")
	b.busRead(vm.GPR(6), vm.GPR(1))
	b.set(vm.GPR(9), 0x0A)
	b.subtract(vm.GPR(10), vm.GPR(6), vm.GPR(9))
	b.setLabel(vm.GPR(8), "not_newline")
	b.jump(vm.GPR(3), vm.GPR(10), vm.GPR(8))

	// newline
	b.jump(vm.GPR(3), vm.GPR(13), vm.GPR(11)) // second consecutive newline: enter program
	b.set(vm.GPR(13), 1)
	b.jump(vm.GPR(3), vm.GPR(2), vm.GPR(12))

	b.mark("not_newline")
	b.set(vm.GPR(13), 0)
	b.set(vm.GPR(8), 0x30)
	b.subtract(vm.GPR(0), vm.GPR(6), vm.GPR(8)) // raw = char - '0'
	b.subtract(vm.GPR(10), vm.GPR(0), vm.GPR(9)) // raw - 10, R9 still holds 0x0A
	b.readHi(vm.GPR(9))                          // borrow: raw < 10 means a decimal digit
	b.setLabel(vm.GPR(8), "accumulate")
	b.jump(vm.GPR(3), vm.GPR(9), vm.GPR(8))

	// hex letter: raw is char - '0', shift it down to char - 'a' + 10
	b.set(vm.GPR(9), 39)
	b.subtract(vm.GPR(0), vm.GPR(0), vm.GPR(9))

	b.mark("accumulate")
	b.shiftL(vm.GPR(4), vm.GPR(4), 4)
	b.or(vm.GPR(4), vm.GPR(4), vm.GPR(0))
	b.add(vm.GPR(5), vm.GPR(5), vm.GPR(2))
	b.set(vm.GPR(9), 4)
	b.subtract(vm.GPR(10), vm.GPR(5), vm.GPR(9))
	b.jump(vm.GPR(3), vm.GPR(10), vm.GPR(12)) // fewer than four nibbles: keep reading

	b.store(vm.GPR(4), vm.GPR(7))
	b.add(vm.GPR(7), vm.GPR(7), vm.GPR(2))
	b.set(vm.GPR(5), 0)
	b.jump(vm.GPR(3), vm.GPR(2), vm.GPR(12))

	b.mark("diskboot")
	b.set(vm.GPR(8), 0x03)
	b.busWrite(vm.GPR(11), vm.GPR(8)) // disk0.address = 0x28
	b.busWrite(vm.GPR(9), vm.GPR(1))  // disk0.sector is already 0; issue the read command
	b.jump(vm.GPR(3), vm.GPR(2), vm.GPR(11))

	return b.resolve()
}
