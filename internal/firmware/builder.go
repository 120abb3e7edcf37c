package firmware

import "github.com/daviddetweiler/bedrock/internal/vm"

// builder is a minimal two-pass assembler: instructions are appended in
// order, forward label references are recorded as fixups, and resolve
// patches every fixup once every label's final address is known. It exists
// only to keep boot.go's control flow readable as labels rather than
// hand-counted word offsets.
type builder struct {
	words  []vm.Word
	labels map[string]int
	fixups []fixup
}

type fixup struct {
	index int
	dst   vm.GPR
	label string
}

func (b *builder) emit(w vm.Word) {
	b.words = append(b.words, w)
}

// mark records the current position as the named label's address.
func (b *builder) mark(name string) {
	b.labels[name] = len(b.words)
}

// set emits an immediate load of an 8-bit value.
func (b *builder) set(dst vm.GPR, imm uint8) {
	b.emit(encode(vm.OpSet, dst, vm.GPR(imm>>4), vm.GPR(imm&0xF)))
}

// setLabel emits a placeholder immediate load and records a fixup so the
// instruction is patched with the label's address once it is known.
func (b *builder) setLabel(dst vm.GPR, label string) {
	b.fixups = append(b.fixups, fixup{index: len(b.words), dst: dst, label: label})
	b.emit(encode(vm.OpSet, dst, 0, 0))
}

func (b *builder) jump(dst, src1, src0 vm.GPR) { b.emit(encode(vm.OpJump, dst, src1, src0)) }
func (b *builder) readHi(dst vm.GPR)           { b.emit(encode(vm.OpReadHi, dst, 0, 0)) }
func (b *builder) busRead(dst, src0 vm.GPR)    { b.emit(encode(vm.OpBusRead, dst, 0, src0)) }
func (b *builder) busWrite(src1, src0 vm.GPR)  { b.emit(encode(vm.OpBusWrite, 0, src1, src0)) }
func (b *builder) store(src1, src0 vm.GPR)     { b.emit(encode(vm.OpStore, 0, src1, src0)) }
func (b *builder) shiftL(dst, src0, n vm.GPR)  { b.emit(encode(vm.OpShiftL, dst, n, src0)) }
func (b *builder) add(dst, src1, src0 vm.GPR)  { b.emit(encode(vm.OpAdd, dst, src1, src0)) }

// subtract emits dst = minuend - subtrahend, hiding the instruction word's
// src1/src0 order (the machine computes R[src0] - R[src1]) behind the
// arithmetic order callers actually want.
func (b *builder) subtract(dst, minuend, subtrahend vm.GPR) {
	b.emit(encode(vm.OpSubtract, dst, subtrahend, minuend))
}

func (b *builder) or(dst, src1, src0 vm.GPR) { b.emit(encode(vm.OpOr, dst, src1, src0)) }

// resolve patches every forward reference and returns the finished image.
// It panics if the image isn't exactly vm.FirmwareSize words or if a label
// was referenced but never marked: both indicate a mistake in boot.go, not
// a condition the running machine should ever need to handle.
func (b *builder) resolve() []vm.Word {
	for _, fx := range b.fixups {
		addr, ok := b.labels[fx.label]
		if !ok {
			panic("firmware: undefined label " + fx.label)
		}

		b.words[fx.index] = encode(vm.OpSet, fx.dst, vm.GPR(addr>>4), vm.GPR(addr&0xF))
	}

	if len(b.words) != vm.FirmwareSize {
		panic("firmware: image is not exactly FirmwareSize words")
	}

	return b.words
}
