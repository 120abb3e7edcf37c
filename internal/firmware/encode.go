package firmware

import "github.com/daviddetweiler/bedrock/internal/vm"

// encode packs an opcode and its three nibble fields into an instruction
// word. Each field is masked to four bits so a mistaken out-of-range literal
// can't corrupt an adjacent field.
func encode(op vm.Opcode, dst, src1, src0 vm.GPR) vm.Word {
	return vm.Word(op&0xF)<<12 | vm.Word(dst&0xF)<<8 | vm.Word(src1&0xF)<<4 | vm.Word(src0&0xF)
}
