// Package vm implements the bedrock virtual machine: a word-addressed, 16-bit
// load/store architecture with sixteen general-purpose registers, a
// bus-addressed peripheral space, and two disk controllers.
//
// The package is organized the way the machine itself is: [Word] and
// [Instruction] are the bit-level primitives; [Memory] adapts the logical
// address space to RAM and the read-only firmware overlay; [Disk] models a
// single block-device controller; [Bus] dispatches peripheral reads and
// writes; and [Machine] owns all of the above and runs the fetch-decode-
// execute loop in [Machine.Step] and [Machine.Run].
package vm
