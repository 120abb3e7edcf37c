// Package firmware builds the 40-word read-only image mapped into the
// bottom of the machine's address space. The image is assembled once, at
// package init, from instruction helpers rather than hand-written hex, so
// the boot logic stays legible; see [Image].
package firmware
