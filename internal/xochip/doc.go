// Package xochip implements an interpreter for the XO-CHIP virtual machine,
// a CHIP-8 derivative with a 64 KiB address space, two display planes and an
// audio pattern buffer.
//
// # Memory Layout
//
// Programs see a logical address space of 0x0000-0xFFFF. The first
// ProgramStart bytes are reserved for the interpreter and are not stored:
// reads in that region return the built-in font glyphs, writes fail.
// Stored offset 0 corresponds to logical address ProgramStart.
//
// # Execution
//
// The machine has no internal scheduling. The host calls Step to execute one
// instruction and Tick at 60 Hz to decrement the timers. Key events are
// passed in with KeyDown and KeyUp. A Machine is not safe for concurrent use.
package xochip
