package xochip

const (
	// ProgramStart is the logical address where programs are loaded. The
	// region below it is reserved for the interpreter and not stored.
	ProgramStart = 0x200

	// AddressSpaceSize is the size of the logical address space.
	AddressSpaceSize = 0x10000

	// MemorySize is the number of stored bytes, the address space without
	// the reserved region.
	MemorySize = AddressSpaceSize - ProgramStart

	// StackSize is the maximum depth of the call stack.
	StackSize = 16

	// RegisterCount is the number of general purpose registers V0-VF.
	RegisterCount = 16

	// KeyCount is the number of logical keys 0-F.
	KeyCount = 16

	// AudioPatternSize is the size of the audio pattern buffer in bytes.
	AudioPatternSize = 16

	// FlagCount is the number of RPL user flags.
	FlagCount = 16
)

const (
	instructionSize = 2
	flagRegister    = 0xF
)
