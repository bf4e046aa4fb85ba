package xochip

// Error is an error returned by machine operations. All values are
// comparable with errors.Is.
type Error uint8

// Machine errors.
const (
	ErrNullContext Error = iota + 1
	ErrRomTooLarge
	ErrInvalidInstruction
	ErrAddressOverflow
	ErrAddressUnderflow
	ErrStackOverflow
	ErrStackUnderflow
)

var errorText = map[Error]string{
	ErrNullContext:        "machine is not initialized",
	ErrRomTooLarge:        "rom does not fit into the address space",
	ErrInvalidInstruction: "invalid instruction",
	ErrAddressOverflow:    "address overflows the address space",
	ErrAddressUnderflow:   "address is inside the reserved interpreter region",
	ErrStackOverflow:      "call stack overflow",
	ErrStackUnderflow:     "call stack underflow",
}

// Error returns the diagnostic text of the error.
func (e Error) Error() string {
	if s, ok := errorText[e]; ok {
		return s
	}
	return "unknown machine error"
}
