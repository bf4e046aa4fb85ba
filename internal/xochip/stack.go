package xochip

// Stack is the bounded call stack of saved program counters.
type Stack struct {
	addresses [StackSize]uint16
	depth     int
}

// Depth returns the number of saved return addresses.
func (s *Stack) Depth() int {
	return s.depth
}

func (s *Stack) push(address uint16) error {
	if s.depth >= StackSize {
		return ErrStackOverflow
	}
	s.addresses[s.depth] = address
	s.depth++
	return nil
}

func (s *Stack) pop() (uint16, error) {
	if s.depth == 0 {
		return 0, ErrStackUnderflow
	}
	s.depth--
	address := s.addresses[s.depth]
	s.addresses[s.depth] = 0
	return address, nil
}

func (s *Stack) reset() {
	*s = Stack{}
}
