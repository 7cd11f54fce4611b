package bytestr

// blank is the highest byte value Strip treats as blank: space and every
// ASCII control character.
const blank = 0x20

// Reverse reverses the bytes in place.
func (s *String) Reverse() {
	b := s.view()
	for i, j := 0, len(b)-1; i < j; i, j = i+1, j-1 {
		b[i], b[j] = b[j], b[i]
	}
}

// ReplaceByte replaces every occurrence of old with repl.
func (s *String) ReplaceByte(old, repl byte) {
	b := s.view()
	for i := range b {
		if b[i] == old {
			b[i] = repl
		}
	}
}

// Lower converts ASCII letters to lowercase. Other bytes are untouched.
func (s *String) Lower() {
	b := s.view()
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
}

// Upper converts ASCII letters to uppercase. Other bytes are untouched.
func (s *String) Upper() {
	b := s.view()
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			b[i] = c - ('a' - 'A')
		}
	}
}

// Strip removes leading and trailing bytes with a value <= 0x20.
func (s *String) Strip() {
	b := s.view()

	i := 0
	for i < len(b) && b[i] <= blank {
		i++
	}
	s.Erase(0, i)

	b = s.view()
	j := len(b) - 1
	for j >= 0 && b[j] <= blank {
		j--
	}
	s.Erase(j+1, s.size)
}
