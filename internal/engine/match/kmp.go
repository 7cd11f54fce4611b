package match

import "iter"

// NotFound is returned by the search functions when the pattern does not
// occur in the subject.
const NotFound = -1

// Matcher is a compiled pattern. It is immutable after Compile and may be
// shared between goroutines.
type Matcher struct {
	pattern []byte
	fail    []int
}

// Compile builds a Matcher for pattern. The pattern bytes are copied.
func Compile(pattern []byte) *Matcher {
	p := make([]byte, len(pattern))
	copy(p, pattern)
	return &Matcher{
		pattern: p,
		fail:    failure(p),
	}
}

// Index returns the index of the first occurrence of pattern in subject, or
// NotFound. It compiles the pattern on every call; use Compile when the same
// pattern is searched repeatedly.
func Index(subject, pattern []byte) int {
	if len(pattern) == 0 {
		return 0
	}
	if len(subject) < len(pattern) {
		return NotFound
	}
	return scan(subject, pattern, failure(pattern))
}

// failure computes the KMP failure table.
//
// fail[0] is -1. For j >= 1, fail[j] is the length minus one of the longest
// proper prefix of pattern[0..j] that is also a suffix of it, or -1 if there
// is none.
func failure(pattern []byte) []int {
	if len(pattern) == 0 {
		return nil
	}

	fail := make([]int, len(pattern))
	fail[0] = NotFound

	for j := 1; j < len(pattern); j++ {
		i := fail[j-1]
		for i >= 0 && pattern[i+1] != pattern[j] {
			i = fail[i]
		}
		if pattern[i+1] == pattern[j] {
			fail[j] = i + 1
		} else {
			fail[j] = NotFound
		}
	}

	return fail
}

// scan runs the two-cursor search. The caller guarantees len(pattern) > 0.
func scan(subject, pattern []byte, fail []int) int {
	n, m := len(subject), len(pattern)
	s, p := 0, 0

	for s < n && p < m {
		switch {
		case subject[s] == pattern[p]:
			s++
			p++
		case p > 0:
			p = fail[p-1] + 1
		default:
			s++
		}
	}

	if p == m {
		return s - m
	}
	return NotFound
}

// Len returns the pattern length.
func (m *Matcher) Len() int {
	return len(m.pattern)
}

// Pattern returns a copy of the compiled pattern.
func (m *Matcher) Pattern() []byte {
	p := make([]byte, len(m.pattern))
	copy(p, m.pattern)
	return p
}

// Failure returns a copy of the failure table.
func (m *Matcher) Failure() []int {
	f := make([]int, len(m.fail))
	copy(f, m.fail)
	return f
}

// Index returns the index of the first occurrence of the pattern in subject,
// or NotFound.
func (m *Matcher) Index(subject []byte) int {
	return m.IndexFrom(subject, 0)
}

// IndexFrom searches subject starting at offset and returns an absolute
// index, or NotFound. Offsets outside [0, len(subject)] are clamped.
func (m *Matcher) IndexFrom(subject []byte, offset int) int {
	if offset < 0 {
		offset = 0
	}
	if offset > len(subject) {
		offset = len(subject)
	}

	rest := subject[offset:]
	if len(m.pattern) == 0 {
		return offset
	}
	if len(rest) < len(m.pattern) {
		return NotFound
	}

	i := scan(rest, m.pattern, m.fail)
	if i == NotFound {
		return NotFound
	}
	return offset + i
}

// All yields the indices of successive non-overlapping occurrences of the
// pattern. Each search resumes at the end of the previous match. The empty
// pattern yields nothing.
func (m *Matcher) All(subject []byte) iter.Seq[int] {
	return func(yield func(int) bool) {
		if len(m.pattern) == 0 {
			return
		}
		offset := 0
		for {
			i := m.IndexFrom(subject, offset)
			if i == NotFound {
				return
			}
			if !yield(i) {
				return
			}
			offset = i + len(m.pattern)
		}
	}
}

// Count returns the number of non-overlapping occurrences of the pattern.
func (m *Matcher) Count(subject []byte) int {
	n := 0
	for range m.All(subject) {
		n++
	}
	return n
}
