package bytestr

import "github.com/dshills/bytestr/internal/engine/match"

// NotFound is returned by the Find methods when the pattern does not occur.
const NotFound = match.NotFound

// Find returns the index of the first occurrence of pattern, or NotFound.
// The empty pattern is found at index 0.
func (s *String) Find(pattern *String) int {
	return match.Index(s.view(), pattern.view())
}

// FindBytes is like Find but takes the pattern as a byte slice.
func (s *String) FindBytes(pattern []byte) int {
	return match.Index(s.view(), pattern)
}

// FindString is like Find but takes the pattern as a Go string.
func (s *String) FindString(pattern string) int {
	return match.Index(s.view(), []byte(pattern))
}

// FindFrom returns the index of the first occurrence of pattern at or after
// offset, or NotFound. The offset is clamped to [0, Len()].
func (s *String) FindFrom(pattern *String, offset int) int {
	return match.Compile(pattern.view()).IndexFrom(s.view(), offset)
}

// Count returns the number of non-overlapping occurrences of pattern.
// The empty pattern counts as zero occurrences.
func (s *String) Count(pattern *String) int {
	return match.Compile(pattern.view()).Count(s.view())
}

// Replace substitutes repl for every non-overlapping occurrence of old,
// scanning left to right from the end of each previous match. The result is
// always rebuilt in a fresh buffer grown by doubling from DefaultCapacity,
// even when nothing matches, so the capacity afterwards depends only on the
// new length.
//
// An empty old pattern is rejected with ErrInvalidArgument and the contents
// are left unchanged.
func (s *String) Replace(old, repl *String) error {
	return s.replace(old.view(), repl.view())
}

// ReplaceString is like Replace but takes Go strings.
func (s *String) ReplaceString(old, repl string) error {
	return s.replace([]byte(old), []byte(repl))
}

func (s *String) replace(old, repl []byte) error {
	if len(old) == 0 {
		return invalidArgument("replace", "empty pattern")
	}

	src := s.view()
	m := match.Compile(old)

	out := getScratch()
	defer putScratch(out)

	offset := 0
	for i := range m.All(src) {
		out.AppendBytes(src[offset:i])
		out.AppendBytes(repl)
		offset = i + len(old)
	}
	out.AppendBytes(src[offset:])

	// out stays with the pool; only its bytes move into s.
	fresh := New()
	fresh.AppendBytes(out.view())
	s.buf, s.size = fresh.buf, fresh.size
	return nil
}

// Split cuts s around every non-overlapping occurrence of sep and returns the
// pieces as independently owned Strings. The separator is never part of the
// output.
//
// One piece is produced per separator found. The remainder after the last
// separator becomes a final piece only when it is non-empty, so a trailing
// separator does not produce an empty trailing piece:
//
//	"a,b,c" -> ["a" "b" "c"]
//	"a,b,"  -> ["a" "b"]
//	"a,,b"  -> ["a" "" "b"]
//	""      -> []
//
// An empty sep is rejected with ErrInvalidArgument.
func (s *String) Split(sep *String) ([]*String, error) {
	return s.split(sep.view())
}

// SplitString is like Split but takes the separator as a Go string.
func (s *String) SplitString(sep string) ([]*String, error) {
	return s.split([]byte(sep))
}

func (s *String) split(sep []byte) ([]*String, error) {
	if len(sep) == 0 {
		return nil, invalidArgument("split", "empty separator")
	}

	src := s.view()
	m := match.Compile(sep)

	parts := make([]*String, 0, m.Count(src)+1)
	begin := 0
	for i := range m.All(src) {
		parts = append(parts, FromBytes(src[begin:i]))
		begin = i + len(sep)
	}
	if begin != len(src) {
		parts = append(parts, FromBytes(src[begin:]))
	}

	return parts, nil
}

// Join concatenates parts with sep between consecutive elements. It is the
// inverse of Split for strings that do not end with the separator.
func Join(parts []*String, sep *String) *String {
	out := New()
	for i, p := range parts {
		if i > 0 {
			out.Append(sep)
		}
		out.Append(p)
	}
	return out
}

// Strings returns the contents of parts as Go strings.
func Strings(parts []*String) []string {
	out := make([]string, len(parts))
	for i, p := range parts {
		out[i] = p.String()
	}
	return out
}
