// Package bytestr provides a growable, exclusively owned byte string.
//
// A String tracks its logical length separately from its allocated capacity
// and keeps a zero terminator byte just past the last valid byte, so the
// contents can always be handed to terminator-based APIs through CString.
// Internally every operation works on explicit lengths; the terminator is only
// maintained for that boundary.
//
// Key properties:
//   - Capacity starts at DefaultCapacity and doubles on overflow, giving
//     amortised O(1) appends
//   - Substring search, replace and split use the KMP matcher from the match
//     package and run in O(n+m)
//   - No aliasing: Clone, Split and every accessor that returns bytes return
//     fresh copies
//   - Bytes are bytes: case folding and whitespace stripping are ASCII only
//
// Basic usage:
//
//	s := bytestr.FromString("hello world")
//	i := s.FindString("wor")            // 6
//	_ = s.ReplaceString("world", "go")  // "hello go"
//	s.Upper()                           // "HELLO GO"
//
//	parts, _ := bytestr.FromString("one, two, three").SplitString(", ")
//	// ["one" "two" "three"]
//
// # Errors
//
// Failures are reported as *Error values wrapping one of the sentinels:
//
//   - ErrOutOfRange: an index outside the valid range (At)
//   - ErrInvalidArgument: an empty separator (Split) or empty pattern (Replace)
//   - ErrAllocation: capacity overflow; raised as a panic since it cannot be
//     recovered from
//
// A String is not safe for concurrent mutation.
package bytestr
