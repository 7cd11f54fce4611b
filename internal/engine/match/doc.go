// Package match implements exact substring search over byte sequences using
// the Knuth-Morris-Pratt algorithm.
//
// A Matcher is compiled once from a pattern and can then be run against any
// number of subjects in O(n) time each, where n is the subject length. The
// failure table costs O(m) to build for a pattern of length m.
//
// Basic usage:
//
//	m := match.Compile([]byte("wor"))
//	i := m.Index([]byte("hello world")) // 6
//
//	for i := range m.All(subject) {
//	    // non-overlapping matches, left to right
//	}
//
// The empty pattern matches at index 0 of every subject, including the empty
// one. A pattern longer than the subject is reported as NotFound without
// scanning.
package match
