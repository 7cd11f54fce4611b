package bytestr

import "bytes"

// Order is the result of a three-way comparison.
type Order int

// Comparison results.
const (
	Less    Order = -1
	Equal   Order = 0
	Greater Order = 1
)

// String returns the name of the order.
func (o Order) String() string {
	switch o {
	case Less:
		return "less"
	case Equal:
		return "equal"
	case Greater:
		return "greater"
	default:
		return "unknown"
	}
}

// Compare orders a and b lexicographically by unsigned byte value. When one
// is a prefix of the other, the shorter one is Less.
func Compare(a, b *String) Order {
	return Order(bytes.Compare(a.view(), b.view()))
}

// Compare orders s relative to other. See the package-level Compare.
func (s *String) Compare(other *String) Order {
	return Compare(s, other)
}

// Equal reports whether s and other hold the same bytes.
func (s *String) Equal(other *String) bool {
	return bytes.Equal(s.view(), other.view())
}
