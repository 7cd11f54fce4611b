package bytestr

import (
	"io"
	"math"
	"os"
)

// DefaultCapacity is the capacity of a newly created String.
const DefaultCapacity = 8

// String is a growable byte string that owns its storage.
//
// The zero value is an empty string ready to use.
type String struct {
	// len(buf) is the capacity. buf[size] is always 0.
	buf  []byte
	size int
}

// New creates an empty String with DefaultCapacity.
func New() *String {
	return &String{buf: make([]byte, DefaultCapacity)}
}

// FromString creates a String holding a copy of str.
func FromString(str string) *String {
	s := &String{}
	s.SetString(str)
	return s
}

// FromBytes creates a String holding a copy of b.
func FromBytes(b []byte) *String {
	s := &String{}
	s.Set(b)
	return s
}

// lazyInit gives a zero-value String its initial buffer.
func (s *String) lazyInit() {
	if s.buf == nil {
		s.buf = make([]byte, DefaultCapacity)
		s.size = 0
	}
}

// view returns the valid bytes without copying. It must not escape the package.
func (s *String) view() []byte {
	if s == nil || s.buf == nil {
		return nil
	}
	return s.buf[:s.size]
}

// Set replaces the contents with a copy of src. The capacity becomes exactly
// len(src)+1.
func (s *String) Set(src []byte) {
	buf := make([]byte, len(src)+1)
	copy(buf, src)
	s.buf = buf
	s.size = len(src)
}

// SetString replaces the contents with a copy of str.
func (s *String) SetString(str string) {
	buf := make([]byte, len(str)+1)
	copy(buf, str)
	s.buf = buf
	s.size = len(str)
}

// Len returns the number of valid bytes.
func (s *String) Len() int {
	return s.size
}

// Cap returns the allocated capacity, including the terminator slot.
func (s *String) Cap() int {
	s.lazyInit()
	return len(s.buf)
}

// IsEmpty returns true if the string holds no bytes.
func (s *String) IsEmpty() bool {
	return s.size == 0
}

// At returns the byte at index i.
// Returns an ErrOutOfRange error if i is outside [0, Len()).
func (s *String) At(i int) (byte, error) {
	if i < 0 || i >= s.size {
		return 0, outOfRange("at", i, s.size)
	}
	return s.buf[i], nil
}

// grow makes room for n more bytes, doubling the capacity until
// size+n < capacity.
func (s *String) grow(n int) {
	s.lazyInit()

	if n > math.MaxInt-s.size-1 {
		panic(&Error{Op: "grow", Len: s.size, Err: ErrAllocation})
	}
	need := s.size + n
	if need < len(s.buf) {
		return
	}

	capacity := len(s.buf)
	for need >= capacity {
		if capacity > math.MaxInt/2 {
			panic(&Error{Op: "grow", Len: s.size, Err: ErrAllocation})
		}
		capacity *= 2
	}

	buf := make([]byte, capacity)
	copy(buf, s.buf[:s.size])
	s.buf = buf
}

// Append appends a copy of other's contents. Appending a string to itself is
// allowed.
func (s *String) Append(other *String) {
	s.AppendBytes(other.view())
}

// AppendBytes appends a copy of b.
func (s *String) AppendBytes(b []byte) {
	// b may alias s.buf; grow keeps the old buffer alive until the copy below.
	s.grow(len(b))
	copy(s.buf[s.size:], b)
	s.size += len(b)
	s.buf[s.size] = 0
}

// AppendString appends a copy of str.
func (s *String) AppendString(str string) {
	s.grow(len(str))
	copy(s.buf[s.size:], str)
	s.size += len(str)
	s.buf[s.size] = 0
}

// Write implements io.Writer by appending p. It never fails.
func (s *String) Write(p []byte) (int, error) {
	s.AppendBytes(p)
	return len(p), nil
}

// WriteByte implements io.ByteWriter.
func (s *String) WriteByte(c byte) error {
	s.grow(1)
	s.buf[s.size] = c
	s.size++
	s.buf[s.size] = 0
	return nil
}

// Erase removes the bytes in [begin, end). Bounds are clamped to [0, Len()]
// instead of being rejected; a range that is empty after clamping is a no-op.
func (s *String) Erase(begin, end int) {
	begin = max(begin, 0)
	end = min(end, s.size)
	if begin >= end {
		return
	}

	copy(s.buf[begin:], s.buf[end:s.size])
	s.size -= end - begin
	s.buf[s.size] = 0
}

// Clone returns a deep copy with the same length and capacity.
func (s *String) Clone() *String {
	s.lazyInit()
	buf := make([]byte, len(s.buf))
	copy(buf, s.buf[:s.size])
	return &String{buf: buf, size: s.size}
}

// Reset discards the contents and releases the buffer, leaving an empty
// String with DefaultCapacity.
func (s *String) Reset() {
	s.buf = make([]byte, DefaultCapacity)
	s.size = 0
}

// truncate empties the string but keeps its buffer.
func (s *String) truncate() {
	s.lazyInit()
	s.size = 0
	s.buf[0] = 0
}

// Bytes returns a copy of the contents.
func (s *String) Bytes() []byte {
	b := make([]byte, s.size)
	copy(b, s.view())
	return b
}

// String returns the contents as a Go string.
func (s *String) String() string {
	return string(s.view())
}

// CString returns a freshly allocated, zero-terminated copy of the contents
// for terminator-based APIs. The returned slice has length Len()+1.
func (s *String) CString() []byte {
	b := make([]byte, s.size+1)
	copy(b, s.view())
	return b
}

// Fprint writes the contents followed by a newline to w.
func (s *String) Fprint(w io.Writer) error {
	line := make([]byte, s.size+1)
	copy(line, s.view())
	line[s.size] = '\n'
	_, err := w.Write(line)
	return err
}

// Print writes the contents followed by a newline to standard output.
func (s *String) Print() error {
	return s.Fprint(os.Stdout)
}
