package bytestr

import "sync"

// maxPooledCapacity bounds the buffers kept in the scratch pool so one huge
// replace does not pin memory.
const maxPooledCapacity = 64 * 1024

// scratchPool recycles the temporary strings used while rebuilding contents.
var scratchPool = sync.Pool{
	New: func() interface{} {
		return New()
	},
}

// getScratch retrieves an empty temporary String. Pair every call with a
// deferred putScratch.
func getScratch() *String {
	s := scratchPool.Get().(*String)
	s.truncate()
	return s
}

// putScratch returns a temporary String to the pool.
// The String should not be used after calling this function.
func putScratch(s *String) {
	if s == nil || len(s.buf) > maxPooledCapacity {
		return
	}
	s.truncate()
	scratchPool.Put(s)
}
