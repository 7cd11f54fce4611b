package bytestr

import (
	"strings"
	"testing"
)

func BenchmarkAppend(b *testing.B) {
	chunk := []byte("0123456789")
	b.SetBytes(int64(len(chunk)))
	s := New()
	for i := 0; i < b.N; i++ {
		if s.Len() > 1<<20 {
			s.Reset()
		}
		s.AppendBytes(chunk)
	}
}

func BenchmarkReplace(b *testing.B) {
	text := strings.Repeat("lorem ipsum dolor sit amet ", 1000)
	b.SetBytes(int64(len(text)))
	for i := 0; i < b.N; i++ {
		s := FromString(text)
		_ = s.ReplaceString("ipsum", "IPSUM")
	}
}

func BenchmarkSplit(b *testing.B) {
	s := FromString(strings.Repeat("field,", 1000))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = s.SplitString(",")
	}
}

func BenchmarkStrip(b *testing.B) {
	text := strings.Repeat(" ", 100) + "content" + strings.Repeat("\t", 100)
	for i := 0; i < b.N; i++ {
		s := FromString(text)
		s.Strip()
	}
}
