package bytestr

import (
	"bytes"
	"testing"
	"testing/quick"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want Order
	}{
		{"scenario", "Abc", "abd", Less},
		{"equal", "abc", "abc", Equal},
		{"both empty", "", "", Equal},
		{"empty first", "", "a", Less},
		{"prefix shorter", "ab", "abc", Less},
		{"prefix longer", "abc", "ab", Greater},
		{"later byte", "abd", "abc", Greater},
		{"high byte unsigned", "\xff", "a", Greater},
		{"zero byte", "a\x00", "a", Greater},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := FromString(tt.a), FromString(tt.b)
			if got := Compare(a, b); got != tt.want {
				t.Errorf("Compare(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := a.Compare(b); got != tt.want {
				t.Errorf("a.Compare(b) = %v, want %v", got, tt.want)
			}
			if got := Compare(b, a); got != -tt.want {
				t.Errorf("Compare(%q, %q) = %v, want %v", tt.b, tt.a, got, -tt.want)
			}
			if eq := a.Equal(b); eq != (tt.want == Equal) {
				t.Errorf("Equal(%q, %q) = %v", tt.a, tt.b, eq)
			}
		})
	}
}

func TestCompareAgreesWithBytes(t *testing.T) {
	f := func(a, b []byte) bool {
		return int(Compare(FromBytes(a), FromBytes(b))) == bytes.Compare(a, b)
	}
	if err := quick.Check(f, nil); err != nil {
		t.Error(err)
	}
}

func TestEqualIgnoresCapacity(t *testing.T) {
	a := FromString("abc")
	b := New()
	b.AppendString("abc")
	if a.Cap() == b.Cap() {
		t.Fatalf("test needs different capacities, both %d", a.Cap())
	}
	if !a.Equal(b) {
		t.Error("Equal() should ignore capacity")
	}
}

func TestOrderString(t *testing.T) {
	tests := map[Order]string{
		Less:      "less",
		Equal:     "equal",
		Greater:   "greater",
		Order(42): "unknown",
	}
	for o, want := range tests {
		if got := o.String(); got != want {
			t.Errorf("Order(%d).String() = %q, want %q", int(o), got, want)
		}
	}
}
