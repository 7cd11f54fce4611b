package bytestr_test

import (
	"fmt"

	"github.com/dshills/bytestr/internal/engine/bytestr"
)

func ExampleString_Find() {
	s := bytestr.New()
	s.SetString("hello world")
	fmt.Println(s.FindString("wor"))
	fmt.Println(s.FindString("xyz") == bytestr.NotFound)
	// Output:
	// 6
	// true
}

func ExampleString_Split() {
	parts, err := bytestr.FromString("one, two, three").SplitString(", ")
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%q\n", bytestr.Strings(parts))
	// Output: ["one" "two" "three"]
}

func ExampleString_Replace() {
	s := bytestr.FromString("aXbXXc")
	_ = s.ReplaceString("X", "-")
	fmt.Println(s)
	// Output: a-b--c
}

func ExampleString_Strip() {
	s := bytestr.FromString("  pad  ")
	s.Strip()
	fmt.Printf("%q\n", s.String())
	// Output: "pad"
}

func ExampleCompare() {
	fmt.Println(bytestr.Compare(bytestr.FromString("Abc"), bytestr.FromString("abd")))
	// Output: less
}
