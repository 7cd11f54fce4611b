package app

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/dshills/bytestr/internal/engine/bytestr"
)

// ResultKind identifies which field of a Result carries the value.
type ResultKind int

const (
	// KindText results carry Text: the string contents or a short answer.
	KindText ResultKind = iota
	// KindParts results carry Parts (split).
	KindParts
	// KindNumber results carry Number (find, count, size).
	KindNumber
	// KindBool results carry Bool (empty, equal).
	KindBool
)

// String returns the kind name.
func (k ResultKind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindParts:
		return "parts"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	default:
		return "unknown"
	}
}

// Result is the outcome of one operation.
type Result struct {
	Op     string
	Kind   ResultKind
	Text   string
	Parts  []string
	Number int
	Bool   bool
}

// Operation describes a named string operation usable from the CLI, the REPL
// and batch documents.
type Operation struct {
	Name    string
	Args    []string // Argument names, in order
	Summary string
	Mutates bool // Whether the operation changes the session string

	run func(s *bytestr.String, args []string) (Result, error)
}

// Usage returns "name <arg1> <arg2>".
func (op Operation) Usage() string {
	if len(op.Args) == 0 {
		return op.Name
	}
	return op.Name + " <" + strings.Join(op.Args, "> <") + ">"
}

// OpPrint names the operation that writes the contents as they are.
const OpPrint = "print"

func contents(s *bytestr.String) Result {
	return Result{Kind: KindText, Text: s.String()}
}

// mutation adapts an in-place operation that cannot fail.
func mutation(fn func(s *bytestr.String)) func(*bytestr.String, []string) (Result, error) {
	return func(s *bytestr.String, _ []string) (Result, error) {
		fn(s)
		return contents(s), nil
	}
}

var operations = []Operation{
	{
		Name: "set", Args: []string{"text"}, Mutates: true,
		Summary: "Replace the contents",
		run: func(s *bytestr.String, args []string) (Result, error) {
			s.SetString(args[0])
			return contents(s), nil
		},
	},
	{
		Name: "append", Args: []string{"text"}, Mutates: true,
		Summary: "Append text to the end",
		run: func(s *bytestr.String, args []string) (Result, error) {
			s.AppendString(args[0])
			return contents(s), nil
		},
	},
	{
		Name: "erase", Args: []string{"begin", "end"}, Mutates: true,
		Summary: "Remove the bytes in [begin, end), clamped to the string",
		run: func(s *bytestr.String, args []string) (Result, error) {
			begin, err := intArg("begin", args[0])
			if err != nil {
				return Result{}, err
			}
			end, err := intArg("end", args[1])
			if err != nil {
				return Result{}, err
			}
			s.Erase(begin, end)
			return contents(s), nil
		},
	},
	{
		Name: "reverse", Mutates: true,
		Summary: "Reverse the bytes",
		run:     mutation((*bytestr.String).Reverse),
	},
	{
		Name: "lower", Mutates: true,
		Summary: "Convert ASCII letters to lowercase",
		run:     mutation((*bytestr.String).Lower),
	},
	{
		Name: "upper", Mutates: true,
		Summary: "Convert ASCII letters to uppercase",
		run:     mutation((*bytestr.String).Upper),
	},
	{
		Name: "strip", Mutates: true,
		Summary: "Trim leading and trailing bytes <= 0x20",
		run:     mutation((*bytestr.String).Strip),
	},
	{
		Name: "replace-char", Args: []string{"old", "new"}, Mutates: true,
		Summary: "Replace every occurrence of one byte with another",
		run: func(s *bytestr.String, args []string) (Result, error) {
			old, err := byteArg("old", args[0])
			if err != nil {
				return Result{}, err
			}
			repl, err := byteArg("new", args[1])
			if err != nil {
				return Result{}, err
			}
			s.ReplaceByte(old, repl)
			return contents(s), nil
		},
	},
	{
		Name: "replace", Args: []string{"old", "new"}, Mutates: true,
		Summary: "Replace every occurrence of old with new",
		run: func(s *bytestr.String, args []string) (Result, error) {
			if err := s.ReplaceString(args[0], args[1]); err != nil {
				return Result{}, err
			}
			return contents(s), nil
		},
	},
	{
		Name: "find", Args: []string{"pattern"},
		Summary: "Index of the first occurrence of pattern, or -1",
		run: func(s *bytestr.String, args []string) (Result, error) {
			return Result{Kind: KindNumber, Number: s.FindString(args[0])}, nil
		},
	},
	{
		Name: "count", Args: []string{"pattern"},
		Summary: "Number of non-overlapping occurrences of pattern",
		run: func(s *bytestr.String, args []string) (Result, error) {
			return Result{Kind: KindNumber, Number: s.Count(bytestr.FromString(args[0]))}, nil
		},
	},
	{
		Name: "at", Args: []string{"index"},
		Summary: "The byte at index",
		run: func(s *bytestr.String, args []string) (Result, error) {
			i, err := intArg("index", args[0])
			if err != nil {
				return Result{}, err
			}
			c, err := s.At(i)
			if err != nil {
				return Result{}, err
			}
			return Result{Kind: KindText, Text: string([]byte{c})}, nil
		},
	},
	{
		Name:    "size",
		Summary: "Number of bytes",
		run: func(s *bytestr.String, _ []string) (Result, error) {
			return Result{Kind: KindNumber, Number: s.Len()}, nil
		},
	},
	{
		Name:    "empty",
		Summary: "Whether the string is empty",
		run: func(s *bytestr.String, _ []string) (Result, error) {
			return Result{Kind: KindBool, Bool: s.IsEmpty()}, nil
		},
	},
	{
		Name: "split", Args: []string{"separator"},
		Summary: "Split around every occurrence of separator",
		run: func(s *bytestr.String, args []string) (Result, error) {
			parts, err := s.SplitString(args[0])
			if err != nil {
				return Result{}, err
			}
			return Result{Kind: KindParts, Parts: bytestr.Strings(parts)}, nil
		},
	},
	{
		Name: "equal", Args: []string{"text"},
		Summary: "Whether the contents equal text",
		run: func(s *bytestr.String, args []string) (Result, error) {
			return Result{Kind: KindBool, Bool: s.Equal(bytestr.FromString(args[0]))}, nil
		},
	},
	{
		Name: "compare", Args: []string{"text"},
		Summary: "Order of the contents relative to text: less, equal or greater",
		run: func(s *bytestr.String, args []string) (Result, error) {
			return Result{Kind: KindText, Text: s.Compare(bytestr.FromString(args[0])).String()}, nil
		},
	},
	{
		Name:    "cstring",
		Summary: "The contents followed by the NUL terminator",
		run: func(s *bytestr.String, _ []string) (Result, error) {
			return Result{Kind: KindText, Text: string(s.CString())}, nil
		},
	},
	{
		Name:    OpPrint,
		Summary: "The current contents",
		run: func(s *bytestr.String, _ []string) (Result, error) {
			return contents(s), nil
		},
	},
}

var operationIndex = func() map[string]int {
	idx := make(map[string]int, len(operations))
	for i, op := range operations {
		idx[op.Name] = i
	}
	return idx
}()

// Operations returns all registered operations sorted by name.
func Operations() []Operation {
	ops := make([]Operation, len(operations))
	copy(ops, operations)
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name < ops[j].Name })
	return ops
}

// Lookup returns the operation with the given name.
func Lookup(name string) (Operation, bool) {
	i, ok := operationIndex[name]
	if !ok {
		return Operation{}, false
	}
	return operations[i], true
}

func intArg(name, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be an integer, got %q", ErrBadArgument, name, s)
	}
	return n, nil
}

// byteArg accepts a single byte, or a Go escape such as \t or \x00.
func byteArg(name, s string) (byte, error) {
	if len(s) == 1 {
		return s[0], nil
	}
	if unquoted, err := strconv.Unquote(`"` + s + `"`); err == nil && len(unquoted) == 1 {
		return unquoted[0], nil
	}
	return 0, fmt.Errorf("%w: %s must be a single byte, got %q", ErrBadArgument, name, s)
}
