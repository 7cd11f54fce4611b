package repl

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dshills/bytestr/internal/app"
	"github.com/dshills/bytestr/internal/config"
)

func newTestShell(input string) *Shell {
	return New(app.NewSession(input, nil), config.REPLConfig{Prompt: "> ", HistorySize: 3}, nil)
}

func TestShellExec(t *testing.T) {
	sh := newTestShell("")

	steps := []struct {
		line string
		want string
	}{
		{`set "  one, two  "`, "  one, two  \n"},
		{"strip", "one, two\n"},
		{`split ", "`, "one\ntwo\n"},
		{"upper", "ONE, TWO\n"},
		{"find TWO", "5\n"},
		{"empty", "false\n"},
		{"show", "\"ONE, TWO\"\n"},
		{"", ""},
		{"# comment", ""},
	}
	for _, st := range steps {
		got, err := sh.Exec(st.line)
		if err != nil {
			t.Fatalf("Exec(%q) error = %v", st.line, err)
		}
		if got != st.want {
			t.Errorf("Exec(%q) = %q, want %q", st.line, got, st.want)
		}
	}
}

func TestShellExecErrors(t *testing.T) {
	sh := newTestShell("abc")

	tests := []struct {
		line string
		want error
	}{
		{"explode", app.ErrUnknownOperation},
		{"erase 1", app.ErrArgumentCount},
		{"at x", app.ErrBadArgument},
		{`append "x`, ErrUnterminatedQuote},
		{"help explode", app.ErrUnknownOperation},
	}
	for _, tt := range tests {
		if _, err := sh.Exec(tt.line); !errors.Is(err, tt.want) {
			t.Errorf("Exec(%q) error = %v, want %v", tt.line, err, tt.want)
		}
	}
	if got, _ := sh.Exec("show"); got != "\"abc\"\n" {
		t.Errorf("failed commands changed the contents: %s", got)
	}
}

func TestShellQuit(t *testing.T) {
	sh := newTestShell("")
	for _, line := range []string{"quit", "exit", "  exit  "} {
		if _, err := sh.Exec(line); !errors.Is(err, ErrQuit) {
			t.Errorf("Exec(%q) error = %v, want ErrQuit", line, err)
		}
	}
}

func TestShellHelp(t *testing.T) {
	sh := newTestShell("")

	out, err := sh.Exec("help")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"erase <begin> <end>", "replace-char <old> <new>", "quit, exit"} {
		if !strings.Contains(out, want) {
			t.Errorf("help missing %q", want)
		}
	}

	out, err = sh.Exec("help split")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "split <separator>\n") {
		t.Errorf("help split = %q", out)
	}
}

func TestShellHistory(t *testing.T) {
	sh := newTestShell("")
	for _, line := range []string{"append a", "append b", "", "append c", "append d"} {
		if _, err := sh.Exec(line); err != nil {
			t.Fatal(err)
		}
	}

	got := sh.History()
	want := []string{"append b", "append c", "append d"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("History() = %q, want %q", got, want)
	}

	out, err := sh.Exec("history")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out, "   2  append d\n   3  history\n") {
		t.Errorf("history output = %q", out)
	}
}

func TestShellRun(t *testing.T) {
	sh := newTestShell("")
	in := strings.NewReader("append hello\nbogus\nreverse\nquit\nappend never\n")

	var out bytes.Buffer
	if err := sh.Run(context.Background(), in, &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "hello\nerror: bogus: unknown operation\nolleh\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestShellRunCancelled(t *testing.T) {
	sh := newTestShell("")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := sh.Run(ctx, strings.NewReader("append x\n"), &bytes.Buffer{})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run() error = %v, want context.Canceled", err)
	}
}

func TestShellStats(t *testing.T) {
	sh := newTestShell("")
	for _, line := range []string{"append abc", "upper", "at 9"} {
		_, _ = sh.Exec(line)
	}

	out, err := sh.Exec("stats")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"applied=2", "failed=1", "mutations=2"} {
		if !strings.Contains(out, want) {
			t.Errorf("stats = %q, missing %q", out, want)
		}
	}
}

func TestShellUndoRedo(t *testing.T) {
	sh := newTestShell("abc")

	steps := []struct {
		line string
		want string
	}{
		{"append def", "abcdef\n"},
		{"reverse", "fedcba\n"},
		{"undo", "abcdef\n"},
		{"undo", "abc\n"},
		{"redo", "abcdef\n"},
		{"show", "\"abcdef\"\n"},
	}
	for _, st := range steps {
		got, err := sh.Exec(st.line)
		if err != nil {
			t.Fatalf("Exec(%q) error = %v", st.line, err)
		}
		if got != st.want {
			t.Errorf("Exec(%q) = %q, want %q", st.line, got, st.want)
		}
	}

	if _, err := sh.Exec("redo"); err == nil {
		t.Error("expected error with nothing to redo")
	}
}

func TestShellPrint(t *testing.T) {
	sh := newTestShell("a\tb")
	got, err := sh.Exec("print")
	if err != nil {
		t.Fatal(err)
	}
	if got != "a\tb\n" {
		t.Errorf("print = %q, want %q", got, "a\tb\n")
	}
	if _, err := sh.Exec("print extra"); !errors.Is(err, app.ErrArgumentCount) {
		t.Errorf("print with argument error = %v", err)
	}
}
