// Package repl implements the interactive bstr shell.
package repl

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"golang.org/x/term"

	"github.com/dshills/bytestr/internal/app"
	"github.com/dshills/bytestr/internal/config"
)

// ErrQuit is returned by Exec for quit and exit.
var ErrQuit = errors.New("quit")

// Shell reads operations line by line and applies them to one session.
type Shell struct {
	session  *app.Session
	renderer *app.Renderer
	logger   *app.Logger

	prompt      string
	historySize int
	history     []string
}

// New creates a shell over session. Results are always rendered as text.
func New(session *app.Session, cfg config.REPLConfig, logger *app.Logger) *Shell {
	if logger == nil {
		logger = app.NullLogger
	}
	renderer, _ := app.NewRenderer(config.OutputConfig{Format: config.FormatText, Newline: true})
	return &Shell{
		session:     session,
		renderer:    renderer,
		logger:      logger.WithComponent("repl"),
		prompt:      cfg.Prompt,
		historySize: cfg.HistorySize,
	}
}

// History returns the recorded lines, oldest first.
func (sh *Shell) History() []string {
	return append([]string(nil), sh.history...)
}

func (sh *Shell) record(line string) {
	if sh.historySize <= 0 {
		return
	}
	sh.history = append(sh.history, line)
	if over := len(sh.history) - sh.historySize; over > 0 {
		sh.history = append(sh.history[:0], sh.history[over:]...)
	}
}

// Exec runs one line and returns its output. Blank lines and lines starting
// with # produce no output.
func (sh *Shell) Exec(line string) (string, error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", nil
	}

	words, err := splitArgs(line)
	if err != nil {
		return "", err
	}
	if len(words) == 0 {
		return "", nil
	}
	sh.record(line)

	name, args := words[0], words[1:]
	switch name {
	case "quit", "exit":
		return "", ErrQuit
	case "help":
		return help(args)
	case "show":
		return strconv.Quote(sh.session.String()) + "\n", nil
	case "undo":
		return sh.render(sh.session.Undo())
	case "redo":
		return sh.render(sh.session.Redo())
	case "stats":
		return sh.session.Metrics().Snapshot().String() + "\n", nil
	case "history":
		var b strings.Builder
		for i, h := range sh.history {
			fmt.Fprintf(&b, "%4d  %s\n", i+1, h)
		}
		return b.String(), nil
	}

	res, err := sh.session.Apply(name, args...)
	if err == nil && name == app.OpPrint {
		var buf bytes.Buffer
		err = sh.session.Print(&buf)
		return buf.String(), err
	}
	return sh.render(res, err)
}

func (sh *Shell) render(res app.Result, err error) (string, error) {
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := sh.renderer.Render(&buf, res); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func help(args []string) (string, error) {
	var b strings.Builder
	if len(args) > 0 {
		op, ok := app.Lookup(args[0])
		if !ok {
			return "", fmt.Errorf("%w: %s", app.ErrUnknownOperation, args[0])
		}
		fmt.Fprintf(&b, "%s\n    %s\n", op.Usage(), op.Summary)
		return b.String(), nil
	}

	b.WriteString("Operations:\n")
	for _, op := range app.Operations() {
		fmt.Fprintf(&b, "  %-28s %s\n", op.Usage(), op.Summary)
	}
	b.WriteString("\nShell commands:\n")
	b.WriteString("  help [op]                    Show help\n")
	b.WriteString("  show                         Show the quoted contents\n")
	b.WriteString("  history                      Show entered lines\n")
	b.WriteString("  undo, redo                   Revert or reapply the last change\n")
	b.WriteString("  stats                        Show operation counters\n")
	b.WriteString("  quit, exit                   Leave the shell\n")
	return b.String(), nil
}

// Run reads lines from in until EOF, quit, or ctx is done. When in is a
// terminal it is switched to raw mode and read with line editing.
func (sh *Shell) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return sh.runTerminal(ctx, f, out)
	}

	sc := bufio.NewScanner(in)
	for sc.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		quit := sh.step(sc.Text(), out)
		if quit {
			return nil
		}
	}
	return sc.Err()
}

func (sh *Shell) runTerminal(ctx context.Context, f *os.File, out io.Writer) error {
	fd := int(f.Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("repl: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, state)
	}()

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{f, out}, sh.prompt)
	if w, h, err := term.GetSize(fd); err == nil {
		_ = t.SetSize(w, h)
	}

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		line, err := t.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if sh.step(line, t) {
			return nil
		}
	}
}

// step executes one line, writing output or the error to out.
// It reports whether the shell should stop.
func (sh *Shell) step(line string, out io.Writer) bool {
	text, err := sh.Exec(line)
	if errors.Is(err, ErrQuit) {
		return true
	}
	if err != nil {
		sh.logger.Debug("%v", err)
		fmt.Fprintf(out, "error: %v\n", err)
		return false
	}
	_, _ = io.WriteString(out, text)
	return false
}
