package share

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	osc52 "github.com/aymanbagabas/go-osc52/v2"
	"golang.org/x/term"
)

// CommandSharer pipes the share text into an external command such as
// termux-share.
type CommandSharer struct {
	Command string

	lookPath func(string) (string, error)
}

// NewCommandSharer returns a sharer for command. An empty command is never
// available.
func NewCommandSharer(command string) *CommandSharer {
	return &CommandSharer{Command: strings.TrimSpace(command), lookPath: exec.LookPath}
}

// Available reports whether the command is on PATH.
func (c *CommandSharer) Available() bool {
	if c == nil || c.Command == "" {
		return false
	}
	_, err := c.lookPath(c.Command)
	return err == nil
}

// Share runs the command with the composed text on stdin.
func (c *CommandSharer) Share(ctx context.Context, p Payload) error {
	path, err := c.lookPath(c.Command)
	if err != nil {
		return fmt.Errorf("native share: %w", err)
	}
	cmd := exec.CommandContext(ctx, path)
	cmd.Stdin = strings.NewReader(p.Text)
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("native share %s: %w: %s", c.Command, err, strings.TrimSpace(string(out)))
	}
	return nil
}

// SystemClipboard is the OS clipboard.
type SystemClipboard struct{}

// Available is false when no clipboard utility was found at start-up.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}

// WriteText replaces the clipboard contents.
func (SystemClipboard) WriteText(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("clipboard: %w", err)
	}
	return nil
}

// ErrNotTerminal is returned by OSC52Copier when its output is not a tty.
var ErrNotTerminal = errors.New("output is not a terminal")

// OSC52Copier asks the terminal emulator to set the clipboard with an
// OSC 52 escape sequence.
type OSC52Copier struct {
	Out        io.Writer
	IsTerminal func(io.Writer) bool
}

// NewOSC52Copier writes to stderr, which stays attached to the terminal
// when stdout is piped.
func NewOSC52Copier() *OSC52Copier {
	return &OSC52Copier{Out: os.Stderr, IsTerminal: isTerminal}
}

// Copy writes the escape sequence for text.
func (o *OSC52Copier) Copy(text string) error {
	if o.Out == nil || o.IsTerminal == nil || !o.IsTerminal(o.Out) {
		return ErrNotTerminal
	}
	seq := osc52.New(text)
	switch {
	case os.Getenv("TMUX") != "":
		seq = seq.Tmux()
	case strings.HasPrefix(os.Getenv("TERM"), "screen"):
		seq = seq.Screen()
	}
	if _, err := seq.WriteTo(o.Out); err != nil {
		return fmt.Errorf("osc52: %w", err)
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// NewSystemResolver wires the production ports.
func NewSystemResolver(nativeCommand string) *Resolver {
	return &Resolver{
		Native:    NewCommandSharer(nativeCommand),
		Clipboard: SystemClipboard{},
		Legacy:    NewOSC52Copier(),
	}
}
