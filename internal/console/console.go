// Package console - the operator side of a chat session: reads lines typed by
// the user and prints peer lines and status lines.
//
// Once started, a terminal input is switched to raw mode and driven by the
// golang.org/x/term line editor, so a peer line printed while the user is
// typing does not garble the prompt. Otherwise lines are read with a plain
// buffered reader.
package console

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/rectcircle/linechat/internal/variable"
	"github.com/rectcircle/linechat/tools"
)

// Options - console settings
type Options struct {
	// Prompt - shown before input on a terminal
	Prompt string
	// Color - colour the status prefixes
	Color bool
}

type styles struct {
	ok    lipgloss.Style
	fail  lipgloss.Style
	count lipgloss.Style
}

// Console - operator input and display
type Console struct {
	mu     sync.Mutex
	in     io.Reader
	out    io.Writer
	prompt string
	reader *bufio.Reader

	terminal *term.Terminal
	fd       int
	oldState *term.State
	// prevTrace - trace output before Start, restored by Close
	prevTrace io.Writer

	styles styles
}

// New - create a Console reading from in and writing to out, nothing is read
// before Start
func New(in io.Reader, out io.Writer, opts Options) (*Console, error) {
	c := &Console{out: out}

	renderer := lipgloss.NewRenderer(out)
	c.styles = styles{
		ok:    renderer.NewStyle(),
		fail:  renderer.NewStyle(),
		count: renderer.NewStyle(),
	}
	if opts.Color {
		c.styles.ok = c.styles.ok.Foreground(lipgloss.Color("6"))
		c.styles.fail = c.styles.fail.Foreground(lipgloss.Color("1"))
		c.styles.count = c.styles.count.Foreground(lipgloss.Color("5"))
	}

	c.in = in
	c.prompt = opts.Prompt
	c.reader = bufio.NewReader(in)
	return c, nil
}

// Start - begin reading operator input. When input is a terminal it is put in
// raw mode until Close, so call Start only once output before the session
// (listening, connecting) is done
func (c *Console) Start() error {
	f, ok := c.in.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return nil
	}
	fd := int(f.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("set terminal raw mode: %w", err)
	}
	c.mu.Lock()
	c.fd = fd
	c.oldState = oldState
	c.terminal = term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{c.in, c.out}, c.prompt)
	c.mu.Unlock()

	// raw mode turns off output processing, traces must go through the terminal
	prev := tools.SetTraceOutput(traceWriter{c})
	c.mu.Lock()
	c.prevTrace = prev
	c.mu.Unlock()
	return nil
}

type traceWriter struct {
	c *Console
}

func (w traceWriter) Write(p []byte) (int, error) {
	w.c.writeLine(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

// IsTerminal - whether the line editor is in use
func (c *Console) IsTerminal() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.terminal != nil
}

// ReadLine - block until the operator enters one line, returned without
// the line break. io.EOF once input is exhausted (Ctrl-D on a terminal)
func (c *Console) ReadLine() (string, error) {
	c.mu.Lock()
	t := c.terminal
	c.mu.Unlock()
	if t != nil {
		return t.ReadLine()
	}
	line, err := c.reader.ReadString(variable.LineDelimiter)
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Show - print a line received from the peer
func (c *Console) Show(line string) {
	c.writeLine(line)
}

// Info - `[+] ...`
func (c *Console) Info(format string, v ...interface{}) {
	c.writeLine(c.styles.ok.Render("[+]") + " " + fmt.Sprintf(format, v...))
}

// Warn - `[-] ...`
func (c *Console) Warn(format string, v ...interface{}) {
	c.writeLine(c.styles.fail.Render("[-]") + " " + fmt.Sprintf(format, v...))
}

// Count - `N bytes what !`
func (c *Console) Count(n int, what string) {
	c.writeLine(fmt.Sprintf("%s bytes %s !", c.styles.count.Render(fmt.Sprint(n)), what))
}

func (c *Console) writeLine(line string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.terminal != nil {
		// the terminal redraws the prompt and pending input after the line
		c.terminal.Write([]byte(line + "\n"))
		return
	}
	io.WriteString(c.out, line+"\n")
}

// Close - restore the terminal state and the trace output
func (c *Console) Close() error {
	c.mu.Lock()
	prev := c.prevTrace
	c.prevTrace = nil
	c.mu.Unlock()
	// outside c.mu, a trace being written holds the logger and waits for c.mu
	if prev != nil {
		tools.SetTraceOutput(prev)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.oldState == nil {
		return nil
	}
	err := term.Restore(c.fd, c.oldState)
	c.oldState = nil
	return err
}
