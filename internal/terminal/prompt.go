package terminal

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"clawdeye-installer/internal/models"

	"golang.org/x/term"
)

/**
 * Prompter collects answers from the controlling terminal.
 * Prompt text goes to the error stream so `clawdeye-installer install`
 * keeps stdout capture-safe; answers are read from /dev/tty so the
 * installer still works when its own stdin is a pipe.
 */
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
	tty *os.File // nil when the prompter was built from plain readers
}

// New builds a prompter over explicit streams. Used by tests and by
// non-interactive fallbacks.
func New(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

/**
 * NewTTY opens the controlling terminal for prompt input.
 * @returns {*Prompter} Prompter reading from /dev/tty, writing to stderr
 * @description
 * - Falls back to stdin when no controlling terminal exists (CI, containers)
 * - Callers should Close() the prompter to release the tty handle
 */
func NewTTY() *Prompter {
	tty, err := os.Open("/dev/tty")
	if err != nil {
		return New(os.Stdin, os.Stderr)
	}
	return &Prompter{in: bufio.NewReader(tty), out: os.Stderr, tty: tty}
}

func (p *Prompter) Close() {
	if p.tty != nil {
		p.tty.Close()
	}
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// Ask prompts for an optional value; an empty answer yields def verbatim.
func (p *Prompter) Ask(label, def string) (string, error) {
	fmt.Fprintf(p.out, "%s [%s]: ", label, def)
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return def, nil
	}
	return answer, nil
}

// AskRequired prompts for a value that must be non-empty.
func (p *Prompter) AskRequired(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	answer, err := p.readLine()
	if err != nil {
		return "", err
	}
	if answer == "" {
		return "", &models.ValidationError{Field: label}
	}
	return answer, nil
}

/**
 * AskSecret prompts for a required secret without echoing input.
 * @param {string} label - Prompt label
 * @returns {string} The entered secret
 * @description
 * - Uses term.ReadPassword on the tty so keystrokes are not echoed
 * - Falls back to a plain line read when no tty is attached (tests, pipes)
 * - The secret is taken verbatim, only the line terminator is stripped;
 *   credentials may legitimately carry edge whitespace
 * - Empty input is a ValidationError, same as AskRequired
 */
func (p *Prompter) AskSecret(label string) (string, error) {
	fmt.Fprintf(p.out, "%s: ", label)
	if p.tty != nil {
		raw, err := term.ReadPassword(int(p.tty.Fd()))
		fmt.Fprintln(p.out)
		if err != nil {
			return "", err
		}
		if len(raw) == 0 {
			return "", &models.ValidationError{Field: label}
		}
		return string(raw), nil
	}
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	secret := strings.TrimRight(line, "\r\n")
	if secret == "" {
		return "", &models.ValidationError{Field: label}
	}
	return secret, nil
}

// AskPort prompts for a TCP port with a default.
func (p *Prompter) AskPort(label string, def int) (int, error) {
	answer, err := p.Ask(label, strconv.Itoa(def))
	if err != nil {
		return 0, err
	}
	port, err := strconv.Atoi(answer)
	if err != nil || port < 1 || port > 65535 {
		return 0, &models.ValidationError{Field: label}
	}
	return port, nil
}

/**
 * Confirm asks a yes/no question.
 * @param {bool} def - Answer assumed on empty input
 * @returns {bool} true only for an empty answer (with def=true) or an answer starting with y/Y
 */
func (p *Prompter) Confirm(label string, def bool) (bool, error) {
	hint := "[Y/n]"
	if !def {
		hint = "[y/N]"
	}
	fmt.Fprintf(p.out, "%s %s: ", label, hint)
	answer, err := p.readLine()
	if err != nil {
		return false, err
	}
	if answer == "" {
		return def, nil
	}
	return strings.HasPrefix(strings.ToLower(answer), "y"), nil
}

// Printf writes informational text to the prompt stream.
func (p *Prompter) Printf(format string, v ...interface{}) {
	fmt.Fprintf(p.out, format, v...)
}
