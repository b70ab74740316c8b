package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/dmitrijs2005/worklog/internal/common"
	"golang.org/x/term"
)

// readLine prints prompt and returns the next trimmed input line.
func (a *App) readLine(prompt string) (string, error) {
	fmt.Fprintf(a.errOut, "%s: ", prompt)
	text, err := a.reader.ReadString('\n')
	if err != nil && (err != io.EOF || text == "") {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

// readPassword reads without echo when stdin is a terminal and falls back
// to a plain line otherwise (pipes, tests).
func (a *App) readPassword(prompt string) (string, error) {
	f, ok := a.stdin.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return a.readLine(prompt)
	}

	fmt.Fprintf(a.errOut, "%s: ", prompt)
	b, err := term.ReadPassword(int(f.Fd()))
	fmt.Fprintln(a.errOut)
	if err != nil {
		return "", err
	}
	defer common.WipeByteArray(b)
	return string(b), nil
}

// valueOrPrompt returns v, or asks for it when empty.
func (a *App) valueOrPrompt(v, prompt string) (string, error) {
	if v != "" {
		return v, nil
	}
	return a.readLine(prompt)
}
