/*
Package csi provides CSI (Control Sequence Introducer) query functions for terminal geometry
*/
package csi

import (
	"fmt"
	"os"
	"strings"
	"time"

	"golang.org/x/term"
)

// QueryTimeout is the default timeout for CSI queries
const QueryTimeout = 100 * time.Millisecond

// QueryTextAreaSizeInChars returns the text area size in characters of the
// controlling terminal. It asks the tty driver first and falls back to CSI 18t.
// returns: columns and rows, or 0,0,false if both fail
func QueryTextAreaSizeInChars() (cols, rows int, ok bool) {
	// Open controlling terminal
	tty, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return 0, 0, false
	}
	defer tty.Close()

	if c, r, err := term.GetSize(int(tty.Fd())); err == nil && c > 0 && r > 0 {
		return c, r, true
	}

	if !term.IsTerminal(int(tty.Fd())) || !QuerySupported() {
		return 0, 0, false
	}

	oldState, err := term.MakeRaw(int(tty.Fd()))
	if err != nil {
		return 0, 0, false
	}
	defer term.Restore(int(tty.Fd()), oldState)

	if _, err := tty.WriteString(wrapTmuxPassthrough("\x1b[18t")); err != nil {
		return 0, 0, false
	}

	responseChan := make(chan [3]int, 1)
	go func() {
		buf := make([]byte, 64)
		n, err := tty.Read(buf)
		if err == nil && n > 0 {
			if c, r, ok := ParseTextAreaSizeInChars(string(buf[:n])); ok {
				responseChan <- [3]int{c, r, 1}
				return
			}
		}
		responseChan <- [3]int{0, 0, 0}
	}()

	select {
	case result := <-responseChan:
		return result[0], result[1], result[2] == 1
	case <-time.After(QueryTimeout):
		return 0, 0, false
	}
}

// ParseTextAreaSizeInChars parses a CSI 18t reply: CSI 8 ; rows ; cols t
func ParseTextAreaSizeInChars(response string) (cols, rows int, ok bool) {
	start := strings.Index(response, "[8;")
	if start == -1 {
		return 0, 0, false
	}
	remaining := response[start+3:]
	end := strings.Index(remaining, "t")
	if end == -1 {
		return 0, 0, false
	}
	if _, err := fmt.Sscanf(remaining[:end], "%d;%d", &rows, &cols); err != nil {
		return 0, 0, false
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0, false
	}
	return cols, rows, true
}

// QuerySupported checks if a terminal likely supports CSI queries
// This is a heuristic based on terminal type and environment
func QuerySupported() bool {
	switch os.Getenv("TERM_PROGRAM") {
	case "Apple_Terminal", "vscode":
		return false
	}
	return os.Getenv("TERM") != "dumb"
}

// inTmux checks if running inside tmux
func inTmux() bool {
	return os.Getenv("TMUX") != "" || os.Getenv("TERM_PROGRAM") == "tmux"
}

// wrapTmuxPassthrough wraps an escape sequence for tmux passthrough if needed
func wrapTmuxPassthrough(output string) string {
	if inTmux() {
		if !strings.HasPrefix(output, "\x1b") {
			return output
		}
		// tmux passthrough format: \ePtmux;\e{escaped_sequence}\e\\
		// All \e (ESC) characters in the sequence must be doubled
		return "\x1bPtmux;\x1b" + strings.ReplaceAll(output, "\x1b", "\x1b\x1b") + "\x1b\\"
	}
	return output
}
