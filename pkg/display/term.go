package display

import "golang.org/x/term"

// IsTerminal reports whether fd refers to an interactive terminal.
// Callers use it to decide whether colors should be enabled.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}

// TerminalWidth returns the column width of the terminal behind fd,
// or fallback when fd is not a terminal or its size is unknown.
func TerminalWidth(fd int, fallback int) int {
	if !term.IsTerminal(fd) {
		return fallback
	}

	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return fallback
	}
	return width
}
