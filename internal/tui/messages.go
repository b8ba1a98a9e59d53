package tui

// clearStatusMsg clears the status line unless a newer status replaced it.
type clearStatusMsg struct {
	seq int
}
