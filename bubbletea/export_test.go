package bubbletea

// Targets returns the number of interactive widgets in the last frame.
func Targets(m Model) int {
	return len(m.targets)
}

// Status returns the status message.
func Status(m Model) string {
	return m.status
}

// Opened builds the message delivered after a link was opened.
func Opened(url string, err error) any {
	return openedMsg{URL: url, Err: err}
}
