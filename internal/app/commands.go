package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// frameCmd fetches the fitted frame at the cursor. It blocks only while
// the current image's decode is still in flight.
func (m Model) frameCmd() tea.Cmd {
	v := m.viewer
	return func() tea.Msg {
		frame, err := v.Frame(context.Background())
		return frameMsg{frame: frame, err: err}
	}
}

// waitForEvent relays the next prefetch cache event into the update loop.
func (m Model) waitForEvent() tea.Cmd {
	c := m.cache
	return func() tea.Msg {
		ev, ok := <-c.Updates()
		if !ok {
			return eventsClosedMsg{}
		}
		return cacheEventMsg(ev)
	}
}
