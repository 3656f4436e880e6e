package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/GreyStinger/riv/internal/cache"
	"github.com/GreyStinger/riv/internal/keymap"
)

// Update handles messages and returns updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case frameMsg:
		return m.handleFrame(msg)

	case cacheEventMsg:
		return m.handleCacheEvent(cache.Event(msg))

	case eventsClosedMsg:
		return m, nil
	}

	return m, nil
}

func (m Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height

	cellW, cellH := m.cellSize()
	m.viewer.Resize(msg.Width*cellW, m.imageRows()*cellH)

	m.logger.Debug("resize",
		zap.Int("cols", msg.Width),
		zap.Int("rows", msg.Height))

	// The fit changed; refresh the frame without re-decoding.
	return m, m.frameCmd()
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	if m.showHelp {
		// Any key dismisses help, quit keys still quit.
		m.showHelp = false
		if m.resolver.Resolve(key) == keymap.ActionQuit {
			return m.quit()
		}
		return m, nil
	}

	switch m.resolver.Resolve(key) {
	case keymap.ActionQuit:
		return m.quit()

	case keymap.ActionHelp:
		m.showHelp = true
		return m, nil

	case keymap.ActionNextImage:
		m.viewer.Next()
	case keymap.ActionPrevImage:
		m.viewer.Prev()
	case keymap.ActionFirstImage:
		m.viewer.First()
	case keymap.ActionLastImage:
		m.viewer.Last()

	case keymap.ActionZoomIn:
		m.viewer.ZoomIn()
	case keymap.ActionZoomOut:
		m.viewer.ZoomOut()
	case keymap.ActionZoomReset:
		m.viewer.ZoomReset()
	case keymap.ActionRotateCW:
		m.viewer.RotateCW()

	case keymap.ActionPanLeft:
		m.viewer.Pan(panStep, 0)
	case keymap.ActionPanRight:
		m.viewer.Pan(-panStep, 0)
	case keymap.ActionPanUp:
		m.viewer.Pan(0, panStep)
	case keymap.ActionPanDown:
		m.viewer.Pan(0, -panStep)

	default:
		return m, nil
	}

	return m, m.frameCmd()
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	return m, tea.Quit
}

func (m Model) handleFrame(msg frameMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Stale frames stay out of the error view.
		m.frame = nil
		m.frameErr = msg.err
		return m, nil
	}
	m.frame = msg.frame
	m.frameErr = nil
	return m, nil
}

func (m Model) handleCacheEvent(ev cache.Event) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.waitForEvent()}

	// Only the cursor's own completion changes what is on screen;
	// prefetch completions for neighbors do not.
	if ev.Index == m.viewer.Cursor() {
		cmds = append(cmds, m.frameCmd())
	}

	return m, tea.Batch(cmds...)
}
