package app

import (
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/GreyStinger/riv/internal/cache"
	"github.com/GreyStinger/riv/internal/graphics"
	"github.com/GreyStinger/riv/internal/keymap"
	"github.com/GreyStinger/riv/internal/viewer"
)

// Default cell pixel size used when no graphics protocol is available to
// query the terminal.
const (
	fallbackCellW = 8
	fallbackCellH = 16
)

// statusBarRows is the number of terminal rows reserved below the image.
const statusBarRows = 1

// panStep is the pan distance per keypress, in viewport pixels.
const panStep = 50

// Model is the root application model containing all state.
type Model struct {
	viewer   *viewer.Viewer
	cache    *cache.Cache
	resolver *keymap.Resolver
	renderer *graphics.Renderer
	proto    graphics.Protocol
	logger   *zap.Logger

	frame    *cache.Frame
	frameErr error

	width    int
	height   int
	showHelp bool
	quitting bool
}

// New creates the root model. proto may be nil when the terminal has no
// graphics support; the viewer then falls back to a text-only display.
func New(v *viewer.Viewer, c *cache.Cache, proto graphics.Protocol, logger *zap.Logger) Model {
	m := Model{
		viewer:   v,
		cache:    c,
		resolver: keymap.NewResolver(keymap.All),
		proto:    proto,
		logger:   logger,
	}
	if proto != nil {
		m.renderer = graphics.NewRenderer(proto)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.frameCmd(), m.waitForEvent())
}

// cellSize returns the terminal cell dimensions in pixels.
func (m Model) cellSize() (int, int) {
	if m.proto == nil {
		return fallbackCellW, fallbackCellH
	}
	return m.proto.CellSize()
}

// imageRows returns the number of terminal rows available for the image.
func (m Model) imageRows() int {
	return max(m.height-statusBarRows, 0)
}
