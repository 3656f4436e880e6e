package app

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/GreyStinger/riv/internal/errmsg"
	"github.com/GreyStinger/riv/internal/graphics"
	"github.com/GreyStinger/riv/internal/keymap"
	"github.com/GreyStinger/riv/internal/render"
	"github.com/GreyStinger/riv/internal/styles"
	"github.com/GreyStinger/riv/internal/viewer"
)

// View renders the application UI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 || m.quitting {
		return ""
	}

	var body string
	switch {
	case m.viewer.State() == viewer.StateEmpty:
		body = m.renderCentered(styles.T().S().Muted.Render("no images to display"))
	case m.frameErr != nil:
		body = m.renderError()
	case m.frame == nil:
		body = m.renderCentered(styles.T().S().Subtle.Render("decoding…"))
	default:
		body = m.renderImageArea()
	}

	view := body + "\n" + m.statusBar()
	view = enforceHeight(view, m.height)

	if m.showHelp {
		view = composeOverlay(view, m.helpView(), m.width)
	}

	// Graphics commands follow the text frame: transmission once per
	// prepared frame, placement on every pass.
	if cmds := m.graphicsCmds(); cmds != "" {
		view += cmds
	}

	return view
}

// graphicsCmds returns the terminal graphics commands for this render
// pass, or clears the image when nothing should be shown over the text.
func (m Model) graphicsCmds() string {
	if m.renderer == nil {
		return ""
	}
	if m.frame == nil || m.frameErr != nil || m.showHelp {
		return m.renderer.Clear()
	}

	transmit, err := m.renderer.Prepare(
		m.frame.Item.Path,
		m.frame.Image.Pixels,
		m.frame.Transform,
		m.frame.Viewport.Rotation,
	)
	if err != nil {
		m.logger.Warn(errmsg.FormatWith(errmsg.OpTransmit, m.frame.Item.Name, err))
		return m.renderer.Clear()
	}

	return transmit + m.renderer.Place(1, 1, m.frame.Transform)
}

// renderImageArea reserves the image rows. With a graphics protocol the
// area is blank space under the placed image; without one, a text
// summary stands in for the pixels.
func (m Model) renderImageArea() string {
	if m.renderer != nil {
		return graphics.Placeholder(m.width, m.imageRows())
	}

	img := m.frame.Image
	info := fmt.Sprintf("%s  %dx%d %s", m.frame.Item.Name, img.Width, img.Height, img.Format)
	note := styles.T().S().Subtle.Render("terminal graphics not supported")
	return m.renderCentered(styles.T().S().Base.Render(render.Truncate(info, m.width)) + "\n" + note)
}

func (m Model) renderError() string {
	s := styles.T().S()

	name := ""
	if item := m.viewer.Current(); item != nil {
		name = item.Name
	}
	text := errmsg.FormatWith(errmsg.OpDecode, name, m.frameErr)

	lines := []string{
		s.Error.Render(render.Truncate(text, m.width-4)),
		"",
		s.Muted.Render("n/p to skip to another image, q to quit"),
	}
	return m.renderCentered(strings.Join(lines, "\n"))
}

// renderCentered centers content within the image area.
func (m Model) renderCentered(content string) string {
	return lipgloss.Place(m.width, m.imageRows(), lipgloss.Center, lipgloss.Center, content)
}

// statusBar renders the bottom line: position and filename on the left,
// view state on the right.
func (m Model) statusBar() string {
	s := styles.T().S()

	var left, right string
	switch {
	case m.viewer.State() == viewer.StateEmpty:
		left = s.Muted.Render("0/0")

	default:
		item := m.viewer.Current()
		pos := s.Position.Render(fmt.Sprintf("%d/%d", m.viewer.Cursor()+1, m.viewer.Len()))
		name := s.Filename.Render(render.TruncateMiddle(item.Name, m.width/2))
		left = pos + " " + name

		var parts []string
		if m.frameErr != nil {
			parts = append(parts, s.Error.Render("decode failed"))
		} else if m.frame != nil {
			img := m.frame.Image
			parts = append(parts,
				s.Muted.Render(fmt.Sprintf("%dx%d", img.Width, img.Height)),
				s.Muted.Render(humanize.Bytes(uint64(item.Size))), //nolint:gosec // sizes are non-negative
			)
		}
		vp := m.viewer.Viewport()
		parts = append(parts, s.Base.Render(fmt.Sprintf("%.0f%%", vp.Zoom*100)))
		if deg := vp.Rotation.Degrees(); deg != 0 {
			parts = append(parts, s.Position.Render(fmt.Sprintf("%d°", deg)))
		}
		right = strings.Join(parts, "  ")
	}

	return s.Bar.Render(render.Row(left, right, m.width))
}

// helpView renders the key binding overlay.
func (m Model) helpView() string {
	t := styles.T()
	s := t.S()

	width := min(44, m.width-4)

	var b strings.Builder
	title := styles.ApplyBoldGradient("riv — keys", t.Primary, t.Secondary)
	b.WriteString(centerLine(title, width) + "\n")

	for _, context := range []string{"navigate", "view", "global"} {
		b.WriteString(s.Subtle.Render(render.Separator(width)) + "\n")
		for _, binding := range keymap.ByContext(context) {
			keys := s.Position.Render(strings.Join(binding.Keys, " "))
			b.WriteString(render.Row(s.Base.Render(binding.Description), keys, width) + "\n")
		}
	}
	b.WriteString(s.Subtle.Render(centerLine("press any key to close", width)))

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(t.Border).
		Padding(0, 1).
		Render(b.String())

	return centerBox(box, m.width, m.height)
}

// enforceHeight pads or truncates the view to exactly targetHeight lines.
func enforceHeight(view string, targetHeight int) string {
	lines := strings.Split(view, "\n")
	if len(lines) == targetHeight {
		return view
	}
	if len(lines) < targetHeight {
		for len(lines) < targetHeight {
			lines = append(lines, "")
		}
	} else {
		lines = lines[:targetHeight]
	}
	return strings.Join(lines, "\n")
}

func centerLine(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	pad := (width - w) / 2
	return strings.Repeat(" ", pad) + s + strings.Repeat(" ", width-w-pad)
}

func centerBox(box string, termWidth, termHeight int) string {
	lines := strings.Split(box, "\n")
	boxHeight := len(lines)
	boxWidth := 0
	for _, line := range lines {
		if w := lipgloss.Width(line); w > boxWidth {
			boxWidth = w
		}
	}

	padTop := max((termHeight-boxHeight)/2, 0)
	padLeft := max((termWidth-boxWidth)/2, 0)

	var result strings.Builder
	for range padTop {
		result.WriteString("\n")
	}
	for i, line := range lines {
		if i > 0 {
			result.WriteString("\n")
		}
		result.WriteString(strings.Repeat(" ", padLeft))
		result.WriteString(line)
	}

	return result.String()
}
