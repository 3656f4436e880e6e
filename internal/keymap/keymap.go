package keymap

// Binding ties keys to an action, with a description for help display.
type Binding struct {
	Keys        []string
	Action      Action
	Description string
	Context     string // "global", "navigate", "view"
}

// All contains all key bindings, in help display order.
var All = []Binding{
	// Global
	{[]string{"q", "ctrl+c", "esc"}, ActionQuit, "Quit", "global"},
	{[]string{"?"}, ActionHelp, "Show help", "global"},

	// Navigation
	{[]string{"n", "right", " "}, ActionNextImage, "Next image", "navigate"},
	{[]string{"p", "left", "backspace"}, ActionPrevImage, "Previous image", "navigate"},
	{[]string{"g", "home"}, ActionFirstImage, "First image", "navigate"},
	{[]string{"G", "end"}, ActionLastImage, "Last image", "navigate"},

	// View
	{[]string{"+", "="}, ActionZoomIn, "Zoom in", "view"},
	{[]string{"-", "_"}, ActionZoomOut, "Zoom out", "view"},
	{[]string{"0"}, ActionZoomReset, "Reset zoom", "view"},
	{[]string{"r"}, ActionRotateCW, "Rotate clockwise", "view"},
	{[]string{"h"}, ActionPanLeft, "Pan left", "view"},
	{[]string{"l"}, ActionPanRight, "Pan right", "view"},
	{[]string{"k"}, ActionPanUp, "Pan up", "view"},
	{[]string{"j"}, ActionPanDown, "Pan down", "view"},
}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
