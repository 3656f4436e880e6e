// Package keymap defines key bindings and action dispatch for the viewer.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Navigation actions
	ActionNextImage  Action = "next_image"
	ActionPrevImage  Action = "prev_image"
	ActionFirstImage Action = "first_image"
	ActionLastImage  Action = "last_image"

	// View actions
	ActionZoomIn    Action = "zoom_in"
	ActionZoomOut   Action = "zoom_out"
	ActionZoomReset Action = "zoom_reset"
	ActionRotateCW  Action = "rotate_cw"
	ActionPanLeft   Action = "pan_left"
	ActionPanRight  Action = "pan_right"
	ActionPanUp     Action = "pan_up"
	ActionPanDown   Action = "pan_down"
)
