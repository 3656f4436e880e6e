// Package app contains the root bubbletea model for the viewer TUI.
package app

import "github.com/GreyStinger/riv/internal/cache"

// frameMsg carries the fitted frame for the cursor, or the decode error
// behind it.
type frameMsg struct {
	frame *cache.Frame
	err   error
}

// cacheEventMsg wraps a prefetch cache status event.
type cacheEventMsg cache.Event

// eventsClosedMsg is sent when the cache event stream ends on shutdown.
type eventsClosedMsg struct{}
