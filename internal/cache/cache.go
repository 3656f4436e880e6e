// Package cache keeps a sliding window of decoded images around the
// cursor so navigation is answered from memory.
//
// A single owner goroutine holds the entry map; API calls and worker
// results reach it as messages, so no shared state is ever mutated from
// two goroutines. A bounded worker pool performs the actual decodes and
// posts results back to the owner.
package cache

import (
	"context"
	"errors"
	"os"
	"sort"

	"go.uber.org/zap"

	"github.com/GreyStinger/riv/internal/decode"
	"github.com/GreyStinger/riv/internal/fit"
	"github.com/GreyStinger/riv/internal/source"
)

// ErrClosed is returned by Current after Close.
var ErrClosed = errors.New("cache closed")

// Status describes a cache entry's lifecycle.
type Status int

const (
	StatusPending Status = iota
	StatusReady
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusReady:
		return "ready"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Event is posted on Updates when a decode completes or fails.
type Event struct {
	Index  int
	Path   string
	Status Status
}

// Frame is a decoded image combined with the fit transform for the
// current viewport. Frames are recomputed, never mutated.
type Frame struct {
	Index     int
	Item      source.Item
	Image     *decode.Image
	Transform fit.Transform
	Viewport  fit.Viewport
}

// Config assembles a Cache.
type Config struct {
	Items    []source.Item
	Decoder  *decode.Decoder
	ReadFile func(string) ([]byte, error) // nil means os.ReadFile
	Ahead    int                          // window entries past the cursor
	Behind   int                          // window entries before the cursor
	Workers  int
	Viewport fit.Viewport
	Limits   fit.Limits
	Logger   *zap.Logger
}

// Cache is the prefetching decode cache. All exported methods are safe
// for concurrent use.
type Cache struct {
	items    []source.Item
	dec      *decode.Decoder
	readFile func(string) ([]byte, error)
	ahead    int
	behind   int
	log      *zap.Logger

	cmds    chan command
	results chan result
	work    chan job
	events  chan Event
	done    chan struct{}
}

type job struct {
	index int
	path  string
}

type result struct {
	index int
	img   *decode.Image
	err   error
}

type command interface{ isCommand() }

type advanceCmd struct{ cursor int }
type viewportCmd struct{ vp fit.Viewport }
type getCmd struct{ reply chan getReply }
type indicesCmd struct{ reply chan []int }

func (advanceCmd) isCommand()  {}
func (viewportCmd) isCommand() {}
func (getCmd) isCommand()      {}
func (indicesCmd) isCommand()  {}

type getReply struct {
	frame *Frame
	err   error
	wait  chan struct{} // non-nil when the caller must wait for a decode
	empty bool
}

// entry lives only inside the owner goroutine.
type entry struct {
	status Status
	img    *decode.Image
	err    error
	ready  chan struct{} // closed once status leaves Pending
	tr     fit.Transform
	trGen  uint64
}

// New starts the cache owner and its worker pool.
func New(cfg Config) *Cache {
	workers := cfg.Workers
	if workers < 1 {
		workers = 3
	}
	readFile := cfg.ReadFile
	if readFile == nil {
		readFile = os.ReadFile
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	ahead := max(cfg.Ahead, 0)
	behind := max(cfg.Behind, 0)

	c := &Cache{
		items:    cfg.Items,
		dec:      cfg.Decoder,
		readFile: readFile,
		ahead:    ahead,
		behind:   behind,
		log:      log,
		cmds:     make(chan command),
		results:  make(chan result, workers),
		work:     make(chan job, (ahead+behind+1)+workers),
		events:   make(chan Event, 64),
		done:     make(chan struct{}),
	}

	for range workers {
		go c.worker()
	}
	go c.run(cfg.Viewport, cfg.Limits)

	return c
}

// Updates delivers completion events. The channel closes when the cache
// shuts down.
func (c *Cache) Updates() <-chan Event { return c.events }

// Advance moves the prefetch window to the new cursor position, issuing
// decode requests for newly in-window paths and evicting entries that
// fell outside, farthest from the cursor first.
func (c *Cache) Advance(cursor int) {
	c.send(advanceCmd{cursor: cursor})
}

// SetViewport invalidates all cached fit transforms. Decoded pixel
// buffers stay valid; fits are recomputed lazily on next access.
func (c *Cache) SetViewport(vp fit.Viewport) {
	c.send(viewportCmd{vp: vp})
}

// Current returns the fitted frame at the cursor. It blocks only when
// the current image is still being decoded (cold start or navigation
// outrunning prefetch). A nil frame with nil error means the sequence is
// empty. Failed entries return their decode error.
func (c *Cache) Current(ctx context.Context) (*Frame, error) {
	for {
		reply := make(chan getReply, 1)
		select {
		case c.cmds <- getCmd{reply: reply}:
		case <-c.done:
			return nil, ErrClosed
		case <-ctx.Done():
			return nil, ctx.Err()
		}

		r := <-reply
		switch {
		case r.empty:
			return nil, nil
		case r.err != nil:
			return nil, r.err
		case r.frame != nil:
			return r.frame, nil
		}

		select {
		case <-r.wait:
		case <-c.done:
			return nil, ErrClosed
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// Indices returns the sorted indices currently held (pending or ready).
func (c *Cache) Indices() []int {
	reply := make(chan []int, 1)
	select {
	case c.cmds <- indicesCmd{reply: reply}:
		return <-reply
	case <-c.done:
		return nil
	}
}

// Close stops the owner and workers. In-flight decodes finish and are
// discarded.
func (c *Cache) Close() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

func (c *Cache) send(cmd command) {
	select {
	case c.cmds <- cmd:
	case <-c.done:
	}
}

func (c *Cache) worker() {
	for {
		select {
		case j := <-c.work:
			c.runJob(j)
		case <-c.done:
			return
		}
	}
}

// runJob decodes one path and posts the result to the owner.
func (c *Cache) runJob(j job) {
	res := result{index: j.index}

	data, err := c.readFile(j.path)
	if err != nil {
		// Filesystem failures surface through the same per-path channel
		// as decode failures.
		res.err = &decode.Error{Path: j.path, Kind: decode.Truncated, Err: err}
	} else {
		res.img, res.err = c.dec.Decode(data, j.path)
	}

	select {
	case c.results <- res:
	case <-c.done:
	}
}

// run is the owner goroutine: the single writer of the entry map.
func (c *Cache) run(vp fit.Viewport, lim fit.Limits) {
	// The owner is the only event sender, so it closes the stream when it
	// stops and subscribers unblock.
	defer close(c.events)

	// failed holds terminal markers and is never evicted. inflight tracks
	// dispatched decodes and survives eviction, so a re-requested path
	// joins the decode already in flight instead of issuing a duplicate.
	var (
		entries  = make(map[int]*entry)
		failed   = make(map[int]error)
		inflight = make(map[int]struct{})
		cursor   = 0
		gen      = uint64(1)
	)

	window := func() map[int]struct{} {
		return windowSet(cursor, c.ahead, c.behind, len(c.items))
	}

	request := func(idx int) {
		if _, isFailed := failed[idx]; isFailed {
			return
		}
		if _, exists := entries[idx]; exists {
			return // pending or ready: coalesce
		}
		e := &entry{status: StatusPending, ready: make(chan struct{})}
		entries[idx] = e

		if _, flying := inflight[idx]; flying {
			return // join the decode already in flight for this path
		}
		inflight[idx] = struct{}{}

		j := job{index: idx, path: c.items[idx].Path}
		select {
		case c.work <- j:
		default:
			// Queue saturated: fall back to a dedicated decode rather
			// than dropping the request.
			c.log.Warn("decode queue saturated", zap.String("path", j.path))
			go c.runJob(j)
		}
	}

	apply := func(res result) {
		delete(inflight, res.index)
		e, exists := entries[res.index]
		if !exists || e.status != StatusPending {
			// Evicted or already applied. Failure knowledge stays
			// terminal even when the entry is gone.
			if res.err != nil {
				failed[res.index] = res.err
			}
			return
		}

		if _, inWindow := window()[res.index]; !inWindow {
			// Arrived after the window moved on. Keep failure knowledge,
			// discard pixels.
			close(e.ready)
			delete(entries, res.index)
			if res.err != nil {
				failed[res.index] = res.err
			}
			return
		}

		if res.err != nil {
			e.status = StatusFailed
			e.err = res.err
			failed[res.index] = res.err
			c.log.Info("decode failed",
				zap.String("path", c.items[res.index].Path),
				zap.Error(res.err))
		} else {
			e.status = StatusReady
			e.img = res.img
		}
		close(e.ready)
		c.post(Event{Index: res.index, Path: c.items[res.index].Path, Status: e.status})
	}

	fitted := func(idx int, e *entry) *Frame {
		if e.trGen != gen {
			e.tr = fit.Fit(e.img.Width, e.img.Height, vp, lim)
			e.trGen = gen
		}
		return &Frame{
			Index:     idx,
			Item:      c.items[idx],
			Image:     e.img,
			Transform: e.tr,
			Viewport:  vp,
		}
	}

	handleGet := func(cmd getCmd) {
		if len(c.items) == 0 {
			cmd.reply <- getReply{empty: true}
			return
		}
		if err, isFailed := failed[cursor]; isFailed {
			cmd.reply <- getReply{err: err}
			return
		}
		e, exists := entries[cursor]
		if !exists {
			// Cold start before any Advance.
			request(cursor)
			e = entries[cursor]
		}
		if e.status == StatusReady {
			cmd.reply <- getReply{frame: fitted(cursor, e)}
			return
		}
		cmd.reply <- getReply{wait: e.ready}
	}

	advance := func(newCursor int) {
		if len(c.items) == 0 {
			return
		}
		cursor = newCursor
		win := window()

		// Evict outside the window, farthest first. The cursor itself is
		// always in the window.
		var outside []int
		for idx := range entries {
			if _, ok := win[idx]; !ok {
				outside = append(outside, idx)
			}
		}
		sort.Slice(outside, func(i, j int) bool {
			return source.Distance(outside[i], cursor, len(c.items)) >
				source.Distance(outside[j], cursor, len(c.items))
		})
		for _, idx := range outside {
			// Wake callers parked on an evicted pending entry; they loop
			// in Current and re-request at the new cursor.
			if e := entries[idx]; e.status == StatusPending {
				close(e.ready)
			}
			delete(entries, idx)
		}

		// Request missing entries, the cursor first so a blocked
		// Current wakes as early as possible.
		request(cursor)
		for idx := range win {
			request(idx)
		}
	}

	for {
		select {
		case res := <-c.results:
			apply(res)

		case cmd := <-c.cmds:
			switch cmd := cmd.(type) {
			case advanceCmd:
				advance(cmd.cursor)
			case viewportCmd:
				vp = cmd.vp
				gen++
			case getCmd:
				handleGet(cmd)
			case indicesCmd:
				indices := make([]int, 0, len(entries))
				for idx := range entries {
					indices = append(indices, idx)
				}
				sort.Ints(indices)
				cmd.reply <- indices
			}

		case <-c.done:
			return
		}
	}
}

// post emits an event without ever blocking the owner.
func (c *Cache) post(ev Event) {
	select {
	case c.events <- ev:
	default:
		c.log.Debug("event channel full, dropping", zap.Int("index", ev.Index))
	}
}

// windowSet returns the set of indices within the prefetch window around
// cursor, wraparound aware.
func windowSet(cursor, ahead, behind, n int) map[int]struct{} {
	win := make(map[int]struct{}, ahead+behind+1)
	if n <= 0 {
		return win
	}
	win[cursor] = struct{}{}
	i := cursor
	for range ahead {
		i = source.Next(i, n)
		win[i] = struct{}{}
	}
	i = cursor
	for range behind {
		i = source.Prev(i, n)
		win[i] = struct{}{}
	}
	return win
}
