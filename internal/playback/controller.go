package playback

import (
	"context"
	"log"

	"github.com/iburimskiy/petal-overlay/internal/config"
)

// FailureNotice is shown when a play request made by the user is refused.
const FailureNotice = "Audio failed to play. Restart the app, then press Play again."

// Store is a durable string key/value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
}

// Media is the audio resource being controlled. Play may be refused by the
// host; it is always called off the caller's goroutine.
type Media interface {
	Paused() bool
	CurrentTime() float64
	SetCurrentTime(seconds float64) error
	Play(ctx context.Context) error
	Pause()
	Load() error
	SetMuted(muted bool)
	SetVolume(volume float64)
}

type playResult struct {
	gesture bool
	err     error
}

// Controller keeps one track's play intent and position durable across runs.
//
// All methods must be called from the same goroutine (the game loop). Play
// requests run on their own goroutine and are applied by Pump or Wait.
type Controller struct {
	store  Store
	media  Media
	status func(playing bool)
	notice func(msg string)
	logger *log.Logger

	intentKey  string
	elapsedKey string

	state   State
	results chan playResult
	pending int
}

type Option func(*Controller)

// WithStatus sets the sink told whether audio is playing.
func WithStatus(fn func(playing bool)) Option {
	return func(c *Controller) { c.status = fn }
}

// WithNotice sets how a refused user play request is reported.
func WithNotice(fn func(msg string)) Option {
	return func(c *Controller) { c.notice = fn }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithKeys overrides the store keys for the play intent and elapsed time.
func WithKeys(intent, elapsed string) Option {
	return func(c *Controller) {
		c.intentKey = intent
		c.elapsedKey = elapsed
	}
}

func NewController(store Store, media Media, opts ...Option) *Controller {
	c := &Controller{
		store:      store,
		media:      media,
		status:     func(bool) {},
		notice:     func(string) {},
		logger:     log.Default(),
		intentKey:  config.KeyPlayIntent,
		elapsedKey: config.KeyElapsed,
		state:      Stopped,
		results:    make(chan playResult, 4),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) State() State { return c.state }

// Pending returns the number of play requests not yet applied.
func (c *Controller) Pending() int { return c.pending }

// Start reads the stored intent and, if playback was wanted, tries to resume
// silently. A refused resume leaves the stored intent alone: autoplay may
// just be blocked, and the next direct action should still find it.
func (c *Controller) Start(ctx context.Context) {
	c.status(false)
	v, _ := c.store.Get(c.intentKey)
	if !ParseIntent(v) {
		c.state = Stopped
		return
	}
	c.state = AttemptingResume
	_ = c.restore()
	c.request(ctx, false)
}

// Toggle handles a direct user action: start playback when the media is
// paused, otherwise pause it.
func (c *Controller) Toggle(ctx context.Context) {
	if !c.media.Paused() {
		c.Save()
		c.media.Pause()
		c.state = Stopped
		c.setIntent(false)
		c.status(false)
		return
	}

	if err := c.media.Load(); err != nil {
		c.logger.Printf("[Audio] load: %v", err)
	}
	c.media.SetMuted(false)
	c.media.SetVolume(1)
	_ = c.restore()
	c.request(WithUserGesture(ctx), true)
}

// Pump applies every play request that has resolved, without blocking.
// It returns how many were applied.
func (c *Controller) Pump() int {
	n := 0
	for c.pending > 0 {
		select {
		case r := <-c.results:
			c.apply(r)
			n++
		default:
			return n
		}
	}
	return n
}

// Wait blocks until all pending play requests have been applied.
func (c *Controller) Wait(ctx context.Context) error {
	for c.pending > 0 {
		select {
		case r := <-c.results:
			c.apply(r)
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Save stores the current position, but only while audio is actually
// playing, so a paused session never overwrites its resume point.
func (c *Controller) Save() bool {
	if c.state != Playing || c.media.Paused() {
		return false
	}
	if err := c.store.Set(c.elapsedKey, FormatElapsed(c.media.CurrentTime())); err != nil {
		c.logger.Printf("[Store] save position: %v", err)
		return false
	}
	return true
}

func (c *Controller) request(ctx context.Context, gesture bool) {
	c.pending++
	go func() {
		c.results <- playResult{gesture: gesture, err: c.media.Play(ctx)}
	}()
}

// apply settles one play request. Requests are applied in the order they
// resolve, so the last one to resolve wins.
func (c *Controller) apply(r playResult) {
	c.pending--
	switch {
	case r.err == nil && c.media.Paused():
		// Paused by the user before this request was applied.
		c.state = Stopped
		c.status(false)
	case r.err == nil:
		c.state = Playing
		if r.gesture {
			c.setIntent(true)
		}
		c.status(true)
	case r.gesture:
		c.state = Stopped
		c.setIntent(false)
		c.status(false)
		c.logger.Printf("[Audio] play failed: %v", r.err)
		c.notice(FailureNotice)
	default:
		c.state = PlayRefused
		c.status(false)
		c.logger.Printf("[Audio] resume refused: %v", r.err)
	}
}

// restore moves the media cursor to the saved position. Callers ignore the
// returned *RestoreError; it is logged here and goes no further.
func (c *Controller) restore() error {
	v, _ := c.store.Get(c.elapsedKey)
	t := ParseElapsed(v)
	if t <= 0 {
		return nil
	}
	if err := c.media.SetCurrentTime(t); err != nil {
		rerr := &RestoreError{Offset: t, Err: err}
		c.logger.Printf("[Audio] %v", rerr)
		return rerr
	}
	return nil
}

func (c *Controller) setIntent(play bool) {
	if err := c.store.Set(c.intentKey, FormatIntent(play)); err != nil {
		c.logger.Printf("[Store] save intent: %v", err)
	}
}
