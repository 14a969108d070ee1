// Package media plays one audio file through the system speaker.
package media

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/flac"
	"github.com/faiface/beep/mp3"
	"github.com/faiface/beep/speaker"
	"github.com/faiface/beep/wav"

	"github.com/iburimskiy/petal-overlay/internal/config"
)

var (
	ErrNotLoaded  = errors.New("media: track not loaded")
	ErrOutOfRange = errors.New("media: position past end of track")
)

// Track is a decoded audio file wired into the speaker as
// decoder -> loop -> meter -> ctrl -> volume.
//
// Lock order is t.mu, then speaker.Lock.
type Track struct {
	path string
	loop bool

	mu       sync.Mutex
	file     *os.File
	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	meter    *meter
	queued   bool
	muted    bool
	gain     float64

	// drained is set from the speaker goroutine when a non-looping track ends.
	drained atomic.Bool
}

// Open decodes the file at path, paused at the start.
func Open(path string, loop bool) (*Track, error) {
	t := &Track{path: path, loop: loop, gain: 1}
	if err := t.Load(); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Track) Path() string { return t.path }

// Load (re)opens and decodes the file. Playback stops and the cursor goes
// back to the start; mute and volume settings are kept.
func (t *Track) Load() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closeLocked()

	f, err := os.Open(t.path)
	if err != nil {
		return err
	}
	streamer, format, err := decode(f, t.path)
	if err != nil {
		_ = f.Close()
		return err
	}

	var src beep.Streamer = streamer
	if t.loop {
		src = beep.Loop(-1, streamer)
	}
	m := newMeter(src, config.MeterRingSize)
	ctrl := &beep.Ctrl{Streamer: m, Paused: true}

	t.file = f
	t.streamer = streamer
	t.format = format
	t.meter = m
	t.ctrl = ctrl
	t.volume = &effects.Volume{Streamer: ctrl, Base: 2}
	t.drained.Store(false)
	t.applyVolumeLocked()
	return nil
}

func decode(f *os.File, path string) (beep.StreamSeekCloser, beep.Format, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		return wav.Decode(f)
	case ".mp3":
		return mp3.Decode(f)
	case ".flac":
		return flac.Decode(f)
	default:
		return nil, beep.Format{}, errors.New("unsupported file type: " + ext)
	}
}

// Play starts or resumes playback. The speaker is initialised on first use.
func (t *Track) Play(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.streamer == nil {
		return ErrNotLoaded
	}
	if err := initSpeaker(t.format.SampleRate); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}

	if t.drained.Load() {
		speaker.Lock()
		err := t.streamer.Seek(0)
		speaker.Unlock()
		if err != nil {
			return err
		}
		t.drained.Store(false)
		t.queued = false
	}

	speaker.Lock()
	t.ctrl.Paused = false
	speaker.Unlock()

	if !t.queued {
		speaker.Play(beep.Seq(t.volume, beep.Callback(func() {
			t.drained.Store(true)
		})))
		t.queued = true
	}
	return nil
}

func (t *Track) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.ctrl == nil {
		return
	}
	speaker.Lock()
	t.ctrl.Paused = true
	speaker.Unlock()
}

// Paused reports whether the track is not advancing. A track that has not
// been loaded or has played to its end counts as paused.
func (t *Track) Paused() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.pausedLocked()
}

func (t *Track) pausedLocked() bool {
	if t.ctrl == nil || t.drained.Load() {
		return true
	}
	speaker.Lock()
	defer speaker.Unlock()
	return t.ctrl.Paused
}

// CurrentTime returns the cursor position in seconds.
func (t *Track) CurrentTime() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.streamer == nil {
		return 0
	}
	speaker.Lock()
	pos := t.streamer.Position()
	speaker.Unlock()
	return t.format.SampleRate.D(pos).Seconds()
}

// SetCurrentTime moves the cursor to seconds from the start.
func (t *Track) SetCurrentTime(seconds float64) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.streamer == nil {
		return ErrNotLoaded
	}
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	pos := t.format.SampleRate.N(time.Duration(seconds * float64(time.Second)))
	if pos >= t.streamer.Len() {
		return fmt.Errorf("%w: %.2fs", ErrOutOfRange, seconds)
	}
	speaker.Lock()
	defer speaker.Unlock()
	return t.streamer.Seek(pos)
}

func (t *Track) SetMuted(muted bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.muted = muted
	t.applyVolumeLocked()
}

// SetVolume sets a linear gain in [0, 1].
func (t *Track) SetVolume(v float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.gain = math.Max(0, math.Min(1, v))
	t.applyVolumeLocked()
}

func (t *Track) applyVolumeLocked() {
	if t.volume == nil {
		return
	}
	speaker.Lock()
	defer speaker.Unlock()
	t.volume.Silent = t.muted || t.gain <= 0
	if t.gain > 0 {
		t.volume.Volume = math.Log2(t.gain)
	}
}

func (t *Track) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.streamer == nil {
		return 0
	}
	return t.format.SampleRate.D(t.streamer.Len())
}

// Level returns the smoothed loudness of what is playing, 0 when paused.
func (t *Track) Level() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.meter == nil || t.pausedLocked() {
		return 0
	}
	return t.meter.level(t.format.SampleRate.N(time.Second / 20))
}

func (t *Track) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closeLocked()
	return nil
}

func (t *Track) closeLocked() {
	if t.queued {
		// Clear takes the speaker lock itself.
		speaker.Clear()
		t.queued = false
	}
	if t.streamer != nil {
		_ = t.streamer.Close()
		t.streamer = nil
	}
	if t.file != nil {
		_ = t.file.Close()
		t.file = nil
	}
	t.ctrl = nil
	t.volume = nil
	t.meter = nil
}

var (
	speakerMu   sync.Mutex
	speakerRate beep.SampleRate
)

// initSpeaker initialises the speaker once, and again when the sample rate
// changes.
func initSpeaker(rate beep.SampleRate) error {
	speakerMu.Lock()
	defer speakerMu.Unlock()
	if speakerRate == rate {
		return nil
	}
	if err := speaker.Init(rate, rate.N(time.Second/20)); err != nil {
		return err
	}
	speakerRate = rate
	return nil
}
