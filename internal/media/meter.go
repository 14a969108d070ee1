package media

import (
	"math"
	"sync"

	"github.com/faiface/beep"

	"github.com/iburimskiy/petal-overlay/internal/config"
)

// meter wraps a beep.Streamer and records the last N samples into a ring buffer
// so the UI can show how loud the track currently is.
type meter struct {
	Source    beep.Streamer
	buffer    [][2]float64
	nextIndex int
	mu        sync.RWMutex

	// smoothed is only touched by the reader.
	smoothed float64
}

func newMeter(src beep.Streamer, ringSize int) *meter {
	return &meter{
		Source: src,
		buffer: make([][2]float64, ringSize),
	}
}

func (m *meter) Stream(samples [][2]float64) (int, bool) {
	n, ok := m.Source.Stream(samples)
	if n > 0 {
		m.mu.Lock()
		for i := 0; i < n; i++ {
			m.buffer[m.nextIndex] = samples[i]
			m.nextIndex++
			if m.nextIndex >= len(m.buffer) {
				m.nextIndex = 0
			}
		}
		m.mu.Unlock()
	}
	return n, ok
}

func (m *meter) Err() error { return m.Source.Err() }

// snapshot returns up to last n samples (stereo) from the ring buffer (most recent last).
func (m *meter) snapshot(n int) [][2]float64 {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if n > len(m.buffer) {
		n = len(m.buffer)
	}
	out := make([][2]float64, n)
	idx := m.nextIndex - n
	if idx < 0 {
		idx += len(m.buffer)
	}
	for i := 0; i < n; i++ {
		out[i] = m.buffer[idx]
		idx++
		if idx >= len(m.buffer) {
			idx = 0
		}
	}
	return out
}

// level returns a smoothed loudness in [0, 1] over the last n samples.
func (m *meter) level(n int) float64 {
	samples := m.snapshot(n)
	if len(samples) == 0 {
		return 0
	}
	var sumSquares float64
	for _, s := range samples {
		mono := (s[0] + s[1]) * 0.5
		sumSquares += mono * mono
	}
	rms := math.Sqrt(sumSquares / float64(len(samples)))
	mag := math.Min(1, math.Pow(rms, 0.3))
	m.smoothed = config.SmoothingFactor*m.smoothed + (1-config.SmoothingFactor)*mag
	return m.smoothed
}
