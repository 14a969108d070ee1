package media

import (
	"context"
	"errors"
	"sync/atomic"

	"github.com/iburimskiy/petal-overlay/internal/playback"
)

var ErrAutoplayBlocked = errors.New("media: playback needs a key press or click first")

// Gate applies an autoplay policy to a media endpoint: Play is refused unless
// it runs on behalf of a user gesture, autoplay is allowed, or a gesture
// has already started playback once.
type Gate struct {
	playback.Media

	allowAutoplay bool
	activated     atomic.Bool
}

func NewGate(m playback.Media, allowAutoplay bool) *Gate {
	return &Gate{Media: m, allowAutoplay: allowAutoplay}
}

func (g *Gate) Play(ctx context.Context) error {
	gesture := playback.IsUserGesture(ctx)
	if !gesture && !g.allowAutoplay && !g.activated.Load() {
		return ErrAutoplayBlocked
	}
	if err := g.Media.Play(ctx); err != nil {
		return err
	}
	if gesture {
		g.activated.Store(true)
	}
	return nil
}
