package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/petal-overlay/internal/config"
	"github.com/iburimskiy/petal-overlay/internal/game"
	"github.com/iburimskiy/petal-overlay/internal/media"
	"github.com/iburimskiy/petal-overlay/internal/playback"
	"github.com/iburimskiy/petal-overlay/internal/store"
)

func main() {
	opts, err := config.Parse(os.Args[1:], store.DefaultPath(), os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	ebiten.SetWindowSize(config.WindowWidth, config.WindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	if opts.Overlay {
		ebiten.SetWindowFloating(true)
	}

	g, err := game.New(ctx, game.Options{Overlay: opts.Overlay})
	if err != nil {
		log.Fatal(err)
	}

	if track := openTrack(opts); track != nil {
		defer track.Close()
		ctrl := playback.NewController(openStore(opts.StatePath), media.NewGate(track, opts.Autoplay),
			playback.WithStatus(g.SetPlaying),
			playback.WithNotice(media.Alert),
		)
		g.AttachPlayer(ctrl, track)
		ctrl.Start(ctx)
	}

	if err := game.Run(g, opts.Overlay); err != nil {
		log.Fatal(err)
	}
}

func openStore(path string) playback.Store {
	if path == "" {
		return store.NewMemory()
	}
	s, err := store.Open(path)
	if err != nil {
		log.Printf("[Store] %v; keeping playback state in memory", err)
		return store.NewMemory()
	}
	return s
}

// openTrack returns nil when there is no music to play; the animation runs
// either way.
func openTrack(opts config.Options) *media.Track {
	path := opts.Track
	if opts.Pick {
		picked, err := media.PickTrack()
		switch {
		case errors.Is(err, media.ErrNoTrack):
		case err != nil:
			log.Printf("[Audio] pick track: %v", err)
		default:
			path = picked
		}
	}
	if path == "" {
		log.Printf("[Audio] no track given, running without music")
		return nil
	}
	track, err := media.Open(path, opts.Loop)
	if err != nil {
		log.Printf("[Audio] open %s: %v", path, err)
		return nil
	}
	log.Printf("[Audio] loaded %s (%s)", path, track.Duration().Round(time.Second))
	return track
}
