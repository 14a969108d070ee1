package game

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/iburimskiy/petal-overlay/internal/config"
	"github.com/iburimskiy/petal-overlay/internal/fx"
)

// Player is the playback controller as seen by the game loop.
type Player interface {
	Toggle(ctx context.Context)
	Pump() int
	Save() bool
}

// Meter reports what the track is doing, for display only.
type Meter interface {
	Level() float64
	CurrentTime() float64
	Duration() time.Duration
}

type Options struct {
	// Overlay leaves the screen transparent instead of painting a backdrop.
	Overlay bool
}

// Game hosts the particle engine and the playback controller in one ebiten
// window. Every handler runs on the ebiten goroutine.
type Game struct {
	ctx    context.Context
	canvas *canvas
	fx     *fx.Engine
	player Player
	meter  Meter

	music *button
	boost *button
	font  *text.GoTextFaceSource

	playing   bool
	boostedAt time.Time
	elapsed   float64

	spawnTicker *time.Ticker
	saveTicker  *time.Ticker

	outsideW, outsideH int
	deviceScale        float64
	closed             bool
}

func New(ctx context.Context, opts Options) (*Game, error) {
	font, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("load font: %w", err)
	}
	c := newCanvas()
	if !opts.Overlay {
		c.backdrop = drawBackdrop
	}
	g := &Game{
		ctx:         ctx,
		canvas:      c,
		fx:          fx.New(c),
		font:        font,
		music:       newButton(config.ButtonX, config.ButtonY, config.ButtonWidth, config.ButtonHeight),
		boost:       newButton(config.ButtonX+config.ButtonWidth+config.ButtonGap, config.ButtonY, config.ButtonWidth, config.ButtonHeight),
		spawnTicker: time.NewTicker(config.AmbientPeriod),
		saveTicker:  time.NewTicker(config.SavePeriod),
	}
	g.fx.Configure(config.WindowWidth, config.WindowHeight, 1)
	return g, nil
}

// AttachPlayer wires the playback controller and the track it drives.
func (g *Game) AttachPlayer(p Player, m Meter) {
	g.player = p
	g.meter = m
}

// SetPlaying is the playback status sink.
func (g *Game) SetPlaying(playing bool) {
	g.playing = playing
}

// Close stops the timers and saves the playback position one last time.
// It is safe to call more than once.
func (g *Game) Close() {
	if g.closed {
		return
	}
	g.closed = true
	g.spawnTicker.Stop()
	g.saveTicker.Stop()
	if g.player != nil {
		g.player.Save()
	}
}

func (g *Game) Update() error {
	if ebiten.IsWindowBeingClosed() ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyQ) ||
		g.ctx.Err() != nil {
		g.Close()
		return ebiten.Termination
	}

	if g.player != nil {
		g.player.Pump()
	}

	select {
	case <-g.spawnTicker.C:
		g.fx.Ambient()
	default:
	}
	select {
	case <-g.saveTicker.C:
		if g.player != nil {
			g.player.Save()
		}
	default:
	}

	cx, cy := ebiten.CursorPosition()
	mx, my := float64(cx)/g.canvas.scale, float64(cy)/g.canvas.scale
	down := inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	up := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)

	if g.music.update(mx, my, down, up) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.toggleMusic()
	}
	if g.boost.update(mx, my, down, up) || inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.fireBoost()
	}

	g.fx.Step()
	g.elapsed += 1.0 / 60.0
	return nil
}

func (g *Game) toggleMusic() {
	if g.player == nil {
		return
	}
	g.music.kick()
	g.player.Toggle(g.ctx)
}

func (g *Game) fireBoost() {
	g.boost.kick()
	g.fx.Boost()
	g.boostedAt = time.Now()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.canvas.bind(screen)
	g.fx.Draw()

	s := g.canvas.scale
	g.drawButton(screen, g.music, g.musicLabel(), s)
	g.drawButton(screen, g.boost, g.boostLabel(), s)
	if g.playing && g.meter != nil {
		g.drawLevelRing(screen, g.meter.Level(), s)
	}
	g.drawText(screen, g.hint(), config.ButtonX, config.ButtonY+config.ButtonHeight+14, 14, s)
	if g.meter != nil && g.meter.Duration() > 0 {
		pos := time.Duration(g.meter.CurrentTime() * float64(time.Second))
		g.drawText(screen, formatDuration(pos)+" / "+formatDuration(g.meter.Duration()), config.ButtonX, 16, 13, s)
	}
}

func (g *Game) musicLabel() string {
	switch {
	case g.player == nil:
		return "No music"
	case g.playing:
		return "Pause music"
	default:
		return "Play music"
	}
}

func (g *Game) boostLabel() string {
	if !g.boostedAt.IsZero() && time.Since(g.boostedAt) < config.BoostLabelHold {
		return "Boosted!"
	}
	return "Boost effect"
}

func (g *Game) hint() string {
	switch {
	case g.player == nil:
		return "Start with -track or -pick to add music."
	case g.playing:
		return "Music is playing."
	default:
		return "Press Play music (or Space) to start."
	}
}

func (g *Game) drawButton(screen *ebiten.Image, b *button, label string, s float64) {
	var bg color.Color
	if b.pressed {
		bg = color.RGBA{R: 24, G: 60, B: 110, A: 220} // Pressed
	} else if b.hovered {
		bg = color.RGBA{R: 34, G: 84, B: 150, A: 220} // Hovered
	} else {
		bg = color.RGBA{R: 20, G: 48, B: 92, A: 200} // Normal
	}

	k := b.scale()
	w, h := b.w*k, b.h*k
	x, y := b.x+(b.w-w)/2, b.y+(b.h-h)/2
	vector.DrawFilledRect(screen, float32(x*s), float32(y*s), float32(w*s), float32(h*s), bg, true)
	vector.StrokeRect(screen, float32(x*s), float32(y*s), float32(w*s), float32(h*s), float32(2*s), color.RGBA{R: 106, G: 214, B: 255, A: 200}, true)

	face := &text.GoTextFace{Source: g.font, Size: 15 * s * k}
	tw, th := text.Measure(label, face, 0)
	op := &text.DrawOptions{}
	op.GeoM.Translate((x+w/2)*s-tw/2, (y+h/2)*s-th/2)
	op.ColorScale.ScaleWithColor(color.RGBA{R: 234, G: 242, B: 255, A: 255})
	text.Draw(screen, label, face, op)
}

func (g *Game) drawLevelRing(screen *ebiten.Image, level, s float64) {
	level = clamp01(level)
	if level == 0 {
		return
	}
	b := g.music
	pad := 3 + 6*level
	r, gv, bl := hsvToRgb(205+30*level, 0.7, 1)
	vector.StrokeRect(screen,
		float32((b.x-pad)*s), float32((b.y-pad)*s),
		float32((b.w+2*pad)*s), float32((b.h+2*pad)*s),
		float32((1+2*level)*s), color.RGBA{R: r, G: gv, B: bl, A: uint8(60 + 150*level)}, true)
}

func (g *Game) drawText(screen *ebiten.Image, msg string, x, y, size, s float64) {
	face := &text.GoTextFace{Source: g.font, Size: size * s}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x*s, y*s)
	op.ColorScale.ScaleWithColor(color.RGBA{R: 234, G: 242, B: 255, A: 230})
	text.Draw(screen, msg, face, op)
}

// drawBackdrop paints a deep blue vertical gradient.
func drawBackdrop(dst *ebiten.Image, _ float64) {
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if h == 0 {
		return
	}
	const band = 4
	for y := 0; y < h; y += band {
		ratio := float64(y) / float64(h)
		r, g, b := hsvToRgb(215-10*ratio, 0.85, 0.10+0.12*ratio)
		vector.DrawFilledRect(dst, 0, float32(y), float32(w), band, color.RGBA{R: r, G: g, B: b, A: 255}, false)
	}
}

// Layout reconfigures the particle surface whenever the window size or the
// monitor scale changes, and returns the backing size in pixels.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := 1.0
	if m := ebiten.Monitor(); m != nil {
		scale = m.DeviceScaleFactor()
	}
	if outsideWidth != g.outsideW || outsideHeight != g.outsideH || math.Abs(scale-g.deviceScale) > 1e-9 {
		g.outsideW, g.outsideH, g.deviceScale = outsideWidth, outsideHeight, scale
		g.fx.Configure(float64(outsideWidth), float64(outsideHeight), scale)
	}
	return g.canvas.width, g.canvas.height
}

// Run starts the ebiten loop and returns once the window closes.
func Run(g *Game, overlay bool) error {
	err := ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{ScreenTransparent: overlay})
	g.Close()
	if err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
