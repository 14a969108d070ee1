package game

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/petal-overlay/internal/fx"
)

// canvas draws particles onto the ebiten screen. It implements fx.Surface.
type canvas struct {
	dst    *ebiten.Image
	width  int
	height int
	scale  float64

	// backdrop paints the frame background after a clear; nil leaves it
	// transparent.
	backdrop func(dst *ebiten.Image, scale float64)

	white *ebiten.Image
}

func newCanvas() *canvas {
	return &canvas{width: 1, height: 1, scale: 1}
}

func (c *canvas) Resize(width, height int, scale float64) {
	c.width = max(1, width)
	c.height = max(1, height)
	c.scale = scale
}

// bind points the canvas at this frame's screen image.
func (c *canvas) bind(dst *ebiten.Image) {
	c.dst = dst
}

func (c *canvas) Clear() {
	if c.dst == nil {
		return
	}
	c.dst.Clear()
	if c.backdrop != nil {
		c.backdrop(c.dst, c.scale)
	}
}

func (c *canvas) DrawParticle(p *fx.Particle) {
	if c.dst == nil {
		return
	}
	s := c.scale
	x, y := float32(p.X*s), float32(p.Y*s)

	// Soft glow under the shape.
	vector.DrawFilledCircle(c.dst, x, y, float32(p.Radius*1.9*s), withAlpha(fx.Glow, p.Alpha*0.5), true)
	vector.DrawFilledCircle(c.dst, x, y, float32(p.Radius*1.3*s), withAlpha(fx.Glow, p.Alpha), true)

	switch p.Kind {
	case fx.KindHeart:
		c.fillHeart(p)
	default:
		vector.DrawFilledCircle(c.dst, x, y, float32(p.Radius*0.45*s), withAlpha(p.Color, p.Alpha), true)
	}
}

func (c *canvas) fillHeart(p *fx.Particle) {
	o := fx.HeartOutline(p.Radius).Transform(p.Rotation, p.X, p.Y, c.scale)

	path := vector.Path{}
	path.MoveTo(float32(o.Start.X), float32(o.Start.Y))
	for _, cu := range o.Curves {
		path.CubicTo(
			float32(cu.C1.X), float32(cu.C1.Y),
			float32(cu.C2.X), float32(cu.C2.Y),
			float32(cu.End.X), float32(cu.End.Y),
		)
	}
	path.Close()

	vertices, indices := path.AppendVerticesAndIndicesForFilling(nil, nil)
	col := withAlpha(p.Color, p.Alpha)
	for i := range vertices {
		vertices[i].SrcX = 1
		vertices[i].SrcY = 1
		vertices[i].ColorR = float32(col.R) / 255
		vertices[i].ColorG = float32(col.G) / 255
		vertices[i].ColorB = float32(col.B) / 255
		vertices[i].ColorA = float32(col.A) / 255
	}
	c.dst.DrawTriangles(vertices, indices, c.whiteImage(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

func (c *canvas) whiteImage() *ebiten.Image {
	if c.white == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		c.white = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return c.white
}
