package game

import "github.com/charmbracelet/harmonica"

// button is a clickable rectangle in viewport units with a springy press
// pulse.
type button struct {
	x, y, w, h float64

	hovered bool
	pressed bool

	spring   harmonica.Spring
	pulse    float64
	velocity float64
}

func newButton(x, y, w, h float64) *button {
	return &button{
		x: x, y: y, w: w, h: h,
		spring: harmonica.NewSpring(harmonica.FPS(60), 9.0, 0.35),
	}
}

func (b *button) contains(x, y float64) bool {
	return x >= b.x && x <= b.x+b.w && y >= b.y && y <= b.y+b.h
}

// update feeds one frame of mouse state and reports whether a click
// completed: pressed and released while over the button.
func (b *button) update(mx, my float64, down, up bool) bool {
	b.hovered = b.contains(mx, my)
	if b.hovered && down {
		b.pressed = true
	}
	clicked := false
	if up {
		clicked = b.pressed && b.hovered
		b.pressed = false
	}
	b.pulse, b.velocity = b.spring.Update(b.pulse, b.velocity, 0)
	return clicked
}

// kick starts the press pulse.
func (b *button) kick() {
	b.velocity += 12
}

// scale is the draw scale for the current pulse.
func (b *button) scale() float64 {
	return 1 + 0.08*b.pulse
}
