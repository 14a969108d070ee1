package fx

import "image/color"

// Kind selects the shape a particle is drawn with.
type Kind uint8

const (
	KindHeart Kind = iota
	KindDot
)

func (k Kind) String() string {
	switch k {
	case KindHeart:
		return "heart"
	case KindDot:
		return "dot"
	}
	return "unknown"
}

// Particle is one drifting sprite. Radius, Alpha, Color and Kind are fixed at
// spawn; position and rotation change every step.
type Particle struct {
	X, Y     float64
	VX, VY   float64
	Radius   float64
	Rotation float64
	Spin     float64
	Alpha    float64
	Color    color.NRGBA
	Kind     Kind
}

// Palette holds the translucent blues particles are tinted with.
var Palette = []color.NRGBA{
	{R: 58, G: 160, B: 255, A: 230},
	{R: 106, G: 214, B: 255, A: 230},
	{R: 234, G: 242, B: 255, A: 166},
}

// Glow is the soft shadow drawn under every particle.
var Glow = color.NRGBA{R: 58, G: 160, B: 255, A: 56}

// heartChance is the probability a new particle is a heart.
const heartChance = 0.55
