package fx

import "math"

type Point struct {
	X, Y float64
}

// Cubic is one cubic Bezier segment continuing from the previous end point.
type Cubic struct {
	C1, C2, End Point
}

// Outline is a closed heart made of four cubic segments.
type Outline struct {
	Start  Point
	Curves [4]Cubic
}

// HeartOutline returns the heart for a particle of the given size, centred
// horizontally on the origin with its notch just below it.
func HeartOutline(s float64) Outline {
	t := s * 0.3
	return Outline{
		Start: Point{0, t},
		Curves: [4]Cubic{
			{C1: Point{0, 0}, C2: Point{-s, 0}, End: Point{-s, t}},
			{C1: Point{-s, s * 0.8}, C2: Point{0, s * 0.95}, End: Point{0, s * 1.2}},
			{C1: Point{0, s * 0.95}, C2: Point{s, s * 0.8}, End: Point{s, t}},
			{C1: Point{s, 0}, C2: Point{0, 0}, End: Point{0, t}},
		},
	}
}

// Transform rotates the outline about the origin, moves it to (x, y) and
// scales the result. Bezier curves stay Bezier curves under this mapping.
func (o Outline) Transform(rotation, x, y, scale float64) Outline {
	sin, cos := math.Sincos(rotation)
	m := func(p Point) Point {
		return Point{
			X: (p.X*cos - p.Y*sin + x) * scale,
			Y: (p.X*sin + p.Y*cos + y) * scale,
		}
	}
	out := Outline{Start: m(o.Start)}
	for i, c := range o.Curves {
		out.Curves[i] = Cubic{C1: m(c.C1), C2: m(c.C2), End: m(c.End)}
	}
	return out
}
