package match

import "github.com/vovakirdan/tui-pong/internal/core"

// CardinalPoints are the extreme points of a ball.
type CardinalPoints struct {
	N, S, W, E core.Vec2
}

// Edges are the bounding coordinates of a shape.
// North/South are y values, West/East are x values.
type Edges struct {
	North, South, West, East float64
}

// Facing describes the paddle edge that looks at the playfield center.
type Facing struct {
	X      float64
	Mid    core.Vec2
	Top    core.Vec2
	Bottom core.Vec2
}

// BallPoints returns the ball's north, south, west and east extreme points.
func BallPoints(b Ball) CardinalPoints {
	c, r := b.Pos, b.Radius
	return CardinalPoints{
		N: core.Vec2{X: c.X, Y: c.Y - r},
		S: core.Vec2{X: c.X, Y: c.Y + r},
		W: core.Vec2{X: c.X - r, Y: c.Y},
		E: core.Vec2{X: c.X + r, Y: c.Y},
	}
}

// BallEdges returns the ball's bounding box.
func BallEdges(b Ball) Edges {
	return Edges{
		North: b.Pos.Y - b.Radius,
		South: b.Pos.Y + b.Radius,
		West:  b.Pos.X - b.Radius,
		East:  b.Pos.X + b.Radius,
	}
}

// PaddleEdges returns the paddle's bounding box.
func PaddleEdges(p Paddle) Edges {
	return Edges{
		North: p.Pos.Y,
		South: p.Pos.Y + p.H,
		West:  p.Pos.X,
		East:  p.Pos.X + p.W,
	}
}

// FacingEdge returns the paddle edge nearest the horizontal center of the world.
func FacingEdge(p Paddle, w World) Facing {
	e := PaddleEdges(p)
	x := e.East
	if p.Pos.X+p.W/2 > w.W/2 {
		x = e.West
	}
	return Facing{
		X:      x,
		Mid:    core.Vec2{X: x, Y: (e.North + e.South) / 2},
		Top:    core.Vec2{X: x, Y: e.North},
		Bottom: core.Vec2{X: x, Y: e.South},
	}
}

// Heading classifies a velocity into one of eight compass directions.
// North is negative y.
type Heading int

const (
	HeadingNone Heading = iota
	HeadingN
	HeadingNE
	HeadingE
	HeadingSE
	HeadingS
	HeadingSW
	HeadingW
	HeadingNW
)

// HeadingOf returns the compass heading of v.
func HeadingOf(v core.Vec2) Heading {
	sx, sy := core.Sign(v.X), core.Sign(v.Y)
	switch {
	case sx == 0 && sy < 0:
		return HeadingN
	case sx > 0 && sy < 0:
		return HeadingNE
	case sx > 0 && sy == 0:
		return HeadingE
	case sx > 0 && sy > 0:
		return HeadingSE
	case sx == 0 && sy > 0:
		return HeadingS
	case sx < 0 && sy > 0:
		return HeadingSW
	case sx < 0 && sy == 0:
		return HeadingW
	case sx < 0 && sy < 0:
		return HeadingNW
	default:
		return HeadingNone
	}
}

// Northish reports whether the heading has an upward component.
func (h Heading) Northish() bool {
	return h == HeadingN || h == HeadingNE || h == HeadingNW
}

// Southish reports whether the heading has a downward component.
func (h Heading) Southish() bool {
	return h == HeadingS || h == HeadingSE || h == HeadingSW
}

// Unit returns the heading as a vector of -1/0/1 components.
func (h Heading) Unit() core.Vec2 {
	switch h {
	case HeadingN:
		return core.Vec2{Y: -1}
	case HeadingNE:
		return core.Vec2{X: 1, Y: -1}
	case HeadingE:
		return core.Vec2{X: 1}
	case HeadingSE:
		return core.Vec2{X: 1, Y: 1}
	case HeadingS:
		return core.Vec2{Y: 1}
	case HeadingSW:
		return core.Vec2{X: -1, Y: 1}
	case HeadingW:
		return core.Vec2{X: -1}
	case HeadingNW:
		return core.Vec2{X: -1, Y: -1}
	default:
		return core.Vec2{}
	}
}

func (h Heading) String() string {
	switch h {
	case HeadingN:
		return "N"
	case HeadingNE:
		return "NE"
	case HeadingE:
		return "E"
	case HeadingSE:
		return "SE"
	case HeadingS:
		return "S"
	case HeadingSW:
		return "SW"
	case HeadingW:
		return "W"
	case HeadingNW:
		return "NW"
	default:
		return "none"
	}
}
