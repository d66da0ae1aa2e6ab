package collision

// Point is a position in board coordinates (terminal cells for the TUI)
type Point struct {
	X int
	Y int
}

// Sub returns the vector from q to p.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Rect is an axis-aligned bounding box
type Rect struct {
	X int
	Y int
	W int
	H int
}

// Translate returns the rect shifted by d.
func (r Rect) Translate(d Point) Rect {
	r.X += d.X
	r.Y += d.Y
	return r
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

// center2 returns the rect's centre in doubled coordinates so that centres of
// odd-sized rects stay integral.
func (r Rect) center2() Point {
	return Point{X: 2*r.X + r.W, Y: 2*r.Y + r.H}
}

// CenteredAt returns a rect of the same size whose centre is the centre of other.
func (r Rect) CenteredAt(other Rect) Rect {
	c := other.center2()
	return Rect{X: (c.X - r.W) / 2, Y: (c.Y - r.H) / 2, W: r.W, H: r.H}
}

// DistanceSquared returns the squared distance between the centres of a and b,
// measured in doubled coordinates (i.e. four times the true squared distance).
func DistanceSquared(a, b Rect) int {
	d := a.center2().Sub(b.center2())
	return d.X*d.X + d.Y*d.Y
}
