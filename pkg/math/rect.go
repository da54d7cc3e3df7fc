package math

// Rect is an axis-aligned rectangle on the terrain plane.
type Rect struct {
	Min, Max Vec2
}

// RectFromCenter returns a square of side size centred on c.
func RectFromCenter(c Vec2, size float32) Rect {
	h := size / 2
	return Rect{
		Min: Vec2{c.X - h, c.Y - h},
		Max: Vec2{c.X + h, c.Y + h},
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// SqrDistance returns the squared distance from p to the nearest point of r.
// Points inside r are at distance zero.
func (r Rect) SqrDistance(p Vec2) float32 {
	dx := max(r.Min.X-p.X, 0, p.X-r.Max.X)
	dy := max(r.Min.Y-p.Y, 0, p.Y-r.Max.Y)
	return dx*dx + dy*dy
}
