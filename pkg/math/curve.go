package math

import "sort"

// Keyframe is one control point of a Curve. Tangents are slopes in
// value-per-time units.
type Keyframe struct {
	Time       float32
	Value      float32
	InTangent  float32
	OutTangent float32
}

// Curve is a piecewise cubic Hermite curve used to reshape normalized
// heights. A Curve is immutable after construction and safe to evaluate from
// any goroutine.
type Curve struct {
	keys []Keyframe
}

// NewCurve builds a curve from keys, sorted by time. The keys are copied.
func NewCurve(keys ...Keyframe) Curve {
	k := make([]Keyframe, len(keys))
	copy(k, keys)
	sort.SliceStable(k, func(i, j int) bool { return k[i].Time < k[j].Time })
	return Curve{keys: k}
}

// LinearCurve returns the identity mapping on [0, 1].
func LinearCurve() Curve {
	return NewCurve(
		Keyframe{Time: 0, Value: 0, InTangent: 1, OutTangent: 1},
		Keyframe{Time: 1, Value: 1, InTangent: 1, OutTangent: 1},
	)
}

// Keys returns a copy of the curve's keyframes.
func (c Curve) Keys() []Keyframe {
	k := make([]Keyframe, len(c.keys))
	copy(k, c.keys)
	return k
}

// Evaluate returns the curve value at t. Outside the key range the first or
// last value is held. A curve without keys is the identity.
func (c Curve) Evaluate(t float32) float32 {
	n := len(c.keys)
	switch {
	case n == 0:
		return t
	case n == 1 || t <= c.keys[0].Time:
		return c.keys[0].Value
	case t >= c.keys[n-1].Time:
		return c.keys[n-1].Value
	}

	// first key strictly after t; t lies inside (keys[i-1], keys[i]]
	i := sort.Search(n, func(i int) bool { return c.keys[i].Time > t })
	if i >= n {
		i = n - 1
	}
	k0, k1 := c.keys[i-1], c.keys[i]
	dt := k1.Time - k0.Time
	if dt <= 0 {
		return k1.Value
	}

	s := (t - k0.Time) / dt
	s2 := s * s
	s3 := s2 * s
	h00 := 2*s3 - 3*s2 + 1
	h10 := s3 - 2*s2 + s
	h01 := -2*s3 + 3*s2
	h11 := s3 - s2

	return h00*k0.Value + h10*dt*k0.OutTangent + h01*k1.Value + h11*dt*k1.InTangent
}
