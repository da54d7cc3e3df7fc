package math

// Clamp limits x to [lo, hi].
func Clamp(x, lo, hi float32) float32 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Clamp01 limits x to [0, 1].
func Clamp01(x float32) float32 {
	return Clamp(x, 0, 1)
}

// Lerp interpolates between a and b. t is clamped to [0, 1].
func Lerp(a, b, t float32) float32 {
	t = Clamp01(t)
	return a + (b-a)*t
}

// InverseLerp returns where v lies between a and b, clamped to [0, 1].
// A degenerate range returns 0.
func InverseLerp(a, b, v float32) float32 {
	if a == b {
		return 0
	}
	return Clamp01((v - a) / (b - a))
}
