// Package lighting provides lighting utilities for 3D rendering.
package lighting

import "math"

// Sun is a directional light.
type Sun struct {
	Azimuth   float32 // degrees around Y, 0 points at +Z
	Elevation float32 // degrees above the horizon
	Ambient   [3]float32
	Diffuse   [3]float32
}

// DefaultSun is a late-morning sun with a soft ambient term.
func DefaultSun() Sun {
	return Sun{
		Azimuth:   135,
		Elevation: 50,
		Ambient:   [3]float32{0.35, 0.35, 0.4},
		Diffuse:   [3]float32{0.9, 0.88, 0.8},
	}
}

// Direction returns the unit vector pointing towards the sun.
func (s Sun) Direction() [3]float32 {
	return SunDirection(s.Azimuth, s.Elevation)
}

// SunDirection converts azimuth and elevation angles in degrees to a unit
// vector pointing towards the sun.
func SunDirection(azimuth, elevation float32) [3]float32 {
	az := float64(azimuth) * math.Pi / 180.0
	el := float64(elevation) * math.Pi / 180.0

	x := float32(math.Cos(el) * math.Sin(az))
	y := float32(math.Sin(el))
	z := float32(math.Cos(el) * math.Cos(az))

	return [3]float32{x, y, z}
}
