package terrain

import (
	"fmt"
	"image/color"
	"sort"
	"strconv"
	"strings"
)

// Region assigns a colour to every height at or below Height.
type Region struct {
	Name   string
	Height float32
	Color  color.RGBA
}

// SortRegions returns a copy of regions ordered by ascending threshold.
// Regions with equal thresholds keep their relative order. The boolean
// reports whether the input was already ordered.
func SortRegions(regions []Region) ([]Region, bool) {
	sorted := make([]Region, len(regions))
	copy(sorted, regions)
	ordered := sort.SliceIsSorted(sorted, func(i, j int) bool { return sorted[i].Height < sorted[j].Height })
	if !ordered {
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Height < sorted[j].Height })
	}
	return sorted, ordered
}

// Classify returns the colour of the first region whose threshold is at
// least h. regions must be sorted ascending. Heights above every threshold
// take the last region; an empty list yields opaque black.
func Classify(regions []Region, h float32) color.RGBA {
	if len(regions) == 0 {
		return color.RGBA{A: 255}
	}
	for _, r := range regions {
		if h <= r.Height {
			return r.Color
		}
	}
	return regions[len(regions)-1].Color
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" (the leading # is optional).
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 && len(s) != 8 {
		return color.RGBA{}, fmt.Errorf("parse color %q: want 6 or 8 hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xff
	}
	return color.RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// HexColor formats c as "#RRGGBB", or "#RRGGBBAA" when it is not opaque.
func HexColor(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// DefaultRegions is the island palette used when no regions are configured.
func DefaultRegions() []Region {
	return []Region{
		{Name: "Deep Water", Height: 0.3, Color: color.RGBA{0x32, 0x63, 0xc3, 0xff}},
		{Name: "Shallow Water", Height: 0.4, Color: color.RGBA{0x36, 0x66, 0xc6, 0xff}},
		{Name: "Sand", Height: 0.45, Color: color.RGBA{0xd2, 0xd0, 0x7d, 0xff}},
		{Name: "Grass", Height: 0.55, Color: color.RGBA{0x56, 0x96, 0x1a, 0xff}},
		{Name: "Grass 2", Height: 0.6, Color: color.RGBA{0x3e, 0x6b, 0x12, 0xff}},
		{Name: "Rock", Height: 0.7, Color: color.RGBA{0x5a, 0x45, 0x3c, 0xff}},
		{Name: "Rock 2", Height: 0.9, Color: color.RGBA{0x4b, 0x3c, 0x35, 0xff}},
		{Name: "Snow", Height: 1, Color: color.RGBA{0xff, 0xff, 0xff, 0xff}},
	}
}
