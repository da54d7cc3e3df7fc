package terrain

import (
	"testing"

	"github.com/Faultbox/midgard-terrain/pkg/math"
	"github.com/Faultbox/midgard-terrain/pkg/noise"
)

func testSettings() Settings {
	return Settings{
		Noise: noise.Params{
			Seed:        3,
			Scale:       25,
			Octaves:     4,
			Persistence: 0.5,
			Lacunarity:  2,
			OffsetX:     7,
			Mode:        noise.NormalizeGlobal,
		},
		ChunkSize: 31,
		Regions:   DefaultRegions(),
	}
}

func TestBuildSize(t *testing.T) {
	hm := Build(math.Vec2{}, testSettings())
	if hm.Size != 33 {
		t.Fatalf("Size = %d, want 33", hm.Size)
	}
	if len(hm.Heights) != 33*33 || len(hm.Colors) != 33*33 {
		t.Errorf("len(Heights), len(Colors) = %d, %d, want %d", len(hm.Heights), len(hm.Colors), 33*33)
	}
	if hm.ChunkSize() != 31 {
		t.Errorf("ChunkSize() = %d, want 31", hm.ChunkSize())
	}
}

func TestBuildAnchorsNoiseAtCenterPlusOffset(t *testing.T) {
	s := testSettings()
	center := math.Vec2{X: 120, Y: -240}
	hm := Build(center, s)

	p := s.Noise
	p.OffsetX += 120
	p.OffsetY += -240
	want := noise.Generate(s.BorderedSize(), s.BorderedSize(), p)

	for i := range want.Values {
		if hm.Heights[i] != want.Values[i] {
			t.Fatalf("Heights[%d] = %v, want %v", i, hm.Heights[i], want.Values[i])
		}
	}
}

func TestBuildColorsFollowRegions(t *testing.T) {
	s := testSettings()
	hm := Build(math.Vec2{X: 30}, s)
	for i, h := range hm.Heights {
		if got, want := hm.Colors[i], Classify(s.Regions, h); got != want {
			t.Fatalf("Colors[%d] = %v, want %v for height %v", i, got, want, h)
		}
	}
}

func TestBuildFalloff(t *testing.T) {
	s := testSettings()
	plain := Build(math.Vec2{}, s)
	s.Falloff = true
	island := Build(math.Vec2{}, s)

	for i := range plain.Heights {
		if island.Heights[i] > plain.Heights[i] {
			t.Fatalf("Heights[%d] = %v with falloff, above %v without", i, island.Heights[i], plain.Heights[i])
		}
		if island.Heights[i] < 0 {
			t.Fatalf("Heights[%d] = %v, want >= 0", i, island.Heights[i])
		}
	}
	n := island.Size - 1
	for _, c := range [][2]int{{0, 0}, {n, 0}, {0, n}, {n, n}} {
		if h := island.At(c[0], c[1]); h != 0 {
			t.Errorf("corner %v = %v, want 0", c, h)
		}
	}
}

func TestBuilderSharedAcrossGoroutines(t *testing.T) {
	b := NewBuilder(testSettings())
	want := b.Build(math.Vec2{X: 60, Y: 60})

	done := make(chan *HeightMap, 8)
	for range 8 {
		go func() { done <- b.Build(math.Vec2{X: 60, Y: 60}) }()
	}
	for range 8 {
		got := <-done
		for i := range want.Heights {
			if got.Heights[i] != want.Heights[i] {
				t.Fatalf("concurrent Build() differs at %d", i)
			}
		}
	}
}

func TestBuilderCopiesRegions(t *testing.T) {
	s := testSettings()
	b := NewBuilder(s)
	s.Regions[0].Height = -1
	if b.Settings().Regions[0].Height == -1 {
		t.Error("NewBuilder() kept a reference to the caller's regions")
	}
}

func TestInterpolate(t *testing.T) {
	hm := &HeightMap{Size: 2, Heights: []float32{0, 1, 2, 3}}
	tests := []struct {
		x, y, want float32
	}{
		{0, 0, 0},
		{1, 0, 1},
		{0, 1, 2},
		{0.5, 0.5, 1.5},
		{-4, -4, 0},
		{9, 9, 3},
	}
	for _, tt := range tests {
		if got := hm.Interpolate(tt.x, tt.y); got != tt.want {
			t.Errorf("Interpolate(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
