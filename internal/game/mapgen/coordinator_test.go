package mapgen

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/midgard-terrain/internal/engine/terrain"
	"github.com/Faultbox/midgard-terrain/pkg/math"
	"github.com/Faultbox/midgard-terrain/pkg/noise"
)

func testSettings() Settings {
	return Settings{
		Terrain: terrain.Settings{
			Noise: noise.Params{
				Seed: 11, Scale: 10, Octaves: 3, Persistence: 0.5, Lacunarity: 2,
				Mode: noise.NormalizeGlobal,
			},
			ChunkSize: 17,
			Regions:   terrain.DefaultRegions(),
		},
		HeightMultiplier: 10,
		HeightCurve:      math.LinearCurve(),
		QueueCapacity:    64,
	}
}

func TestRequestHeightDataDeliversOnDrain(t *testing.T) {
	c := NewCoordinator(testSettings(), nil)
	defer c.Close()

	var got *terrain.HeightMap
	ticket := c.RequestHeightData(math.Vec2{X: 16}, func(hm *terrain.HeightMap) { got = hm })
	c.Wait()

	if s := ticket.State(); s != StateQueued {
		t.Fatalf("State() after Wait = %v, want queued", s)
	}
	if got != nil {
		t.Fatal("callback ran before Drain")
	}
	if n := c.Drain(); n != 1 {
		t.Fatalf("Drain() = %d, want 1", n)
	}
	if got == nil || got.Size != 19 {
		t.Fatalf("callback height map = %v, want size 19", got)
	}
	if s := ticket.State(); s != StateCompleted {
		t.Errorf("State() after Drain = %v, want completed", s)
	}

	want := terrain.Build(math.Vec2{X: 16}, testSettings().Terrain)
	for i := range want.Heights {
		if got.Heights[i] != want.Heights[i] {
			t.Fatalf("Heights[%d] = %v, want %v", i, got.Heights[i], want.Heights[i])
		}
	}
}

func TestDrainEmpty(t *testing.T) {
	c := NewCoordinator(testSettings(), nil)
	defer c.Close()
	if n := c.Drain(); n != 0 {
		t.Errorf("Drain() = %d, want 0", n)
	}
}

func TestMeshRequestedFromHeightCallback(t *testing.T) {
	c := NewCoordinator(testSettings(), nil)
	defer c.Close()

	var mesh *terrain.Mesh
	c.RequestHeightData(math.Vec2{}, func(hm *terrain.HeightMap) {
		c.RequestMeshData(hm, 1, func(m *terrain.Mesh) { mesh = m })
	})

	c.Wait()
	c.Drain()
	if mesh != nil {
		t.Fatal("mesh delivered in the same drain as its height map")
	}
	c.Wait()
	if n := c.Drain(); n != 1 {
		t.Fatalf("second Drain() = %d, want 1", n)
	}
	if mesh == nil || mesh.LOD != 1 {
		t.Fatalf("mesh = %v, want LOD 1", mesh)
	}
	if want := terrain.VerticesPerSide(17, 1); len(mesh.Vertices) != want*want {
		t.Errorf("len(Vertices) = %d, want %d", len(mesh.Vertices), want*want)
	}
}

func TestDrainOnlyRunsResultsPresentAtStart(t *testing.T) {
	c := NewCoordinator(testSettings(), nil)
	defer c.Close()

	ran := 0
	c.RequestHeightData(math.Vec2{}, func(*terrain.HeightMap) {
		ran++
		c.RequestHeightData(math.Vec2{X: 1}, func(*terrain.HeightMap) { ran++ })
		c.Wait() // the second result is queued before this drain finishes
	})
	c.Wait()

	if n := c.Drain(); n != 1 || ran != 1 {
		t.Fatalf("first Drain() = %d (ran %d), want 1 (ran 1)", n, ran)
	}
	if n := c.Drain(); n != 1 || ran != 2 {
		t.Fatalf("second Drain() = %d (ran %d), want 1 (ran 2)", n, ran)
	}
}

func TestWorkerPanicIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	c := NewCoordinator(testSettings(), zap.New(core))
	defer c.Close()

	build := c.buildHeight
	c.buildHeight = func(center math.Vec2) *terrain.HeightMap {
		if center.X < 0 {
			panic("boom")
		}
		return build(center)
	}

	delivered := 0
	cb := func(*terrain.HeightMap) { delivered++ }
	ok1 := c.RequestHeightData(math.Vec2{X: 1}, cb)
	bad := c.RequestHeightData(math.Vec2{X: -1}, cb)
	ok2 := c.RequestHeightData(math.Vec2{X: 2}, cb)
	c.Wait()

	if n := c.Drain(); n != 2 {
		t.Errorf("Drain() = %d, want 2", n)
	}
	if delivered != 2 {
		t.Errorf("delivered = %d, want 2", delivered)
	}
	if bad.State() != StateFailed {
		t.Errorf("failed ticket State() = %v, want failed", bad.State())
	}
	if ok1.State() != StateCompleted || ok2.State() != StateCompleted {
		t.Errorf("healthy tickets = %v, %v, want completed", ok1.State(), ok2.State())
	}
	if n := logs.FilterMessage("terrain worker panicked").Len(); n != 1 {
		t.Errorf("logged %d worker panics, want 1", n)
	}

	s := c.Stats()
	if s.Requested != 3 || s.Completed != 2 || s.Failed != 1 || s.Pending() != 0 {
		t.Errorf("Stats() = %+v", s)
	}
}

func TestCallbackPanicIsolated(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	c := NewCoordinator(testSettings(), zap.New(core))
	defer c.Close()

	ran := 0
	first := c.RequestHeightData(math.Vec2{}, func(*terrain.HeightMap) { panic("callback") })
	c.Wait()
	second := c.RequestHeightData(math.Vec2{}, func(*terrain.HeightMap) { ran++ })
	c.Wait()

	if n := c.Drain(); n != 2 {
		t.Fatalf("Drain() = %d, want 2", n)
	}
	if ran != 1 {
		t.Errorf("second callback ran %d times, want 1", ran)
	}
	if first.State() != StateFailed || second.State() != StateCompleted {
		t.Errorf("states = %v, %v, want failed, completed", first.State(), second.State())
	}
	if logs.FilterMessage("terrain callback panicked").Len() != 1 {
		t.Error("callback panic was not logged")
	}
}

func TestIdenticalRequestsNotCoalesced(t *testing.T) {
	c := NewCoordinator(testSettings(), nil)
	defer c.Close()

	var maps []*terrain.HeightMap
	for range 3 {
		c.RequestHeightData(math.Vec2{X: 5, Y: 5}, func(hm *terrain.HeightMap) { maps = append(maps, hm) })
	}
	c.Wait()
	c.Drain()

	if len(maps) != 3 {
		t.Fatalf("delivered %d results, want 3", len(maps))
	}
	if maps[0] == maps[1] {
		t.Error("identical requests shared a result")
	}
}

func TestManyConcurrentRequests(t *testing.T) {
	s := testSettings()
	s.QueueCapacity = 100
	c := NewCoordinator(s, nil)
	defer c.Close()

	seen := make(map[int]bool)
	for i := range 100 {
		c.RequestHeightData(math.Vec2{X: float32(i * 16)}, func(*terrain.HeightMap) { seen[i] = true })
	}
	c.Wait()
	if n := c.Drain(); n != 100 {
		t.Errorf("Drain() = %d, want 100", n)
	}
	if len(seen) != 100 {
		t.Errorf("saw %d distinct callbacks, want 100", len(seen))
	}
}

func TestRequestAfterClose(t *testing.T) {
	c := NewCoordinator(testSettings(), nil)
	c.Close()

	ticket := c.RequestHeightData(math.Vec2{}, func(*terrain.HeightMap) {
		t.Error("callback ran after Close")
	})
	if ticket.State() != StateFailed {
		t.Errorf("State() = %v, want failed", ticket.State())
	}
	if n := c.Drain(); n != 0 {
		t.Errorf("Drain() = %d, want 0", n)
	}
}

func TestCloseWithFullQueue(t *testing.T) {
	s := testSettings()
	s.QueueCapacity = 1
	c := NewCoordinator(s, nil)
	for range 4 {
		c.RequestHeightData(math.Vec2{}, func(*terrain.HeightMap) {})
	}
	c.Close() // must not deadlock on workers blocked sending
}
