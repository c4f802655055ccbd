package particles

import (
	"math/rand/v2"
	"testing"

	"pgregory.net/rapid"
)

func seeded(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed))
}

func TestTrailSpawnDefaults(t *testing.T) {
	tr := NewTrail(0, seeded(1))
	if tr.Cap() != DefaultTrailCap {
		t.Fatalf("expected default cap %d, got %d", DefaultTrailCap, tr.Cap())
	}
	tr.Spawn(10, 5)
	p := tr.Particles()[0]
	if p.Opacity != 0.8 {
		t.Errorf("expected initial opacity 0.8, got %f", p.Opacity)
	}
	if p.Life < 30 || p.Life >= 50 {
		t.Errorf("life %d outside [30, 50)", p.Life)
	}
	if p.Size < 2 || p.Size >= 6 {
		t.Errorf("size %f outside [2, 6)", p.Size)
	}
	if p.VX <= -1 || p.VX >= 1 || p.VY <= -1 || p.VY >= 1 {
		t.Errorf("velocity (%f, %f) outside (-1, 1)", p.VX, p.VY)
	}
}

func TestTrailKeepsNewest(t *testing.T) {
	tr := NewTrail(3, seeded(2))
	for i := 0; i < 5; i++ {
		tr.Spawn(float64(i), 0)
	}
	ps := tr.Particles()
	if len(ps) != 3 {
		t.Fatalf("expected 3 particles, got %d", len(ps))
	}
	for i, want := range []float64{2, 3, 4} {
		if ps[i].X != want {
			t.Errorf("particle %d: expected x=%v, got %v", i, want, ps[i].X)
		}
	}
}

func TestTrailEventuallyEmpties(t *testing.T) {
	tr := NewTrail(16, seeded(3))
	for i := 0; i < 16; i++ {
		tr.Spawn(0, 0)
	}
	for i := 0; i < 50; i++ {
		tr.Tick()
	}
	if tr.Len() != 0 {
		t.Errorf("expected every particle to expire within 50 ticks, %d left", tr.Len())
	}
}

func TestTrailClear(t *testing.T) {
	tr := NewTrail(4, seeded(4))
	tr.Spawn(1, 1)
	tr.Clear()
	if tr.Len() != 0 {
		t.Error("expected empty trail after Clear")
	}
}

func TestTrailStaysBoundedAndDecays(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		limit := rapid.IntRange(1, 32).Draw(t, "cap")
		tr := NewTrail(limit, seeded(rapid.Uint64().Draw(t, "seed")))
		events := rapid.SliceOf(rapid.Bool()).Draw(t, "events")

		for _, spawn := range events {
			if spawn {
				tr.Spawn(rapid.Float64Range(0, 200).Draw(t, "x"), rapid.Float64Range(0, 60).Draw(t, "y"))
				if tr.Len() > limit {
					t.Fatalf("trail grew to %d over cap %d", tr.Len(), limit)
				}
				continue
			}

			before := tr.Particles()
			tr.Tick()
			after := tr.Particles()
			if len(after) > len(before) {
				t.Fatalf("tick grew the trail %d -> %d", len(before), len(after))
			}
			// Survivors keep their order; match them up by walking forward.
			j := 0
			for _, a := range after {
				for j < len(before) && before[j].ID != a.ID {
					j++
				}
				if j == len(before) {
					t.Fatal("survivor not found among previous particles")
				}
				b := before[j]
				if a.Life >= b.Life || a.Opacity >= b.Opacity || a.Size >= b.Size {
					t.Fatalf("particle did not decay: %+v -> %+v", b, a)
				}
				if !a.Alive() {
					t.Fatalf("dead particle kept: %+v", a)
				}
				j++
			}
		}
	})
}

func TestAmbientWrapsInsideScreen(t *testing.T) {
	for _, dir := range []Direction{Falling, Rising} {
		a := NewAmbient(dir, 30, 40, 10, seeded(5))
		if a.Len() != 30 {
			t.Fatalf("expected 30 drops, got %d", a.Len())
		}
		for i := 0; i < 2000; i++ {
			a.Tick()
			for _, d := range a.Drops() {
				if d.Col < 0 || d.Col >= 40 || d.Row < 0 || d.Row >= 10 {
					t.Fatalf("%s drop escaped: %+v", dir, d)
				}
			}
		}
	}
}

func TestAmbientResize(t *testing.T) {
	a := NewAmbient(Falling, 20, 100, 50, seeded(6))
	a.Resize(10, 5)
	for _, d := range a.Drops() {
		if d.Col >= 10 || d.Row >= 5 {
			t.Fatalf("drop outside resized area: %+v", d)
		}
	}
}

func TestParseDirection(t *testing.T) {
	if ParseDirection("rising") != Rising || ParseDirection("falling") != Falling || ParseDirection("?") != Falling {
		t.Error("unexpected direction parsing")
	}
	if Rising.String() != "rising" || Falling.String() != "falling" {
		t.Error("unexpected direction names")
	}
}
