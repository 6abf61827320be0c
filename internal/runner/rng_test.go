package runner

import "testing"

func TestSimpleRNGDeterminism(t *testing.T) {
	r1 := NewSimpleRNG(42)
	r2 := NewSimpleRNG(42)

	for i := range 10 {
		if v1, v2 := r1.Next(), r2.Next(); v1 != v2 {
			t.Fatalf("draw %d: same seed produced %d vs %d", i, v1, v2)
		}
	}

	r3 := NewSimpleRNG(43)
	if NewSimpleRNG(42).Next() == r3.Next() {
		t.Error("different seeds should diverge on the first draw")
	}
}

func TestSimpleRNGZeroSeed(t *testing.T) {
	r := NewSimpleRNG(0)
	if r.state == 0 {
		t.Error("zero seed must be remapped so the LCG does not stick at zero")
	}
}

func TestSimpleRNGIntn(t *testing.T) {
	r := NewSimpleRNG(7)
	for range 1000 {
		v := r.Intn(7)
		if v < 0 || v >= 7 {
			t.Fatalf("Intn(7) = %d out of range", v)
		}
	}

	if r.Intn(0) != 0 {
		t.Error("Intn(0) should return 0")
	}
	if r.Intn(-3) != 0 {
		t.Error("Intn of a negative bound should return 0")
	}
}

func TestSimpleRNGFloatRange(t *testing.T) {
	r := NewSimpleRNG(9)
	for range 1000 {
		v := r.FloatRange(10, 20)
		if v < 10 || v >= 20 {
			t.Fatalf("FloatRange(10, 20) = %f out of range", v)
		}
	}

	if v := r.FloatRange(5, 5); v != 5 {
		t.Errorf("degenerate range should return its bound, got %f", v)
	}
}

func TestSimpleRNGChance(t *testing.T) {
	r := NewSimpleRNG(11)

	for range 100 {
		if r.Chance(0) {
			t.Fatal("Chance(0) should never hit")
		}
	}

	hits := 0
	const draws = 10000
	for range draws {
		if r.Chance(0.3) {
			hits++
		}
	}
	frac := float64(hits) / draws
	if frac < 0.2 || frac > 0.4 {
		t.Errorf("Chance(0.3) hit %.2f of draws, expected about 0.3", frac)
	}
}
