package math3d

import (
	"math"
	"testing"
)

func almostEqual(a, b Vec3, eps float64) bool {
	return math.Abs(a.X-b.X) < eps &&
		math.Abs(a.Y-b.Y) < eps &&
		math.Abs(a.Z-b.Z) < eps
}

func TestCross(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec3
		expected Vec3
	}{
		{"x cross y", V3(1, 0, 0), V3(0, 1, 0), V3(0, 0, 1)},
		{"y cross z", V3(0, 1, 0), V3(0, 0, 1), V3(1, 0, 0)},
		{"z cross x", V3(0, 0, 1), V3(1, 0, 0), V3(0, 1, 0)},
		{"parallel", V3(2, 2, 2), V3(4, 4, 4), V3(0, 0, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := tc.a.Cross(tc.b)
			if !almostEqual(got, tc.expected, 1e-12) {
				t.Errorf("Cross(%v, %v) = %v, want %v", tc.a, tc.b, got, tc.expected)
			}
		})
	}
}

func TestCrossAntiCommutative(t *testing.T) {
	a := V3(1.5, -2, 0.25)
	b := V3(-3, 0.5, 7)
	if !almostEqual(a.Cross(b), b.Cross(a).Negate(), 1e-12) {
		t.Error("a×b should equal -(b×a)")
	}
}

func TestDot(t *testing.T) {
	if got := V3(1, 2, 3).Dot(V3(4, -5, 6)); got != 12 {
		t.Errorf("Dot = %v, want 12", got)
	}
	if got := V3(1, 0, 0).Dot(V3(0, 1, 0)); got != 0 {
		t.Errorf("perpendicular Dot = %v, want 0", got)
	}
}

func TestRotateSingleAxis(t *testing.T) {
	quarter := math.Pi / 2

	tests := []struct {
		name     string
		got      Vec3
		expected Vec3
	}{
		{"x axis", V3(0, 1, 0).RotateX(quarter), V3(0, 0, 1)},
		{"y axis", V3(1, 0, 0).RotateY(quarter), V3(0, 0, 1)},
		{"z axis", V3(1, 0, 0).RotateZ(quarter), V3(0, 1, 0)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if !almostEqual(tc.got, tc.expected, 1e-12) {
				t.Errorf("got %v, want %v", tc.got, tc.expected)
			}
		})
	}
}

func TestRotatePreservesLength(t *testing.T) {
	v := V3(1.2, -3.4, 0.7)
	r := v.Rotate(V3(0.3, 1.1, -2.5))
	if math.Abs(v.Len()-r.Len()) > 1e-12 {
		t.Errorf("rotation changed length: %v -> %v", v.Len(), r.Len())
	}
}

func TestRotateOrderIsXYZ(t *testing.T) {
	// Rotation order must be X, then Y, then Z. Verify by composing
	// the single-axis rotations by hand and comparing.
	v := V3(1, 2, 3)
	angles := V3(0.4, -0.9, 1.3)

	want := v.RotateX(angles.X).RotateY(angles.Y).RotateZ(angles.Z)
	got := v.Rotate(angles)
	if got != want {
		t.Errorf("Rotate = %v, want X->Y->Z composition %v", got, want)
	}

	// The reversed order gives a different result for these angles,
	// so the test would catch an order swap.
	reversed := v.RotateZ(angles.Z).RotateY(angles.Y).RotateX(angles.X)
	if almostEqual(got, reversed, 1e-9) {
		t.Fatal("test angles do not distinguish rotation order")
	}
}

func TestNormalize(t *testing.T) {
	v := V3(3, 4, 0).Normalize()
	if !almostEqual(v, V3(0.6, 0.8, 0), 1e-12) {
		t.Errorf("Normalize = %v, want (0.6, 0.8, 0)", v)
	}
	if got := Zero3().Normalize(); got != Zero3() {
		t.Errorf("Normalize of zero vector = %v, want zero", got)
	}
}

func TestIsFinite(t *testing.T) {
	if !V3(1, 2, 3).IsFinite() {
		t.Error("finite vector reported as non-finite")
	}
	if V3(math.NaN(), 0, 0).IsFinite() {
		t.Error("NaN component not detected")
	}
	if V3(0, math.Inf(1), 0).IsFinite() {
		t.Error("Inf component not detected")
	}
}

func TestVec2Cross(t *testing.T) {
	if got := V2(1, 0).Cross(V2(0, 1)); got != 1 {
		t.Errorf("Cross = %v, want 1", got)
	}
	if got := V2(0, 1).Cross(V2(1, 0)); got != -1 {
		t.Errorf("Cross = %v, want -1", got)
	}
}

func TestVec2Lerp(t *testing.T) {
	a, b := V2(0, 0), V2(10, 20)
	mid := a.Lerp(b, 0.5)
	if mid != V2(5, 10) {
		t.Errorf("Lerp midpoint = %v, want (5, 10)", mid)
	}
}

func BenchmarkVec3Rotate(b *testing.B) {
	v := V3(1, 2, 3)
	angles := V3(0.1, 0.2, 0.3)

	for b.Loop() {
		_ = v.Rotate(angles)
	}
}

func BenchmarkVec3Cross(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Cross(v2)
	}
}

func BenchmarkVec3Normalize(b *testing.B) {
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = v.Normalize()
	}
}
