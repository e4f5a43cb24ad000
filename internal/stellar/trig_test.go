package stellar

import (
	"math"
	"testing"
)

func TestTrigTable_Accuracy(t *testing.T) {
	table := NewTrigTable(4096)

	for i := 0; i < 1000; i++ {
		x := float64(i) * 0.01
		if diff := math.Abs(table.Sin(x) - math.Sin(x)); diff > 1e-5 {
			t.Errorf("Sin(%v) error %v too large", x, diff)
		}
		if diff := math.Abs(table.Cos(x) - math.Cos(x)); diff > 1e-5 {
			t.Errorf("Cos(%v) error %v too large", x, diff)
		}
	}
}

func TestTrigTable_NegativeAngles(t *testing.T) {
	table := NewTrigTable(4096)

	for _, x := range []float64{-0.5, -math.Pi, -7.3, -100} {
		if diff := math.Abs(table.Sin(x) - math.Sin(x)); diff > 1e-5 {
			t.Errorf("Sin(%v) error %v too large", x, diff)
		}
	}
}

func TestTrigTable_SinCos(t *testing.T) {
	table := NewTrigTable(4096)

	s, c := table.SinCos(1.3)
	if math.Abs(s-table.Sin(1.3)) > 1e-12 || math.Abs(c-table.Cos(1.3)) > 1e-12 {
		t.Error("SinCos disagrees with separate Sin/Cos lookups")
	}
}

func TestSphericalDir(t *testing.T) {
	tests := []struct {
		name       string
		theta, phi float64
		expected   Vec3
	}{
		{"north pole", 0, 0, Vec3{0, 1, 0}},
		{"south pole", math.Pi, 0, Vec3{0, -1, 0}},
		{"equator x", math.Pi / 2, 0, Vec3{1, 0, 0}},
		{"equator z", math.Pi / 2, math.Pi / 2, Vec3{0, 0, 1}},
	}

	table := NewTrigTable(4096)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := table.SphericalDir(tt.theta, tt.phi)
			if got.Sub(tt.expected).Length() > 1e-4 {
				t.Errorf("SphericalDir = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestSphericalDir_UnitLength(t *testing.T) {
	table := NewTrigTable(4096)

	for i := 0; i < 100; i++ {
		theta := float64(i) * 0.07
		phi := float64(i) * 0.13
		if l := table.SphericalDir(theta, phi).Length(); math.Abs(l-1) > 1e-4 {
			t.Errorf("direction length %v at theta=%v phi=%v", l, theta, phi)
		}
	}
}

func BenchmarkTrigTable_SinCos(b *testing.B) {
	table := NewTrigTable(4096)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		table.SinCos(float64(i) * 0.001)
	}
}

func BenchmarkMathSinCos(b *testing.B) {
	for i := 0; i < b.N; i++ {
		math.Sincos(float64(i) * 0.001)
	}
}
