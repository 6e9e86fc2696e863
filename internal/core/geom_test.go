package core

import (
	"math"
	"testing"
)

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"outside left", 5, 15, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := r.Contains(tc.x, tc.y); got != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, got, tc.expected)
			}
		})
	}
}

func TestVecMoveToward(t *testing.T) {
	tests := []struct {
		name    string
		from    Vec
		to      Vec
		step    float64
		want    Vec
		reached bool
	}{
		{"partial step", Vec{0, 0}, Vec{4, 0}, 1, Vec{1, 0}, false},
		{"exact arrival", Vec{0, 0}, Vec{0, 2}, 2, Vec{0, 2}, true},
		{"overshoot snaps", Vec{1, 1}, Vec{1.5, 1}, 3, Vec{1.5, 1}, true},
		{"already there", Vec{2, 2}, Vec{2, 2}, 1, Vec{2, 2}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, reached := tc.from.MoveToward(tc.to, tc.step)
			if reached != tc.reached {
				t.Errorf("reached = %v, expected %v", reached, tc.reached)
			}
			if math.Abs(got.X-tc.want.X) > 1e-9 || math.Abs(got.Y-tc.want.Y) > 1e-9 {
				t.Errorf("MoveToward = %+v, expected %+v", got, tc.want)
			}
		})
	}
}

func TestVecDist(t *testing.T) {
	if d := (Vec{0, 0}).Dist(Vec{3, 4}); d != 5 {
		t.Errorf("Dist = %f, expected 5", d)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	if ClampF(12, 0, 10) != 10 || ClampF(-1, 0, 10) != 0 || ClampF(4.5, 0, 10) != 4.5 {
		t.Error("ClampF should bound values to [min, max]")
	}
}

func TestMinMaxAbs(t *testing.T) {
	if Min(5, 10) != 5 || Max(5, 10) != 10 {
		t.Error("Min/Max returned wrong values")
	}
	if Abs(-5) != 5 || Abs(0) != 0 {
		t.Error("Abs returned wrong values")
	}
}
