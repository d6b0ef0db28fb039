package compositor

import (
	"math"
	"testing"
)

func TestRectXYWH(t *testing.T) {
	r := RectXYWH(10, 20, 30, 40)
	want := Rect{Left: 10, Top: 20, Right: 40, Bottom: 60}
	if r != want {
		t.Errorf("RectXYWH(10, 20, 30, 40) = %v, want %v", r, want)
	}
	if r.Width() != 30 || r.Height() != 40 {
		t.Errorf("size = %vx%v, want 30x40", r.Width(), r.Height())
	}
}

func TestRectIsEmpty(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		name string
		r    Rect
		want bool
	}{
		{"zero", Rect{}, true},
		{"unit", RectXYWH(0, 0, 1, 1), false},
		{"zero width", RectXYWH(5, 5, 0, 10), true},
		{"inverted", Rect{Left: 10, Top: 0, Right: 0, Bottom: 10}, true},
		{"NaN edge", Rect{Left: nan, Top: 0, Right: 10, Bottom: 10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.IsEmpty(); got != tt.want {
				t.Errorf("%v.IsEmpty() = %v, want %v", tt.r, got, tt.want)
			}
		})
	}
}

func TestRectIntersects(t *testing.T) {
	base := RectXYWH(0, 0, 100, 100)
	tests := []struct {
		name string
		o    Rect
		want bool
	}{
		{"same", base, true},
		{"overlap", RectXYWH(50, 50, 100, 100), true},
		{"contained", RectXYWH(10, 10, 10, 10), true},
		{"touching edge", RectXYWH(100, 0, 100, 100), false},
		{"disjoint", RectXYWH(500, 500, 10, 10), false},
		{"empty inside", RectXYWH(10, 10, 0, 0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := base.Intersects(tt.o); got != tt.want {
				t.Errorf("%v.Intersects(%v) = %v, want %v", base, tt.o, got, tt.want)
			}
			if got := tt.o.Intersects(base); got != tt.want {
				t.Errorf("%v.Intersects(%v) = %v, want %v", tt.o, base, got, tt.want)
			}
		})
	}
}

func TestRectString(t *testing.T) {
	got := RectXYWH(1, 2, 3, 4).String()
	if want := "(1.00, 2.00)-(4.00, 6.00)"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}
