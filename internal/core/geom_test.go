package core

import "testing"

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
		{"outside right", 35, 15, false},
		{"outside top", 15, 5, false},
		{"outside bottom", 15, 30, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}

	cx, cy := r.Center()
	if cx != 15 || cy != 17 {
		t.Errorf("Center() = (%d, %d), expected (15, 17)", cx, cy)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestFitViewportKeepsAspect(t *testing.T) {
	world := Bounds{MinX: 0, MinY: 0, MaxX: 100, MaxY: 200}
	v := FitViewport(world, NewRect(0, 0, 100, 50))

	// 200 world units tall at 2:1 cells fits 50 rows when 1 cell = 2 units wide
	if v.Screen.H != 50 {
		t.Errorf("Screen.H = %d, expected 50", v.Screen.H)
	}
	if v.Screen.W != 50 {
		t.Errorf("Screen.W = %d, expected 50", v.Screen.W)
	}
	if v.Screen.X != 25 {
		t.Errorf("Screen.X = %d, expected 25 (centered)", v.Screen.X)
	}
}

func TestViewportRoundTrip(t *testing.T) {
	world := Bounds{MinX: 40, MinY: 40, MaxX: 640, MaxY: 840}
	v := FitViewport(world, NewRect(10, 2, 60, 40))

	tests := []struct {
		name string
		x, y float64
	}{
		{"top-left", 41, 41},
		{"center", 340, 440},
		{"near bottom-right", 635, 835},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cx, cy, ok := v.ToCell(tc.x, tc.y)
			if !ok {
				t.Fatalf("ToCell(%v, %v) reported outside", tc.x, tc.y)
			}
			wx, wy := v.ToWorld(cx, cy)
			cellW := world.Width() / float64(v.Screen.W)
			cellH := world.Height() / float64(v.Screen.H)
			if d := wx - tc.x; d > cellW || d < -cellW {
				t.Errorf("ToWorld x = %v, expected within %v of %v", wx, cellW, tc.x)
			}
			if d := wy - tc.y; d > cellH || d < -cellH {
				t.Errorf("ToWorld y = %v, expected within %v of %v", wy, cellH, tc.y)
			}
		})
	}

	if _, _, ok := v.ToCell(0, 0); ok {
		t.Error("ToCell outside the world should report ok=false")
	}
}
