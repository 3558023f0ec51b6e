package geom

import "testing"

func TestOrientationNames(t *testing.T) {
	tests := []struct {
		o    Orientation
		want string
	}{
		{North, "N"},
		{South, "S"},
		{East, "E"},
		{West, "W"},
		{FlippedNorth, "FN"},
		{FlippedSouth, "FS"},
		{FlippedEast, "FE"},
		{FlippedWest, "FW"},
	}
	for _, tt := range tests {
		if got := tt.o.String(); got != tt.want {
			t.Errorf("%#v.String() = %q, want %q", tt.o, got, tt.want)
		}
	}
}

func TestOrientationOrigin(t *testing.T) {
	size := Size{Width: 80, Height: 200}
	ll := Position{X: 100, Y: 10}

	tests := []struct {
		name   string
		o      Orientation
		origin Position
		extent Size
	}{
		{"N", North, Position{100, 10}, Size{80, 200}},
		{"S", South, Position{180, 210}, Size{80, 200}},
		{"W", West, Position{300, 10}, Size{200, 80}},
		{"E", East, Position{100, 90}, Size{200, 80}},
		{"FS", FlippedSouth, Position{100, 210}, Size{80, 200}},
		{"FN", FlippedNorth, Position{180, 10}, Size{80, 200}},
		{"FW", FlippedWest, Position{100, 10}, Size{200, 80}},
		{"FE", FlippedEast, Position{300, 90}, Size{200, 80}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.o.Origin(ll, size)
			if !NearlyEqual(got.X, tt.origin.X) || !NearlyEqual(got.Y, tt.origin.Y) {
				t.Errorf("Origin = %+v, want %+v", got, tt.origin)
			}
			if ext := tt.o.Extent(size); ext != tt.extent {
				t.Errorf("Extent = %+v, want %+v", ext, tt.extent)
			}

			// The oriented box placed at the origin must start at ll.
			bb := tt.o.Bounds(size)
			if !NearlyEqual(got.X+bb.Min.X, ll.X) || !NearlyEqual(got.Y+bb.Min.Y, ll.Y) {
				t.Errorf("box lower-left = (%v, %v), want %+v", got.X+bb.Min.X, got.Y+bb.Min.Y, ll)
			}
			if !NearlyEqual(bb.Width(), tt.extent.Width) || !NearlyEqual(bb.Height(), tt.extent.Height) {
				t.Errorf("box extent = %vx%v, want %+v", bb.Width(), bb.Height(), tt.extent)
			}
		})
	}
}

func TestNearlyEqual(t *testing.T) {
	if !NearlyEqual(0.1+0.2, 0.3) {
		t.Error("0.1+0.2 should be nearly equal to 0.3")
	}
	if NearlyEqual(1.0, 1.001) {
		t.Error("1.0 and 1.001 should differ")
	}
	if !(Size{Width: 20, Height: 20}).IsSquare() {
		t.Error("20x20 should be square")
	}
}
