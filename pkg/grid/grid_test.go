package grid

import (
	"math"
	"slices"
	"testing"
)

func TestPointArithmetic(t *testing.T) {
	p := P(2, -3)
	q := P(-1, 4)

	if got := p.Add(q); got != P(1, 1) {
		t.Errorf("Add = %v, want (1,1)", got)
	}
	if got := p.Sub(q); got != P(3, -7) {
		t.Errorf("Sub = %v, want (3,-7)", got)
	}
	if got := p.Scale(3); got != P(6, -9) {
		t.Errorf("Scale = %v, want (6,-9)", got)
	}
	if got := p.Neg(); got != P(-2, 3) {
		t.Errorf("Neg = %v, want (-2,3)", got)
	}
	if got := p.Dot(q); got != -14 {
		t.Errorf("Dot = %d, want -14", got)
	}
	if got := p.ChebyshevTo(q); got != 7 {
		t.Errorf("ChebyshevTo = %d, want 7", got)
	}
	if got := P(5, -2).Unit(); got != P(1, -1) {
		t.Errorf("Unit = %v, want (1,-1)", got)
	}
	if !P(0, 0).IsZero() || P(0, 1).IsZero() {
		t.Error("IsZero mismatch")
	}
	if got := p.String(); got != "(2,-3)" {
		t.Errorf("String = %q", got)
	}
}

func TestSortByDirection(t *testing.T) {
	tests := []struct {
		name string
		in   []Point
		dir  Point
		want []Point
	}{
		{
			name: "down puts lowest last",
			in:   []Point{P(0, -2), P(0, 1), P(0, 0)},
			dir:  Down,
			want: []Point{P(0, 1), P(0, 0), P(0, -2)},
		},
		{
			name: "east orders by x",
			in:   []Point{P(3, 0), P(-1, 5), P(1, 1)},
			dir:  East,
			want: []Point{P(-1, 5), P(1, 1), P(3, 0)},
		},
		{
			name: "ties are stable",
			in:   []Point{P(4, 0), P(2, 0), P(3, 0)},
			dir:  North,
			want: []Point{P(4, 0), P(2, 0), P(3, 0)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := slices.Clone(tt.in)
			SortByDirection(got, tt.dir)
			if !slices.Equal(got, tt.want) {
				t.Errorf("SortByDirection = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNeighbors8Order(t *testing.T) {
	want := []Point{P(-1, 1), P(0, 1), P(1, 1), P(1, 0), P(1, -1), P(0, -1), P(-1, -1), P(-1, 0)}
	if !slices.Equal(Neighbors8[:], want) {
		t.Errorf("Neighbors8 = %v, want %v", Neighbors8, want)
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Point
		wantErr bool
	}{
		{"down", Down, false},
		{"South", South, false},
		{"north-east", NorthEast, false},
		{"NW", NorthWest, false},
		{" left ", West, false},
		{"sideways", Point{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseDirection(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}

	if DirectionName(Down) != "south" {
		t.Errorf("DirectionName(Down) = %q", DirectionName(Down))
	}
}

func TestRect(t *testing.T) {
	r := NewRect(P(2, 1), P(0, -1))

	if r.Min != P(0, -1) || r.Max != P(2, 1) {
		t.Fatalf("NewRect normalized to %v", r)
	}
	if r.Width() != 3 || r.Height() != 3 || r.Area() != 9 {
		t.Errorf("size = %dx%d (%d)", r.Width(), r.Height(), r.Area())
	}
	if !r.Contains(P(2, -1)) || r.Contains(P(3, 0)) {
		t.Error("Contains mismatch on edges")
	}

	corners := r.Corners()
	want := [4]Point{P(0, 1), P(2, 1), P(2, -1), P(0, -1)}
	if corners != want {
		t.Errorf("Corners = %v, want %v", corners, want)
	}

	spaces := NewRect(P(0, 0), P(1, 1)).SpacesTaken()
	wantSpaces := []Point{P(0, 1), P(1, 1), P(0, 0), P(1, 0)}
	if !slices.Equal(spaces, wantSpaces) {
		t.Errorf("SpacesTaken = %v, want %v", spaces, wantSpaces)
	}

	empty := Rect{Min: P(1, 1), Max: P(0, 0)}
	if !empty.Empty() || empty.Area() != 0 || empty.SpacesTaken() != nil {
		t.Error("inverted rect should be empty")
	}
	if got := empty.Union(r); got != r {
		t.Errorf("Union with empty = %v, want %v", got, r)
	}
}

func TestBoundsOf(t *testing.T) {
	if _, ok := BoundsOf(nil); ok {
		t.Error("BoundsOf(nil) should report false")
	}
	r, ok := BoundsOf([]Point{P(0, 0), P(-2, 3), P(1, -1)})
	if !ok {
		t.Fatal("BoundsOf returned false")
	}
	if r != NewRect(P(-2, -1), P(1, 3)) {
		t.Errorf("BoundsOf = %v", r)
	}
}

func TestVecSnap(t *testing.T) {
	tests := []struct {
		name string
		v    Vec
		cell float64
		want Point
	}{
		{"exact", Vec{X: 2, Y: -3}, 1, P(2, -3)},
		{"rounds", Vec{X: 2.4, Y: -2.6}, 1, P(2, -3)},
		{"half away from zero", Vec{X: 0.5, Y: -0.5}, 1, P(1, -1)},
		{"cell size", Vec{X: 95, Y: 41}, 32, P(3, 1)},
		{"non-positive cell", Vec{X: 1.2, Y: 0}, 0, P(1, 0)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got, ok := tt.v.Snap(tt.cell); !ok || got != tt.want {
				t.Errorf("Snap = %v, %v, want %v", got, ok, tt.want)
			}
		})
	}

	if got, _ := VecOf(P(3, 1), 32).Snap(32); got != P(3, 1) {
		t.Errorf("VecOf round trip = %v", got)
	}
}

func TestVecSnapRange(t *testing.T) {
	tests := []struct {
		name   string
		v      Vec
		want   Point
		wantOK bool
	}{
		{"max int32", Vec{X: math.MaxInt32, Y: 0}, P(math.MaxInt32, 0), true},
		{"min int32", Vec{X: 0, Y: math.MinInt32}, P(0, math.MinInt32), true},
		{"rounds past max", Vec{X: math.MaxInt32 + 0.5, Y: 0}, Point{}, false},
		{"two to the 32", Vec{X: 1 << 32, Y: 0}, Point{}, false},
		{"far negative", Vec{X: 0, Y: -1e12}, Point{}, false},
		{"nan", Vec{X: math.NaN(), Y: 0}, Point{}, false},
		{"infinity", Vec{X: 0, Y: math.Inf(-1)}, Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Snap(1)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Snap = %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestCheckedArithmetic(t *testing.T) {
	tests := []struct {
		name   string
		p, q   Point
		add    bool
		want   Point
		wantOK bool
	}{
		{"add in range", P(1, 2), P(3, -4), true, P(4, -2), true},
		{"add past max", P(math.MaxInt32, 0), NorthEast, true, Point{}, false},
		{"add past min", P(0, math.MinInt32), Down, true, Point{}, false},
		{"add reaches max", P(math.MaxInt32-1, 0), East, true, P(math.MaxInt32, 0), true},
		{"sub in range", P(1, 2), P(3, -4), false, P(-2, 6), true},
		{"sub past max", P(math.MaxInt32, 0), P(-1, 0), false, Point{}, false},
		{"sub past min", P(math.MinInt32, 0), P(1, 0), false, Point{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got Point
			var ok bool
			if tt.add {
				got, ok = tt.p.AddChecked(tt.q)
			} else {
				got, ok = tt.p.SubChecked(tt.q)
			}
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("got %v, %v, want %v, %v", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestLayerIdentity(t *testing.T) {
	a := Layer{ID: "notes", Name: "Notes"}
	b := Layer{ID: "notes", Name: "Renamed"}
	if !a.SameAs(b) {
		t.Error("layers with equal IDs should be the same layer")
	}
	if a.SameAs(DefaultLayer) {
		t.Error("different IDs should differ")
	}
	if (Layer{ID: "x"}).String() != "x" {
		t.Error("String should fall back to ID")
	}
}

func TestNamedLayer(t *testing.T) {
	tests := []struct {
		id   string
		want Layer
	}{
		{"", DefaultLayer},
		{DefaultLayer.ID, DefaultLayer},
		{"notes", Layer{ID: "notes", Name: "notes"}},
	}
	for _, tt := range tests {
		if got := NamedLayer(tt.id); got != tt.want {
			t.Errorf("NamedLayer(%q) = %+v, want %+v", tt.id, got, tt.want)
		}
	}
}
