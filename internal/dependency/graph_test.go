package dependency

import (
	"reflect"
	"testing"
)

func TestFlatten(t *testing.T) {
	tests := []struct {
		edges [][2]string
		want  []string
	}{
		{
			edges: nil,
			want:  nil,
		},
		{
			// Fuselage depends on Frame, which depends on PointType.
			edges: [][2]string{
				{"Fuselage", "Frame"},
				{"Frame", "PointType"},
			},
			want: []string{"PointType", "Frame", "Fuselage"},
		},
		{
			// Wings depends on both WingType and PointType;
			// WingType itself depends on PointType. PointType
			// must only appear once, before both dependents.
			edges: [][2]string{
				{"Wings", "WingType"},
				{"Wings", "PointType"},
				{"WingType", "PointType"},
			},
			want: []string{"PointType", "WingType", "Wings"},
		},
		{
			// A cycle must not cause infinite recursion; each
			// node is still visited exactly once.
			edges: [][2]string{
				{"A", "B"},
				{"B", "A"},
			},
			want: []string{"B", "A"},
		},
	}

	for _, tt := range tests {
		var g Graph
		for _, e := range tt.edges {
			g.Add(e[0], e[1])
		}
		var got []string
		g.Flatten(func(s string) { got = append(got, s) })
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Flatten(%v) = %v, want %v", tt.edges, got, tt.want)
		}
	}
}

func TestFlattenDeterministic(t *testing.T) {
	var g Graph
	g.Add("Fuselage", "Frame")
	g.Add("Fuselage", "PointType")
	g.Add("Frame", "PointType")

	var first []string
	g.Flatten(func(s string) { first = append(first, s) })

	for i := 0; i < 10; i++ {
		var again []string
		g.Flatten(func(s string) { again = append(again, s) })
		if !reflect.DeepEqual(again, first) {
			t.Fatalf("Flatten is not deterministic across repeated calls: %v != %v", again, first)
		}
	}
}
