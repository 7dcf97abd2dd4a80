package domain

import "testing"

func TestMerge_RightWins(t *testing.T) {
	left := Assignment{"A": "T", "B": "F"}
	right := Assignment{"B": "T", "C": "F"}

	got := Merge(left, right)
	want := Assignment{"A": "T", "B": "T", "C": "F"}
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if left["B"] != "F" || len(left) != 2 {
		t.Fatalf("left operand was modified: %s", left)
	}
}

func TestConsistent(t *testing.T) {
	tests := []struct {
		name string
		h, g Assignment
		want bool
	}{
		{"disjoint", Assignment{"A": "T"}, Assignment{"B": "F"}, true},
		{"agreeing overlap", Assignment{"A": "T", "B": "F"}, Assignment{"B": "F"}, true},
		{"conflict", Assignment{"A": "T"}, Assignment{"A": "F"}, false},
		{"nil givens", Assignment{"A": "T"}, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Consistent(tt.h, tt.g); got != tt.want {
				t.Errorf("Consistent(%s, %s) = %v, want %v", tt.h, tt.g, got, tt.want)
			}
		})
	}
}

func TestRestrict(t *testing.T) {
	a := Assignment{"A": "T", "B": "F", "C": "T"}
	got := a.Restrict([]string{"C", "A", "Z"})
	if !got.Equal(Assignment{"A": "T", "C": "T"}) {
		t.Fatalf("unexpected restriction %s", got)
	}
}

func TestString_Sorted(t *testing.T) {
	a := Assignment{"b": "2", "a": "1"}
	if got := a.String(); got != "{a=1, b=2}" {
		t.Fatalf("expected {a=1, b=2}, got %s", got)
	}
}

func TestParseAssignment(t *testing.T) {
	got, err := ParseAssignment(" Rain=T, Umbrella = F ")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !got.Equal(Assignment{"Rain": "T", "Umbrella": "F"}) {
		t.Fatalf("unexpected assignment %s", got)
	}

	empty, err := ParseAssignment("")
	if err != nil || empty != nil {
		t.Fatalf("expected nil assignment, got %v (%v)", empty, err)
	}

	for _, bad := range []string{"Rain", "Rain=", "=T", "Rain=T,Rain=F"} {
		if _, err := ParseAssignment(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}
