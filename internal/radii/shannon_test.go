package radii

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		element       string
		oxidation     int
		coordination  int
		want          float64
		wantTabulated bool
	}{
		{"Fe", 3, 6, 0.645, true},
		{"O", -2, 6, 1.40, true},
		{"Sr", 2, 12, 1.44, true},
		{"Ti", 4, 6, 0.605, true},
		{"Fe", 4, 6, 0, false},  // oxidation state not tabulated
		{"Fe", 3, 12, 0, false}, // coordination not tabulated
		{"Xx", 1, 6, 0, false},  // unknown element
	}

	for _, tt := range tests {
		got, ok := Lookup(tt.element, tt.oxidation, tt.coordination)
		if ok != tt.wantTabulated {
			t.Errorf("Lookup(%s, %d, %d): tabulated = %v, want %v",
				tt.element, tt.oxidation, tt.coordination, ok, tt.wantTabulated)
			continue
		}
		if ok && got != tt.want {
			t.Errorf("Lookup(%s, %d, %d) = %g, want %g",
				tt.element, tt.oxidation, tt.coordination, got, tt.want)
		}
	}
}

func TestElements(t *testing.T) {
	elements := Elements()
	if len(elements) == 0 {
		t.Fatal("empty element list")
	}
	for i := 1; i < len(elements); i++ {
		if elements[i-1] >= elements[i] {
			t.Fatalf("elements not sorted: %s before %s", elements[i-1], elements[i])
		}
	}
}

func TestStates(t *testing.T) {
	pairs := States("Fe")
	if len(pairs) != 4 {
		t.Fatalf("Fe states: got %d pairs, want 4", len(pairs))
	}
	if pairs[0] != [2]int{2, 4} {
		t.Errorf("first Fe state = %v, want [2 4]", pairs[0])
	}
	if States("Xx") != nil {
		t.Error("expected nil for unknown element")
	}
}

func TestChargeNeutral(t *testing.T) {
	// SrTiO3
	neutral, charge, err := ChargeNeutral(
		map[string]int{"Sr": 1, "Ti": 1, "O": 3},
		map[string]int{"Sr": 2, "Ti": 4, "O": -2},
	)
	if err != nil {
		t.Fatal(err)
	}
	if !neutral || charge != 0 {
		t.Errorf("SrTiO3: neutral=%v charge=%g", neutral, charge)
	}

	// off by one oxygen
	neutral, charge, err = ChargeNeutral(
		map[string]int{"Sr": 1, "Ti": 1, "O": 2},
		map[string]int{"Sr": 2, "Ti": 4, "O": -2},
	)
	if err != nil {
		t.Fatal(err)
	}
	if neutral || charge != 2 {
		t.Errorf("SrTiO2: neutral=%v charge=%g", neutral, charge)
	}

	// missing assignment
	if _, _, err := ChargeNeutral(map[string]int{"Sr": 1}, map[string]int{}); err == nil {
		t.Error("expected error for missing oxidation state")
	}
}
