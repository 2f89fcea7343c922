package pseudo

import (
	"sort"
	"testing"
)

func TestInfo(t *testing.T) {
	tests := []struct {
		functional string
		element    string
		wantOK     bool
		wantCutoff float64
	}{
		{"PBE", "Si", true, 40},
		{"PBE", "O", true, 75},
		{"LDA", "Si", true, 40},
		{"PBEsol", "Ti", true, 60},
		{"PBE", "Xx", false, 0},
		{"PW91", "Si", false, 0},
	}
	for _, tt := range tests {
		entry, ok := Info(tt.functional, tt.element)
		if ok != tt.wantOK {
			t.Errorf("Info(%s, %s) ok = %v, want %v", tt.functional, tt.element, ok, tt.wantOK)
			continue
		}
		if ok && entry.ECutWfc != tt.wantCutoff {
			t.Errorf("Info(%s, %s) ecutwfc = %v, want %v", tt.functional, tt.element, entry.ECutWfc, tt.wantCutoff)
		}
	}
}

func TestFunctionals(t *testing.T) {
	fns := Functionals()
	if !sort.StringsAreSorted(fns) {
		t.Errorf("Functionals() not sorted: %v", fns)
	}
	want := map[string]bool{"PBE": false, "LDA": false, "PBEsol": false}
	for _, f := range fns {
		if _, ok := want[f]; !ok {
			t.Errorf("unexpected functional %q", f)
		}
		want[f] = true
	}
	for f, seen := range want {
		if !seen {
			t.Errorf("missing functional %q", f)
		}
	}
}

func TestElements(t *testing.T) {
	els, err := Elements("PBE")
	if err != nil {
		t.Fatalf("Elements(PBE): %v", err)
	}
	if !sort.StringsAreSorted(els) {
		t.Errorf("Elements(PBE) not sorted")
	}
	if len(els) < 50 {
		t.Errorf("Elements(PBE) has %d entries, expected a full table", len(els))
	}
	if _, err := Elements("PW91"); err == nil {
		t.Errorf("Elements(PW91) should fail for an unknown functional")
	}
}

func TestRecommendedCutoffs(t *testing.T) {
	tests := []struct {
		name     string
		elements []string
		wantWfc  float64
		wantRho  float64
	}{
		// Fe carries both the max ecutwfc and a dual of 12.
		{"SrTiO3 with Fe", []string{"Sr", "Ti", "O", "Fe"}, 90, 1080},
		// Si alone: 40 Ry, dual 8.
		{"silicon", []string{"Si"}, 40, 320},
		// Unknown elements fall back to 60 Ry, dual 4.
		{"unknown element", []string{"Xx"}, 60, 240},
		{"empty set", nil, 60, 240},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wfc, rho := RecommendedCutoffs("PBE", tt.elements)
			if wfc != tt.wantWfc || rho != tt.wantRho {
				t.Errorf("RecommendedCutoffs = (%v, %v), want (%v, %v)", wfc, rho, tt.wantWfc, tt.wantRho)
			}
		})
	}
}

func TestRecommendedCutoffsTakesMax(t *testing.T) {
	// O has a higher wfc cutoff than Si; the pair takes O's.
	wfcSi, _ := RecommendedCutoffs("PBE", []string{"Si"})
	wfcPair, _ := RecommendedCutoffs("PBE", []string{"Si", "O"})
	if wfcPair <= wfcSi {
		t.Errorf("adding O should raise the cutoff: Si=%v pair=%v", wfcSi, wfcPair)
	}
}
