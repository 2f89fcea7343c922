package config

// Profile bundles the accuracy knobs of a plane-wave calculation. The
// cutoffs are floors; per-element recommendations from the
// pseudopotential tables still win when they are higher.
type Profile struct {
	ECutWfc float64
	ECutRho float64
	KPoints int
	ConvThr float64
}

// Profiles trade accuracy against wall time. "fast" is for smoke tests
// and geometry sketches, "precise" for publication-grade energies.
var Profiles = map[string]Profile{
	"fast": {
		ECutWfc: 30, ECutRho: 240, KPoints: 4, ConvThr: 1e-6,
	},
	"standard": {
		ECutWfc: 50, ECutRho: 400, KPoints: 8, ConvThr: 1e-8,
	},
	"precise": {
		ECutWfc: 80, ECutRho: 640, KPoints: 12, ConvThr: 1e-10,
	},
}

func GetProfile(name string) (Profile, bool) {
	p, ok := Profiles[name]
	return p, ok
}

func ListProfiles() []string {
	names := make([]string, 0, len(Profiles))
	for name := range Profiles {
		names = append(names, name)
	}
	return names
}
