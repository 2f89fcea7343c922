package units

// Physical constants, CODATA 2018.
const (
	BohrToAngstromFactor = 0.529177210903
	AngstromToBohrFactor = 1.0 / BohrToAngstromFactor
	RyToEVFactor         = 13.605693122994
	EVToRyFactor         = 1.0 / RyToEVFactor
	RyToMeVFactor        = RyToEVFactor * 1000.0
	RyBohr3ToGPaFactor   = 14710.507848466
	GPaToRyBohr3Factor   = 1.0 / RyBohr3ToGPaFactor
	KbarToGPaFactor      = 0.1
	HartreeToEVFactor    = 27.211386245988

	// Boltzmann constant in eV/K.
	KBoltzmannEVK = 8.617333262e-5
	// Reduced Planck constant in eV*s.
	HbarEVS = 6.582119569e-16
)

func BohrToAngstrom(v float64) float64 { return v * BohrToAngstromFactor }

func AngstromToBohr(v float64) float64 { return v * AngstromToBohrFactor }

func RyToEV(v float64) float64 { return v * RyToEVFactor }

func EVToRy(v float64) float64 { return v * EVToRyFactor }

func RyToMeV(v float64) float64 { return v * RyToMeVFactor }

func RyBohr3ToGPa(v float64) float64 { return v * RyBohr3ToGPaFactor }

func GPaToRyBohr3(v float64) float64 { return v * GPaToRyBohr3Factor }

func KbarToGPa(v float64) float64 { return v * KbarToGPaFactor }

func HartreeToEV(v float64) float64 { return v * HartreeToEVFactor }
