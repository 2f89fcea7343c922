package qeoutput_test

import (
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/san-kum/qelab/internal/qeoutput"
)

const scfOutput = `
     Program PWSCF v.7.2 starts on  1Jan2024 at 12: 0: 0

     unit-cell volume          =     270.1070 (a.u.)^3
     number of atoms/cell      =            2

     convergence has been achieved in   8 iterations

     highest occupied, lowest unoccupied level (ev):     6.2500    6.8500

!    total energy              =     -15.85042612 Ry

     Total force =     0.000012     Total SCF correction =     0.000001

          total   stress  (Ry/bohr**3)                   (kbar)     P=       -0.55

     PWSCF        :      2.31s CPU      2.45s WALL
`

const unconvergedOutput = `
     Program PWSCF v.7.2 starts

     convergence NOT achieved after 100 iterations: stopping
`

var _ = Describe("field extractors", func() {
	It("detects convergence", func() {
		Expect(qeoutput.Converged(scfOutput)).To(BeTrue())
		Expect(qeoutput.Converged(unconvergedOutput)).To(BeFalse())
	})

	It("extracts the total energy in Ry", func() {
		e, ok := qeoutput.TotalEnergy(scfOutput)
		Expect(ok).To(BeTrue())
		Expect(e).To(BeNumerically("~", -15.85042612, 1e-10))
	})

	It("extracts the iteration count", func() {
		n, ok := qeoutput.Iterations(scfOutput)
		Expect(ok).To(BeTrue())
		Expect(n).To(Equal(8))
	})

	It("extracts the unit-cell volume", func() {
		v, ok := qeoutput.Volume(scfOutput)
		Expect(ok).To(BeTrue())
		Expect(v).To(BeNumerically("~", 270.1070, 1e-6))
	})

	It("extracts the pressure in kbar", func() {
		p, ok := qeoutput.Pressure(scfOutput)
		Expect(ok).To(BeTrue())
		Expect(p).To(BeNumerically("~", -0.55, 1e-12))
	})

	It("extracts the band edges", func() {
		vbm, cbm, ok := qeoutput.BandEdges(scfOutput)
		Expect(ok).To(BeTrue())
		Expect(vbm).To(BeNumerically("~", 6.25, 1e-12))
		Expect(cbm).To(BeNumerically("~", 6.85, 1e-12))
	})

	It("extracts the timing strings", func() {
		cpu, wall, ok := qeoutput.Timing(scfOutput)
		Expect(ok).To(BeTrue())
		Expect(cpu).To(Equal("2.31s"))
		Expect(wall).To(Equal("2.45s"))
	})

	It("reports absence without error", func() {
		_, ok := qeoutput.TotalEnergy(unconvergedOutput)
		Expect(ok).To(BeFalse())
		_, _, ok = qeoutput.BandEdges(unconvergedOutput)
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Parse", func() {
	It("bundles all fields of a converged run", func() {
		r := qeoutput.Parse(scfOutput)
		Expect(r.Converged).To(BeTrue())
		Expect(r.HasEnergy).To(BeTrue())
		Expect(r.EnergyEV).To(BeNumerically("~", -15.85042612*13.605693122994, 1e-6))
		Expect(r.HasIterations).To(BeTrue())
		Expect(r.HasVolume).To(BeTrue())
		Expect(r.HasPressure).To(BeTrue())
		Expect(r.HasForce).To(BeTrue())
		Expect(r.HasGap).To(BeTrue())
	})

	It("leaves missing fields unset", func() {
		r := qeoutput.Parse(unconvergedOutput)
		Expect(r.Converged).To(BeFalse())
		Expect(r.HasEnergy).To(BeFalse())
		Expect(r.HasVolume).To(BeFalse())
	})
})

var _ = Describe("ParseBandsGnu", func() {
	const bandsFile = `
  0.0000   -5.8100
  0.1000   -5.6200
  0.2000   -5.1000

  0.0000    6.2500
  0.1000    6.4000
  0.2000    6.9000
`

	It("transposes bands into per-kpoint slices", func() {
		b, err := qeoutput.ParseBandsGnu(strings.NewReader(bandsFile))
		Expect(err).NotTo(HaveOccurred())
		Expect(b.KDistances).To(Equal([]float64{0.0, 0.1, 0.2}))
		Expect(b.Energies).To(HaveLen(3))
		Expect(b.Energies[0]).To(Equal([]float64{-5.81, 6.25}))
	})

	It("rejects ragged band blocks", func() {
		_, err := qeoutput.ParseBandsGnu(strings.NewReader("0.0 1.0\n0.1 1.1\n\n0.0 2.0\n"))
		Expect(err).To(HaveOccurred())
	})

	It("rejects empty input", func() {
		_, err := qeoutput.ParseBandsGnu(strings.NewReader(""))
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("ParseDOS", func() {
	const dosFile = `#  E (eV)   dos(E)     Int dos(E) EFermi =    6.250 eV
  -6.000  0.0000  0.0000
  -5.000  0.1200  0.3400
   6.000  1.4500  7.9900
`

	It("reads energies, dos, and the Fermi header", func() {
		d, err := qeoutput.ParseDOS(strings.NewReader(dosFile))
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Energy).To(HaveLen(3))
		Expect(d.States[1]).To(BeNumerically("~", 0.12, 1e-12))
		Expect(d.Integrated[2]).To(BeNumerically("~", 7.99, 1e-12))
		Expect(d.HasFermi).To(BeTrue())
		Expect(d.FermiEV).To(BeNumerically("~", 6.25, 1e-12))
	})

	It("tolerates a missing integrated column", func() {
		d, err := qeoutput.ParseDOS(strings.NewReader("-1.0 0.5\n0.0 0.7\n"))
		Expect(err).NotTo(HaveOccurred())
		Expect(d.Integrated).To(BeNil())
		Expect(d.HasFermi).To(BeFalse())
	})
})
