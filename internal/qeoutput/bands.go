package qeoutput

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
)

var fermiHeaderRe = regexp.MustCompile(`EFermi\s*=\s*([-\d.]+)`)

// Bands holds a band structure read from a bands.dat.gnu file: one shared
// k-distance axis and one energy slice per k-point, nkpts x nbands.
type Bands struct {
	KDistances []float64
	Energies   [][]float64
}

// ParseBandsGnu reads the gnuplot-format output of bands.x, where bands
// are blank-line-separated blocks of (k, E) pairs.
func ParseBandsGnu(r io.Reader) (*Bands, error) {
	var bands [][]struct{ k, e float64 }
	var current []struct{ k, e float64 }

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			if len(current) > 0 {
				bands = append(bands, current)
				current = nil
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		k, err1 := strconv.ParseFloat(fields[0], 64)
		e, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("qeoutput: bad band line %q", line)
		}
		current = append(current, struct{ k, e float64 }{k, e})
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(current) > 0 {
		bands = append(bands, current)
	}
	if len(bands) == 0 {
		return nil, fmt.Errorf("qeoutput: no band data")
	}

	nk := len(bands[0])
	out := &Bands{
		KDistances: make([]float64, nk),
		Energies:   make([][]float64, nk),
	}
	for i, p := range bands[0] {
		out.KDistances[i] = p.k
		out.Energies[i] = make([]float64, len(bands))
	}
	for b, band := range bands {
		if len(band) != nk {
			return nil, fmt.Errorf("qeoutput: band %d has %d points, want %d", b, len(band), nk)
		}
		for i, p := range band {
			out.Energies[i][b] = p.e
		}
	}
	return out, nil
}

// DOS holds a density of states read from a dos.x output file.
type DOS struct {
	Energy     []float64
	States     []float64
	Integrated []float64 // nil when the file has no third column
	FermiEV    float64
	HasFermi   bool
}

// ParseDOS reads a dos.x output file: a comment header possibly carrying
// the Fermi energy, then (energy, dos[, integrated dos]) rows.
func ParseDOS(r io.Reader) (*DOS, error) {
	d := &DOS{}
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(line, "#") {
			if m := fermiHeaderRe.FindStringSubmatch(line); m != nil {
				if f, err := strconv.ParseFloat(m[1], 64); err == nil {
					d.FermiEV = f
					d.HasFermi = true
				}
			}
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		e, err1 := strconv.ParseFloat(fields[0], 64)
		s, err2 := strconv.ParseFloat(fields[1], 64)
		if err1 != nil || err2 != nil {
			return nil, fmt.Errorf("qeoutput: bad dos line %q", line)
		}
		d.Energy = append(d.Energy, e)
		d.States = append(d.States, s)
		if len(fields) >= 3 {
			if idos, err := strconv.ParseFloat(fields[2], 64); err == nil {
				d.Integrated = append(d.Integrated, idos)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(d.Energy) == 0 {
		return nil, fmt.Errorf("qeoutput: no dos data")
	}
	return d, nil
}
