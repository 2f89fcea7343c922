package radii

import (
	"fmt"
	"math"
)

// ChargeNeutral checks whether a composition is charge-neutral under the
// given oxidation-state assignment. It returns the verdict and the total
// formula charge. An element present in the composition but absent from
// the assignment is an error.
func ChargeNeutral(composition map[string]int, oxidation map[string]int) (bool, float64, error) {
	var total float64
	for element, count := range composition {
		state, ok := oxidation[element]
		if !ok {
			return false, 0, fmt.Errorf("no oxidation state assigned for %s", element)
		}
		total += float64(count * state)
	}
	return math.Abs(total) < 1e-6, total, nil
}
