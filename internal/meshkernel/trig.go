package meshkernel

import "math"

func sincos(angle float64) (s, c float64) {
	return math.Sincos(angle)
}
