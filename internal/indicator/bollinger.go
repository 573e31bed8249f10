package indicator

import "math"

// BollingerSeries computes the Bollinger Bands: an n-period simple moving
// average and upper/lower bands mult standard deviations away.
func BollingerSeries(values []float64, period int, mult float64) (upper, middle, lower []*float64) {
	n := len(values)
	upper = make([]*float64, n)
	middle = SMASeries(values, period)
	lower = make([]*float64, n)
	if period <= 0 || n < period {
		return upper, middle, lower
	}

	for i := period - 1; i < n; i++ {
		if middle[i] == nil {
			continue
		}
		mean := *middle[i]
		var sq float64
		for j := i - period + 1; j <= i; j++ {
			d := values[j] - mean
			sq += d * d
		}
		std := math.Sqrt(sq / float64(period))
		u := mean + mult*std
		l := mean - mult*std
		upper[i] = &u
		lower[i] = &l
	}
	return upper, middle, lower
}
