package indicator

import "EquityScope/internal/model"

// StochSeries computes the stochastic oscillator %K and %D. The raw %K
// over kPeriod is smoothed by smooth bars, and %D is a dPeriod average of
// the smoothed %K.
func StochSeries(bars []model.Bar, kPeriod, dPeriod, smooth int) (k, d []*float64) {
	n := len(bars)
	k = make([]*float64, n)
	d = make([]*float64, n)
	if kPeriod <= 0 || n < kPeriod {
		return k, d
	}

	rawK := make([]*float64, n)
	for i := kPeriod - 1; i < n; i++ {
		hh := bars[i].High
		ll := bars[i].Low
		for j := i - kPeriod + 1; j <= i; j++ {
			if bars[j].High > hh {
				hh = bars[j].High
			}
			if bars[j].Low < ll {
				ll = bars[j].Low
			}
		}
		v := 50.0 // flat window, no directional information
		if hh > ll {
			v = 100.0 * (bars[i].Close - ll) / (hh - ll)
		}
		rawK[i] = &v
	}

	k = smoothSeries(rawK, smooth)
	d = smoothSeries(k, dPeriod)
	return k, d
}

// smoothSeries applies a simple moving average to the defined tail of a
// sparse series, keeping the leading nils.
func smoothSeries(in []*float64, period int) []*float64 {
	out := make([]*float64, len(in))
	if period <= 1 {
		copy(out, in)
		return out
	}
	start := -1
	var dense []float64
	for i, v := range in {
		if v == nil {
			continue
		}
		if start < 0 {
			start = i
		}
		dense = append(dense, *v)
	}
	if start < 0 {
		return out
	}
	sm := SMASeries(dense, period)
	for j, v := range sm {
		if v != nil {
			out[start+j] = v
		}
	}
	return out
}
