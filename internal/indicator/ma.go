package indicator

// SMASeries computes the simple moving average over the given period for
// every index of values. Entries before the first full window are nil.
func SMASeries(values []float64, period int) []*float64 {
	out := make([]*float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	sum := 0.0
	for i, v := range values {
		sum += v
		if i >= period {
			sum -= values[i-period]
		}
		if i >= period-1 {
			avg := sum / float64(period)
			out[i] = &avg
		}
	}
	return out
}

// EMASeries computes the exponential moving average over the given period.
// The first defined entry (index period-1) is seeded with the simple
// average of the first window, matching the common charting convention.
func EMASeries(values []float64, period int) []*float64 {
	out := make([]*float64, len(values))
	if period <= 0 || len(values) < period {
		return out
	}
	multiplier := 2.0 / (float64(period) + 1.0)

	sum := 0.0
	for i := 0; i < period; i++ {
		sum += values[i]
	}
	ema := sum / float64(period)
	first := ema
	out[period-1] = &first

	for i := period; i < len(values); i++ {
		ema = values[i]*multiplier + ema*(1-multiplier)
		v := ema
		out[i] = &v
	}
	return out
}
