package indicator

import "EquityScope/internal/model"

// MFISeries computes the Money Flow Index over the given period.
func MFISeries(bars []model.Bar, period int) []*float64 {
	n := len(bars)
	out := make([]*float64, n)
	if period <= 0 || n < period+1 {
		return out
	}

	typical := make([]float64, n)
	for i, b := range bars {
		typical[i] = (b.High + b.Low + b.Close) / 3.0
	}

	for i := period; i < n; i++ {
		var pos, neg float64
		for j := i - period + 1; j <= i; j++ {
			flow := typical[j] * bars[j].Volume
			switch {
			case typical[j] > typical[j-1]:
				pos += flow
			case typical[j] < typical[j-1]:
				neg += flow
			}
		}
		v := 100.0
		if neg > 0 {
			v = 100.0 - 100.0/(1.0+pos/neg)
		}
		out[i] = &v
	}
	return out
}

// OBVSeries computes the cumulative On-Balance Volume. Defined from the
// first bar onward; the first value is that bar's volume.
func OBVSeries(bars []model.Bar) []*float64 {
	n := len(bars)
	out := make([]*float64, n)
	if n == 0 {
		return out
	}
	obv := bars[0].Volume
	first := obv
	out[0] = &first
	for i := 1; i < n; i++ {
		switch {
		case bars[i].Close > bars[i-1].Close:
			obv += bars[i].Volume
		case bars[i].Close < bars[i-1].Close:
			obv -= bars[i].Volume
		}
		v := obv
		out[i] = &v
	}
	return out
}
