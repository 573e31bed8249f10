package indicator

// MACDSeries computes the MACD line, signal line, and histogram.
// The line is defined once the slow EMA exists; the signal needs a further
// signalPeriod of line values; the histogram wherever both exist.
func MACDSeries(values []float64, fast, slow, signalPeriod int) (line, signal, hist []*float64) {
	n := len(values)
	line = make([]*float64, n)
	signal = make([]*float64, n)
	hist = make([]*float64, n)

	emaFast := EMASeries(values, fast)
	emaSlow := EMASeries(values, slow)

	// Dense MACD values for the signal EMA, with their source indexes.
	var dense []float64
	var denseIdx []int
	for i := 0; i < n; i++ {
		if emaFast[i] == nil || emaSlow[i] == nil {
			continue
		}
		v := *emaFast[i] - *emaSlow[i]
		line[i] = &v
		dense = append(dense, v)
		denseIdx = append(denseIdx, i)
	}

	sigDense := EMASeries(dense, signalPeriod)
	for j, s := range sigDense {
		if s == nil {
			continue
		}
		i := denseIdx[j]
		sv := *s
		signal[i] = &sv
		h := *line[i] - sv
		hist[i] = &h
	}
	return line, signal, hist
}
