package indicator

import "EquityScope/internal/model"

// Params holds every indicator window. All lengths are passed explicitly;
// nothing is read from ambient state.
type Params struct {
	SMAShort  int `yaml:"sma_short"`
	SMAMedium int `yaml:"sma_medium"`
	SMALong   int `yaml:"sma_long"`

	RSIPeriod int `yaml:"rsi_period"`

	MACDFast   int `yaml:"macd_fast"`
	MACDSlow   int `yaml:"macd_slow"`
	MACDSignal int `yaml:"macd_signal"`

	StochK      int `yaml:"stoch_k"`
	StochD      int `yaml:"stoch_d"`
	StochSmooth int `yaml:"stoch_smooth"`

	MFIPeriod int `yaml:"mfi_period"`

	BollPeriod int     `yaml:"boll_period"`
	BollMult   float64 `yaml:"boll_mult"`

	// OBVLookback is how many bars back the accumulation rule compares
	// OBV against.
	OBVLookback int `yaml:"obv_lookback"`
}

// DefaultParams mirrors the usual dashboard settings: MA 5/10/50,
// RSI(14), MACD(12,26,9), stochastic (14,3,3), MFI(14), Bollinger(20,2).
func DefaultParams() Params {
	return Params{
		SMAShort:    5,
		SMAMedium:   10,
		SMALong:     50,
		RSIPeriod:   14,
		MACDFast:    12,
		MACDSlow:    26,
		MACDSignal:  9,
		StochK:      14,
		StochD:      3,
		StochSmooth: 3,
		MFIPeriod:   14,
		BollPeriod:  20,
		BollMult:    2.0,
		OBVLookback: 10,
	}
}

// WithDefaults fills every unset (non-positive) window with its default
// length, so a config that names only some windows keeps the rest.
func (p Params) WithDefaults() Params {
	def := DefaultParams()
	if p.SMAShort <= 0 {
		p.SMAShort = def.SMAShort
	}
	if p.SMAMedium <= 0 {
		p.SMAMedium = def.SMAMedium
	}
	if p.SMALong <= 0 {
		p.SMALong = def.SMALong
	}
	if p.RSIPeriod <= 0 {
		p.RSIPeriod = def.RSIPeriod
	}
	if p.MACDFast <= 0 {
		p.MACDFast = def.MACDFast
	}
	if p.MACDSlow <= 0 {
		p.MACDSlow = def.MACDSlow
	}
	if p.MACDSignal <= 0 {
		p.MACDSignal = def.MACDSignal
	}
	if p.StochK <= 0 {
		p.StochK = def.StochK
	}
	if p.StochD <= 0 {
		p.StochD = def.StochD
	}
	if p.StochSmooth <= 0 {
		p.StochSmooth = def.StochSmooth
	}
	if p.MFIPeriod <= 0 {
		p.MFIPeriod = def.MFIPeriod
	}
	if p.BollPeriod <= 0 {
		p.BollPeriod = def.BollPeriod
	}
	if p.BollMult <= 0 {
		p.BollMult = def.BollMult
	}
	if p.OBVLookback <= 0 {
		p.OBVLookback = def.OBVLookback
	}
	return p
}

// Build derives one IndicatorSnapshot per bar. Readings that cannot be
// computed yet stay nil so downstream rules skip them.
func Build(bars []model.Bar, p Params) []model.IndicatorSnapshot {
	n := len(bars)
	if n == 0 {
		return nil
	}
	closes := make([]float64, n)
	for i, b := range bars {
		closes[i] = b.Close
	}

	smaShort := SMASeries(closes, p.SMAShort)
	smaMedium := SMASeries(closes, p.SMAMedium)
	smaLong := SMASeries(closes, p.SMALong)
	rsi := RSISeries(closes, p.RSIPeriod)
	macd, macdSig, macdHist := MACDSeries(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	stochK, stochD := StochSeries(bars, p.StochK, p.StochD, p.StochSmooth)
	mfi := MFISeries(bars, p.MFIPeriod)
	obv := OBVSeries(bars)
	bollU, bollM, bollL := BollingerSeries(closes, p.BollPeriod, p.BollMult)

	snaps := make([]model.IndicatorSnapshot, n)
	for i := range bars {
		snaps[i] = model.IndicatorSnapshot{
			Time:       bars[i].Time,
			Close:      bars[i].Close,
			SMAShort:   smaShort[i],
			SMAMedium:  smaMedium[i],
			SMALong:    smaLong[i],
			RSI:        rsi[i],
			MACD:       macd[i],
			MACDSignal: macdSig[i],
			MACDHist:   macdHist[i],
			StochK:     stochK[i],
			StochD:     stochD[i],
			MFI:        mfi[i],
			OBV:        obv[i],
			BollUpper:  bollU[i],
			BollMiddle: bollM[i],
			BollLower:  bollL[i],
		}
		if p.OBVLookback > 0 && i >= p.OBVLookback && obv[i-p.OBVLookback] != nil {
			v := *obv[i-p.OBVLookback]
			snaps[i].OBVLookback = &v
		}
	}
	return snaps
}
