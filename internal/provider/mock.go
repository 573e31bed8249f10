package provider

import (
	"time"

	"EquityScope/internal/model"
)

// MockProvider returns controllable fixed data for development and tests.
type MockProvider struct {
	Bars      []model.Bar
	Meta      model.Metadata
	BarsErr   error
	MetaErr   error
	BasePrice float64

	HistoryCalls  int
	MetadataCalls int
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchHistory(symbol, period, interval string) ([]model.Bar, error) {
	m.HistoryCalls++
	if m.BarsErr != nil {
		return nil, m.BarsErr
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	base := m.BasePrice
	if base == 0 {
		base = 100
	}
	return GenerateBars(base, 120), nil
}

func (m *MockProvider) FetchMetadata(symbol string) (model.Metadata, error) {
	m.MetadataCalls++
	if m.MetaErr != nil {
		return model.Metadata{}, m.MetaErr
	}
	meta := m.Meta
	meta.Symbol = symbol
	return meta, nil
}

// GenerateBars builds a gently trending synthetic series around basePrice.
func GenerateBars(basePrice float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
