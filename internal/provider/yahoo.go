package provider

import (
	"fmt"
	"log"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/piquette/finance-go/equity"
	"github.com/shopspring/decimal"

	"EquityScope/internal/model"
)

const quoteSummaryURL = "https://query1.finance.yahoo.com/v10/finance/quoteSummary/{symbol}"

// YahooProvider fetches bars via the Yahoo Finance chart API and company
// metadata via the quoteSummary endpoint.
type YahooProvider struct {
	rest *resty.Client
}

// NewYahooProvider creates a provider with optional proxy support.
func NewYahooProvider(proxyURL string) *YahooProvider {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetHeader("User-Agent", "Mozilla/5.0")
	if proxyURL != "" {
		client.SetProxy(proxyURL)
	}
	return &YahooProvider{rest: client}
}

func (p *YahooProvider) Name() string { return "yahoo" }

var intervals = map[string]datetime.Interval{
	"1d":  datetime.OneDay,
	"1wk": datetime.Interval("1wk"),
	"1mo": datetime.Interval("1mo"),
}

// FetchHistory returns chronological bars for the requested window.
func (p *YahooProvider) FetchHistory(symbol, period, interval string) ([]model.Bar, error) {
	iv, ok := intervals[interval]
	if !ok {
		return nil, fmt.Errorf("unknown interval token %q", interval)
	}
	now := time.Now()
	start, err := periodStart(period, now)
	if err != nil {
		return nil, err
	}

	iter := chart.Get(&chart.Params{
		Symbol:   symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&now),
		Interval: iv,
	})

	var bars []model.Bar
	for iter.Next() {
		b := iter.Bar()
		if b.Open.Equal(decimal.Zero) && b.High.Equal(decimal.Zero) &&
			b.Low.Equal(decimal.Zero) && b.Close.Equal(decimal.Zero) {
			continue // null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{
			Time:   time.Unix(int64(b.Timestamp), 0),
			Open:   b.Open.InexactFloat64(),
			High:   b.High.InexactFloat64(),
			Low:    b.Low.InexactFloat64(),
			Close:  b.Close.InexactFloat64(),
			Volume: float64(b.Volume),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: chart %s: %v", ErrDataUnavailable, symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: chart %s returned no bars", ErrDataUnavailable, symbol)
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return bars, nil
}

// rawValue is Yahoo's {"raw": n, "fmt": "..."} number wrapper.
type rawValue struct {
	Raw *float64 `json:"raw"`
}

type quoteSummaryResponse struct {
	QuoteSummary struct {
		Result []struct {
			DefaultKeyStatistics struct {
				ShortPercentOfFloat rawValue `json:"shortPercentOfFloat"`
				ShortRatio          rawValue `json:"shortRatio"`
			} `json:"defaultKeyStatistics"`
			FinancialData struct {
				RevenueGrowth     rawValue `json:"revenueGrowth"`
				DebtToEquity      rawValue `json:"debtToEquity"`
				RecommendationKey string   `json:"recommendationKey"`
			} `json:"financialData"`
			SummaryDetail struct {
				TrailingPE rawValue `json:"trailingPE"`
			} `json:"summaryDetail"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"quoteSummary"`
}

// FetchMetadata combines the quote API (name, cap, 52-week range, EPS)
// with the quoteSummary endpoint (short interest, growth, leverage).
// A quoteSummary failure degrades to partial metadata rather than erroring:
// fundamental rules fall back to their neutral defaults.
func (p *YahooProvider) FetchMetadata(symbol string) (model.Metadata, error) {
	meta := model.Metadata{Symbol: symbol}

	q, err := equity.Get(symbol)
	if err != nil || q == nil {
		return meta, fmt.Errorf("%w: quote %s: %v", ErrDataUnavailable, symbol, err)
	}
	meta.LongName = q.ShortName
	meta.MarketCap = model.Float(float64(q.MarketCap))
	meta.FiftyTwoWeekHigh = model.Float(q.FiftyTwoWeekHigh)
	meta.FiftyTwoWeekLow = model.Float(q.FiftyTwoWeekLow)
	if q.EpsTrailingTwelveMonths != 0 {
		meta.TrailingEPS = model.Float(q.EpsTrailingTwelveMonths)
	}

	var summary quoteSummaryResponse
	resp, err := p.rest.R().
		SetPathParam("symbol", symbol).
		SetQueryParam("modules", "defaultKeyStatistics,financialData,summaryDetail").
		SetResult(&summary).
		Get(quoteSummaryURL)
	if err != nil || resp.IsError() || len(summary.QuoteSummary.Result) == 0 {
		log.Printf("[WARN] quoteSummary %s unavailable, metadata is partial: %v", symbol, err)
		return meta, nil
	}

	r := summary.QuoteSummary.Result[0]
	meta.ShortPercentOfFloat = r.DefaultKeyStatistics.ShortPercentOfFloat.Raw
	meta.DaysToCover = r.DefaultKeyStatistics.ShortRatio.Raw
	meta.RevenueGrowth = r.FinancialData.RevenueGrowth.Raw
	meta.TrailingPE = r.SummaryDetail.TrailingPE.Raw
	meta.RecommendationKey = r.FinancialData.RecommendationKey
	if de := r.FinancialData.DebtToEquity.Raw; de != nil {
		// Yahoo reports debt/equity as a percentage (e.g. 141.3); the
		// scoring rules expect a plain ratio.
		meta.DebtToEquity = model.Float(*de / 100.0)
	}
	return meta, nil
}
