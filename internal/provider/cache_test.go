package provider

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"EquityScope/internal/model"
)

func TestCachedProvider_HistoryHit(t *testing.T) {
	mock := &MockProvider{Bars: GenerateBars(100, 10)}
	cached := NewCachedProvider(mock, time.Minute)

	first, err := cached.FetchHistory("NVDA", "1y", "1d")
	require.NoError(t, err)
	second, err := cached.FetchHistory("NVDA", "1y", "1d")
	require.NoError(t, err)

	assert.Equal(t, 1, mock.HistoryCalls, "second fetch must be served from cache")
	assert.Equal(t, first, second)
}

func TestCachedProvider_KeyIncludesPeriodAndInterval(t *testing.T) {
	mock := &MockProvider{Bars: GenerateBars(100, 10)}
	cached := NewCachedProvider(mock, time.Minute)

	_, err := cached.FetchHistory("NVDA", "1y", "1d")
	require.NoError(t, err)
	_, err = cached.FetchHistory("NVDA", "6mo", "1d")
	require.NoError(t, err)
	_, err = cached.FetchHistory("NVDA", "1y", "1wk")
	require.NoError(t, err)

	assert.Equal(t, 3, mock.HistoryCalls)
}

func TestCachedProvider_TTLExpiry(t *testing.T) {
	mock := &MockProvider{Bars: GenerateBars(100, 10)}
	cached := NewCachedProvider(mock, 5*time.Minute)

	clock := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	cached.now = func() time.Time { return clock }

	_, err := cached.FetchHistory("TSLA", "1y", "1d")
	require.NoError(t, err)

	clock = clock.Add(4 * time.Minute)
	_, err = cached.FetchHistory("TSLA", "1y", "1d")
	require.NoError(t, err)
	assert.Equal(t, 1, mock.HistoryCalls, "entry still fresh at 4m")

	clock = clock.Add(2 * time.Minute)
	_, err = cached.FetchHistory("TSLA", "1y", "1d")
	require.NoError(t, err)
	assert.Equal(t, 2, mock.HistoryCalls, "entry expired at 6m")
}

func TestCachedProvider_ErrorsNotCached(t *testing.T) {
	mock := &MockProvider{BarsErr: ErrDataUnavailable}
	cached := NewCachedProvider(mock, time.Minute)

	_, err := cached.FetchHistory("AAPL", "1y", "1d")
	require.ErrorIs(t, err, ErrDataUnavailable)

	// The upstream recovers; the cache must not pin the failure.
	mock.BarsErr = nil
	mock.Bars = GenerateBars(180, 10)
	bars, err := cached.FetchHistory("AAPL", "1y", "1d")
	require.NoError(t, err)
	assert.Len(t, bars, 10)
	assert.Equal(t, 2, mock.HistoryCalls)
}

func TestCachedProvider_Metadata(t *testing.T) {
	mock := &MockProvider{Meta: model.Metadata{LongName: "Apple Inc.", TrailingPE: model.Float(28.5)}}
	cached := NewCachedProvider(mock, time.Minute)

	meta, err := cached.FetchMetadata("AAPL")
	require.NoError(t, err)
	assert.Equal(t, "AAPL", meta.Symbol)
	assert.Equal(t, "Apple Inc.", meta.LongName)

	_, err = cached.FetchMetadata("AAPL")
	require.NoError(t, err)
	assert.Equal(t, 1, mock.MetadataCalls)

	mock.MetaErr = errors.New("boom")
	_, err = cached.FetchMetadata("MSFT")
	assert.Error(t, err)
}

func TestCachedProvider_Name(t *testing.T) {
	cached := NewCachedProvider(&MockProvider{}, time.Minute)
	assert.Equal(t, "mock+cache", cached.Name())
}
