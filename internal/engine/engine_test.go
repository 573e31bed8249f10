package engine

import (
	"errors"
	"math"
	"reflect"
	"strings"
	"testing"

	"EquityScope/internal/model"
)

func bullishSnapshots() (cur, prev *model.IndicatorSnapshot) {
	cur = &model.IndicatorSnapshot{
		Close:       106,
		SMAShort:    model.Float(105),
		SMAMedium:   model.Float(103),
		SMALong:     model.Float(100),
		RSI:         model.Float(32),
		MACD:        model.Float(1.2),
		MACDSignal:  model.Float(1.0),
		StochK:      model.Float(40),
		StochD:      model.Float(35),
		MFI:         model.Float(55),
		OBV:         model.Float(2_000_000),
		OBVLookback: model.Float(1_500_000),
	}
	prev = &model.IndicatorSnapshot{
		Close:      104,
		SMAShort:   model.Float(104),
		SMAMedium:  model.Float(104.5),
		SMALong:    model.Float(100),
		RSI:        model.Float(34),
		MACD:       model.Float(0.8),
		MACDSignal: model.Float(0.9),
		StochK:     model.Float(30),
		StochD:     model.Float(32),
		MFI:        model.Float(50),
		OBV:        model.Float(1_900_000),
	}
	return cur, prev
}

func TestScore_InsufficientData(t *testing.T) {
	eng := New(DefaultConfig())
	cur, _ := bullishSnapshots()

	if _, err := eng.Score(cur, nil, model.Metadata{}); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
	if _, err := eng.Score(nil, cur, model.Metadata{}); !errors.Is(err, ErrInsufficientData) {
		t.Fatalf("expected ErrInsufficientData, got %v", err)
	}
}

func TestScore_Idempotent(t *testing.T) {
	eng := New(DefaultConfig())
	cur, prev := bullishSnapshots()
	meta := model.Metadata{
		ShortPercentOfFloat: model.Float(0.25),
		RevenueGrowth:       model.Float(0.12),
		DebtToEquity:        model.Float(0.8),
	}

	first, err := eng.Score(cur, prev, meta)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	second, err := eng.Score(cur, prev, meta)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("expected identical results, got %+v vs %+v", first, second)
	}
}

func TestScore_ClampInvariant(t *testing.T) {
	huge := DefaultConfig()
	huge.Trend.AlignedPoints = 1000
	huge.Momentum.RSIPoints = 1000
	huge.ShortRisk.SqueezePoints = 1000

	eng := New(huge)
	cur, prev := bullishSnapshots()
	res, err := eng.Score(cur, prev, model.Metadata{ShortPercentOfFloat: model.Float(0.3)})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if res.Score != 100 {
		t.Errorf("expected clamp to 100, got %d", res.Score)
	}

	// Flip: everything bearish with huge penalties.
	bearCur := &model.IndicatorSnapshot{
		Close:    90,
		SMAShort: model.Float(95),
		SMALong:  model.Float(100),
		RSI:      model.Float(85),
	}
	bearPrev := &model.IndicatorSnapshot{
		Close:    92,
		SMAShort: model.Float(96),
		SMALong:  model.Float(100),
		RSI:      model.Float(80),
	}
	res, err = eng.Score(bearCur, bearPrev, model.Metadata{RevenueGrowth: model.Float(-0.2)})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if res.Score != 0 {
		t.Errorf("expected clamp to 0, got %d", res.Score)
	}
}

func TestScore_ShortFloatMonotonicity(t *testing.T) {
	eng := New(DefaultConfig())

	// Sparse snapshots so the baseline sits well below the clamp: only
	// the RSI rule fires.
	cur := &model.IndicatorSnapshot{Close: 100, RSI: model.Float(32)}
	prev := &model.IndicatorSnapshot{Close: 99}

	below, err := eng.Score(cur, prev, model.Metadata{ShortPercentOfFloat: model.Float(0.15)})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	above, err := eng.Score(cur, prev, model.Metadata{ShortPercentOfFloat: model.Float(0.25)})
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	bonus := int(eng.Config().ShortRisk.SqueezePoints * eng.Config().Weights.ShortRisk)
	if above.Score != below.Score+bonus {
		t.Errorf("crossing the short-float threshold should add exactly %d, got %d -> %d",
			bonus, below.Score, above.Score)
	}
	if len(above.Reasons) != len(below.Reasons)+1 {
		t.Errorf("expected one extra reason, got %d -> %d", len(below.Reasons), len(above.Reasons))
	}
}

func TestScore_MissingStochResilience(t *testing.T) {
	eng := New(DefaultConfig())
	cur, prev := bullishSnapshots()

	// Neutral stochastic: K above D but outside the low zone, so the
	// rule does not fire.
	cur.StochK = model.Float(60)
	cur.StochD = model.Float(55)
	withStoch, err := eng.Score(cur, prev, model.Metadata{})
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	cur.StochK = nil
	cur.StochD = nil
	withoutStoch, err := eng.Score(cur, prev, model.Metadata{})
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	if withStoch.Score != withoutStoch.Score {
		t.Errorf("missing stochastic changed the score: %d vs %d", withStoch.Score, withoutStoch.Score)
	}
	for _, r := range withoutStoch.Reasons {
		if strings.Contains(r, "Stochastic") {
			t.Errorf("unexpected stochastic reason: %s", r)
		}
	}
}

func TestScore_MissingMetadataDefaults(t *testing.T) {
	eng := New(DefaultConfig())
	cur, prev := bullishSnapshots()

	res, err := eng.Score(cur, prev, model.Metadata{})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	for _, r := range res.Reasons {
		if strings.Contains(r, "leverage") || strings.Contains(r, "Squeeze") || strings.Contains(r, "Revenue") {
			t.Errorf("empty metadata must not trigger fundamental rules, got: %s", r)
		}
	}
}

func TestScore_ReasonOrderFixed(t *testing.T) {
	eng := New(DefaultConfig())

	// Everything bearish plus a squeeze: trend, RSI, MACD, stochastic,
	// then short-risk reasons must come out in that order.
	cur := &model.IndicatorSnapshot{
		Close:      90,
		SMAShort:   model.Float(95),
		SMALong:    model.Float(100),
		RSI:        model.Float(85),
		MACD:       model.Float(-0.5),
		MACDSignal: model.Float(-0.3),
		StochK:     model.Float(85),
		StochD:     model.Float(90),
	}
	prev := &model.IndicatorSnapshot{
		Close:      92,
		SMAShort:   model.Float(96),
		SMALong:    model.Float(100),
		MACD:       model.Float(0.1),
		MACDSignal: model.Float(0.0),
	}
	meta := model.Metadata{
		ShortPercentOfFloat: model.Float(0.3),
		RevenueGrowth:       model.Float(-0.1),
	}

	res, err := eng.Score(cur, prev, meta)
	if err != nil {
		t.Fatalf("score: %v", err)
	}

	wantOrder := []string{"trend", "below the short MA", "RSI", "MACD", "Stochastic", "Squeeze", "Revenue"}
	if len(res.Reasons) != len(wantOrder) {
		t.Fatalf("expected %d reasons, got %d: %v", len(wantOrder), len(res.Reasons), res.Reasons)
	}
	for i, want := range wantOrder {
		if !strings.Contains(res.Reasons[i], want) {
			t.Errorf("reason[%d] = %q, want it to mention %q", i, res.Reasons[i], want)
		}
	}
}

func TestScore_InstitutionRules(t *testing.T) {
	eng := New(DefaultConfig())
	cur, prev := bullishSnapshots()

	// Hot MFI with rising OBV triggers accumulation.
	cur.MFI = model.Float(85)
	res, err := eng.Score(cur, prev, model.Metadata{})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	found := false
	for _, r := range res.Reasons {
		if strings.Contains(r, "Institutional inflow") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected accumulation reason, got %v", res.Reasons)
	}

	// No OBV lookback history: the rule is skipped, not an error.
	cur.OBVLookback = nil
	res2, err := eng.Score(cur, prev, model.Metadata{})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	for _, r := range res2.Reasons {
		if strings.Contains(r, "Institutional inflow") {
			t.Errorf("accumulation rule must be skipped without lookback history")
		}
	}

	// Washed-out MFI is a positive reversal signal.
	cur.MFI = model.Float(15)
	res3, err := eng.Score(cur, prev, model.Metadata{})
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	found = false
	for _, r := range res3.Reasons {
		if strings.Contains(r, "washed out") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected MFI washout reason, got %v", res3.Reasons)
	}
}

// TestScore_WeightedWorkedExample pins the weighted-sum arithmetic:
// 50 + 0.5*20 + 0.5*(15+15) + 0.1*(40+45+45) = 88.
func TestScore_WeightedWorkedExample(t *testing.T) {
	cfg := Config{
		BaseScore: 50,
		Weights:   Weights{Trend: 0.5, Momentum: 0.5, Institution: 0.2, ShortRisk: 0.1},
		Trend:     TrendRules{AlignedPoints: 20, PriceAbovePoints: 0},
		Momentum: MomentumRules{
			GoldenCrossPoints: 15,
			RSIOversold:       35, RSIOverbought: 70, RSIPoints: 15,
			MACDCrossPoints: 15,
			StochOversold:   50, StochOverbought: 80, StochPoints: 15,
		},
		Institution: InstitutionRules{MFIHot: 80, MFICold: 20, AccumulationPoints: 15, ReversalPoints: 5},
		ShortRisk: ShortRiskRules{
			ShortFloatMin: 0.20, SqueezePoints: 40,
			RevenueGrowthMin: 0.10, RevenueGrowthMax: -0.05, GrowthPoints: 45,
			DebtEquityMax: 1.0, LowDebtPoints: 45,
		},
		Bands: Bands{StrongBuyMin: 80, OptimisticMin: 65, NeutralMin: 45},
	}
	eng := New(cfg)

	cur := &model.IndicatorSnapshot{
		Close:      105, // equal to the short MA so the zero-point rule stays silent
		SMAShort:   model.Float(105),
		SMALong:    model.Float(100),
		RSI:        model.Float(32),
		MACD:       model.Float(1.2),
		MACDSignal: model.Float(1.0),
	}
	prev := &model.IndicatorSnapshot{
		Close:      104,
		SMAShort:   model.Float(104),
		SMALong:    model.Float(100),
		MACD:       model.Float(0.8),
		MACDSignal: model.Float(0.9),
	}
	meta := model.Metadata{
		ShortPercentOfFloat: model.Float(0.22),
		RevenueGrowth:       model.Float(0.12),
		DebtToEquity:        model.Float(0.8),
	}

	res, err := eng.Score(cur, prev, meta)
	if err != nil {
		t.Fatalf("score: %v", err)
	}
	if res.Score != 88 {
		t.Errorf("expected score 88, got %d (reasons: %v)", res.Score, res.Reasons)
	}
	if len(res.Reasons) != 6 {
		t.Errorf("expected 6 reasons, got %d: %v", len(res.Reasons), res.Reasons)
	}
	if tier := eng.Narrative(res.Score); tier.Key != "strong-buy" {
		t.Errorf("score 88 should land in strong-buy, got %s", tier.Key)
	}
}

func TestScore_DebtDefaultNeverTriggersBonus(t *testing.T) {
	_ = New(DefaultConfig())
	if got := floatOr(nil, math.Inf(1)); !math.IsInf(got, 1) {
		t.Fatalf("expected +Inf default, got %v", got)
	}
}
