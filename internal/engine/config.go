package engine

import "fmt"

// Weights distributes the four rule dimensions into the final score.
// A weight of 1.0 per dimension reproduces the plain raw-sum variant.
type Weights struct {
	Trend       float64 `yaml:"trend"`
	Momentum    float64 `yaml:"momentum"`
	Institution float64 `yaml:"institution"`
	ShortRisk   float64 `yaml:"short_risk"`
}

// TrendRules configures the long-term trend dimension.
type TrendRules struct {
	AlignedPoints    float64 `yaml:"aligned_points"`     // short MA above/below long MA, symmetric
	PriceAbovePoints float64 `yaml:"price_above_points"` // close above/below short MA, symmetric
}

// MomentumRules configures the short-term momentum dimension.
type MomentumRules struct {
	GoldenCrossPoints float64 `yaml:"golden_cross_points"`
	RSIOversold       float64 `yaml:"rsi_oversold"`
	RSIOverbought     float64 `yaml:"rsi_overbought"`
	RSIPoints         float64 `yaml:"rsi_points"`
	MACDCrossPoints   float64 `yaml:"macd_cross_points"`
	StochOversold     float64 `yaml:"stoch_oversold"`
	StochOverbought   float64 `yaml:"stoch_overbought"`
	StochPoints       float64 `yaml:"stoch_points"`
}

// InstitutionRules configures the money-flow dimension.
type InstitutionRules struct {
	MFIHot             float64 `yaml:"mfi_hot"`
	MFICold            float64 `yaml:"mfi_cold"`
	AccumulationPoints float64 `yaml:"accumulation_points"`
	ReversalPoints     float64 `yaml:"reversal_points"`
}

// ShortRiskRules configures the fundamental / short-interest dimension.
type ShortRiskRules struct {
	ShortFloatMin    float64 `yaml:"short_float_min"`
	SqueezePoints    float64 `yaml:"squeeze_points"`
	RevenueGrowthMin float64 `yaml:"revenue_growth_min"`
	RevenueGrowthMax float64 `yaml:"revenue_growth_max"` // negative bound, triggers the penalty below it
	GrowthPoints     float64 `yaml:"growth_points"`
	DebtEquityMax    float64 `yaml:"debt_equity_max"`
	LowDebtPoints    float64 `yaml:"low_debt_points"`
}

// Bands holds the narrative tier boundaries, evaluated high to low.
type Bands struct {
	StrongBuyMin  int `yaml:"strong_buy_min"`
	OptimisticMin int `yaml:"optimistic_min"`
	NeutralMin    int `yaml:"neutral_min"`
}

// Config is the full scoring configuration. Every threshold, point value,
// weight, and band boundary the engine uses lives here; the rule bodies
// carry no literals.
type Config struct {
	BaseScore   float64          `yaml:"base_score"`
	Weights     Weights          `yaml:"weights"`
	Trend       TrendRules       `yaml:"trend"`
	Momentum    MomentumRules    `yaml:"momentum"`
	Institution InstitutionRules `yaml:"institution"`
	ShortRisk   ShortRiskRules   `yaml:"short_risk"`
	Bands       Bands            `yaml:"bands"`
}

// DefaultConfig is the "classic" preset.
func DefaultConfig() Config {
	cfg, _ := Preset("classic")
	return cfg
}

// Preset returns one of the three built-in scoring personalities.
func Preset(name string) (Config, error) {
	switch name {
	case "", "classic":
		// Raw-sum variant: unit weights, the rule points land directly
		// on the base score.
		return Config{
			BaseScore: 50,
			Weights:   Weights{Trend: 1.0, Momentum: 1.0, Institution: 1.0, ShortRisk: 1.0},
			Trend:     TrendRules{AlignedPoints: 15, PriceAbovePoints: 5},
			Momentum: MomentumRules{
				GoldenCrossPoints: 10,
				RSIOversold:       35, RSIOverbought: 70, RSIPoints: 10,
				MACDCrossPoints: 10,
				StochOversold:   50, StochOverbought: 80, StochPoints: 10,
			},
			Institution: InstitutionRules{MFIHot: 80, MFICold: 20, AccumulationPoints: 10, ReversalPoints: 5},
			ShortRisk: ShortRiskRules{
				ShortFloatMin: 0.20, SqueezePoints: 15,
				RevenueGrowthMin: 0.10, RevenueGrowthMax: -0.05, GrowthPoints: 10,
				DebtEquityMax: 1.0, LowDebtPoints: 5,
			},
			Bands: Bands{StrongBuyMin: 80, OptimisticMin: 65, NeutralMin: 45},
		}, nil
	case "momentum":
		// Momentum-heavy weighted variant with the tighter RSI bands.
		return Config{
			BaseScore: 50,
			Weights:   Weights{Trend: 0.25, Momentum: 0.50, Institution: 0.15, ShortRisk: 0.10},
			Trend:     TrendRules{AlignedPoints: 20, PriceAbovePoints: 10},
			Momentum: MomentumRules{
				GoldenCrossPoints: 15,
				RSIOversold:       30, RSIOverbought: 80, RSIPoints: 15,
				MACDCrossPoints: 15,
				StochOversold:   50, StochOverbought: 80, StochPoints: 15,
			},
			Institution: InstitutionRules{MFIHot: 80, MFICold: 20, AccumulationPoints: 20, ReversalPoints: 10},
			ShortRisk: ShortRiskRules{
				ShortFloatMin: 0.20, SqueezePoints: 20,
				RevenueGrowthMin: 0.10, RevenueGrowthMax: -0.05, GrowthPoints: 15,
				DebtEquityMax: 1.0, LowDebtPoints: 15,
			},
			Bands: Bands{StrongBuyMin: 75, OptimisticMin: 60, NeutralMin: 40},
		}, nil
	case "conservative":
		// Fundamental-tilted variant with symmetric dimension weights.
		return Config{
			BaseScore: 50,
			Weights:   Weights{Trend: 0.30, Momentum: 0.30, Institution: 0.10, ShortRisk: 0.30},
			Trend:     TrendRules{AlignedPoints: 20, PriceAbovePoints: 10},
			Momentum: MomentumRules{
				GoldenCrossPoints: 15,
				RSIOversold:       30, RSIOverbought: 75, RSIPoints: 15,
				MACDCrossPoints: 15,
				StochOversold:   50, StochOverbought: 80, StochPoints: 10,
			},
			Institution: InstitutionRules{MFIHot: 80, MFICold: 20, AccumulationPoints: 15, ReversalPoints: 5},
			ShortRisk: ShortRiskRules{
				ShortFloatMin: 0.20, SqueezePoints: 10,
				RevenueGrowthMin: 0.10, RevenueGrowthMax: -0.05, GrowthPoints: 15,
				DebtEquityMax: 1.0, LowDebtPoints: 15,
			},
			Bands: Bands{StrongBuyMin: 80, OptimisticMin: 65, NeutralMin: 45},
		}, nil
	}
	return Config{}, fmt.Errorf("unknown scoring preset %q", name)
}
