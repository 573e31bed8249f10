package engine

import "EquityScope/internal/model"

// The four advisory tiers. Band boundaries come from config; the tier
// texts are fixed.
var (
	tierStrongBuy = model.Tier{
		Key:   "strong-buy",
		Label: "🎯 Buy",
		Advice: "✨ Strong buy signal: every dimension is resonating — trend intact, " +
			"short-term momentum engaged, and squeeze fuel on the table. Execute a buy plan now.",
	}
	tierOptimistic = model.Tier{
		Key:   "cautious-optimistic",
		Label: "📈 Cautiously optimistic",
		Advice: "🚀 Cautiously optimistic: the long-term trend is established and institutional " +
			"money keeps flowing in despite short-term chop. A good window for building a position.",
	}
	tierNeutral = model.Tier{
		Key:   "neutral-watch",
		Label: "🟡 Neutral watch",
		Advice: "🟡 Neutral watch: signals are split and bulls and bears are deadlocked. " +
			"Wait for a clean MA or stochastic crossover before committing.",
	}
	tierAvoid = model.Tier{
		Key:   "avoid-risk",
		Label: "🛑 Avoid risk",
		Advice: "🛑 Avoid risk: the long-term trend has rolled over and most indicators are " +
			"flashing warnings. Stop buying; consider trimming or exiting.",
	}
)

// Narrative maps a score to its advisory tier. Bands are evaluated high
// to low and cover every integer in [0,100] with no gaps.
func (e *Engine) Narrative(score int) model.Tier {
	switch {
	case score >= e.cfg.Bands.StrongBuyMin:
		return tierStrongBuy
	case score >= e.cfg.Bands.OptimisticMin:
		return tierOptimistic
	case score >= e.cfg.Bands.NeutralMin:
		return tierNeutral
	default:
		return tierAvoid
	}
}
