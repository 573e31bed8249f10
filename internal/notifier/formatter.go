package notifier

import (
	"fmt"
	"strings"

	"EquityScope/internal/model"
	"EquityScope/internal/recorder"
)

// FormatReport renders an analysis report as a Telegram HTML message.
func FormatReport(r *model.AnalysisReport) string {
	var b strings.Builder

	name := r.Metadata.LongName
	if name == "" {
		name = r.Symbol
	}
	b.WriteString(fmt.Sprintf("💡 <b>%s (%s)</b> | %s\n\n", name, r.Symbol, r.GeneratedAt.Format("2006-01-02")))
	b.WriteString(fmt.Sprintf("Price: $%.2f\n", r.Price))
	b.WriteString(fmt.Sprintf("Score: <b>%d/100</b> — %s\n\n", r.Result.Score, r.Tier.Label))

	if len(r.Result.Reasons) > 0 {
		b.WriteString("📚 <b>Signals:</b>\n")
		for _, reason := range r.Result.Reasons {
			b.WriteString("  • " + reason + "\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(r.Narrative)
	b.WriteString("\n\n")
	b.WriteString(formatFundamentals(&r.Metadata))
	return b.String()
}

func formatFundamentals(m *model.Metadata) string {
	var b strings.Builder
	b.WriteString("🏦 <b>Short interest &amp; fundamentals</b>\n")

	shortPct := 0.0
	if m.ShortPercentOfFloat != nil {
		shortPct = *m.ShortPercentOfFloat
	}
	riskLevel := "low"
	switch {
	case shortPct > 0.2:
		riskLevel = "extreme (squeeze fuel)"
	case shortPct > 0.1:
		riskLevel = "high"
	}
	b.WriteString(fmt.Sprintf("Short float: %.1f%% (risk: %s)\n", shortPct*100, riskLevel))
	if m.DaysToCover != nil {
		b.WriteString(fmt.Sprintf("Days to cover: %.1f\n", *m.DaysToCover))
	}
	if m.TrailingPE != nil {
		b.WriteString(fmt.Sprintf("Trailing P/E: %.1f\n", *m.TrailingPE))
	}
	if m.RevenueGrowth != nil {
		b.WriteString(fmt.Sprintf("Revenue growth (YoY): %.1f%%\n", *m.RevenueGrowth*100))
	}
	if m.DebtToEquity != nil {
		b.WriteString(fmt.Sprintf("Debt/equity: %.2f\n", *m.DebtToEquity))
	}
	if m.RecommendationKey != "" {
		b.WriteString(fmt.Sprintf("Analyst consensus: %s\n", strings.ToUpper(m.RecommendationKey)))
	}
	return b.String()
}

// FormatAlert renders a short watchlist alert line.
func FormatAlert(r *model.AnalysisReport) string {
	return fmt.Sprintf("%s <b>%s</b> scored <b>%d/100</b> at $%.2f\n\n%s",
		r.Tier.Label, r.Symbol, r.Result.Score, r.Price, r.Narrative)
}

// FormatHistory renders recent analysis records for a symbol.
func FormatHistory(symbol string, recs []recorder.AnalysisRecord) string {
	if len(recs) == 0 {
		return fmt.Sprintf("No recorded analyses for %s yet.", symbol)
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🗂 <b>%s — recent analyses</b>\n\n", symbol))
	for _, rec := range recs {
		b.WriteString(fmt.Sprintf("%s  %3d/100  %s  $%.2f\n",
			rec.Timestamp.Format("01-02 15:04"), rec.Score, rec.TierKey, rec.Price))
	}
	return b.String()
}
