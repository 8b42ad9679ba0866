package ledger

// Classification labels a net balance.
type Classification string

const (
	Profit    Classification = "Profit"
	Loss      Classification = "Loss"
	BreakEven Classification = "Break-even"
)

// Classify maps a net balance to its classification.
func Classify(net float64) Classification {
	switch {
	case net > 0:
		return Profit
	case net < 0:
		return Loss
	}
	return BreakEven
}

// ProfitLossReport carries the totals of the profit/loss view.
type ProfitLossReport struct {
	TotalCapital     float64
	TotalIncome      float64
	TotalExpenses    float64
	TotalLiabilities float64
	TotalAssets      float64
	Net              float64
	Classification   Classification
}

// MonthTotal is one point of a monthly series.
type MonthTotal struct {
	Month string // "2006-01"
	Total float64
}

// CategoryTotal is one group of a grouped sum.
type CategoryTotal struct {
	Category string
	Total    float64
}
