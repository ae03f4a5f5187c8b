package backtest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wager outcomes
const (
	OutcomeWin  = "win"
	OutcomeLoss = "loss"
	OutcomePush = "push"
)

// Wager is one simulated fixed-stake bet and its settlement
type Wager struct {
	GameID      uuid.UUID
	Date        time.Time
	Season      int
	Side        string
	Probability float64
	Implied     float64
	Price       int
	Stake       decimal.Decimal
	Profit      decimal.Decimal
	Outcome     string
}

// Won reports whether the wager settled as a win
func (w Wager) Won() bool {
	return w.Outcome == OutcomeWin
}

// Ledger accumulates wagers with exact decimal arithmetic. Pushes return the
// stake and are excluded from win-rate and calibration accounting.
type Ledger struct {
	Wagers      []Wager
	TotalStaked decimal.Decimal
	NetProfit   decimal.Decimal
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{TotalStaked: decimal.Zero, NetProfit: decimal.Zero}
}

// Record appends a settled wager and updates the running totals
func (l *Ledger) Record(w Wager) {
	l.Wagers = append(l.Wagers, w)
	if w.Outcome == OutcomePush {
		return
	}
	l.TotalStaked = l.TotalStaked.Add(w.Stake)
	l.NetProfit = l.NetProfit.Add(w.Profit)
}

// Settled returns the wagers that were not pushed
func (l *Ledger) Settled() []Wager {
	out := make([]Wager, 0, len(l.Wagers))
	for _, w := range l.Wagers {
		if w.Outcome != OutcomePush {
			out = append(out, w)
		}
	}
	return out
}

// Wins counts winning wagers
func (l *Ledger) Wins() int {
	wins := 0
	for _, w := range l.Wagers {
		if w.Won() {
			wins++
		}
	}
	return wins
}

// ROI returns net profit over total staked, zero when nothing was staked
func (l *Ledger) ROI() float64 {
	if l.TotalStaked.IsZero() {
		return 0
	}
	roi, _ := l.NetProfit.Div(l.TotalStaked).Float64()
	return roi
}
