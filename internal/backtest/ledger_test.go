package backtest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedgerROIScenario(t *testing.T) {
	l := NewLedger()
	// Stake 10 at +150 and win, stake 10 and lose: net +5 on 20 staked
	l.Record(wager(0.45, 150, OutcomeWin, 2025))
	l.Record(wager(0.60, -110, OutcomeLoss, 2025))

	assert.Equal(t, 1, l.Wins())
	assert.Equal(t, "20", l.TotalStaked.String())
	assert.Equal(t, "5", l.NetProfit.String())
	assert.InDelta(t, 0.25, l.ROI(), 1e-9)
}

func TestLedgerPushRefundsStake(t *testing.T) {
	l := NewLedger()
	l.Record(wager(0.55, -110, OutcomePush, 2025))
	l.Record(wager(0.55, -110, OutcomeWin, 2025))

	assert.Len(t, l.Wagers, 2)
	assert.Len(t, l.Settled(), 1)
	assert.Equal(t, "10", l.TotalStaked.String())
	assert.Equal(t, 1, l.Wins())
}

func TestLedgerEmptyROI(t *testing.T) {
	assert.Equal(t, 0.0, NewLedger().ROI())
}
