package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// The teacher has no analogous config package (its tunables are inline
// constants in board.go/maxn.go), so there's no existing test style to
// follow here. This is a light sanity check that Default's budget accounts
// for network overhead and that the timing fields are internally consistent,
// not a test of search behavior.
func TestDefault_TimingBudgetLeavesRoomForSearch(t *testing.T) {
	cfg := Default()
	assert.Greater(t, cfg.ResponseTimeBudget, cfg.NetworkOverhead,
		"the response budget must exceed the network overhead or no time remains for search")
	assert.Greater(t, cfg.ResponseTimeBudget-cfg.NetworkOverhead, cfg.MinTimeRemaining)
	assert.LessOrEqual(t, cfg.InitialDepth, cfg.MaxSearchDepth)
}

func TestDefault_StrategyThresholdsAreSane(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 2, cfg.MinSnakesFor1v1, "two active snakes is the boundary for the alpha-beta fallback")
	assert.GreaterOrEqual(t, cfg.MinCPUsForParallel, 1)
	assert.Greater(t, cfg.MaxLocalityDistance, 0)
}
