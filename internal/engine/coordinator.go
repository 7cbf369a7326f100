package engine

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/brensch/snakecore/internal/config"
	"github.com/brensch/snakecore/internal/game"
	"github.com/brensch/snakecore/internal/locality"
	"github.com/brensch/snakecore/internal/moves"
	"github.com/brensch/snakecore/internal/ordering"
	"github.com/brensch/snakecore/internal/search"
	"github.com/brensch/snakecore/internal/tt"
)

// Coordinator runs the iterative-deepening driver of spec.md §4.I: it
// repeatedly searches at increasing depth, picking a search strategy
// (sequential alpha-beta/MaxN, or parallel root split) based on the number
// of active snakes and available CPUs, publishing each iteration's result
// to a SharedSearchState and stopping once the time model predicts the next
// iteration would not finish inside the turn's remaining budget.
type Coordinator struct {
	Table  *tt.Table
	Logger *slog.Logger
}

// NewCoordinator builds a Coordinator with a fresh transposition table of
// 100,000 entries, and logger defaulting to slog.Default() if nil.
func NewCoordinator(cfg config.Config, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Coordinator{Table: tt.New(100_000), Logger: logger}
}

// Run performs iterative deepening from cfg.InitialDepth to cfg.MaxSearchDepth,
// starting at deadline and bounded by cfg.ResponseTimeBudget minus
// cfg.NetworkOverhead, and returns the best move known when the budget is
// exhausted. It always returns a legal move if one exists (spec.md §7: the
// core must always answer).
func (c *Coordinator) Run(ctx context.Context, b game.Board, ourIndex int, cfg config.Config, deadline time.Time) (game.Direction, error) {
	if !b.Snakes[ourIndex].Alive() {
		return game.Up, nil
	}

	fallback := seedMove(b, ourIndex)
	shared := NewSharedSearchState()
	shared.Update(cfg.Eval.DeadSnakeScore, fallback)

	if game.Terminal(b) {
		return fallback, nil
	}

	c.Table.NewAge()
	killers := ordering.NewKillerTable(cfg.KillerMovesPerDepth)
	history := ordering.NewHistoryTable()
	var pvLine []game.Direction

	for depth := cfg.InitialDepth; depth <= cfg.MaxSearchDepth; depth++ {
		remaining := time.Until(deadline)
		if remaining < cfg.MinTimeRemaining {
			c.Logger.Debug("stopping iterative deepening, insufficient time remaining", "depth", depth, "remaining_ms", remaining.Milliseconds())
			break
		}

		estimate := estimateIterationTime(b, depth, cfg)
		if estimate > remaining {
			c.Logger.Debug("stopping iterative deepening, next depth predicted to exceed budget", "depth", depth, "estimate_ms", estimate.Milliseconds(), "remaining_ms", remaining.Milliseconds())
			break
		}

		killers.Clear()
		history.Clear()
		shared.ResetIteration()
		shared.SetDepth(depth)

		score, move, err := c.runIteration(ctx, b, ourIndex, depth, cfg, killers, history, pvLine)
		if err != nil {
			c.Logger.Warn("iteration aborted", "depth", depth, "err", err)
			break
		}
		shared.Update(score, move)
		shared.MarkComplete()
		pvLine = appendPV(pvLine, move)

		c.Logger.Debug("iteration complete", "depth", depth, "score", score, "move", move.String())
	}

	_, best, ok := shared.Best()
	if !ok {
		return fallback, nil
	}
	if !isLegal(b, ourIndex, best) {
		return fallback, nil
	}
	return best, nil
}

func (c *Coordinator) runIteration(ctx context.Context, b game.Board, ourIndex, depth int, cfg config.Config, killers *ordering.KillerTable, history *ordering.HistoryTable, pvLine []game.Direction) (float64, game.Direction, error) {
	sc := &search.Context{TT: c.Table, Killers: killers, History: history, Cfg: cfg, PVLine: pvLine}

	living := b.LivingCount()
	if living <= cfg.MinSnakesFor1v1 {
		opp := otherLivingIndex(b, ourIndex)
		if opp < 0 {
			return cfg.Eval.DeadSnakeScore, seedMove(b, ourIndex), nil
		}
		if shouldParallelize(b, cfg) {
			return c.runParallelAlphaBeta(ctx, b, ourIndex, opp, depth, sc)
		}
		score, move := search.AlphaBeta(b, ourIndex, opp, depth, sc)
		return score, move, nil
	}

	if shouldParallelize(b, cfg) {
		return c.runParallelMaxN(ctx, b, ourIndex, depth, sc)
	}
	tuple, move := search.MaxN(b, ourIndex, depth, sc)
	return tuple[ourIndex], move, nil
}

func shouldParallelize(b game.Board, cfg config.Config) bool {
	return runtime.NumCPU() >= cfg.MinCPUsForParallel
}

// runParallelAlphaBeta fans out one worker per legal root move, each scoring
// its move independently via AlphaBetaRootMove and publishing to its own
// result slot; the workers share the transposition table but each uses its
// own killer/history tables, since those are inherently per-search-order
// and would otherwise race on interpretation (spec.md §4.I/§9).
func (c *Coordinator) runParallelAlphaBeta(ctx context.Context, b game.Board, ourIndex, oppIndex, depth int, sc *search.Context) (float64, game.Direction, error) {
	candidates := legalRootMoves(b, ourIndex)
	scores := make([]float64, len(candidates))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, m := range candidates {
		i, m := i, m
		g.Go(func() error {
			workerSC := &search.Context{TT: sc.TT, Killers: ordering.NewKillerTable(sc.Cfg.KillerMovesPerDepth), History: ordering.NewHistoryTable(), Cfg: sc.Cfg, PVLine: sc.PVLine}
			scores[i] = search.AlphaBetaRootMove(b, ourIndex, oppIndex, depth, m, workerSC)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, candidates[0], err
	}
	return bestScored(candidates, scores)
}

// runParallelMaxN mirrors runParallelAlphaBeta for the MaxN kernel.
func (c *Coordinator) runParallelMaxN(ctx context.Context, b game.Board, ourIndex, depth int, sc *search.Context) (float64, game.Direction, error) {
	candidates := legalRootMoves(b, ourIndex)
	scores := make([]float64, len(candidates))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, m := range candidates {
		i, m := i, m
		g.Go(func() error {
			workerSC := &search.Context{TT: sc.TT, Killers: ordering.NewKillerTable(sc.Cfg.KillerMovesPerDepth), History: ordering.NewHistoryTable(), Cfg: sc.Cfg, PVLine: sc.PVLine}
			tuple := search.MaxNRootMove(b, ourIndex, depth, m, workerSC)
			scores[i] = tuple[ourIndex]
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return 0, candidates[0], err
	}
	return bestScored(candidates, scores)
}

func bestScored(candidates []game.Direction, scores []float64) (float64, game.Direction, error) {
	bestIdx := 0
	for i, s := range scores {
		if s > scores[bestIdx] {
			bestIdx = i
		}
	}
	return scores[bestIdx], candidates[bestIdx], nil
}

func legalRootMoves(b game.Board, ourIndex int) []game.Direction {
	safe := moves.Safe(b, ourIndex)
	if len(safe) > 0 {
		return safe
	}
	basic := moves.BasicLegal(b, ourIndex)
	if len(basic) > 0 {
		return basic
	}
	return game.AllDirections[:]
}

func otherLivingIndex(b game.Board, ourIndex int) int {
	for i, s := range b.Snakes {
		if i != ourIndex && s.Alive() {
			return i
		}
	}
	return -1
}

func seedMove(b game.Board, ourIndex int) game.Direction {
	legal := legalRootMoves(b, ourIndex)
	return legal[0]
}

func isLegal(b game.Board, ourIndex int, d game.Direction) bool {
	for _, m := range legalRootMoves(b, ourIndex) {
		if m == d {
			return true
		}
	}
	return false
}

func appendPV(pv []game.Direction, move game.Direction) []game.Direction {
	return append([]game.Direction{move}, pv...)
}

// estimateIterationTime applies the time model of spec.md §4.I: base
// iteration time for the current mode (1v1 vs multiplayer), scaled by the
// branching factor raised to depth, and further scaled by the locality
// filter's active-set size rather than the board's full snake count.
func estimateIterationTime(b game.Board, depth int, cfg config.Config) time.Duration {
	mode := cfg.Multiplayer
	if b.LivingCount() <= cfg.MinSnakesFor1v1 {
		mode = cfg.OneVOne
	}
	active := locality.ActiveSet(b, 0, depth, cfg.HeadDistanceMultiplier, cfg.MaxLocalityDistance)
	branchingScale := 1.0
	for i := 0; i < depth; i++ {
		branchingScale *= mode.BranchingFactor
	}
	estimate := float64(mode.BaseIterationTime) * branchingScale * float64(len(active))
	return time.Duration(estimate)
}
