// Command server exposes the decision engine over the Battlesnake HTTP API,
// adapted from the teacher's main.go/api.go. All of this package is outside
// spec.md's core contract (§1's "HTTP surface ... outside of scope"); it
// exists only to give the core a process to run inside. internal/engine
// never imports net/http.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brensch/snakecore/internal/config"
	"github.com/brensch/snakecore/internal/engine"
	"github.com/brensch/snakecore/internal/logging"
	"github.com/brensch/snakecore/internal/notify"
	"github.com/brensch/snakecore/internal/protocol"
)

type server struct {
	cfg      config.Config
	logger   *slog.Logger
	notifier *notify.Notifier
}

func main() {
	logger := logging.New(os.Stdout, slog.LevelInfo)

	cfg := config.Default()
	if url := os.Getenv("DISCORD_WEBHOOK_URL"); url != "" {
		cfg.DiscordWebhookURL = url
	}

	srv := &server{
		cfg:      cfg,
		logger:   logger,
		notifier: notify.New(cfg.DiscordWebhookURL, logger),
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	ctx := context.Background()
	srv.notifier.Send(ctx, "starting up", nil)

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("/start", srv.handleStart)
	mux.HandleFunc("/move", srv.handleMove)
	mux.HandleFunc("/end", srv.handleEnd)

	logger.Info("starting battlesnake server", "port", port)
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Error("server exited", "err", err)
		os.Exit(1)
	}
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]string{
		"apiversion": "1",
		"author":     "snakecore",
		"color":      "#888888",
		"head":       "default",
		"tail":       "default",
		"version":    "1.0.0",
	})
}

func (s *server) handleStart(w http.ResponseWriter, r *http.Request) {
	var g protocol.BattleSnakeGame
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	var opponents []string
	for _, snake := range g.Board.Snakes {
		if snake.ID == g.You.ID {
			continue
		}
		opponents = append(opponents, snake.Name)
	}

	s.logger.Info("game started", "game_id", g.Game.ID, "you", g.You.ID)
	s.notifier.Send(r.Context(), fmt.Sprintf("game %s started against %s", g.Game.ID, strings.Join(opponents, ", ")), nil)

	writeJSON(w, map[string]string{})
}

func (s *server) handleMove(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	correlationID := uuid.NewString()
	logger := s.logger.With("correlation_id", correlationID)

	var g protocol.BattleSnakeGame
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	board, ourIndex := g.ToBoard()

	cfg := s.cfg
	if g.Game.Timeout > 0 {
		cfg.ResponseTimeBudget = time.Duration(g.Game.Timeout) * time.Millisecond
	}

	ctx, cancel := context.WithTimeout(r.Context(), cfg.ResponseTimeBudget)
	defer cancel()

	move := engine.Decide(ctx, board, ourIndex, cfg, logger)

	writeJSON(w, map[string]string{
		"move":  protocol.MoveString(move),
		"shout": "",
	})

	logger.Info("move processed",
		"game_id", g.Game.ID,
		"snake_id", g.You.ID,
		"turn", g.Turn,
		"move", move.String(),
		"duration_ms", time.Since(start).Milliseconds(),
	)
}

func (s *server) handleEnd(w http.ResponseWriter, r *http.Request) {
	var g protocol.BattleSnakeGame
	if err := json.NewDecoder(r.Body).Decode(&g); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	outcome, reason := protocol.DescribeOutcome(g)
	s.logger.Info("game ended", "game_id", g.Game.ID, "turn", g.Turn, "outcome", outcome, "reason", reason)

	embed := notify.Embed{
		Title:       fmt.Sprintf("game %s finished on turn %d", g.Game.ID, g.Turn),
		Description: reason,
		Color:       protocol.Color(outcome),
		Timestamp:   notify.Timestamp(time.Now()),
	}
	s.notifier.Send(r.Context(), fmt.Sprintf("https://play.battlesnake.com/game/%s", g.Game.ID), []notify.Embed{embed})

	writeJSON(w, map[string]string{})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}
