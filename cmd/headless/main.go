// Headless bot runner: drives full simulated runs without a renderer.
// Useful for balancing the difficulty curve and for smoke-testing the
// whole stack (store, progression, session, optional relay sync).
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/config"
	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/game"
	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/multiplayer"
	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/progress"
	"github.com/whoisd3/Ultimate-Reaction-Driver/internal/store"
)

func main() {
	var (
		runs     = flag.Int("runs", 3, "number of runs to simulate")
		modeName = flag.String("mode", "classic", "game mode: classic, timeattack or survival")
	)
	flag.Parse()

	cfg := config.Load()
	config.SetupLogger(cfg)

	mode, err := game.ParseMode(*modeName)
	if err != nil {
		slog.Error("bad mode", "error", err)
		os.Exit(1)
	}

	kv, err := openStore(cfg)
	if err != nil {
		slog.Error("failed to open store", "driver", cfg.StoreDriver, "error", err)
		os.Exit(1)
	}

	pstore := progress.Open(kv)
	defer pstore.Close()

	var syncer *multiplayer.Sync
	if cfg.RelayURL != "" {
		ch, err := multiplayer.DialRelay(context.Background(), cfg.RelayURL, cfg.RoomCode, cfg.DisplayName)
		if err != nil {
			slog.Warn("relay unavailable, running offline", "error", err)
		} else {
			syncer = multiplayer.NewSync(ch)
			defer syncer.Close()
			slog.Info("joined relay room", "room", ch.Room())
		}
	}

	sess := game.NewSession(pstore, game.WithNotify(logEvent))
	if err := sess.Ready(); err != nil {
		slog.Error("session not ready", "error", err)
		os.Exit(1)
	}

	clock := game.NewClock()
	rng := rand.New(rand.NewSource(42))

	for i := 0; i < *runs; i++ {
		if err := sess.Start(mode); err != nil {
			slog.Error("failed to start run", "error", err)
			os.Exit(1)
		}
		slog.Info("run started", "run", i+1, "mode", mode.String())

		ctx, cancel := context.WithCancel(context.Background())
		tick := 0
		clock.Run(ctx, func(delta float64) {
			// Crude bot: reconsider the lane twice a second.
			if tick%30 == 0 {
				steer(sess, rng)
			}
			tick++

			sess.Update(delta)
			if syncer != nil && sess.State() == game.StatePlaying {
				syncer.BroadcastPosition(sess.PlayerX(), game.PlayerY, game.PlayerZ, sess.Lane())
			}
			if sess.State() == game.StateGameOver {
				cancel()
			}
		})
		cancel()

		slog.Info("run finished",
			"run", i+1,
			"score", int(sess.Score()),
			"distance", int(sess.Distance()),
			"elapsed", fmt.Sprintf("%.1fs", sess.Elapsed()))
	}

	printSummary(pstore.Progress(), mode)
}

func steer(sess *game.Session, rng *rand.Rand) {
	switch rng.Intn(3) {
	case 0:
		sess.MoveLeft()
	case 1:
		sess.MoveRight()
	}
}

func openStore(cfg *config.Config) (store.KV, error) {
	switch cfg.StoreDriver {
	case "memory":
		return store.NewMemory(), nil
	case "file":
		return store.NewFile(cfg.StorePath)
	case "postgres":
		return store.NewPostgres(context.Background(), cfg.DatabaseURL)
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

func logEvent(ev game.Event) {
	switch ev.Kind {
	case game.EventShieldAbsorbed:
		slog.Info("shield absorbed a hit")
	case game.EventPowerUp:
		slog.Info("power-up collected", "type", ev.PowerUp.String())
	case game.EventLevelUp:
		slog.Info("level up", "level", ev.Level)
	case game.EventGameOver:
		slog.Info("game over", "score", int(ev.Score), "xp", ev.XPEarned)
	}
}

func printSummary(p *progress.Progress, mode game.Mode) {
	slog.Info("progression",
		"level", p.Level,
		"xp", p.XP,
		"next_level_at", progress.XPForNextLevel(p.Level),
		"skill_points", p.SkillPoints)
	for i, entry := range p.Leaderboard(mode.String()) {
		slog.Info("leaderboard entry", "rank", i+1, "score", entry.Score, "player", entry.DisplayName)
	}
}
