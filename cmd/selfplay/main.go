// Command selfplay plays engine-vs-engine games, archives each batch as
// Parquet, and indexes completed games in SQLite.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/adambyle/goblet/game"
	"github.com/adambyle/goblet/logging"
	"github.com/adambyle/goblet/selfplay"
	"github.com/adambyle/goblet/store"
)

func main() {
	games := flag.Int("games", getEnvIntOrDefault("GAMES", 10), "Number of games to play")
	depth := flag.Int("depth", getEnvIntOrDefault("DEPTH", 3), "Search depth per move")
	maxTurns := flag.Int("max-turns", getEnvIntOrDefault("MAX_TURNS", 200), "Turn cap per game (draw when hit)")
	outDir := flag.String("out-dir", getEnvOrDefault("OUT_DIR", "data"), "Directory for batch .parquet files")
	dbPath := flag.String("db", getEnvOrDefault("GAMES_DB", "data/games.db"), "SQLite games index path")
	verbose := flag.Bool("verbose", false, "Log every move")
	flag.Parse()

	logger := slog.New(logging.NewPrettyJSONHandler(os.Stdout, nil))

	db, err := store.OpenDB(*dbPath)
	if err != nil {
		logger.Error("open games db", "path", *dbPath, "err", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("starting self-play",
		"games", *games, "depth", *depth, "max_turns", *maxTurns, "out_dir", *outDir)

	for i := 0; i < *games; i++ {
		gameID := fmt.Sprintf("selfplay_%d_%d", time.Now().UnixNano(), i)

		cfg := selfplay.Config{
			GameID:   gameID,
			Depth:    *depth,
			MaxTurns: *maxTurns,
		}
		if *verbose {
			cfg.OnTurn = func(p selfplay.Progress) {
				logger.Info("move",
					"game", gameID, "turn", p.Turn,
					"mover", p.Mover.String(), "move", p.Move.String(), "score", p.Score.String())
			}
		}

		start := time.Now()
		rows, result, err := selfplay.PlayGame(cfg)
		if err != nil {
			logger.Error("play game", "game", gameID, "err", err)
			os.Exit(1)
		}

		batchPath, err := store.WriteBatchParquetAtomic(*outDir, rows)
		if err != nil {
			logger.Error("write batch", "game", gameID, "err", err)
			os.Exit(1)
		}

		winner := ""
		if result.Winner != game.Empty {
			winner = result.Winner.String()
		}
		if err := db.InsertGame(store.Game{
			ID:        gameID,
			Winner:    winner,
			Turns:     result.Turns,
			Depth:     *depth,
			BatchPath: batchPath,
		}); err != nil {
			logger.Error("index game", "game", gameID, "err", err)
			os.Exit(1)
		}

		logger.Info("game complete",
			"game", gameID, "winner", winner, "turns", result.Turns,
			"rows", len(rows), "batch", batchPath, "elapsed", time.Since(start).String())
	}

	total, err := db.CountGames()
	if err == nil {
		logger.Info("done", "indexed_games", total)
	}
}

func getEnvOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvIntOrDefault(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
