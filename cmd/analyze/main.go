// analyze replays the games of a PGN file through the engine and flags
// moves whose evaluation swings by more than a threshold, the classic
// blunder check. Accepts .pgn and .pgn.zst files.
package main

import (
	"flag"

	"github.com/freeeve/pgn/v3"
	"github.com/rs/zerolog"

	"github.com/caesarastried-prog/clercx/internal/board"
	"github.com/caesarastried-prog/clercx/internal/engine"
	"github.com/caesarastried-prog/clercx/internal/logx"
)

func main() {
	var (
		path      = flag.String("pgn", "", "PGN file to analyze")
		depth     = flag.Int("depth", 10, "search depth per position")
		threshold = flag.Int("threshold", 150, "centipawn swing that counts as a blunder")
		maxGames  = flag.Int("max-games", 0, "stop after this many games (0 = all)")
		hashMB    = flag.Int("hash", 128, "transposition table size in MiB")
		logLevel  = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logger := logx.NewLogger(*logLevel)
	if *path == "" {
		logger.Fatal().Msg("-pgn is required")
	}

	eng := engine.New(engine.Config{
		HashMB: *hashMB,
		Logger: logger,
	})

	parser := pgn.Games(*path)
	gamesSeen := 0
	blunders := 0
	stopped := false
	for game := range parser.Games {
		gamesSeen++
		gameLog := logger.With().
			Int("game", gamesSeen).
			Str("white", game.Tags["White"]).
			Str("black", game.Tags["Black"]).
			Logger()
		blunders += analyzeGame(eng, game, *depth, *threshold, gameLog)

		if *maxGames > 0 && gamesSeen >= *maxGames {
			if !stopped {
				parser.Stop()
				stopped = true
			}
			break
		}
	}
	if err := parser.Err(); err != nil {
		logger.Fatal().Err(err).Str("pgn", *path).Msg("parse pgn")
	}

	logger.Info().Int("games", gamesSeen).Int("blunders", blunders).Msg("analysis complete")
}

// analyzeGame evaluates every position of one game. Scores are tracked from
// white's perspective; a drop bigger than the threshold across the mover's
// own move is reported.
func analyzeGame(eng *engine.Engine, game *pgn.Game, depth, threshold int, log zerolog.Logger) int {
	replay := pgn.NewStartingPosition()
	eng.NewGame()

	blunders := 0
	havePrev := false
	prevWhiteScore := 0

	for i, mv := range game.Moves {
		pos, err := board.ParseFEN(replay.ToFEN())
		if err != nil {
			log.Warn().Err(err).Int("ply", i).Msg("unreadable position, skipping game")
			return blunders
		}

		res := eng.Search(pos, engine.Limits{Depth: depth})
		whiteScore := res.Score
		if pos.SideToMove() == board.Black {
			whiteScore = -whiteScore
		}

		if havePrev {
			// The move leading here was played by the previous side to move.
			moverWasWhite := pos.SideToMove() == board.Black
			swing := whiteScore - prevWhiteScore
			if !moverWasWhite {
				swing = -swing
			}
			if swing < -threshold {
				blunders++
				log.Info().
					Int("ply", i).
					Int("swing_cp", swing).
					Interface("played", game.Moves[i-1]).
					Msg("blunder")
			}
		}
		prevWhiteScore = whiteScore
		havePrev = true

		if err := pgn.ApplyMove(replay, mv); err != nil {
			log.Warn().Err(err).Int("ply", i).Msg("cannot replay move, skipping rest of game")
			return blunders
		}
	}
	return blunders
}
