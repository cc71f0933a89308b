// match plays two UCI engine binaries against each other at fixed depth,
// alternating colors each game, and prints the final score. Each game gets a
// UUID so the move logs can be correlated with external tooling.
package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/freeeve/uci"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/caesarastried-prog/clercx/internal/board"
	"github.com/caesarastried-prog/clercx/internal/logx"
)

const maxGamePlies = 400

func main() {
	var (
		enginePath1 = flag.String("engine1", "./clercx", "path to the first engine binary")
		enginePath2 = flag.String("engine2", "./clercx", "path to the second engine binary")
		games       = flag.Int("games", 2, "number of games to play")
		depth       = flag.Int("depth", 8, "search depth per move")
		hashMB      = flag.Int("hash", 64, "hash size per engine in MiB")
		threads     = flag.Int("threads", 1, "threads per engine")
		logLevel    = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logger := logx.NewLogger(*logLevel)

	eng1, err := newEngine(*enginePath1, *hashMB, *threads)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *enginePath1).Msg("start engine1")
	}
	defer eng1.Close()
	eng2, err := newEngine(*enginePath2, *hashMB, *threads)
	if err != nil {
		logger.Fatal().Err(err).Str("path", *enginePath2).Msg("start engine2")
	}
	defer eng2.Close()

	var wins1, wins2, draws int
	for g := 0; g < *games; g++ {
		// Alternate colors: engine1 is white in even games.
		white, black := eng1, eng2
		whiteIsFirst := g%2 == 0
		if !whiteIsFirst {
			white, black = eng2, eng1
		}

		gameLog := logger.With().
			Str("game_id", uuid.NewString()).
			Int("game", g+1).
			Logger()

		outcome, plies, err := playGame(white, black, *depth, gameLog)
		if err != nil {
			gameLog.Error().Err(err).Msg("game aborted")
			continue
		}
		switch {
		case outcome == 0:
			draws++
		case (outcome > 0) == whiteIsFirst:
			wins1++
		default:
			wins2++
		}
		gameLog.Info().Int("plies", plies).Int("outcome", outcome).Msg("game finished")
	}

	fmt.Printf("match: engine1 %d, engine2 %d, draws %d\n", wins1, wins2, draws)
}

func newEngine(path string, hashMB, threads int) (*uci.Engine, error) {
	eng, err := uci.NewEngine(path)
	if err != nil {
		return nil, err
	}
	opts := uci.Options{
		Hash:    hashMB,
		Threads: threads,
		MultiPV: 1,
		Ponder:  false,
		OwnBook: false,
	}
	if err := eng.SetOptions(opts); err != nil {
		eng.Close()
		return nil, err
	}
	return eng, nil
}

// playGame runs one game and returns +1 if white won, -1 if black won, and 0
// for a draw.
func playGame(white, black *uci.Engine, depth int, log zerolog.Logger) (int, int, error) {
	pos := board.NewPosition()
	var moves []string

	for ply := 0; ply < maxGamePlies; ply++ {
		if pos.IsDraw() {
			return 0, ply, nil
		}
		legal := pos.LegalMoves()
		if len(legal) == 0 {
			if pos.InCheck() {
				// The side to move is mated.
				if pos.SideToMove() == board.White {
					return -1, ply, nil
				}
				return 1, ply, nil
			}
			return 0, ply, nil // stalemate
		}

		eng := white
		if pos.SideToMove() == board.Black {
			eng = black
		}
		if err := eng.SetFEN(pos.FEN()); err != nil {
			return 0, ply, fmt.Errorf("set fen: %w", err)
		}
		results, err := eng.GoDepth(depth, uci.HighestDepthOnly)
		if err != nil {
			return 0, ply, fmt.Errorf("go depth: %w", err)
		}

		ms := strings.TrimSpace(results.BestMove)
		m, ok := findLegal(legal, ms)
		if !ok {
			return 0, ply, fmt.Errorf("engine answered illegal move %q", ms)
		}
		pos.MakeMove(m)
		moves = append(moves, ms)

		if (ply+1)%20 == 0 {
			log.Debug().Int("ply", ply+1).Str("moves", strings.Join(moves, " ")).Msg("game progress")
		}
	}
	// Never-ending shuffles count as a draw.
	return 0, maxGamePlies, nil
}

func findLegal(legal []board.Move, s string) (board.Move, bool) {
	for _, m := range legal {
		if m.String() == s {
			return m, true
		}
	}
	return board.NoMove, false
}
