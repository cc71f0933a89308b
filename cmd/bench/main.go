// bench runs a fixed-depth search over every position of an EPD suite and
// reports nodes, speed, and best-move agreement. Without -suite it uses a
// small built-in set so the binary is self-contained.
package main

import (
	"flag"
	"fmt"
	"time"

	"github.com/caesarastried-prog/clercx/internal/board"
	"github.com/caesarastried-prog/clercx/internal/engine"
	"github.com/caesarastried-prog/clercx/internal/epd"
	"github.com/caesarastried-prog/clercx/internal/logx"
)

// builtinSuite keeps bench usable without a suite file on disk.
var builtinSuite = []epd.Record{
	{FEN: board.StartFEN, ID: "startpos"},
	{FEN: "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1", ID: "kiwipete"},
	{FEN: "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", ID: "endgame"},
	{FEN: "r2q1rk1/ppp2ppp/3bbn2/3p4/8/1B1P4/PPP2PPP/RNB1QRK1 w - - 0 1", ID: "middlegame"},
	{FEN: "6k1/5ppp/8/8/8/8/5PPP/R5K1 w - - 0 1", ID: "backrank", BestMoves: []string{"a1a8"}},
	{FEN: "4k3/8/8/3q4/3R4/8/8/4K3 w - - 0 1", ID: "hanging-queen", BestMoves: []string{"d4d5"}},
}

func main() {
	var (
		suitePath = flag.String("suite", "", "EPD suite file (.epd or .epd.zst); empty = built-in set")
		depth     = flag.Int("depth", 10, "search depth per position")
		hashMB    = flag.Int("hash", 64, "transposition table size in MiB")
		threads   = flag.Int("threads", 1, "search threads")
		logLevel  = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logger := logx.NewLogger(*logLevel)

	records := builtinSuite
	if *suitePath != "" {
		var err error
		records, err = epd.Load(*suitePath)
		if err != nil {
			logger.Fatal().Err(err).Str("suite", *suitePath).Msg("load suite")
		}
	}
	if len(records) == 0 {
		logger.Fatal().Msg("suite is empty")
	}

	eng := engine.New(engine.Config{
		HashMB:  *hashMB,
		Threads: *threads,
		Logger:  logger,
	})

	var (
		totalNodes uint64
		agreed     int
		scored     int
		start      = time.Now()
	)
	for i, rec := range records {
		pos, err := board.ParseFEN(rec.FEN)
		if err != nil {
			logger.Warn().Err(err).Str("id", rec.ID).Msg("skipping bad fen")
			continue
		}
		eng.NewGame()
		res := eng.Search(pos, engine.Limits{Depth: *depth})
		totalNodes += res.Nodes

		match := matchesBestMove(rec, res.BestMove)
		if len(rec.BestMoves) > 0 {
			scored++
			if match {
				agreed++
			}
		}
		logger.Info().
			Int("n", i+1).
			Str("id", rec.ID).
			Str("bestmove", res.BestMove.String()).
			Int("score", res.Score).
			Uint64("nodes", res.Nodes).
			Dur("elapsed", res.Elapsed).
			Bool("bm_match", match).
			Msg("position done")
	}

	elapsed := time.Since(start)
	nps := uint64(float64(totalNodes) / elapsed.Seconds())
	fmt.Printf("bench: %d positions, %d nodes, %d nps, %v\n",
		len(records), totalNodes, nps, elapsed.Round(time.Millisecond))
	if scored > 0 {
		fmt.Printf("bench: best move agreement %d/%d\n", agreed, scored)
	}
}

func matchesBestMove(rec epd.Record, m board.Move) bool {
	for _, bm := range rec.BestMoves {
		if bm == m.String() {
			return true
		}
	}
	return false
}
