// perft verifies the move generator against known node counts. With -divide
// it prints the per-root-move breakdown used for hunting generator bugs.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/caesarastried-prog/clercx/internal/board"
	"github.com/caesarastried-prog/clercx/internal/logx"
)

func main() {
	var (
		fen      = flag.String("fen", board.StartFEN, "position to count from")
		depth    = flag.Int("depth", 5, "perft depth")
		divide   = flag.Bool("divide", false, "print per-root-move node counts")
		workers  = flag.Int("workers", runtime.NumCPU(), "parallel workers (1 = sequential)")
		expect   = flag.Uint64("expect", 0, "expected node count; exit non-zero on mismatch")
		logLevel = flag.String("log-level", "info", "log level")
	)
	flag.Parse()

	logger := logx.NewLogger(*logLevel)

	pos, err := board.ParseFEN(*fen)
	if err != nil {
		logger.Fatal().Err(err).Str("fen", *fen).Msg("invalid fen")
	}

	start := time.Now()
	var nodes uint64
	if *divide {
		for _, d := range board.Divide(pos, *depth) {
			fmt.Printf("%s: %d\n", d.Move, d.Nodes)
			nodes += d.Nodes
		}
	} else {
		nodes, err = board.ParallelPerft(context.Background(), pos, *depth, *workers)
		if err != nil {
			logger.Fatal().Err(err).Msg("perft failed")
		}
	}
	elapsed := time.Since(start)

	nps := float64(nodes) / elapsed.Seconds()
	fmt.Printf("perft(%d) = %d\n", *depth, nodes)
	logger.Info().
		Uint64("nodes", nodes).
		Dur("elapsed", elapsed).
		Float64("mnps", nps/1e6).
		Msg("perft complete")

	if *expect != 0 && nodes != *expect {
		logger.Error().Uint64("got", nodes).Uint64("want", *expect).Msg("node count mismatch")
		os.Exit(1)
	}
}
