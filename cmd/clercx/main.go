package main

import (
	"flag"
	"os"

	"github.com/caesarastried-prog/clercx/internal/engine"
	"github.com/caesarastried-prog/clercx/internal/logx"
	"github.com/caesarastried-prog/clercx/internal/tune"
	"github.com/caesarastried-prog/clercx/internal/uci"
)

const version = "0.9.0"

func main() {
	var (
		hashMB   = flag.Int("hash", 16, "transposition table size in MiB")
		threads  = flag.Int("threads", 1, "number of search threads")
		logLevel = flag.String("log-level", "warn", "log level (trace, debug, info, warn, error)")
	)
	flag.Parse()

	logger := logx.NewLogger(*logLevel)

	registry := tune.NewRegistry()
	engine.DefineTunables(registry)

	srv := uci.New(uci.Config{
		Name:     "clercx " + version,
		Author:   "the clercx authors",
		Logger:   logger,
		Registry: registry,
		HashMB:   *hashMB,
		Threads:  *threads,
	}, os.Stdout)

	if err := srv.Run(os.Stdin); err != nil {
		logger.Fatal().Err(err).Msg("uci loop failed")
	}
}
