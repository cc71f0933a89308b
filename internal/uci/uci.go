// Package uci implements the text protocol between the engine and a chess
// GUI. The protocol owns stdout; anything diagnostic goes through the logger
// or "info string" lines. Parsing is best effort: unknown tokens are ignored
// and malformed values fall back to defaults, per protocol convention.
package uci

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/caesarastried-prog/clercx/internal/board"
	"github.com/caesarastried-prog/clercx/internal/engine"
	"github.com/caesarastried-prog/clercx/internal/tune"
)

const (
	defaultHashMB = 16
	minHashMB     = 1
	maxHashMB     = 8192
	minThreads    = 1
	maxThreads    = 128
)

// Config configures a Server.
type Config struct {
	Name     string
	Author   string
	Logger   zerolog.Logger
	Registry *tune.Registry
	HashMB   int
	Threads  int
}

// Server runs the UCI loop for one engine instance.
type Server struct {
	cfg Config
	log zerolog.Logger
	reg *tune.Registry
	eng *engine.Engine

	out   io.Writer
	outMu sync.Mutex

	pos       *board.Position
	searching sync.WaitGroup
}

// New builds a server and its engine.
func New(cfg Config, out io.Writer) *Server {
	if cfg.Name == "" {
		cfg.Name = "clercx"
	}
	if cfg.Author == "" {
		cfg.Author = "the clercx authors"
	}
	if cfg.HashMB <= 0 {
		cfg.HashMB = defaultHashMB
	}
	if cfg.Threads <= 0 {
		cfg.Threads = 1
	}
	if cfg.Registry == nil {
		cfg.Registry = tune.NewRegistry()
		engine.DefineTunables(cfg.Registry)
	}

	s := &Server{
		cfg: cfg,
		log: cfg.Logger.With().Str("component", "uci").Logger(),
		reg: cfg.Registry,
		out: out,
		pos: board.NewPosition(),
	}
	s.eng = engine.New(engine.Config{
		HashMB:   cfg.HashMB,
		Threads:  cfg.Threads,
		Logger:   cfg.Logger,
		Tunables: cfg.Registry,
		OnInfo:   s.printInfo,
	})
	return s
}

// Run processes commands until "quit" or EOF. The search runs on its own
// goroutine so "stop" stays responsive.
func (s *Server) Run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 1<<16), 1<<20)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "uci":
			s.cmdUCI()
		case "isready":
			// Sync point: a running search finishes its go before readyok.
			s.waitSearch()
			s.send("readyok")
		case "ucinewgame":
			s.waitSearch()
			s.eng.NewGame()
			s.pos = board.NewPosition()
		case "setoption":
			s.cmdSetOption(fields[1:])
		case "position":
			s.waitSearch()
			s.cmdPosition(fields[1:])
		case "go":
			s.cmdGo(fields[1:])
		case "stop":
			s.eng.Stop()
		case "quit":
			s.eng.Stop()
			s.waitSearch()
			return nil
		default:
			s.log.Debug().Str("command", fields[0]).Msg("ignoring unknown command")
		}
	}
	s.eng.Stop()
	s.waitSearch()
	return scanner.Err()
}

func (s *Server) send(format string, args ...any) {
	s.outMu.Lock()
	defer s.outMu.Unlock()
	fmt.Fprintf(s.out, format+"\n", args...)
}

func (s *Server) waitSearch() {
	s.searching.Wait()
}

func (s *Server) cmdUCI() {
	s.send("id name %s", s.cfg.Name)
	s.send("id author %s", s.cfg.Author)
	s.send("option name Hash type spin default %d min %d max %d", s.cfg.HashMB, minHashMB, maxHashMB)
	s.send("option name Threads type spin default %d min %d max %d", s.cfg.Threads, minThreads, maxThreads)
	for _, p := range s.reg.List() {
		s.send("option name %s type spin default %d min %d max %d", p.Name, p.Default, p.Min, p.Max)
	}
	s.send("uciok")
}

// cmdSetOption handles "setoption name <N> [value <V>]". Out-of-range values
// clamp; unknown names are ignored with a diagnostic.
func (s *Server) cmdSetOption(args []string) {
	name, valueStr := "", ""
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "name":
			j := i + 1
			for ; j < len(args) && args[j] != "value"; j++ {
			}
			name = strings.Join(args[i+1:j], " ")
			i = j - 1
		case "value":
			valueStr = strings.Join(args[i+1:], " ")
			i = len(args)
		}
	}
	if name == "" {
		return
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		s.log.Debug().Str("option", name).Str("value", valueStr).Msg("non-integer option value")
		return
	}

	s.waitSearch()
	switch strings.ToLower(name) {
	case "hash":
		value = clamp(value, minHashMB, maxHashMB)
		s.eng.SetHashSize(value)
	case "threads":
		value = clamp(value, minThreads, maxThreads)
		s.eng.SetThreads(value)
	default:
		if !s.reg.Set(name, value) {
			s.send("info string unknown option %s", name)
		}
	}
}

// cmdPosition handles "position [startpos|fen <FEN>] [moves m1 m2 ...]".
// An illegal move is skipped; replay continues from the position already
// reached.
func (s *Server) cmdPosition(args []string) {
	movesAt := len(args)
	for i, a := range args {
		if a == "moves" {
			movesAt = i
			break
		}
	}

	switch {
	case len(args) > 0 && args[0] == "startpos":
		s.pos = board.NewPosition()
	case len(args) > 0 && args[0] == "fen":
		fen := strings.Join(args[1:movesAt], " ")
		pos, err := board.ParseFEN(fen)
		if err != nil {
			s.send("info string invalid fen: %v", err)
			return
		}
		s.pos = pos
	default:
		return
	}

	for _, ms := range args[min(movesAt+1, len(args)):] {
		if m, ok := s.findLegalMove(ms); ok {
			s.pos.MakeMove(m)
		} else {
			s.send("info string skipping illegal move %s", ms)
		}
	}
}

// findLegalMove matches a long-algebraic string against the legal moves, so
// only moves the generator accepts ever reach MakeMove.
func (s *Server) findLegalMove(ms string) (board.Move, bool) {
	for _, m := range s.pos.LegalMoves() {
		if m.String() == ms {
			return m, true
		}
	}
	return board.NoMove, false
}

func (s *Server) cmdGo(args []string) {
	limits := parseGo(args, s.pos)

	s.waitSearch()
	pos := s.pos.Copy()
	s.searching.Add(1)
	go func() {
		defer s.searching.Done()
		res := s.eng.Search(pos, limits)
		s.send("bestmove %s", res.BestMove)
	}()
}

// parseGo reads the go sub-options. Unparsable values leave their field at
// the zero value, which means unconstrained.
func parseGo(args []string, pos *board.Position) engine.Limits {
	var limits engine.Limits
	ms := func(s string) time.Duration {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			return 0
		}
		return time.Duration(n) * time.Millisecond
	}

	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "infinite":
			limits.Infinite = true
		case "depth":
			if i+1 < len(args) {
				limits.Depth, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "nodes":
			if i+1 < len(args) {
				n, _ := strconv.ParseUint(args[i+1], 10, 64)
				limits.Nodes = n
				i++
			}
		case "movetime":
			if i+1 < len(args) {
				limits.MoveTime = ms(args[i+1])
				i++
			}
		case "wtime":
			if i+1 < len(args) {
				limits.WhiteTime = ms(args[i+1])
				i++
			}
		case "btime":
			if i+1 < len(args) {
				limits.BlackTime = ms(args[i+1])
				i++
			}
		case "winc":
			if i+1 < len(args) {
				limits.WhiteInc = ms(args[i+1])
				i++
			}
		case "binc":
			if i+1 < len(args) {
				limits.BlackInc = ms(args[i+1])
				i++
			}
		case "movestogo":
			if i+1 < len(args) {
				limits.MovesToGo, _ = strconv.Atoi(args[i+1])
				i++
			}
		case "searchmoves":
			for j := i + 1; j < len(args); j++ {
				if m, err := pos.ParseMove(args[j]); err == nil {
					limits.SearchMoves = append(limits.SearchMoves, m)
					i = j
				} else {
					break
				}
			}
		}
	}
	return limits
}

func (s *Server) printInfo(info engine.Info) {
	score := fmt.Sprintf("cp %d", info.Score)
	if engine.IsMateScore(info.Score) {
		score = fmt.Sprintf("mate %d", engine.MovesToMate(info.Score))
	}
	var pv strings.Builder
	for _, m := range info.PV {
		pv.WriteByte(' ')
		pv.WriteString(m.String())
	}
	s.send("info depth %d seldepth %d score %s nodes %d nps %d time %d pv%s",
		info.Depth, info.SelDepth, score, info.Nodes, info.NPS,
		info.Elapsed.Milliseconds(), pv.String())
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
