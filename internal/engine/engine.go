package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/caesarastried-prog/clercx/internal/board"
	"github.com/caesarastried-prog/clercx/internal/tune"
)

// Tablebase is an optional endgame probe. A nil Tablebase, or ok=false, means
// no result and the search carries on normally.
type Tablebase interface {
	Probe(pos *board.Position) (score int, ok bool)
}

// Info is one iteration report, pushed through Config.OnInfo by the
// reporting thread.
type Info struct {
	Depth    int
	SelDepth int
	Score    int
	Nodes    uint64
	NPS      uint64
	Elapsed  time.Duration
	Hashfull int
	PV       []board.Move
}

// Result is the outcome of a completed (or stopped) search.
type Result struct {
	BestMove board.Move
	Score    int
	Depth    int
	SelDepth int
	Nodes    uint64
	Elapsed  time.Duration
	PV       []board.Move
}

// Config configures an Engine. Zero values get defaults in New.
type Config struct {
	HashMB    int
	Threads   int
	Logger    zerolog.Logger
	Tunables  *tune.Registry
	Tablebase Tablebase
	OnInfo    func(Info)
}

// params is the per-search snapshot of the tunable registry. Taking a copy
// at go time keeps setoption writes from racing the search.
type params struct {
	AspirationDelta  int
	RFPDepth         int
	RFPMargin        int
	NullMinDepth     int
	DeltaMargin      int
	MoveOverhead     int
	DefaultMovesToGo int
}

// DefineTunables registers the search parameters on a registry.
func DefineTunables(r *tune.Registry) {
	r.Define("AspirationDelta", 22, 5, 100)
	r.Define("RFPDepth", 6, 1, 10)
	r.Define("RFPMargin", 90, 30, 300)
	r.Define("NullMinDepth", 3, 2, 6)
	r.Define("DeltaMargin", 200, 50, 1000)
	r.Define("MoveOverhead", 30, 0, 1000)
	r.Define("DefaultMovesToGo", 30, 10, 60)
}

func snapshotParams(r *tune.Registry) params {
	return params{
		AspirationDelta:  r.Get("AspirationDelta", 22),
		RFPDepth:         r.Get("RFPDepth", 6),
		RFPMargin:        r.Get("RFPMargin", 90),
		NullMinDepth:     r.Get("NullMinDepth", 3),
		DeltaMargin:      r.Get("DeltaMargin", 200),
		MoveOverhead:     r.Get("MoveOverhead", 30),
		DefaultMovesToGo: r.Get("DefaultMovesToGo", 30),
	}
}

// Engine owns the transposition table and the worker threads. One Search
// runs at a time; Stop may be called from any goroutine.
type Engine struct {
	cfg     Config
	log     zerolog.Logger
	tt      *TransTable
	threads []*thread

	stop   atomic.Bool
	params params
	limits Limits
	dl     deadlines
	start  time.Time

	result Result
}

// New creates an engine.
func New(cfg Config) *Engine {
	if cfg.HashMB <= 0 {
		cfg.HashMB = 16
	}
	if cfg.Threads <= 0 {
		cfg.Threads = 1
	}
	if cfg.Tunables == nil {
		cfg.Tunables = tune.NewRegistry()
		DefineTunables(cfg.Tunables)
	}
	e := &Engine{
		cfg: cfg,
		log: cfg.Logger.With().Str("component", "engine").Logger(),
		tt:  NewTransTable(cfg.HashMB),
	}
	e.ensureThreads(cfg.Threads)
	return e
}

// SetHashSize resizes the transposition table. Only call between searches.
func (e *Engine) SetHashSize(mb int) {
	e.tt.Resize(mb)
	e.log.Debug().Int("hash_mb", mb).Msg("resized transposition table")
}

// SetThreads changes the worker count, effective at the next search.
func (e *Engine) SetThreads(n int) {
	if n < 1 {
		n = 1
	}
	e.cfg.Threads = n
}

// NewGame clears the transposition table and the workers' history tables.
func (e *Engine) NewGame() {
	e.tt.Clear()
	for _, t := range e.threads {
		t.history.Clear()
	}
}

// Stop asks all workers to unwind as soon as practical.
func (e *Engine) Stop() { e.stop.Store(true) }

func (e *Engine) stopped() bool { return e.stop.Load() }

// ensureThreads keeps worker objects (and their history tables) alive across
// searches, growing the pool on demand.
func (e *Engine) ensureThreads(n int) {
	for len(e.threads) < n {
		e.threads = append(e.threads, &thread{id: len(e.threads), engine: e})
	}
}

// totalNodes sums the per-worker counters.
func (e *Engine) totalNodes() uint64 {
	var total uint64
	for _, t := range e.threads {
		total += atomic.LoadUint64(&t.nodes)
	}
	return total
}

// checkLimits is run by thread 0 at bounded node intervals; it turns the
// hard deadline and the node limit into the shared stop flag.
func (e *Engine) checkLimits() {
	if e.dl.timed && time.Since(e.start) >= e.dl.hard {
		e.stop.Store(true)
	}
	if e.limits.Nodes > 0 && e.totalNodes() >= e.limits.Nodes {
		e.stop.Store(true)
	}
}

func (e *Engine) rootMoveAllowed(m board.Move) bool {
	if len(e.limits.SearchMoves) == 0 {
		return true
	}
	for _, allowed := range e.limits.SearchMoves {
		if m == allowed {
			return true
		}
	}
	return false
}

// Search runs iterative deepening, Lazy-SMP style: every worker owns a copy
// of the position and runs the same loop; the transposition table is the
// only channel between them. Thread 0 reports and owns the clock.
func (e *Engine) Search(pos *board.Position, limits Limits) Result {
	e.stop.Store(false)
	e.limits = limits
	e.params = snapshotParams(e.cfg.Tunables)
	e.start = time.Now()
	e.dl = planTime(limits, pos.SideToMove(),
		time.Duration(e.params.MoveOverhead)*time.Millisecond, e.params.DefaultMovesToGo)
	e.tt.NewSearch()
	e.ensureThreads(e.cfg.Threads)
	e.result = Result{}

	legal := pos.LegalMoves()
	if len(limits.SearchMoves) > 0 {
		allowed := legal[:0]
		for _, m := range legal {
			if e.rootMoveAllowed(m) {
				allowed = append(allowed, m)
			}
		}
		legal = allowed
	}
	if len(legal) == 0 {
		return Result{BestMove: board.NoMove, Elapsed: time.Since(e.start)}
	}

	e.log.Debug().
		Int("threads", e.cfg.Threads).
		Dur("soft", e.dl.soft).
		Dur("hard", e.dl.hard).
		Str("fen", pos.FEN()).
		Msg("search started")

	maxDepth := limits.Depth
	if maxDepth <= 0 || maxDepth >= MaxPly {
		maxDepth = MaxPly - 1
	}

	workers := e.threads[:e.cfg.Threads]
	var wg sync.WaitGroup
	for _, t := range workers {
		t.pos = pos.Copy()
		t.clearForSearch()
		wg.Add(1)
		go func(t *thread) {
			defer wg.Done()
			e.iterate(t, maxDepth)
		}(t)
	}
	wg.Wait()
	e.stop.Store(true)

	res := e.result
	if res.BestMove == board.NoMove {
		// Stopped before depth 1 completed; any legal move beats none.
		res.BestMove = legal[0]
	}
	res.Nodes = e.totalNodes()
	res.Elapsed = time.Since(e.start)

	e.log.Debug().
		Str("bestmove", res.BestMove.String()).
		Int("depth", res.Depth).
		Uint64("nodes", res.Nodes).
		Dur("elapsed", res.Elapsed).
		Msg("search finished")
	return res
}

// iterate is one worker's iterative-deepening loop. Helpers run it too but
// only thread 0 reports and stops the clock.
func (e *Engine) iterate(t *thread, maxDepth int) {
	prevScore := 0
	for depth := 1; depth <= maxDepth; depth++ {
		score := e.aspiration(t, depth, prevScore)
		if e.stopped() {
			break
		}
		prevScore = score

		pv := t.rootPV()
		if t.id == 0 && len(pv) > 0 {
			elapsed := time.Since(e.start)
			nodes := e.totalNodes()
			e.result = Result{
				BestMove: pv[0],
				Score:    score,
				Depth:    depth,
				SelDepth: t.seldepth,
				Nodes:    nodes,
				PV:       pv,
			}
			if e.cfg.OnInfo != nil {
				nps := uint64(0)
				if elapsed > 0 {
					nps = uint64(float64(nodes) / elapsed.Seconds())
				}
				e.cfg.OnInfo(Info{
					Depth:    depth,
					SelDepth: t.seldepth,
					Score:    score,
					Nodes:    nodes,
					NPS:      nps,
					Elapsed:  elapsed,
					Hashfull: e.tt.Hashfull(),
					PV:       pv,
				})
			}
			if e.dl.timed && elapsed >= e.dl.soft {
				e.stop.Store(true)
				break
			}
			// No point iterating past a forced mate.
			mtm := MovesToMate(score)
			if mtm < 0 {
				mtm = -mtm
			}
			if IsMateScore(score) && depth >= 2*mtm && !e.limits.Infinite && e.limits.Depth == 0 {
				e.stop.Store(true)
				break
			}
		}
	}
	if t.id == 0 {
		e.stop.Store(true)
	}
}

// aspiration wraps search in a window around the previous score, widening on
// failure per side. Shallow depths use the full window.
func (e *Engine) aspiration(t *thread, depth, prevScore int) int {
	if depth < 5 {
		return t.search(-Infinity, Infinity, depth, 0, true)
	}

	delta := e.params.AspirationDelta
	alpha := maxInt(prevScore-delta, -Infinity)
	beta := minInt(prevScore+delta, Infinity)

	for {
		score := t.search(alpha, beta, depth, 0, true)
		if e.stopped() {
			return score
		}
		switch {
		case score <= alpha:
			beta = (alpha + beta) / 2
			alpha = maxInt(score-delta, -Infinity)
		case score >= beta:
			beta = minInt(score+delta, Infinity)
		default:
			return score
		}
		delta *= 2
	}
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
