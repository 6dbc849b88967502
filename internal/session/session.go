// Package session holds the state of one engine session: the game being
// played or analysed, the time control and the engine settings. It runs
// searches synchronously and is the consumer side of engine.Callbacks.
package session

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/dylhunn/dragontoothmg"
	"github.com/rs/zerolog"

	"github.com/Oliverans/GooseEngine/engine"
)

// Color is a side of the board.
type Color int

const (
	White Color = iota
	Black
)

func (c Color) String() string {
	if c == Black {
		return "black"
	}
	return "white"
}

func (c Color) Other() Color {
	return 1 - c
}

func sideToMove(b *dragontoothmg.Board) Color {
	if b.Wtomove {
		return White
	}
	return Black
}

// Poller lets the protocol layer take part in a running search. Poll is
// called from QueryInput and returns false to interrupt. Output and Stats
// receive progress reports.
type Poller interface {
	Poll() bool
	Output(engine.SearchResult)
	Stats(engine.SearchData)
}

// Config seeds a Controller.
type Config struct {
	Options Options
	// Depth is the default depth ceiling, zero for none.
	Depth   int
	OwnBook bool

	// MovesLeft fixes the sudden death move count, see SetMovesLeft.
	MovesLeft int
}

// Controller is the session. It is used from a single goroutine except for
// Stop, which may be called from anywhere.
type Controller struct {
	log      zerolog.Logger
	searcher *engine.Searcher
	poller   Poller

	game game

	boardColor  Color
	figureColor Color

	clock        clock
	defaultDepth int
	maxDepth     int
	post         bool
	book         bool
	opts         Options

	thinking  bool
	stop      atomic.Bool
	budget    time.Duration
	fixedTime bool
	extended  time.Duration
	moreTime  int
	nodeLimit uint64

	reply *Reply
}

var _ engine.Callbacks = (*Controller)(nil)

func New(cfg Config, log zerolog.Logger) (*Controller, error) {
	opts := cfg.Options
	if opts == (Options{}) {
		opts = DefaultOptions()
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	ctl := &Controller{
		log:          log,
		searcher:     engine.NewSearcher(opts.Hash, log),
		opts:         opts,
		defaultDepth: max(cfg.Depth, 0),
		maxDepth:     max(cfg.Depth, 0),
		book:         cfg.OwnBook,
	}
	ctl.game.reset(dragontoothmg.ParseFen(dragontoothmg.Startpos), dragontoothmg.Startpos)
	ctl.SetColors(White, Black)
	ctl.SetMovesLeft(cfg.MovesLeft)
	return ctl, nil
}

// SetPoller installs the protocol side hooks used during searches. nil
// removes them.
func (ctl *Controller) SetPoller(p Poller) {
	ctl.poller = p
}

// SetDepth sets the depth ceiling, zero for none.
func (ctl *Controller) SetDepth(depth int) {
	ctl.maxDepth = max(depth, 0)
}

func (ctl *Controller) Depth() int {
	return ctl.maxDepth
}

// SetPost toggles per iteration output.
func (ctl *Controller) SetPost(on bool) {
	ctl.post = on
}

func (ctl *Controller) Post() bool {
	return ctl.post
}

// SetMemory resizes the hash table.
func (ctl *Controller) SetMemory(mb int) error {
	if err := HashOption.check(mb); err != nil {
		return err
	}
	ctl.opts.Hash = mb
	if mb != ctl.searcher.HashMB() {
		ctl.searcher.Resize(mb)
		ctl.log.Debug().Int("hash_mb", ctl.searcher.HashMB()).Msg("hash resized")
	}
	return nil
}

// SetThreads records the thread count. The search itself runs on one
// thread.
func (ctl *Controller) SetThreads(n int) error {
	if err := ThreadsOption.check(n); err != nil {
		return err
	}
	ctl.opts.Threads = n
	return nil
}

func (ctl *Controller) EnableBook(on bool) {
	ctl.book = on
}

func (ctl *Controller) BookEnabled() bool {
	return ctl.book
}

// SetOptions applies named option values. Either all of them are applied or
// none is. Options not named in values are left alone.
func (ctl *Controller) SetOptions(values map[string]int) error {
	next, err := decodeOptions(ctl.opts, values)
	if err != nil {
		return err
	}
	if err := next.Validate(); err != nil {
		return err
	}
	for name := range values {
		switch {
		case strings.EqualFold(name, HashOption.Name):
			err = ctl.SetMemory(next.Hash)
		case strings.EqualFold(name, ThreadsOption.Name):
			err = ctl.SetThreads(next.Threads)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (ctl *Controller) Options() Options {
	return ctl.opts
}

// SetColors sets the side to move at session start and the side the engine
// plays.
func (ctl *Controller) SetColors(board, figure Color) {
	ctl.boardColor = board
	ctl.figureColor = figure
}

// SetFigureColor sets the side the engine plays.
func (ctl *Controller) SetFigureColor(c Color) {
	ctl.figureColor = c
}

func (ctl *Controller) FigureColor() Color {
	return ctl.figureColor
}

func (ctl *Controller) BoardColor() Color {
	return ctl.boardColor
}

// SideToMove is the side to move in the current position.
func (ctl *Controller) SideToMove() Color {
	return sideToMove(&ctl.game.board)
}

// Thinking reports whether a search is running.
func (ctl *Controller) Thinking() bool {
	return ctl.thinking
}
