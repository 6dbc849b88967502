// Package protocol runs the command loop between a GUI and the session. It
// owns the protocol state (dialect, force mode, analysis mode) and turns
// session results into CECP or UCI text.
package protocol

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"

	"github.com/Oliverans/GooseEngine/engine"
	"github.com/Oliverans/GooseEngine/internal/command"
	"github.com/Oliverans/GooseEngine/internal/session"
)

const (
	DefaultName   = "GooseEngine"
	DefaultAuthor = "Goose"
)

// Manager dispatches commands from a queue to a session controller and
// writes the replies.
type Manager struct {
	ctl   *session.Controller
	queue *command.Queue
	out   io.Writer
	log   zerolog.Logger
	ctx   context.Context

	name   string
	author string

	dialect  command.Dialect
	force    bool
	fenOk    bool
	stop     bool
	analyze  bool
	protover int

	// reanalyze restarts the analysis before the next command is read.
	reanalyze bool
	// interrupted is set when a poll saw a command that ends the search
	// and was left in the queue.
	interrupted bool
	quit        bool
	lastStats   engine.SearchData
}

type Option func(*Manager)

func WithLogger(log zerolog.Logger) Option {
	return func(m *Manager) { m.log = log }
}

func WithIdentity(name, author string) Option {
	return func(m *Manager) {
		if name != "" {
			m.name = name
		}
		if author != "" {
			m.author = author
		}
	}
}

// WithDialect starts the manager in d instead of CECP.
func WithDialect(d command.Dialect) Option {
	return func(m *Manager) { m.dialect = d }
}

func New(ctl *session.Controller, queue *command.Queue, w io.Writer, opts ...Option) *Manager {
	m := &Manager{
		ctl:    ctl,
		queue:  queue,
		out:    w,
		log:    zerolog.Nop(),
		ctx:    context.Background(),
		name:   DefaultName,
		author: DefaultAuthor,
	}
	for _, opt := range opts {
		opt(m)
	}
	queue.SetDialect(m.dialect)
	if m.dialect == command.UCIDialect {
		ctl.SetPost(true)
	}
	ctl.SetPoller(m)
	return m
}

func (m *Manager) Dialect() command.Dialect { return m.dialect }
func (m *Manager) Force() bool              { return m.force }
func (m *Manager) FenOk() bool              { return m.fenOk }
func (m *Manager) Analyzing() bool          { return m.analyze }

// Run processes commands until quit, end of input or ctx is done.
func (m *Manager) Run(ctx context.Context) error {
	m.ctx = ctx
	defer func() { m.ctx = context.Background() }()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		more, err := m.DoCmd()
		if errors.Is(err, io.EOF) {
			m.log.Debug().Msg("end of input")
			return nil
		}
		if err != nil {
			return err
		}
		if !more {
			return nil
		}
	}
}

// DoCmd fetches and processes one command. It reports false once the
// session should end.
func (m *Manager) DoCmd() (bool, error) {
	if m.analyze && m.reanalyze && m.queue.Len() == 0 {
		m.reanalyze = false
		m.runAnalysis()
	}
	cmd, err := m.queue.Next()
	if err != nil {
		return false, err
	}
	return m.ProcessCmd(cmd), nil
}

// ProcessCmd applies one command. The absent command changes nothing. It
// returns false after quit.
func (m *Manager) ProcessCmd(cmd command.Command) bool {
	if cmd == nil {
		return !m.quit
	}
	m.log.Debug().Stringer("cmd", command.KindOf(cmd)).Msg("command")

	switch c := cmd.(type) {
	case command.Quit:
		m.quit = true
		return false
	case command.UCI:
		m.handleUCI()
	case command.XBoard:
		m.dialect = command.CECP
		m.queue.SetDialect(command.CECP)
	case command.IsReady:
		m.println("readyok")
	case command.Ping:
		m.printf("pong %d", c.N)
	case command.NewGame:
		m.ctl.NewGame()
		m.force = false
		m.fenOk = true
		m.stop = false
		m.analyze = false
	case command.SetOption:
		if err := m.ctl.SetOptions(c.Values); err != nil {
			m.diagnostic(err.Error())
		}
	case command.Book:
		m.ctl.EnableBook(c.On)
	case command.Post:
		m.ctl.SetPost(c.On)
	case command.Print:
		m.diagnostic("fen " + m.ctl.FEN())
		if san, err := m.ctl.MovesSAN(); err == nil && len(san) > 0 {
			m.diagnostic("moves " + strings.Join(san, " "))
		}
	case command.Stop, command.MoveNow:
		// Only meaningful while a search runs, see Poll.
	default:
		if m.dialect == command.UCIDialect {
			m.processUCI(cmd)
		} else {
			m.processCECP(cmd)
		}
	}
	return !m.quit
}

func (m *Manager) handleUCI() {
	m.dialect = command.UCIDialect
	m.queue.SetDialect(command.UCIDialect)
	m.force = false
	m.analyze = false
	m.ctl.SetPost(true)

	m.printf("id name %s", m.name)
	m.printf("id author %s", m.author)
	for _, o := range session.OptionSpecs {
		m.printf("option name %s type %s default %d min %d max %d", o.Name, o.Type, o.Default, o.Min, o.Max)
	}
	m.printf("option name OwnBook type check default %t", m.ctl.BookEnabled())
	m.println("uciok")
}

// diagnostic reports a rejected request the way the dialect allows.
func (m *Manager) diagnostic(msg string) {
	if m.dialect == command.UCIDialect {
		m.println("info string " + msg)
		return
	}
	m.println("# " + msg)
}

func (m *Manager) println(line string) {
	if _, err := io.WriteString(m.out, line+"\n"); err != nil {
		m.log.Warn().Err(err).Msg("write failed")
	}
}

func (m *Manager) printf(format string, args ...any) {
	m.println(fmt.Sprintf(format, args...))
}
