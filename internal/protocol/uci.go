package protocol

import (
	"errors"

	"github.com/Oliverans/GooseEngine/engine"
	"github.com/Oliverans/GooseEngine/internal/command"
	"github.com/Oliverans/GooseEngine/internal/session"
	"github.com/Oliverans/GooseEngine/internal/timeutil"
)

func (m *Manager) processUCI(cmd command.Command) {
	switch c := cmd.(type) {
	case command.Position:
		err := m.ctl.SetPosition(c.FEN, c.Moves)
		m.fenOk = err == nil
		if err != nil {
			m.diagnostic(err.Error())
		}
	case command.Go:
		m.goUCI(c)
	default:
		m.log.Debug().Stringer("cmd", cmd.Kind()).Msg("ignored in uci mode")
	}
}

func (m *Manager) goUCI(g command.Go) {
	m.stop = false
	m.interrupted = false

	r, err := m.ctl.Think(&g)
	if errors.Is(err, session.ErrGameOver) {
		m.println("bestmove 0000")
		return
	}
	if err != nil {
		m.diagnostic(err.Error())
		return
	}
	if g.Limits.Infinite && !m.stop && !m.interrupted {
		m.waitForStop()
	}
	m.printBM(r)
}

// waitForStop blocks after an infinite search that ended on its own, since
// bestmove may only follow stop.
func (m *Manager) waitForStop() {
	for {
		cmd, err := m.queue.Next()
		if err != nil {
			return
		}
		switch c := cmd.(type) {
		case command.Stop:
			return
		case command.Quit:
			m.quit = true
			return
		case command.IsReady:
			m.println("readyok")
		case nil:
		default:
			m.log.Debug().Stringer("cmd", c.Kind()).Msg("dropped while waiting for stop")
		}
	}
}

func (m *Manager) printBM(r *session.Reply) {
	m.println(session.FormatMove(r, m.dialect == command.CECP))
}

// printInfo reports a finished iteration on the UCI side.
func (m *Manager) printInfo(r engine.SearchResult) {
	m.printf("info depth %d seldepth %d score %s nodes %d nps %d time %d pv %s",
		r.Depth, r.SelDepth, engine.ScoreString(r.Score), r.Nodes,
		timeutil.NodesPerSecond(r.Nodes, r.Elapsed), timeutil.ToMillis(r.Elapsed), r.PVString())
}

func (m *Manager) printUciStat(d engine.SearchData) {
	m.printf("info depth %d seldepth %d nodes %d nps %d time %d",
		d.Depth, d.SelDepth, d.Nodes, timeutil.NodesPerSecond(d.Nodes, d.Elapsed), timeutil.ToMillis(d.Elapsed))
}
