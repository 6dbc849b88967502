package protocol

import (
	"github.com/Oliverans/GooseEngine/engine"
	"github.com/Oliverans/GooseEngine/internal/command"
	"github.com/Oliverans/GooseEngine/internal/session"
)

var _ session.Poller = (*Manager)(nil)

// Poll runs inside the search. It looks at the commands that arrived since
// the search started without blocking, answers the ones that need no state
// change right away and reports whether the search may go on. Commands
// that end the search other than stop and ? stay queued and are handled
// once it has returned; the move of a search they ended is not played.
func (m *Manager) Poll() bool {
	if m.ctx.Err() != nil {
		return false
	}
	m.queue.Peek()

	for i := 0; i < m.queue.Len(); {
		cmd := m.queue.Pending()[i]
		switch c := cmd.(type) {
		case command.IsReady:
			m.queue.Remove(i)
			m.println("readyok")
			continue
		case command.Ping:
			m.queue.Remove(i)
			m.printf("pong %d", c.N)
			continue
		case command.Post:
			m.queue.Remove(i)
			m.ctl.SetPost(c.On)
			continue
		case command.Status:
			m.queue.Remove(i)
			if m.analyze {
				m.printStat()
			}
			continue
		case command.Stop, command.MoveNow:
			m.queue.Remove(i)
			m.stop = true
			return false
		case command.NewGame, command.Quit:
			m.interrupted = true
			return false
		case command.Force, command.Result:
			if m.dialect == command.CECP && !m.analyze {
				m.interrupted = true
				return false
			}
		case command.MakeMove, command.Undo, command.ExitAnalyze, command.SetBoard:
			if m.analyze {
				m.interrupted = true
				return false
			}
		}
		i++
	}
	return true
}

func (m *Manager) Output(r engine.SearchResult) {
	if m.dialect == command.UCIDialect {
		m.printInfo(r)
		return
	}
	m.printPV(r)
}

func (m *Manager) Stats(d engine.SearchData) {
	m.lastStats = d
	if m.dialect == command.UCIDialect {
		m.printUciStat(d)
	}
}
