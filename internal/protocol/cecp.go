package protocol

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Oliverans/GooseEngine/engine"
	"github.com/Oliverans/GooseEngine/internal/command"
	"github.com/Oliverans/GooseEngine/internal/session"
	"github.com/Oliverans/GooseEngine/internal/timeutil"
)

// xboard reports mate in n as 100000+n.
const cecpMate = 100000

func (m *Manager) processCECP(cmd command.Command) {
	switch c := cmd.(type) {
	case command.Protover:
		m.protover = c.Version
		m.printFeatures()
	case command.Force:
		m.force = true
	case command.Go:
		m.force = false
		m.think()
	case command.PlayOther:
		m.force = false
		m.ctl.SetFigureColor(m.ctl.SideToMove().Other())
	case command.MakeMove:
		m.userMove(c.Move)
	case command.SetBoard:
		err := m.ctl.FromFEN(c.FEN)
		m.fenOk = err == nil
		if err != nil {
			m.println("tellusererror Illegal position")
			return
		}
		m.reanalyze = m.analyze
	case command.Undo:
		for i := 0; i < c.Count; i++ {
			if err := m.ctl.Undo(); err != nil {
				m.diagnostic(err.Error())
				break
			}
		}
		m.reanalyze = m.analyze
	case command.TimeControl:
		m.ctl.SetLevel(c.MovesPerControl, timeutil.Millis(int(c.Base)), timeutil.Millis(int(c.Increment)))
	case command.SetTimePerMove:
		m.ctl.SetTimePerMove(timeutil.Seconds(c.Seconds))
	case command.SetDepth:
		m.ctl.SetDepth(c.Depth)
	case command.SetTime:
		m.ctl.SetXtime(timeutil.Centis(c.Centis))
	case command.OppTime:
		m.ctl.SetOppTime(timeutil.Centis(c.Centis))
	case command.SetMemory:
		if err := m.ctl.SetMemory(c.MB); err != nil {
			m.diagnostic(err.Error())
		}
	case command.SetCores:
		if err := m.ctl.SetThreads(c.N); err != nil {
			m.diagnostic(err.Error())
		}
	case command.Analyze:
		m.analyze = true
		m.reanalyze = true
	case command.ExitAnalyze:
		m.analyze = false
		m.reanalyze = false
	case command.Status:
		// Answered from Poll while analysing.
	case command.Result:
		m.force = true
		m.log.Info().Str("result", c.Text).Msg("game ended")
	default:
		m.log.Debug().Stringer("cmd", cmd.Kind()).Msg("ignored in xboard mode")
	}
}

func (m *Manager) printFeatures() {
	features := []string{
		"ping=1", "setboard=1", "usermove=1", "time=1", "draw=0", "analyze=1",
		"memory=1", "smp=1", "sigint=0", "sigterm=0", "colors=0", "reuse=1",
		fmt.Sprintf("myname=%q", m.name),
	}
	m.println("feature " + strings.Join(features, " "))
	for _, o := range session.OptionSpecs {
		m.printf("feature option=\"%s -%s %d %d %d\"", o.Name, o.Type, o.Default, o.Min, o.Max)
	}
	m.println("feature done=1")
}

func (m *Manager) userMove(text string) {
	if _, err := m.ctl.MakeMove(text); err != nil {
		m.printf("Illegal move: %s", text)
		return
	}
	if m.analyze {
		m.reanalyze = true
		return
	}
	if st := m.ctl.Status(); st.Over() {
		m.println(st.Result())
		return
	}
	if !m.force && m.ctl.FigureColor() == m.ctl.SideToMove() {
		m.think()
	}
}

// think lets the engine play the side to move.
func (m *Manager) think() {
	m.stop = false
	m.interrupted = false
	r, err := m.ctl.Think(nil)
	if errors.Is(err, session.ErrGameOver) {
		m.outState(r)
		return
	}
	if err != nil {
		m.diagnostic(err.Error())
		return
	}
	if m.interrupted {
		m.log.Debug().Str("move", r.Move).Msg("search abandoned")
		return
	}
	if r, err = m.ctl.Play(r); err != nil {
		m.diagnostic(err.Error())
		return
	}
	if reply, ok := m.ctl.Reply(true); ok {
		m.println(reply.Line)
	}
	m.outState(r)
}

// outState announces the end of the game, if it is over.
func (m *Manager) outState(r *session.Reply) {
	if r != nil && r.State.Over() {
		m.println(r.State.Result())
	}
}

func (m *Manager) runAnalysis() {
	m.stop = false
	m.interrupted = false
	if _, err := m.ctl.Analyze(); err != nil && !errors.Is(err, session.ErrGameOver) {
		m.diagnostic(err.Error())
	}
}

func cecpScore(score int32) int32 {
	if !engine.IsMateScore(score) {
		return score
	}
	n := int32(engine.MateIn(score))
	if n < 0 {
		return -cecpMate + n
	}
	return cecpMate + n
}

// printPV is the CECP thinking line: depth, score, centiseconds, nodes, pv.
func (m *Manager) printPV(r engine.SearchResult) {
	m.printf("%d %d %d %d %s", r.Depth, cecpScore(r.Score), timeutil.ToCentis(r.Elapsed), r.Nodes, r.PVString())
}

// printStat answers "." during analysis.
func (m *Manager) printStat() {
	d := m.lastStats
	m.printf("stat01: %d %d %d 0 0", timeutil.ToCentis(d.Elapsed), d.Nodes, d.Depth)
}
