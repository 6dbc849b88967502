package command

import (
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAbsent(t *testing.T) {
	for _, d := range []Dialect{CECP, UCIDialect} {
		for _, line := range []string{"", "   ", "bogus", "sd", "ping x", "level 40 5"} {
			cmd := Parse(line, d)
			assert.Nil(t, cmd, "line %q dialect %v", line, d)
			assert.Equal(t, None, KindOf(cmd))
		}
	}
	assert.Nil(t, Parse("go wtime", UCIDialect))
	assert.Nil(t, Parse("position", UCIDialect))
}

func TestParseDialectSensitive(t *testing.T) {
	tests := []struct {
		line string
		cecp Kind
		uci  Kind
	}{
		{"go", KindGo, KindGo},
		{"new", KindNewGame, None},
		{"ucinewgame", None, KindNewGame},
		{"stop", None, KindStop},
		{"e2e4", KindMakeMove, None},
		{"time 3000", KindSetTime, None},
		{"position startpos", None, KindPosition},
		{"setboard 8/8/8/8/8/8/8/8 w - - 0 1", KindSetBoard, None},
		{"isready", None, KindIsReady},
		{"?", KindMoveNow, None},
		{".", KindStatus, None},
		{"uci", KindUCI, KindUCI},
		{"quit", KindQuit, KindQuit},
		{"option Hash=64", KindSetOption, None},
		{"setoption name Hash value 64", None, KindSetOption},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.cecp, KindOf(Parse(tt.line, CECP)))
			assert.Equal(t, tt.uci, KindOf(Parse(tt.line, UCIDialect)))
		})
	}
}

func TestParseIsDeterministic(t *testing.T) {
	lines := []string{
		"go depth 5 wtime 1000 btime 2000 movestogo 10",
		"position fen rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1 moves e7e5",
		"level 40 5 0",
		"setoption name Hash value 32",
		"usermove e7e8q",
	}
	for _, line := range lines {
		for _, d := range []Dialect{CECP, UCIDialect} {
			first := Parse(line, d)
			for i := 0; i < 3; i++ {
				assert.Equal(t, first, Parse(line, d))
			}
		}
	}
}

func TestParseGo(t *testing.T) {
	cmd := Parse("go wtime 60000 btime 59000 winc 1000 binc 900 movestogo 20 depth 7 movetime 500 nodes 12345 ponder", UCIDialect)
	g, ok := cmd.(Go)
	require.True(t, ok)
	assert.Equal(t, Limits{
		Depth: 7, WTime: 60000, BTime: 59000, WInc: 1000, BInc: 900,
		MovesToGo: 20, MoveTime: 500, Nodes: 12345,
	}, g.Limits)

	g, ok = Parse("go infinite", UCIDialect).(Go)
	require.True(t, ok)
	assert.True(t, g.Limits.Infinite)

	g, ok = Parse("go depth 5", CECP).(Go)
	require.True(t, ok)
	assert.Zero(t, g.Limits, "CECP go carries no limits")
}

func TestParsePosition(t *testing.T) {
	pos, ok := Parse("position startpos moves e2e4 E7E5", UCIDialect).(Position)
	require.True(t, ok)
	assert.Equal(t, dragontoothmg.Startpos, pos.FEN)
	assert.Equal(t, []string{"e2e4", "e7e5"}, pos.Moves)

	pos, ok = Parse("position fen 8/8/8/8/8/8/8/K6k w - - 0 1", UCIDialect).(Position)
	require.True(t, ok)
	assert.Equal(t, "8/8/8/8/8/8/8/K6k w - - 0 1", pos.FEN)
	assert.Empty(t, pos.Moves)

	assert.Nil(t, Parse("position fen moves e2e4", UCIDialect))
	assert.Nil(t, Parse("position startpos e2e4", UCIDialect))
}

func TestParseOptions(t *testing.T) {
	assert.Equal(t, SetOption{Values: map[string]int{"Hash": 128}}, Parse("setoption name Hash value 128", UCIDialect))
	assert.Equal(t, SetOption{Values: map[string]int{"Threads": 2}}, Parse("option Threads=2", CECP))
	assert.Equal(t, Book{On: true}, Parse("setoption name OwnBook value true", UCIDialect))
	assert.Nil(t, Parse("setoption name Hash value lots", UCIDialect))
	assert.Nil(t, Parse("setoption name Hash", UCIDialect))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, TimeControl{MovesPerControl: 40, Base: 300000, Increment: 0}, Parse("level 40 5 0", CECP))
	assert.Equal(t, TimeControl{MovesPerControl: 0, Base: 90000, Increment: 500}, Parse("level 0 1:30 0.5", CECP))
	assert.Nil(t, Parse("level 0 1:75 0", CECP))
}

func TestParseCECPMoves(t *testing.T) {
	assert.Equal(t, MakeMove{Move: "e2e4"}, Parse("usermove e2e4", CECP))
	assert.Equal(t, MakeMove{Move: "Nf3"}, Parse("Nf3", CECP))
	assert.Equal(t, MakeMove{Move: "O-O"}, Parse("O-O", CECP))
	assert.Nil(t, Parse("usermove hello", CECP))
	assert.Equal(t, Undo{Count: 2}, Parse("remove", CECP))
	assert.Equal(t, Ping{N: 7}, Parse("ping 7", CECP))
	assert.Nil(t, Parse("hard", CECP))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "none", None.String())
	assert.Equal(t, "go", KindGo.String())
	assert.Equal(t, "Kind(999)", Kind(999).String())
}
