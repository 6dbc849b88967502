package board

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dylhunn/dragontoothmg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFENRoundTrip(t *testing.T) {
	fens := []string{
		Startpos,
		"r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 5 20",
		"8/8/8/4k3/8/8/4P3/4K3 b - - 0 41",
		"rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b Kq - 1 2",
	}
	for _, fen := range fens {
		b, err := ParseFEN(fen)
		require.NoError(t, err, fen)
		assert.Equal(t, fen, FEN(&b))
	}
}

func TestParseFENFillsCounters(t *testing.T) {
	b, err := ParseFEN("4k3/8/8/8/8/8/8/4K2R w K -")
	require.NoError(t, err)
	assert.Equal(t, "4k3/8/8/8/8/8/8/4K2R w K - 0 1", FEN(&b))
}

func TestParseFENRejects(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQQBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkk - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - x 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 extra",
		"4k3/8/8/8/8/8/8/R3K3 b - - 0 1 0",
		"4k3/4R3/8/8/8/8/8/4K3 w - - 0 1", // black in check with white to move
		"P3k3/8/8/8/8/8/8/4K3 w - - 0 1",
	}
	for _, fen := range bad {
		_, err := ParseFEN(fen)
		assert.ErrorIs(t, err, ErrInvalidFEN, fen)
	}
}

func TestFindMove(t *testing.T) {
	b, err := ParseFEN(Startpos)
	require.NoError(t, err)

	for _, text := range []string{"e2e4", "E2E4", "e4"} {
		mv, err := FindMove(&b, text)
		require.NoError(t, err, text)
		assert.Equal(t, "e2e4", mv.String())
	}

	mv, err := FindMove(&b, "Nf3")
	require.NoError(t, err)
	assert.Equal(t, "g1f3", mv.String())

	for _, text := range []string{"", "e2e5", "Ke2", "zz", "e7e5"} {
		_, err := FindMove(&b, text)
		assert.ErrorIs(t, err, ErrIllegalMove, text)
	}
}

func TestFindMoveCastlingAndPromotion(t *testing.T) {
	b, err := ParseFEN("4k3/1P6/8/8/8/8/8/4K2R w K - 0 1")
	require.NoError(t, err)

	mv, err := FindMove(&b, "O-O")
	require.NoError(t, err)
	assert.Equal(t, "e1g1", mv.String())

	mv, err = FindMove(&b, "0-0")
	require.NoError(t, err)
	assert.Equal(t, "e1g1", mv.String())

	mv, err = FindMove(&b, "b7b8q")
	require.NoError(t, err)
	assert.Equal(t, "b7b8q", mv.String())

	mv, err = FindMove(&b, "b8=N")
	require.NoError(t, err)
	assert.Equal(t, "b7b8n", mv.String())
}

func TestSAN(t *testing.T) {
	b, err := ParseFEN(Startpos)
	require.NoError(t, err)
	mv, err := FindMove(&b, "g1f3")
	require.NoError(t, err)

	san, err := SAN(&b, mv)
	require.NoError(t, err)
	assert.Equal(t, "Nf3", san)
	assert.True(t, Legal(&b, mv))
}

func TestStatus(t *testing.T) {
	tests := []struct {
		fen  string
		want State
	}{
		{Startpos, Playing},
		{"R5k1/5ppp/8/8/8/8/5PPP/6K1 b - - 1 1", WhiteMates},
		{"6k1/8/8/8/8/8/5PPP/r5K1 w - - 1 1", BlackMates},
		{"7k/5Q2/6K1/8/8/8/8/8 b - - 0 1", Stalemate},
		{"4k3/8/8/8/8/8/4P3/4K3 w - - 100 80", FiftyMoves},
		{"4k3/8/8/8/8/8/8/2B1K3 w - - 0 1", Insufficient},
	}
	for _, tt := range tests {
		b := dragontoothmg.ParseFen(tt.fen)
		assert.Equal(t, tt.want, Status(&b, nil), tt.fen)
	}
	assert.Equal(t, "1-0 {White mates}", WhiteMates.Result())
	assert.Equal(t, "1/2-1/2 {Stalemate}", Stalemate.Result())
	assert.Empty(t, Playing.Result())
}

func TestStatusRepetition(t *testing.T) {
	b := dragontoothmg.ParseFen(Startpos)
	h := b.Hash()

	assert.Equal(t, Playing, Status(&b, []uint64{h}))
	assert.Equal(t, Repetition, Status(&b, []uint64{h, 1, h}))
}

func TestPGNRoundTrip(t *testing.T) {
	game := Game{StartFEN: Startpos, Moves: []string{"e2e4", "e7e5", "g1f3", "b8c6", "e1e2"}}

	san, err := game.SANMoves()
	require.NoError(t, err)
	assert.Equal(t, []string{"e4", "e5", "Nf3", "Nc6", "Ke2"}, san)

	var buf bytes.Buffer
	require.NoError(t, game.WritePGN(&buf, map[string]string{"White": "goose", "Black": "human"}))
	assert.Contains(t, buf.String(), `[White "goose"]`)
	assert.Contains(t, buf.String(), "Nf3")

	loaded, err := ReadPGN(strings.NewReader(buf.String()))
	require.NoError(t, err)
	assert.Equal(t, game.Moves, loaded.Moves)
	assert.Equal(t, Startpos, loaded.StartFEN)
}

func TestGameRejectsIllegalMoves(t *testing.T) {
	_, err := Game{StartFEN: Startpos, Moves: []string{"e2e5"}}.SANMoves()
	assert.ErrorIs(t, err, ErrIllegalMove)
}
