package input

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Oliverans/GooseEngine/internal/logging"
)

func TestReaderGetInputBlocksForLines(t *testing.T) {
	rd := NewReader(strings.NewReader("uci\r\nisready\n"), logging.Nop())

	line, err := rd.GetInput()
	require.NoError(t, err)
	assert.Equal(t, "uci", line)

	line, err = rd.GetInput()
	require.NoError(t, err)
	assert.Equal(t, "isready", line)

	_, err = rd.GetInput()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderPeekDoesNotBlock(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	rd := NewReader(pr, logging.Nop())

	done := make(chan string)
	go func() { done <- rd.PeekInput() }()
	select {
	case line := <-done:
		assert.Equal(t, "", line)
	case <-time.After(time.Second):
		t.Fatal("PeekInput blocked with no input available")
	}

	_, err := io.WriteString(pw, "stop\n")
	require.NoError(t, err)
	assert.Eventually(t, func() bool {
		return rd.PeekInput() == "stop"
	}, time.Second, time.Millisecond)
}

func TestReaderPeekAfterEOF(t *testing.T) {
	rd := NewReader(strings.NewReader(""), logging.Nop())
	_, err := rd.GetInput()
	require.ErrorIs(t, err, io.EOF)
	assert.Equal(t, "", rd.PeekInput())
}

func TestScript(t *testing.T) {
	s := NewScript("a", "b")
	assert.Equal(t, "a", s.PeekInput())
	s.Push("c")

	line, err := s.GetInput()
	require.NoError(t, err)
	assert.Equal(t, "b", line)
	assert.Equal(t, "c", s.PeekInput())
	assert.Equal(t, "", s.PeekInput())

	_, err = s.GetInput()
	assert.ErrorIs(t, err, io.EOF)
}

func TestBlankLinesAreSkipped(t *testing.T) {
	rd := NewReader(strings.NewReader("\n  \r\nisready\n\nstop\n"), logging.Nop())
	assert.Eventually(t, func() bool {
		return len(rd.lines) == 2
	}, time.Second, time.Millisecond)
	assert.Equal(t, "isready", rd.PeekInput())
	assert.Equal(t, "stop", rd.PeekInput())

	s := NewScript("", "isready", " ", "stop")
	assert.Equal(t, "isready", s.PeekInput())
	assert.Equal(t, "stop", s.PeekInput())
	assert.Equal(t, "", s.PeekInput())
}
