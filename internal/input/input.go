// Package input supplies raw protocol lines to the command queue. The only
// capability the rest of the engine needs from it is "is a line ready
// right now?", which is what lets a running search poll for stop without
// a second thread driving commands.
package input

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog"
)

// Source hands out one line at a time. Blank lines are never handed out,
// so an empty PeekInput result always means nothing is ready.
type Source interface {
	// PeekInput returns a line that is already available, or "" when
	// nothing is ready. It never blocks.
	PeekInput() string
	// GetInput blocks until a full line is available. It returns io.EOF
	// once the stream is exhausted.
	GetInput() (string, error)
}

const lineBuffer = 256

// Reader turns an io.Reader into a Source. A single goroutine owns the
// underlying reader and pushes complete lines into a buffered channel.
type Reader struct {
	lines chan string
	log   zerolog.Logger

	mu  sync.Mutex
	err error
}

func NewReader(r io.Reader, log zerolog.Logger) *Reader {
	rd := &Reader{
		lines: make(chan string, lineBuffer),
		log:   log,
	}
	go rd.scan(r)
	return rd
}

func (r *Reader) scan(src io.Reader) {
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		r.lines <- line
	}

	err := scanner.Err()
	if err != nil {
		// A broken pipe is reported once and then treated as end of input.
		r.log.Warn().Err(err).Msg("input read failed")
	} else {
		err = io.EOF
	}
	r.mu.Lock()
	r.err = err
	r.mu.Unlock()
	close(r.lines)
}

func (r *Reader) PeekInput() string {
	select {
	case line, ok := <-r.lines:
		if !ok {
			return ""
		}
		return line
	default:
		return ""
	}
}

func (r *Reader) GetInput() (string, error) {
	line, ok := <-r.lines
	if !ok {
		return "", r.closeErr()
	}
	return line, nil
}

func (r *Reader) closeErr() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == nil || errors.Is(r.err, io.EOF) {
		return io.EOF
	}
	return r.err
}

// Script is a Source over a fixed list of lines, all of which are
// available immediately. The bench command and tests drive the protocol
// manager with it.
type Script struct {
	mu    sync.Mutex
	lines []string
}

func NewScript(lines ...string) *Script {
	return &Script{lines: lines}
}

// Push appends more lines to the script.
func (s *Script) Push(lines ...string) {
	s.mu.Lock()
	s.lines = append(s.lines, lines...)
	s.mu.Unlock()
}

func (s *Script) PeekInput() string {
	line, err := s.GetInput()
	if err != nil {
		return ""
	}
	return line
}

func (s *Script) GetInput() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for len(s.lines) > 0 {
		line := s.lines[0]
		s.lines = s.lines[1:]
		if strings.TrimSpace(line) != "" {
			return line, nil
		}
	}
	return "", io.EOF
}
