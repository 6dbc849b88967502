package command

import (
	"github.com/Oliverans/GooseEngine/internal/input"
)

// Queue parses input lines into commands and buffers the ones that have
// been seen but not consumed yet. It tracks the dialect on its own: a
// "uci" line switches every later line to the UCI grammar even before the
// protocol manager has processed the handshake.
type Queue struct {
	src     input.Source
	dialect Dialect
	buf     []Command
}

func NewQueue(src input.Source, d Dialect) *Queue {
	return &Queue{src: src, dialect: d}
}

func (q *Queue) Dialect() Dialect {
	return q.dialect
}

// SetDialect forces the grammar used for lines not parsed yet.
func (q *Queue) SetDialect(d Dialect) {
	q.dialect = d
}

func (q *Queue) parse(line string) Command {
	cmd := Parse(line, q.dialect)
	switch cmd.(type) {
	case UCI:
		q.dialect = UCIDialect
	case XBoard:
		q.dialect = CECP
	}
	return cmd
}

// Peek reads whatever the source has ready without blocking, buffers the
// parsed commands and returns the oldest unconsumed one. Lines that parse
// to nothing are dropped. It returns nil when nothing is buffered.
func (q *Queue) Peek() Command {
	for {
		line := q.src.PeekInput()
		if line == "" {
			break
		}
		if cmd := q.parse(line); cmd != nil {
			q.buf = append(q.buf, cmd)
		}
	}
	if len(q.buf) == 0 {
		return nil
	}
	return q.buf[0]
}

// Next consumes one command. Buffered commands come first; otherwise it
// blocks for one line, which may parse to the absent command. The error is
// the source's, io.EOF once input is exhausted.
func (q *Queue) Next() (Command, error) {
	if len(q.buf) > 0 {
		cmd := q.buf[0]
		q.buf[0] = nil
		q.buf = q.buf[1:]
		return cmd, nil
	}
	line, err := q.src.GetInput()
	if err != nil {
		return nil, err
	}
	return q.parse(line), nil
}

// Pending returns the buffered commands, oldest first. The slice is only
// valid until the next call on the queue.
func (q *Queue) Pending() []Command {
	return q.buf
}

// Remove drops the buffered command at index i.
func (q *Queue) Remove(i int) {
	if i < 0 || i >= len(q.buf) {
		return
	}
	q.buf = append(q.buf[:i], q.buf[i+1:]...)
}

// Len is the number of buffered commands.
func (q *Queue) Len() int {
	return len(q.buf)
}
