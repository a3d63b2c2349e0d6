package utils

import (
	"bufio"
	"context"
	"io"
	"sync"
)

type lineResult struct {
	text string
	err  error
}

// LineReader reads lines from one input for several consumers. A single
// goroutine owns the underlying reader and reads only when asked, so a
// ReadLine abandoned by its context hands its line to the next caller
// instead of racing it. ReadLine calls are serialized.
type LineReader struct {
	reader *bufio.Reader
	want   chan struct{}
	lines  chan lineResult

	once    sync.Once
	mu      sync.Mutex
	pending bool
}

func NewLineReader(r io.Reader) *LineReader {
	return &LineReader{
		reader: bufio.NewReader(r),
		want:   make(chan struct{}),
		lines:  make(chan lineResult, 1),
	}
}

func (l *LineReader) loop() {
	for range l.want {
		text, err := l.reader.ReadString('\n')
		if err == io.EOF && text != "" {
			err = nil
		}
		l.lines <- lineResult{text, err}
	}
}

// ReadLine returns the next line including its newline, or ctx.Err() if ctx
// is done first. A final line without newline is returned with a nil error.
func (l *LineReader) ReadLine(ctx context.Context) (string, error) {
	l.once.Do(func() { go l.loop() })

	l.mu.Lock()
	defer l.mu.Unlock()

	if !l.pending {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		l.want <- struct{}{}
		l.pending = true
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-l.lines:
		l.pending = false
		return res.text, res.err
	}
}
