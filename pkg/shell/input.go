package shell

import (
	"bufio"
	"context"
	"errors"
	"io"
	"os"
	"strings"
)

// ErrInterrupted is returned by a LineSource when the read was aborted by
// a user interrupt. The session echoes it and keeps running; it aborts
// only the current iteration, never the process.
var ErrInterrupted = errors.New("interrupted")

// LineSource produces exactly one line of input per call. The read step is
// the only place the loop suspends. End of input is reported as io.EOF.
type LineSource interface {
	ReadLine(ctx context.Context) (string, error)
}

// BufferedSource reads lines synchronously from an io.Reader. This is the
// deployment mode for piped or scripted input, where the whole loop runs
// on one goroutine with blocking reads.
type BufferedSource struct {
	reader *bufio.Reader
}

// NewBufferedSource creates a synchronous line source over r.
func NewBufferedSource(r io.Reader) *BufferedSource {
	return &BufferedSource{reader: bufio.NewReader(r)}
}

// ReadLine implements LineSource with a blocking read.
func (s *BufferedSource) ReadLine(ctx context.Context) (string, error) {
	line, err := s.reader.ReadString('\n')
	if err != nil {
		// A final line without a trailing newline is still a line
		if err == io.EOF && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// ChannelSource reads lines from a channel fed by a scanner goroutine and
// reacts to interrupt signals while waiting. This is the asynchronous
// deployment mode for interactive terminals: the select below is the only
// suspension point in the loop.
type ChannelSource struct {
	lines      <-chan string
	interrupts <-chan os.Signal
}

// NewChannelSource creates an asynchronous line source. interrupts may be
// nil if no signal handling is wanted.
func NewChannelSource(lines <-chan string, interrupts <-chan os.Signal) *ChannelSource {
	return &ChannelSource{
		lines:      lines,
		interrupts: interrupts,
	}
}

// ReadLine implements LineSource. It returns ErrInterrupted on a signal,
// io.EOF when the line channel closes, and the context error when the
// context is cancelled.
func (s *ChannelSource) ReadLine(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-s.interrupts:
		return "", ErrInterrupted
	case line, ok := <-s.lines:
		if !ok {
			return "", io.EOF
		}
		return line, nil
	}
}

// StartStdinFeed starts the goroutine that scans r line by line into the
// returned channel. The channel is closed on end of input or context
// cancellation.
func StartStdinFeed(ctx context.Context, r io.Reader) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()

	return lines
}
