package shell

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestBufferedSourceReadLine(t *testing.T) {
	source := NewBufferedSource(strings.NewReader("first\r\nsecond\nlast"))
	ctx := context.Background()

	for _, expected := range []string{"first", "second", "last"} {
		line, err := source.ReadLine(ctx)
		if err != nil {
			t.Fatalf("ReadLine() error: %v", err)
		}
		if line != expected {
			t.Errorf("ReadLine() = %q, expected %q", line, expected)
		}
	}

	if _, err := source.ReadLine(ctx); err != io.EOF {
		t.Errorf("Expected io.EOF at end of input, got %v", err)
	}
}

func TestChannelSourceEndOfInput(t *testing.T) {
	lines := make(chan string)
	close(lines)

	source := NewChannelSource(lines, nil)
	if _, err := source.ReadLine(context.Background()); err != io.EOF {
		t.Errorf("Expected io.EOF on a closed line channel, got %v", err)
	}
}

func TestChannelSourceContextCancellation(t *testing.T) {
	source := NewChannelSource(make(chan string), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := source.ReadLine(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestStartStdinFeed(t *testing.T) {
	ctx := context.Background()
	lines := StartStdinFeed(ctx, strings.NewReader("one\ntwo\n"))

	var collected []string
	for line := range lines {
		collected = append(collected, line)
	}

	if len(collected) != 2 || collected[0] != "one" || collected[1] != "two" {
		t.Errorf("Expected [one two], got %v", collected)
	}
}
