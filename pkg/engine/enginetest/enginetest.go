// Package enginetest provides a scripted in-memory engine for testing the
// bootstrap without a real shell engine implementation.
package enginetest

import (
	"fmt"

	"github.com/chuk-labs/vshell/pkg/engine"
)

// Engine is a scripted engine.Engine implementation. Responses maps input
// lines to canned output; Failures maps input lines to error messages.
// Every dispatched line is recorded in Executed.
type Engine struct {
	ConfigPath  string
	PromptText  string
	Environment engine.Info
	Responses   map[string]string
	Failures    map[string]string
	Executed    []string

	running bool
}

// New creates a scripted engine initialized with the given configuration
// path and sensible defaults.
func New(configPath string) *Engine {
	return &Engine{
		ConfigPath: configPath,
		PromptText: "test$ ",
		Environment: engine.Info{
			Home:     "/home/tester",
			User:     "tester",
			ReadOnly: true,
		},
		running: true,
	}
}

// Running implements engine.Engine.
func (e *Engine) Running() bool { return e.running }

// Stop makes Running report false, simulating an engine-side shutdown.
func (e *Engine) Stop() { e.running = false }

// Prompt implements engine.Engine.
func (e *Engine) Prompt() string { return e.PromptText }

// Info implements engine.Engine.
func (e *Engine) Info() engine.Info { return e.Environment }

// Execute implements engine.Engine. Lines listed in Failures return an
// error; lines listed in Responses return their canned output; anything
// else returns empty output.
func (e *Engine) Execute(line string) (string, error) {
	e.Executed = append(e.Executed, line)

	if msg, ok := e.Failures[line]; ok {
		return "", fmt.Errorf("%s", msg)
	}
	if out, ok := e.Responses[line]; ok {
		return out, nil
	}
	return "", nil
}

// Factory is an engine.Factory producing a fresh scripted engine.
func Factory(configPath string) (engine.Engine, error) {
	return New(configPath), nil
}

// FailingFactory returns an engine.Factory that always fails with the
// given message, for exercising initialization error paths.
func FailingFactory(message string) engine.Factory {
	return func(configPath string) (engine.Engine, error) {
		return nil, fmt.Errorf("%s", message)
	}
}
