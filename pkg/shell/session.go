// Package shell drives the interactive session against a resolved shell
// engine: prompt, read, dispatch, print, until an exit directive or end of
// input. Per-iteration failures are absorbed; only initialization failures
// end a session.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"

	"github.com/chuk-labs/vshell/pkg/common"
	"github.com/chuk-labs/vshell/pkg/engine"
)

// DefaultPromptTemplate is the fallback prompt used when the engine
// reports no prompt of its own and the profile does not set one.
const DefaultPromptTemplate = "{{ .user }}@vshell$ "

// exitKeywords are the recognized exit directives, matched
// case-insensitively and never dispatched to the engine.
var exitKeywords = map[string]bool{
	"exit": true,
	"quit": true,
	"q":    true,
}

// IsExitKeyword reports whether line is an exit directive.
func IsExitKeyword(line string) bool {
	return exitKeywords[strings.ToLower(strings.TrimSpace(line))]
}

// Config carries the collaborators for a Session. Engine and Source are
// required; the rest default to stdout, the global logger and
// DefaultPromptTemplate.
type Config struct {
	Engine         engine.Engine
	Source         LineSource
	Out            io.Writer
	Logger         *common.Logger
	PromptTemplate string
}

// Session owns the interactive loop state: the engine instance, the input
// source and the running flag. Nothing else mutates that state.
type Session struct {
	engine         engine.Engine
	source         LineSource
	out            io.Writer
	logger         *common.Logger
	promptTemplate string
	errorMarker    *color.Color

	running bool
}

// New creates a session from the given configuration.
func New(cfg Config) *Session {
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Logger == nil {
		cfg.Logger = common.GetLogger()
	}
	if cfg.PromptTemplate == "" {
		cfg.PromptTemplate = DefaultPromptTemplate
	}

	return &Session{
		engine:         cfg.Engine,
		source:         cfg.Source,
		out:            cfg.Out,
		logger:         cfg.Logger,
		promptTemplate: cfg.PromptTemplate,
		errorMarker:    color.New(color.FgRed),
	}
}

// Running reports whether the session loop is active.
func (s *Session) Running() bool {
	return s.running
}

// Run executes the interactive loop until an exit directive, end of input,
// or engine shutdown. Engine execution errors and interrupts are reported
// and absorbed; they never end the session.
func (s *Session) Run(ctx context.Context) error {
	if s.engine == nil {
		return fmt.Errorf("session has no engine")
	}
	if s.source == nil {
		return fmt.Errorf("session has no input source")
	}

	s.running = true
	defer func() { s.running = false }()

	for s.running && s.engine.Running() {
		fmt.Fprint(s.out, s.prompt())

		line, err := s.source.ReadLine(ctx)
		if err != nil {
			switch {
			case errors.Is(err, ErrInterrupted):
				fmt.Fprintln(s.out, "^C")
				continue
			case errors.Is(err, io.EOF), errors.Is(err, context.Canceled):
				s.logger.Info("End of input, terminating session")
				return nil
			default:
				// An unreadable source cannot make progress; report once
				// and terminate instead of spinning on the same failure.
				s.reportError(fmt.Errorf("input error: %w", err))
				return nil
			}
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if IsExitKeyword(line) {
			s.logger.Info("Exit keyword received, terminating session")
			s.running = false
			break
		}

		result, err := s.engine.Execute(line)
		if err != nil {
			s.reportError(err)
			continue
		}
		if result != "" {
			fmt.Fprintln(s.out, result)
		}
	}

	return nil
}

// prompt produces the prompt for the next iteration: the engine's own
// prompt when it reports one, otherwise the session's prompt template
// rendered against the engine's environment snapshot.
func (s *Session) prompt() string {
	if p := s.engine.Prompt(); p != "" {
		return p
	}

	info := s.engine.Info()
	rendered, err := common.ProcessTemplate(s.promptTemplate, map[string]interface{}{
		"user":     info.User,
		"home":     info.Home,
		"security": info.SecurityMode(),
	})
	if err != nil || rendered == "" {
		return "vshell$ "
	}
	return rendered
}

// reportError prints a single-line user-visible error with the session's
// consistent marker. Internal multi-line detail stays in the log.
func (s *Session) reportError(err error) {
	msg := err.Error()
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		msg = msg[:i]
	}
	s.logger.Error("Session error: %v", err)
	fmt.Fprintf(s.out, "%s %s\n", s.errorMarker.Sprint("Error:"), msg)
}
