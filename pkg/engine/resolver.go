package engine

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/chuk-labs/vshell/pkg/common"
)

// StrategyKind discriminates how a resolution strategy obtains an engine.
type StrategyKind string

const (
	// StrategyRegistry looks the target identifier up in the registry.
	StrategyRegistry StrategyKind = "registry"
	// StrategySearch walks the target directory for the engine plugin
	// artifact and loads the first match.
	StrategySearch StrategyKind = "search"
	// StrategyPluginFile loads the target path as an engine plugin.
	StrategyPluginFile StrategyKind = "plugin"
)

// Strategy is one attempt, among several, to obtain a working engine
// factory. Strategies are evaluated in declared order and the first
// success wins.
type Strategy struct {
	Kind   StrategyKind
	Target string
}

func (s Strategy) String() string {
	return string(s.Kind) + ":" + s.Target
}

// Attempt records the outcome of one strategy evaluation.
type Attempt struct {
	Strategy Strategy
	// Err is nil for the successful attempt.
	Err error
}

// DefaultIdentifiers is the fixed, ordered list of registry identifiers
// probed before the filesystem fallback. The names mirror the plausible
// homes of the engine entry point.
var DefaultIdentifiers = []string{
	"chuk-virtual-shell",
	"virtual-shell",
	"shell-interpreter",
}

// DefaultSearchRoots are the base directories searched for the engine
// plugin artifact when no registered identifier matches.
var DefaultSearchRoots = []string{".", "engines"}

const (
	// PluginFilename is the engine plugin artifact searched for under the
	// search roots.
	PluginFilename = "vshell-engine.so"

	// PluginSymbol is the constructor symbol looked up in a loaded plugin.
	PluginSymbol = "NewEngine"
)

// DefaultStrategies returns the standard strategy order: every well-known
// registry identifier first, then a filesystem search per root.
func DefaultStrategies() []Strategy {
	var strategies []Strategy
	for _, id := range DefaultIdentifiers {
		strategies = append(strategies, Strategy{Kind: StrategyRegistry, Target: id})
	}
	for _, root := range DefaultSearchRoots {
		strategies = append(strategies, Strategy{Kind: StrategySearch, Target: root})
	}
	return strategies
}

// Resolver evaluates an ordered list of strategies until one produces an
// engine factory. A failure in one strategy never aborts the remaining
// ones; only full exhaustion yields an error.
type Resolver struct {
	strategies []Strategy
	logger     *common.Logger
	attempts   []Attempt
}

// NewResolver creates a resolver over the given strategies. A nil or empty
// strategy list falls back to DefaultStrategies.
func NewResolver(strategies []Strategy, logger *common.Logger) *Resolver {
	if len(strategies) == 0 {
		strategies = DefaultStrategies()
	}
	if logger == nil {
		logger = common.GetLogger()
	}
	return &Resolver{
		strategies: strategies,
		logger:     logger,
	}
}

// Resolve tries each strategy in order and returns the first factory
// obtained. On exhaustion it returns a *ResolutionError carrying every
// attempt and its cause.
func (r *Resolver) Resolve() (Factory, error) {
	r.attempts = nil

	for i, strategy := range r.strategies {
		factory, err := r.attempt(strategy)
		r.attempts = append(r.attempts, Attempt{Strategy: strategy, Err: err})

		if err == nil {
			r.logger.Info("Resolution attempt %d (%s) succeeded", i+1, strategy)
			return factory, nil
		}
		r.logger.Info("Resolution attempt %d (%s) failed: %v", i+1, strategy, err)
	}

	return nil, &ResolutionError{Attempts: r.attempts}
}

// Attempts returns the outcomes recorded by the last Resolve call.
func (r *Resolver) Attempts() []Attempt {
	return r.attempts
}

// attempt evaluates a single strategy.
func (r *Resolver) attempt(strategy Strategy) (Factory, error) {
	switch strategy.Kind {
	case StrategyRegistry:
		if factory, ok := Lookup(strategy.Target); ok {
			return factory, nil
		}
		return nil, fmt.Errorf("no engine registered as %q", strategy.Target)

	case StrategySearch:
		path, err := FindPluginFile(strategy.Target, PluginFilename)
		if err != nil {
			return nil, err
		}
		r.logger.Info("Found engine plugin at %s", path)
		return loadPluginFactory(path)

	case StrategyPluginFile:
		return loadPluginFactory(strategy.Target)
	}

	return nil, fmt.Errorf("unknown strategy kind: %s", strategy.Kind)
}

// FindPluginFile walks root recursively and returns the first file whose
// base name matches filename, in walk order. Unreadable subdirectories are
// skipped rather than failing the search.
func FindPluginFile(root, filename string) (string, error) {
	if _, err := os.Stat(root); err != nil {
		return "", fmt.Errorf("search root %q is not accessible: %w", root, err)
	}

	var found string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if !d.IsDir() && d.Name() == filename {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to search %q: %w", root, err)
	}

	if found == "" {
		return "", fmt.Errorf("no %s found under %q", filename, root)
	}
	return found, nil
}

// ResolutionError reports that every strategy and the filesystem fallback
// failed. It carries the full list of attempts and their causes.
type ResolutionError struct {
	Attempts []Attempt
}

func (e *ResolutionError) Error() string {
	var b strings.Builder
	b.WriteString("no shell engine could be resolved")
	for i, attempt := range e.Attempts {
		fmt.Fprintf(&b, "; attempt %d (%s): %v", i+1, attempt.Strategy, attempt.Err)
	}
	return b.String()
}
