package engine

import (
	"fmt"
	"plugin"
)

// loadPluginFactory opens an engine plugin artifact and extracts its
// constructor symbol. On platforms without plugin support plugin.Open
// fails, which folds into the resolver's normal attempt-and-continue flow.
func loadPluginFactory(path string) (Factory, error) {
	p, err := plugin.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open engine plugin %s: %w", path, err)
	}

	sym, err := p.Lookup(PluginSymbol)
	if err != nil {
		return nil, fmt.Errorf("engine plugin %s has no %s symbol: %w", path, PluginSymbol, err)
	}

	// Accept both a plain constructor function and an exported Factory
	// variable.
	switch fn := sym.(type) {
	case func(string) (Engine, error):
		return Factory(fn), nil
	case *Factory:
		return *fn, nil
	}

	return nil, fmt.Errorf("engine plugin %s: symbol %s has unexpected type %T", path, PluginSymbol, sym)
}
