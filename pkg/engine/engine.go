// Package engine defines the contract between the vshell bootstrap and a
// shell engine implementation, together with the resolution machinery that
// locates a usable engine at startup.
//
// The engine itself (command language, virtual filesystem, sandbox
// enforcement) lives outside this repository. Implementations make
// themselves available either by registering a Factory under a well-known
// identifier (see Register), or by being built as a Go plugin that the
// resolver's filesystem fallback can discover and load.
package engine

// Info describes the environment a running engine exposes to the
// bootstrap: the virtual home directory, the user identity and the
// security mode of the virtual filesystem.
type Info struct {
	Home     string
	User     string
	ReadOnly bool
}

// SecurityMode returns the display string for the engine's security mode.
func (i Info) SecurityMode() string {
	if i.ReadOnly {
		return "Read-only"
	}
	return "Restricted write"
}

// Engine is the narrow contract the interactive loop drives. The loop is
// the only caller; an engine is never invoked concurrently with itself.
type Engine interface {
	// Running reports whether the engine still accepts input.
	Running() bool

	// Prompt returns the display prompt for the next input line. It may
	// change between iterations, e.g. after a working-directory change.
	Prompt() string

	// Execute runs one input line and returns its textual output, which
	// may be empty. Errors are reported to the user and do not end the
	// session.
	Execute(line string) (string, error)

	// Info returns the engine's environment snapshot.
	Info() Info
}

// Factory constructs an engine instance. configPath points at the resolved
// sandbox profile; an empty path tells the engine to use its built-in
// defaults.
type Factory func(configPath string) (Engine, error)
