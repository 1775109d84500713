package common

import (
	"fmt"
	"log"
	"runtime"

	"github.com/google/cel-go/cel"
)

// CompiledConditions holds the compiled CEL programs for a sandbox
// profile's requirement conditions. Conditions are boolean expressions
// evaluated against the process environment, for example:
//
//	env["USER"] != "" && os == "linux"
type CompiledConditions struct {
	programs []cel.Program
	logger   *log.Logger
}

// NewCompiledConditions compiles a list of CEL condition expressions.
// The expressions can reference the variables "env" (a string map of the
// process environment), "os" and "arch".
// logger is required for logging compilation and evaluation information.
func NewCompiledConditions(conditions []string, logger *log.Logger) (*CompiledConditions, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required for condition compilation")
	}

	if len(conditions) == 0 {
		return &CompiledConditions{logger: logger}, nil
	}

	env, err := cel.NewEnv(
		cel.Variable("env", cel.MapType(cel.StringType, cel.StringType)),
		cel.Variable("os", cel.StringType),
		cel.Variable("arch", cel.StringType),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create CEL environment: %w", err)
	}

	// Compile each condition expression
	var programs []cel.Program
	for _, expr := range conditions {
		ast, issues := env.Compile(expr)
		if issues != nil && issues.Err() != nil {
			return nil, fmt.Errorf("failed to compile condition '%s': %w", expr, issues.Err())
		}

		prg, err := env.Program(ast)
		if err != nil {
			return nil, fmt.Errorf("failed to create program for condition '%s': %w", expr, err)
		}

		programs = append(programs, prg)
	}

	return &CompiledConditions{
		programs: programs,
		logger:   logger,
	}, nil
}

// Evaluate evaluates all compiled conditions against the provided
// environment map. Returns true only if every condition evaluates to true.
func (cc *CompiledConditions) Evaluate(environ map[string]string) (bool, error) {
	if cc == nil || len(cc.programs) == 0 {
		// No conditions means the requirement is met by default
		return true, nil
	}

	cc.logger.Printf("Evaluating %d profile conditions", len(cc.programs))

	if environ == nil {
		environ = map[string]string{}
	}

	activation := map[string]interface{}{
		"env":  environ,
		"os":   runtime.GOOS,
		"arch": runtime.GOARCH,
	}

	for i, prg := range cc.programs {
		out, _, err := prg.Eval(activation)
		if err != nil {
			return false, fmt.Errorf("failed to evaluate condition %d: %w", i+1, err)
		}

		result, ok := out.Value().(bool)
		if !ok {
			return false, fmt.Errorf("condition %d did not evaluate to a boolean", i+1)
		}

		if !result {
			cc.logger.Printf("Condition %d failed", i+1)
			return false, nil
		}
	}

	return true, nil
}

// EnvironMap converts a list of "KEY=VALUE" pairs (as returned by
// os.Environ) into a map suitable for Evaluate.
func EnvironMap(environ []string) map[string]string {
	result := make(map[string]string, len(environ))
	for _, entry := range environ {
		for i := 0; i < len(entry); i++ {
			if entry[i] == '=' {
				result[entry[:i]] = entry[i+1:]
				break
			}
		}
	}
	return result
}
