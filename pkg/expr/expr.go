package expr

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/macropower/urllang/pkg/urlparts"
)

// ErrNotBool is returned when a condition does not evaluate to a boolean.
var ErrNotBool = errors.New("expression did not evaluate to a bool")

// Protect CEL environment creation and compilation from concurrent access.
var celMutex sync.Mutex

// Environment provides a thread-safe wrapper around a [*cel.Env].
type Environment struct {
	env *cel.Env
}

// NewEnvironment creates a new [Environment] with the URL library.
func NewEnvironment(opts ...cel.EnvOption) (*Environment, error) {
	env, err := createEnvironment(opts...)
	if err != nil {
		return nil, err
	}

	return &Environment{env: env}, nil
}

// MustNewEnvironment creates a new [Environment] and panics on error.
func MustNewEnvironment(opts ...cel.EnvOption) *Environment {
	env, err := NewEnvironment(opts...)
	if err != nil {
		panic(err)
	}

	return env
}

// URLEnvironment returns the shared [Environment] that declares the URL
// variables.
var URLEnvironment = sync.OnceValue(func() *Environment {
	return MustNewEnvironment(
		cel.Variable("scheme", cel.StringType),
		cel.Variable("host", cel.StringType),
		cel.Variable("port", cel.StringType),
		cel.Variable("path", cel.StringType),
		cel.Variable("query", cel.StringType),
	)
})

func createEnvironment(opts ...cel.EnvOption) (*cel.Env, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	opts = append(opts, cel.Lib(&lib{}))

	celEnv, err := cel.NewEnv(opts...)
	if err != nil {
		return nil, fmt.Errorf("create CEL environment: %w", err)
	}

	return celEnv, nil
}

// Compile compiles a CEL expression and returns a program.
//
//nolint:ireturn // Following CEL's function signature.
func (e *Environment) Compile(expression string) (cel.Program, error) {
	celMutex.Lock()
	defer celMutex.Unlock()

	ast, issues := e.env.Compile(expression)
	if issues != nil && issues.Err() != nil {
		return nil, fmt.Errorf("compile expression: %w", issues.Err())
	}

	if !ast.OutputType().IsAssignableType(cel.BoolType) {
		return nil, fmt.Errorf("%w: got %s", ErrNotBool, ast.OutputType())
	}

	program, err := e.env.Program(ast)
	if err != nil {
		return nil, fmt.Errorf("create program: %w", err)
	}

	return program, nil
}

// Condition is a compiled boolean expression over a URL.
type Condition struct {
	program    cel.Program
	expression string
}

// NewCondition compiles expression in the [URLEnvironment].
func NewCondition(expression string) (*Condition, error) {
	program, err := URLEnvironment().Compile(expression)
	if err != nil {
		return nil, err
	}

	return &Condition{program: program, expression: expression}, nil
}

// Match evaluates the condition against u. Evaluation errors and non-bool
// results are reported as errors.
func (c *Condition) Match(u *urlparts.URL) (bool, error) {
	result, _, err := c.program.Eval(map[string]any{
		"scheme": u.Scheme,
		"host":   u.Host,
		"port":   u.Port,
		"path":   u.Path,
		"query":  u.RawQuery,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate %q: %w", c.expression, err)
	}

	b, ok := result.Value().(bool)
	if !ok {
		return false, fmt.Errorf("evaluate %q: %w", c.expression, ErrNotBool)
	}

	return b, nil
}

func (c *Condition) String() string {
	return c.expression
}
