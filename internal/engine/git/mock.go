package git

import (
	"context"
	"fmt"
	"strings"
)

// MockResult configures one scripted response of a MockRunner.
type MockResult struct {
	Stdout   string
	ExitCode int
	Err      error
}

// MockRunner is a test double for Runner. Responses are looked up in Stubs
// by the space-joined argument string; unscripted commands return an error
// so tests fail loudly on unexpected subprocess calls.
type MockRunner struct {
	Stubs map[string]MockResult

	// Calls records the arguments of every invocation, in order.
	Calls [][]string
	// Dirs records the working directory of every invocation, in order.
	Dirs []string
}

// Run returns the scripted result for the given arguments.
func (m *MockRunner) Run(_ context.Context, dir string, args ...string) (Result, error) {
	m.Calls = append(m.Calls, args)
	m.Dirs = append(m.Dirs, dir)

	key := strings.Join(args, " ")
	if r, ok := m.Stubs[key]; ok {
		return Result{Stdout: r.Stdout, ExitCode: r.ExitCode}, r.Err
	}
	return Result{}, fmt.Errorf("unscripted git call: %s", key)
}

// Called reports whether any recorded call starts with the given subcommand.
func (m *MockRunner) Called(subcommand string) bool {
	for _, call := range m.Calls {
		if len(call) > 0 && call[0] == subcommand {
			return true
		}
	}
	return false
}
