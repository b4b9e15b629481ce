package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Response is a canned result for one command.
type Response struct {
	Output []byte
	Err    error
}

// FakeCommander returns pre-configured responses for testing.
// Responses are keyed by "name arg1 arg2 ..." (e.g. "zsh --version",
// "/usr/bin/mise hook-env -s bash"). When no exact key matches, the longest
// registered prefix wins.
type FakeCommander struct {
	mu sync.Mutex

	Responses map[string]Response

	// Calls records all commands that were executed, in order.
	Calls []string

	// EnvCalls records the env maps passed to RunWithEnv, in order.
	EnvCalls []map[string]string

	// DefaultResponse is returned when nothing matches.
	// If nil, unmatched commands fail like a missing binary.
	DefaultResponse *Response
}

// NewFakeCommander creates a FakeCommander with an empty response map.
func NewFakeCommander() *FakeCommander {
	return &FakeCommander{Responses: make(map[string]Response)}
}

// Register adds a response for the given command key.
func (c *FakeCommander) Register(key, output string, err error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Responses[key] = Response{Output: []byte(output), Err: err}
}

// Run records the call and returns the matching response.
func (c *FakeCommander) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lookup(name, args)
}

// RunWithEnv records env and otherwise behaves like Run.
func (c *FakeCommander) RunWithEnv(_ context.Context, env map[string]string, name string, args ...string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.EnvCalls = append(c.EnvCalls, env)
	return c.lookup(name, args)
}

func (c *FakeCommander) lookup(name string, args []string) ([]byte, error) {
	full := strings.TrimSpace(name + " " + strings.Join(args, " "))
	c.Calls = append(c.Calls, full)

	if resp, ok := c.Responses[full]; ok {
		return resp.Output, resp.Err
	}

	best := ""
	for key := range c.Responses {
		if strings.HasPrefix(full, key) && len(key) > len(best) {
			best = key
		}
	}
	if best != "" {
		resp := c.Responses[best]
		return resp.Output, resp.Err
	}

	if c.DefaultResponse != nil {
		return c.DefaultResponse.Output, c.DefaultResponse.Err
	}
	return nil, fmt.Errorf("FakeCommander: exec: %q: executable file not found in $PATH", name)
}

// Called reports whether a command with the given prefix was executed.
func (c *FakeCommander) Called(prefix string) bool {
	return c.CallCount(prefix) > 0
}

// CallCount returns how many executed commands start with prefix.
func (c *FakeCommander) CallCount(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, call := range c.Calls {
		if strings.HasPrefix(call, prefix) {
			n++
		}
	}
	return n
}
