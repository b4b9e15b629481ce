// Package cmdexec runs external programs for doctor probes.
// Production code uses the Commander interface; tests inject FakeCommander from testutil.
package cmdexec

import (
	"context"
	"os"
	"os/exec"
	"sort"
	"strings"
	"time"

	"github.com/hbjs97/mise/internal/logging"
)

// DefaultTimeout bounds a single probe. Shell startup can hang on a broken rc file.
const DefaultTimeout = 5 * time.Second

// Commander abstracts external command execution.
type Commander interface {
	// Run executes an external command and returns its combined output.
	Run(ctx context.Context, name string, args ...string) ([]byte, error)

	// RunWithEnv executes an external command with env overriding the
	// current process environment.
	RunWithEnv(ctx context.Context, env map[string]string, name string, args ...string) ([]byte, error)
}

// RealCommander executes actual external commands via os/exec.
type RealCommander struct {
	// Timeout defaults to DefaultTimeout when zero.
	Timeout time.Duration
}

// Run executes the command using os/exec.CommandContext.
func (c *RealCommander) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return c.RunWithEnv(ctx, nil, name, args...)
}

// RunWithEnv executes the command with env overriding the inherited variables.
func (c *RealCommander) RunWithEnv(ctx context.Context, env map[string]string, name string, args ...string) ([]byte, error) {
	timeout := c.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	logger := logging.Get("cmdexec")
	logger.Debug().Str("command", name).Strs("args", args).Msg("exec")

	cmd := exec.CommandContext(ctx, name, args...)
	if env != nil {
		cmd.Env = MergeEnv(os.Environ(), env)
	}
	return cmd.CombinedOutput()
}

// MergeEnv replaces or appends overrides in a KEY=VALUE list.
// Appended keys are sorted so the result is deterministic.
func MergeEnv(base []string, overrides map[string]string) []string {
	out := make([]string, 0, len(base)+len(overrides))
	for _, kv := range base {
		k, _, _ := strings.Cut(kv, "=")
		if _, ok := overrides[k]; ok {
			continue
		}
		out = append(out, kv)
	}
	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		out = append(out, k+"="+overrides[k])
	}
	return out
}
