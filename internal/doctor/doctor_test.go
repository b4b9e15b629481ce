package doctor_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbjs97/mise/internal/doctor"
	"github.com/hbjs97/mise/internal/hookenv"
	"github.com/hbjs97/mise/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findResult(t *testing.T, results []doctor.DiagResult, name string) doctor.DiagResult {
	t.Helper()
	for _, r := range results {
		if r.Name == name {
			return r
		}
	}
	require.Failf(t, "result not found", "name=%s", name)
	return doctor.DiagResult{}
}

func TestCheckBinaries_AllPresent(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.Register("bash --version", "GNU bash, version 5.2.21(1)-release\nCopyright (C) 2022", nil)
	fake.Register("zsh --version", "zsh 5.9", nil)
	fake.Register("fish --version", "fish, version 3.7.0", nil)
	fake.Register("pwsh --version", "PowerShell 7.4.1", nil)
	fake.Register("xonsh --version", "xonsh/0.14.4", nil)

	results := doctor.CheckBinaries(context.Background(), fake)
	require.Len(t, results, 5)
	for _, r := range results {
		assert.Equal(t, doctor.StatusOK, r.Status, "check %s should be OK", r.Name)
	}
	assert.Equal(t, "GNU bash, version 5.2.21(1)-release", findResult(t, results, "bash").Message)
}

func TestCheckBinaries_SomeMissingIsWarn(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.Register("bash --version", "GNU bash", nil)
	fake.DefaultResponse = &testutil.Response{Err: fmt.Errorf("not found")}

	results := doctor.CheckBinaries(context.Background(), fake)
	assert.Equal(t, doctor.StatusOK, findResult(t, results, "bash").Status)
	assert.Equal(t, doctor.StatusWarn, findResult(t, results, "fish").Status)
	assert.False(t, doctor.HasFailure(results))
}

func TestCheckBinaries_NoneIsFail(t *testing.T) {
	fake := testutil.NewFakeCommander()

	results := doctor.CheckBinaries(context.Background(), fake)
	r := findResult(t, results, "shells")
	assert.Equal(t, doctor.StatusFail, r.Status)
	assert.Contains(t, r.Fix, "bash")
	assert.Equal(t, 5, fake.CallCount(""))
}

func TestCheckActivation(t *testing.T) {
	t.Setenv("SHELL", "/bin/zsh")

	r := doctor.CheckActivation(map[string]string{})
	assert.Equal(t, doctor.StatusWarn, r.Status)
	assert.Equal(t, `eval "$(mise activate zsh)"`, r.Fix)

	r = doctor.CheckActivation(map[string]string{hookenv.ShellKey: "tcsh"})
	assert.Equal(t, doctor.StatusFail, r.Status)

	r = doctor.CheckActivation(map[string]string{hookenv.ShellKey: "bash"})
	assert.Equal(t, doctor.StatusWarn, r.Status)
	assert.Contains(t, r.Message, hookenv.OrigPathKey)

	r = doctor.CheckActivation(map[string]string{hookenv.ShellKey: "bash", hookenv.OrigPathKey: "/bin"})
	assert.Equal(t, doctor.StatusOK, r.Status)
}

func TestCheckDiff(t *testing.T) {
	assert.Equal(t, doctor.StatusOK, doctor.CheckDiff(map[string]string{}).Status)

	d := &hookenv.Diff{Keys: map[string]hookenv.Original{"A": {}}, Path: []string{"/p"}}
	encoded, err := d.Encode()
	require.NoError(t, err)
	r := doctor.CheckDiff(map[string]string{hookenv.DiffKey: encoded})
	assert.Equal(t, doctor.StatusOK, r.Status)
	assert.Contains(t, r.Message, "1")

	r = doctor.CheckDiff(map[string]string{hookenv.DiffKey: "!!"})
	assert.Equal(t, doctor.StatusFail, r.Status)
}

func TestCheckRCFile(t *testing.T) {
	rcPath := filepath.Join(t.TempDir(), ".bashrc")

	r := doctor.CheckRCFile("bash", rcPath)
	assert.Equal(t, doctor.StatusWarn, r.Status)
	assert.Equal(t, "mise setup bash", r.Fix)

	require.NoError(t, os.WriteFile(rcPath, []byte(`eval "$(mise activate bash)"`+"\n"), 0600))
	r = doctor.CheckRCFile("bash", rcPath)
	assert.Equal(t, doctor.StatusOK, r.Status)

	r = doctor.CheckRCFile("tcsh", "")
	assert.Equal(t, doctor.StatusWarn, r.Status)
}

func TestCheckConfig(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, doctor.StatusOK, doctor.CheckConfig(filepath.Join(dir, "missing.toml")).Status)

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("status = ["), 0600))
	assert.Equal(t, doctor.StatusFail, doctor.CheckConfig(bad).Status)
}

func TestRunAll(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.DefaultResponse = &testutil.Response{Output: []byte("v1")}
	dir := t.TempDir()

	results := doctor.RunAll(context.Background(), fake, doctor.Options{
		Env:     map[string]string{hookenv.ShellKey: "bash", hookenv.OrigPathKey: "/bin"},
		CfgPath: filepath.Join(dir, "config.toml"),
		RCPath:  filepath.Join(dir, ".bashrc"),
		Exe:     "/bin/mise",
	})

	for _, name := range []string{"config", "bash", "xonsh", "activation", "session_diff", "rc_file", "hook_env"} {
		findResult(t, results, name)
	}
	assert.False(t, doctor.HasFailure(results))
}

func TestCheckHookEnv(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.Register("/bin/mise hook-env -s zsh", "", nil)

	r := doctor.CheckHookEnv(context.Background(), fake, "/bin/mise", "zsh")
	assert.Equal(t, doctor.StatusOK, r.Status)
	require.Len(t, fake.EnvCalls, 1)
	assert.Equal(t, "zsh", fake.EnvCalls[0][hookenv.ShellKey])
}

func TestCheckHookEnv_Failure(t *testing.T) {
	fake := testutil.NewFakeCommander()
	fake.Register("/bin/mise hook-env", "Error: config.LoadEnv: 설정 오류\nmore", fmt.Errorf("exit status 5"))

	r := doctor.CheckHookEnv(context.Background(), fake, "/bin/mise", "tcsh")
	assert.Equal(t, doctor.StatusFail, r.Status)
	assert.Equal(t, "Error: config.LoadEnv: 설정 오류", r.Message)
	assert.True(t, fake.Called("/bin/mise hook-env -s bash"))
}
