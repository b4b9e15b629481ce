package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/hbjs97/mise/internal/cmdexec"
	"github.com/hbjs97/mise/internal/config"
	"github.com/hbjs97/mise/internal/hookenv"
	"github.com/hbjs97/mise/internal/setup"
	"github.com/hbjs97/mise/internal/shell"
)

// Status는 진단 결과 상태다.
type Status string

const (
	// StatusOK는 정상 상태다.
	StatusOK Status = "OK"
	// StatusWarn는 경고 상태다.
	StatusWarn Status = "WARN"
	// StatusFail는 실패 상태다.
	StatusFail Status = "FAIL"
)

// DiagResult는 하나의 진단 결과다.
type DiagResult struct {
	Name    string
	Status  Status
	Message string
	Fix     string
}

// Options는 RunAll 입력이다.
type Options struct {
	Env     map[string]string
	CfgPath string
	// RCPath가 비어 있으면 셸의 기본 rc 파일을 확인한다.
	RCPath string
	// Exe가 있으면 hook-env를 한 번 실행해 본다.
	Exe string
}

// CheckBinaries는 지원하는 셸 바이너리 설치 여부를 확인한다.
// 셸은 하나만 있으면 되므로 없는 셸은 WARN이고, 하나도 없을 때만 FAIL이다.
func CheckBinaries(ctx context.Context, cmd cmdexec.Commander) []DiagResult {
	binaries := []struct {
		name string
		args []string
	}{
		{"bash", []string{"--version"}},
		{"zsh", []string{"--version"}},
		{"fish", []string{"--version"}},
		{"pwsh", []string{"--version"}},
		{"xonsh", []string{"--version"}},
	}

	var results []DiagResult
	found := 0
	for _, b := range binaries {
		out, err := cmd.Run(ctx, b.name, b.args...)
		if err != nil {
			results = append(results, DiagResult{
				Name:    b.name,
				Status:  StatusWarn,
				Message: fmt.Sprintf("%s 없음", b.name),
			})
			continue
		}
		found++
		results = append(results, DiagResult{
			Name:    b.name,
			Status:  StatusOK,
			Message: firstLine(out),
		})
	}
	if found == 0 {
		results = append(results, DiagResult{
			Name:    "shells",
			Status:  StatusFail,
			Message: "지원하는 셸을 찾지 못했습니다",
			Fix:     "지원: " + strings.Join(shell.Names(), ", "),
		})
	}
	return results
}

// CheckActivation은 현재 셸 세션의 활성화 상태를 확인한다.
func CheckActivation(env map[string]string) DiagResult {
	name := env[hookenv.ShellKey]
	if name == "" {
		fix := "mise setup"
		if detected := setup.DetectShell(); detected != "" {
			if line, err := setup.ActivationLine(detected); err == nil {
				fix = line
			}
		}
		return DiagResult{
			Name:    "activation",
			Status:  StatusWarn,
			Message: "현재 셸에서 mise가 활성화되지 않았습니다",
			Fix:     fix,
		}
	}
	if _, err := shell.Get(name); err != nil {
		return DiagResult{
			Name:    "activation",
			Status:  StatusFail,
			Message: fmt.Sprintf("MISE_SHELL=%s 은 지원하지 않는 셸입니다", name),
			Fix:     "mise deactivate 후 올바른 셸 이름으로 다시 activate",
		}
	}
	if _, ok := env[hookenv.OrigPathKey]; !ok {
		return DiagResult{
			Name:    "activation",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 활성화됨, 그러나 %s 스냅샷이 없습니다", name, hookenv.OrigPathKey),
			Fix:     fmt.Sprintf("mise activate %s 를 다시 평가", name),
		}
	}
	return DiagResult{
		Name:    "activation",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s 활성화됨", name),
	}
}

// CheckDiff는 __MISE_DIFF 세션 상태를 해석할 수 있는지 확인한다.
func CheckDiff(env map[string]string) DiagResult {
	d, err := hookenv.DecodeDiff(env[hookenv.DiffKey])
	if err != nil {
		return DiagResult{
			Name:    "session_diff",
			Status:  StatusFail,
			Message: fmt.Sprintf("%s 손상: %v", hookenv.DiffKey, err),
			Fix:     "새 셸을 열거나 unset " + hookenv.DiffKey,
		}
	}
	return DiagResult{
		Name:    "session_diff",
		Status:  StatusOK,
		Message: fmt.Sprintf("관리 중인 변수 %d개, PATH 항목 %d개", len(d.Keys), len(d.Path)),
	}
}

// CheckRCFile은 rc 파일에 활성화 줄이 있는지 확인한다.
func CheckRCFile(shellName, rcPath string) DiagResult {
	if rcPath == "" {
		p, err := setup.ShellRCPath(shellName)
		if err != nil {
			return DiagResult{
				Name:    "rc_file",
				Status:  StatusWarn,
				Message: fmt.Sprintf("셸 %q 의 rc 파일을 알 수 없습니다", shellName),
				Fix:     "mise setup <shell>",
			}
		}
		rcPath = p
	}
	if !setup.HasActivation(shellName, rcPath) {
		return DiagResult{
			Name:    "rc_file",
			Status:  StatusWarn,
			Message: fmt.Sprintf("%s 에 활성화 줄이 없습니다", rcPath),
			Fix:     fmt.Sprintf("mise setup %s", shellName),
		}
	}
	return DiagResult{
		Name:    "rc_file",
		Status:  StatusOK,
		Message: fmt.Sprintf("%s 에 활성화 줄이 있습니다", rcPath),
	}
}

// CheckHookEnv는 현재 디렉토리에서 hook-env가 성공하는지 실제로 실행해 확인한다.
func CheckHookEnv(ctx context.Context, cmd cmdexec.Commander, exe, shellName string) DiagResult {
	if _, err := shell.Get(shellName); err != nil {
		shellName = "bash"
	}
	out, err := cmd.RunWithEnv(ctx, map[string]string{hookenv.ShellKey: shellName}, exe, "hook-env", "-s", shellName)
	if err != nil {
		msg := firstLine(out)
		if msg == "" {
			msg = err.Error()
		}
		return DiagResult{
			Name:    "hook_env",
			Status:  StatusFail,
			Message: msg,
			Fix:     "mise.toml 의 [env] 와 env_path 확인",
		}
	}
	return DiagResult{
		Name:    "hook_env",
		Status:  StatusOK,
		Message: fmt.Sprintf("hook-env -s %s 정상", shellName),
	}
}

// CheckConfig는 설정 파일을 파싱할 수 있는지 확인한다.
func CheckConfig(cfgPath string) DiagResult {
	if _, err := config.Load(cfgPath); err != nil {
		return DiagResult{
			Name:    "config",
			Status:  StatusFail,
			Message: err.Error(),
			Fix:     fmt.Sprintf("%s 확인", cfgPath),
		}
	}
	return DiagResult{
		Name:    "config",
		Status:  StatusOK,
		Message: cfgPath,
	}
}

// RunAll은 모든 진단을 실행한다.
func RunAll(ctx context.Context, cmd cmdexec.Commander, opts Options) []DiagResult {
	var results []DiagResult
	results = append(results, CheckConfig(opts.CfgPath))
	results = append(results, CheckBinaries(ctx, cmd)...)
	results = append(results, CheckActivation(opts.Env))
	results = append(results, CheckDiff(opts.Env))

	shellName := opts.Env[hookenv.ShellKey]
	if shellName == "" {
		shellName = setup.DetectShell()
	}
	results = append(results, CheckRCFile(shellName, opts.RCPath))
	if opts.Exe != "" {
		results = append(results, CheckHookEnv(ctx, cmd, opts.Exe, shellName))
	}
	return results
}

// HasFailure는 FAIL 결과가 하나라도 있는지 확인한다.
func HasFailure(results []DiagResult) bool {
	for _, r := range results {
		if r.Status == StatusFail {
			return true
		}
	}
	return false
}

func firstLine(out []byte) string {
	s := strings.TrimSpace(string(out))
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return s
}
