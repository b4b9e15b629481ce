package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/hbjs97/mise/internal/shell"
)

// Marker는 rc 파일에 기록하는 설치 표시다.
const Marker = "# mise shell integration"

// ErrUnsupportedShell은 rc 파일 위치를 모르는 셸일 때의 sentinel error다.
var ErrUnsupportedShell = fmt.Errorf("%w: rc 파일 위치를 알 수 없음", shell.ErrUnknownShell)

// DetectShell은 현재 사용자의 셸을 감지한다.
func DetectShell() string {
	sh := os.Getenv("SHELL")
	if sh == "" {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(sh), ".exe")
}

// ShellRCPath는 셸별 rc 파일 경로를 반환한다.
func ShellRCPath(shellName string) (string, error) {
	sh, err := shell.Get(shellName)
	if err != nil {
		return "", fmt.Errorf("setup.ShellRCPath: %w", ErrUnsupportedShell)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("setup.ShellRCPath: %w", err)
	}
	switch sh.Name() {
	case "bash":
		return filepath.Join(home, ".bashrc"), nil
	case "zsh":
		if zdot := os.Getenv("ZDOTDIR"); zdot != "" {
			return filepath.Join(zdot, ".zshrc"), nil
		}
		return filepath.Join(home, ".zshrc"), nil
	case "fish":
		return filepath.Join(xdg.ConfigHome, "fish", "conf.d", "mise.fish"), nil
	case "pwsh":
		return filepath.Join(xdg.ConfigHome, "powershell", "Microsoft.PowerShell_profile.ps1"), nil
	case "xonsh":
		return filepath.Join(home, ".xonshrc"), nil
	default:
		return "", fmt.Errorf("setup.ShellRCPath: %w: %s", ErrUnsupportedShell, shellName)
	}
}

// ActivationLine은 rc 파일에 넣을 활성화 한 줄이다.
func ActivationLine(shellName string) (string, error) {
	sh, err := shell.Get(shellName)
	if err != nil {
		return "", fmt.Errorf("setup.ActivationLine: %w", err)
	}
	switch sh.Name() {
	case "bash", "zsh":
		return fmt.Sprintf(`eval "$(mise activate %s)"`, sh.Name()), nil
	case "fish":
		return "mise activate fish | source", nil
	case "pwsh":
		return "(&mise activate pwsh) | Out-String | Invoke-Expression", nil
	case "xonsh":
		return "execx($(mise activate xonsh))", nil
	default:
		return "", fmt.Errorf("setup.ActivationLine: %w: %s", ErrUnsupportedShell, shellName)
	}
}

// InstallShellHook은 rc 파일에 활성화 줄을 추가한다.
// 이미 설치되어 있으면 건너뛰고 false를 반환한다.
func InstallShellHook(shellName, rcPath string) (bool, error) {
	line, err := ActivationLine(shellName)
	if err != nil {
		return false, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	sh, _ := shell.Get(shellName)

	if HasActivation(shellName, rcPath) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(rcPath), 0700); err != nil {
		return false, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
	if err != nil {
		return false, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n%s (%s)\n%s\n", Marker, sh.Name(), line); err != nil {
		return false, fmt.Errorf("setup.InstallShellHook: %w", err)
	}
	return true, nil
}
