package setup

import (
	"fmt"
	"io"
	"os"

	"github.com/hbjs97/mise/internal/logging"
	"github.com/hbjs97/mise/internal/shell"
)

// Runner는 interactive setup의 진입점이다.
type Runner struct {
	// Shell이 비어 있으면 Yes일 때는 $SHELL, 아니면 선택 UI로 정한다.
	Shell      string
	RCPath     string // 테스트용. 비어있으면 ShellRCPath.
	Yes        bool
	FormRunner FormRunner
	Out        io.Writer
}

// Run은 setup 플로우를 실행한다.
func (r *Runner) Run() (*Result, error) {
	logger := logging.Get("setup")
	out := r.Out
	if out == nil {
		out = os.Stdout
	}

	name, err := r.chooseShell()
	if err != nil {
		return nil, err
	}
	sh, err := shell.Get(name)
	if err != nil {
		return nil, fmt.Errorf("setup.Run: %w", err)
	}

	rcPath := r.RCPath
	if rcPath == "" {
		if rcPath, err = ShellRCPath(sh.Name()); err != nil {
			return nil, err
		}
	}
	res := &Result{Shell: sh.Name(), RCPath: rcPath}
	logger.Debug().Str("shell", res.Shell).Str("rc", rcPath).Msg("setup target")

	if HasActivation(sh.Name(), rcPath) {
		res.AlreadyPresent = true
		fmt.Fprintf(out, "이미 설정되어 있습니다: %s\n", rcPath)
		return res, nil
	}

	line, err := ActivationLine(sh.Name())
	if err != nil {
		return nil, err
	}
	if !r.Yes {
		if r.FormRunner == nil {
			return nil, fmt.Errorf("setup.Run: 확인 UI가 없습니다 (--yes 사용)")
		}
		ok, err := r.FormRunner.RunConfirm(fmt.Sprintf("%s 에 다음 줄을 추가할까요?\n  %s", rcPath, line))
		if err != nil {
			return nil, fmt.Errorf("setup.Run: %w", err)
		}
		if !ok {
			fmt.Fprintln(out, "취소했습니다.")
			return res, nil
		}
	}

	installed, err := InstallShellHook(sh.Name(), rcPath)
	if err != nil {
		return nil, err
	}
	res.Installed = installed
	fmt.Fprintf(out, "%s 에 추가했습니다:\n  %s\n새 셸을 열면 적용됩니다.\n", rcPath, line)
	return res, nil
}

func (r *Runner) chooseShell() (string, error) {
	if r.Shell != "" {
		return r.Shell, nil
	}
	detected := DetectShell()
	if r.Yes || r.FormRunner == nil {
		if detected == "" {
			return "", fmt.Errorf("setup.Run: $SHELL이 비어 있어 셸을 감지할 수 없습니다: %w", ErrUnsupportedShell)
		}
		return detected, nil
	}
	name, err := r.FormRunner.RunShellSelect(shell.Names(), detected)
	if err != nil {
		return "", fmt.Errorf("setup.Run: %w", err)
	}
	return name, nil
}
