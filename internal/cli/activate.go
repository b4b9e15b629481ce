package cli

import (
	"fmt"

	"github.com/hbjs97/mise/internal/config"
	"github.com/hbjs97/mise/internal/logging"
	"github.com/hbjs97/mise/internal/setup"
	"github.com/hbjs97/mise/internal/shell"
	"github.com/spf13/cobra"
)

func (a *App) newActivateCmd() *cobra.Command {
	var status, noHookEnv bool

	cmd := &cobra.Command{
		Use:   "activate [shell]",
		Short: "셸 활성화 스크립트를 출력한다",
		Long: `셸 활성화 스크립트를 출력한다. rc 파일에서 평가한다:

  bash/zsh:  eval "$(mise activate bash)"
  fish:      mise activate fish | source
  pwsh:      (&mise activate pwsh) | Out-String | Invoke-Expression
  xonsh:     execx($(mise activate xonsh))

env_path가 설정된 디렉토리에서는 프롬프트마다 PATH를 활성화 당시 값에서 다시
만든다. 활성화 이후 직접 PATH에 추가한 항목은 그때 사라진다.`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: shell.Names(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}
			return a.runActivate(cmd, name, status, noHookEnv)
		},
	}
	cmd.Flags().BoolVar(&status, "status", false, "hook-env 실행 시 변경 내역을 stderr에 표시")
	cmd.Flags().BoolVar(&noHookEnv, "no-hook-env", false, "prompt hook 없이 mise 함수만 설치")
	return cmd
}

func (a *App) runActivate(cmd *cobra.Command, name string, status, noHookEnv bool) error {
	settings, err := config.Load(a.CfgPath)
	if err != nil {
		return err
	}

	if name == "" {
		name = settings.DefaultShell
	}
	if name == "" {
		name = setup.DetectShell()
	}
	sh, err := shell.Get(name)
	if err != nil {
		return fmt.Errorf("cli.activate: %w", err)
	}

	opts := shell.ActivateOptions{
		Exe:       a.executable(),
		NoHookEnv: noHookEnv || settings.NoHookEnv,
	}
	if status || settings.IsStatus() {
		opts.Flags = " --status"
	}
	logger := logging.Get("cli")
	logger.Debug().Str("shell", sh.Name()).Str("exe", opts.Exe).Bool("no_hook_env", opts.NoHookEnv).Msg("activate")

	fmt.Fprint(cmd.OutOrStdout(), sh.Activate(opts))
	return nil
}
