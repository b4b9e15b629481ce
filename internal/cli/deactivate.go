package cli

import (
	"fmt"

	"github.com/hbjs97/mise/internal/hookenv"
	"github.com/hbjs97/mise/internal/setup"
	"github.com/hbjs97/mise/internal/shell"
	"github.com/spf13/cobra"
)

func (a *App) newDeactivateCmd() *cobra.Command {
	var shellName string

	cmd := &cobra.Command{
		Use:   "deactivate",
		Short: "현재 셸에서 mise를 비활성화하는 스크립트를 출력한다",
		Long: `mise가 바꾼 환경변수를 되돌리고 hook과 mise 함수를 제거한다.
활성화된 셸에서는 mise 함수가 출력을 바로 평가한다.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDeactivate(cmd, shellName)
		},
	}
	cmd.Flags().StringVar(&shellName, "shell", "", "셸 유형 (기본: $MISE_SHELL)")
	return cmd
}

func (a *App) runDeactivate(cmd *cobra.Command, name string) error {
	env := hookenv.Env(a.environ())
	if name == "" {
		name = env[hookenv.ShellKey]
	}
	if name == "" {
		name = setup.DetectShell()
	}
	sh, err := shell.Get(name)
	if err != nil {
		return fmt.Errorf("cli.deactivate: %w", err)
	}

	restore, err := shell.Render(sh, hookenv.Reverse(env).Mutations)
	if err != nil {
		return fmt.Errorf("cli.deactivate: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), restore+sh.Deactivate())
	return nil
}
