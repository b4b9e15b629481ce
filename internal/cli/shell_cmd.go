package cli

import (
	"fmt"
	"strings"

	"github.com/hbjs97/mise/internal/hookenv"
	"github.com/hbjs97/mise/internal/shell"
	"github.com/spf13/cobra"
)

func (a *App) newShellCmd() *cobra.Command {
	var unset []string
	var shellName string

	cmd := &cobra.Command{
		Use:     "shell [KEY=VALUE]...",
		Aliases: []string{"sh"},
		Short:   "현재 셸 세션에만 환경변수를 설정한다",
		Long: `현재 셸 세션에만 환경변수를 설정하거나 제거한다.
활성화된 셸에서 mise 함수가 출력을 평가하므로 mise activate가 먼저 필요하다.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShell(cmd, shellName, args, unset)
		},
	}
	cmd.Flags().StringSliceVarP(&unset, "unset", "u", nil, "제거할 변수")
	cmd.Flags().StringVar(&shellName, "shell", "", "셸 유형 (기본: $MISE_SHELL)")
	return cmd
}

func (a *App) runShell(cmd *cobra.Command, name string, assigns, unset []string) error {
	if name == "" {
		name = hookenv.Env(a.environ())[hookenv.ShellKey]
	}
	if name == "" {
		return fmt.Errorf("cli.shell: %w: mise activate를 먼저 평가하세요", ErrNotActivated)
	}
	sh, err := shell.Get(name)
	if err != nil {
		return fmt.Errorf("cli.shell: %w", err)
	}
	if len(assigns) == 0 && len(unset) == 0 {
		return fmt.Errorf("cli.shell: KEY=VALUE 또는 --unset KEY가 필요합니다")
	}

	muts := make([]shell.Mutation, 0, len(assigns)+len(unset))
	for _, arg := range assigns {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("cli.shell: KEY=VALUE 형식이 아닙니다: %q", arg)
		}
		muts = append(muts, shell.Set(k, v))
	}
	for _, k := range unset {
		muts = append(muts, shell.Unset(k))
	}

	script, err := shell.Render(sh, muts)
	if err != nil {
		return fmt.Errorf("cli.shell: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), script)
	return nil
}
