package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/hbjs97/mise/internal/setup"
	"github.com/spf13/cobra"
)

// settingsTemplate는 mise setup이 생성하는 기본 config.toml 내용이다.
const settingsTemplate = `# mise configuration file

version = 1
# status = false          # hook-env가 바꾼 변수를 stderr에 표시
# default_shell = "zsh"   # mise activate 인자를 생략했을 때 사용
# no_hook_env = false     # true면 prompt hook 없이 mise 함수만 설치
`

func (a *App) newSetupCmd() *cobra.Command {
	var yes bool
	var rcPath string

	cmd := &cobra.Command{
		Use:   "setup [shell]",
		Short: "셸 rc 파일에 mise 활성화를 추가한다",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r := &setup.Runner{
				RCPath:     rcPath,
				Yes:        yes,
				FormRunner: a.FormRunner,
				Out:        cmd.OutOrStdout(),
			}
			if len(args) > 0 {
				r.Shell = args[0]
			}
			return a.runSetup(cmd, r)
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "확인 없이 진행")
	cmd.Flags().StringVar(&rcPath, "rc", "", "rc 파일 경로 (기본: 셸별 기본 위치)")
	return cmd
}

func (a *App) runSetup(cmd *cobra.Command, r *setup.Runner) error {
	res, err := r.Run()
	if err != nil {
		return err
	}
	if !res.Installed && !res.AlreadyPresent {
		return nil
	}
	return a.writeSettingsTemplate(cmd)
}

// writeSettingsTemplate는 설정 파일이 없을 때만 템플릿을 만든다.
func (a *App) writeSettingsTemplate(cmd *cobra.Command) error {
	if _, err := os.Stat(a.CfgPath); err == nil {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(a.CfgPath), 0700); err != nil {
		return fmt.Errorf("cli.setup: 디렉토리 생성 실패: %w", err)
	}
	if err := os.WriteFile(a.CfgPath, []byte(settingsTemplate), 0600); err != nil {
		return fmt.Errorf("cli.setup: 설정 파일 생성 실패: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "설정 파일이 생성되었습니다: %s\n", a.CfgPath)
	return nil
}
