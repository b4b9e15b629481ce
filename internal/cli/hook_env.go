package cli

import (
	"fmt"
	"strings"

	"github.com/hbjs97/mise/internal/cache"
	"github.com/hbjs97/mise/internal/config"
	"github.com/hbjs97/mise/internal/hookenv"
	"github.com/hbjs97/mise/internal/logging"
	"github.com/hbjs97/mise/internal/shell"
	"github.com/spf13/cobra"
)

func (a *App) newHookEnvCmd() *cobra.Command {
	var shellName string
	var status bool

	cmd := &cobra.Command{
		Use:    "hook-env",
		Short:  "prompt마다 적용할 환경변수 변경을 출력한다 (hook 내부용)",
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runHookEnv(cmd, shellName, status)
		},
	}
	cmd.Flags().StringVarP(&shellName, "shell", "s", "", "셸 유형")
	cmd.Flags().BoolVar(&status, "status", false, "변경 내역을 stderr에 표시")
	_ = cmd.MarkFlagRequired("shell")
	return cmd
}

func (a *App) runHookEnv(cmd *cobra.Command, name string, status bool) error {
	sh, err := shell.Get(name)
	if err != nil {
		return fmt.Errorf("cli.hookEnv: %w", err)
	}
	cwd, err := a.getwd()
	if err != nil {
		return fmt.Errorf("cli.hookEnv: %w", err)
	}
	cfg, err := a.loadProjectEnv(cwd)
	if err != nil {
		return err
	}

	res := hookenv.Compute(hookenv.Env(a.environ()), cfg)
	script, err := shell.Render(sh, res.Mutations)
	if err != nil {
		return fmt.Errorf("cli.hookEnv: %w", err)
	}
	fmt.Fprint(cmd.OutOrStdout(), script)

	if status && len(res.Changes) > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "mise %s\n", strings.Join(res.Changes, " "))
	}
	return nil
}

func (a *App) loadProjectEnv(cwd string) (*config.EnvConfig, error) {
	if a.CachePath == "" {
		return config.LoadEnv(cwd)
	}
	settings, err := config.Load(a.CfgPath)
	if err != nil {
		return nil, err
	}

	logger := logging.Get("cli")
	c, err := cache.Load(a.CachePath)
	if err != nil {
		logger.Warn().Err(err).Msg("캐시를 읽지 못해 캐시 없이 진행합니다")
		return config.LoadEnv(cwd)
	}
	cfg, err := config.LoadEnvCached(cwd, c, settings.CacheTTL())
	if err != nil {
		return nil, err
	}
	if c.Dirty() {
		c.Prune()
		if err := c.Save(a.CachePath); err != nil {
			logger.Warn().Err(err).Msg("캐시 저장 실패")
		}
	}
	return cfg, nil
}
