package cli

import (
	"os"

	"github.com/hbjs97/mise/internal/cache"
	"github.com/hbjs97/mise/internal/cmdexec"
	"github.com/hbjs97/mise/internal/config"
	"github.com/hbjs97/mise/internal/logging"
	"github.com/hbjs97/mise/internal/setup"
	"github.com/spf13/cobra"
)

// App은 CLI 명령이 공유하는 의존성이다. 테스트에서는 필드를 바꿔 끼운다.
type App struct {
	Commander  cmdexec.Commander
	FormRunner setup.FormRunner
	CfgPath    string

	// CachePath가 비어 있으면 hook-env는 캐시 없이 동작한다.
	CachePath string

	// nil이면 os 패키지의 값을 쓴다.
	Environ    func() []string
	Getwd      func() (string, error)
	Executable func() (string, error)

	verbosity int
}

// NewApp은 실제 프로세스 환경을 쓰는 App을 만든다.
func NewApp() *App {
	return &App{
		Commander:  &cmdexec.RealCommander{},
		FormRunner: &setup.HuhFormRunner{},
		CachePath:  cache.DefaultPath(),
	}
}

// NewRootCmd는 mise CLI의 루트 명령을 생성한다.
func (a *App) NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "mise",
		Short:         "디렉토리별 환경변수를 셸에 적용한다",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(a.verbosity)
		},
	}

	defaultCfg := a.CfgPath
	if defaultCfg == "" {
		defaultCfg = config.DefaultPath()
	}
	cmd.PersistentFlags().StringVar(&a.CfgPath, "config", defaultCfg, "설정 파일 경로")
	cmd.PersistentFlags().CountVarP(&a.verbosity, "verbose", "v", "상세 출력 (-v, -vv, -vvv)")

	cmd.AddCommand(
		a.newActivateCmd(),
		a.newDeactivateCmd(),
		a.newHookEnvCmd(),
		a.newShellCmd(),
		a.newSetupCmd(),
		a.newDoctorCmd(),
	)
	return cmd
}

func (a *App) environ() []string {
	if a.Environ != nil {
		return a.Environ()
	}
	return os.Environ()
}

func (a *App) getwd() (string, error) {
	if a.Getwd != nil {
		return a.Getwd()
	}
	return os.Getwd()
}

// executable은 wrapper와 hook이 호출할 실행 파일 경로다.
func (a *App) executable() string {
	get := a.Executable
	if get == nil {
		get = os.Executable
	}
	exe, err := get()
	if err != nil || exe == "" {
		logger := logging.Get("cli")
		logger.Warn().Err(err).Msg("실행 파일 경로를 알 수 없어 PATH의 mise를 사용합니다")
		return "mise"
	}
	return exe
}
