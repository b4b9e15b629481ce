package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/hbjs97/mise/internal/doctor"
	"github.com/hbjs97/mise/internal/hookenv"
	"github.com/spf13/cobra"
)

func (a *App) newDoctorCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "환경 설정을 진단한다",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runDoctor(cmd.Context(), cmd.OutOrStdout())
		},
	}
}

func (a *App) runDoctor(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}
	results := doctor.RunAll(ctx, a.Commander, doctor.Options{
		Env:     hookenv.Env(a.environ()),
		CfgPath: a.CfgPath,
		Exe:     a.executable(),
	})
	printDiagResults(out, results)

	if doctor.HasFailure(results) {
		return fmt.Errorf("cli.doctor: 실패한 진단 항목이 있습니다")
	}
	return nil
}

// printDiagResults는 진단 결과 목록을 출력한다.
func printDiagResults(out io.Writer, results []doctor.DiagResult) {
	for _, r := range results {
		fmt.Fprintf(out, "  %s %s: %s\n", statusLabel(r.Status), r.Name, r.Message)
		if r.Fix != "" {
			fmt.Fprintln(out, fixLine(r.Fix))
		}
	}
}
