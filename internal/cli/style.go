package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/hbjs97/mise/internal/doctor"
)

var (
	okStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	warnStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	fixStyle  = lipgloss.NewStyle().Faint(true)
)

func statusLabel(s doctor.Status) string {
	switch s {
	case doctor.StatusOK:
		return okStyle.Render("[OK]")
	case doctor.StatusWarn:
		return warnStyle.Render("[!!]")
	case doctor.StatusFail:
		return failStyle.Render("[FAIL]")
	default:
		return "[??]"
	}
}

func fixLine(fix string) string {
	return fixStyle.Render(fmt.Sprintf("      Fix: %s", fix))
}
