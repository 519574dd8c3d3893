package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"

	"github.com/user-none/gbaudio/adapter"
	"github.com/user-none/gbaudio/ui"
)

// statusStyles colours the headless status report.
type statusStyles struct {
	label  lipgloss.Style
	value  lipgloss.Style
	source lipgloss.Style
	paused lipgloss.Style
}

func newStatusStyles() statusStyles {
	return statusStyles{
		label:  lipgloss.NewStyle().Foreground(lipgloss.ANSIColor(4)),
		value:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(3)),
		source: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(2)),
		paused: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.ANSIColor(7)).Background(lipgloss.ANSIColor(1)),
	}
}

// statusField is one label/value pair of the report.
type statusField struct {
	label string
	value string
}

func statusFields(st ui.Status) []statusField {
	fields := []statusField{
		{"amplitude", fmt.Sprintf("%d", st.Amplitude)},
	}
	if st.Capabilities.Has(adapter.CapFrequencyRead) {
		fields = append(fields, statusField{"frequency", fmt.Sprintf("%d Hz", st.Frequency)})
	}
	if st.Period > 0 {
		fields = append(fields, statusField{"period", fmt.Sprintf("%d", st.Period)})
	}
	if st.Source == ui.SourceMixer {
		power := "off"
		if st.MixerEnabled {
			power = "on"
		}
		replay := fmt.Sprintf("0x%X", st.ReplayTick)
		if st.ReplayDone {
			replay += " done"
		}
		fields = append(fields,
			statusField{"power", power},
			statusField{"replay", replay},
		)
	}
	return append(fields, statusField{"caps", st.Capabilities.String()})
}

// FormatStatus renders a status snapshot as plain text, one field per line.
func FormatStatus(st ui.Status, paused bool) string {
	var sb strings.Builder
	sb.WriteString("source: " + st.Source)
	if paused {
		sb.WriteString(" (paused)")
	}
	for _, f := range statusFields(st) {
		sb.WriteString("\n" + f.label + ": " + f.value)
	}
	return sb.String()
}

// formatStyled renders a status snapshot on a single styled line.
func formatStyled(st ui.Status, paused bool, styles statusStyles) string {
	parts := []string{styles.source.Render(" " + st.Source + " ")}
	if paused {
		parts = append(parts, styles.paused.Render(" paused "))
	}
	for _, f := range statusFields(st) {
		parts = append(parts, styles.label.Render(f.label+"=")+styles.value.Render(f.value))
	}
	return strings.Join(parts, " ")
}

// PrintStatus writes the status to w. When w is a terminal the report is
// styled; otherwise it is the plain FormatStatus text.
func PrintStatus(w io.Writer, st ui.Status, paused bool) {
	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fmt.Fprintln(w, formatStyled(st, paused, newStatusStyles()))
		return
	}
	fmt.Fprintln(w, FormatStatus(st, paused))
}
