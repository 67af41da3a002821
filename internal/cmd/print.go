package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ytget/app-inspector/internal/catalog"
	"github.com/ytget/app-inspector/internal/model"
	"github.com/ytget/app-inspector/internal/screen"
)

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

func printApps(w io.Writer, t catalog.Texter, apps []model.AppEntry) {
	if len(apps) == 0 {
		fmt.Fprintln(w, dimStyle.Render(t.Text(catalog.KeyNoApps)))
		return
	}

	width := 0
	for _, app := range apps {
		width = max(width, lipgloss.Width(app.DisplayName))
	}
	nameStyle := lipgloss.NewStyle().Bold(true).Width(width + 2)

	fmt.Fprintln(w, titleStyle.Render(fmt.Sprintf("%s (%d)", t.Text(catalog.KeyApps), len(apps))))
	for _, app := range apps {
		fmt.Fprintln(w, nameStyle.Render(app.DisplayName)+dimStyle.Render(app.Identifier))
	}
}

func printDetails(w io.Writer, t catalog.Texter, d *model.AppDetails) {
	yesNo := func(b bool) string {
		if b {
			return t.Text(catalog.KeyYes)
		}
		return t.Text(catalog.KeyNo)
	}
	checksum := d.Checksum
	if !d.HasChecksum() {
		checksum = model.DashPlaceholder
	}
	source := d.SourcePath
	if source == "" {
		source = model.DashPlaceholder
	}

	rows := [][2]string{
		{catalog.KeyIdentifier, d.Identifier},
		{catalog.KeyVersion, d.GetVersionString()},
		{catalog.KeyChecksum, checksum},
		{catalog.KeySystemApp, yesNo(d.IsSystem)},
		{catalog.KeyLaunchable, yesNo(d.Launchable)},
		{catalog.KeySourcePath, source},
	}

	width := 0
	for _, row := range rows {
		width = max(width, lipgloss.Width(t.Text(row[0])))
	}
	keyStyle := lipgloss.NewStyle().Bold(true).Width(width + 2)

	var b strings.Builder
	b.WriteString(titleStyle.Render(d.GetDisplayLabel()))
	b.WriteByte('\n')
	for _, row := range rows {
		b.WriteString(keyStyle.Render(t.Text(row[0])))
		b.WriteString(row[1])
		b.WriteByte('\n')
	}
	fmt.Fprint(w, b.String())
}

func printError(w io.Writer, t catalog.Texter, err model.AppError) {
	fmt.Fprintln(w, errorStyle.Render(catalog.ErrorMessage(t, err)))
}

func printNotice(w io.Writer, n screen.Notice) {
	switch n.(type) {
	case screen.LaunchSucceeded:
		fmt.Fprintln(w, successStyle.Render(n.Text()))
	case screen.LoadFailed, screen.LaunchFailed:
		fmt.Fprintln(w, errorStyle.Render(n.Text()))
	default:
		fmt.Fprintln(w, n.Text())
	}
}
