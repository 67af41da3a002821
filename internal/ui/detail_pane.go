package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/app-inspector/internal/catalog"
	"github.com/ytget/app-inspector/internal/model"
	"github.com/ytget/app-inspector/internal/screen"
)

// Field is one labelled value of the detail pane
type Field struct {
	Key   string
	Value string
}

// DetailFields lists what the detail pane shows for d, in display order
func DetailFields(t catalog.Texter, d *model.AppDetails) []Field {
	yesNo := func(b bool) string {
		if b {
			return t.Text(catalog.KeyYes)
		}
		return t.Text(catalog.KeyNo)
	}
	checksum := DashPlaceholder
	if d.HasChecksum() {
		checksum = d.Checksum
	}
	source := d.SourcePath
	if source == "" {
		source = DashPlaceholder
	}

	return []Field{
		{Key: catalog.KeyIdentifier, Value: d.Identifier},
		{Key: catalog.KeyVersion, Value: d.GetVersionString()},
		{Key: catalog.KeyChecksum, Value: checksum},
		{Key: catalog.KeySystemApp, Value: yesNo(d.IsSystem)},
		{Key: catalog.KeyLaunchable, Value: yesNo(d.Launchable)},
		{Key: catalog.KeySourcePath, Value: source},
	}
}

// DetailPane renders screen.DetailState
type DetailPane struct {
	catalog *catalog.Catalog

	icon     *canvas.Image
	title    *widget.Label
	status   *canvas.Text
	progress *widget.ProgressBarInfinite
	errLabel *widget.Label
	form     *fyne.Container

	retryBtn  *widget.Button
	launchBtn *widget.Button

	content fyne.CanvasObject
	last    screen.DetailState
}

// NewDetailPane creates the pane; onRetry and onLaunch run on the UI goroutine
func NewDetailPane(cat *catalog.Catalog, onRetry, onLaunch func()) *DetailPane {
	p := &DetailPane{
		catalog:  cat,
		icon:     canvas.NewImageFromResource(PlaceholderIcon()),
		title:    widget.NewLabel(""),
		status:   canvas.NewText("", nil),
		progress: widget.NewProgressBarInfinite(),
		errLabel: widget.NewLabel(""),
		form:     container.New(layout.NewFormLayout()),
	}
	p.icon.FillMode = canvas.ImageFillContain
	p.icon.SetMinSize(fyne.NewSize(DetailIconSize, DetailIconSize))
	p.title.TextStyle = fyne.TextStyle{Bold: true}
	p.errLabel.Wrapping = fyne.TextWrapWord
	p.errLabel.Importance = widget.DangerImportance
	p.progress.Hide()
	p.errLabel.Hide()

	p.retryBtn = widget.NewButton(IconRefresh+" "+cat.Text(catalog.KeyRetry), onRetry)
	p.launchBtn = widget.NewButton(IconLaunch+" "+cat.Text(catalog.KeyLaunch), onLaunch)
	p.launchBtn.Importance = widget.HighImportance

	header := container.NewBorder(nil, nil, p.icon, nil, container.NewVBox(p.title, p.status))
	buttons := container.NewHBox(layout.NewSpacer(), p.retryBtn, p.launchBtn)
	p.content = container.NewBorder(
		container.NewVBox(header, p.progress, p.errLabel),
		buttons,
		nil,
		nil,
		container.NewVScroll(p.form),
	)

	p.Render(screen.DetailState{Status: model.StatusIdle})
	return p
}

// Content returns the pane's root object
func (p *DetailPane) Content() fyne.CanvasObject {
	return p.content
}

// SetIcon replaces the app icon
func (p *DetailPane) SetIcon(res fyne.Resource) {
	p.icon.Resource = res
	p.icon.Refresh()
}

// Render updates every widget from state
func (p *DetailPane) Render(state screen.DetailState) {
	if state.ID != p.last.ID {
		p.SetIcon(PlaceholderIcon())
	}
	p.last = state

	switch {
	case state.Details != nil:
		p.title.SetText(state.Details.GetDisplayLabel())
	case state.ID != "":
		p.title.SetText(state.ID)
	default:
		p.title.SetText(p.catalog.Text(catalog.KeySelectApp))
	}

	p.status.Text = p.statusText(state)
	p.status.Color = fyne.CurrentApp().Settings().Theme().Color(StatusColorName(state.Status), fyne.CurrentApp().Settings().ThemeVariant())
	p.status.Refresh()

	if state.IsLoading {
		p.progress.Show()
		p.progress.Start()
	} else {
		p.progress.Stop()
		p.progress.Hide()
	}

	if state.Err != nil {
		p.errLabel.SetText(IconError + " " + catalog.ErrorMessage(p.catalog, state.Err))
		p.errLabel.Show()
	} else {
		p.errLabel.Hide()
	}

	p.renderFields(state.Details)

	if state.Status.CanRetry() {
		p.retryBtn.Enable()
	} else {
		p.retryBtn.Disable()
	}
	// Launch is offered whenever an app is selected, loaded or not
	if state.ID != "" {
		p.launchBtn.Enable()
	} else {
		p.launchBtn.Disable()
	}
}

// RefreshTexts re-renders the last state in the current language
func (p *DetailPane) RefreshTexts() {
	p.retryBtn.SetText(IconRefresh + " " + p.catalog.Text(catalog.KeyRetry))
	p.launchBtn.SetText(IconLaunch + " " + p.catalog.Text(catalog.KeyLaunch))
	p.Render(p.last)
}

func (p *DetailPane) statusText(state screen.DetailState) string {
	switch state.Status {
	case model.StatusLoading:
		return p.catalog.Text(catalog.KeyLoading)
	case model.StatusReady:
		if state.Details != nil && state.Details.VersionCode != 0 {
			return state.Details.GetVersionString()
		}
		return ""
	default:
		return ""
	}
}

func (p *DetailPane) renderFields(d *model.AppDetails) {
	p.form.RemoveAll()
	if d == nil {
		p.form.Refresh()
		return
	}
	for _, f := range DetailFields(p.catalog, d) {
		key := widget.NewLabel(p.catalog.Text(f.Key))
		key.TextStyle = fyne.TextStyle{Bold: true}
		value := widget.NewLabel(f.Value)
		value.Wrapping = fyne.TextWrapBreak
		p.form.Add(key)
		p.form.Add(value)
	}
	p.form.Refresh()
}
