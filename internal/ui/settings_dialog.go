package ui

import (
	"maps"
	"slices"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/app-inspector/internal/catalog"
	"github.com/ytget/app-inspector/internal/config"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	catalog  *catalog.Catalog
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	languageSelect *widget.Select
	budgetEntry    *widget.Entry
	bufferEntry    *widget.Entry

	// display name -> language code
	languageCodes map[string]string
}

// NewSettingsDialog creates a new settings dialog. onSaved runs after a
// confirmed save.
func NewSettingsDialog(settings *config.Settings, cat *catalog.Catalog, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		catalog:  cat,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	options := sd.settings.GetLanguageOptions()
	sd.languageCodes = make(map[string]string, len(options))
	languageNames := make([]string, 0, len(options))
	for _, code := range slices.Sorted(maps.Keys(options)) {
		sd.languageCodes[options[code]] = code
		languageNames = append(languageNames, options[code])
	}
	sd.languageSelect = widget.NewSelect(languageNames, nil)

	sd.budgetEntry = widget.NewEntry()
	sd.budgetEntry.SetPlaceHolder("1-256")

	sd.bufferEntry = widget.NewEntry()
	sd.bufferEntry.SetPlaceHolder("2-32")

	form := container.NewVBox(
		widget.NewLabel(sd.catalog.Text(catalog.KeyLanguage)+":"),
		sd.languageSelect,

		widget.NewSeparator(),

		widget.NewLabel(sd.catalog.Text(catalog.KeyIconBudget)+":"),
		sd.budgetEntry,

		widget.NewLabel(sd.catalog.Text(catalog.KeyNotificationBuffer)+":"),
		sd.bufferEntry,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.catalog.Text(catalog.KeySettings),
		sd.catalog.Text(catalog.KeySave),
		sd.catalog.Text(catalog.KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(420, 300))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.languageSelect.SetSelected(sd.settings.GetLanguageOptions()[sd.settings.GetLanguage()])
	sd.budgetEntry.SetText(strconv.Itoa(sd.settings.GetIconBudgetMB()))
	sd.bufferEntry.SetText(strconv.Itoa(sd.settings.GetNotificationBuffer()))
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	if code, ok := sd.languageCodes[sd.languageSelect.Selected]; ok {
		sd.settings.SetLanguage(code)
	}

	// Cache budget and buffer size take effect on next start
	if mb, err := strconv.Atoi(sd.budgetEntry.Text); err == nil {
		sd.settings.SetIconBudgetMB(mb)
	}
	if n, err := strconv.Atoi(sd.bufferEntry.Text); err == nil {
		sd.settings.SetNotificationBuffer(n)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation(sd.catalog.Text(catalog.KeySettings), sd.catalog.Text(catalog.KeySettingsSaved), sd.window)
}
