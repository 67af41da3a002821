package ui

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/app-inspector/internal/catalog"
	"github.com/ytget/app-inspector/internal/config"
	"github.com/ytget/app-inspector/internal/iconcache"
	"github.com/ytget/app-inspector/internal/model"
	"github.com/ytget/app-inspector/internal/screen"
)

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	settings *config.Settings
	catalog  *catalog.Catalog
	list     *screen.ListController
	detail   *screen.DetailController
	icons    *iconcache.Cache[fyne.Resource]
	logger   *slog.Logger
	mobile   *MobileUI

	ctx context.Context

	// List pane
	apps       []model.AppEntry
	appList    *widget.List
	listStatus *widget.Label
	refreshBtn *widget.Button
	lastList   screen.ListState

	// Detail pane
	detailPane *DetailPane
	tabs       *container.AppTabs
	detailTab  *container.TabItem
	listTab    *container.TabItem

	// Icons with no loadable image this session
	noIcon sync.Map

	// Notification panel
	notificationContainer *fyne.Container
	notificationLabel     *widget.Label
	hideMu                sync.Mutex
	hideTimer             *time.Timer
}

// NewRootUI creates and initializes the main UI
func NewRootUI(
	window fyne.Window,
	settings *config.Settings,
	cat *catalog.Catalog,
	list *screen.ListController,
	detail *screen.DetailController,
	icons *iconcache.Cache[fyne.Resource],
	logger *slog.Logger,
) *RootUI {
	if logger == nil {
		logger = slog.Default()
	}
	ui := &RootUI{
		window:   window,
		settings: settings,
		catalog:  cat,
		list:     list,
		detail:   detail,
		icons:    icons,
		logger:   logger.With("component", "ui"),
		mobile:   NewMobileUI(),
		ctx:      context.Background(),
	}

	window.SetTitle(cat.Text(catalog.KeyAppTitle))
	ui.setupUI()
	return ui
}

// Start subscribes to both screens until ctx is done and loads the app list
func (ui *RootUI) Start(ctx context.Context) {
	ui.ctx = ctx

	listStates := ui.list.Watch(ctx)
	detailStates := ui.detail.Watch(ctx)
	listNotices := ui.list.Notifications(ctx)
	detailNotices := ui.detail.Notifications(ctx)

	go func() {
		for s := range listStates {
			fyne.Do(func() { ui.renderList(s) })
		}
	}()
	go func() {
		for s := range detailStates {
			fyne.Do(func() { ui.renderDetail(s) })
		}
	}()
	for _, ch := range []<-chan screen.Notice{listNotices, detailNotices} {
		go func() {
			for n := range ch {
				ui.showNotice(n)
			}
		}()
	}

	ui.list.Dispatch(screen.ListLoad{})
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	ui.refreshBtn = widget.NewButton(IconRefresh+" "+ui.catalog.Text(catalog.KeyRefresh), ui.onRefresh)

	ui.listStatus = widget.NewLabel("")
	ui.listStatus.Wrapping = fyne.TextWrapWord
	ui.listStatus.Hide()

	var topPanel *fyne.Container
	if logo, err := LoadLogoResource(); err == nil {
		logoImage := canvas.NewImageFromResource(logo)
		logoImage.SetMinSize(fyne.NewSize(32, 32))
		logoImage.FillMode = canvas.ImageFillContain
		topPanel = container.NewBorder(nil, nil, container.NewHBox(logoImage, settingsBtn), ui.refreshBtn)
	} else {
		topPanel = container.NewBorder(nil, nil, container.NewHBox(settingsBtn), ui.refreshBtn)
	}

	// Notification panel under the toolbar (hidden by default)
	ui.notificationLabel = widget.NewLabel("")
	ui.notificationLabel.Alignment = fyne.TextAlignLeading
	ui.notificationLabel.Wrapping = fyne.TextWrapWord
	ui.notificationContainer = container.NewPadded(ui.notificationLabel)
	ui.notificationContainer.Hide()

	topCombined := container.NewVBox(topPanel, ui.notificationContainer)

	ui.appList = widget.NewList(
		func() int { return len(ui.apps) },
		func() fyne.CanvasObject { return NewAppRow() },
		ui.updateAppItem,
	)
	ui.appList.OnSelected = ui.onAppSelected

	listPane := container.NewBorder(ui.listStatus, nil, nil, nil, ui.appList)

	ui.detailPane = NewDetailPane(ui.catalog, ui.onRetryDetail, ui.onLaunch)

	var center fyne.CanvasObject
	if ui.mobile.UseTabs() {
		ui.listTab = container.NewTabItem(ui.catalog.Text(catalog.KeyApps), listPane)
		ui.detailTab = container.NewTabItem(ui.catalog.Text(catalog.KeyDetails), ui.detailPane.Content())
		ui.tabs = container.NewAppTabs(ui.listTab, ui.detailTab)
		center = ui.tabs
	} else {
		split := container.NewHSplit(listPane, ui.detailPane.Content())
		split.Offset = ListSplitRatio
		center = split
	}

	ui.window.SetContent(container.NewBorder(topCombined, nil, nil, nil, center))
	ui.logger.Debug("UI setup completed", "tabs", ui.tabs != nil)
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.catalog.Text(catalog.KeySettings), ui.onShowSettings)

	languageMenu := fyne.NewMenu(ui.catalog.Text(catalog.KeyLanguage))
	languages := catalog.Languages()
	for _, code := range slices.Sorted(maps.Keys(languages)) {
		langItem := fyne.NewMenuItem(languages[code], func() {
			ui.onLanguageChange(code)
		})
		langItem.Checked = ui.catalog.Language() == code
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu(ui.catalog.Text(catalog.KeyAppTitle), settingsItem),
		languageMenu,
	))
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.catalog.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.catalog.Text(catalog.KeyAppTitle))
	if ui.tabs != nil {
		ui.listTab.Text = ui.catalog.Text(catalog.KeyApps)
		ui.detailTab.Text = ui.catalog.Text(catalog.KeyDetails)
		ui.tabs.Refresh()
	}
	ui.renderList(ui.lastList)
	ui.detailPane.RefreshTexts()
}

func (ui *RootUI) onRefresh() {
	if ui.lastList.Status == model.StatusFailed {
		ui.list.Dispatch(screen.ListRetry{})
		return
	}
	ui.list.Dispatch(screen.ListRefresh{})
}

func (ui *RootUI) onAppSelected(id widget.ListItemID) {
	if id < 0 || id >= len(ui.apps) {
		return
	}
	ui.detail.Dispatch(screen.DetailLoad{ID: ui.apps[id].Identifier})
	if ui.tabs != nil {
		ui.tabs.Select(ui.detailTab)
	}
}

func (ui *RootUI) onRetryDetail() {
	ui.detail.Dispatch(screen.DetailRetry{})
}

func (ui *RootUI) onLaunch() {
	ui.detail.Dispatch(screen.LaunchAction{})
}

// renderList runs on the UI goroutine
func (ui *RootUI) renderList(state screen.ListState) {
	ui.lastList = state
	ui.apps = state.Apps
	ui.appList.Refresh()

	if state.Status == model.StatusFailed {
		ui.refreshBtn.SetText(IconRefresh + " " + ui.catalog.Text(catalog.KeyRetry))
	} else {
		ui.refreshBtn.SetText(IconRefresh + " " + ui.catalog.Text(catalog.KeyRefresh))
	}

	text := ListStatusText(ui.catalog, state)
	if text == "" {
		ui.listStatus.Hide()
		return
	}
	ui.listStatus.SetText(text)
	ui.listStatus.Show()
}

// ListStatusText is the line shown above the app list, empty when there is nothing to say
func ListStatusText(t catalog.Texter, state screen.ListState) string {
	switch {
	case state.IsLoading:
		return t.Text(catalog.KeyLoading)
	case state.Err != nil:
		return IconError + " " + catalog.ErrorMessage(t, state.Err)
	case state.Status == model.StatusReady && len(state.Apps) == 0:
		return t.Text(catalog.KeyNoApps)
	default:
		return ""
	}
}

// renderDetail runs on the UI goroutine
func (ui *RootUI) renderDetail(state screen.DetailState) {
	previous := ui.detailPane.last.ID
	ui.detailPane.Render(state)
	if state.ID != "" && state.ID != previous {
		ui.loadIcon(state.ID, func(res fyne.Resource) {
			if ui.detailPane.last.ID == state.ID {
				ui.detailPane.SetIcon(res)
			}
		})
	}
}

// updateAppItem binds a recycled row to the app at id
func (ui *RootUI) updateAppItem(id widget.ListItemID, item fyne.CanvasObject) {
	row, ok := item.(*AppRow)
	if !ok || id >= len(ui.apps) {
		return
	}
	app := ui.apps[id]
	row.Bind(app)
	ui.loadIcon(app.Identifier, func(res fyne.Resource) {
		if row.Key() == app.Identifier {
			row.SetIcon(res)
		}
	})
}

// loadIcon delivers the icon of app id to apply on the UI goroutine.
// Cached icons are applied immediately; misses are loaded in the background.
func (ui *RootUI) loadIcon(id string, apply func(fyne.Resource)) {
	if ui.icons == nil {
		return
	}
	if res, ok := ui.icons.Peek(id); ok {
		apply(res)
		return
	}
	if _, failed := ui.noIcon.Load(id); failed {
		return
	}

	ctx := ui.ctx
	go func() {
		res, ok := ui.icons.Get(ctx, id)
		if !ok {
			if ctx.Err() == nil {
				ui.noIcon.Store(id, struct{}{})
			}
			return
		}
		fyne.Do(func() { apply(res) })
	}()
}

// showNotice displays a one-shot notice. Safe to call from any goroutine.
func (ui *RootUI) showNotice(n screen.Notice) {
	ui.showNotification(NoticeMessage(n))
}

// NoticeMessage is the panel text of a one-shot notice
func NoticeMessage(n screen.Notice) string {
	switch n.(type) {
	case screen.LaunchSucceeded:
		return IconSuccess + " " + n.Text()
	case screen.LoadFailed, screen.LaunchFailed:
		return IconError + " " + n.Text()
	default:
		return n.Text()
	}
}

// showNotification displays a message in the notification panel under the
// toolbar and hides it after NotificationAutoHide.
func (ui *RootUI) showNotification(message string) {
	if ui.notificationLabel == nil || ui.notificationContainer == nil {
		return
	}
	fyne.Do(func() { ui.setNotification(message) })

	ui.hideMu.Lock()
	defer ui.hideMu.Unlock()
	if ui.hideTimer != nil {
		ui.hideTimer.Stop()
	}
	ui.hideTimer = time.AfterFunc(NotificationAutoHide, ui.hideNotification)
}

// setNotification runs on the UI goroutine
func (ui *RootUI) setNotification(message string) {
	ui.notificationLabel.SetText(message)
	ui.notificationContainer.Show()
	ui.notificationContainer.Refresh()
}

// hideNotification hides the notification panel.
func (ui *RootUI) hideNotification() {
	if ui.notificationContainer == nil {
		return
	}
	fyne.Do(ui.notificationContainer.Hide)
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.settings, ui.catalog, ui.window, func() {
		ui.onLanguageChange(ui.settings.GetLanguage())
	}).Show()
}
