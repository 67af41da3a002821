package ui

import (
	"testing"

	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"

	"github.com/ytget/app-inspector/internal/catalog"
	"github.com/ytget/app-inspector/internal/model"
	"github.com/ytget/app-inspector/internal/screen"
)

func TestListStatusText(t *testing.T) {
	cat := catalog.New()
	cat.SetLanguage("en")

	tests := []struct {
		name  string
		state screen.ListState
		want  string
	}{
		{"idle", screen.ListState{Status: model.StatusIdle}, ""},
		{"loading", screen.ListState{Status: model.StatusLoading, IsLoading: true}, cat.Text(catalog.KeyLoading)},
		{
			"failed",
			screen.ListState{Status: model.StatusFailed, Err: &model.PermissionDeniedError{Resource: "packages"}},
			IconError + " " + cat.Text(catalog.KeyErrPermission, "packages"),
		},
		{"empty", screen.ListState{Status: model.StatusReady}, cat.Text(catalog.KeyNoApps)},
		{
			"ready",
			screen.ListState{Status: model.StatusReady, Apps: []model.AppEntry{{Identifier: "com.a", DisplayName: "A"}}},
			"",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ListStatusText(cat, tt.state))
		})
	}
}

func TestAppRow_Bind(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	row := NewAppRow()
	row.Bind(model.AppEntry{Identifier: "com.example.notes", DisplayName: "Notes"})

	assert.Equal(t, "com.example.notes", row.Key())
	assert.Equal(t, "Notes", row.name.Text)
	assert.Equal(t, "com.example.notes", row.identifier.Text)
	assert.Equal(t, PlaceholderIcon(), row.icon.Resource)

	row.Bind(model.AppEntry{Identifier: "com.example.mail", DisplayName: "Mail"})
	assert.Equal(t, "com.example.mail", row.Key(), "recycled rows rebind")
}

func TestNoticeMessage(t *testing.T) {
	assert.Equal(t, IconSuccess+" Launched Notes", NoticeMessage(screen.LaunchSucceeded{ID: "com.example.notes", Message: "Launched Notes"}))
	assert.Equal(t, IconError+" No app selected", NoticeMessage(screen.LaunchFailed{Reason: "No app selected"}))
	assert.Equal(t, IconError+" App not found: com.test.app", NoticeMessage(screen.LoadFailed{Message: "App not found: com.test.app"}))
}

func TestSetNotification(t *testing.T) {
	a := test.NewApp()
	defer a.Quit()

	label := widget.NewLabel("")
	panel := container.NewPadded(label)
	panel.Hide()
	ui := &RootUI{notificationLabel: label, notificationContainer: panel}

	ui.setNotification(NoticeMessage(screen.LaunchFailed{Reason: "No app selected"}))

	assert.True(t, panel.Visible())
	assert.Equal(t, IconError+" No app selected", label.Text)
	assert.Len(t, panel.Objects, 1, "the panel holds only the message")
}
