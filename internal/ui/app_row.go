package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/ytget/app-inspector/internal/model"
)

// AppRow is one entry of the app list: icon, display name and identifier
type AppRow struct {
	widget.BaseWidget

	icon       *canvas.Image
	name       *widget.Label
	identifier *widget.Label

	// key is the identifier currently bound; rows are recycled by the list
	key string
}

// NewAppRow creates an empty row
func NewAppRow() *AppRow {
	row := &AppRow{
		icon:       canvas.NewImageFromResource(PlaceholderIcon()),
		name:       widget.NewLabel(""),
		identifier: widget.NewLabel(""),
	}
	row.icon.FillMode = canvas.ImageFillContain
	row.icon.SetMinSize(fyne.NewSize(RowIconSize, RowIconSize))
	row.name.TextStyle = fyne.TextStyle{Bold: true}
	row.name.Truncation = fyne.TextTruncateEllipsis
	row.identifier.Truncation = fyne.TextTruncateEllipsis
	row.identifier.Importance = widget.LowImportance
	row.ExtendBaseWidget(row)
	return row
}

// CreateRenderer implements fyne.Widget
func (r *AppRow) CreateRenderer() fyne.WidgetRenderer {
	text := container.NewVBox(r.name, r.identifier)
	return widget.NewSimpleRenderer(container.NewBorder(nil, nil, container.NewCenter(r.icon), nil, text))
}

// Bind shows app in the row and resets the icon
func (r *AppRow) Bind(app model.AppEntry) {
	r.key = app.Identifier
	r.name.SetText(app.DisplayName)
	r.identifier.SetText(app.Identifier)
	r.SetIcon(PlaceholderIcon())
}

// Key returns the identifier bound to the row
func (r *AppRow) Key() string {
	return r.key
}

// SetIcon replaces the row icon
func (r *AppRow) SetIcon(res fyne.Resource) {
	if r.icon.Resource == res {
		return
	}
	r.icon.Resource = res
	r.icon.Refresh()
}
