package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
)

const (
	AppIcon = "app-inspector.png"
)

// LoadLogoResource loads the logo from file path
func LoadLogoResource() (fyne.Resource, error) {
	return fyne.LoadResourceFromPath(AppIcon)
}

// PlaceholderIcon is shown until an app icon is loaded, and for apps without one
func PlaceholderIcon() fyne.Resource {
	return theme.FileApplicationIcon()
}
