// Package ui contains the Fyne user interface. It renders the list and
// detail screens from their state streams, shows one-shot notices in a
// notification panel and loads app icons through the shared icon cache.
// All strings come from the catalog package.
package ui
