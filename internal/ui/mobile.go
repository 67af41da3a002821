package ui

import (
	"fyne.io/fyne/v2"
)

// MobileUI provides mobile-specific layout decisions
type MobileUI struct {
	device fyne.Device
}

// NewMobileUI creates a new mobile UI helper for the current device
func NewMobileUI() *MobileUI {
	return &MobileUI{device: fyne.CurrentDevice()}
}

// IsMobileDevice checks if the app is running on a mobile device
func (m *MobileUI) IsMobileDevice() bool {
	return m.device != nil && m.device.IsMobile()
}

// IsLandscape returns true if device is in landscape orientation
func (m *MobileUI) IsLandscape() bool {
	if m.device == nil {
		return false
	}
	orientation := m.device.Orientation()
	return orientation == fyne.OrientationHorizontalLeft || orientation == fyne.OrientationHorizontalRight
}

// UseTabs reports whether list and details should be separate tabs rather
// than side by side. Phones in portrait have no room for a split.
func (m *MobileUI) UseTabs() bool {
	return m.IsMobileDevice() && !m.IsLandscape()
}
