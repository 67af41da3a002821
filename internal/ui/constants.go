package ui

import "time"

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconRefresh  = "⟳"
	IconLaunch   = "▶"
	IconError    = "❌"
	IconSuccess  = "✔"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing
const (
	RowIconSize    float32 = 36
	DetailIconSize float32 = 72
	ListSplitRatio         = 0.4

	// Touch target minimum size (iOS/Android guidelines)
	MinTouchTargetSize float32 = 44
)

// Notification panel behavior
const (
	NotificationAutoHide = 4 * time.Second
)
