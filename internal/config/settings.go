package config

import (
	"fyne.io/fyne/v2"
)

// Settings keys for Fyne preferences
const (
	KeyLanguage           = "app_language"
	KeyIconBudgetMB       = "icon_cache_budget_mb"
	KeyNotificationBuffer = "notification_buffer"
	KeyLastSelectedApp    = "last_selected_app"
)

// Default values
const (
	DefaultLanguage           = "system"
	DefaultIconBudgetMB       = 16
	DefaultNotificationBuffer = 2
)

// Limits
const (
	MinIconBudgetMB       = 1
	MaxIconBudgetMB       = 256
	MinNotificationBuffer = 2
	MaxNotificationBuffer = 32
)

// Settings manages application configuration stored in Fyne preferences
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetLanguage returns the configured language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"ru":     "Русский",
		"pt":     "Português",
	}
}

// GetIconBudgetMB returns the icon cache budget in megabytes
func (s *Settings) GetIconBudgetMB() int {
	value := s.app.Preferences().Int(KeyIconBudgetMB)
	if value <= 0 {
		s.SetIconBudgetMB(DefaultIconBudgetMB)
		return DefaultIconBudgetMB
	}
	return value
}

// SetIconBudgetMB sets the icon cache budget, clamped to the supported range.
// It takes effect on the next start.
func (s *Settings) SetIconBudgetMB(mb int) {
	s.app.Preferences().SetInt(KeyIconBudgetMB, clamp(mb, MinIconBudgetMB, MaxIconBudgetMB))
}

// IconBudgetBytes returns the icon cache budget in bytes
func (s *Settings) IconBudgetBytes() int64 {
	return int64(s.GetIconBudgetMB()) << 20
}

// GetNotificationBuffer returns the per-listener notification buffer
func (s *Settings) GetNotificationBuffer() int {
	value := s.app.Preferences().Int(KeyNotificationBuffer)
	if value <= 0 {
		s.SetNotificationBuffer(DefaultNotificationBuffer)
		return DefaultNotificationBuffer
	}
	return value
}

// SetNotificationBuffer sets the per-listener notification buffer
func (s *Settings) SetNotificationBuffer(n int) {
	s.app.Preferences().SetInt(KeyNotificationBuffer, clamp(n, MinNotificationBuffer, MaxNotificationBuffer))
}

// LastSelectedApp returns the persisted identifier of the last app opened
func (s *Settings) LastSelectedApp() string {
	return s.app.Preferences().String(KeyLastSelectedApp)
}

// SetLastSelectedApp persists the identifier of the app being opened
func (s *Settings) SetLastSelectedApp(id string) {
	s.app.Preferences().SetString(KeyLastSelectedApp, id)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
