package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if lang := settings.GetLanguage(); lang != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, lang)
	}

	settings.SetLanguage("ru")
	if lang := settings.GetLanguage(); lang != "ru" {
		t.Errorf("Expected language ru, got %s", lang)
	}

	options := settings.GetLanguageOptions()
	for _, code := range []string{"system", "en", "ru", "pt"} {
		if _, ok := options[code]; !ok {
			t.Errorf("Language option %s missing", code)
		}
	}
}

func TestIconBudget(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	if mb := settings.GetIconBudgetMB(); mb != DefaultIconBudgetMB {
		t.Errorf("Expected default icon budget %d, got %d", DefaultIconBudgetMB, mb)
	}
	if bytes := settings.IconBudgetBytes(); bytes != DefaultIconBudgetMB<<20 {
		t.Errorf("Expected %d bytes, got %d", DefaultIconBudgetMB<<20, bytes)
	}

	settings.SetIconBudgetMB(64)
	if mb := settings.GetIconBudgetMB(); mb != 64 {
		t.Errorf("Expected icon budget 64, got %d", mb)
	}

	// Test boundary values
	settings.SetIconBudgetMB(0)
	if settings.GetIconBudgetMB() != MinIconBudgetMB {
		t.Errorf("Icon budget should be clamped to minimum %d", MinIconBudgetMB)
	}

	settings.SetIconBudgetMB(100000)
	if settings.GetIconBudgetMB() != MaxIconBudgetMB {
		t.Errorf("Icon budget should be clamped to maximum %d", MaxIconBudgetMB)
	}
}

func TestNotificationBuffer(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if n := settings.GetNotificationBuffer(); n != DefaultNotificationBuffer {
		t.Errorf("Expected default buffer %d, got %d", DefaultNotificationBuffer, n)
	}

	settings.SetNotificationBuffer(1)
	if settings.GetNotificationBuffer() != MinNotificationBuffer {
		t.Errorf("Buffer should be clamped to minimum %d", MinNotificationBuffer)
	}

	settings.SetNotificationBuffer(8)
	if settings.GetNotificationBuffer() != 8 {
		t.Errorf("Expected buffer 8, got %d", settings.GetNotificationBuffer())
	}
}

func TestLastSelectedApp(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if id := settings.LastSelectedApp(); id != "" {
		t.Errorf("Expected empty slot, got %q", id)
	}

	settings.SetLastSelectedApp("com.example.app")
	if id := settings.LastSelectedApp(); id != "com.example.app" {
		t.Errorf("Expected com.example.app, got %q", id)
	}

	// A fresh Settings over the same preferences sees the persisted value
	if id := NewSettings(app).LastSelectedApp(); id != "com.example.app" {
		t.Errorf("Persisted slot not visible to new Settings, got %q", id)
	}
}
