package model

import "testing"

func TestAppDetails_GetVersionString(t *testing.T) {
	tests := []struct {
		name     string
		code     int64
		expected string
	}{
		{"1.2.3", 42, "1.2.3 (42)"},
		{"", 7, "(7)"},
	}

	for _, test := range tests {
		d := &AppDetails{VersionName: test.name, VersionCode: test.code}
		result := d.GetVersionString()
		if result != test.expected {
			t.Errorf("GetVersionString() with name=%q code=%d = %s, expected %s", test.name, test.code, result, test.expected)
		}
	}
}

func TestAppDetails_GetShortChecksum(t *testing.T) {
	tests := []struct {
		checksum string
		expected string
	}{
		{"", DashPlaceholder},
		{"abc", "abc"},
		{"e3b0c44298fc1c149afbf4c8996fb924", "e3b0c44298fc…"},
	}

	for _, test := range tests {
		d := &AppDetails{Checksum: test.checksum}
		result := d.GetShortChecksum()
		if result != test.expected {
			t.Errorf("GetShortChecksum() with checksum=%q = %s, expected %s", test.checksum, result, test.expected)
		}
	}
}

func TestAppDetails_GetDisplayLabel(t *testing.T) {
	d := &AppDetails{Identifier: "com.test.app"}
	if d.GetDisplayLabel() != "com.test.app" {
		t.Errorf("expected identifier fallback, got %s", d.GetDisplayLabel())
	}

	d.Label = "Test App"
	if d.GetDisplayLabel() != "Test App" {
		t.Errorf("expected label, got %s", d.GetDisplayLabel())
	}
}
