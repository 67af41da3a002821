package model

import "fmt"

// Placeholder shown for absent optional values
const DashPlaceholder = "—"

// ShortChecksumLength is the number of hex characters shown in compact views
const ShortChecksumLength = 12

// AppDetails describes a single installed app
type AppDetails struct {
	Identifier  string
	Label       string
	VersionName string // empty when the package declares none
	VersionCode int64
	IsSystem    bool
	Checksum    string // lowercase hex SHA-256 of the package archive, empty if unavailable
	Launchable  bool
	SourcePath  string // on-device path of the base package archive
}

// HasChecksum reports whether a digest was computed
func (d *AppDetails) HasChecksum() bool {
	return d.Checksum != ""
}

// GetVersionString returns "name (code)", or just the code when no name is declared
func (d *AppDetails) GetVersionString() string {
	if d.VersionName == "" {
		return fmt.Sprintf("(%d)", d.VersionCode)
	}
	return fmt.Sprintf("%s (%d)", d.VersionName, d.VersionCode)
}

// GetShortChecksum returns an abbreviated digest, or "—" if unavailable
func (d *AppDetails) GetShortChecksum() string {
	if !d.HasChecksum() {
		return DashPlaceholder
	}
	if len(d.Checksum) <= ShortChecksumLength {
		return d.Checksum
	}
	return d.Checksum[:ShortChecksumLength] + "…"
}

// GetDisplayLabel returns the label, falling back to the identifier
func (d *AppDetails) GetDisplayLabel() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Identifier
}
