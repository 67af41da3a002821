package platform

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/ytget/app-inspector/internal/checksum"
	"github.com/ytget/app-inspector/internal/model"
)

// ErrPackageNotFound is returned when no package is installed under an identifier
var ErrPackageNotFound = errors.New("package not found")

// Package manager output prefixes
const (
	PackagePrefix      = "package:"
	VersionNamePrefix  = "versionName="
	VersionCodePrefix  = "versionCode="
	PkgFlagsPrefix     = "pkgFlags=["
	FlagsPrefix        = "flags=["
	SystemFlag         = "SYSTEM"
	BaseArchiveName    = "base.apk"
	LauncherCategory   = "android.intent.category.LAUNCHER"
	NoActivityFound    = "No activity found"
	UnableToFindMarker = "Unable to find package"
	AMErrorPrefix      = "Error"
)

// Identifier segments too generic to name an app
var genericSegments = map[string]bool{
	"android": true, "app": true, "apps": true, "mobile": true, "client": true, "main": true,
}

// PackageManager enumerates, describes and launches installed apps
type PackageManager struct {
	runner    Runner
	checksums *checksum.Pipeline
	logger    *slog.Logger
}

// NewPackageManager creates a package manager. A nil pipeline skips checksums.
func NewPackageManager(runner Runner, checksums *checksum.Pipeline, logger *slog.Logger) *PackageManager {
	if logger == nil {
		logger = slog.Default()
	}
	return &PackageManager{
		runner:    runner,
		checksums: checksums,
		logger:    logger.With("component", "packages"),
	}
}

// ListApps returns installed apps in the order the package manager reports them
func (m *PackageManager) ListApps(ctx context.Context) ([]model.AppEntry, error) {
	out, err := m.runner.Output(ctx, PMCommand, "list", "packages", "-f")
	if err != nil {
		return nil, fmt.Errorf("list packages: %w", err)
	}
	return ParsePackageList(out), nil
}

// ParsePackageList parses `pm list packages` output. Lines may carry the
// archive path (`-f`), in which case the identifier follows the last '='.
func ParsePackageList(out []byte) []model.AppEntry {
	var apps []model.AppEntry
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, PackagePrefix) {
			continue
		}
		id := strings.TrimPrefix(line, PackagePrefix)
		if i := strings.LastIndex(id, "="); i >= 0 {
			id = id[i+1:]
		}
		if id == "" {
			continue
		}
		apps = append(apps, model.AppEntry{DisplayName: DisplayNameFromID(id), Identifier: id})
	}
	return apps
}

// DisplayNameFromID derives a human name from a package identifier:
// "com.example.photo_editor" becomes "Photo editor".
func DisplayNameFromID(id string) string {
	segments := strings.Split(id, ".")
	name := segments[len(segments)-1]
	for i := len(segments) - 1; i > 0 && genericSegments[strings.ToLower(name)]; i-- {
		name = segments[i-1]
	}
	name = strings.ReplaceAll(name, "_", " ")
	if name == "" {
		return id
	}
	r, size := utf8.DecodeRuneInString(name)
	return string(unicode.ToUpper(r)) + name[size:]
}

// AppDetails describes one app. It returns nil details and a nil error when
// the app is not installed.
func (m *PackageManager) AppDetails(ctx context.Context, id string) (*model.AppDetails, error) {
	archive, err := m.ArchivePath(ctx, id)
	if errors.Is(err, ErrPackageNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	out, err := m.runner.Output(ctx, DumpsysCommand, "package", id)
	if err != nil {
		return nil, fmt.Errorf("dumpsys package %s: %w", id, err)
	}
	if bytes.Contains(out, []byte(UnableToFindMarker)) {
		return nil, nil
	}

	details := ParseDumpsys(out)
	details.Identifier = id
	details.Label = DisplayNameFromID(id)
	details.SourcePath = archive

	_, launchable, err := m.resolveLauncher(ctx, id)
	if err != nil {
		return nil, err
	}
	details.Launchable = launchable

	if m.checksums != nil {
		sum, err := m.checksums.Digest(ctx, func(ctx context.Context) (io.ReadCloser, error) {
			return m.runner.Stream(ctx, CatCommand, archive)
		})
		switch {
		case ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			m.logger.WarnContext(ctx, "checksum unavailable", "id", id, "error", err)
		default:
			details.Checksum = sum
		}
	}

	return details, nil
}

// ParseDumpsys extracts version and flags from `dumpsys package` output.
// Only the first occurrence of each field counts; later sections repeat them
// for hidden system packages.
func ParseDumpsys(out []byte) *model.AppDetails {
	details := &model.AppDetails{}
	var haveName, haveCode, haveFlags bool

	scanner := bufio.NewScanner(bytes.NewReader(out))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case !haveName && strings.HasPrefix(line, VersionNamePrefix):
			details.VersionName = strings.TrimPrefix(line, VersionNamePrefix)
			haveName = true
		case !haveCode && strings.HasPrefix(line, VersionCodePrefix):
			fields := strings.Fields(strings.TrimPrefix(line, VersionCodePrefix))
			if len(fields) > 0 {
				if code, err := strconv.ParseInt(fields[0], 10, 64); err == nil {
					details.VersionCode = code
				}
			}
			haveCode = true
		case !haveFlags && (strings.HasPrefix(line, PkgFlagsPrefix) || strings.HasPrefix(line, FlagsPrefix)):
			flags := line[strings.Index(line, "[")+1:]
			flags = strings.TrimSuffix(flags, "]")
			for _, f := range strings.Fields(flags) {
				if f == SystemFlag {
					details.IsSystem = true
				}
			}
			haveFlags = true
		}
	}
	return details
}

// ArchivePath returns the on-device path of the app's base archive
func (m *PackageManager) ArchivePath(ctx context.Context, id string) (string, error) {
	out, err := m.runner.Output(ctx, PMCommand, "path", id)
	if err == nil {
		if path := ParseArchivePath(out); path != "" {
			return path, nil
		}
		err = errors.New("no archive path reported")
	}
	if IsPermission(err) || ctx.Err() != nil {
		return "", fmt.Errorf("pm path %s: %w", id, err)
	}
	// pm exits non-zero for unknown packages, and so does a broken adb
	// transport. Only dumpsys tells the two apart.
	if m.packageAbsent(ctx, id) {
		return "", fmt.Errorf("%w: %s", ErrPackageNotFound, id)
	}
	return "", fmt.Errorf("pm path %s: %w", id, err)
}

// packageAbsent reports whether dumpsys ran and explicitly found no package id
func (m *PackageManager) packageAbsent(ctx context.Context, id string) bool {
	out, err := m.runner.Output(ctx, DumpsysCommand, "package", id)
	if err != nil {
		m.logger.DebugContext(ctx, "cannot confirm package absence", "id", id, "error", err)
		return false
	}
	return bytes.Contains(out, []byte(UnableToFindMarker))
}

// ParseArchivePath picks the base archive from `pm path` output, falling back
// to the first listed split.
func ParseArchivePath(out []byte) string {
	var first string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if !strings.HasPrefix(line, PackagePrefix) {
			continue
		}
		path := strings.TrimPrefix(line, PackagePrefix)
		if strings.HasSuffix(path, "/"+BaseArchiveName) {
			return path
		}
		if first == "" {
			first = path
		}
	}
	return first
}

// resolveLauncher returns the launcher component of id, if it has one
func (m *PackageManager) resolveLauncher(ctx context.Context, id string) (string, bool, error) {
	out, err := m.runner.Output(ctx, CmdCommand, "package", "resolve-activity", "--brief", "-c", LauncherCategory, id)
	if err != nil {
		if IsPermission(err) {
			return "", false, err
		}
		// resolve-activity exits non-zero when nothing resolves
		if bytes.Contains(out, []byte(NoActivityFound)) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("resolve launcher %s: %w", id, err)
	}
	component := ParseLauncherComponent(out)
	return component, component != "", nil
}

// ParseLauncherComponent returns the "package/activity" line printed by
// resolve-activity --brief, or "" when nothing resolved.
func ParseLauncherComponent(out []byte) string {
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		line := strings.TrimSpace(lines[i])
		if line == "" || strings.Contains(line, NoActivityFound) {
			return ""
		}
		if strings.Contains(line, "/") && !strings.ContainsAny(line, " =") {
			return line
		}
	}
	return ""
}

// Launch starts the app's launcher activity
func (m *PackageManager) Launch(ctx context.Context, id string) model.LaunchResult {
	if _, err := m.ArchivePath(ctx, id); err != nil {
		if errors.Is(err, ErrPackageNotFound) {
			return model.LaunchNotFound{ID: id}
		}
		return model.LaunchError{Message: err.Error()}
	}

	component, ok, err := m.resolveLauncher(ctx, id)
	if err != nil {
		return model.LaunchError{Message: err.Error()}
	}
	if !ok {
		return model.LaunchNotSupported{}
	}

	out, err := m.runner.Output(ctx, AMCommand, "start", "-n", component)
	if msg := amError(out); msg != "" {
		return model.LaunchError{Message: msg}
	}
	if err != nil {
		return model.LaunchError{Message: err.Error()}
	}
	m.logger.InfoContext(ctx, "app launched", "id", id, "component", component)
	return model.LaunchSuccess{}
}

// amError returns the first error line am printed; am often exits 0 on failure
func amError(out []byte) string {
	for _, line := range strings.Split(string(out), "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, AMErrorPrefix) {
			return line
		}
	}
	return ""
}
