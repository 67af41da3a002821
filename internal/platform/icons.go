package platform

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/png" // register PNG for DecodeConfig
	"io"
	"log/slog"
	"os"
	"path"
	"strings"

	"fyne.io/fyne/v2"
)

// BytesPerPixel is the in-memory cost of one decoded RGBA pixel
const BytesPerPixel = 4

// Launcher icon names in preference order
var launcherIconNames = []string{"ic_launcher.png", "ic_launcher_round.png"}

// Density qualifiers from highest to lowest
var densities = []string{"xxxhdpi", "xxhdpi", "xhdpi", "hdpi", "mdpi", "ldpi"}

// localRunner is implemented by runners whose paths are readable in-process
type localRunner interface {
	Local() bool
}

// IconLoader extracts launcher icons from app archives.
// It satisfies iconcache.Loader[fyne.Resource].
type IconLoader struct {
	packages *PackageManager
	runner   Runner
	tempDir  string
	logger   *slog.Logger
}

// NewIconLoader creates an icon loader. Remote archives are staged in tempDir
// (os.TempDir when empty).
func NewIconLoader(packages *PackageManager, runner Runner, tempDir string, logger *slog.Logger) *IconLoader {
	if logger == nil {
		logger = slog.Default()
	}
	return &IconLoader{
		packages: packages,
		runner:   runner,
		tempDir:  tempDir,
		logger:   logger.With("component", "icons"),
	}
}

// Load returns the icon of app id and its decoded size in bytes
func (l *IconLoader) Load(ctx context.Context, id string) (fyne.Resource, int64, bool) {
	archivePath, err := l.packages.ArchivePath(ctx, id)
	if err != nil {
		l.logger.DebugContext(ctx, "no archive for icon", "id", id, "error", err)
		return nil, 0, false
	}

	data, err := l.extract(ctx, archivePath)
	if err != nil {
		l.logger.DebugContext(ctx, "icon unavailable", "id", id, "error", err)
		return nil, 0, false
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		l.logger.DebugContext(ctx, "icon not decodable", "id", id, "error", err)
		return nil, 0, false
	}

	cost := int64(cfg.Width) * int64(cfg.Height) * BytesPerPixel
	return fyne.NewStaticResource(id+".png", data), cost, true
}

func (l *IconLoader) extract(ctx context.Context, archivePath string) ([]byte, error) {
	ra, size, closeFn, err := l.openArchive(ctx, archivePath)
	if err != nil {
		return nil, err
	}
	defer closeFn()

	zr, err := zip.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("read archive %s: %w", archivePath, err)
	}

	f := PickLauncherIcon(zr.File)
	if f == nil {
		return nil, fmt.Errorf("no launcher icon in %s", archivePath)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}

// openArchive gives random access to the archive, copying it from the device
// to a temporary file when the runner is remote.
func (l *IconLoader) openArchive(ctx context.Context, archivePath string) (io.ReaderAt, int64, func(), error) {
	if lr, ok := l.runner.(localRunner); ok && lr.Local() {
		f, err := os.Open(archivePath)
		if err != nil {
			return nil, 0, nil, err
		}
		st, err := f.Stat()
		if err != nil {
			f.Close()
			return nil, 0, nil, err
		}
		return f, st.Size(), func() { f.Close() }, nil
	}

	stream, err := l.runner.Stream(ctx, CatCommand, archivePath)
	if err != nil {
		return nil, 0, nil, err
	}
	tmp, err := os.CreateTemp(l.tempDir, "archive-*.apk")
	if err != nil {
		stream.Close()
		return nil, 0, nil, fmt.Errorf("stage archive: %w", err)
	}
	cleanup := func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}

	size, copyErr := io.Copy(tmp, stream)
	closeErr := stream.Close()
	if copyErr != nil || closeErr != nil {
		cleanup()
		if copyErr != nil {
			return nil, 0, nil, fmt.Errorf("copy archive: %w", copyErr)
		}
		return nil, 0, nil, fmt.Errorf("copy archive: %w", closeErr)
	}
	return tmp, size, cleanup, nil
}

// PickLauncherIcon chooses the highest-density launcher PNG, preferring the
// square icon over the round one. Mipmap folders win over drawable ones.
func PickLauncherIcon(files []*zip.File) *zip.File {
	best, bestRank := (*zip.File)(nil), -1
	for _, f := range files {
		if rank := iconRank(f.Name); rank > bestRank {
			best, bestRank = f, rank
		}
	}
	return best
}

func iconRank(name string) int {
	dir, base := path.Split(name)
	nameRank := -1
	for i, n := range launcherIconNames {
		if base == n {
			nameRank = len(launcherIconNames) - i
		}
	}
	if nameRank < 0 || !strings.HasPrefix(dir, "res/") {
		return -1
	}

	folder := strings.TrimSuffix(strings.TrimPrefix(dir, "res/"), "/")
	kindRank := 0
	switch {
	case strings.HasPrefix(folder, "mipmap"):
		kindRank = 2
	case strings.HasPrefix(folder, "drawable"):
		kindRank = 1
	default:
		return -1
	}

	densityRank := 0
	for i, d := range densities {
		if strings.Contains(folder, "-"+d) {
			densityRank = len(densities) - i
			break
		}
	}
	return kindRank*1000 + densityRank*10 + nameRank
}
