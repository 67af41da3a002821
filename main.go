package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/ytget/app-inspector/internal/catalog"
	"github.com/ytget/app-inspector/internal/checksum"
	"github.com/ytget/app-inspector/internal/config"
	"github.com/ytget/app-inspector/internal/iconcache"
	"github.com/ytget/app-inspector/internal/logging"
	"github.com/ytget/app-inspector/internal/metrics"
	"github.com/ytget/app-inspector/internal/platform"
	"github.com/ytget/app-inspector/internal/retry"
	"github.com/ytget/app-inspector/internal/screen"
	"github.com/ytget/app-inspector/internal/store"
	"github.com/ytget/app-inspector/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "com.ytget.app-inspector"
	AppName = "App Inspector"

	WindowWidth  = 900
	WindowHeight = 600
)

func main() {
	config.SetDefaults()
	if err := config.ReadInConfig(""); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	logger := logging.InitLogger(cfg.Log.Level, cfg.Log.Format)
	logger.Info("starting", "app", AppName, "version", version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)

	// Apply compact theme
	myApp.Settings().SetTheme(ui.NewCompactTheme())

	windowTitle := fmt.Sprintf("%s v%s", AppName, version)
	myWindow := myApp.NewWindow(windowTitle)
	myWindow.Resize(fyne.NewSize(WindowWidth, WindowHeight))

	settings := config.NewSettings(myApp)
	cat := catalog.New()
	cat.SetLanguage(settings.GetLanguage())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg := metrics.NewRegistry()
	if cfg.Metrics.Addr != "" {
		go func() {
			if err := metrics.Serve(ctx, cfg.Metrics.Addr, reg, logger); err != nil {
				logger.Error("metrics server failed", "error", err)
			}
		}()
	}

	// Initialize services
	checksumMetrics := metrics.NewChecksumMetrics(reg)
	pipeline, err := checksum.NewPipeline(
		retry.NewExecutor(retry.WithOnAttempt(checksumMetrics.OnAttempt)),
		cfg.Checksum.Policy(),
		logger,
	)
	if err != nil {
		logger.Error("invalid checksum policy", "error", err)
		os.Exit(1)
	}

	runner := platform.NewRunner(cfg.Device.ADBPath, cfg.Device.Serial)
	packages := platform.NewPackageManager(runner, pipeline, logger)

	icons, err := iconcache.New[fyne.Resource](
		platform.NewIconLoader(packages, runner, os.TempDir(), logger),
		settings.IconBudgetBytes(),
		iconcache.WithObserver(metrics.NewCacheMetrics(reg)),
		iconcache.WithLogger(logger),
	)
	if err != nil {
		logger.Error("failed to create icon cache", "error", err)
		os.Exit(1)
	}

	storeMetrics := metrics.NewStoreMetrics(reg)
	screenOptions := func(name string) []screen.Option {
		return []screen.Option{
			screen.WithParent(ctx),
			screen.WithLogger(logger),
			screen.WithStoreOptions(
				store.WithObserver(storeMetrics.ForScreen(name)),
				store.WithNotificationBuffer(settings.GetNotificationBuffer()),
			),
		}
	}

	list := screen.NewListController(packages, cat, screenOptions("list")...)
	detail := screen.NewDetailController(packages, packages, settings, cat, screenOptions("detail")...)

	// Create and setup UI
	root := ui.NewRootUI(myWindow, settings, cat, list, detail, icons, logger)
	root.Start(ctx)

	// Show and run
	myWindow.ShowAndRun()

	cancel()
	list.Dispose()
	detail.Dispose()
	logger.Info("stopped")
}
