package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ytget/app-inspector/internal/catalog"
	"github.com/ytget/app-inspector/internal/checksum"
	"github.com/ytget/app-inspector/internal/config"
	"github.com/ytget/app-inspector/internal/logging"
	"github.com/ytget/app-inspector/internal/metrics"
	"github.com/ytget/app-inspector/internal/platform"
	"github.com/ytget/app-inspector/internal/retry"
	"github.com/ytget/app-inspector/internal/screen"
	"github.com/ytget/app-inspector/internal/store"
)

// runtime is everything a command needs to drive the screens headlessly
type runtime struct {
	cfg      *config.Config
	logger   *slog.Logger
	catalog  *catalog.Catalog
	registry *prometheus.Registry
	packages *platform.PackageManager
	state    *config.StateFile
	stores   *metrics.StoreMetrics
}

func newRuntime() (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger := logging.InitLogger(cfg.Log.Level, cfg.Log.Format)

	cat := catalog.New()
	cat.SetLanguage(cfg.UI.Language)

	reg := metrics.NewRegistry()
	checksumMetrics := metrics.NewChecksumMetrics(reg)

	pipeline, err := checksum.NewPipeline(
		retry.NewExecutor(retry.WithOnAttempt(checksumMetrics.OnAttempt)),
		cfg.Checksum.Policy(),
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("checksum pipeline: %w", err)
	}

	runner := platform.NewRunner(cfg.Device.ADBPath, cfg.Device.Serial)

	state, err := config.OpenStateFile(config.StateFilePath(), logger)
	if err != nil {
		return nil, err
	}

	return &runtime{
		cfg:      cfg,
		logger:   logger,
		catalog:  cat,
		registry: reg,
		packages: platform.NewPackageManager(runner, pipeline, logger),
		state:    state,
		stores:   metrics.NewStoreMetrics(reg),
	}, nil
}

func (r *runtime) screenOptions(ctx context.Context, name string) []screen.Option {
	return []screen.Option{
		screen.WithParent(ctx),
		screen.WithLogger(r.logger),
		screen.WithStoreOptions(
			store.WithObserver(r.stores.ForScreen(name)),
			store.WithNotificationBuffer(r.cfg.Notifications.Buffer),
		),
	}
}

func (r *runtime) listController(ctx context.Context) *screen.ListController {
	return screen.NewListController(r.packages, r.catalog, r.screenOptions(ctx, "list")...)
}

// detailController creates the detail screen. With resume false the
// persisted selection is still written but not loaded at construction.
func (r *runtime) detailController(ctx context.Context, resume bool) *screen.DetailController {
	var ids screen.SelectionStore = r.state
	if !resume {
		ids = recordOnly{r.state}
	}
	return screen.NewDetailController(r.packages, r.packages, ids, r.catalog, r.screenOptions(ctx, "detail")...)
}

// recordOnly hides the persisted selection from reads
type recordOnly struct {
	*config.StateFile
}

func (recordOnly) LastSelectedApp() string { return "" }

// serveMetrics exposes the registry until ctx is done when metrics.addr is set
func (r *runtime) serveMetrics(ctx context.Context) {
	if r.cfg.Metrics.Addr == "" {
		return
	}
	go func() {
		if err := metrics.Serve(ctx, r.cfg.Metrics.Addr, r.registry, r.logger); err != nil {
			r.logger.Error("metrics server failed", "addr", r.cfg.Metrics.Addr, "error", err)
		}
	}()
}

// waitFor reads states until done accepts one
func waitFor[S any](ctx context.Context, states <-chan S, done func(S) bool) (S, error) {
	var last S
	for {
		select {
		case <-ctx.Done():
			return last, ctx.Err()
		case s, ok := <-states:
			if !ok {
				if err := ctx.Err(); err != nil {
					return last, err
				}
				return last, errors.New("state stream closed")
			}
			last = s
			if done(s) {
				return s, nil
			}
		}
	}
}
