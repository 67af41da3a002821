package screen

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ytget/app-inspector/internal/catalog"
	"github.com/ytget/app-inspector/internal/model"
	"github.com/ytget/app-inspector/internal/store"
)

// DetailIntent is a request to the detail screen: DetailLoad, DetailRetry or LaunchAction
type DetailIntent interface{ detailIntent() }

type DetailLoad struct {
	ID string
}

// DetailRetry reloads the last identifier
type DetailRetry struct{}

// LaunchAction launches the app currently shown. It never changes state.
type LaunchAction struct{}

func (DetailLoad) detailIntent()   {}
func (DetailRetry) detailIntent()  {}
func (LaunchAction) detailIntent() {}

// DetailEvent is consumed only by ReduceDetail
type DetailEvent interface{ detailEvent() }

type DetailStarted struct {
	ID string
}

type DetailLoaded struct {
	ID      string
	Details *model.AppDetails
}

type DetailFailed struct {
	ID  string
	Err model.AppError
}

func (DetailStarted) detailEvent() {}
func (DetailLoaded) detailEvent()  {}
func (DetailFailed) detailEvent()  {}

// DetailState is the persistent state of the detail screen
type DetailState struct {
	Status    model.ScreenStatus
	ID        string
	IsLoading bool
	Details   *model.AppDetails
	Err       model.AppError
}

// ReduceDetail applies one event. Every event carries its identifier so a
// terminal event always leaves ID and Details describing the same app.
func ReduceDetail(s DetailState, e DetailEvent) DetailState {
	switch e := e.(type) {
	case DetailStarted:
		if e.ID != s.ID {
			s.Details = nil
		}
		s.Status = model.StatusLoading
		s.ID = e.ID
		s.IsLoading = true
		s.Err = nil
	case DetailLoaded:
		s.Status = model.StatusReady
		s.ID = e.ID
		s.IsLoading = false
		s.Details = e.Details
		s.Err = nil
	case DetailFailed:
		if e.ID != s.ID {
			s.Details = nil
		}
		s.Status = model.StatusFailed
		s.ID = e.ID
		s.IsLoading = false
		s.Err = e.Err
	default:
		panic(fmt.Sprintf("screen: unhandled detail event %T", e))
	}
	return s
}

// DetailController drives the details of one app
type DetailController struct {
	store    *store.Store[DetailState, DetailEvent, Notice]
	scope    *Scope
	details  DetailsProvider
	launcher Launcher
	ids      SelectionStore
	catalog  Catalog
	logger   *slog.Logger
}

// NewDetailController creates the detail screen. When the selection store
// holds an identifier from an earlier run, loading it starts immediately.
func NewDetailController(details DetailsProvider, launcher Launcher, ids SelectionStore, cat Catalog, opts ...Option) *DetailController {
	o := buildOptions("detail", opts)
	c := &DetailController{
		store:    store.New[DetailState, DetailEvent, Notice](DetailState{Status: model.StatusIdle}, ReduceDetail, o.storeOpts...),
		scope:    NewScope(o.parent, o.logger),
		details:  details,
		launcher: launcher,
		ids:      ids,
		catalog:  cat,
		logger:   o.logger,
	}

	if id := strings.TrimSpace(ids.LastSelectedApp()); id != "" {
		c.logger.Info("resuming last selected app", "id", id)
		c.load(id)
	}
	return c
}

// State returns the current snapshot
func (c *DetailController) State() DetailState { return c.store.State() }

// Watch streams state snapshots, starting with the current one
func (c *DetailController) Watch(ctx context.Context) <-chan DetailState { return c.store.Watch(ctx) }

// Notifications streams one-shot notices emitted after this call
func (c *DetailController) Notifications(ctx context.Context) <-chan Notice {
	return c.store.Notifications(ctx)
}

// Dispatch handles an intent
func (c *DetailController) Dispatch(intent DetailIntent) {
	if c.scope.Disposed() {
		return
	}
	switch i := intent.(type) {
	case DetailLoad:
		id := strings.TrimSpace(i.ID)
		if id == "" {
			c.logger.Warn("ignoring load without identifier")
			return
		}
		c.load(id)
	case DetailRetry:
		id := strings.TrimSpace(c.ids.LastSelectedApp())
		if id == "" {
			id = c.store.State().ID
		}
		if id == "" {
			c.logger.Warn("ignoring retry without identifier")
			return
		}
		c.load(id)
	case LaunchAction:
		c.launch()
	default:
		panic(fmt.Sprintf("screen: unhandled detail intent %T", intent))
	}
}

// Dispose cancels outstanding effects and detaches every observer
func (c *DetailController) Dispose() {
	c.scope.Dispose()
	c.store.Close()
}

func (c *DetailController) load(id string) {
	c.ids.SetLastSelectedApp(id)
	c.store.Apply(DetailStarted{ID: id})

	c.scope.Launch("detail.load", func(ctx context.Context) {
		details, err := c.details.AppDetails(ctx, id)
		if ctx.Err() != nil {
			return
		}

		var appErr model.AppError
		switch {
		case err != nil:
			appErr = Classify(err, id)
		case details == nil:
			appErr = &model.NotFoundError{ID: id}
		}
		if appErr != nil {
			c.logger.WarnContext(ctx, "failed to load details", "id", id, "error", appErr)
			c.store.Apply(DetailFailed{ID: id, Err: appErr})
			c.store.Emit(LoadFailed{Message: catalog.ErrorMessage(c.catalog, appErr)})
			return
		}

		c.store.Apply(DetailLoaded{ID: id, Details: details})
	})
}

func (c *DetailController) launch() {
	id := strings.TrimSpace(c.store.State().ID)
	if id == "" {
		c.store.Emit(LaunchFailed{Reason: c.catalog.Text(catalog.KeyEmptyID)})
		return
	}

	c.scope.Launch("detail.launch", func(ctx context.Context) {
		result := c.launcher.Launch(ctx, id)
		if ctx.Err() != nil {
			return
		}
		c.logger.InfoContext(ctx, "launch finished", "id", id, "result", fmt.Sprintf("%T", result))
		c.store.Emit(c.launchNotice(id, result))
	})
}

func (c *DetailController) launchNotice(id string, result model.LaunchResult) Notice {
	message := catalog.LaunchMessage(c.catalog, result, id)
	switch result.(type) {
	case model.LaunchSuccess:
		return LaunchSucceeded{ID: id, Message: message}
	case model.LaunchNotSupported, model.LaunchNotFound, model.LaunchError:
		return LaunchFailed{Reason: message}
	default:
		panic(fmt.Sprintf("screen: unhandled launch result %T", result))
	}
}
