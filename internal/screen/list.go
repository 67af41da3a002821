package screen

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ytget/app-inspector/internal/catalog"
	"github.com/ytget/app-inspector/internal/model"
	"github.com/ytget/app-inspector/internal/store"
)

// ListIntent is a request to the list screen: ListLoad, ListRefresh or ListRetry
type ListIntent interface{ listIntent() }

type ListLoad struct{}
type ListRefresh struct{}
type ListRetry struct{}

func (ListLoad) listIntent()    {}
func (ListRefresh) listIntent() {}
func (ListRetry) listIntent()   {}

// ListEvent is consumed only by ReduceList
type ListEvent interface{ listEvent() }

type ListStarted struct{}

type ListLoaded struct {
	Apps []model.AppEntry
}

type ListFailed struct {
	Err model.AppError
}

func (ListStarted) listEvent() {}
func (ListLoaded) listEvent()  {}
func (ListFailed) listEvent()  {}

// ListState is the persistent state of the list screen
type ListState struct {
	Status    model.ScreenStatus
	IsLoading bool
	Apps      []model.AppEntry
	Err       model.AppError
}

// ReduceList applies one event. Failures keep the previously loaded apps.
func ReduceList(s ListState, e ListEvent) ListState {
	switch e := e.(type) {
	case ListStarted:
		s.Status = model.StatusLoading
		s.IsLoading = true
		s.Err = nil
	case ListLoaded:
		s.Status = model.StatusReady
		s.IsLoading = false
		s.Apps = e.Apps
		s.Err = nil
	case ListFailed:
		s.Status = model.StatusFailed
		s.IsLoading = false
		s.Err = e.Err
	default:
		panic(fmt.Sprintf("screen: unhandled list event %T", e))
	}
	return s
}

// ListController drives the installed-apps list
type ListController struct {
	store   *store.Store[ListState, ListEvent, Notice]
	scope   *Scope
	apps    AppLister
	catalog Catalog
	logger  *slog.Logger
}

// NewListController creates the list screen. Nothing is loaded until the
// first intent.
func NewListController(apps AppLister, cat Catalog, opts ...Option) *ListController {
	o := buildOptions("list", opts)
	return &ListController{
		store:   store.New[ListState, ListEvent, Notice](ListState{Status: model.StatusIdle}, ReduceList, o.storeOpts...),
		scope:   NewScope(o.parent, o.logger),
		apps:    apps,
		catalog: cat,
		logger:  o.logger,
	}
}

// State returns the current snapshot
func (c *ListController) State() ListState { return c.store.State() }

// Watch streams state snapshots, starting with the current one
func (c *ListController) Watch(ctx context.Context) <-chan ListState { return c.store.Watch(ctx) }

// Notifications streams one-shot notices emitted after this call
func (c *ListController) Notifications(ctx context.Context) <-chan Notice {
	return c.store.Notifications(ctx)
}

// Dispatch handles an intent. Every list intent re-runs the enumeration.
func (c *ListController) Dispatch(intent ListIntent) {
	if c.scope.Disposed() {
		return
	}
	switch intent.(type) {
	case ListLoad, ListRefresh, ListRetry:
		c.load()
	default:
		panic(fmt.Sprintf("screen: unhandled list intent %T", intent))
	}
}

// Dispose cancels outstanding effects and detaches every observer
func (c *ListController) Dispose() {
	c.scope.Dispose()
	c.store.Close()
}

func (c *ListController) load() {
	c.store.Apply(ListStarted{})
	c.scope.Launch("list.load", func(ctx context.Context) {
		apps, err := c.apps.ListApps(ctx)
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			appErr := Classify(err, "apps")
			c.logger.WarnContext(ctx, "failed to list apps", "error", err)
			c.store.Apply(ListFailed{Err: appErr})
			c.store.Emit(LoadFailed{Message: catalog.ErrorMessage(c.catalog, appErr)})
			return
		}
		sorted := model.SortApps(apps)
		c.logger.DebugContext(ctx, "apps listed", "count", len(sorted))
		c.store.Apply(ListLoaded{Apps: sorted})
	})
}
