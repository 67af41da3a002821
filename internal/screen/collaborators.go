package screen

import (
	"context"

	"github.com/ytget/app-inspector/internal/model"
)

// AppLister enumerates installed apps
type AppLister interface {
	ListApps(ctx context.Context) ([]model.AppEntry, error)
}

// DetailsProvider returns nil details with a nil error when the app does not exist
type DetailsProvider interface {
	AppDetails(ctx context.Context, id string) (*model.AppDetails, error)
}

// Launcher starts an app. Expected outcomes are results, never panics.
type Launcher interface {
	Launch(ctx context.Context, id string) model.LaunchResult
}

// SelectionStore is the persisted single-slot identifier of the last app opened
type SelectionStore interface {
	LastSelectedApp() string
	SetLastSelectedApp(id string)
}

// Catalog renders user-facing text
type Catalog interface {
	Text(key string, args ...any) string
}
