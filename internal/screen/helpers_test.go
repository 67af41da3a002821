package screen

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/ytget/app-inspector/internal/catalog"
	"github.com/ytget/app-inspector/internal/logging"
	"github.com/ytget/app-inspector/internal/model"
)

const waitTimeout = 2 * time.Second

type listerFunc func(ctx context.Context) ([]model.AppEntry, error)

func (f listerFunc) ListApps(ctx context.Context) ([]model.AppEntry, error) { return f(ctx) }

type detailsFunc func(ctx context.Context, id string) (*model.AppDetails, error)

func (f detailsFunc) AppDetails(ctx context.Context, id string) (*model.AppDetails, error) {
	return f(ctx, id)
}

type launcherFunc func(ctx context.Context, id string) model.LaunchResult

func (f launcherFunc) Launch(ctx context.Context, id string) model.LaunchResult { return f(ctx, id) }

type memorySlot struct {
	mu     sync.Mutex
	value  string
	writes []string
}

func (m *memorySlot) LastSelectedApp() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.value
}

func (m *memorySlot) SetLastSelectedApp(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = id
	m.writes = append(m.writes, id)
}

func (m *memorySlot) Writes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.writes...)
}

func testOptions() []Option {
	return []Option{WithLogger(logging.Discard())}
}

func newCatalog() *catalog.Catalog {
	return catalog.New()
}

func receive[T any](t *testing.T, ch <-chan T) T {
	t.Helper()
	select {
	case v, ok := <-ch:
		if !ok {
			t.Fatal("channel closed")
		}
		return v
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for value")
	}
	var zero T
	return zero
}

func assertNoValue[T any](t *testing.T, ch <-chan T) {
	t.Helper()
	select {
	case v := <-ch:
		t.Fatalf("unexpected value %#v", v)
	case <-time.After(50 * time.Millisecond):
	}
}

func noLaunch(context.Context, string) model.LaunchResult { return model.LaunchSuccess{} }
