package screen

import (
	"context"
	"log/slog"

	"github.com/ytget/app-inspector/internal/store"
)

// Option configures a controller
type Option func(*options)

type options struct {
	parent    context.Context
	logger    *slog.Logger
	storeOpts []store.Option
}

// WithParent derives the controller scope from ctx
func WithParent(ctx context.Context) Option {
	return func(o *options) { o.parent = ctx }
}

// WithLogger sets the controller logger
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithStoreOptions passes options to the underlying store
func WithStoreOptions(opts ...store.Option) Option {
	return func(o *options) { o.storeOpts = append(o.storeOpts, opts...) }
}

func buildOptions(component string, opts []Option) options {
	o := options{parent: context.Background(), logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	o.logger = o.logger.With("component", component)
	return o
}
