package screen

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/app-inspector/internal/logging"
)

// EffectIDPrefix is prepended to generated effect IDs
const EffectIDPrefix = "effect_"

// Scope owns the effects of one screen
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc
	logger *slog.Logger

	mu       sync.Mutex
	disposed bool
	wg       sync.WaitGroup
}

// NewScope creates a scope whose context derives from parent
func NewScope(parent context.Context, logger *slog.Logger) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel, logger: logger}
}

// Launch runs fn in a new goroutine bound to the scope. It returns false
// without running fn once the scope is disposed.
func (s *Scope) Launch(name string, fn func(ctx context.Context)) bool {
	s.mu.Lock()
	if s.disposed {
		s.mu.Unlock()
		s.logger.Debug("effect rejected after dispose", "effect", name)
		return false
	}
	s.wg.Add(1)
	s.mu.Unlock()

	ctx := logging.WithEffectID(s.ctx, generateEffectID())
	go func() {
		defer s.wg.Done()
		start := time.Now()
		s.logger.DebugContext(ctx, "effect started", "effect", name)
		fn(ctx)
		s.logger.DebugContext(ctx, "effect finished",
			"effect", name,
			"duration", time.Since(start),
			"cancelled", ctx.Err() != nil)
	}()
	return true
}

// Disposed reports whether Dispose has been called
func (s *Scope) Disposed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.disposed
}

// Dispose cancels all outstanding effects and waits for them to return.
// Safe to call more than once.
func (s *Scope) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()

	s.cancel()
	s.wg.Wait()
}

// generateEffectID uses UUID v7 so IDs sort by start time
func generateEffectID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(EffectIDPrefix+"%d", time.Now().UnixNano())
	}
	return EffectIDPrefix + id.String()
}
