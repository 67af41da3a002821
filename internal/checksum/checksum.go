// Package checksum computes SHA-256 digests of package archives.
//
// Content is hashed in fixed 8192-byte chunks. Reading is retried through a
// retry.Executor so a transient local I/O failure does not lose the digest;
// a failure that outlives the retry budget is returned unchanged.
package checksum

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/ytget/app-inspector/internal/retry"
)

// ChunkSize is the read size fed into the hash per step
const ChunkSize = 8192

// Default retry settings for local reads
const (
	DefaultMaxAttempts  = 2
	DefaultInitialDelay = 200 * time.Millisecond
	DefaultMaxDelay     = 500 * time.Millisecond
	DefaultFactor       = 2.0
)

// DefaultPolicy is the tight policy used for local I/O
func DefaultPolicy() retry.Policy {
	return retry.Policy{
		MaxAttempts:  DefaultMaxAttempts,
		InitialDelay: DefaultInitialDelay,
		MaxDelay:     DefaultMaxDelay,
		Factor:       DefaultFactor,
	}
}

// Opener returns a fresh content stream. It is called once per attempt.
type Opener func(ctx context.Context) (io.ReadCloser, error)

// Sum hashes r to EOF in ChunkSize steps and returns the lowercase hex digest.
// ctx is checked between chunks.
func Sum(ctx context.Context, r io.Reader) (string, error) {
	h := sha256.New()
	buf := make([]byte, ChunkSize)

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		n, err := io.ReadFull(r, buf)
		if n > 0 {
			h.Write(buf[:n])
		}
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			break
		}
		if err != nil {
			return "", err
		}
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// Pipeline wraps Sum with retries
type Pipeline struct {
	executor *retry.Executor
	policy   retry.Policy
	logger   *slog.Logger
}

// NewPipeline creates a pipeline; a nil executor uses the real clock
func NewPipeline(executor *retry.Executor, policy retry.Policy, logger *slog.Logger) (*Pipeline, error) {
	if err := policy.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{
		executor: executor,
		policy:   policy,
		logger:   logger.With("component", "checksum"),
	}, nil
}

// Policy returns the retry policy in use
func (p *Pipeline) Policy() retry.Policy {
	return p.policy
}

// Digest opens the content and hashes it, reopening on every retry
func (p *Pipeline) Digest(ctx context.Context, open Opener) (string, error) {
	return retry.Do(ctx, p.executor, p.policy, func(ctx context.Context) (string, error) {
		rc, err := open(ctx)
		if err != nil {
			return "", err
		}

		sum, err := Sum(ctx, rc)
		// A stream can fail only at Close, e.g. a command exiting non-zero
		if cerr := rc.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			p.logger.DebugContext(ctx, "digest attempt failed", "error", err)
			return "", err
		}
		return sum, nil
	})
}

// DigestFile hashes a local file
func (p *Pipeline) DigestFile(ctx context.Context, path string) (string, error) {
	sum, err := p.Digest(ctx, func(context.Context) (io.ReadCloser, error) {
		return os.Open(path)
	})
	if err != nil {
		return "", fmt.Errorf("digest %s: %w", path, err)
	}
	return sum, nil
}
