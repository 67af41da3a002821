package checksum

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/app-inspector/internal/retry"
)

const emptySHA256 = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"

var fastPolicy = retry.Policy{MaxAttempts: 2, InitialDelay: time.Millisecond, MaxDelay: 2 * time.Millisecond, Factor: 2}

func referenceDigest(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

func patterned(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i*31 + i/7)
	}
	return b
}

func newTestPipeline(t *testing.T, opts ...retry.Option) *Pipeline {
	t.Helper()
	p, err := NewPipeline(retry.NewExecutor(opts...), fastPolicy, nil)
	require.NoError(t, err)
	return p
}

func TestSum_Empty(t *testing.T) {
	sum, err := Sum(context.Background(), bytes.NewReader(nil))
	require.NoError(t, err)
	assert.Equal(t, emptySHA256, sum)
}

func TestSum_ChunkBoundariesDoNotMatter(t *testing.T) {
	sizes := []int{1, ChunkSize - 1, ChunkSize, ChunkSize + 1, 2 * ChunkSize, 20_000}

	for _, size := range sizes {
		content := patterned(size)
		expected := referenceDigest(content)

		readers := map[string]io.Reader{
			"whole":    bytes.NewReader(content),
			"one-byte": iotest.OneByteReader(bytes.NewReader(content)),
			"half":     iotest.HalfReader(bytes.NewReader(content)),
			"data-err": iotest.DataErrReader(bytes.NewReader(content)),
		}
		for name, r := range readers {
			sum, err := Sum(context.Background(), r)
			require.NoError(t, err, "size %d reader %s", size, name)
			assert.Equal(t, expected, sum, "size %d reader %s", size, name)
		}
	}
}

func TestSum_LowercaseHex(t *testing.T) {
	sum, err := Sum(context.Background(), strings.NewReader("App Inspector"))
	require.NoError(t, err)
	assert.Len(t, sum, 64)
	assert.Equal(t, strings.ToLower(sum), sum)
}

func TestSum_PropagatesReadError(t *testing.T) {
	readErr := errors.New("io failure")
	_, err := Sum(context.Background(), iotest.ErrReader(readErr))
	assert.ErrorIs(t, err, readErr)
}

func TestSum_StopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Sum(ctx, bytes.NewReader(patterned(20_000)))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestPipeline_DigestEmpty(t *testing.T) {
	p := newTestPipeline(t)
	sum, err := p.Digest(context.Background(), func(context.Context) (io.ReadCloser, error) {
		return io.NopCloser(bytes.NewReader(nil)), nil
	})
	require.NoError(t, err)
	assert.Equal(t, emptySHA256, sum)
}

func TestPipeline_RecoversFromTransientFailure(t *testing.T) {
	content := patterned(20_000)
	attempts := 0
	p := newTestPipeline(t, retry.WithOnAttempt(func(attempt, _ int) { attempts = attempt }))

	opens := 0
	sum, err := p.Digest(context.Background(), func(context.Context) (io.ReadCloser, error) {
		opens++
		if opens == 1 {
			// fail mid-stream on the first attempt
			return io.NopCloser(io.MultiReader(bytes.NewReader(content[:ChunkSize]), iotest.ErrReader(errors.New("EIO")))), nil
		}
		return io.NopCloser(bytes.NewReader(content)), nil
	})

	require.NoError(t, err)
	assert.Equal(t, referenceDigest(content), sum)
	assert.Equal(t, 2, opens)
	assert.Equal(t, 2, attempts)
}

func TestPipeline_ExhaustionPropagatesUnderlyingError(t *testing.T) {
	p := newTestPipeline(t)
	openErr := &fs.PathError{Op: "open", Path: "/data/app/base.apk", Err: fs.ErrPermission}

	opens := 0
	_, err := p.Digest(context.Background(), func(context.Context) (io.ReadCloser, error) {
		opens++
		return nil, openErr
	})

	assert.Same(t, openErr, err)
	assert.Equal(t, fastPolicy.MaxAttempts, opens)
}

func TestPipeline_DigestFile(t *testing.T) {
	content := patterned(3 * ChunkSize)
	path := filepath.Join(t.TempDir(), "base.apk")
	require.NoError(t, os.WriteFile(path, content, 0o644))

	p := newTestPipeline(t)
	sum, err := p.DigestFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, referenceDigest(content), sum)

	_, err = p.DigestFile(context.Background(), filepath.Join(t.TempDir(), "missing.apk"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestNewPipeline_RejectsInvalidPolicy(t *testing.T) {
	_, err := NewPipeline(nil, retry.Policy{}, nil)
	assert.ErrorIs(t, err, retry.ErrInvalidPolicy)
}

func TestDefaultPolicy(t *testing.T) {
	p := DefaultPolicy()
	require.NoError(t, p.Validate())
	assert.Equal(t, 2, p.MaxAttempts)
	assert.Equal(t, 200*time.Millisecond, p.DelayForAttempt(1))
}

type failingClose struct {
	io.Reader
	err error
}

func (f failingClose) Close() error { return f.err }

func TestPipeline_CloseErrorFailsAttempt(t *testing.T) {
	p := newTestPipeline(t)
	exitErr := errors.New("cat: exit status 1")

	opens := 0
	_, err := p.Digest(context.Background(), func(context.Context) (io.ReadCloser, error) {
		opens++
		return failingClose{Reader: strings.NewReader(""), err: exitErr}, nil
	})

	assert.Same(t, exitErr, err)
	assert.Equal(t, fastPolicy.MaxAttempts, opens)
}
