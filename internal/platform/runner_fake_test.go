package platform

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
)

type fakeResponse struct {
	out []byte
	err error
}

// fakeRunner answers commands keyed by "name arg1 arg2 ..."
type fakeRunner struct {
	mu        sync.Mutex
	responses map[string]fakeResponse
	calls     []string
}

func newFakeRunner() *fakeRunner {
	return &fakeRunner{responses: make(map[string]fakeResponse)}
}

func (f *fakeRunner) on(cmd, out string, err error) *fakeRunner {
	f.responses[cmd] = fakeResponse{out: []byte(out), err: err}
	return f
}

func (f *fakeRunner) lookup(name string, args []string) (fakeResponse, string) {
	key := strings.Join(append([]string{name}, args...), " ")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, key)
	resp, ok := f.responses[key]
	if !ok {
		return fakeResponse{err: fmt.Errorf("unexpected command %q", key)}, key
	}
	return resp, key
}

func (f *fakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	resp, _ := f.lookup(name, args)
	return resp.out, resp.err
}

func (f *fakeRunner) Stream(_ context.Context, name string, args ...string) (io.ReadCloser, error) {
	resp, _ := f.lookup(name, args)
	if resp.err != nil {
		return nil, resp.err
	}
	return io.NopCloser(bytes.NewReader(resp.out)), nil
}

func (f *fakeRunner) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}
