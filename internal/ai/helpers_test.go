package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mrz1836/aigit/internal/domain"
	"github.com/mrz1836/aigit/internal/testutil"
)

const testDiff = "diff --git a/README.md b/README.md\n--- a/README.md\n+++ b/README.md\n@@ -1 +1,2 @@\n-hello\n+hello\n+world\n"

// ollamaServer starts an httptest server answering /api/generate with handler
// and counts requests.
func ollamaServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *atomic.Int32) {
	t.Helper()

	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv, &hits
}

// respondWith answers with a successful non-streaming generate body.
func respondWith(message string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{"response": message, "done": true})
	}
}

func closedPortURL(t *testing.T) string {
	t.Helper()
	return testutil.ClosedPortURL(t)
}

// instantBackoff makes retry waits return immediately for the test.
func instantBackoff(t *testing.T) {
	t.Helper()

	orig := timeSleep
	timeSleep = func(time.Duration) <-chan time.Time {
		ch := make(chan time.Time, 1)
		ch <- time.Now()
		return ch
	}
	t.Cleanup(func() { timeSleep = orig })
}

// scriptedBackend returns the queued results in order, then repeats the last.
type scriptedBackend struct {
	mu      sync.Mutex
	results []scriptedResult
	calls   int
}

type scriptedResult struct {
	message string
	err     error
	block   bool
}

func (b *scriptedBackend) Name() string { return "scripted" }

func (b *scriptedBackend) Generate(ctx context.Context, _ domain.SynthesisRequest) (string, error) {
	b.mu.Lock()
	r := b.results[min(b.calls, len(b.results)-1)]
	b.calls++
	b.mu.Unlock()

	if r.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return r.message, r.err
}

func (b *scriptedBackend) Calls() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.calls
}

func request(diff string) domain.SynthesisRequest {
	return domain.SynthesisRequest{DiffText: diff, Model: "test-model", Timeout: 5 * time.Second}
}
