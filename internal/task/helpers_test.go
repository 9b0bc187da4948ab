package task

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mrz1836/aigit/internal/config"
	"github.com/mrz1836/aigit/internal/domain"
)

type fakeDiffs struct {
	mu    sync.Mutex
	diff  domain.DiffPayload
	err   error
	calls int
}

func (f *fakeDiffs) StagedDiff(ctx context.Context, _ string) (domain.DiffPayload, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return domain.DiffPayload{}, err
	}
	return f.diff, f.err
}

func (f *fakeDiffs) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeSynth returns result, or blocks until ctx is done when block is set.
type fakeSynth struct {
	result  domain.SynthesisResult
	block   bool
	started chan struct{}
	lastReq domain.SynthesisRequest
}

func (f *fakeSynth) Generate(ctx context.Context, req domain.SynthesisRequest) domain.SynthesisResult {
	f.lastReq = req
	if f.started != nil {
		close(f.started)
	}
	if f.block {
		<-ctx.Done()
		return domain.SynthesisCancel(1)
	}
	return f.result
}

type fakeCommitter struct {
	mu      sync.Mutex
	outcome domain.CommitOutcome
	calls   int
	lastMsg string
}

func (f *fakeCommitter) Commit(_ context.Context, _, message string) domain.CommitOutcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.lastMsg = message
	return f.outcome
}

func (f *fakeCommitter) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func factoryFor(s MessageSynthesizer) SynthesizerFactory {
	return func(config.AIConfig) (MessageSynthesizer, error) { return s, nil }
}

func testSettings() Settings {
	return SettingsFromConfig(config.DefaultConfig())
}

// waitResult waits for h with a test timeout.
func waitResult(t *testing.T, h *Handle) Result {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	res, err := h.Wait(ctx)
	require.NoError(t, err, "task did not finish")
	return res
}

// eventRecorder collects notifier events.
type eventRecorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *eventRecorder) notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) steps() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, 0, len(r.events))
	for _, e := range r.events {
		if e.Result != nil {
			out = append(out, "done:"+e.Status.String())
			continue
		}
		out = append(out, e.Step)
	}
	return out
}

func (r *eventRecorder) terminalCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.Status.IsTerminal() {
			n++
		}
	}
	return n
}

