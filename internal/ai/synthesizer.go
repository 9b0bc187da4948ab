package ai

import (
	"context"
	"strings"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/mrz1836/aigit/internal/constants"
	"github.com/mrz1836/aigit/internal/ctxutil"
	"github.com/mrz1836/aigit/internal/domain"
)

// Synthesizer produces commit messages and analyses through a Backend. It is
// safe for concurrent use; each Generate call owns its own deadline.
type Synthesizer struct {
	backend     Backend
	maxAttempts int
	logger      zerolog.Logger
}

// Option configures a Synthesizer.
type Option func(*Synthesizer)

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Synthesizer) {
		s.logger = logger
	}
}

// WithMaxAttempts sets the total attempt budget. Values below 1 keep the default.
func WithMaxAttempts(n int) Option {
	return func(s *Synthesizer) {
		if n >= 1 {
			s.maxAttempts = min(n, constants.MaxAttemptsLimit)
		}
	}
}

// NewSynthesizer wraps backend.
func NewSynthesizer(backend Backend, opts ...Option) *Synthesizer {
	s := &Synthesizer{
		backend:     backend,
		maxAttempts: constants.DefaultMaxAttempts,
		logger:      zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Backend returns the wrapped backend.
func (s *Synthesizer) Backend() Backend { return s.backend }

type attemptOutcome struct {
	message string
	err     error
}

// Generate returns exactly one result for req and never panics or blocks past
// the request timeout. An empty diff yields Ok("") without a backend call.
// Cancellation of ctx yields Cancelled; expiry of the request timeout yields
// TimedOut.
func (s *Synthesizer) Generate(ctx context.Context, req domain.SynthesisRequest) domain.SynthesisResult {
	if strings.TrimSpace(req.DiffText) == "" {
		return domain.SynthesisOk("", 0)
	}
	if ctxutil.Canceled(ctx) != nil {
		return s.interrupted(ctx, 0)
	}

	timeout := req.Timeout
	if timeout <= 0 {
		timeout = constants.DefaultAITimeout
	}
	runCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var attempts atomic.Int32
	done := make(chan attemptOutcome, 1)
	start := time.Now()

	go func() {
		msg, err := s.run(runCtx, req, &attempts)
		done <- attemptOutcome{message: msg, err: err}
	}()

	select {
	case out := <-done:
		n := int(attempts.Load())
		if out.err != nil {
			if ctxutil.Canceled(runCtx) != nil {
				return s.interrupted(ctx, n)
			}
			s.logger.Warn().
				Err(out.err).
				Str("backend", s.backend.Name()).
				Int("attempt", n).
				Msg("commit message synthesis failed")
			return domain.SynthesisFailure(out.err.Error(), n)
		}

		msg := CleanMessage(out.message)
		if msg == "" {
			return domain.SynthesisFailure(ReasonEmptyResponse, n)
		}
		if req.PromptKind() == domain.PromptSuggest {
			return s.suggested(msg, req, n)
		}
		s.logger.Info().
			Str("backend", s.backend.Name()).
			Str("model", req.Model).
			Int("attempt", n).
			Int("max_attempts", s.maxAttempts).
			Str("kind", req.PromptKind().String()).
			Dur("latency", time.Since(start)).
			Msg("model response generated")
		return domain.SynthesisOk(msg, n)

	case <-runCtx.Done():
		return s.interrupted(ctx, int(attempts.Load()))
	}
}

// suggested parses a candidate list. An unparseable answer is a failure, not
// a retry: the backend answered.
func (s *Synthesizer) suggested(msg string, req domain.SynthesisRequest, attempts int) domain.SynthesisResult {
	suggestions, err := ParseSuggestions(msg, req.Count)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("backend", s.backend.Name()).
			Int("attempt", attempts).
			Msg("commit message suggestions unusable")
		return domain.SynthesisFailure(err.Error(), attempts)
	}
	s.logger.Info().
		Str("backend", s.backend.Name()).
		Str("model", req.Model).
		Int("attempt", attempts).
		Int("requested", req.Count).
		Int("suggestions", len(suggestions)).
		Msg("commit message suggestions generated")
	return domain.SynthesisSuggested(suggestions, attempts)
}

// interrupted maps the end of the run context onto Cancelled or TimedOut.
// Only the caller's own cancellation counts as Cancelled.
func (s *Synthesizer) interrupted(parent context.Context, attempts int) domain.SynthesisResult {
	if ctxutil.Why(parent) == ctxutil.ByCaller {
		s.logger.Debug().Int("attempt", attempts).Msg("commit message synthesis canceled")
		return domain.SynthesisCancel(attempts)
	}
	s.logger.Warn().Int("attempt", attempts).Msg("commit message synthesis timed out")
	return domain.SynthesisTimeout(attempts)
}

// run performs up to maxAttempts backend calls, retrying only transient
// connection failures with a linear backoff.
func (s *Synthesizer) run(ctx context.Context, req domain.SynthesisRequest, attempts *atomic.Int32) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		attempts.Store(int32(attempt)) //nolint:gosec // bounded by MaxAttemptsLimit

		msg, err := s.backend.Generate(ctx, req)
		if err == nil {
			return msg, nil
		}
		lastErr = err

		if !isTransient(err) || attempt == s.maxAttempts {
			break
		}

		wait := backoff(attempt)
		s.logger.Warn().
			Err(err).
			Int("attempt", attempt).
			Int("max_attempts", s.maxAttempts).
			Dur("backoff", wait).
			Msg("backend unreachable, retrying")

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timeSleep(wait):
		}
	}
	return "", lastErr
}
