package matching

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
	"unicode/utf8"

	"github.com/sethvargo/go-retry"

	"github.com/JaimeStill/vibematch/internal/vocabulary"
)

const maxFallbackColor = 80

// Config bounds the retry policy of an Orchestrator. A positive
// InferTimeout caps every Infer call; zero leaves calls bounded only by the
// run context.
type Config struct {
	MaxAttempts   int
	Backoff       time.Duration
	InferTimeout  time.Duration
	FallbackLabel string
}

// Orchestrator drives up to MaxAttempts rounds of infer → parse → validate.
//
// Invalid replies (refusals and out-of-vocabulary labels alike) are retried
// after a constant backoff. A transport error ends the run in StateFailed on
// the first occurrence. Once attempts are exhausted the last reply is turned
// into a fallback answer.
type Orchestrator struct {
	client    Client
	validator *Validator
	cfg       Config
	logger    *slog.Logger
}

// NewOrchestrator validates cfg against reg and returns an Orchestrator.
func NewOrchestrator(
	client Client,
	reg *vocabulary.Registry,
	cfg Config,
	logger *slog.Logger,
) (*Orchestrator, error) {
	if cfg.MaxAttempts < 1 {
		return nil, fmt.Errorf("max attempts must be at least 1: %d", cfg.MaxAttempts)
	}
	if cfg.Backoff <= 0 {
		return nil, fmt.Errorf("backoff must be positive: %v", cfg.Backoff)
	}
	if cfg.InferTimeout < 0 {
		return nil, fmt.Errorf("infer timeout must not be negative: %v", cfg.InferTimeout)
	}
	if !reg.Contains(cfg.FallbackLabel) {
		return nil, fmt.Errorf("fallback label %q is not in the vocabulary", cfg.FallbackLabel)
	}

	return &Orchestrator{
		client:    client,
		validator: NewValidator(reg),
		cfg:       cfg,
		logger:    logger.With("system", "orchestrator"),
	}, nil
}

// Run executes the retry state machine for one image. An error is returned
// only for StateFailed (wrapping ErrTransport) or when ctx ends the run; the
// report is still returned for failed runs so callers can inspect attempts.
func (o *Orchestrator) Run(ctx context.Context, image []byte) (*Report, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("match interrupted: %w", err)
	}

	var (
		attempts []Attempt
		last     Candidate
		accepted *Outcome
	)

	backoff := retry.WithMaxRetries(
		uint64(o.cfg.MaxAttempts-1),
		retry.NewConstant(o.cfg.Backoff),
	)

	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		n := len(attempts) + 1

		raw, err := o.infer(ctx, image)
		if err != nil {
			attempts = append(attempts, Attempt{Number: n, TransportError: true})
			o.logger.ErrorContext(ctx, "inference failed", "attempt", n, "error", err)
			return err
		}

		last = Parse(raw)
		outcome := o.validator.Validate(last)
		attempts = append(attempts, Attempt{Number: n, Outcome: outcome})

		if outcome.Valid {
			accepted = &outcome
			o.logger.InfoContext(ctx, "reply accepted", "attempt", n, "label", outcome.Label)
			return nil
		}

		o.logger.WarnContext(
			ctx, "reply rejected",
			"attempt", n,
			"max_attempts", o.cfg.MaxAttempts,
			"reason", outcome.Reason,
			"candidate", last.Label,
		)

		return retry.RetryableError(fmt.Errorf("%w: %s", ErrInvalidReply, outcome.Reason))
	})

	report := &Report{Attempts: attempts}

	switch {
	case accepted != nil:
		report.State = StateSucceeded
		report.Label = accepted.Label
		report.Explanation = last.Explanation
		report.Raw = last.Raw
		return report, nil

	case len(attempts) > 0 && attempts[len(attempts)-1].TransportError:
		report.State = StateFailed
		if !errors.Is(err, ErrTransport) {
			err = fmt.Errorf("%w: %w", ErrTransport, err)
		}
		return report, err

	case err != nil && !errors.Is(err, ErrInvalidReply):
		return nil, fmt.Errorf("match interrupted: %w", err)
	}

	o.fallback(report, last.Raw)

	o.logger.WarnContext(
		ctx, "attempts exhausted, using fallback",
		"attempts", len(attempts),
		"label", report.Label,
	)

	return report, nil
}

func (o *Orchestrator) infer(ctx context.Context, image []byte) (string, error) {
	if o.cfg.InferTimeout <= 0 {
		return o.client.Infer(ctx, image)
	}

	callCtx, cancel := context.WithTimeout(ctx, o.cfg.InferTimeout)
	defer cancel()

	raw, err := o.client.Infer(callCtx, image)
	if err != nil && ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) {
		return "", fmt.Errorf("%w: no reply within %v: %w", ErrTransport, o.cfg.InferTimeout, err)
	}
	return raw, err
}

// fallback inspects the final reply once more. Any extractable candidate,
// valid or not, yields a synthesized answer under the fallback label; a reply
// with nothing extractable is passed through verbatim without a label.
func (o *Orchestrator) fallback(report *Report, raw string) {
	report.State = StateFallback

	c := Parse(raw)
	if !c.HasLabel() {
		report.Raw = raw
		return
	}

	label := o.cfg.FallbackLabel
	report.Label = label
	report.Explanation = fmt.Sprintf(
		"Your vibe came through as %q, and the closest match in our animal kingdom is the %s.",
		truncate(c.Label, maxFallbackColor),
		label,
	)
	report.Raw = fmt.Sprintf("**animal:** %s\n**Explanation:** %s", label, report.Explanation)
}

func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
