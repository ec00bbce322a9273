package generation

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

var errEmptyResponse = errors.New("empty model response")

// Options bounds the model calls made by the service.
type Options struct {
	// Timeout applies to each attempt.
	Timeout time.Duration
	// MaxAttempts includes the first call.
	MaxAttempts int
	// InitialInterval is the first backoff delay; later delays grow exponentially.
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultOptions returns the retry policy used when none is configured.
func DefaultOptions() Options {
	return Options{
		Timeout:         90 * time.Second,
		MaxAttempts:     3,
		InitialInterval: 500 * time.Millisecond,
		MaxInterval:     5 * time.Second,
	}
}

// Service assembles prompts and forwards them to the model.
type Service struct {
	model  Model
	opts   Options
	logger *slog.Logger
}

// NewService creates a new generation service. Zero fields of opts take their
// default value.
func NewService(model Model, opts Options, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	defaults := DefaultOptions()
	if opts.Timeout <= 0 {
		opts.Timeout = defaults.Timeout
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = defaults.MaxAttempts
	}
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = defaults.InitialInterval
	}
	if opts.MaxInterval < opts.InitialInterval {
		opts.MaxInterval = max(defaults.MaxInterval, opts.InitialInterval)
	}
	return &Service{model: model, opts: opts, logger: logger}
}

// AnalyzeAngles asks the model for three editorial angles. On any failure the
// returned slice holds the single ErrorAngle entry alongside the error.
func (s *Service) AnalyzeAngles(ctx context.Context, brief Brief) ([]Angle, error) {
	text, err := s.call(ctx, "analyze_angles", AnglePrompt(brief))
	if err != nil {
		return []Angle{ErrorAngle(err)}, err
	}

	angles, err := ParseAngles(text)
	if err != nil {
		s.logger.Warn("unparseable angle analysis", "error", err, "output_bytes", len(text))
		return []Angle{ErrorAngle(err)}, err
	}
	return angles, nil
}

// GenerateScript drafts the full script. The model text is returned as is.
func (s *Service) GenerateScript(ctx context.Context, req ScriptRequest) (string, error) {
	return s.call(ctx, "generate_full", ScriptPrompt(req))
}

// Refine rewrites the current script following the instruction.
func (s *Service) Refine(ctx context.Context, req RefineRequest) (string, error) {
	if strings.TrimSpace(req.Instruction) == "" {
		return "", fmt.Errorf("%w: instruction is required", ErrInvalidInput)
	}
	return s.call(ctx, "refine", RefinePrompt(req))
}

// call runs one model request with a per-attempt timeout, retrying transient
// failures with exponential backoff.
func (s *Service) call(ctx context.Context, op, prompt string) (string, error) {
	start := time.Now()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.opts.InitialInterval
	policy.MaxInterval = s.opts.MaxInterval

	attempts := 0
	text, err := backoff.Retry(ctx, func() (string, error) {
		attempts++
		text, err := s.attempt(ctx, prompt)
		if err == nil {
			return text, nil
		}
		if errors.Is(err, ErrModelRejected) || ctx.Err() != nil {
			return "", backoff.Permanent(err)
		}
		return "", err
	},
		backoff.WithBackOff(policy),
		backoff.WithMaxTries(uint(s.opts.MaxAttempts)),
		backoff.WithMaxElapsedTime(0),
		backoff.WithNotify(func(err error, next time.Duration) {
			s.logger.Warn("model call failed, retrying", "op", op, "attempt", attempts, "retry_in", next, "error", err)
		}),
	)
	if err != nil {
		s.logger.Error("model call failed", "op", op, "attempts", attempts, "duration", time.Since(start), "error", err)
		switch {
		case errors.Is(err, ErrModelRejected):
			return "", err
		case ctx.Err() != nil:
			return "", fmt.Errorf("%s: %w", op, err)
		default:
			return "", fmt.Errorf("%w: %w", ErrModelUnavailable, err)
		}
	}

	s.logger.Debug("model call complete", "op", op, "attempts", attempts, "duration", time.Since(start), "output_bytes", len(text))
	return text, nil
}

func (s *Service) attempt(ctx context.Context, prompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.opts.Timeout)
	defer cancel()

	text, err := s.model.Generate(callCtx, prompt)
	if err != nil {
		if ctx.Err() == nil && errors.Is(callCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, ErrModelTimeout) {
			return "", fmt.Errorf("%w after %s: %w", ErrModelTimeout, s.opts.Timeout, err)
		}
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", errEmptyResponse
	}
	return text, nil
}
