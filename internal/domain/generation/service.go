package generation

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Captain-T2004/Ongaku-Backend/internal/i18n"
	apperrors "github.com/Captain-T2004/Ongaku-Backend/pkg/errors"
	"github.com/Captain-T2004/Ongaku-Backend/pkg/metrics"
)

// Result is the concatenated text of one streaming generation call.
type Result struct {
	Text   string
	Chunks int
	Usage  metrics.TokenUsage
}

// Generator streams a completion for prompt from a language model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (Result, error)
	// Ready reports whether the generator holds credentials.
	Ready() bool
	Provider() string
}

// Service bounds and classifies generation calls.
type Service interface {
	Generate(ctx context.Context, prompt string) (Result, error)
	Ready() bool
	Provider() string
}

// Config wires runtime settings for generation.
type Config struct {
	Timeout time.Duration
}

type service struct {
	cfg       Config
	generator Generator
	logger    *slog.Logger
}

// NewService wraps generator with a deadline and error classification.
func NewService(cfg Config, generator Generator, logger *slog.Logger) Service {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 120 * time.Second
	}
	return &service{
		cfg:       cfg,
		generator: generator,
		logger:    logger.With("component", "generation.service"),
	}
}

func (s *service) Ready() bool {
	return s.generator != nil && s.generator.Ready()
}

func (s *service) Provider() string {
	if s.generator == nil {
		return ""
	}
	return s.generator.Provider()
}

func (s *service) Generate(ctx context.Context, prompt string) (Result, error) {
	if !s.Ready() {
		return Result{}, ErrUnconfigured()
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	started := time.Now()
	res, err := s.generator.Generate(ctx, prompt)
	elapsed := time.Since(started)
	timedOut := err != nil && (apperrors.IsTimeout(err) || errors.Is(ctx.Err(), context.DeadlineExceeded))
	metrics.RecordUpstream("generation", metrics.Outcome(err, timedOut), elapsed)

	if err != nil {
		s.logger.Error("generation failed", "provider", s.Provider(), "error", err, "elapsed", elapsed, "timeout", timedOut)
		if timedOut {
			return Result{}, i18n.Error(apperrors.CodeUpstreamTimeout, i18n.KeyRequestTimeout, err)
		}
		return Result{}, i18n.Error(apperrors.CodeGenerationFailed, i18n.KeyGenerationFailed, err, err.Error())
	}

	metrics.RecordTokens(s.Provider(), res.Usage)
	s.logger.Info("generation completed",
		"provider", s.Provider(),
		"chunks", res.Chunks,
		"chars", len(res.Text),
		"elapsed", elapsed,
		"prompt_tokens", res.Usage.PromptTokens,
		"completion_tokens", res.Usage.CompletionTokens,
	)
	return res, nil
}

// ErrUnconfigured is returned when no credentials were supplied.
func ErrUnconfigured() error {
	return i18n.Error(apperrors.CodeUnconfigured, i18n.KeyUnconfigured, nil)
}

// Unavailable stands in for a provider whose credentials are missing.
type Unavailable struct {
	Name string
}

func (u Unavailable) Generate(context.Context, string) (Result, error) {
	return Result{}, ErrUnconfigured()
}

func (u Unavailable) Ready() bool { return false }

func (u Unavailable) Provider() string { return u.Name }
