package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/searchprobe/internal/core/domain"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driven"
	"github.com/custodia-labs/searchprobe/internal/core/ports/driving"
	"github.com/custodia-labs/searchprobe/internal/logger"
)

// Ensure ProbeService implements the interface.
var _ driving.ProbeService = (*ProbeService)(nil)

// DefaultWaitInterval is the pause between attempts in wait mode.
const DefaultWaitInterval = time.Second

// ProbeService checks connectivity to a search engine.
type ProbeService struct {
	factory driven.SearchClientFactory
	now     func() time.Time
	newID   func() string
}

// NewProbeService creates a new probe service.
func NewProbeService(factory driven.SearchClientFactory) *ProbeService {
	return &ProbeService{
		factory: factory,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Probe fetches server info from the endpoint.
// A single attempt is made unless opts.Wait is set.
func (s *ProbeService) Probe(
	ctx context.Context, endpoint domain.Endpoint, opts driving.ProbeOptions,
) *domain.ProbeResult {
	logger.Section("Probe")

	result := &domain.ProbeResult{
		ID:        s.newID(),
		Endpoint:  endpoint,
		StartedAt: s.now(),
	}
	defer func() {
		result.Duration = s.now().Sub(result.StartedAt)
		logger.Debug("Probe %s finished in %s after %d attempt(s), ok=%t",
			result.ID, result.Duration, result.Attempts, result.OK())
	}()

	logger.Debug("Endpoint: %s", endpoint)
	logger.Debug("Timeout: %s", endpoint.EffectiveTimeout())

	if err := endpoint.Validate(); err != nil {
		result.Err = err
		return result
	}

	if s.factory == nil {
		result.Err = errors.New("search client factory not configured")
		return result
	}

	client, err := s.factory.Create(endpoint)
	if err != nil {
		result.Err = fmt.Errorf("create %s client: %w", endpoint.Engine, err)
		return result
	}

	ctx = driven.WithProbeID(ctx, result.ID)

	if opts.Wait <= 0 {
		result.Attempts = 1
		result.Info, result.Err = s.attempt(ctx, client, endpoint)
		return result
	}

	s.waitFor(ctx, client, endpoint, opts, result)
	return result
}

// attempt performs one info request bounded by the endpoint timeout.
func (s *ProbeService) attempt(
	ctx context.Context, client driven.SearchClient, endpoint domain.Endpoint,
) (*domain.ServerInfo, error) {
	timeout := endpoint.EffectiveTimeout()
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	info, err := client.Info(attemptCtx)
	if err != nil {
		if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) && !errors.Is(err, domain.ErrTimeout) {
			return nil, fmt.Errorf("%w after %s: %v", domain.ErrTimeout, timeout, err)
		}
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("%w: empty info payload", domain.ErrMalformedResponse)
	}
	return info, nil
}

// waitFor retries attempt until it succeeds, fails permanently, or opts.Wait elapses.
func (s *ProbeService) waitFor(
	ctx context.Context,
	client driven.SearchClient,
	endpoint domain.Endpoint,
	opts driving.ProbeOptions,
	result *domain.ProbeResult,
) {
	interval := opts.Interval
	if interval <= 0 {
		interval = DefaultWaitInterval
	}
	logger.Debug("Waiting up to %s for %s (interval %s)", opts.Wait, endpoint.Engine.Description(), interval)

	waitCtx, cancel := context.WithTimeout(ctx, opts.Wait)
	defer cancel()

	limiter := rate.NewLimiter(rate.Every(interval), 1)
	var lastErr error

	for {
		if err := limiter.Wait(waitCtx); err != nil {
			if lastErr == nil {
				lastErr = fmt.Errorf("%w: %v", domain.ErrTimeout, err)
			}
			result.Err = fmt.Errorf("gave up after %d attempt(s) in %s: %w", result.Attempts, opts.Wait, lastErr)
			return
		}

		result.Attempts++
		info, err := s.attempt(waitCtx, client, endpoint)
		if err == nil {
			result.Info = info
			result.Err = nil
			return
		}

		lastErr = err
		logger.Info("Attempt %d failed: %v", result.Attempts, err)

		if !domain.IsRetryable(err) {
			result.Err = err
			return
		}
	}
}
