// Package detectsvc orchestrates a single detection request: normalize,
// classify, cache, and queue for review when confidence is low. It has
// no dependency on gin or any transport concern — the HTTP layer is a
// thin wrapper around this package.
package detectsvc

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync/atomic"

	"github.com/caiatext/langident/app/models"
	"github.com/caiatext/langident/app/services/cache"
	"github.com/caiatext/langident/app/services/priors"
	"github.com/caiatext/langident/app/services/review"
	"github.com/caiatext/langident/internal/detect"
	"github.com/caiatext/langident/internal/profile"
	"go.uber.org/zap"
)

// Service wires together a language index, the detection cache, the
// prior-override store, and the review queue. It is safe for concurrent
// use: the index is held behind an atomic pointer so a background
// reload can swap it without callers observing a partial update.
type Service struct {
	index          atomic.Pointer[profile.ProbabilityIndex]
	profileVersion atomic.Pointer[string]

	cache  cache.Cache
	priors *priors.Service
	review *review.Service
	logger *zap.Logger

	reviewGap     float64
	maxTextLength int
}

type Options struct {
	Cache         cache.Cache
	Priors        *priors.Service
	Review        *review.Service
	Logger        *zap.Logger
	ReviewGap     float64
	MaxTextLength int
}

func New(idx *profile.ProbabilityIndex, profileVersion string, opts Options) *Service {
	s := &Service{
		cache:         opts.Cache,
		priors:        opts.Priors,
		review:        opts.Review,
		logger:        opts.Logger,
		reviewGap:     opts.ReviewGap,
		maxTextLength: opts.MaxTextLength,
	}
	s.index.Store(idx)
	s.profileVersion.Store(&profileVersion)
	return s
}

// SwapIndex hot-swaps the probability index used by every subsequent
// request. In-flight requests holding the old pointer finish against it
// unaffected.
func (s *Service) SwapIndex(idx *profile.ProbabilityIndex, profileVersion string) {
	s.index.Store(idx)
	s.profileVersion.Store(&profileVersion)
}

// Request is a single classification request.
type Request struct {
	Text      string
	SourceTag string
}

// Detect classifies req.Text, consulting and populating the result cache
// and, when confidence is too close between the top two candidates,
// enqueuing the text for human review.
func (s *Service) Detect(ctx context.Context, req Request) (*models.DetectionResult, error) {
	idx := s.index.Load()
	profileVersion := *s.profileVersion.Load()

	fingerprint := s.fingerprint(req.Text, req.SourceTag, profileVersion)

	if s.cache != nil {
		if entry, found, err := s.cache.Get(ctx, fingerprint); err != nil {
			s.logger.Warn("cache lookup failed", zap.Error(err))
		} else if found {
			entry.UpdateAccess()
			result := entry.Result
			return &result, nil
		}
	}

	opts := []detect.Option{detect.WithMaxTextLength(s.maxTextLength)}
	if req.SourceTag != "" && s.priors != nil {
		if priorMap, err := s.priors.PriorMap(ctx, req.SourceTag); err != nil {
			s.logger.Warn("failed to load priors", zap.Error(err), zap.String("source_tag", req.SourceTag))
		} else if priorMap != nil {
			opts = append(opts, detect.WithPriors(priorMap))
		}
	}

	d, err := detect.New(idx, opts...)
	if err != nil {
		return nil, fmt.Errorf("detectsvc: build detector: %w", err)
	}
	d.Append(req.Text)

	candidates, err := d.Detect()
	if err != nil {
		return nil, err
	}

	result := buildResult(candidates, profileVersion)

	if result.NeedsReview(s.reviewGap) && s.review != nil {
		if _, err := s.review.Enqueue(ctx, req.Text, *result); err != nil {
			s.logger.Warn("failed to enqueue review item", zap.Error(err))
		}
	}

	if req.SourceTag != "" && s.priors != nil {
		if err := s.priors.Record(ctx, req.SourceTag, result.Lang, models.PriorSourceAutoLearned); err != nil {
			s.logger.Warn("failed to record prior usage", zap.Error(err))
		}
	}

	if s.cache != nil {
		entry := models.NewDetectionCache(fingerprint, *result, profileVersion)
		if err := s.cache.Set(ctx, fingerprint, entry); err != nil {
			s.logger.Warn("failed to populate cache", zap.Error(err))
		}
	}

	return result, nil
}

func buildResult(candidates []detect.Candidate, profileVersion string) *models.DetectionResult {
	modelCandidates := make([]models.Candidate, len(candidates))
	for i, c := range candidates {
		modelCandidates[i] = models.Candidate{Lang: c.Lang, Prob: c.Prob}
	}
	result := &models.DetectionResult{
		Lang:           detect.BestLang(candidates),
		Candidates:     modelCandidates,
		ConfidenceGap:  detect.ConfidenceGap(candidates),
		ProfileVersion: profileVersion,
	}
	if len(candidates) > 0 {
		result.Confidence = candidates[0].Prob
	}
	return result
}

// fingerprint hashes the raw request text together with the source tag
// and profile version, so cache keys don't leak raw text. The same text
// sent with different source tags gets different keys, since a tag's
// priors can change the result.
func (s *Service) fingerprint(text, sourceTag, profileVersion string) string {
	sum := sha256.Sum256([]byte(text + "\x1f" + sourceTag + "\x1f" + profileVersion))
	return hex.EncodeToString(sum[:])
}

// Stats reports aggregate cache performance, surfaced by the HTTP
// service's health/metrics endpoint.
func (s *Service) Stats(ctx context.Context) (*cache.Stats, error) {
	if s.cache == nil {
		return &cache.Stats{}, nil
	}
	return s.cache.GetStats(ctx)
}

// LoadedLanguages reports the language set and version of the currently
// active profile index, for the HTTP layer's introspection endpoint.
func (s *Service) LoadedLanguages() ([]string, string) {
	idx := s.index.Load()
	return idx.Languages(), *s.profileVersion.Load()
}
