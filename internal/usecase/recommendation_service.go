package usecase

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/skinsage/backend/internal/domain"
)

// Package-level compiled regex patterns for cache-key normalization
var (
	nonAlphanumericRegex = regexp.MustCompile(`[^a-z0-9\s]`)
	multipleSpacesRegex  = regexp.MustCompile(`\s+`)
)

// RecommendationConfig holds configuration for the recommendation service
type RecommendationConfig struct {
	MinCandidates      int
	TopN               int
	DefaultRegion      string
	CacheTTL           time.Duration
	EnableDebugLogging bool
}

// RecommendationService runs the full pipeline for one request: intent
// parse, query plan, cascade, dedup/enrich, score. One request is handled
// start to finish per invocation; there is no shared mutable state across
// requests beyond the response cache.
type RecommendationService struct {
	cache         domain.CacheRepository
	cascade       *Cascade
	scorer        *Scorer
	cacheTTL      time.Duration
	defaultRegion string
	debug         bool
}

// NewRecommendationService creates a recommendation service with its
// dependencies
func NewRecommendationService(
	cache domain.CacheRepository,
	searchClient domain.SearchClient,
	config RecommendationConfig,
) *RecommendationService {
	cascade := NewCascade(searchClient, NewNormalizer(), CascadeConfig{
		MinCandidates:      config.MinCandidates,
		EnableDebugLogging: config.EnableDebugLogging,
	})

	scorer := NewScorer(ScorerConfig{
		TopN:               config.TopN,
		EnableDebugLogging: config.EnableDebugLogging,
	})

	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = time.Hour
	}

	defaultRegion := config.DefaultRegion
	if defaultRegion == "" {
		defaultRegion = "in"
	}

	return &RecommendationService{
		cache:         cache,
		cascade:       cascade,
		scorer:        scorer,
		cacheTTL:      cacheTTL,
		defaultRegion: defaultRegion,
		debug:         config.EnableDebugLogging,
	}
}

// Recommend produces a ranked, explained shortlist for the request.
// Flow: check cache -> parse intent -> build plan -> cascade -> prepare
// pool -> rank -> cache -> return. An empty result list is a valid
// response, never an error: "no results found" is a real-world outcome,
// not a bug.
func (s *RecommendationService) Recommend(ctx context.Context, request *domain.RecommendRequest) (*domain.Recommendation, error) {
	if request == nil || strings.TrimSpace(request.Query) == "" {
		return nil, domain.ErrInvalidRequest
	}

	region := strings.ToLower(request.Profile.Region)
	if region == "" {
		region = s.defaultRegion
	}

	cacheKey := s.generateCacheKey(request, region)
	if cached := s.getFromCache(ctx, cacheKey); cached != nil {
		if s.debug {
			log.Printf("[RECOMMEND] cache hit for %q", request.Query)
		}
		return cached, nil
	}

	intent := ParseIntent(request.Query)
	variants := BuildPlan(intent, request.Profile, request.Query, region)
	sweep := BuildSiteSweep(intent, request.Profile, request.Query, region)

	cascadeResult := s.cascade.Run(ctx, region, variants, sweep)
	pool := PrepareCandidates(cascadeResult.Candidates, intent)
	results := s.scorer.Rank(pool, request.Profile, intent)

	if s.debug {
		log.Printf("[RECOMMEND] %q: %d accumulated, %d in pool, %d ranked",
			request.Query, len(cascadeResult.Candidates), len(pool), len(results))
	}

	recommendation := &domain.Recommendation{
		QueryUsed: cascadeResult.QueryUsed,
		Intent:    intent,
		Results:   results,
	}

	if err := s.cache.Set(ctx, cacheKey, recommendation, s.cacheTTL); err != nil {
		log.Printf("[RECOMMEND] failed to cache response: %v", err)
	}

	return recommendation, nil
}

// generateCacheKey creates a normalized cache key from the request.
// Format: "recommend:{region}:{skin_type}:{concerns}:{sensitivities}:{normalized_query}"
// Every profile field the scorer reads is part of the key; profiles that
// differ in concerns or sensitivities score the same candidates
// differently and must not share a cache entry.
func (s *RecommendationService) generateCacheKey(request *domain.RecommendRequest, region string) string {
	skinType := request.Profile.SkinType
	if skinType == "" {
		skinType = domain.SkinUnknown
	}
	return fmt.Sprintf("recommend:%s:%s:%s:%s:%s", region, skinType,
		profileListKey(request.Profile.Concerns),
		profileListKey(request.Profile.Sensitivities),
		normalizeForCacheKey(request.Query))
}

// profileListKey normalizes a profile list into a stable key segment:
// entries lowercased and stripped, sorted, comma-joined. Empty lists map
// to "none" so the segment is never ambiguous with a missing one.
func profileListKey(values []string) string {
	if len(values) == 0 {
		return "none"
	}
	normalized := make([]string, 0, len(values))
	for _, v := range values {
		normalized = append(normalized, normalizeForCacheKey(v))
	}
	sort.Strings(normalized)
	return strings.Join(normalized, ",")
}

// normalizeForCacheKey normalizes a string for use as cache key component.
// Converts to lowercase, removes special characters, and trims whitespace.
func normalizeForCacheKey(s string) string {
	if s == "" {
		return ""
	}
	result := strings.ToLower(s)
	result = nonAlphanumericRegex.ReplaceAllString(result, "")
	result = multipleSpacesRegex.ReplaceAllString(result, " ")
	return strings.TrimSpace(result)
}

// getFromCache retrieves a cached recommendation, if any
func (s *RecommendationService) getFromCache(ctx context.Context, key string) *domain.Recommendation {
	value, err := s.cache.Get(ctx, key)
	if err != nil {
		return nil
	}

	recommendation, ok := value.(*domain.Recommendation)
	if !ok {
		return nil
	}
	return recommendation
}
