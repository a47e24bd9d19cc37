package usecase

import (
	"context"
	"log"
	"sync"

	"github.com/skinsage/backend/internal/domain"
	"golang.org/x/sync/errgroup"
)

// cascadeState tracks where the controller is in the variant list
type cascadeState int

const (
	// statePending: variants remain and the threshold is not met
	statePending cascadeState = iota
	// stateDone: accumulator reached the minimum threshold, stop early
	stateDone
	// stateExhausted: all variants tried, whatever accumulated is final
	stateExhausted
)

func (s cascadeState) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateDone:
		return "done"
	case stateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// CascadeConfig tunes the cascade controller
type CascadeConfig struct {
	// MinCandidates is the accumulator size at which the cascade stops
	// issuing further, costlier queries
	MinCandidates      int
	EnableDebugLogging bool
}

// Cascade executes an ordered query plan against the search provider,
// strict variants first, stopping as soon as enough normalized candidates
// have accumulated. A failed variant is never re-issued; the next,
// different variant is the recovery path.
type Cascade struct {
	client        domain.SearchClient
	normalizer    *Normalizer
	minCandidates int
	debug         bool
}

// CascadeResult is the controller's terminal output: the accumulated
// candidates (possibly empty) and the query string last tried, surfaced
// to the caller as a diagnostic.
type CascadeResult struct {
	Candidates []domain.Candidate
	QueryUsed  string
}

// NewCascade creates a cascade controller
func NewCascade(client domain.SearchClient, normalizer *Normalizer, config CascadeConfig) *Cascade {
	minCandidates := config.MinCandidates
	if minCandidates <= 0 {
		minCandidates = 6
	}

	return &Cascade{
		client:        client,
		normalizer:    normalizer,
		minCandidates: minCandidates,
		debug:         config.EnableDebugLogging,
	}
}

// Run tries each variant in order, then falls back to the per-site sweep
// if every prior pass under-produced. Adapter faults and provider soft
// errors count as zero candidates for that variant; they never abort the
// request.
func (c *Cascade) Run(ctx context.Context, region string, variants, sweep []QueryVariant) CascadeResult {
	result := CascadeResult{}
	state := statePending

	for _, variant := range variants {
		candidates := c.tryVariant(ctx, variant, region)
		result.Candidates = append(result.Candidates, candidates...)
		result.QueryUsed = variant.Query

		if len(result.Candidates) >= c.minCandidates {
			state = stateDone
			break
		}
	}

	if state != stateDone {
		c.runSweep(ctx, region, sweep, &result)
		state = stateExhausted
		if len(result.Candidates) >= c.minCandidates {
			state = stateDone
		}
	}

	if c.debug {
		log.Printf("[CASCADE] finished state=%s candidates=%d last=%q", state, len(result.Candidates), result.QueryUsed)
	}
	return result
}

// tryVariant issues one query and normalizes whatever came back. Returns
// nil on any fault.
func (c *Cascade) tryVariant(ctx context.Context, variant QueryVariant, region string) []domain.Candidate {
	resp, err := c.client.Search(ctx, variant.Query, variant.Mode, region)
	if err != nil {
		log.Printf("[CASCADE] %s variant failed: %v", variant.Label, err)
		return nil
	}
	if resp.Error != "" {
		log.Printf("[CASCADE] %s variant soft error: %s", variant.Label, resp.Error)
		return nil
	}

	candidates := c.normalizer.Normalize(resp)
	if c.debug {
		log.Printf("[CASCADE] %s variant: %d candidates from %q", variant.Label, len(candidates), variant.Query)
	}
	return candidates
}

// runSweep tries the per-site queries concurrently; those sub-queries are
// independent and only the aggregate count matters, so in-flight calls
// are cancelled the moment the threshold is met.
func (c *Cascade) runSweep(ctx context.Context, region string, sweep []QueryVariant, result *CascadeResult) {
	if len(sweep) == 0 {
		return
	}

	sweepCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var mu sync.Mutex
	g, sweepCtx := errgroup.WithContext(sweepCtx)

	for _, variant := range sweep {
		variant := variant
		g.Go(func() error {
			select {
			case <-sweepCtx.Done():
				return nil
			default:
			}

			candidates := c.tryVariant(sweepCtx, variant, region)

			mu.Lock()
			defer mu.Unlock()
			if len(result.Candidates) >= c.minCandidates {
				return nil
			}
			result.Candidates = append(result.Candidates, candidates...)
			result.QueryUsed = variant.Query
			if len(result.Candidates) >= c.minCandidates {
				cancel()
			}
			return nil
		})
	}

	// Goroutines never return errors; faults are isolated per variant
	_ = g.Wait()
}
