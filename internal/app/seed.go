package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/semaphore"

	"estate_inquiry/internal/domain"
)

// PrefixEvicter drops every cached key under a prefix.
type PrefixEvicter interface {
	DelPrefix(ctx context.Context, prefix string) (int, error)
}

type SeedResult struct {
	Agents  int
	Seeded  int
	Failed  int
	Evicted int
}

// Seeder writes the catalog into the repository and evicts the API's cached reads.
type Seeder struct {
	repo    domain.ResidenceRepository
	cache   PrefixEvicter
	workers int
}

func NewSeeder(repo domain.ResidenceRepository, cache PrefixEvicter, workers int) *Seeder {
	if workers <= 0 {
		workers = 1
	}
	return &Seeder{repo: repo, cache: cache, workers: workers}
}

// Run upserts agents first, then residences with a bounded pool. Eviction runs
// even when some residences failed; the result is an error in that case.
func (s *Seeder) Run(ctx context.Context, agents []domain.Agent, residences []domain.Residence) (SeedResult, error) {
	var res SeedResult
	for _, a := range agents {
		if err := s.repo.UpsertAgent(ctx, a); err != nil {
			return res, fmt.Errorf("upsert agent %d: %w", a.ID, err)
		}
		res.Agents++
	}

	failed, err := s.seedResidences(ctx, residences)
	if err != nil {
		return res, err
	}
	res.Failed = failed
	res.Seeded = len(residences) - failed

	if s.cache != nil {
		for _, prefix := range []string{ResidenceKeyPrefix, ListKeyPrefix} {
			n, err := s.cache.DelPrefix(ctx, prefix)
			if err != nil {
				log.Warn().Err(err).Str("prefix", prefix).Msg("cache eviction failed")
				continue
			}
			res.Evicted += n
			log.Info().Str("prefix", prefix).Int("keys", n).Msg("cache evicted")
		}
	}

	if failed > 0 {
		return res, fmt.Errorf("seeding incomplete: %d of %d residences failed", failed, len(residences))
	}
	return res, nil
}

func (s *Seeder) seedResidences(ctx context.Context, residences []domain.Residence) (int, error) {
	sem := semaphore.NewWeighted(int64(s.workers))
	var (
		wg     sync.WaitGroup
		mu     sync.Mutex
		failed int
	)

	for _, r := range residences {
		r := r

		// acquire before launching the goroutine; release inside it
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return 0, fmt.Errorf("semaphore acquire: %w", err)
		}

		wg.Add(1)
		go func() {
			defer wg.Done()
			defer sem.Release(1)

			if err := s.repo.UpsertResidence(ctx, r); err != nil {
				log.Warn().Int64("id", r.ID).Err(fmt.Errorf("upsert residence: %w", err)).Msg("seed failed")
				mu.Lock()
				failed++
				mu.Unlock()
				return
			}
			log.Debug().Int64("id", r.ID).Msg("seed ok")
		}()
	}

	wg.Wait()
	return failed, nil
}
