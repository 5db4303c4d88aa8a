package app

import (
	"context"
	"fmt"
	"time"

	"estate_inquiry/internal/domain"
)

// ResidenceKeyPrefix and ListKeyPrefix are the cache namespaces the seeder evicts.
const (
	ResidenceKeyPrefix = "residences:one:"
	ListKeyPrefix      = "residences:list:"
)

type CatalogService struct {
	repo     domain.ResidenceRepository
	cache    domain.Cache
	cacheTTL time.Duration
}

func NewCatalogService(r domain.ResidenceRepository, c domain.Cache, ttl time.Duration) *CatalogService {
	return &CatalogService{repo: r, cache: c, cacheTTL: ttl}
}

func (s *CatalogService) GetResidence(ctx context.Context, id int64) (domain.Residence, error) {
	key := fmt.Sprintf("%s%d", ResidenceKeyPrefix, id)
	var r domain.Residence
	if ok, _ := s.cache.Get(ctx, key, &r); ok {
		return r, nil
	}
	r, err := s.repo.GetResidence(ctx, id)
	if err != nil {
		return domain.Residence{}, err
	}
	_ = s.cache.Set(ctx, key, r, int(s.cacheTTL.Seconds()))
	return r, nil
}

func (s *CatalogService) ListResidences(ctx context.Context, f domain.ResidenceFilter) ([]domain.Residence, error) {
	f = normalizeFilter(f)
	key := filterKey(f)

	var out []domain.Residence
	if ok, _ := s.cache.Get(ctx, key, &out); ok {
		return out, nil
	}

	rs, err := s.repo.ListResidences(ctx, f)
	if err != nil {
		return nil, err
	}
	if rs == nil {
		rs = []domain.Residence{}
	}

	// copy so the cached value does not alias the repo's backing array
	out = make([]domain.Residence, len(rs))
	copy(out, rs)
	_ = s.cache.Set(ctx, key, out, int(s.cacheTTL.Seconds()))
	return out, nil
}
