package domain

import "context"

type ResidenceRepository interface {
	// Write paths
	UpsertAgent(ctx context.Context, a Agent) error
	UpsertResidence(ctx context.Context, r Residence) error

	// Read paths
	GetResidence(ctx context.Context, id int64) (Residence, error)
	ListResidences(ctx context.Context, f ResidenceFilter) ([]Residence, error)
	// FindResidenceWithAgent returns (nil, nil) when no residence has this id.
	FindResidenceWithAgent(ctx context.Context, id int64) (*Residence, error)
}

type Mailer interface {
	Send(ctx context.Context, e Email) (Receipt, error)
}

type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, v any, ttlSec int) error
	Del(ctx context.Context, key string) error
}
