package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/coffeeplan/core/pkg/domain/entities"
	"github.com/coffeeplan/core/pkg/domain/repositories"
)

// DistributorRepository is an in-memory DistributorRepository, mirroring
// OfficeRepository's shape.
type DistributorRepository struct {
	mu           sync.RWMutex
	distributors map[entities.DistributorID]entities.Distributor
}

var _ repositories.DistributorRepository = (*DistributorRepository)(nil)

func NewDistributorRepository() *DistributorRepository {
	return &DistributorRepository{distributors: make(map[entities.DistributorID]entities.Distributor)}
}

// Seed loads or replaces a Distributor's stored record.
func (r *DistributorRepository) Seed(distributor entities.Distributor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.distributors[distributor.ID] = distributor
}

func (r *DistributorRepository) GetDistributor(_ context.Context, id entities.DistributorID) (*entities.Distributor, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	distributor, ok := r.distributors[id]
	if !ok {
		return nil, fmt.Errorf("distributor %q not found", id)
	}
	return &distributor, nil
}

func (r *DistributorRepository) GetDistributors(ctx context.Context, ids []entities.DistributorID) ([]*entities.Distributor, error) {
	distributors := make([]*entities.Distributor, 0, len(ids))
	for _, id := range ids {
		distributor, err := r.GetDistributor(ctx, id)
		if err != nil {
			return nil, err
		}
		distributors = append(distributors, distributor)
	}
	return distributors, nil
}
