package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/coffeeplan/core/pkg/domain/entities"
	"github.com/coffeeplan/core/pkg/domain/repositories"
)

// OfficeRepository is an in-memory OfficeRepository, the reference
// implementation used by tests and cmd/coffeeplan's demo, grounded on
// the teacher's pkg/infrastructure/repositories/memory/bom_repository.go
// (map-indexed slice storage, a mutex since the orchestrator may read
// concurrently across plans).
type OfficeRepository struct {
	mu      sync.RWMutex
	offices map[entities.OfficeID]entities.Office
}

var _ repositories.OfficeRepository = (*OfficeRepository)(nil)

// NewOfficeRepository builds an empty repository ready for Seed calls.
func NewOfficeRepository() *OfficeRepository {
	return &OfficeRepository{offices: make(map[entities.OfficeID]entities.Office)}
}

// Seed loads or replaces an Office's stored record.
func (r *OfficeRepository) Seed(office entities.Office) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.offices[office.ID] = office
}

func (r *OfficeRepository) GetOffice(_ context.Context, id entities.OfficeID) (*entities.Office, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	office, ok := r.offices[id]
	if !ok {
		return nil, fmt.Errorf("office %q not found", id)
	}
	return &office, nil
}

func (r *OfficeRepository) GetOffices(ctx context.Context, ids []entities.OfficeID) ([]*entities.Office, error) {
	offices := make([]*entities.Office, 0, len(ids))
	for _, id := range ids {
		office, err := r.GetOffice(ctx, id)
		if err != nil {
			return nil, err
		}
		offices = append(offices, office)
	}
	return offices, nil
}
