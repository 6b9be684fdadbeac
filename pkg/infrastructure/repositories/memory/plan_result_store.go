package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/coffeeplan/core/pkg/domain/entities"
	"github.com/coffeeplan/core/pkg/domain/repositories"
)

// PlanResultStore is an in-memory PlanResultStore. A real implementation
// would write PlanResult+OrderIntents+InventorySnapshots in one SQL
// transaction (spec.md §5); here the single mutex around one map stands
// in for that transaction boundary, the same simplification the teacher
// makes for its memory repositories.
type PlanResultStore struct {
	mu      sync.RWMutex
	results map[uuid.UUID]entities.PlanResult
}

var _ repositories.PlanResultStore = (*PlanResultStore)(nil)

func NewPlanResultStore() *PlanResultStore {
	return &PlanResultStore{results: make(map[uuid.UUID]entities.PlanResult)}
}

func (s *PlanResultStore) Save(_ context.Context, result *entities.PlanResult) error {
	if result.Status != entities.Optimal {
		return fmt.Errorf("Save called with non-Optimal status %s, use SaveFailed", result.Status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.ID] = *result
	return nil
}

func (s *PlanResultStore) SaveFailed(_ context.Context, result *entities.PlanResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results[result.ID] = *result
	return nil
}

func (s *PlanResultStore) GetPlanResult(_ context.Context, id uuid.UUID) (*entities.PlanResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result, ok := s.results[id]
	if !ok {
		return nil, fmt.Errorf("plan result %s not found", id)
	}
	return &result, nil
}

// GetPriorOrders projects a stored PlanResult's OrderIntents onto
// PriorPlanOrder and derives its owning office set from the
// InventorySnapshots, which (unlike Orders) cover every planned office
// whether or not that office ended up with a placed order.
func (s *PlanResultStore) GetPriorOrders(_ context.Context, planResultID uuid.UUID) ([]entities.PriorPlanOrder, []entities.OfficeID, error) {
	s.mu.RLock()
	result, ok := s.results[planResultID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil, fmt.Errorf("plan result %s not found", planResultID)
	}
	if result.Status != entities.Optimal {
		return nil, nil, fmt.Errorf("plan result %s has status %s, not a valid correction base", planResultID, result.Status)
	}

	seen := make(map[entities.OfficeID]bool)
	var offices []entities.OfficeID
	for _, snap := range result.Inventory {
		if !seen[snap.Office] {
			seen[snap.Office] = true
			offices = append(offices, snap.Office)
		}
	}

	orders := make([]entities.PriorPlanOrder, 0, len(result.Orders))
	for _, o := range result.Orders {
		orders = append(orders, entities.PriorPlanOrder{
			PlanResultID: result.ID,
			Distributor:  o.Distributor,
			Office:       o.Office,
			Day:          o.PlacementDay,
			Tier:         o.Tier,
			QtyKg:        o.QtyKg,
		})
	}
	return orders, offices, nil
}
