package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/coffeeplan/core/pkg/domain/entities"
)

// PlanResultStore is the write-once persistence contract: the PlanResult,
// every OrderIntent and every InventorySnapshot it owns are written within
// a single transaction. Failure to persist rolls the entire plan back.
type PlanResultStore interface {
	// Save persists an Optimal PlanResult along with its orders and
	// inventory snapshots, transactionally.
	Save(ctx context.Context, result *entities.PlanResult) error

	// SaveFailed records a non-Optimal PlanResult (Infeasible, TimedOut,
	// SolverError) for audit, without orders or snapshots.
	SaveFailed(ctx context.Context, result *entities.PlanResult) error

	// GetPlanResult reads a plan back by id, including its orders, for
	// correction-mode lookups.
	GetPlanResult(ctx context.Context, id uuid.UUID) (*entities.PlanResult, error)

	// GetPriorOrders reads a plan's owning office set (for the
	// CorrectionPreconditionFailed check) and its OrderIntents, projected
	// onto PriorPlanOrder.
	GetPriorOrders(ctx context.Context, planResultID uuid.UUID) ([]entities.PriorPlanOrder, []entities.OfficeID, error)
}
