package repositories

import (
	"context"

	"github.com/coffeeplan/core/pkg/domain/entities"
)

// DistributorRepository provides read-by-id access to Distributor tariff
// and capacity data.
type DistributorRepository interface {
	GetDistributor(ctx context.Context, id entities.DistributorID) (*entities.Distributor, error)
	GetDistributors(ctx context.Context, ids []entities.DistributorID) ([]*entities.Distributor, error)
}
