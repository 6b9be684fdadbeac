package repositories

import (
	"context"

	"github.com/coffeeplan/core/pkg/domain/entities"
)

// OfficeRepository provides read-by-id access to Office data. Mutation is
// an admin-flow concern this module does not own.
type OfficeRepository interface {
	GetOffice(ctx context.Context, id entities.OfficeID) (*entities.Office, error)
	GetOffices(ctx context.Context, ids []entities.OfficeID) ([]*entities.Office, error)
}
