package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/coffeeplan/core/pkg/domain/entities"
)

func TestOfficeRepositoryGetOffice(t *testing.T) {
	repo := NewOfficeRepository()
	repo.Seed(entities.Office{ID: "hq", CapacityKg: 500, Active: true})

	got, err := repo.GetOffice(context.Background(), "hq")
	require.NoError(t, err)
	assert.Equal(t, entities.OfficeID("hq"), got.ID)
	assert.Equal(t, 500.0, got.CapacityKg)
}

func TestOfficeRepositoryGetOfficeNotFound(t *testing.T) {
	repo := NewOfficeRepository()
	_, err := repo.GetOffice(context.Background(), "missing")
	assert.Error(t, err)
}

func TestOfficeRepositoryGetOfficesFailsOnFirstMissing(t *testing.T) {
	repo := NewOfficeRepository()
	repo.Seed(entities.Office{ID: "hq"})

	_, err := repo.GetOffices(context.Background(), []entities.OfficeID{"hq", "branch"})
	assert.Error(t, err)
}

func TestOfficeRepositorySeedReplacesExistingRecord(t *testing.T) {
	repo := NewOfficeRepository()
	repo.Seed(entities.Office{ID: "hq", CapacityKg: 100})
	repo.Seed(entities.Office{ID: "hq", CapacityKg: 200})

	got, err := repo.GetOffice(context.Background(), "hq")
	require.NoError(t, err)
	assert.Equal(t, 200.0, got.CapacityKg)
}
