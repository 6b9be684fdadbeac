package entities

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlanResultMarshalJSONRendersStatusName(t *testing.T) {
	result := PlanResult{
		ID:        uuid.New(),
		RequestID: uuid.New(),
		Status:    Infeasible,
		Objective: decimal.Zero,
	}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "Infeasible", decoded["status"])
}

func TestPlanResultMarshalJSONOmitsEmptyOrdersAndInventory(t *testing.T) {
	result := PlanResult{ID: uuid.New(), RequestID: uuid.New(), Status: Optimal, Objective: decimal.NewFromInt(100)}

	data, err := json.Marshal(result)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	_, hasOrders := decoded["orders"]
	_, hasInventory := decoded["inventory"]
	assert.False(t, hasOrders)
	assert.False(t, hasInventory)
}
