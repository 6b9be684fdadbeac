package jsonfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validScenario = `{
  "offices": [{"id": "hq", "capacity_kg": 500, "daily_loss_fraction": 0.02, "active": true}],
  "distributors": [{"id": "acme", "thresholds": [0, 100], "unit_price": [[20, 18]], "supply_cap_kg": [400]}],
  "request": {
    "id": "11111111-1111-1111-1111-111111111111",
    "horizon_days": 1,
    "mode": "baseline",
    "office_ids": ["hq"],
    "initial_inventory_kg": {"hq": 10},
    "demand": [{"office_id": "hq", "workers_daily": [10], "conferences_daily": [0]}]
  }
}`

func writeScenario(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoadScenarioValid(t *testing.T) {
	path := writeScenario(t, validScenario)

	scenario, err := NewLoader().LoadScenario(path)
	require.NoError(t, err)
	require.Len(t, scenario.Offices, 1)
	assert.Equal(t, "hq", string(scenario.Offices[0].ID))
	assert.Equal(t, 1, scenario.Request.HorizonDays)
}

func TestLoadScenarioMissingFile(t *testing.T) {
	_, err := NewLoader().LoadScenario(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestLoadScenarioInvalidJSON(t *testing.T) {
	path := writeScenario(t, "{not valid json")
	_, err := NewLoader().LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenarioRequiresAtLeastOneOffice(t *testing.T) {
	path := writeScenario(t, `{"offices": [], "distributors": [], "request": {}}`)
	_, err := NewLoader().LoadScenario(path)
	assert.Error(t, err)
}

func TestLoadScenarioRejectsEmptyOfficeID(t *testing.T) {
	path := writeScenario(t, `{"offices": [{"id": ""}], "distributors": [], "request": {}}`)
	_, err := NewLoader().LoadScenario(path)
	assert.Error(t, err)
}
