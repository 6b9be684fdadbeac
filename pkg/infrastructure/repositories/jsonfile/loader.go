// Package jsonfile loads a self-contained planning scenario (offices,
// distributors, and the PlanRequest itself) from a single JSON file, the
// demo/CLI analogue of the teacher's csv.Loader — same explicit,
// error-wrapped-per-step shape, JSON instead of CSV because the data here
// (nested tier ladders, decimal maps) does not flatten into rows.
package jsonfile

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/coffeeplan/core/pkg/domain/entities"
)

// Scenario is the on-disk shape a scenario file decodes into.
type Scenario struct {
	Offices      []entities.Office      `json:"offices"`
	Distributors []entities.Distributor `json:"distributors"`
	Request      entities.PlanRequest   `json:"request"`
}

// Loader reads Scenario files from disk.
type Loader struct{}

// NewLoader creates a new scenario file loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadScenario reads and decodes the scenario file at path.
func (l *Loader) LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file %s: %w", path, err)
	}

	var scenario Scenario
	if err := json.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("failed to parse scenario file %s: %w", path, err)
	}

	if len(scenario.Offices) == 0 {
		return nil, fmt.Errorf("scenario file %s: at least one office is required", path)
	}
	for i, o := range scenario.Offices {
		if o.ID == "" {
			return nil, fmt.Errorf("scenario file %s: offices[%d] has an empty id", path, i)
		}
	}
	for i, d := range scenario.Distributors {
		if d.ID == "" {
			return nil, fmt.Errorf("scenario file %s: distributors[%d] has an empty id", path, i)
		}
	}

	return &scenario, nil
}
