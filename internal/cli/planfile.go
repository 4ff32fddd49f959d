package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/notionplan/notionplan/internal/domain"
)

const defaultPlanFile = "plan.json"

// planFile is the on-disk plan format. SavedAt records when the plan
// was last written, not when it was generated.
type planFile struct {
	SavedAt string      `json:"savedAt"`
	Plan    domain.Plan `json:"plan"`
}

// savePlan writes a plan to path as indented JSON.
func savePlan(path string, plan domain.Plan, savedAt string) error {
	data, err := json.MarshalIndent(planFile{SavedAt: savedAt, Plan: plan}, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding plan: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// loadPlan reads a plan previously written by savePlan.
func loadPlan(path string) (domain.Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Plan{}, fmt.Errorf("reading %s: %w", path, err)
	}
	var f planFile
	if err := json.Unmarshal(data, &f); err != nil {
		return domain.Plan{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return f.Plan, nil
}
