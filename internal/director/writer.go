package director

import (
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// WritePlan writes a plan to a YAML file
func WritePlan(plan *Plan, path string) error {
	data, err := yaml.Marshal(plan)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// ReadPlan reads a plan from a YAML file
func ReadPlan(path string) (*Plan, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var plan Plan
	if err := yaml.Unmarshal(data, &plan); err != nil {
		return nil, err
	}

	return &plan, nil
}

// EncodePlan writes a plan as YAML to w
func EncodePlan(w io.Writer, plan *Plan) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(plan); err != nil {
		return err
	}
	return enc.Close()
}
