// Package irloader reads the structured inputs the upstream generation
// orchestrator hands to the gate: API-surface IR, behavior IR, slot
// manifests and transition maps, all as YAML documents.
package irloader

import (
	"fmt"
	"os"

	"github.com/specgate/specgate/internal/domain"
	"gopkg.in/yaml.v3"
)

// YAMLLoader implements domain.IRLoader.
type YAMLLoader struct{}

func New() *YAMLLoader { return &YAMLLoader{} }

func (l *YAMLLoader) LoadAPISurface(path string) (*domain.APISurface, error) {
	var surface domain.APISurface
	if err := readYAML(path, &surface); err != nil {
		return nil, err
	}
	for i, ep := range surface.Endpoints {
		if ep.Method == "" || ep.Path == "" {
			return nil, fmt.Errorf("%s: endpoint %d is missing method or path", path, i)
		}
	}
	return &surface, nil
}

func (l *YAMLLoader) LoadBehavior(path string) (*domain.BehaviorIR, error) {
	var ir domain.BehaviorIR
	if err := readYAML(path, &ir); err != nil {
		return nil, err
	}
	for i, flow := range ir.Flows {
		if flow.ID == "" || flow.Endpoint == "" {
			return nil, fmt.Errorf("%s: flow %d is missing id or endpoint", path, i)
		}
	}
	return &ir, nil
}

func (l *YAMLLoader) LoadSlotManifest(path string) (*domain.SlotManifest, error) {
	var manifest domain.SlotManifest
	if err := readYAML(path, &manifest); err != nil {
		return nil, err
	}
	if len(manifest.AllowedSlots) == 0 {
		return nil, fmt.Errorf("%s: slot manifest declares no allowed slots", path)
	}
	return &manifest, nil
}

func (l *YAMLLoader) LoadTransitions(path string) ([]domain.EntityTransitions, error) {
	var doc struct {
		Entities []domain.EntityTransitions `yaml:"entities"`
	}
	if err := readYAML(path, &doc); err != nil {
		return nil, err
	}
	for i, et := range doc.Entities {
		if et.Entity == "" {
			return nil, fmt.Errorf("%s: transition entry %d has no entity", path, i)
		}
	}
	return doc.Entities, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	return nil
}
