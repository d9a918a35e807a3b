package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specgate/specgate/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".specgate.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .specgate.yaml.
type YAMLLoader struct{}

func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .specgate.yaml from projectPath. Returns the defaults when
// the file does not exist; explicit values overlay defaults otherwise.
func (l *YAMLLoader) Load(projectPath string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	var cfg domain.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	return domain.MergeConfig(domain.DefaultConfig(), cfg), nil
}
