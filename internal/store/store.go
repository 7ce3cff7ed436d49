// Package store loads the optional category keyword tables from YAML. The
// tables are read once at process start and never mutated afterwards.
package store

import (
	"fmt"
	"os"
	"path/filepath"

	"paisahub/finassist/internal/logging"
	"paisahub/finassist/internal/models"

	"gopkg.in/yaml.v3"
)

// CategoryStore resolves and reads the categories YAML file.
type CategoryStore struct {
	CategoriesFile string
	logger         logging.Logger
}

// NewCategoryStore creates a store for the given categories file. An empty
// filename means only built-in tables are available.
func NewCategoryStore(categoriesFile string, logger logging.Logger) *CategoryStore {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &CategoryStore{
		CategoriesFile: categoriesFile,
		logger:         logger,
	}
}

// FindConfigFile looks for a configuration file in standard locations:
// the path as given, ./config/, and ~/.config/finassist/.
func (s *CategoryStore) FindConfigFile(filename string) (string, error) {
	if filepath.IsAbs(filename) {
		if _, err := os.Stat(filename); err == nil {
			return filename, nil
		}
		return "", os.ErrNotExist
	}

	locations := []string{
		filename,
		filepath.Join("config", filename),
	}
	for _, location := range locations {
		if _, err := os.Stat(location); err == nil {
			return location, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		configPath := filepath.Join(homeDir, ".config", "finassist", filename)
		if _, err := os.Stat(configPath); err == nil {
			return configPath, nil
		}
	}

	return "", os.ErrNotExist
}

// LoadCategories reads the ordered keyword tables from the YAML file. A
// missing file returns an empty slice, not an error: callers fall back to
// the built-in tables.
func (s *CategoryStore) LoadCategories() ([]models.CategoryConfig, error) {
	if s.CategoriesFile == "" {
		return []models.CategoryConfig{}, nil
	}

	filePath, err := s.FindConfigFile(s.CategoriesFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.WithField("file", s.CategoriesFile).Warn("Categories file not found, using built-in tables")
			return []models.CategoryConfig{}, nil
		}
		return nil, fmt.Errorf("error resolving categories file: %w", err)
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading categories file: %w", err)
	}

	var cfg models.CategoriesConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("error parsing categories file: %w", err)
	}

	s.logger.WithFields(
		logging.Field{Key: "file", Value: filePath},
		logging.Field{Key: "count", Value: len(cfg.Categories)},
	).Debug("Loaded category keyword tables")

	return cfg.Categories, nil
}
