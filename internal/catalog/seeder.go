package catalog

import (
	"career_advisor_backend/internal/repository"
	"career_advisor_backend/pkg/logger"

	"go.uber.org/zap"
)

// Seed loads, validates and writes the catalog. Existing rows are updated in
// place so career ids stay stable across restarts.
func Seed(repo *repository.CatalogRepository, path string, strict bool) (*Catalog, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(strict); err != nil {
		return nil, err
	}
	if err := repo.UpsertCatalog(c.Careers, c.Skills); err != nil {
		return nil, err
	}

	logger.Log.Info("catalog seeded",
		zap.Int("careers", len(c.Careers)),
		zap.Int("skills", len(c.Skills)),
		zap.Int("dangling_refs", len(c.Dangling())),
	)
	return c, nil
}
