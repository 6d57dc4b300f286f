package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// ListVersions returns the recipe's snapshot history, oldest first. A recipe
// that has never had a significant edit has no snapshots to list.
func (s *RecipeService) ListVersions(ctx context.Context, recipeID uuid.UUID) ([]types.VersionSummary, error) {
	var versions []models.RecipeVersion
	if err := s.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("version_number ASC").
		Find(&versions).Error; err != nil {
		return nil, err
	}

	summaries := make([]types.VersionSummary, len(versions))
	for i, v := range versions {
		summaries[i] = types.VersionSummary{
			VersionNumber: v.VersionNumber,
			ChangeSummary: v.ChangeSummary,
			CreatedAt:     v.CreatedAt,
		}
	}
	return summaries, nil
}

// GetVersion returns one historical snapshot, or nil if that version was
// never snapshotted. Reading a version never touches the live row.
func (s *RecipeService) GetVersion(ctx context.Context, recipeID uuid.UUID, versionNumber int) (*models.RecipeVersion, error) {
	var version models.RecipeVersion
	err := s.db.WithContext(ctx).
		Where("recipe_id = ? AND version_number = ?", recipeID, versionNumber).
		First(&version).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &version, nil
}
