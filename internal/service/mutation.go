package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// ApplyEdit applies a proposed edit to a recipe.
//
// Significant edits (see IsSignificantChange) require a change summary and
// produce two immutable snapshots: the superseded version under its current
// number and the new content under the bumped number. Non-significant edits
// update content in place without touching the version history. In both
// cases the ingredient set is replaced wholesale with the submitted list.
//
// All writes run in a single transaction, and the live-row update is
// conditional on the version number read at the start; a concurrent edit
// surfaces as ErrVersionConflict with nothing written.
func (s *RecipeService) ApplyEdit(ctx context.Context, recipeID uuid.UUID, draft *types.RecipeEditRequest) (*models.Recipe, error) {
	recipe, err := s.GetRecipe(ctx, recipeID)
	if err != nil {
		return nil, err
	}

	significant := IsSignificantChange(recipe, draft)
	if significant && strings.TrimSpace(draft.ChangeSummary) == "" {
		return nil, ErrChangeSummaryRequired
	}

	newVersion := recipe.VersionNumber
	if significant {
		newVersion++
	}

	instructions := models.JSONBStringArray(nonEmptySteps(draft.Instructions))

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if significant {
			var ingredients []models.Ingredient
			if err := tx.Where("recipe_id = ?", recipeID).
				Order("order_index").
				Find(&ingredients).Error; err != nil {
				return fmt.Errorf("failed to load current ingredients: %w", err)
			}

			// Snapshot the superseded state under its current number
			pre := &models.RecipeVersion{
				ID:              uuid.New(),
				RecipeID:        recipe.ID,
				VersionNumber:   recipe.VersionNumber,
				Title:           recipe.Title,
				Description:     recipe.Description,
				Difficulty:      recipe.Difficulty,
				PrepTimeMinutes: recipe.PrepTimeMinutes,
				CookTimeMinutes: recipe.CookTimeMinutes,
				Servings:        recipe.Servings,
				Instructions:    recipe.Instructions,
				Tips:            recipe.Tips,
				ImageURL:        recipe.ImageURL,
				Ingredients:     snapshotRows(ingredients),
				ChangeSummary:   fmt.Sprintf("Version %d - Original", recipe.VersionNumber),
			}
			// The previous edit already snapshotted this version as its
			// post-edit state; don't duplicate the row in that case.
			if err := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "recipe_id"}, {Name: "version_number"}},
				DoNothing: true,
			}).Create(pre).Error; err != nil {
				return fmt.Errorf("failed to write version snapshot: %w", err)
			}

			// Snapshot the new state under the bumped number. The live row
			// carries the same content; keeping both queryable matches what
			// audit views expect.
			post := &models.RecipeVersion{
				ID:              uuid.New(),
				RecipeID:        recipe.ID,
				VersionNumber:   newVersion,
				Title:           draft.Title,
				Description:     draft.Description,
				Difficulty:      draft.Difficulty,
				PrepTimeMinutes: draft.PrepTimeMinutes,
				CookTimeMinutes: draft.CookTimeMinutes,
				Servings:        draft.Servings,
				Instructions:    instructions,
				Tips:            draft.Tips,
				ImageURL:        draft.ImageURL,
				Ingredients:     snapshotInputs(draft.Ingredients),
				ChangeSummary:   draft.ChangeSummary,
			}
			if err := tx.Create(post).Error; err != nil {
				return fmt.Errorf("failed to write version snapshot: %w", err)
			}
		}

		// Conditional update guards against a concurrent edit that landed
		// after our read.
		res := tx.Model(&models.Recipe{}).
			Where("id = ? AND version_number = ?", recipe.ID, recipe.VersionNumber).
			Updates(map[string]interface{}{
				"title":             draft.Title,
				"description":       draft.Description,
				"difficulty":        draft.Difficulty,
				"prep_time_minutes": draft.PrepTimeMinutes,
				"cook_time_minutes": draft.CookTimeMinutes,
				"servings":          draft.Servings,
				"instructions":      instructions,
				"tips":              draft.Tips,
				"image_url":         draft.ImageURL,
				"version_number":    newVersion,
			})
		if res.Error != nil {
			return fmt.Errorf("failed to update recipe: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrVersionConflict
		}

		// Replace the ingredient set as a unit
		if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.Ingredient{}).Error; err != nil {
			return fmt.Errorf("failed to clear ingredients: %w", err)
		}
		if err := insertIngredients(tx, recipe.ID, draft.Ingredients); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if significant {
		log.Printf("[RecipeService] recipe %s advanced to version %d", recipe.ID, newVersion)
	}

	return s.GetRecipe(ctx, recipeID)
}

// snapshotRows copies stored ingredient rows into snapshot form.
func snapshotRows(rows []models.Ingredient) models.JSONBIngredients {
	out := make(models.JSONBIngredients, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.IngredientSnapshot{
			Name:       r.Name,
			Amount:     r.Amount,
			Unit:       r.Unit,
			Notes:      r.Notes,
			OrderIndex: r.OrderIndex,
		})
	}
	return out
}

// snapshotInputs copies submitted ingredients into snapshot form, applying
// the same empty-name filtering and ordering as the stored set.
func snapshotInputs(inputs []types.IngredientInput) models.JSONBIngredients {
	out := make(models.JSONBIngredients, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Name) == "" {
			continue
		}
		out = append(out, models.IngredientSnapshot{
			Name:       in.Name,
			Amount:     in.Amount,
			Unit:       in.Unit,
			Notes:      in.Notes,
			OrderIndex: len(out),
		})
	}
	return out
}
