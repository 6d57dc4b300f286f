package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// defaultModificationsNote fills the attribution block when a forker gives
// no description of their planned changes.
const defaultModificationsNote = "Custom variation of the original recipe."

// ForkRecipe creates an independently owned copy of another user's recipe.
//
// The fork starts a fresh lineage: version 1, no snapshots, with a parent
// pointer back to the source. Content and ingredients are copied verbatim;
// the title gains the branch name and the description gains an attribution
// block naming the forker. Owners cannot fork their own recipes.
func (s *RecipeService) ForkRecipe(ctx context.Context, sourceID uuid.UUID, requester types.Requester, req *types.ForkRecipeRequest) (*models.Recipe, error) {
	source, err := s.GetRecipe(ctx, sourceID)
	if err != nil {
		return nil, err
	}

	if source.AuthorID != nil && *source.AuthorID == requester.ID {
		return nil, ErrSelfForkNotAllowed
	}

	branchName := strings.TrimSpace(req.BranchName)
	if branchName == "" {
		return nil, ErrBranchNameRequired
	}

	ingredients, err := s.GetIngredients(ctx, sourceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load source ingredients: %w", err)
	}

	note := strings.TrimSpace(req.Modifications)
	if note == "" {
		note = defaultModificationsNote
	}

	requesterID := requester.ID
	fork := &models.Recipe{
		ID:              uuid.New(),
		Title:           fmt.Sprintf("%s - %s", source.Title, branchName),
		Description:     fmt.Sprintf("%s\n\n--- %s's Variation ---\n%s", source.Description, requester.Name, note),
		Difficulty:      source.Difficulty,
		PrepTimeMinutes: source.PrepTimeMinutes,
		CookTimeMinutes: source.CookTimeMinutes,
		Servings:        source.Servings,
		Instructions:    source.Instructions,
		Tips:            source.Tips,
		ImageURL:        source.ImageURL,
		VersionNumber:   1,
		ParentRecipeID:  &source.ID,
		BranchName:      branchName,
		IsOriginal:      false,
		AuthorID:        &requesterID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(fork).Error; err != nil {
			return fmt.Errorf("failed to create forked recipe: %w", err)
		}

		if len(ingredients) == 0 {
			return nil
		}
		copies := make([]models.Ingredient, len(ingredients))
		for i, ing := range ingredients {
			copies[i] = models.Ingredient{
				ID:         uuid.New(),
				RecipeID:   fork.ID,
				Name:       ing.Name,
				Amount:     ing.Amount,
				Unit:       ing.Unit,
				Notes:      ing.Notes,
				OrderIndex: ing.OrderIndex,
			}
		}
		if err := tx.Create(&copies).Error; err != nil {
			return fmt.Errorf("failed to copy ingredients: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[RecipeService] recipe %s forked as %s (branch %q)", source.ID, fork.ID, branchName)
	return fork, nil
}
