package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

var (
	// ErrRecipeNotFound is returned when the requested recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")
	// ErrChangeSummaryRequired is returned when a significant edit carries no
	// change summary. Nothing is written in that case.
	ErrChangeSummaryRequired = errors.New("change summary required for significant edits")
	// ErrVersionConflict is returned when the recipe was edited concurrently:
	// the version number read at the start of the edit no longer matches the
	// stored row. The caller should reload and retry.
	ErrVersionConflict = errors.New("recipe was modified concurrently")
	// ErrSelfForkNotAllowed is returned when a user tries to fork their own
	// recipe; the edit path is the right tool for that.
	ErrSelfForkNotAllowed = errors.New("cannot fork your own recipe")
	// ErrBranchNameRequired is returned when a fork request has no branch name.
	ErrBranchNameRequired = errors.New("branch name required")
)

// RecipeService handles recipe authoring, versioned edits, forks and
// version-history reads.
type RecipeService struct {
	db *gorm.DB
}

// Ensure RecipeService implements IRecipeService
var _ IRecipeService = (*RecipeService)(nil)

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// CreateRecipe authors a new original recipe at version 1 together with its
// ingredient list.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID *uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	recipe := &models.Recipe{
		ID:              uuid.New(),
		Title:           req.Title,
		Description:     req.Description,
		Difficulty:      req.Difficulty,
		PrepTimeMinutes: req.PrepTimeMinutes,
		CookTimeMinutes: req.CookTimeMinutes,
		Servings:        req.Servings,
		Instructions:    models.JSONBStringArray(nonEmptySteps(req.Instructions)),
		Tips:            req.Tips,
		ImageURL:        req.ImageURL,
		VersionNumber:   1,
		IsOriginal:      true,
		AuthorID:        authorID,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(recipe).Error; err != nil {
			return fmt.Errorf("failed to create recipe: %w", err)
		}
		if err := insertIngredients(tx, recipe.ID, req.Ingredients); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe retrieves the live recipe row by ID
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// GetIngredients retrieves a recipe's ingredient list in display order
func (s *RecipeService) GetIngredients(ctx context.Context, recipeID uuid.UUID) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	if err := s.db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Order("order_index").
		Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// ListRecipesByAuthor lists recipes owned by a user
func (s *RecipeService) ListRecipesByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Recipe, error) {
	var recipes []models.Recipe
	if err := s.db.WithContext(ctx).Where("author_id = ?", authorID).Find(&recipes).Error; err != nil {
		return nil, err
	}
	result := make([]*models.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// insertIngredients bulk-inserts an ingredient list under a recipe id.
// Entries with an empty name are dropped; display order follows the
// submitted order of what remains.
func insertIngredients(tx *gorm.DB, recipeID uuid.UUID, inputs []types.IngredientInput) error {
	rows := make([]models.Ingredient, 0, len(inputs))
	for _, in := range inputs {
		if strings.TrimSpace(in.Name) == "" {
			continue
		}
		rows = append(rows, models.Ingredient{
			ID:         uuid.New(),
			RecipeID:   recipeID,
			Name:       in.Name,
			Amount:     in.Amount,
			Unit:       in.Unit,
			Notes:      in.Notes,
			OrderIndex: len(rows),
		})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := tx.Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to insert ingredients: %w", err)
	}
	return nil
}

// nonEmptySteps drops blank instruction steps before storage.
func nonEmptySteps(steps []string) []string {
	out := make([]string, 0, len(steps))
	for _, s := range steps {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}
