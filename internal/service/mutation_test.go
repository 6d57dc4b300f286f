package service

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/testhelpers"
	"github.com/plateful/backend/internal/types"
)

func newTomatoSoup(t *testing.T, svc *RecipeService) *models.Recipe {
	t.Helper()
	amount := 800.0
	recipe, err := svc.CreateRecipe(context.Background(), nil, &types.CreateRecipeRequest{
		Title:           "Tomato Soup",
		Description:     "A simple soup.",
		Difficulty:      models.DifficultyEasy,
		PrepTimeMinutes: 10,
		CookTimeMinutes: 25,
		Servings:        4,
		Instructions:    []string{"Chop.", "Simmer.", "Blend."},
		Ingredients: []types.IngredientInput{
			{Name: "canned tomatoes", Amount: &amount, Unit: "g"},
			{Name: "onion"},
		},
	})
	require.NoError(t, err)
	return recipe
}

func editDraftFor(recipe *models.Recipe) *types.RecipeEditRequest {
	return &types.RecipeEditRequest{
		Title:           recipe.Title,
		Description:     recipe.Description,
		Difficulty:      recipe.Difficulty,
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Servings:        recipe.Servings,
		Instructions:    append([]string(nil), recipe.Instructions...),
		Tips:            recipe.Tips,
		ImageURL:        recipe.ImageURL,
	}
}

func TestApplyEditSignificantBumpsVersion(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipe := newTomatoSoup(t, svc)

	draft := editDraftFor(recipe)
	draft.Servings = 6
	draft.ChangeSummary = "Doubled for family dinner"
	amount := 1600.0
	draft.Ingredients = []types.IngredientInput{
		{Name: "canned tomatoes", Amount: &amount, Unit: "g"},
		{Name: "onion"},
	}

	updated, err := svc.ApplyEdit(ctx, recipe.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, 2, updated.VersionNumber)
	assert.Equal(t, 6, updated.Servings)

	v1, err := svc.GetVersion(ctx, recipe.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, v1)
	assert.Equal(t, 4, v1.Servings)
	assert.Equal(t, "Version 1 - Original", v1.ChangeSummary)
	require.Len(t, v1.Ingredients, 2)
	assert.Equal(t, "canned tomatoes", v1.Ingredients[0].Name)

	v2, err := svc.GetVersion(ctx, recipe.ID, 2)
	require.NoError(t, err)
	require.NotNil(t, v2)
	assert.Equal(t, 6, v2.Servings)
	assert.Equal(t, "Doubled for family dinner", v2.ChangeSummary)

	versions, err := svc.ListVersions(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, 1, versions[0].VersionNumber)
	assert.Equal(t, 2, versions[1].VersionNumber)
}

func TestApplyEditSignificantRequiresSummary(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipe := newTomatoSoup(t, svc)

	draft := editDraftFor(recipe)
	draft.Servings = 6
	draft.ChangeSummary = "   "

	_, err := svc.ApplyEdit(ctx, recipe.ID, draft)
	assert.ErrorIs(t, err, ErrChangeSummaryRequired)

	// Nothing may have been written
	stored, err := svc.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, stored.VersionNumber)
	assert.Equal(t, 4, stored.Servings)

	versions, err := svc.ListVersions(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, versions)
}

func TestApplyEditNonSignificantKeepsVersion(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipe := newTomatoSoup(t, svc)

	// Ingredient-only change, no summary supplied
	draft := editDraftFor(recipe)
	amount := 400.0
	draft.Ingredients = []types.IngredientInput{
		{Name: "cherry tomatoes", Amount: &amount, Unit: "g"},
		{Name: "shallot", Notes: "instead of onion"},
		{Name: "   "},
	}

	updated, err := svc.ApplyEdit(ctx, recipe.ID, draft)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.VersionNumber)

	versions, err := svc.ListVersions(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, versions)

	ingredients, err := svc.GetIngredients(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, ingredients, 2, "blank-name entries are dropped")
	assert.Equal(t, "cherry tomatoes", ingredients[0].Name)
	assert.Equal(t, 0, ingredients[0].OrderIndex)
	assert.Equal(t, "shallot", ingredients[1].Name)
	assert.Equal(t, 1, ingredients[1].OrderIndex)
}

func TestApplyEditNotFound(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)

	_, err := svc.ApplyEdit(context.Background(), uuid.New(), &types.RecipeEditRequest{Title: "x"})
	assert.ErrorIs(t, err, ErrRecipeNotFound)
}

func TestApplyEditSecondSignificantEdit(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipe := newTomatoSoup(t, svc)

	draft := editDraftFor(recipe)
	draft.Servings = 6
	draft.ChangeSummary = "Doubled for family dinner"
	updated, err := svc.ApplyEdit(ctx, recipe.ID, draft)
	require.NoError(t, err)

	// Version 2 already exists as the previous post-edit snapshot; the
	// second edit must not trip over it.
	draft2 := editDraftFor(updated)
	draft2.Title = "Roasted Tomato Soup"
	draft2.ChangeSummary = "Roast the tomatoes first"
	updated2, err := svc.ApplyEdit(ctx, recipe.ID, draft2)
	require.NoError(t, err)
	assert.Equal(t, 3, updated2.VersionNumber)

	versions, err := svc.ListVersions(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "Doubled for family dinner", versions[1].ChangeSummary)
	assert.Equal(t, "Roast the tomatoes first", versions[2].ChangeSummary)
}

func TestApplyEditVersionConflict(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	svc := NewRecipeService(db)
	ctx := context.Background()

	recipe := newTomatoSoup(t, svc)

	// Simulate a concurrent edit landing between ApplyEdit's read and its
	// write: a one-shot query hook bumps the stored version number right
	// after the first recipe load.
	var once sync.Once
	err := db.Callback().Query().After("gorm:query").Register("test:concurrent_bump", func(tx *gorm.DB) {
		if tx.Statement.Table != "recipes" {
			return
		}
		once.Do(func() {
			if err := db.Session(&gorm.Session{NewDB: true, SkipHooks: true}).
				Exec("UPDATE recipes SET version_number = version_number + 1 WHERE id = ?", recipe.ID).Error; err != nil {
				t.Errorf("failed to bump version: %v", err)
			}
		})
	})
	require.NoError(t, err)

	stale := editDraftFor(recipe)
	stale.Servings = 8
	stale.ChangeSummary = "Feeds a crowd"

	_, err = svc.ApplyEdit(ctx, recipe.ID, stale)
	assert.ErrorIs(t, err, ErrVersionConflict)

	require.NoError(t, db.Callback().Query().Remove("test:concurrent_bump"))

	stored, err := svc.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, stored.Servings, "stale edit must not overwrite content")
	versions, err := svc.ListVersions(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, versions, "rolled-back edit must not leave snapshots behind")
}
