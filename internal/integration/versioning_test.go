package integration

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/testhelpers"
	"github.com/plateful/backend/internal/types"
)

// Exercises the whole edit/fork/navigate lifecycle against real PostgreSQL,
// including the jsonb snapshot columns and the unique (recipe_id,
// version_number) index that the sqlite unit tests only approximate.
func TestRecipeLifecyclePostgres(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-based test in short mode")
	}

	db := testhelpers.SetupPostgresDB(t)
	recipeService := service.NewRecipeService(db)
	authService := service.NewAuthService(db, "test-secret")
	ctx := context.Background()

	aliceToken, err := authService.Register("alice", "alice@example.com", "password123")
	require.NoError(t, err)
	aliceClaims, err := authService.ValidateToken(aliceToken)
	require.NoError(t, err)

	bobToken, err := authService.Register("bob", "bob@example.com", "password123")
	require.NoError(t, err)
	bobClaims, err := authService.ValidateToken(bobToken)
	require.NoError(t, err)

	amount := 800.0
	recipe, err := recipeService.CreateRecipe(ctx, &aliceClaims.UserID, &types.CreateRecipeRequest{
		Title:           "Tomato Soup",
		Description:     "A simple soup.",
		Difficulty:      "easy",
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
	require.Equal(t, 1, recipe.VersionNumber)

	// First significant edit: version 1 and 2 both become navigable
	updated, err := recipeService.ApplyEdit(ctx, recipe.ID, &types.RecipeEditRequest{
		Title:           recipe.Title,
		Description:     recipe.Description,
		Difficulty:      recipe.Difficulty,
		PrepTimeMinutes: recipe.PrepTimeMinutes,
		CookTimeMinutes: recipe.CookTimeMinutes,
		Servings:        6,
		Instructions:    recipe.Instructions,
		ChangeSummary:   "Doubled for family dinner",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, updated.VersionNumber)

	// Second significant edit: the pre-edit snapshot for version 2 already
	// exists and must be deduplicated, not duplicated or rejected.
	updated2, err := recipeService.ApplyEdit(ctx, recipe.ID, &types.RecipeEditRequest{
		Title:           "Roasted Tomato Soup",
		Description:     updated.Description,
		Difficulty:      updated.Difficulty,
		PrepTimeMinutes: updated.PrepTimeMinutes,
		CookTimeMinutes: updated.CookTimeMinutes,
		Servings:        updated.Servings,
		Instructions:    updated.Instructions,
		ChangeSummary:   "Roast the tomatoes first",
	})
	require.NoError(t, err)
	assert.Equal(t, 3, updated2.VersionNumber)

	versions, err := recipeService.ListVersions(ctx, recipe.ID)
	require.NoError(t, err)
	require.Len(t, versions, 3)
	assert.Equal(t, "Version 1 - Original", versions[0].ChangeSummary)
	assert.Equal(t, "Doubled for family dinner", versions[1].ChangeSummary)
	assert.Equal(t, "Roast the tomatoes first", versions[2].ChangeSummary)

	v1, err := recipeService.GetVersion(ctx, recipe.ID, 1)
	require.NoError(t, err)
	require.NotNil(t, v1)
	assert.Equal(t, 4, v1.Servings)
	require.Len(t, v1.Ingredients, 2)
	assert.Equal(t, "canned tomatoes", v1.Ingredients[0].Name)

	// Fork as bob and verify lineage
	fork, err := recipeService.ForkRecipe(ctx, recipe.ID,
		types.Requester{ID: bobClaims.UserID, Name: bobClaims.Username},
		&types.ForkRecipeRequest{BranchName: "Spicy Version", Modifications: "Added chili."})
	require.NoError(t, err)
	assert.Equal(t, "Roasted Tomato Soup - Spicy Version", fork.Title)
	assert.Equal(t, 1, fork.VersionNumber)
	require.NotNil(t, fork.ParentRecipeID)
	assert.Equal(t, recipe.ID, *fork.ParentRecipeID)

	forkVersions, err := recipeService.ListVersions(ctx, fork.ID)
	require.NoError(t, err)
	assert.Empty(t, forkVersions)

	forkIngredients, err := recipeService.GetIngredients(ctx, fork.ID)
	require.NoError(t, err)
	require.Len(t, forkIngredients, 2)

	// The fork edits independently of its source
	_, err = recipeService.ApplyEdit(ctx, fork.ID, &types.RecipeEditRequest{
		Title:           fork.Title,
		Description:     fork.Description,
		Difficulty:      fork.Difficulty,
		PrepTimeMinutes: fork.PrepTimeMinutes,
		CookTimeMinutes: fork.CookTimeMinutes,
		Servings:        2,
		Instructions:    fork.Instructions,
		ChangeSummary:   "Scaled down",
	})
	require.NoError(t, err)

	source, err := recipeService.GetRecipe(ctx, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, source.VersionNumber)
	assert.Equal(t, 6, source.Servings)
}
