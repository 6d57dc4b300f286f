package testhelpers

import (
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plateful/backend/internal/models"
)

// CreateTestUser inserts a user row and returns it.
func CreateTestUser(t *testing.T, db *gorm.DB, name string) *models.User {
	t.Helper()
	user := &models.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        name + "@example.com",
		PasswordHash: "not-a-real-hash",
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestRecipe inserts a recipe at version 1 with a small ingredient
// list, owned by authorID (nil for anonymous).
func CreateTestRecipe(t *testing.T, db *gorm.DB, authorID *uuid.UUID, title string) *models.Recipe {
	t.Helper()
	recipe := &models.Recipe{
		ID:              uuid.New(),
		Title:           title,
		Description:     "A test recipe.",
		Difficulty:      models.DifficultyEasy,
		PrepTimeMinutes: 10,
		CookTimeMinutes: 20,
		Servings:        4,
		Instructions:    models.JSONBStringArray{"Chop everything.", "Cook it."},
		VersionNumber:   1,
		IsOriginal:      true,
		AuthorID:        authorID,
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}

	amount := 2.0
	ingredients := []models.Ingredient{
		{ID: uuid.New(), RecipeID: recipe.ID, Name: "tomatoes", Amount: &amount, Unit: "kg", OrderIndex: 0},
		{ID: uuid.New(), RecipeID: recipe.ID, Name: "salt", OrderIndex: 1},
	}
	if err := db.Create(&ingredients).Error; err != nil {
		t.Fatalf("failed to create test ingredients: %v", err)
	}
	return recipe
}
