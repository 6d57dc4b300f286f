package service

import (
	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// IsSignificantChange reports whether a proposed edit differs from the
// stored recipe in any tracked content field: title, description,
// difficulty, prep time, cook time, servings, image, tips, or the ordered
// instruction list.
//
// Ingredient changes are deliberately not considered: tweaking amounts or
// swapping an ingredient is treated as free editing and never creates a new
// version.
func IsSignificantChange(stored *models.Recipe, draft *types.RecipeEditRequest) bool {
	if stored == nil || draft == nil {
		return false
	}
	return draft.Title != stored.Title ||
		draft.Description != stored.Description ||
		draft.Difficulty != stored.Difficulty ||
		draft.PrepTimeMinutes != stored.PrepTimeMinutes ||
		draft.CookTimeMinutes != stored.CookTimeMinutes ||
		draft.Servings != stored.Servings ||
		draft.ImageURL != stored.ImageURL ||
		draft.Tips != stored.Tips ||
		!equalSteps(draft.Instructions, stored.Instructions)
}

// equalSteps compares instruction lists as ordered sequences.
func equalSteps(a []string, b models.JSONBStringArray) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
