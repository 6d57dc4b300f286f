package types

import (
	"time"

	"github.com/google/uuid"
)

// IngredientInput is one ingredient row as submitted by a caller. Order in
// the submitted slice becomes the stored display order.
type IngredientInput struct {
	Name   string   `json:"name"`
	Amount *float64 `json:"amount,omitempty"`
	Unit   string   `json:"unit,omitempty"`
	Notes  string   `json:"notes,omitempty"`
}

// CreateRecipeRequest represents the request body for authoring a recipe
type CreateRecipeRequest struct {
	Title           string            `json:"title" binding:"required"`
	Description     string            `json:"description"`
	Difficulty      string            `json:"difficulty" binding:"required,oneof=easy medium hard"`
	PrepTimeMinutes int               `json:"prep_time_minutes" binding:"min=0"`
	CookTimeMinutes int               `json:"cook_time_minutes" binding:"min=0"`
	Servings        int               `json:"servings" binding:"required,min=1"`
	Instructions    []string          `json:"instructions" binding:"required"`
	Tips            string            `json:"tips"`
	ImageURL        string            `json:"image_url"`
	Ingredients     []IngredientInput `json:"ingredients"`
}

// RecipeEditRequest is a proposed edit to an existing recipe: the full set
// of content fields plus the replacement ingredient list. ChangeSummary is
// mandatory only when the edit touches a tracked content field.
type RecipeEditRequest struct {
	Title           string            `json:"title" binding:"required"`
	Description     string            `json:"description"`
	Difficulty      string            `json:"difficulty" binding:"required,oneof=easy medium hard"`
	PrepTimeMinutes int               `json:"prep_time_minutes" binding:"min=0"`
	CookTimeMinutes int               `json:"cook_time_minutes" binding:"min=0"`
	Servings        int               `json:"servings" binding:"required,min=1"`
	Instructions    []string          `json:"instructions" binding:"required"`
	Tips            string            `json:"tips"`
	ImageURL        string            `json:"image_url"`
	Ingredients     []IngredientInput `json:"ingredients"`
	ChangeSummary   string            `json:"change_summary"`
}

// ForkRecipeRequest represents the request body for forking a recipe
type ForkRecipeRequest struct {
	BranchName    string `json:"branch_name" binding:"required"`
	Modifications string `json:"modifications"`
}

// VersionSummary is one entry in a recipe's version history listing.
type VersionSummary struct {
	VersionNumber int       `json:"version_number"`
	ChangeSummary string    `json:"change_summary"`
	CreatedAt     time.Time `json:"created_at"`
}

// Requester identifies the caller of an ownership-sensitive operation. The
// engine treats it as opaque; the API layer fills it from token claims.
type Requester struct {
	ID   uuid.UUID
	Name string
}
