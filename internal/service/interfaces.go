package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/plateful/backend/internal/models"
	"github.com/plateful/backend/internal/types"
)

// IRecipeService defines the interface for recipe authoring, versioned
// edits, forks and version-history reads
type IRecipeService interface {
	CreateRecipe(ctx context.Context, authorID *uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error)
	GetIngredients(ctx context.Context, recipeID uuid.UUID) ([]models.Ingredient, error)
	ListRecipesByAuthor(ctx context.Context, authorID uuid.UUID) ([]*models.Recipe, error)
	ApplyEdit(ctx context.Context, recipeID uuid.UUID, draft *types.RecipeEditRequest) (*models.Recipe, error)
	ForkRecipe(ctx context.Context, sourceID uuid.UUID, requester types.Requester, req *types.ForkRecipeRequest) (*models.Recipe, error)
	ListVersions(ctx context.Context, recipeID uuid.UUID) ([]types.VersionSummary, error)
	GetVersion(ctx context.Context, recipeID uuid.UUID, versionNumber int) (*models.RecipeVersion, error)
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(name, email, password string) (string, error)
	Login(email, password string) (string, error)
	GetUser(id uuid.UUID) (*models.User, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}
