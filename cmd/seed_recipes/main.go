package main

import (
	"context"
	"log"

	"github.com/plateful/backend/config"
	"github.com/plateful/backend/internal/database"
	"github.com/plateful/backend/internal/service"
	"github.com/plateful/backend/internal/types"
)

func f(v float64) *float64 { return &v }

var seedRecipes = []types.CreateRecipeRequest{
	{
		Title:           "Tomato Soup",
		Description:     "A simple, comforting tomato soup.",
		Difficulty:      "easy",
		PrepTimeMinutes: 10,
		CookTimeMinutes: 25,
		Servings:        4,
		Instructions: []string{
			"Sweat the onion and garlic in olive oil.",
			"Add the tomatoes and stock, simmer for 20 minutes.",
			"Blend until smooth and season to taste.",
		},
		Tips: "A splash of cream rounds out the acidity.",
		Ingredients: []types.IngredientInput{
			{Name: "canned tomatoes", Amount: f(800), Unit: "g"},
			{Name: "onion", Amount: f(1)},
			{Name: "garlic", Amount: f(2), Unit: "cloves"},
			{Name: "vegetable stock", Amount: f(500), Unit: "ml"},
		},
	},
	{
		Title:           "Mushroom Risotto",
		Description:     "Creamy risotto with mixed mushrooms.",
		Difficulty:      "medium",
		PrepTimeMinutes: 15,
		CookTimeMinutes: 35,
		Servings:        2,
		Instructions: []string{
			"Saute the mushrooms and set aside.",
			"Toast the rice, then add stock one ladle at a time.",
			"Fold in the mushrooms, butter and parmesan.",
		},
		Ingredients: []types.IngredientInput{
			{Name: "arborio rice", Amount: f(200), Unit: "g"},
			{Name: "mixed mushrooms", Amount: f(250), Unit: "g"},
			{Name: "chicken stock", Amount: f(1), Unit: "l"},
			{Name: "parmesan", Amount: f(50), Unit: "g", Notes: "finely grated"},
		},
	},
	{
		Title:           "Shakshuka",
		Description:     "Eggs poached in a spiced tomato and pepper sauce.",
		Difficulty:      "easy",
		PrepTimeMinutes: 10,
		CookTimeMinutes: 20,
		Servings:        2,
		Instructions: []string{
			"Soften the peppers and onion, add spices.",
			"Add tomatoes and reduce to a thick sauce.",
			"Crack in the eggs, cover and cook until just set.",
		},
		Ingredients: []types.IngredientInput{
			{Name: "eggs", Amount: f(4)},
			{Name: "red peppers", Amount: f(2)},
			{Name: "canned tomatoes", Amount: f(400), Unit: "g"},
			{Name: "ground cumin", Amount: f(1), Unit: "tsp"},
		},
	},
}

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	recipeService := service.NewRecipeService(db)
	ctx := context.Background()

	for i := range seedRecipes {
		recipe, err := recipeService.CreateRecipe(ctx, nil, &seedRecipes[i])
		if err != nil {
			log.Fatalf("Failed to seed recipe %q: %v", seedRecipes[i].Title, err)
		}
		log.Printf("Seeded recipe %q as %s", recipe.Title, recipe.ID)
	}
}
