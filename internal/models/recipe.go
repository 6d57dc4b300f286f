package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Difficulty levels a recipe can carry.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// Recipe is the live, mutable authored record. Content fields and
// version_number change only through the mutation path; forks link back to
// their source through ParentRecipeID.
type Recipe struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
	DeletedAt       gorm.DeletedAt   `gorm:"index" json:"-"`
	Title           string           `gorm:"size:255;not null" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	Difficulty      string           `gorm:"size:20;not null;default:'easy'" json:"difficulty"`
	PrepTimeMinutes int              `gorm:"not null;default:0" json:"prep_time_minutes"`
	CookTimeMinutes int              `gorm:"not null;default:0" json:"cook_time_minutes"`
	Servings        int              `gorm:"not null;default:1" json:"servings"`
	Instructions    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Tips            string           `gorm:"type:text" json:"tips"`
	ImageURL        string           `gorm:"size:255" json:"image_url"`
	VersionNumber   int              `gorm:"not null;default:1" json:"version_number"`
	ParentRecipeID  *uuid.UUID       `gorm:"type:uuid;index" json:"parent_recipe_id,omitempty"`
	BranchName      string           `gorm:"size:100" json:"branch_name,omitempty"`
	IsOriginal      bool             `gorm:"not null;default:true" json:"is_original"`
	AuthorID        *uuid.UUID       `gorm:"type:uuid;index" json:"author_id,omitempty"`
}

// Ingredient belongs to exactly one recipe. The set for a recipe is always
// replaced as a unit; individual rows are never updated in place.
type Ingredient struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	RecipeID   uuid.UUID `gorm:"type:uuid;not null;index" json:"recipe_id"`
	Name       string    `gorm:"size:255;not null" json:"name"`
	Amount     *float64  `json:"amount,omitempty"`
	Unit       string    `gorm:"size:50" json:"unit,omitempty"`
	Notes      string    `gorm:"type:text" json:"notes,omitempty"`
	OrderIndex int       `gorm:"not null;default:0" json:"order_index"`
}

// IngredientSnapshot is the shape an ingredient takes inside a version's
// JSONB copy. It deliberately has no row identity of its own.
type IngredientSnapshot struct {
	Name       string   `json:"name"`
	Amount     *float64 `json:"amount,omitempty"`
	Unit       string   `json:"unit,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	OrderIndex int      `json:"order_index"`
}

// JSONBIngredients stores a full ingredient list inside a JSONB column.
type JSONBIngredients []IngredientSnapshot

// Value implements the driver.Valuer interface
func (a JSONBIngredients) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBIngredients) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBIngredients{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// RecipeVersion is an immutable snapshot of a recipe's content and
// ingredients at one point in its edit history. Rows are only ever inserted.
type RecipeVersion struct {
	ID              uuid.UUID        `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt       time.Time        `json:"created_at"`
	RecipeID        uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex:idx_recipe_version" json:"recipe_id"`
	VersionNumber   int              `gorm:"not null;uniqueIndex:idx_recipe_version" json:"version_number"`
	Title           string           `gorm:"size:255;not null" json:"title"`
	Description     string           `gorm:"type:text" json:"description"`
	Difficulty      string           `gorm:"size:20;not null" json:"difficulty"`
	PrepTimeMinutes int              `gorm:"not null;default:0" json:"prep_time_minutes"`
	CookTimeMinutes int              `gorm:"not null;default:0" json:"cook_time_minutes"`
	Servings        int              `gorm:"not null;default:1" json:"servings"`
	Instructions    JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Tips            string           `gorm:"type:text" json:"tips"`
	ImageURL        string           `gorm:"size:255" json:"image_url"`
	Ingredients     JSONBIngredients `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	ChangeSummary   string           `gorm:"type:text;not null" json:"change_summary"`
}

// TableName specifies the table name for RecipeVersion
func (RecipeVersion) TableName() string {
	return "recipe_versions"
}
