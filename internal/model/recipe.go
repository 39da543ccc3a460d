package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pageza/recipe-wizard/backend/internal/recipe"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
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
		return fmt.Errorf("unsupported type %T for JSONBStringArray", value)
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a generated full recipe kept as wizard history.
type Recipe struct {
	ID            uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	CreatedAt     time.Time        `gorm:"index" json:"created_at"`
	SessionID     string           `gorm:"size:64;not null;index" json:"session_id"`
	Title         string           `gorm:"size:255;not null" json:"title"`
	Ingredients   JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Calories      *int             `json:"calories,omitempty"`
	Protein       *int             `json:"protein,omitempty"`
	Carbohydrates *int             `json:"carbohydrates,omitempty"`
	Fat           *int             `json:"fat,omitempty"`
}

// TableName keeps the table name stable across struct renames.
func (Recipe) TableName() string {
	return "recipe_history"
}

// BeforeCreate assigns an ID when the caller has not.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// NewRecipe builds a history row from a parsed recipe.
func NewRecipe(sessionID string, fr *recipe.FullRecipe) *Recipe {
	return &Recipe{
		SessionID:     sessionID,
		Title:         fr.Title,
		Ingredients:   JSONBStringArray(fr.Ingredients),
		Instructions:  JSONBStringArray(fr.Instructions),
		Calories:      fr.Nutrition.Calories,
		Protein:       fr.Nutrition.Protein,
		Carbohydrates: fr.Nutrition.Carbohydrates,
		Fat:           fr.Nutrition.Fat,
	}
}

// FullRecipe converts the row back to the domain value.
func (r *Recipe) FullRecipe() *recipe.FullRecipe {
	return &recipe.FullRecipe{
		Title:        r.Title,
		Ingredients:  append([]string{}, r.Ingredients...),
		Instructions: append([]string{}, r.Instructions...),
		Nutrition: recipe.Nutrition{
			Calories:      r.Calories,
			Protein:       r.Protein,
			Carbohydrates: r.Carbohydrates,
			Fat:           r.Fat,
		},
	}
}
