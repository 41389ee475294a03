package nutrition

import (
	"context"
	"errors"
)

// NutritionalInfo holds macro/micro values per 100 grams of a food.
type NutritionalInfo struct {
	Calories float64            `json:"calories"`
	Protein  float64            `json:"protein"`
	Carbs    float64            `json:"carbs"`
	Fat      float64            `json:"fat"`
	Fiber    float64            `json:"fiber"`
	Vitamins map[string]float64 `json:"vitamins,omitempty"`
	Minerals map[string]float64 `json:"minerals,omitempty"`
}

// ErrFoodNotFound indicates the nutrition source has no entry for a food.
var ErrFoodNotFound = errors.New("nutrition: food not found")

// Lookup is the query contract of the external nutrition database. Values
// are per 100g; callers scale to portion grams.
type Lookup interface {
	LookupFood(ctx context.Context, name string) (NutritionalInfo, error)
}
