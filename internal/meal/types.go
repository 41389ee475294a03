package meal

import (
	"fmt"
	"time"

	"github.com/poshanai/khana-ai-platform/internal/cultural"
	"github.com/poshanai/khana-ai-platform/internal/nutrition"
)

// MealType classifies a meal by time of day.
type MealType string

const (
	MealTypeBreakfast MealType = "breakfast"
	MealTypeLunch     MealType = "lunch"
	MealTypeSnack     MealType = "snack"
	MealTypeDinner    MealType = "dinner"
)

// MealTypes lists every variant; the enum↔string mapping is tested for
// completeness.
func MealTypes() []MealType {
	return []MealType{MealTypeBreakfast, MealTypeLunch, MealTypeSnack, MealTypeDinner}
}

// ParseMealType resolves the canonical string of a meal type.
func ParseMealType(raw string) (MealType, error) {
	switch MealType(raw) {
	case MealTypeBreakfast, MealTypeLunch, MealTypeSnack, MealTypeDinner:
		return MealType(raw), nil
	}
	return "", fmt.Errorf("meal: unknown meal type %q", raw)
}

// DeriveMealType buckets a timestamp by local hour: 6–11 breakfast, 11–16
// lunch, 16–19 snack, everything else dinner.
func DeriveMealType(t time.Time) MealType {
	hour := t.Hour()
	switch {
	case hour >= 6 && hour < 11:
		return MealTypeBreakfast
	case hour >= 11 && hour < 16:
		return MealTypeLunch
	case hour >= 16 && hour < 19:
		return MealTypeSnack
	default:
		return MealTypeDinner
	}
}

// DetailedFoodItem is one extracted item with its resolved portion, cooking
// method, and per-portion nutrition.
type DetailedFoodItem struct {
	Name          string                    `json:"name"`
	OriginalText  string                    `json:"original_text"`
	Portion       cultural.PortionSize      `json:"portion"`
	CookingMethod cultural.CookingMethod    `json:"cooking_method"`
	Nutrition     nutrition.NutritionalInfo `json:"nutrition"`
	Confidence    float64                   `json:"confidence"`
}

// NutritionalSummary aggregates a meal's items. Macro percentages use the
// 4/4/9 kcal-per-gram constants for protein/carbs/fat.
type NutritionalSummary struct {
	TotalCalories float64 `json:"total_calories"`
	TotalProtein  float64 `json:"total_protein"`
	TotalCarbs    float64 `json:"total_carbs"`
	TotalFat      float64 `json:"total_fat"`
	TotalFiber    float64 `json:"total_fiber"`

	ProteinPercent float64 `json:"protein_percent"`
	CarbsPercent   float64 `json:"carbs_percent"`
	FatPercent     float64 `json:"fat_percent"`
}

// MealData is one fully resolved meal record. Immutable after creation;
// durable storage belongs to the persistence collaborator.
type MealData struct {
	ID              string             `json:"id"`
	UserID          string             `json:"user_id"`
	Timestamp       time.Time          `json:"timestamp"`
	MealType        MealType           `json:"meal_type"`
	Items           []DetailedFoodItem `json:"items"`
	Summary         NutritionalSummary `json:"summary"`
	SourceUtterance string             `json:"source_utterance"`
	ConfidenceScore float64            `json:"confidence_score"`
}
