package meal

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/poshanai/khana-ai-platform/internal/cultural"
	"github.com/poshanai/khana-ai-platform/internal/extraction"
	"github.com/poshanai/khana-ai-platform/internal/nutrition"
	"github.com/poshanai/khana-ai-platform/pkg/logging"
)

var assemblerTracer = otel.Tracer("khana/meal")

// Per-gram calorie constants for macro percentage breakdown.
const (
	kcalPerGramProtein = 4.0
	kcalPerGramCarbs   = 4.0
	kcalPerGramFat     = 9.0
)

// ErrNotUnderstood indicates no extracted item resolved against the
// nutrition source. It is a first-class outcome, distinct from the
// ambiguity path, and surfaces to the user as a request to rephrase.
var ErrNotUnderstood = errors.New("meal: not understood")

// Assembler combines extracted items, cultural resolution, and nutrition
// lookups into a complete meal record.
type Assembler struct {
	lookup nutrition.Lookup
	logger *logging.Logger
	tracer trace.Tracer
	now    func() time.Time
}

// AssemblerConfig configures meal assembly.
type AssemblerConfig struct {
	Lookup nutrition.Lookup
	Logger *logging.Logger
	// Now overrides the clock (for meal-type bucket tests).
	Now func() time.Time
}

// NewAssembler creates a meal assembler.
func NewAssembler(cfg AssemblerConfig) *Assembler {
	if cfg.Lookup == nil {
		panic("meal: nutrition lookup cannot be nil")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Assembler{
		lookup: cfg.Lookup,
		logger: logger,
		tracer: assemblerTracer,
		now:    now,
	}
}

// Assemble resolves every extracted item and aggregates the meal. Items
// whose nutrition lookup fails degrade individually; the meal only fails
// with ErrNotUnderstood when no item resolves at all (including the case
// of zero extracted items).
func (a *Assembler) Assemble(ctx context.Context, utterance, userID string, items []extraction.ExtractedFoodItem) (*MealData, error) {
	ctx, span := a.tracer.Start(ctx, "meal.assemble")
	defer span.End()

	var resolved []DetailedFoodItem
	for _, item := range items {
		detailed, err := a.resolveItem(ctx, item)
		if err != nil {
			span.RecordError(err)
			a.logger.Warn("food item degraded to unresolved",
				"food", item.Name,
				"error", err,
			)
			continue
		}
		resolved = append(resolved, detailed)
	}

	if len(resolved) == 0 {
		span.SetAttributes(attribute.Bool("meal.not_understood", true))
		return nil, ErrNotUnderstood
	}

	timestamp := a.now()
	data := &MealData{
		ID:              uuid.NewString(),
		UserID:          userID,
		Timestamp:       timestamp,
		MealType:        DeriveMealType(timestamp),
		Items:           resolved,
		Summary:         summarize(resolved),
		SourceUtterance: utterance,
		ConfidenceScore: meanItemConfidence(resolved),
	}

	span.SetAttributes(
		attribute.Int("meal.items", len(resolved)),
		attribute.String("meal.type", string(data.MealType)),
		attribute.Float64("meal.confidence", data.ConfidenceScore),
	)
	return data, nil
}

// resolveItem estimates the portion, fixes the cooking method, and scales
// per-100g nutrition to the portion. The cooking multiplier applies to
// calories and fat only; protein, carbs, fiber, vitamins, and minerals
// pass through unscaled.
func (a *Assembler) resolveItem(ctx context.Context, item extraction.ExtractedFoodItem) (DetailedFoodItem, error) {
	portion := cultural.EstimatePortion(item.Name, portionDescription(item))
	method := cultural.MethodByName(item.CookingMethod)

	per100, err := a.lookup.LookupFood(ctx, item.Name)
	if err != nil {
		return DetailedFoodItem{}, fmt.Errorf("meal: lookup %s: %w", item.Name, err)
	}

	scale := portion.Quantity / 100.0
	scaled := nutrition.NutritionalInfo{
		Calories: per100.Calories * scale * method.NutritionMultiplier,
		Protein:  per100.Protein * scale,
		Carbs:    per100.Carbs * scale,
		Fat:      per100.Fat * scale * method.NutritionMultiplier,
		Fiber:    per100.Fiber * scale,
		Vitamins: scaleMap(per100.Vitamins, scale),
		Minerals: scaleMap(per100.Minerals, scale),
	}

	return DetailedFoodItem{
		Name:          item.Name,
		OriginalText:  item.OriginalText,
		Portion:       portion,
		CookingMethod: method,
		Nutrition:     scaled,
		Confidence:    item.Confidence,
	}, nil
}

// portionDescription rebuilds a portion phrase from the extracted quantity
// so cultural estimation sees the same amount and unit.
func portionDescription(item extraction.ExtractedFoodItem) string {
	if item.Quantity == nil {
		return ""
	}
	return strconv.FormatFloat(item.Quantity.Amount, 'f', -1, 64) + " " + item.Quantity.Unit
}

// summarize totals the resolved items and derives the macro percentage
// breakdown from calorie-equivalent grams (4/4/9). Percentages are 0 when
// the meal carries no macro calories, guarding the division.
func summarize(items []DetailedFoodItem) NutritionalSummary {
	var s NutritionalSummary
	for _, item := range items {
		s.TotalCalories += item.Nutrition.Calories
		s.TotalProtein += item.Nutrition.Protein
		s.TotalCarbs += item.Nutrition.Carbs
		s.TotalFat += item.Nutrition.Fat
		s.TotalFiber += item.Nutrition.Fiber
	}

	macroCalories := s.TotalProtein*kcalPerGramProtein + s.TotalCarbs*kcalPerGramCarbs + s.TotalFat*kcalPerGramFat
	if s.TotalCalories > 0 && macroCalories > 0 {
		s.ProteinPercent = s.TotalProtein * kcalPerGramProtein / macroCalories * 100
		s.CarbsPercent = s.TotalCarbs * kcalPerGramCarbs / macroCalories * 100
		s.FatPercent = s.TotalFat * kcalPerGramFat / macroCalories * 100
	}
	return s
}

func scaleMap(m map[string]float64, scale float64) map[string]float64 {
	if len(m) == 0 {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v * scale
	}
	return out
}

func meanItemConfidence(items []DetailedFoodItem) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range items {
		sum += it.Confidence
	}
	return sum / float64(len(items))
}
