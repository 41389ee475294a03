package nutrition

import (
	"context"
	"strings"
)

// StaticLookup serves a curated in-memory per-100g table. It backs local
// development and tests when no nutrition database is configured.
type StaticLookup struct {
	foods map[string]NutritionalInfo
}

// NewStaticLookup returns a lookup seeded with common Indian foods.
func NewStaticLookup() *StaticLookup {
	return &StaticLookup{foods: map[string]NutritionalInfo{
		"roti":         {Calories: 297, Protein: 11, Carbs: 58, Fat: 4, Fiber: 11},
		"rice":         {Calories: 130, Protein: 2.7, Carbs: 28, Fat: 0.3, Fiber: 0.4},
		"milk":         {Calories: 62, Protein: 3.2, Carbs: 4.8, Fat: 3.3, Fiber: 0},
		"curd":         {Calories: 98, Protein: 11, Carbs: 3.4, Fat: 4.3, Fiber: 0},
		"paneer":       {Calories: 265, Protein: 18, Carbs: 1.2, Fat: 21, Fiber: 0},
		"moong dal":    {Calories: 347, Protein: 24, Carbs: 63, Fat: 1.2, Fiber: 16},
		"toor dal":     {Calories: 343, Protein: 22, Carbs: 63, Fat: 1.5, Fiber: 15},
		"masoor dal":   {Calories: 352, Protein: 25, Carbs: 60, Fat: 1.1, Fiber: 11},
		"chana dal":    {Calories: 364, Protein: 19, Carbs: 61, Fat: 6, Fiber: 12},
		"urad dal":     {Calories: 341, Protein: 25, Carbs: 59, Fat: 1.6, Fiber: 18},
		"dal makhani":  {Calories: 142, Protein: 6.2, Carbs: 13, Fat: 7.5, Fiber: 4.1},
		"dal tadka":    {Calories: 120, Protein: 6.5, Carbs: 15, Fat: 4, Fiber: 4.5},
		"aloo sabzi":   {Calories: 97, Protein: 2, Carbs: 15, Fat: 3.5, Fiber: 2.2},
		"palak paneer": {Calories: 180, Protein: 8.5, Carbs: 6.8, Fat: 14, Fiber: 2.4},
		"aloo paratha": {Calories: 210, Protein: 5, Carbs: 31, Fat: 8, Fiber: 3.6},
		"jeera rice":   {Calories: 165, Protein: 3, Carbs: 30, Fat: 4, Fiber: 0.8},
		"masala chai":  {Calories: 45, Protein: 1.5, Carbs: 6.5, Fat: 1.5, Fiber: 0},
		"curd rice":    {Calories: 120, Protein: 3.8, Carbs: 20, Fat: 2.8, Fiber: 0.5},
		"rajma":        {Calories: 333, Protein: 24, Carbs: 60, Fat: 0.8, Fiber: 25},
		"rajma rice":   {Calories: 150, Protein: 6, Carbs: 27, Fat: 1.5, Fiber: 5},
		"chickpeas":    {Calories: 364, Protein: 19, Carbs: 61, Fat: 6, Fiber: 17},
		"idli":         {Calories: 132, Protein: 4, Carbs: 27, Fat: 0.4, Fiber: 1.2},
		"dosa":         {Calories: 168, Protein: 3.9, Carbs: 29, Fat: 3.7, Fiber: 1.4},
		"samosa":       {Calories: 308, Protein: 5, Carbs: 32, Fat: 17, Fiber: 2.5},
		"khichdi":      {Calories: 120, Protein: 4.5, Carbs: 21, Fat: 2, Fiber: 2.8},
		"poha":         {Calories: 130, Protein: 2.6, Carbs: 26, Fat: 1.5, Fiber: 1},
		"upma":         {Calories: 155, Protein: 3.7, Carbs: 25, Fat: 4.5, Fiber: 1.6},
		"biryani":      {Calories: 200, Protein: 7, Carbs: 26, Fat: 7.5, Fiber: 1},
		"kheer":        {Calories: 143, Protein: 3.8, Carbs: 22, Fat: 4.5, Fiber: 0.2},
		"halwa":        {Calories: 350, Protein: 4, Carbs: 48, Fat: 16, Fiber: 1},
		"lassi":        {Calories: 75, Protein: 2.5, Carbs: 9, Fat: 3.2, Fiber: 0},
		"naan":         {Calories: 310, Protein: 9, Carbs: 50, Fat: 8, Fiber: 2},
		"paneer tikka": {Calories: 230, Protein: 14, Carbs: 6, Fat: 17, Fiber: 1},
		"butter chicken": {
			Calories: 190, Protein: 13, Carbs: 6, Fat: 13, Fiber: 0.8,
		},
		"egg":     {Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11, Fiber: 0},
		"eggs":    {Calories: 155, Protein: 13, Carbs: 1.1, Fat: 11, Fiber: 0},
		"chicken": {Calories: 239, Protein: 27, Carbs: 0, Fat: 14, Fiber: 0},
		"fish":    {Calories: 136, Protein: 20, Carbs: 0, Fat: 6, Fiber: 0},
		"aloo":    {Calories: 87, Protein: 1.9, Carbs: 20, Fat: 0.1, Fiber: 1.8},
	}}
}

// LookupFood returns per-100g values for a canonical name, or
// ErrFoodNotFound.
func (s *StaticLookup) LookupFood(_ context.Context, name string) (NutritionalInfo, error) {
	info, ok := s.foods[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return NutritionalInfo{}, ErrFoodNotFound
	}
	return info, nil
}

// Has reports whether the table contains a food, without a lookup error.
func (s *StaticLookup) Has(name string) bool {
	_, ok := s.foods[strings.ToLower(strings.TrimSpace(name))]
	return ok
}
