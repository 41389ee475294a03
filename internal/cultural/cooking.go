package cultural

import "strings"

// CookingMethod describes one Indian cooking technique and how it shifts
// the nutrition profile of a dish.
type CookingMethod struct {
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	NutritionMultiplier float64  `json:"nutrition_multiplier"`
	CommonIngredients   []string `json:"common_ingredients,omitempty"`

	// Keywords are the synonyms that identify the method in free text.
	Keywords []string `json:"-"`
}

// methodCatalog is the closed catalog of cooking methods. Order matters:
// identification walks the catalog top to bottom and the first method with
// a matching keyword wins.
var methodCatalog = []CookingMethod{
	{
		Name:                "tadka",
		Description:         "Tempering spices in hot oil or ghee and pouring over the dish",
		NutritionMultiplier: 1.2,
		CommonIngredients:   []string{"ghee", "cumin", "mustard seeds", "curry leaves"},
		Keywords:            []string{"tadka", "tempering", "chaunk", "baghar"},
	},
	{
		Name:                "bhuna",
		Description:         "Slow-frying masala until the oil separates",
		NutritionMultiplier: 1.3,
		CommonIngredients:   []string{"oil", "onion", "ginger", "garlic"},
		Keywords:            []string{"bhuna", "bhunao", "sauteed"},
	},
	{
		Name:                "dum",
		Description:         "Slow steam-cooking in a sealed pot, often with cream",
		NutritionMultiplier: 1.4,
		CommonIngredients:   []string{"cream", "saffron", "whole spices"},
		Keywords:            []string{"dum", "handi", "sealed"},
	},
	{
		Name:                "tawa",
		Description:         "Griddle cooking with a light coat of oil",
		NutritionMultiplier: 1.1,
		CommonIngredients:   []string{"oil", "butter"},
		Keywords:            []string{"tawa", "griddle"},
	},
	{
		Name:                "tandoor",
		Description:         "Clay-oven roasting over charcoal",
		NutritionMultiplier: 0.9,
		CommonIngredients:   []string{"yogurt marinade", "spices"},
		Keywords:            []string{"tandoor", "tandoori", "clay oven"},
	},
	{
		Name:                "steamed",
		Description:         "Steam cooking without added fat",
		NutritionMultiplier: 0.85,
		CommonIngredients:   []string{"water"},
		Keywords:            []string{"steamed", "bhapa", "idli style"},
	},
	{
		Name:                "fried",
		Description:         "Deep or shallow frying in oil",
		NutritionMultiplier: 1.5,
		CommonIngredients:   []string{"oil"},
		Keywords:            []string{"fried", "deep fried", "pakora style"},
	},
}

// SimpleMethod is the fallback when no catalog keyword matches: plain
// home-style cooking with no nutrition adjustment.
func SimpleMethod() CookingMethod {
	return CookingMethod{
		Name:                "simple",
		Description:         "Plain home-style preparation",
		NutritionMultiplier: 1.0,
	}
}

// IdentifyCookingStyle scans a phrase for cooking-method keywords. The
// first catalog entry (in declaration order) with a matching keyword wins.
func IdentifyCookingStyle(description string) CookingMethod {
	phrase := " " + strings.ToLower(strings.TrimSpace(description)) + " "
	for _, method := range methodCatalog {
		for _, kw := range method.Keywords {
			if strings.Contains(phrase, " "+kw+" ") {
				return method
			}
		}
	}
	return SimpleMethod()
}

// LookupMethodToken resolves a single token to a catalog method, used by
// the extractor when scanning around a food token. Multiword keywords do
// not participate in token-level lookup.
func LookupMethodToken(token string) (CookingMethod, bool) {
	token = strings.ToLower(token)
	for _, method := range methodCatalog {
		for _, kw := range method.Keywords {
			if !strings.Contains(kw, " ") && kw == token {
				return method, true
			}
		}
	}
	return CookingMethod{}, false
}

// MethodByName returns the catalog entry for a method name, falling back to
// the simple method for unknown names.
func MethodByName(name string) CookingMethod {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, method := range methodCatalog {
		if method.Name == name {
			return method
		}
	}
	return SimpleMethod()
}

// Catalog exposes the ordered method catalog for completeness tests.
func Catalog() []CookingMethod {
	return methodCatalog
}
