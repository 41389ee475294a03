package cultural

import "strings"

// RegionalVariation describes how a region prepares a dish and how that
// shifts its nutrition profile. NutritionAdjustments holds multiplicative
// factors keyed by macro/micro name ("fat", "fiber", "calories", ...).
type RegionalVariation struct {
	Region               string             `json:"region"`
	DishName             string             `json:"dish_name,omitempty"`
	CommonIngredients    []string           `json:"common_ingredients"`
	CookingStyle         string             `json:"cooking_style"`
	SpiceLevel           string             `json:"spice_level"`
	NutritionAdjustments map[string]float64 `json:"nutrition_adjustments"`
}

type regionProfile struct {
	region      string
	places      []string // lowercase city/state substrings, first match wins
	ingredients []string
	style       string
	spiceLevel  string
	adjustments map[string]float64
}

// regionProfiles is ordered: location matching walks the slice and the
// first profile with a matching place substring wins. North is the default
// when nothing matches.
var regionProfiles = []regionProfile{
	{
		region:      "north",
		places:      []string{"delhi", "punjab", "chandigarh", "lucknow", "jaipur", "haryana", "uttar pradesh", "rajasthan", "amritsar"},
		ingredients: []string{"wheat", "ghee", "paneer", "cream"},
		style:       "tandoor and slow-cooked gravies",
		spiceLevel:  "medium",
		adjustments: map[string]float64{"fat": 1.2, "calories": 1.1},
	},
	{
		region:      "south",
		places:      []string{"chennai", "bangalore", "bengaluru", "hyderabad", "kerala", "tamil nadu", "karnataka", "andhra", "kochi", "madurai"},
		ingredients: []string{"rice", "coconut", "curry leaves", "tamarind"},
		style:       "steamed and fermented preparations",
		spiceLevel:  "high",
		adjustments: map[string]float64{"fiber": 1.2, "fat": 1.1},
	},
	{
		region:      "west",
		places:      []string{"mumbai", "pune", "gujarat", "maharashtra", "goa", "ahmedabad", "surat", "nagpur"},
		ingredients: []string{"jaggery", "peanuts", "besan", "kokum"},
		style:       "steamed snacks and light gravies",
		spiceLevel:  "medium",
		adjustments: map[string]float64{"carbs": 1.1, "fiber": 1.1},
	},
	{
		region:      "east",
		places:      []string{"kolkata", "west bengal", "odisha", "assam", "bihar", "bhubaneswar", "guwahati", "patna"},
		ingredients: []string{"mustard oil", "fish", "rice", "panch phoron"},
		style:       "mustard-based curries and steamed fish",
		spiceLevel:  "medium",
		adjustments: map[string]float64{"protein": 1.15, "fat": 1.05},
	},
}

// ResolveRegion maps a free-text location to a regional cuisine profile by
// substring match against the curated city/state lists. Unmatched
// locations default to the north profile.
func ResolveRegion(location string) RegionalVariation {
	loc := strings.ToLower(strings.TrimSpace(location))
	if loc != "" {
		for _, p := range regionProfiles {
			for _, place := range p.places {
				if strings.Contains(loc, place) {
					return p.variation()
				}
			}
		}
	}
	return regionProfiles[0].variation()
}

func (p regionProfile) variation() RegionalVariation {
	adjustments := make(map[string]float64, len(p.adjustments))
	for k, v := range p.adjustments {
		adjustments[k] = v
	}
	return RegionalVariation{
		Region:               p.region,
		CommonIngredients:    append([]string(nil), p.ingredients...),
		CookingStyle:         p.style,
		SpiceLevel:           p.spiceLevel,
		NutritionAdjustments: adjustments,
	}
}

// Regions lists the supported region names in match order.
func Regions() []string {
	out := make([]string, 0, len(regionProfiles))
	for _, p := range regionProfiles {
		out = append(out, p.region)
	}
	return out
}
