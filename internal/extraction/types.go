package extraction

// FoodQuantity is an amount in a fixed unit vocabulary (katori, glass,
// roti, spoon, cup, plate, grams, kg, ...). Descriptive words like "thoda"
// map to fractional amounts of a generic "portion" unit.
type FoodQuantity struct {
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// ExtractedFoodItem is one recognized food with its surrounding context.
// Immutable once produced.
type ExtractedFoodItem struct {
	Name          string        `json:"name"`          // canonical English
	OriginalText  string        `json:"original_text"` // source-language phrase
	Quantity      *FoodQuantity `json:"quantity,omitempty"`
	CookingMethod string        `json:"cooking_method,omitempty"`
	Confidence    float64       `json:"confidence"`
}

// FoodAmbiguity flags a recognized term that maps to more than one
// underlying dish. It exists only for the current turn and is never
// persisted.
type FoodAmbiguity struct {
	Term             string   `json:"term"`
	PossibleMeanings []string `json:"possible_meanings"`
	Context          string   `json:"context,omitempty"`
}

// Result is the outcome of extracting one translated utterance. Zero items
// is a success-shaped result, not an error; callers decide whether to
// prompt for more detail.
type Result struct {
	Items       []ExtractedFoodItem `json:"items"`
	Ambiguities []FoodAmbiguity     `json:"ambiguities,omitempty"`
	Confidence  float64             `json:"confidence"`
}
