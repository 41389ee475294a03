package cultural

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// PortionSize is a portion resolved to grams with a human-readable Indian
// reference.
type PortionSize struct {
	Quantity        float64 `json:"quantity"` // grams
	Unit            string  `json:"unit"`     // always "grams" after conversion
	IndianReference string  `json:"indian_reference"`
	ConfidenceScore float64 `json:"confidence_score"`
}

type unitEntry struct {
	name        string
	grams       float64
	description string // shown for singular references, e.g. "small bowl"
}

// unitTable converts Indian measurement units to grams. Ordered so tests
// can walk every supported unit.
var unitTable = []unitEntry{
	{name: "katori", grams: 150, description: "small bowl"},
	{name: "glass", grams: 250, description: "drinking glass"},
	{name: "roti", grams: 30, description: "one flatbread"},
	{name: "spoon", grams: 15, description: "tablespoon"},
	{name: "pinch", grams: 1, description: "pinch"},
	{name: "handful", grams: 50, description: "handful"},
	{name: "cup", grams: 200, description: "standard cup"},
	{name: "plate", grams: 300, description: "full plate"},
	{name: "gram", grams: 1, description: "gram"},
	{name: "grams", grams: 1, description: "grams"},
	{name: "kg", grams: 1000, description: "kilogram"},
	{name: "piece", grams: 50, description: "piece"},
	{name: "slice", grams: 25, description: "slice"},
}

// GramsPerUnit returns the grams for one unit name, if supported.
func GramsPerUnit(unit string) (float64, bool) {
	unit = strings.ToLower(strings.TrimSpace(unit))
	for _, e := range unitTable {
		if e.name == unit {
			return e.grams, true
		}
	}
	return 0, false
}

// SupportedUnits lists every convertible unit name in table order.
func SupportedUnits() []string {
	out := make([]string, 0, len(unitTable))
	for _, e := range unitTable {
		out = append(out, e.name)
	}
	return out
}

var numberUnitRE = regexp.MustCompile(`(\d+(?:\.\d+)?)\s+([a-z]+)`)
var numberRE = regexp.MustCompile(`\d+(?:\.\d+)?`)

// EstimatePortion converts a free-text portion description into grams.
//
// Resolution order:
//  1. an explicit "<number> <unit>" pattern,
//  2. any standalone known unit (quantity defaults to 1, or to a bare
//     numeral elsewhere in the description),
//  3. no unit recognized: default to katori.
//
// Confidence: 0.5 base, +0.3 when a unit literally appears in the
// description, +0.2 when a numeral appears, clamped to [0,1].
func EstimatePortion(foodName, portionDescription string) PortionSize {
	desc := strings.ToLower(strings.TrimSpace(portionDescription))

	quantity := 1.0
	unit := ""
	hasNumber := numberRE.MatchString(desc)

	for _, m := range numberUnitRE.FindAllStringSubmatch(desc, -1) {
		if _, ok := GramsPerUnit(m[2]); ok {
			quantity, _ = strconv.ParseFloat(m[1], 64)
			unit = m[2]
			break
		}
	}

	if unit == "" {
		for _, tok := range strings.Fields(desc) {
			if _, ok := GramsPerUnit(tok); ok {
				unit = tok
				break
			}
		}
		if unit != "" && hasNumber {
			if n := numberRE.FindString(desc); n != "" {
				quantity, _ = strconv.ParseFloat(n, 64)
			}
		}
	}

	hasUnit := unit != ""
	if !hasUnit {
		unit = "katori"
		if hasNumber {
			if n := numberRE.FindString(desc); n != "" {
				quantity, _ = strconv.ParseFloat(n, 64)
			}
		}
	}

	gramsPer, _ := GramsPerUnit(unit)
	grams := quantity * gramsPer

	confidence := 0.5
	if hasUnit {
		confidence += 0.3
	}
	if hasNumber {
		confidence += 0.2
	}
	confidence = clamp01(confidence)

	return PortionSize{
		Quantity:        grams,
		Unit:            "grams",
		IndianReference: indianReference(quantity, unit),
		ConfidenceScore: confidence,
	}
}

// indianReference renders a human-readable portion string, e.g.
// "2 katori" or "1 katori (small bowl)" for singular portions.
func indianReference(quantity float64, unit string) string {
	qty := strconv.FormatFloat(quantity, 'f', -1, 64)
	if quantity == 1 {
		for _, e := range unitTable {
			if e.name == unit && e.description != "" && e.description != e.name {
				return fmt.Sprintf("1 %s (%s)", unit, e.description)
			}
		}
	}
	return fmt.Sprintf("%s %s", qty, unit)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
