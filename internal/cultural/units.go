package cultural

import (
	"fmt"
	"strconv"
	"strings"
)

// cupToKatoriRatio applies when converting cups of rice or dal: one
// standard cup holds about one and a half katori.
const cupToKatoriRatio = 1.5

var westernUnitGrams = map[string]float64{
	"cup":        200,
	"tablespoon": 15,
	"teaspoon":   5,
	"ounce":      28,
	"pound":      454,
}

// ToIndianReference converts a Western measurement into an Indian-style
// reference string. Conversion is food-type sensitive: cups of rice or dal
// map to katori; everything else falls through to a gram-based string.
func ToIndianReference(amount float64, westernUnit, foodType string) string {
	unit := strings.ToLower(strings.TrimSpace(westernUnit))
	food := strings.ToLower(strings.TrimSpace(foodType))

	if unit == "cup" && (strings.Contains(food, "rice") || strings.Contains(food, "dal")) {
		katori := amount * cupToKatoriRatio
		return fmt.Sprintf("%s katori", strconv.FormatFloat(katori, 'f', -1, 64))
	}

	switch unit {
	case "tablespoon":
		return fmt.Sprintf("%s spoon", strconv.FormatFloat(amount, 'f', -1, 64))
	case "teaspoon":
		return fmt.Sprintf("%s small spoon", strconv.FormatFloat(amount, 'f', -1, 64))
	}

	if gramsPer, ok := westernUnitGrams[unit]; ok {
		grams := amount * gramsPer
		return fmt.Sprintf("%s grams", strconv.FormatFloat(grams, 'f', -1, 64))
	}

	return fmt.Sprintf("%s %s", strconv.FormatFloat(amount, 'f', -1, 64), unit)
}
