package cultural

import "testing"

func TestToIndianReference(t *testing.T) {
	tests := []struct {
		name     string
		amount   float64
		unit     string
		foodType string
		want     string
	}{
		{name: "cup of rice converts to katori", amount: 1, unit: "cup", foodType: "rice", want: "1.5 katori"},
		{name: "cup of dal converts to katori", amount: 2, unit: "cup", foodType: "moong dal", want: "3 katori"},
		{name: "cup of other food stays gram based", amount: 1, unit: "cup", foodType: "salad", want: "200 grams"},
		{name: "tablespoon", amount: 2, unit: "tablespoon", foodType: "ghee", want: "2 spoon"},
		{name: "teaspoon", amount: 1, unit: "teaspoon", foodType: "sugar", want: "1 small spoon"},
		{name: "ounce", amount: 2, unit: "ounce", foodType: "paneer", want: "56 grams"},
		{name: "pound", amount: 1, unit: "pound", foodType: "chicken", want: "454 grams"},
		{name: "unknown unit passes through", amount: 3, unit: "scoop", foodType: "rice", want: "3 scoop"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToIndianReference(tt.amount, tt.unit, tt.foodType); got != tt.want {
				t.Errorf("ToIndianReference(%v, %q, %q) = %q, want %q", tt.amount, tt.unit, tt.foodType, got, tt.want)
			}
		})
	}
}
