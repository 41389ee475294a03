package cultural

import "testing"

func TestIdentifyCookingStyle(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "tadka keyword", input: "dal with tadka on top", want: "tadka"},
		{name: "tadka synonym chaunk", input: "moong dal chaunk laga ke", want: "tadka"},
		{name: "tadka synonym baghar", input: "baghar wali dal", want: "tadka"},
		{name: "bhuna", input: "bhuna masala chicken", want: "bhuna"},
		{name: "dum", input: "dum cooked biryani", want: "dum"},
		{name: "tawa", input: "tawa roti", want: "tawa"},
		{name: "tandoor", input: "tandoori chicken", want: "tandoor"},
		{name: "steamed", input: "steamed idli", want: "steamed"},
		{name: "fried", input: "deep fried samosa", want: "fried"},
		{name: "no keyword falls back to simple", input: "ghar ka khana", want: "simple"},
		{name: "empty input", input: "", want: "simple"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IdentifyCookingStyle(tt.input)
			if got.Name != tt.want {
				t.Errorf("IdentifyCookingStyle(%q) = %s, want %s", tt.input, got.Name, tt.want)
			}
		})
	}
}

func TestSimpleMethodMultiplier(t *testing.T) {
	m := SimpleMethod()
	if m.NutritionMultiplier != 1.0 {
		t.Fatalf("simple method multiplier = %v, want 1.0", m.NutritionMultiplier)
	}
}

// Catalog order is the tie-break: when a phrase carries keywords from two
// methods, the earlier catalog entry wins.
func TestIdentifyCookingStyleFirstMatchWins(t *testing.T) {
	got := IdentifyCookingStyle("tadka dal with fried onions")
	if got.Name != "tadka" {
		t.Fatalf("expected tadka (declared before fried), got %s", got.Name)
	}
}

func TestCatalogMultipliersNonNegative(t *testing.T) {
	for _, m := range Catalog() {
		if m.NutritionMultiplier < 0 {
			t.Errorf("method %s has negative multiplier %v", m.Name, m.NutritionMultiplier)
		}
		if len(m.Keywords) < 2 {
			t.Errorf("method %s has fewer than 2 keywords", m.Name)
		}
	}
}

func TestLookupMethodToken(t *testing.T) {
	if m, ok := LookupMethodToken("tandoori"); !ok || m.Name != "tandoor" {
		t.Fatalf("LookupMethodToken(tandoori) = %v/%v", m.Name, ok)
	}
	if _, ok := LookupMethodToken("paneer"); ok {
		t.Fatal("paneer must not resolve to a cooking method")
	}
}

func TestMethodByName(t *testing.T) {
	if m := MethodByName("dum"); m.NutritionMultiplier != 1.4 {
		t.Fatalf("dum multiplier = %v, want 1.4", m.NutritionMultiplier)
	}
	if m := MethodByName("unknown"); m.Name != "simple" {
		t.Fatalf("unknown method should fall back to simple, got %s", m.Name)
	}
}
