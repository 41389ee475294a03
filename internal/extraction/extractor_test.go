package extraction

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poshanai/khana-ai-platform/internal/hinglish"
	"github.com/poshanai/khana-ai-platform/pkg/logging"
)

func newTestExtractor() *Extractor {
	return NewExtractor(hinglish.NewTranslator(), logging.New("error"))
}

func TestExtractBreakfastScenario(t *testing.T) {
	// "Maine breakfast mein 2 roti aur ek glass milk liya" after
	// normalization and translation.
	e := newTestExtractor()
	res := e.Extract(context.Background(), "maine breakfast mein 2 roti aur one glass milk liya")

	require.Len(t, res.Items, 2)
	assert.Empty(t, res.Ambiguities)

	roti := res.Items[0]
	assert.Equal(t, "roti", roti.Name)
	require.NotNil(t, roti.Quantity)
	assert.Equal(t, 2.0, roti.Quantity.Amount)
	assert.Equal(t, "roti", roti.Quantity.Unit)

	milk := res.Items[1]
	assert.Equal(t, "milk", milk.Name)
	require.NotNil(t, milk.Quantity)
	assert.Equal(t, 1.0, milk.Quantity.Amount)
	assert.Equal(t, "glass", milk.Quantity.Unit)

	// Both names are in the bilingual dictionary and carry a quantity:
	// 0.5 + 0.3 + 0.1 each.
	assert.InDelta(t, 0.9, roti.Confidence, 1e-9)
	assert.InDelta(t, 0.9, milk.Confidence, 1e-9)
	assert.InDelta(t, 0.9, res.Confidence, 1e-9)
}

func TestExtractNothingRecognized(t *testing.T) {
	e := newTestExtractor()
	// "Maine kuch khaya tha": every token is a stop word.
	res := e.Extract(context.Background(), "maine kuch khaya tha")
	assert.Empty(t, res.Items)
	assert.Empty(t, res.Ambiguities)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestExtractEmptyInput(t *testing.T) {
	e := newTestExtractor()
	res := e.Extract(context.Background(), "")
	assert.Empty(t, res.Items)
	assert.Equal(t, 0.0, res.Confidence)
}

func TestExtractAmbiguousDal(t *testing.T) {
	e := newTestExtractor()
	res := e.Extract(context.Background(), "dal khaya")

	require.Len(t, res.Items, 1)
	require.Len(t, res.Ambiguities, 1)
	amb := res.Ambiguities[0]
	assert.Equal(t, "dal", amb.Term)
	assert.Equal(t, []string{"moong dal", "toor dal", "masoor dal", "chana dal", "urad dal"}, amb.PossibleMeanings)
	assert.Equal(t, "dal khaya", amb.Context)
}

// Known ambiguous terms always flag, standalone, regardless of how
// confident the rest of the sentence makes the item.
func TestExtractAmbiguityFiresRegardlessOfConfidence(t *testing.T) {
	e := newTestExtractor()
	res := e.Extract(context.Background(), "one katori toor dal khaya")
	require.Len(t, res.Ambiguities, 1)
	assert.Equal(t, "dal", res.Ambiguities[0].Term)
}

func TestExtractStandaloneAmbiguousTerms(t *testing.T) {
	e := newTestExtractor()
	for _, term := range []string{"dal", "sabzi", "paratha", "chai", "lentils", "tea", "curry"} {
		res := e.Extract(context.Background(), term+" khaya")
		require.NotEmpty(t, res.Ambiguities, "term %q must flag an ambiguity", term)
		assert.Equal(t, term, res.Ambiguities[0].Term)
	}
}

// Compound foods are a single item and never split into two ambiguous
// single-word items.
func TestExtractCompounds(t *testing.T) {
	e := newTestExtractor()
	tests := []struct {
		input string
		want  string
	}{
		{input: "aloo sabzi khaya", want: "aloo sabzi"},
		{input: "palak paneer ke saath", want: "palak paneer"},
		{input: "dal makhani banayi", want: "dal makhani"},
		{input: "jeera rice liya", want: "jeera rice"},
		{input: "masala chai pi", want: "masala chai"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := e.Extract(context.Background(), tt.input)
			require.Len(t, res.Items, 1)
			assert.Equal(t, tt.want, res.Items[0].Name)
			assert.Empty(t, res.Ambiguities, "compound must bypass the ambiguity table")
		})
	}
}

func TestExtractCompoundDoesNotConsumeNeighbor(t *testing.T) {
	e := newTestExtractor()
	res := e.Extract(context.Background(), "aloo sabzi aur roti khaya")
	require.Len(t, res.Items, 2)
	assert.Equal(t, "aloo sabzi", res.Items[0].Name)
	assert.Equal(t, "roti", res.Items[1].Name)
}

func TestExtractCookingMethod(t *testing.T) {
	e := newTestExtractor()

	res := e.Extract(context.Background(), "tandoori chicken khaya")
	require.Len(t, res.Items, 1)
	assert.Equal(t, "tandoor", res.Items[0].CookingMethod)

	res = e.Extract(context.Background(), "paneer fried tha")
	require.Len(t, res.Items, 1)
	assert.Equal(t, "fried", res.Items[0].CookingMethod)
}

func TestExtractDescriptiveQuantity(t *testing.T) {
	e := newTestExtractor()
	tests := []struct {
		input      string
		wantAmount float64
	}{
		{input: "thoda rice khaya", wantAmount: 0.5},
		{input: "zyada rice khaya", wantAmount: 2.0},
		{input: "kam rice khaya", wantAmount: 0.3},
		{input: "aadha rice khaya", wantAmount: 0.5},
		{input: "poora rice khaya", wantAmount: 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			res := e.Extract(context.Background(), tt.input)
			require.Len(t, res.Items, 1)
			require.NotNil(t, res.Items[0].Quantity)
			assert.Equal(t, tt.wantAmount, res.Items[0].Quantity.Amount)
			assert.Equal(t, "portion", res.Items[0].Quantity.Unit)
		})
	}
}

func TestExtractQuantityWithUnitBetween(t *testing.T) {
	e := newTestExtractor()
	res := e.Extract(context.Background(), "two katori rice khaya")
	require.Len(t, res.Items, 1)
	q := res.Items[0].Quantity
	require.NotNil(t, q)
	assert.Equal(t, 2.0, q.Amount)
	assert.Equal(t, "katori", q.Unit)
}

// "dalchini" must never surface a "dal" item.
func TestExtractNoPartialTokenMatch(t *testing.T) {
	e := newTestExtractor()
	res := e.Extract(context.Background(), "dalchini wali chai pi")
	require.Len(t, res.Items, 1)
	assert.Equal(t, "chai", res.Items[0].Name)
	require.Len(t, res.Ambiguities, 1)
	assert.Equal(t, "chai", res.Ambiguities[0].Term)
}

func TestExtractConfidenceAlwaysBounded(t *testing.T) {
	e := newTestExtractor()
	inputs := []string{
		"",
		"maine kuch khaya",
		"two katori tadka dal khaya",
		"fried fried fried paneer",
		"roti roti roti roti",
		"1 2 3 4 5",
	}
	for _, input := range inputs {
		res := e.Extract(context.Background(), input)
		assert.GreaterOrEqual(t, res.Confidence, 0.0, "input=%q", input)
		assert.LessOrEqual(t, res.Confidence, 1.0, "input=%q", input)
		for _, it := range res.Items {
			assert.GreaterOrEqual(t, it.Confidence, 0.0, "input=%q item=%s", input, it.Name)
			assert.LessOrEqual(t, it.Confidence, 1.0, "input=%q item=%s", input, it.Name)
		}
	}
}

func TestExtractOverallConfidenceIsMean(t *testing.T) {
	e := newTestExtractor()
	// roti with quantity (0.9) + dal bare (0.5): mean 0.7.
	res := e.Extract(context.Background(), "2 roti aur dal khaya")
	require.Len(t, res.Items, 2)
	assert.InDelta(t, (res.Items[0].Confidence+res.Items[1].Confidence)/2, res.Confidence, 1e-9)
}
