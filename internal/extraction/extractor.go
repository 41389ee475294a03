package extraction

import (
	"context"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/poshanai/khana-ai-platform/internal/cultural"
	"github.com/poshanai/khana-ai-platform/internal/hinglish"
	"github.com/poshanai/khana-ai-platform/pkg/logging"
)

var extractorTracer = otel.Tracer("khana/extraction")

// Extractor turns a translated token stream into food items and ambiguity
// flags. It is pure and synchronous; the context is carried for tracing
// only.
type Extractor struct {
	translator *hinglish.Translator
	logger     *logging.Logger
	tracer     trace.Tracer
}

// NewExtractor creates a food item extractor.
func NewExtractor(translator *hinglish.Translator, logger *logging.Logger) *Extractor {
	if translator == nil {
		panic("extraction: translator cannot be nil")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Extractor{
		translator: translator,
		logger:     logger,
		tracer:     extractorTracer,
	}
}

// Extract scans a translated utterance for known foods.
//
// Confidence per item: 0.5 base, +0.3 when the name is in the bilingual
// dictionary, +0.1 when a quantity was found, +0.1 when a cooking method
// was found, clamped to [0,1]. Overall confidence is the arithmetic mean
// of item confidences, 0 when no items were found.
func (e *Extractor) Extract(ctx context.Context, translated string) Result {
	_, span := e.tracer.Start(ctx, "extraction.extract")
	defer span.End()

	tokens := strings.Fields(translated)

	var items []ExtractedFoodItem
	var ambiguities []FoodAmbiguity

	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]

		// Compound lookahead consumes two tokens and bypasses the
		// ambiguity table and unit lookup for the pair.
		if i+1 < len(tokens) {
			if canonical, ok := lookupCompound(tok, tokens[i+1]); ok {
				item := ExtractedFoodItem{
					Name:         canonical,
					OriginalText: tok + " " + tokens[i+1],
				}
				if method, found := scanCookingMethod(tokens, i, i+1); found {
					item.CookingMethod = method
				}
				item.Confidence = itemConfidence(true, false, item.CookingMethod != "")
				items = append(items, item)
				i++
				continue
			}
		}

		if isStopWord(tok) {
			continue
		}
		if _, known := knownFoods[tok]; !known {
			continue
		}

		item := ExtractedFoodItem{
			Name:         tok,
			OriginalText: tok,
		}

		if qty := lookBackQuantity(tokens, i); qty != nil {
			item.Quantity = qty
		}
		if method, found := scanCookingMethod(tokens, i, i); found {
			item.CookingMethod = method
		}

		inVocab := e.translator.InVocabulary(tok)
		item.Confidence = itemConfidence(inVocab, item.Quantity != nil, item.CookingMethod != "")
		items = append(items, item)

		// Ambiguity fires regardless of the confidence just computed.
		if meanings, ok := ambiguousMeanings(tok); ok {
			ambiguities = append(ambiguities, FoodAmbiguity{
				Term:             tok,
				PossibleMeanings: meanings,
				Context:          surroundingContext(tokens, i),
			})
		}
	}

	result := Result{
		Items:       items,
		Ambiguities: ambiguities,
		Confidence:  meanConfidence(items),
	}

	span.SetAttributes(
		attribute.Int("extraction.items", len(items)),
		attribute.Int("extraction.ambiguities", len(ambiguities)),
		attribute.Float64("extraction.confidence", result.Confidence),
	)
	e.logger.Debug("extraction complete",
		"items", len(items),
		"ambiguities", len(ambiguities),
		"confidence", result.Confidence,
	)

	return result
}

func lookupCompound(first, second string) (string, bool) {
	for _, c := range compoundFoods {
		if c.First == first && c.Second == second {
			return c.Canonical, true
		}
	}
	return "", false
}

// lookBackQuantity inspects up to two tokens before the food token for a
// numeral (Arabic or spelled-out) optionally followed by a unit, or a
// descriptive quantity word.
func lookBackQuantity(tokens []string, foodIdx int) *FoodQuantity {
	for offset := 1; offset <= 2; offset++ {
		j := foodIdx - offset
		if j < 0 {
			break
		}
		tok := tokens[j]

		if amount, ok := parseNumeral(tok); ok {
			unit := "portion"
			if offset == 2 {
				// Token between numeral and food, if it is a unit.
				if _, isUnit := quantityUnits[tokens[foodIdx-1]]; isUnit {
					unit = tokens[foodIdx-1]
				}
			}
			if unit == "portion" {
				// "2 roti": the food token itself names the unit.
				if _, isUnit := quantityUnits[tokens[foodIdx]]; isUnit {
					unit = tokens[foodIdx]
				}
			}
			return &FoodQuantity{Amount: amount, Unit: unit}
		}

		if amount, ok := descriptiveQuantities[tok]; ok {
			return &FoodQuantity{Amount: amount, Unit: "portion"}
		}
	}
	return nil
}

// scanCookingMethod looks up to two tokens each side of the span
// [start, end] for a cooking-method keyword. Scan order is back then
// forward, nearest first; the first match wins.
func scanCookingMethod(tokens []string, start, end int) (string, bool) {
	offsets := []int{start - 1, start - 2, end + 1, end + 2}
	for _, idx := range offsets {
		if idx < 0 || idx >= len(tokens) {
			continue
		}
		if method, ok := cultural.LookupMethodToken(tokens[idx]); ok {
			return method.Name, true
		}
	}
	return "", false
}

// surroundingContext captures up to two tokens on each side of the term.
func surroundingContext(tokens []string, idx int) string {
	lo := idx - 2
	if lo < 0 {
		lo = 0
	}
	hi := idx + 3
	if hi > len(tokens) {
		hi = len(tokens)
	}
	return strings.Join(tokens[lo:hi], " ")
}

func parseNumeral(tok string) (float64, bool) {
	if v, ok := numberWords[tok]; ok {
		return v, true
	}
	if v, err := strconv.ParseFloat(tok, 64); err == nil {
		return v, true
	}
	return 0, false
}

func itemConfidence(inVocabulary, hasQuantity, hasMethod bool) float64 {
	c := 0.5
	if inVocabulary {
		c += 0.3
	}
	if hasQuantity {
		c += 0.1
	}
	if hasMethod {
		c += 0.1
	}
	if c > 1 {
		c = 1
	}
	if c < 0 {
		c = 0
	}
	return c
}

func meanConfidence(items []ExtractedFoodItem) float64 {
	if len(items) == 0 {
		return 0
	}
	var sum float64
	for _, it := range items {
		sum += it.Confidence
	}
	return sum / float64(len(items))
}
