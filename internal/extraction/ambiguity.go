package extraction

import (
	"fmt"
	"strings"

	"github.com/poshanai/khana-ai-platform/internal/hinglish"
)

// Clarification is one question the assistant asks to resolve an ambiguous
// food term before a meal can be logged.
type Clarification struct {
	Term     string   `json:"term"`
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

// Resolver renders clarification questions for ambiguous terms. Options
// are translated back to the user-facing Hinglish form word by word via the
// reverse of the translation dictionary.
type Resolver struct {
	translator *hinglish.Translator
}

// NewResolver creates an ambiguity resolver.
func NewResolver(translator *hinglish.Translator) *Resolver {
	if translator == nil {
		panic("extraction: translator cannot be nil")
	}
	return &Resolver{translator: translator}
}

// Clarify produces one question per ambiguity, preserving input order.
func (r *Resolver) Clarify(ambiguities []FoodAmbiguity) []Clarification {
	if len(ambiguities) == 0 {
		return nil
	}
	out := make([]Clarification, 0, len(ambiguities))
	for _, amb := range ambiguities {
		options := make([]string, 0, len(amb.PossibleMeanings))
		for _, meaning := range amb.PossibleMeanings {
			options = append(options, r.toHinglish(meaning))
		}
		out = append(out, Clarification{
			Term:     amb.Term,
			Question: fmt.Sprintf("Aapne %q bola, kaun sa matlab tha: %s?", amb.Term, strings.Join(options, ", ")),
			Options:  options,
		})
	}
	return out
}

func (r *Resolver) toHinglish(phrase string) string {
	words := strings.Fields(phrase)
	for i, w := range words {
		words[i] = r.translator.ReverseLookup(w)
	}
	return strings.Join(words, " ")
}
