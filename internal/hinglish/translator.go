package hinglish

import "strings"

// DictionaryEntry maps one Hindi token to its English equivalent.
// Entries are applied in slice order; when two entries could both match a
// token, the earlier entry wins. Entries never overlap in the curated
// vocabulary, but the ordering guarantee is documented and tested so a
// future overlapping addition has deterministic behavior.
type DictionaryEntry struct {
	Hindi   string
	English string
}

// foodDictionary is the curated Hindi→English food vocabulary. It covers
// staples, vegetables, grains/pulses, cooking adjectives, and the number
// words ek through paanch. Culturally canonical dish names (roti, dal,
// paneer, chai, aloo, palak, jeera, masala) stay untranslated so compound
// dishes keep their recognized names.
var foodDictionary = []DictionaryEntry{
	// Number words
	{Hindi: "ek", English: "one"},
	{Hindi: "do", English: "two"},
	{Hindi: "teen", English: "three"},
	{Hindi: "char", English: "four"},
	{Hindi: "paanch", English: "five"},

	// Staples
	{Hindi: "chawal", English: "rice"},
	{Hindi: "doodh", English: "milk"},
	{Hindi: "dahi", English: "curd"},
	{Hindi: "paani", English: "water"},
	{Hindi: "anda", English: "egg"},
	{Hindi: "ande", English: "eggs"},
	{Hindi: "chapati", English: "roti"},
	{Hindi: "chapatis", English: "roti"},
	{Hindi: "makhan", English: "butter"},

	// Vegetables
	{Hindi: "pyaaz", English: "onion"},
	{Hindi: "pyaz", English: "onion"},
	{Hindi: "tamatar", English: "tomato"},
	{Hindi: "gobi", English: "cauliflower"},
	{Hindi: "bhindi", English: "okra"},
	{Hindi: "matar", English: "peas"},
	{Hindi: "baingan", English: "brinjal"},
	{Hindi: "gajar", English: "carrot"},

	// Grains and pulses
	{Hindi: "chole", English: "chickpeas"},
	{Hindi: "makki", English: "corn"},
	{Hindi: "besan", English: "gram flour"},

	// Cooking adjectives
	{Hindi: "tala", English: "fried"},
	{Hindi: "tali", English: "fried"},
	{Hindi: "ubla", English: "boiled"},
	{Hindi: "ubli", English: "boiled"},
	{Hindi: "bhuni", English: "bhuna"},
	{Hindi: "kacha", English: "raw"},
}

// Translator applies the fixed Hindi→English food vocabulary over whole
// token boundaries. Partial-word matches never fire: "dalchini" does not
// contain the token "dal".
type Translator struct {
	entries []DictionaryEntry
	forward map[string]string
	reverse map[string]string
}

// NewTranslator builds a translator over the curated food dictionary.
func NewTranslator() *Translator {
	t := &Translator{entries: foodDictionary}
	t.forward = make(map[string]string, len(t.entries))
	t.reverse = make(map[string]string, len(t.entries))
	for _, e := range t.entries {
		// First entry wins on duplicates, matching slice order.
		if _, ok := t.forward[e.Hindi]; !ok {
			t.forward[e.Hindi] = e.English
		}
		if _, ok := t.reverse[e.English]; !ok {
			t.reverse[e.English] = e.Hindi
		}
	}
	return t
}

// Translate rewrites every dictionary token in the normalized utterance to
// its English form. Tokens outside the vocabulary pass through unchanged.
func (t *Translator) Translate(normalized string) string {
	if normalized == "" {
		return ""
	}
	tokens := strings.Fields(normalized)
	for i, tok := range tokens {
		if english, ok := t.forward[tok]; ok {
			tokens[i] = english
		}
	}
	return strings.Join(tokens, " ")
}

// ReverseLookup returns the Hinglish form of an English vocabulary word,
// used when rendering clarification prompts back to the user. Words without
// a dictionary entry come back unchanged.
func (t *Translator) ReverseLookup(english string) string {
	if hindi, ok := t.reverse[english]; ok {
		return hindi
	}
	return english
}

// InVocabulary reports whether a word appears in the curated dictionary on
// either side (Hindi or English). Extraction uses this as a confidence
// signal for known vocabulary.
func (t *Translator) InVocabulary(word string) bool {
	if _, ok := t.forward[word]; ok {
		return true
	}
	_, ok := t.reverse[word]
	return ok
}

// Entries exposes the ordered dictionary for tie-break tests.
func (t *Translator) Entries() []DictionaryEntry {
	return t.entries
}
