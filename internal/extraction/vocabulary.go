package extraction

import "strconv"

// knownFoods is the set of single-token foods the extractor recognizes in
// the translated (English-vocabulary) token space.
var knownFoods = map[string]struct{}{
	"roti":      {},
	"rice":      {},
	"dal":       {},
	"lentils":   {},
	"sabzi":     {},
	"curry":     {},
	"paneer":    {},
	"milk":      {},
	"curd":      {},
	"lassi":     {},
	"chai":      {},
	"tea":       {},
	"paratha":   {},
	"naan":      {},
	"idli":      {},
	"dosa":      {},
	"samosa":    {},
	"pakora":    {},
	"khichdi":   {},
	"poha":      {},
	"upma":      {},
	"biryani":   {},
	"kheer":     {},
	"halwa":     {},
	"rajma":     {},
	"chana":     {},
	"chickpeas": {},
	"egg":       {},
	"eggs":      {},
	"aloo":      {},
	"chicken":   {},
	"fish":      {},
}

// compoundFoods maps two-token sequences (in the translated token space) to
// a single canonical dish. A compound match consumes both tokens and
// bypasses the ambiguity table and unit lookup for the pair.
type compoundEntry struct {
	First, Second string
	Canonical     string
}

var compoundFoods = []compoundEntry{
	{First: "aloo", Second: "sabzi", Canonical: "aloo sabzi"},
	{First: "aloo", Second: "paratha", Canonical: "aloo paratha"},
	{First: "palak", Second: "paneer", Canonical: "palak paneer"},
	{First: "dal", Second: "makhani", Canonical: "dal makhani"},
	{First: "dal", Second: "tadka", Canonical: "dal tadka"},
	{First: "jeera", Second: "rice", Canonical: "jeera rice"},
	{First: "masala", Second: "chai", Canonical: "masala chai"},
	{First: "paneer", Second: "tikka", Canonical: "paneer tikka"},
	{First: "rajma", Second: "rice", Canonical: "rajma rice"},
	{First: "curd", Second: "rice", Canonical: "curd rice"},
	{First: "butter", Second: "chicken", Canonical: "butter chicken"},
}

// ambiguousTerms maps a recognized term to the underlying dishes it could
// mean, in a fixed presentation order. Detection fires regardless of the
// computed item confidence; the compound lookahead is the only
// disambiguation mechanism.
type ambiguousEntry struct {
	Term     string
	Meanings []string
}

var ambiguousTerms = []ambiguousEntry{
	{Term: "dal", Meanings: []string{"moong dal", "toor dal", "masoor dal", "chana dal", "urad dal"}},
	{Term: "lentils", Meanings: []string{"moong dal", "toor dal", "masoor dal", "chana dal", "urad dal"}},
	{Term: "sabzi", Meanings: []string{"aloo sabzi", "mixed vegetable sabzi", "bhindi sabzi", "seasonal sabzi"}},
	{Term: "curry", Meanings: []string{"aloo sabzi", "mixed vegetable sabzi", "bhindi sabzi", "seasonal sabzi"}},
	{Term: "paratha", Meanings: []string{"plain paratha", "aloo paratha", "paneer paratha", "gobi paratha"}},
	{Term: "chai", Meanings: []string{"masala chai", "adrak chai", "plain chai"}},
	{Term: "tea", Meanings: []string{"masala chai", "adrak chai", "plain chai"}},
}

func ambiguousMeanings(term string) ([]string, bool) {
	for _, e := range ambiguousTerms {
		if e.Term == term {
			return e.Meanings, true
		}
	}
	return nil, false
}

// stopWords are tokens that can never start a food item: pronouns, verbs,
// connectors, meal names, and filler. Digits, number words, descriptive
// quantities, and unit names are filtered separately because they are
// consumed by quantity look-back.
var stopWords = map[string]struct{}{
	// Pronouns and subjects
	"maine": {}, "main": {}, "mujhe": {}, "i": {}, "we": {}, "he": {}, "she": {}, "mera": {}, "meri": {}, "my": {},
	// Verbs and auxiliaries
	"khaya": {}, "khayi": {}, "khai": {}, "piya": {}, "pi": {}, "liya": {}, "li": {},
	"ate": {}, "eat": {}, "eaten": {}, "had": {}, "have": {}, "drank": {}, "drink": {}, "took": {},
	"tha": {}, "thi": {}, "the": {}, "hai": {}, "hain": {}, "was": {}, "is": {},
	// Connectors
	"aur": {}, "and": {}, "with": {}, "ke": {}, "ka": {}, "ki": {}, "saath": {}, "sath": {},
	"mein": {}, "me": {}, "in": {}, "for": {}, "a": {}, "an": {}, "of": {}, "par": {}, "or": {}, "to": {}, "at": {},
	// Meal names and filler
	"breakfast": {}, "lunch": {}, "dinner": {}, "snack": {}, "nashta": {},
	"kuch": {}, "bhi": {}, "sa": {}, "se": {}, "wala": {}, "wali": {}, "bas": {}, "phir": {}, "aaj": {}, "kal": {},
}

// numberWords maps spelled-out numbers one through five (post-translation,
// so Hindi number words arrive here in English form).
var numberWords = map[string]float64{
	"one":   1,
	"two":   2,
	"three": 3,
	"four":  4,
	"five":  5,
}

// descriptiveQuantities are vague amount words mapped to portion fractions.
var descriptiveQuantities = map[string]float64{
	"thoda":  0.5,
	"zyada":  2.0,
	"kam":    0.3,
	"aadha":  0.5,
	"half":   0.5,
	"poora":  1.0,
	"little": 0.5,
	"some":   0.5,
	"extra":  2.0,
}

// quantityUnits are the unit tokens quantity look-back recognizes.
var quantityUnits = map[string]struct{}{
	"katori": {}, "glass": {}, "roti": {}, "spoon": {}, "cup": {}, "plate": {},
	"bowl": {}, "kg": {}, "gram": {}, "grams": {}, "piece": {}, "pieces": {}, "slice": {}, "slices": {},
}

func isNumeric(tok string) bool {
	_, err := strconv.ParseFloat(tok, 64)
	return err == nil
}

func isStopWord(tok string) bool {
	if _, ok := stopWords[tok]; ok {
		return true
	}
	if _, ok := numberWords[tok]; ok {
		return true
	}
	if _, ok := descriptiveQuantities[tok]; ok {
		return true
	}
	if isNumeric(tok) {
		return true
	}
	return false
}
