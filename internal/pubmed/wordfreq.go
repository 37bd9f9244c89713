package pubmed

import (
	"fmt"
	"sort"
	"strings"
)

// Field selects which table column feeds the term-frequency computation.
type Field string

const (
	FieldKeyword  Field = "keyword"
	FieldAuthor   Field = "author"
	FieldJournal  Field = "journal"
	FieldTitle    Field = "title"
	FieldAbstract Field = "abstract"
)

// stopTerms are always dropped from frequency output.
var stopTerms = []string{"ci"}

// replacement is one ordered substitution applied before splitting text
// into terms. Order matters: longer phrases must fold before their
// substrings.
type replacement struct {
	old, new string
}

// replacements folds accents, common imaging phrases into acronyms,
// plurals into singulars, and punctuation into separators.
var replacements = []replacement{
	{"à", "a"}, {"â", "a"}, {"é", "e"}, {"è", "e"}, {"ê", "e"},
	{"ô", "o"}, {"ö", "o"}, {"ù", "u"}, {"û", "u"},
	{"computed tomography", "ct"}, {"tomography, x-ray computed", "ct"},
	{"magnetic resonance imaging", "mri"}, {"magnetic resonance", "mri"},
	{"mr ", "mri "}, {"mrs", "spectroscopy"},
	{"positron-emission tomography", "pet"},
	{"diagnostic imaging", "imaging"},
	{"adults", "adult"}, {"agents", "agent"},
	{"children", "child"}, {"complications", "complication"},
	{"drugs", "drug"},
	{"factors", "factor"},
	{"procedures", "procedure"},
	{"studies", "study"},
	{"tissues", "tissue"}, {"trends", "trend"},
	{"ies ", "y "},
	{"-", "_"}, {"/", " "}, {"*", " "}, {",", " "}, {"&", " "},
	{"=", " "}, {">", " "}, {"<", " "}, {".", " "},
}

// TermCount is one term with its occurrence count.
type TermCount struct {
	Term  string
	Count int
}

// WordFrequencies computes normalized term counts over one table column,
// dropping the built-in stop terms plus extraStop. Results are sorted by
// descending count, ties broken alphabetically. This is the data half of
// word-cloud generation; rendering is a caller concern.
func WordFrequencies(t Tables, field Field, extraStop []string) ([]TermCount, error) {
	var values []string
	switch field {
	case FieldKeyword:
		for _, k := range t.Keywords {
			values = append(values, k.Term)
		}
	case FieldAuthor:
		for _, a := range t.Authors {
			values = append(values, a.ShortName)
		}
	case FieldJournal:
		for _, a := range t.Articles {
			values = append(values, a.JournalAbbrev)
		}
	case FieldTitle:
		for _, a := range t.Articles {
			values = append(values, a.Title)
		}
	case FieldAbstract:
		for _, a := range t.Articles {
			values = append(values, a.Abstract)
		}
	default:
		return nil, fmt.Errorf("unknown field %q", field)
	}

	stop := make(map[string]bool, len(stopTerms)+len(extraStop))
	for _, s := range stopTerms {
		stop[Clean(s)] = true
	}
	for _, s := range extraStop {
		stop[Clean(s)] = true
	}

	counts := make(map[string]int)
	for _, value := range values {
		if len(value) <= 1 {
			continue
		}
		for _, term := range strings.Fields(normalizeTerms(value)) {
			if len(term) <= 1 || stop[term] {
				continue
			}
			counts[term]++
		}
	}

	out := make([]TermCount, 0, len(counts))
	for term, count := range counts {
		out = append(out, TermCount{Term: term, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Term < out[j].Term
	})
	return out, nil
}

// normalizeTerms applies the ordered substitution list to lower-cased text.
func normalizeTerms(text string) string {
	text = Clean(text)
	for _, r := range replacements {
		text = strings.ReplaceAll(text, r.old, r.new)
	}
	return text
}
