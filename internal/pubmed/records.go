// Package pubmed parses NLM tagged PubMed export files into linked record
// tables and aggregates them across files.
package pubmed

// Article is one bibliography entry keyed by its PubMed identifier.
type Article struct {
	PMID          string // PMID
	Title         string // TI
	JournalAbbrev string // TA
	Journal       string // JT
	Volume        string // VI
	Issue         string // IP
	Date          string // DP
	Source        string // SO
	Abstract      string // AB
}

// Author links one author to an article. ShortName is the normalized
// pre-comma part of the full name; Address is optional.
type Author struct {
	PMID      string // PMID
	ShortName string // SAU, derived
	FullName  string // FAU
	Address   string // AD
}

// Keyword links one MeSH heading to an article.
type Keyword struct {
	PMID string // PMID
	Term string // MH
}

// Tables holds the three linked record tables produced by one parse pass
// or a merge of several.
type Tables struct {
	Articles []Article
	Authors  []Author
	Keywords []Keyword
}

// Len returns the total number of rows across all three tables.
func (t Tables) Len() int {
	return len(t.Articles) + len(t.Authors) + len(t.Keywords)
}
