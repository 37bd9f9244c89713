package pubmed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordFrequenciesCountsKeywords(t *testing.T) {
	tables := Tables{
		Keywords: []Keyword{
			{PMID: "1", Term: "brain"},
			{PMID: "2", Term: "brain"},
			{PMID: "3", Term: "liver"},
		},
	}

	counts, err := WordFrequencies(tables, FieldKeyword, nil)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, TermCount{Term: "brain", Count: 2}, counts[0])
	assert.Equal(t, TermCount{Term: "liver", Count: 1}, counts[1])
}

func TestWordFrequenciesFoldsImagingPhrases(t *testing.T) {
	tables := Tables{
		Keywords: []Keyword{
			{PMID: "1", Term: "magnetic resonance imaging"},
			{PMID: "2", Term: "tomography, x-ray computed"},
			{PMID: "3", Term: "ct"},
		},
	}

	counts, err := WordFrequencies(tables, FieldKeyword, nil)
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, TermCount{Term: "ct", Count: 2}, counts[0])
	assert.Equal(t, TermCount{Term: "mri", Count: 1}, counts[1])
}

func TestWordFrequenciesDropsStopTerms(t *testing.T) {
	tables := Tables{
		Articles: []Article{
			{PMID: "1", Title: "ci of the brain"},
		},
	}

	counts, err := WordFrequencies(tables, FieldTitle, []string{"brain"})
	require.NoError(t, err)
	require.Len(t, counts, 2)
	assert.Equal(t, "of", counts[0].Term)
	assert.Equal(t, "the", counts[1].Term)
}

func TestWordFrequenciesUnknownField(t *testing.T) {
	_, err := WordFrequencies(Tables{}, Field("volume"), nil)
	assert.Error(t, err)
}
