package leadsearch

import (
	"strings"
	"time"
)

const (
	// AllIndustries disables the industry stage of the filter pipeline.
	AllIndustries = "all"

	// DefaultMinScore applies when the caller does not send minScore.
	DefaultMinScore = 70

	// ScoreCeiling is the highest score the generator ever assigns.
	ScoreCeiling = 98
)

// Lead is a synthesized client prospect. Values are never modified after
// generation; the pipeline only copies them.
type Lead struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Company  string    `json:"company"`
	Industry string    `json:"industry"`
	Needs    []string  `json:"needs"`
	Score    int       `json:"score"`
	Contact  string    `json:"contact"`
	Source   string    `json:"source"`
	FoundAt  time.Time `json:"foundAt"`
}

// FilterQuery narrows a generated pool.
type FilterQuery struct {
	// Text is the lowercased free-text query; empty disables the text stage.
	Text     string
	Industry string
	MinScore int
}

// NewFilterQuery normalizes raw values: text is lowercased and an empty
// industry means AllIndustries.
func NewFilterQuery(text, industry string, minScore int) FilterQuery {
	if industry == "" {
		industry = AllIndustries
	}
	return FilterQuery{
		Text:     strings.ToLower(text),
		Industry: industry,
		MinScore: minScore,
	}
}

// Result is the ranked outcome of one search.
type Result struct {
	Clients []Lead
	// PoolSize is how many leads were generated before filtering.
	PoolSize int
}

// Total is the number of leads that survived the filters.
func (r Result) Total() int {
	return len(r.Clients)
}
