package leadsearch

import (
	"fmt"
	"strconv"
	"strings"
)

// Query parameter names accepted by the search endpoint.
const (
	ParamQuery    = "query"
	ParamIndustry = "industry"
	ParamMinScore = "minScore"
)

// ParseRequest turns raw query parameters into a FilterQuery. A nil map is
// treated as empty. Missing minScore falls back to defaultMinScore; a value
// that is not an integer yields ErrInvalidMinScore.
func ParseRequest(params map[string]string, defaultMinScore int) (FilterQuery, error) {
	minScore := defaultMinScore
	if raw, ok := params[ParamMinScore]; ok {
		parsed, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return FilterQuery{}, fmt.Errorf("%w: %q", ErrInvalidMinScore, raw)
		}
		minScore = parsed
	}
	return NewFilterQuery(params[ParamQuery], params[ParamIndustry], minScore), nil
}
