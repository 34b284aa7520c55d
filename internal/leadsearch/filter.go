package leadsearch

import "strings"

// Filter applies the industry, text and score stages in that order. The
// input is left untouched; the result keeps the input's relative order.
func Filter(leads []Lead, q FilterQuery) []Lead {
	out := make([]Lead, 0, len(leads))
	for _, lead := range leads {
		if matchesIndustry(lead, q.Industry) && matchesText(lead, q.Text) && lead.Score >= q.MinScore {
			out = append(out, lead)
		}
	}
	return out
}

func matchesIndustry(lead Lead, industry string) bool {
	return industry == AllIndustries || lead.Industry == industry
}

// matchesText is a case-insensitive substring match against name, company or
// any need. An empty query matches everything.
func matchesText(lead Lead, text string) bool {
	if text == "" {
		return true
	}
	text = strings.ToLower(text)
	if strings.Contains(strings.ToLower(lead.Name), text) ||
		strings.Contains(strings.ToLower(lead.Company), text) {
		return true
	}
	for _, need := range lead.Needs {
		if strings.Contains(strings.ToLower(need), text) {
			return true
		}
	}
	return false
}
