package service

import (
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/omarshaarawi/gridiron/internal/models"
)

const maxTypoDistance = 3

// MatchCategory picks the category the user meant from candidates. Exact
// names win, then case-insensitive names, then the best fuzzy subsequence
// match, then the closest name within a few typos.
func MatchCategory(input string, candidates []models.Category) (models.Category, bool) {
	input = strings.Join(strings.Fields(input), " ")
	if input == "" || len(candidates) == 0 {
		return "", false
	}

	names := make([]string, len(candidates))
	for i, c := range candidates {
		if c.String() == input {
			return c, true
		}
		names[i] = c.String()
	}

	for _, c := range candidates {
		if strings.EqualFold(c.String(), input) {
			return c, true
		}
	}

	ranks := fuzzy.RankFindNormalizedFold(input, names)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		return candidates[ranks[0].OriginalIndex], true
	}

	best, bestDistance := -1, maxTypoDistance+1
	for i, name := range names {
		distance := fuzzy.LevenshteinDistance(strings.ToLower(input), strings.ToLower(name))
		if distance < bestDistance {
			best, bestDistance = i, distance
		}
	}
	if best < 0 {
		return "", false
	}
	return candidates[best], true
}
