package models

// Domain selects the canonical record shape a category produces.
type Domain string

const (
	DomainGame    Domain = "game"
	DomainRanking Domain = "ranking"
	DomainStatRow Domain = "stat_row"
	DomainTeam    Domain = "team"
)

// Category names a feed or team statistic the user can pick.
type Category string

const (
	CategoryScoreboard Category = "Scoreboard"
	CategoryAPTop25    Category = "AP Top 25"
	CategoryTeams      Category = "Teams"

	CategoryTotalOffense        Category = "Total Offense"
	CategoryTotalDefense        Category = "Total Defense"
	CategoryRushingOffense      Category = "Rushing Offense"
	CategoryRushingDefense      Category = "Rushing Defense"
	CategoryPassingOffense      Category = "Passing Offense"
	CategoryPassingDefense      Category = "Passing Defense"
	CategoryScoringOffense      Category = "Scoring Offense"
	CategoryScoringDefense      Category = "Scoring Defense"
	CategoryThirdDownPctDefense Category = "3rd Down Conversion Pct Defense"
	CategoryBlockedFieldGoals   Category = "Blocked Field Goals"
)

// Categories is the single list shared by the registry, the fallback
// dataset and the category selector. Order is display order.
var Categories = []Category{
	CategoryScoreboard,
	CategoryAPTop25,
	CategoryTeams,
	CategoryTotalOffense,
	CategoryTotalDefense,
	CategoryRushingOffense,
	CategoryRushingDefense,
	CategoryPassingOffense,
	CategoryPassingDefense,
	CategoryScoringOffense,
	CategoryScoringDefense,
	CategoryThirdDownPctDefense,
	CategoryBlockedFieldGoals,
}

var categoryDomains = map[Category]Domain{
	CategoryScoreboard: DomainGame,
	CategoryAPTop25:    DomainRanking,
	CategoryTeams:      DomainTeam,
}

func (c Category) String() string {
	return string(c)
}

// Valid reports whether c is one of Categories. Matching is exact.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Domain is the record shape for c; every stat category yields stat rows.
func (c Category) Domain() Domain {
	if d, ok := categoryDomains[c]; ok {
		return d
	}
	return DomainStatRow
}

// StatCategories returns the categories that produce stat rows.
func StatCategories() []Category {
	out := make([]Category, 0, len(Categories))
	for _, c := range Categories {
		if c.Domain() == DomainStatRow {
			out = append(out, c)
		}
	}
	return out
}
