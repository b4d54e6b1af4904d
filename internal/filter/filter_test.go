package filter

import (
	"testing"

	"github.com/omarshaarawi/gridiron/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleGames() []models.Game {
	return []models.Game{
		{ID: "1", Week: 1, HomeTeam: "Georgia", AwayTeam: "Clemson", HomeConference: "SEC", AwayConference: "ACC", Status: models.StatusFinal},
		{ID: "2", Week: 1, HomeTeam: "Ohio State", AwayTeam: "Texas", HomeConference: "Big Ten", AwayConference: "SEC", Status: models.StatusLive},
		{ID: "3", Week: 2, HomeTeam: "Oregon", AwayTeam: "Utah", HomeConference: "Big Ten", AwayConference: "Big 12", Status: models.StatusUpcoming},
		{ID: "4", Week: 2, HomeTeam: "Miami", AwayTeam: "Florida State", HomeConference: "ACC", AwayConference: "ACC", Status: models.StatusFinal},
	}
}

func ids(games []models.Game) []string {
	out := make([]string, 0, len(games))
	for _, g := range games {
		out = append(out, g.ID)
	}
	return out
}

func TestApply_NoCriteriaReturnsInputUnchanged(t *testing.T) {
	t.Parallel()

	games := sampleGames()
	for _, c := range []models.FilterCriteria{
		{},
		{Conference: models.All, Status: models.All},
		{Conference: "", Status: ""},
	} {
		got := Apply(games, c)
		assert.Equal(t, games, got)
	}
}

func TestApply_ConferenceMatchesEitherSide(t *testing.T) {
	t.Parallel()

	game := models.Game{ID: "x", HomeConference: "SEC", AwayConference: "Big Ten"}
	records := []models.Game{game}

	assert.Len(t, Apply(records, models.FilterCriteria{Conference: "SEC"}), 1)
	assert.Len(t, Apply(records, models.FilterCriteria{Conference: "Big Ten"}), 1)
	assert.Empty(t, Apply(records, models.FilterCriteria{Conference: "ACC"}))
}

func TestApply_CombinesCriteriaAndKeepsOrder(t *testing.T) {
	t.Parallel()

	games := sampleGames()

	got := Apply(games, models.FilterCriteria{Conference: "SEC"})
	assert.Equal(t, []string{"1", "2"}, ids(got))

	got = Apply(games, models.FilterCriteria{Week: 2, Status: models.StatusFinal})
	assert.Equal(t, []string{"4"}, ids(got))

	got = Apply(games, models.FilterCriteria{Week: 1, Conference: "Big Ten", Status: models.StatusLive})
	assert.Equal(t, []string{"2"}, ids(got))

	got = Apply(games, models.FilterCriteria{Week: 3})
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	games := sampleGames()
	criteria := []models.FilterCriteria{
		{Week: 1},
		{Conference: "ACC"},
		{Status: models.StatusFinal},
		{Week: 2, Conference: "Big Ten"},
	}
	for _, c := range criteria {
		once := Apply(games, c)
		twice := Apply(once, c)
		assert.Equal(t, once, twice, "criteria %+v", c)
	}
}

func TestApply_RecordsWithoutFacetIgnoreThatCriterion(t *testing.T) {
	t.Parallel()

	rankings := []models.RankingEntry{{Rank: "1", School: "Texas"}, {Rank: "2", School: "Penn State"}}
	got := Apply(rankings, models.FilterCriteria{Week: 5, Conference: "SEC", Status: models.StatusLive})
	assert.Equal(t, rankings, got)

	rows := []models.StatRow{
		{Rank: "1", Team: "Ole Miss", Conference: "SEC"},
		{Rank: "2", Team: "Navy"},
		{Rank: "3", Team: "Oregon", Conference: "Big Ten"},
	}
	got2 := Apply(rows, models.FilterCriteria{Week: 4, Conference: "SEC"})
	require.Len(t, got2, 2)
	assert.Equal(t, "Ole Miss", got2[0].Team)
	assert.Equal(t, "Navy", got2[1].Team)
}

func TestApply_UnknownWeekGameDoesNotMatchWeek(t *testing.T) {
	t.Parallel()

	games := []models.Game{{ID: "a"}, {ID: "b", Week: 3}}
	assert.Equal(t, []string{"b"}, ids(Apply(games, models.FilterCriteria{Week: 3})))
}

func TestConferences(t *testing.T) {
	t.Parallel()

	got := Conferences(sampleGames())
	assert.Equal(t, []string{"All", "SEC", "ACC", "Big Ten", "Big 12"}, got)

	assert.Equal(t, []string{"All"}, Conferences([]models.RankingEntry{{Rank: "1"}}))
}
