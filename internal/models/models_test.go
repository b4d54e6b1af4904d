package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory_Domain(t *testing.T) {
	assert.Equal(t, DomainGame, CategoryScoreboard.Domain())
	assert.Equal(t, DomainRanking, CategoryAPTop25.Domain())
	assert.Equal(t, DomainTeam, CategoryTeams.Domain())
	assert.Equal(t, DomainStatRow, CategoryBlockedFieldGoals.Domain())

	assert.True(t, CategoryTotalOffense.Valid())
	assert.False(t, Category("total offense").Valid())
	assert.Len(t, StatCategories(), len(Categories)-3)
}

func TestParseGameStatus(t *testing.T) {
	tests := map[string]GameStatus{
		"final":    StatusFinal,
		" LIVE ":   StatusLive,
		"Upcoming": StatusUpcoming,
		"unknown":  StatusUnknown,
		"All":      "",
		"":         "",
	}
	for in, want := range tests {
		got, ok := ParseGameStatus(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := ParseGameStatus("halftime")
	assert.False(t, ok)
}

func TestFilterCriteria(t *testing.T) {
	var empty FilterCriteria
	assert.False(t, empty.HasWeek())
	assert.False(t, empty.HasConference())
	assert.False(t, empty.HasStatus())

	all := FilterCriteria{Conference: All, Status: All}
	assert.False(t, all.HasConference())
	assert.False(t, all.HasStatus())

	c := FilterCriteria{Week: 3, Conference: "SEC", Status: StatusLive}
	assert.True(t, c.HasWeek())
	assert.True(t, c.HasConference())
	assert.True(t, c.HasStatus())
}

func TestGame_Conference(t *testing.T) {
	assert.Equal(t, "SEC", Game{HomeConference: "SEC", AwayConference: "ACC"}.Conference())
	assert.Equal(t, "ACC", Game{AwayConference: "ACC"}.Conference())
	assert.Equal(t, "N/A", Game{}.Conference())
}
