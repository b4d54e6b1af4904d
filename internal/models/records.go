package models

import (
	"strings"
	"time"
)

// All is the selector value meaning "no filter".
const All = "All"

// RawRecord is an untyped payload row from the backend or the fallback dataset.
type RawRecord = map[string]any

type GameStatus string

const (
	StatusUpcoming GameStatus = "Upcoming"
	StatusLive     GameStatus = "Live"
	StatusFinal    GameStatus = "Final"
	StatusUnknown  GameStatus = "Unknown"
)

// GameStatuses lists the selectable statuses, in selector order.
var GameStatuses = []GameStatus{StatusFinal, StatusLive, StatusUpcoming}

// Record is any canonical, display-ready row.
type Record interface {
	Domain() Domain
}

type Game struct {
	ID             string
	Week           int
	HomeTeam       string
	AwayTeam       string
	HomeScore      string
	AwayScore      string
	HomeConference string
	AwayConference string
	Status         GameStatus
	Kickoff        time.Time
	// KickoffDateOnly is set when the day is known but the time is not.
	KickoffDateOnly bool
}

func (Game) Domain() Domain { return DomainGame }

// Conference is the label shown on a score card.
func (g Game) Conference() string {
	switch {
	case g.HomeConference != "":
		return g.HomeConference
	case g.AwayConference != "":
		return g.AwayConference
	default:
		return "N/A"
	}
}

func (g Game) SeasonWeek() (int, bool) { return g.Week, true }

func (g Game) ConferenceKeys() []string {
	return []string{g.HomeConference, g.AwayConference}
}

func (g Game) GameStatus() (GameStatus, bool) { return g.Status, true }

type RankingEntry struct {
	Rank     string
	School   string
	Points   string
	Record   string
	Previous string
}

func (RankingEntry) Domain() Domain { return DomainRanking }

func (RankingEntry) SeasonWeek() (int, bool) { return 0, false }

func (RankingEntry) ConferenceKeys() []string { return nil }

func (RankingEntry) GameStatus() (GameStatus, bool) { return "", false }

// Column is one named stat value in payload order.
type Column struct {
	Name  string
	Value string
}

type StatRow struct {
	Rank       string
	Team       string
	Conference string
	Columns    []Column
}

func (StatRow) Domain() Domain { return DomainStatRow }

func (StatRow) SeasonWeek() (int, bool) { return 0, false }

func (r StatRow) ConferenceKeys() []string {
	if r.Conference == "" {
		return nil
	}
	return []string{r.Conference}
}

func (StatRow) GameStatus() (GameStatus, bool) { return "", false }

// Value returns the named column, if present.
func (r StatRow) Value(name string) (string, bool) {
	for _, c := range r.Columns {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

type Team struct {
	Name       string
	Conference string
	Record     string
}

func (Team) Domain() Domain { return DomainTeam }

func (Team) SeasonWeek() (int, bool) { return 0, false }

func (t Team) ConferenceKeys() []string { return []string{t.Conference} }

func (Team) GameStatus() (GameStatus, bool) { return "", false }

// FilterCriteria is built fresh from the user's selection on every pass.
// Week 0 means no week filter; "" or All disables the others.
type FilterCriteria struct {
	Week       int
	Conference string
	Status     GameStatus
}

func (c FilterCriteria) HasWeek() bool { return c.Week > 0 }

func (c FilterCriteria) HasConference() bool {
	return c.Conference != "" && c.Conference != All
}

func (c FilterCriteria) HasStatus() bool {
	return c.Status != "" && c.Status != All
}

// ParseGameStatus matches a selector value case-insensitively. All and ""
// both parse to the empty status.
func ParseGameStatus(raw string) (GameStatus, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "all":
		return "", true
	case "final":
		return StatusFinal, true
	case "live":
		return StatusLive, true
	case "upcoming":
		return StatusUpcoming, true
	case "unknown":
		return StatusUnknown, true
	}
	return "", false
}
