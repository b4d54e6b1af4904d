// Package normalize turns loosely shaped payload rows into canonical records.
//
// Live backend rows and fallback rows disagree on key casing and nesting, so
// every attribute is read through a prioritized list of spellings (see
// fields.go). Lookups never fail: a missing attribute degrades to a display
// default and is logged at debug level.
package normalize

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/omarshaarawi/gridiron/internal/models"
	"github.com/omarshaarawi/gridiron/internal/platform/logging"
)

const (
	defaultHomeTeam = "Home"
	defaultAwayTeam = "Away"
	defaultScore    = "-"
	defaultLabel    = "N/A"
	defaultValue    = "-"
)

// Normalize maps raw to the canonical shape for domain. Unknown domains
// fall back to a stat row.
func Normalize(raw models.RawRecord, domain models.Domain) models.Record {
	switch domain {
	case models.DomainGame:
		return Game(raw)
	case models.DomainRanking:
		return Ranking(raw)
	case models.DomainTeam:
		return Team(raw)
	default:
		return StatRow(raw)
	}
}

// Game normalizes a scoreboard row. Kickoffs without an offset or zone
// are read as UTC wall-clock values; see GameIn.
func Game(raw models.RawRecord) models.Game {
	return GameIn(raw, time.UTC)
}

// GameIn is Game with naive kickoff dates and times read as wall-clock
// values in loc, unless the time carries its own zone ("03:30PM ET").
func GameIn(raw models.RawRecord, loc *time.Location) models.Game {
	if loc == nil {
		loc = time.UTC
	}
	week, _ := intValue(raw, fieldWeek)
	if week < 0 {
		week = 0
	}
	start, dateOnly := kickoff(raw, loc)
	return models.Game{
		ID:              text(raw, fieldGameID, "", models.DomainGame),
		Week:            week,
		HomeTeam:        text(raw, fieldHomeTeam, defaultHomeTeam, models.DomainGame),
		AwayTeam:        text(raw, fieldAwayTeam, defaultAwayTeam, models.DomainGame),
		HomeScore:       text(raw, fieldHomeScore, defaultScore, models.DomainGame),
		AwayScore:       text(raw, fieldAwayScore, defaultScore, models.DomainGame),
		HomeConference:  text(raw, fieldHomeConference, "", models.DomainGame),
		AwayConference:  text(raw, fieldAwayConference, "", models.DomainGame),
		Status:          gameStatus(raw),
		Kickoff:         start,
		KickoffDateOnly: dateOnly,
	}
}

func Ranking(raw models.RawRecord) models.RankingEntry {
	return models.RankingEntry{
		Rank:     text(raw, fieldRank, defaultValue, models.DomainRanking),
		School:   text(raw, fieldSchool, defaultLabel, models.DomainRanking),
		Points:   text(raw, fieldPoints, defaultValue, models.DomainRanking),
		Record:   text(raw, fieldRecord, defaultValue, models.DomainRanking),
		Previous: text(raw, fieldPrevious, defaultValue, models.DomainRanking),
	}
}

// StatRow keeps rank, team and conference as fixed columns; every other
// key becomes an open-ended column, sorted by name. Only the spelling that
// filled a fixed column is withheld from the open ones.
func StatRow(raw models.RawRecord) models.StatRow {
	row := models.StatRow{
		Rank:       text(raw, fieldRank, defaultValue, models.DomainStatRow),
		Team:       text(raw, fieldTeam, defaultLabel, models.DomainStatRow),
		Conference: text(raw, fieldConference, "", models.DomainStatRow),
	}

	fixed := make(map[string]struct{}, 3)
	for _, f := range []field{fieldRank, fieldTeam, fieldConference} {
		if key, ok := winningKey(raw, f, isScalar); ok {
			fixed[key] = struct{}{}
		}
	}

	names := make([]string, 0, len(raw))
	for k := range raw {
		if _, ok := fixed[k]; ok {
			continue
		}
		names = append(names, k)
	}
	sort.Strings(names)

	row.Columns = make([]models.Column, 0, len(names))
	for _, name := range names {
		value, ok := display(raw[name])
		if !ok {
			value = defaultValue
		}
		row.Columns = append(row.Columns, models.Column{Name: name, Value: value})
	}
	return row
}

func Team(raw models.RawRecord) models.Team {
	return models.Team{
		Name:       text(raw, fieldTeamName, defaultLabel, models.DomainTeam),
		Conference: text(raw, fieldConference, defaultLabel, models.DomainTeam),
		Record:     text(raw, fieldRecord, defaultValue, models.DomainTeam),
	}
}

// Games normalizes every row in loc, stamping week onto rows that do not
// carry one.
func Games(raws []models.RawRecord, week int, loc *time.Location) []models.Game {
	out := make([]models.Game, 0, len(raws))
	for _, raw := range raws {
		g := GameIn(raw, loc)
		if g.Week == 0 {
			g.Week = week
		}
		out = append(out, g)
	}
	return out
}

func Rankings(raws []models.RawRecord) []models.RankingEntry {
	out := make([]models.RankingEntry, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Ranking(raw))
	}
	return out
}

func StatRows(raws []models.RawRecord) []models.StatRow {
	out := make([]models.StatRow, 0, len(raws))
	for _, raw := range raws {
		out = append(out, StatRow(raw))
	}
	return out
}

func Teams(raws []models.RawRecord) []models.Team {
	out := make([]models.Team, 0, len(raws))
	for _, raw := range raws {
		out = append(out, Team(raw))
	}
	return out
}

func gameStatus(raw models.RawRecord) models.GameStatus {
	switch {
	case flag(raw, fieldIsLive):
		return models.StatusLive
	case flag(raw, fieldIsFinished):
		return models.StatusFinal
	case flag(raw, fieldIsUpcoming):
		return models.StatusUpcoming
	}

	if v, ok := lookupString(raw, fieldStatusText); ok {
		switch strings.ToLower(v) {
		case "live", "in_progress", "in progress":
			return models.StatusLive
		case "final", "finished":
			return models.StatusFinal
		case "upcoming", "pre", "scheduled":
			return models.StatusUpcoming
		}
	}
	return models.StatusUnknown
}

var (
	dateLayouts = []string{"2006-01-02", "01/02/2006", "01-02-2006", "Jan 2, 2006"}
	timeLayouts = []string{"3:04 PM", "3:04PM", "03:04PM", "15:04"}
)

// kickoff reports the start time and whether only its date is known.
func kickoff(raw models.RawRecord, loc *time.Location) (time.Time, bool) {
	if epoch, ok := intValue(raw, fieldKickoffEpoch); ok && epoch > 0 {
		return time.Unix(int64(epoch), 0).UTC(), false
	}

	if v, ok := lookupString(raw, fieldKickoffISO); ok {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			return t.UTC(), false
		}
	}

	dateText, ok := lookupString(raw, fieldKickoffDate)
	if !ok {
		return time.Time{}, false
	}

	clock, hasClock := lookupString(raw, fieldKickoffTime)
	if hasClock {
		var zone *time.Location
		clock, zone = splitZone(clock)
		if zone != nil {
			loc = zone
		}
	}

	var date time.Time
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, dateText, loc); err == nil {
			date = t
			break
		}
	}
	if date.IsZero() {
		return time.Time{}, false
	}

	if hasClock {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, clock); err == nil {
				return time.Date(date.Year(), date.Month(), date.Day(), t.Hour(), t.Minute(), 0, 0, loc), false
			}
		}
	}
	return date, true
}

func text(raw models.RawRecord, f field, fallback string, domain models.Domain) string {
	if v, ok := lookup(raw, f, isScalar); ok {
		if s, ok := display(v); ok {
			return s
		}
	}
	if fallback != "" {
		logging.Default().Debug("normalize: field missing, using default",
			"domain", domain,
			"field", f,
			"default", fallback,
		)
	}
	return fallback
}

func flag(raw models.RawRecord, f field) bool {
	v, ok := lookup(raw, f, isScalar)
	if !ok {
		return false
	}
	switch typed := v.(type) {
	case bool:
		return typed
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(typed))
		return err == nil && b
	}
	return false
}

func intValue(raw models.RawRecord, f field) (int, bool) {
	v, ok := lookup(raw, f, isScalar)
	if !ok {
		return 0, false
	}
	switch typed := v.(type) {
	case int:
		return typed, true
	case int64:
		return int(typed), true
	case float64:
		if typed != math.Trunc(typed) || typed < math.MinInt64 || typed >= math.MaxInt64 {
			return 0, false
		}
		return int(typed), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(typed))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func lookupString(raw models.RawRecord, f field) (string, bool) {
	v, ok := lookup(raw, f, func(v any) bool {
		s, ok := v.(string)
		return ok && strings.TrimSpace(s) != ""
	})
	if !ok {
		return "", false
	}
	return strings.TrimSpace(v.(string)), true
}

// lookup returns the value of the first spelling of f that is present,
// non-nil and accepted.
func lookup(raw models.RawRecord, f field, accept func(any) bool) (any, bool) {
	key, ok := winningKey(raw, f, accept)
	if !ok {
		return nil, false
	}
	v, _ := path(raw, key)
	return v, true
}

// winningKey is the spelling lookup would read f from.
func winningKey(raw models.RawRecord, f field, accept func(any) bool) (string, bool) {
	for _, key := range keys[f] {
		if v, ok := path(raw, key); ok && accept(v) {
			return key, true
		}
	}
	return "", false
}

func isScalar(v any) bool {
	_, ok := display(v)
	return ok
}

// path walks dotted keys through nested maps and slices.
func path(raw models.RawRecord, key string) (any, bool) {
	if raw == nil {
		return nil, false
	}
	if v, ok := raw[key]; ok {
		return v, v != nil
	}
	if !strings.Contains(key, ".") {
		return nil, false
	}

	var cur any = raw
	for _, seg := range strings.Split(key, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}

// display renders a scalar for the UI. Strings pass through untouched
// apart from trimming; maps and slices are not scalars.
func display(v any) (string, bool) {
	switch typed := v.(type) {
	case nil:
		return "", false
	case string:
		s := strings.TrimSpace(typed)
		return s, s != ""
	case float64:
		return strconv.FormatFloat(typed, 'f', -1, 64), true
	case float32:
		return strconv.FormatFloat(float64(typed), 'f', -1, 32), true
	case int:
		return strconv.Itoa(typed), true
	case int64:
		return strconv.FormatInt(typed, 10), true
	case bool:
		return strconv.FormatBool(typed), true
	case map[string]any, []any:
		return "", false
	default:
		return fmt.Sprint(typed), true
	}
}
