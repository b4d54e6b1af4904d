package service

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/omarshaarawi/gridiron/internal/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	kickoffLayout     = "Jan 2, '06 • 3:04PM"
	kickoffDateLayout = "Jan 2, '06"
)

var markdownEscaper = strings.NewReplacer("_", `\_`, "*", `\*`, "`", "\\`", "[", `\[`)

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

// FormatKickoff renders a kickoff in loc, or TBD when it is unknown.
func FormatKickoff(kickoff time.Time, loc *time.Location) string {
	if kickoff.IsZero() {
		return "TBD"
	}
	if loc == nil {
		loc = time.UTC
	}
	return kickoff.In(loc).Format(kickoffLayout)
}

// ColumnLabel turns a backend column key into a header. Keys that are
// already upper case (YDS/G, G) are kept; camelCase and snake_case keys are
// split into title-cased words.
func ColumnLabel(key string) string {
	key = strings.TrimSpace(key)
	if key == "" || key == strings.ToUpper(key) {
		return key
	}

	var words []string
	var current []rune
	runes := []rune(key)
	flush := func() {
		if len(current) > 0 {
			words = append(words, string(current))
			current = current[:0]
		}
	}
	for i, r := range runes {
		switch {
		case r == '_' || r == '-' || unicode.IsSpace(r):
			flush()
			continue
		case unicode.IsUpper(r) && i > 0 && unicode.IsLower(runes[i-1]):
			flush()
		}
		current = append(current, r)
	}
	flush()

	return cases.Title(language.English).String(strings.Join(words, " "))
}

// gameKickoff is FormatKickoff for a game. A date-only kickoff keeps the
// day it was parsed with and shows TBD for the time.
func gameKickoff(g models.Game, loc *time.Location) string {
	if g.KickoffDateOnly && !g.Kickoff.IsZero() {
		return g.Kickoff.Format(kickoffDateLayout) + " • TBD"
	}
	return FormatKickoff(g.Kickoff, loc)
}

func renderGame(sb *strings.Builder, g models.Game, loc *time.Location) {
	fmt.Fprintf(sb, "🏈 *%s* %s @ *%s* %s\n", escape(g.AwayTeam), g.AwayScore, escape(g.HomeTeam), g.HomeScore)

	details := []string{string(g.Status), escape(g.Conference())}
	if g.Week > 0 {
		details = append(details, fmt.Sprintf("Week %d", g.Week))
	}
	sb.WriteString(strings.Join(details, " | "))
	sb.WriteString("\n")
	sb.WriteString(gameKickoff(g, loc))
	sb.WriteString("\n\n")
}

func renderRanking(sb *strings.Builder, r models.RankingEntry) {
	fmt.Fprintf(sb, "%s. *%s* (%s)\n", r.Rank, escape(r.School), r.Record)
	fmt.Fprintf(sb, "   Points: %s | Previous: %s\n", r.Points, r.Previous)
}

func renderStatRow(sb *strings.Builder, row models.StatRow) {
	fmt.Fprintf(sb, "%s. *%s*", row.Rank, escape(row.Team))
	if row.Conference != "" {
		fmt.Fprintf(sb, " (%s)", escape(row.Conference))
	}
	sb.WriteString("\n")

	if len(row.Columns) == 0 {
		return
	}
	cols := make([]string, 0, len(row.Columns))
	for _, c := range row.Columns {
		cols = append(cols, fmt.Sprintf("%s: %s", escape(ColumnLabel(c.Name)), escape(c.Value)))
	}
	fmt.Fprintf(sb, "   %s\n", strings.Join(cols, " | "))
}

func renderTeam(sb *strings.Builder, t models.Team) {
	fmt.Fprintf(sb, "• *%s* (%s) %s\n", escape(t.Name), escape(t.Conference), t.Record)
}

func sourceNote(fallback bool) string {
	if fallback {
		return "\n_Sample data: no live endpoint for this category._"
	}
	return ""
}
