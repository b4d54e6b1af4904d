package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/gridiron/internal/api/backend"
	"github.com/omarshaarawi/gridiron/internal/filter"
	"github.com/omarshaarawi/gridiron/internal/models"
	"github.com/omarshaarawi/gridiron/internal/platform/logging"
	"github.com/omarshaarawi/gridiron/internal/repository/memory"
	"github.com/omarshaarawi/gridiron/internal/resolver"
)

// ErrStaleView is returned when a newer request for the same view finished
// first. The caller must not send anything.
var ErrStaleView = errors.New("stale view")

// ViewError is a failure already phrased for the chat.
type ViewError struct {
	Message string
	cause   error
}

func (e *ViewError) Error() string { return e.Message }

func (e *ViewError) Unwrap() error { return e.cause }

type CategoryFetcher interface {
	FetchCategory(ctx context.Context, category models.Category, params resolver.Params) (resolver.Result, error)
}

type EndpointRegistry interface {
	HasEndpoint(category models.Category) bool
}

type WeekSource interface {
	CurrentWeek() int
	InSeason() bool
	Year() int
}

type BackendStatus interface {
	Welcome(ctx context.Context) (backend.Welcome, error)
	Health(ctx context.Context) (backend.Health, error)
}

// ScoresQuery is the user's scoreboard selection. Week 0 means the current
// week unless AllWeeks is set. Limit 0 shows every game.
type ScoresQuery struct {
	Week       int
	AllWeeks   bool
	Conference string
	Status     models.GameStatus
	Limit      int
}

type FootballService struct {
	fetcher  CategoryFetcher
	registry EndpointRegistry
	weeks    WeekSource
	status   BackendStatus
	views    *memory.Repository
	location *time.Location
	logger   *logging.Logger
}

func NewFootballService(
	fetcher CategoryFetcher,
	registry EndpointRegistry,
	weeks WeekSource,
	status BackendStatus,
	views *memory.Repository,
	location *time.Location,
	logger *logging.Logger,
) *FootballService {
	if location == nil {
		location = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	if views == nil {
		views = memory.NewRepository()
	}
	return &FootballService{
		fetcher:  fetcher,
		registry: registry,
		weeks:    weeks,
		status:   status,
		views:    views,
		location: location,
		logger:   logger,
	}
}

// Begin reserves the next request id for key. Callers reserve ids in the
// order requests arrive, before any fetching starts.
func (s *FootballService) Begin(key memory.ViewKey) uint64 {
	return s.views.Begin(key)
}

// Render runs page for the request id reserved with Begin and commits its
// outcome to the view store. When a later request for the same view was
// reserved meanwhile, the outcome is dropped and ErrStaleView is returned.
func (s *FootballService) Render(ctx context.Context, key memory.ViewKey, id uint64, page func(context.Context) (string, error)) (string, error) {
	text, err := page(ctx)

	snap := memory.Snapshot{Text: text}
	if err != nil {
		snap = memory.Snapshot{Err: err.Error()}
	}
	if !s.views.Commit(key, id, snap) {
		s.logger.DebugContext(ctx, "dropping stale view", "chat_id", key.ChatID, "page", key.Page, "request_id", id)
		return "", errors.Wrapf(ErrStaleView, "%s request %d", key.Page, id)
	}
	return text, err
}

func (s *FootballService) fetch(ctx context.Context, category models.Category, params resolver.Params) (resolver.Result, error) {
	res, err := s.fetcher.FetchCategory(ctx, category, params)
	if err != nil {
		return resolver.Result{}, &ViewError{Message: failureMessage(category, err), cause: err}
	}
	s.logger.DebugContext(ctx, "category resolved",
		"category", category,
		"source", res.Source,
		"rows", res.Len(),
	)
	return res, nil
}

func failureMessage(category models.Category, err error) string {
	switch {
	case errors.Is(err, resolver.ErrNoData) && category == models.CategoryAPTop25:
		return "No rankings available"
	case category == models.CategoryAPTop25:
		return "Unable to load rankings."
	case errors.Is(err, resolver.ErrNoData):
		return fmt.Sprintf("Failed to fetch %s statistics", category)
	default:
		return fmt.Sprintf("Error loading %s statistics", category)
	}
}

func (s *FootballService) Scores(ctx context.Context, q ScoresQuery) (string, error) {
	week := q.Week
	if week <= 0 && !q.AllWeeks {
		week = s.weeks.CurrentWeek()
	}
	if q.AllWeeks {
		week = 0
	}

	res, err := s.fetch(ctx, models.CategoryScoreboard, resolver.Params{Week: week})
	if err != nil {
		return "", err
	}

	criteria := models.FilterCriteria{Week: week, Conference: q.Conference, Status: q.Status}
	games := filter.Apply(res.Games, criteria)

	var sb strings.Builder
	if week > 0 {
		fmt.Fprintf(&sb, "🏈 *Week %d Scores*\n\n", week)
	} else {
		sb.WriteString("🏈 *Scores*\n\n")
	}

	if len(games) == 0 {
		sb.WriteString("No scores found matching your filters.\n")
		if conferences := filter.Conferences(filter.Apply(res.Games, models.FilterCriteria{Week: week})); len(conferences) > 1 {
			fmt.Fprintf(&sb, "\nConferences: %s\n", escape(strings.Join(conferences, ", ")))
		}
		return sb.String(), nil
	}

	shown := games
	if q.Limit > 0 && len(shown) > q.Limit {
		shown = shown[:q.Limit]
	}
	for _, g := range shown {
		renderGame(&sb, g, s.location)
	}
	if hidden := len(games) - len(shown); hidden > 0 {
		fmt.Fprintf(&sb, "...and %d more. Use /scores for the full list.\n", hidden)
	}
	sb.WriteString(sourceNote(res.Source == resolver.SourceFallback))

	return sb.String(), nil
}

func (s *FootballService) Rankings(ctx context.Context) (string, error) {
	res, err := s.fetch(ctx, models.CategoryAPTop25, resolver.Params{})
	if err != nil {
		return "", err
	}
	if len(res.Rankings) == 0 {
		return "No rankings available", nil
	}

	var sb strings.Builder
	sb.WriteString("🏆 *AP Top 25*\n\n")
	for _, r := range res.Rankings {
		renderRanking(&sb, r)
	}
	sb.WriteString(sourceNote(res.Source == resolver.SourceFallback))

	return sb.String(), nil
}

// Stats renders the stat category that best matches input.
func (s *FootballService) Stats(ctx context.Context, input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", &ViewError{Message: "Please provide a category. Usage: /stats <category>. See /categories."}
	}

	category, ok := MatchCategory(input, models.StatCategories())
	if !ok {
		return "", &ViewError{Message: fmt.Sprintf("Unknown category '%s'. See /categories.", escape(input))}
	}

	res, err := s.fetch(ctx, category, resolver.Params{})
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 *%s*\n\n", escape(category.String()))
	if len(res.Stats) == 0 {
		fmt.Fprintf(&sb, "No %s statistics available.\n", escape(category.String()))
		return sb.String(), nil
	}
	for _, row := range res.Stats {
		renderStatRow(&sb, row)
	}
	sb.WriteString(sourceNote(res.Source == resolver.SourceFallback))

	return sb.String(), nil
}

func (s *FootballService) Teams(ctx context.Context, conference string) (string, error) {
	res, err := s.fetch(ctx, models.CategoryTeams, resolver.Params{})
	if err != nil {
		return "", err
	}

	teams := filter.Apply(res.Teams, models.FilterCriteria{Conference: strings.TrimSpace(conference)})

	var sb strings.Builder
	sb.WriteString("🏟 *Teams*\n\n")
	if len(teams) == 0 {
		sb.WriteString("No teams found matching your filters.\n")
	}
	for _, t := range teams {
		renderTeam(&sb, t)
	}
	if conferences := filter.Conferences(res.Teams); len(conferences) > 1 {
		fmt.Fprintf(&sb, "\nConferences: %s\n", escape(strings.Join(conferences, ", ")))
	}

	return sb.String(), nil
}

// Categories lists every selectable category and where its data comes from.
func (s *FootballService) Categories() string {
	var sb strings.Builder
	sb.WriteString("📋 *Categories*\n\n")
	for _, c := range models.Categories {
		source := "sample"
		if s.registry.HasEndpoint(c) {
			source = "live"
		}
		fmt.Fprintf(&sb, "• %s (%s)\n", escape(c.String()), source)
	}
	sb.WriteString("\nUse /stats <category> for team statistics.")
	return sb.String()
}

func (s *FootballService) Week() string {
	week := s.weeks.CurrentWeek()
	if s.weeks.InSeason() {
		return fmt.Sprintf("📅 *Week %d* of the %d season", week, s.weeks.Year())
	}
	return fmt.Sprintf("📅 *Week %d* (the %d regular season is not in progress)", week, s.weeks.Year())
}

// Health reports backend reachability. An unreachable backend is a valid
// answer, not an error.
func (s *FootballService) Health(ctx context.Context) string {
	h, err := s.status.Health(ctx)
	if err != nil {
		s.logger.WarnContext(ctx, "backend health check failed", "error", err)
		return "❌ Backend unavailable"
	}
	msg := fmt.Sprintf("✅ Backend %s", escape(h.Status))
	if h.Version != "" {
		msg += fmt.Sprintf(" (v%s)", escape(h.Version))
	}
	return msg
}

func (s *FootballService) Welcome(ctx context.Context) string {
	const base = "Welcome to Gridiron! Use /help to see available commands."
	w, err := s.status.Welcome(ctx)
	if err != nil || w.Message == "" {
		return base
	}
	return fmt.Sprintf("%s\n\n%s", base, escape(w.Message))
}
