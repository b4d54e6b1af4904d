// Package registry maps categories to the backend endpoints that serve them.
package registry

import (
	"strconv"
	"strings"

	"github.com/omarshaarawi/gridiron/internal/models"
)

// WeekPlaceholder is replaced with the requested week in endpoint paths.
const WeekPlaceholder = "{week}"

const (
	ScoreboardPath = "/scoreboard/week/" + WeekPlaceholder
	RankingsPath   = "/rankings/ap-top25"
)

var defaultEndpoints = map[models.Category]string{
	models.CategoryTotalOffense:   "/stats/offense",
	models.CategoryTotalDefense:   "/stats/defense",
	models.CategoryRushingOffense: "/stats/offense/rushing",
	models.CategoryRushingDefense: "/stats/defense/rushing",
}

// Live selects the feeds served by the backend. Feeds left off are served
// from the sample data.
type Live struct {
	Scoreboard bool
	Rankings   bool
}

// Registry answers whether a category has backend support. It is not
// safe to mutate once shared.
type Registry struct {
	endpoints map[models.Category]string
}

// New returns the default registry. The scoreboard and rankings feeds are
// opt-in because their backend routes may not be deployed.
func New(live Live) *Registry {
	r := &Registry{endpoints: make(map[models.Category]string, len(defaultEndpoints)+2)}
	for c, p := range defaultEndpoints {
		r.Register(c, p)
	}
	if live.Scoreboard {
		r.Register(models.CategoryScoreboard, ScoreboardPath)
	}
	if live.Rankings {
		r.Register(models.CategoryAPTop25, RankingsPath)
	}
	return r
}

// Register adds or replaces the endpoint for a category.
func (r *Registry) Register(category models.Category, path string) {
	r.endpoints[category] = path
}

func (r *Registry) HasEndpoint(category models.Category) bool {
	_, ok := r.endpoints[category]
	return ok
}

func (r *Registry) EndpointFor(category models.Category) (string, bool) {
	p, ok := r.endpoints[category]
	return p, ok
}

// Categories lists the registered categories in models.Categories order.
func (r *Registry) Categories() []models.Category {
	out := make([]models.Category, 0, len(r.endpoints))
	for _, c := range models.Categories {
		if r.HasEndpoint(c) {
			out = append(out, c)
		}
	}
	return out
}

// Expand fills path placeholders. Without a week the placeholder segment is
// dropped and the backend picks its own default.
func Expand(path string, week int) string {
	if !strings.Contains(path, WeekPlaceholder) {
		return path
	}
	if week <= 0 {
		return strings.TrimSuffix(strings.ReplaceAll(path, WeekPlaceholder, ""), "/")
	}
	return strings.ReplaceAll(path, WeekPlaceholder, strconv.Itoa(week))
}
