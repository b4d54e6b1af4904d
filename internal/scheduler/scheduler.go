package scheduler

import (
	"context"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-co-op/gocron/v2"
	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/gridiron/internal/config"
	"github.com/omarshaarawi/gridiron/internal/platform/logging"
	"github.com/omarshaarawi/gridiron/internal/service"
	"github.com/sourcegraph/conc/pool"
)

const (
	digestGames    = 6
	digestSections = 3
)

// Pages is what the scheduled jobs render.
type Pages interface {
	Scores(ctx context.Context, q service.ScoresQuery) (string, error)
	Rankings(ctx context.Context) (string, error)
	Week() string
}

type Scheduler struct {
	s           gocron.Scheduler
	pages       Pages
	sendMessage func(string) error
	digestCron  string
	logger      *logging.Logger
}

func NewScheduler(cfg config.Scheduler, pages Pages, sendMessage func(string) error, clock clockwork.Clock, logger *logging.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}

	location, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	opts := []gocron.SchedulerOption{gocron.WithLocation(location)}
	if clock != nil {
		opts = append(opts, gocron.WithClock(clock))
	}

	s, err := gocron.NewScheduler(opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create scheduler")
	}

	return &Scheduler{
		s:           s,
		pages:       pages,
		sendMessage: sendMessage,
		digestCron:  cfg.DigestCron,
		logger:      logger,
	}, nil
}

func (s *Scheduler) Start() error {
	// Weekly digest: week, first games, rankings
	_, err := s.s.NewJob(
		gocron.CronJob(s.digestCron, false),
		gocron.NewTask(s.sendDigest),
		gocron.WithName("digest"),
	)
	if err != nil {
		return errors.Wrap(err, "failed to schedule digest")
	}

	// Rankings - Sunday 10:00, after the new AP poll
	_, err = s.s.NewJob(
		gocron.WeeklyJob(1, gocron.NewWeekdays(time.Sunday), gocron.NewAtTimes(gocron.NewAtTime(10, 0, 0))),
		gocron.NewTask(s.sendRankings),
		gocron.WithName("rankings"),
	)
	if err != nil {
		return errors.Wrap(err, "failed to schedule rankings")
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

// Digest renders the digest sections concurrently and joins them in a fixed
// order. A failing section shows its error message in place.
func (s *Scheduler) Digest(ctx context.Context) string {
	sections := [digestSections]func(context.Context) (string, error){
		func(context.Context) (string, error) { return s.pages.Week(), nil },
		func(ctx context.Context) (string, error) {
			return s.pages.Scores(ctx, service.ScoresQuery{Limit: digestGames})
		},
		s.pages.Rankings,
	}

	var out [digestSections]string
	p := pool.New().WithMaxGoroutines(digestSections)
	for i, section := range sections {
		p.Go(func() {
			text, err := section(ctx)
			if err != nil {
				var viewErr *service.ViewError
				if !errors.As(err, &viewErr) {
					s.logger.ErrorContext(ctx, "Failed to render digest section", "section", i, "error", err)
					return
				}
				text = viewErr.Message
			}
			out[i] = text
		})
	}
	p.Wait()

	parts := make([]string, 0, digestSections)
	for _, part := range out {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, "\n\n")
}

func (s *Scheduler) sendDigest() {
	ctx := context.Background()

	if err := s.sendMessage(s.Digest(ctx)); err != nil {
		s.logger.Error("Failed to send digest", "error", err)
	}
}

func (s *Scheduler) sendRankings() {
	ctx := context.Background()

	rankings, err := s.pages.Rankings(ctx)
	if err != nil {
		s.logger.Error("Failed to get rankings", "error", err)
		return
	}
	if err := s.sendMessage(rankings); err != nil {
		s.logger.Error("Failed to send rankings", "error", err)
	}
}
