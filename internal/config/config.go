package config

import (
	"time"
	_ "time/tzdata"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"
)

type Config struct {
	TelegramBot TelegramBot
	Backend     Backend
	Scheduler   Scheduler
	HealthAddr  string `envconfig:"HEALTH_ADDR" default:":8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
}

type TelegramBot struct {
	Token  string `envconfig:"TELEGRAM_TOKEN" required:"true"`
	ChatID int64  `envconfig:"CHAT_ID" required:"true"`
}

type Backend struct {
	URL            string        `envconfig:"API_URL" default:"http://localhost:5000" validate:"required,url"`
	Timeout        time.Duration `envconfig:"API_TIMEOUT" default:"0s"`
	LiveScoreboard bool          `envconfig:"LIVE_SCOREBOARD" default:"false"`
	LiveRankings   bool          `envconfig:"LIVE_RANKINGS" default:"false"`
}

type Scheduler struct {
	Timezone   string `envconfig:"TIMEZONE" default:"America/Chicago"`
	DigestCron string `envconfig:"DIGEST_CRON" default:"0 9 * * 6" validate:"required"`
}

func New() (*Config, error) {
	var c Config
	err := envconfig.Process("", &c)
	if err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if _, err := cron.ParseStandard(c.Scheduler.DigestCron); err != nil {
		return errors.Wrapf(err, "invalid DIGEST_CRON %q", c.Scheduler.DigestCron)
	}
	if _, err := c.Scheduler.Location(); err != nil {
		return err
	}
	return nil
}

// Location loads the configured time zone.
func (s Scheduler) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(s.Timezone)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid TIMEZONE %q", s.Timezone)
	}
	return loc, nil
}
