package backend

import (
	"context"

	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/gridiron/internal/models"
)

const (
	homeEndpoint   = "/"
	healthEndpoint = "/api/health"
)

// Envelope is the wrapper every data endpoint responds with.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

type Welcome struct {
	Message   string `json:"message"`
	AppName   string `json:"app_name"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

type Health struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

func (c *Client) Welcome(ctx context.Context) (Welcome, error) {
	var w Welcome
	if err := c.Get(ctx, homeEndpoint, nil, &w); err != nil {
		return Welcome{}, errors.Wrap(err, "fetching welcome message")
	}
	return w, nil
}

func (c *Client) Health(ctx context.Context) (Health, error) {
	var h Health
	if err := c.Get(ctx, healthEndpoint, nil, &h); err != nil {
		return Health{}, errors.Wrap(err, "fetching health status")
	}
	return h, nil
}

// FetchRecords reads an enveloped endpoint and returns its row list. A
// response without success: true, or without a row list, is ErrNoData.
func (c *Client) FetchRecords(ctx context.Context, endpoint string, params map[string]string) ([]models.RawRecord, error) {
	var env Envelope
	if err := c.Get(ctx, endpoint, params, &env); err != nil {
		return nil, errors.Wrapf(err, "fetching %s", endpoint)
	}

	if !env.Success {
		reason := env.Error
		if reason == "" {
			reason = "success flag not set"
		}
		return nil, errors.Mark(errors.Newf("%s: %s", endpoint, reason), ErrNoData)
	}

	items, ok := rowList(env.Data)
	if !ok {
		return nil, errors.Mark(errors.Newf("%s: response has no record list", endpoint), ErrNoData)
	}

	records := make([]models.RawRecord, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		// scoreboard rows arrive as {"game": {...}}
		if inner, ok := m["game"].(map[string]any); ok && len(m) == 1 {
			m = inner
		}
		records = append(records, m)
	}
	return records, nil
}

// rowList finds the record list in data: data.data, data.games, or data.
func rowList(data any) ([]any, bool) {
	switch typed := data.(type) {
	case []any:
		return typed, true
	case map[string]any:
		for _, key := range []string{"data", "games"} {
			if list, ok := typed[key].([]any); ok {
				return list, true
			}
		}
	}
	return nil, false
}
