package bot

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jonboulle/clockwork"
	"github.com/omarshaarawi/gridiron/internal/api/backend"
	"github.com/omarshaarawi/gridiron/internal/fallback"
	"github.com/omarshaarawi/gridiron/internal/models"
	"github.com/omarshaarawi/gridiron/internal/registry"
	"github.com/omarshaarawi/gridiron/internal/repository/memory"
	"github.com/omarshaarawi/gridiron/internal/resolver"
	"github.com/omarshaarawi/gridiron/internal/season"
	"github.com/omarshaarawi/gridiron/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func command(chatID int64, text string) tgbotapi.Update {
	length := len(text)
	for i, r := range text {
		if r == ' ' {
			length = i
			break
		}
	}
	return tgbotapi.Update{
		Message: &tgbotapi.Message{
			Text: text,
			Chat: &tgbotapi.Chat{ID: chatID},
			Entities: []tgbotapi.MessageEntity{
				{Type: "bot_command", Offset: 0, Length: length},
			},
		},
	}
}

func newHandler(t *testing.T, handler http.HandlerFunc) *Handler {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	data, err := fallback.Load()
	require.NoError(t, err)

	chicago, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)

	client := backend.NewClientWithHTTP(srv.URL, srv.Client(), nil)
	reg := registry.New(registry.Live{Rankings: true})
	svc := service.NewFootballService(
		resolver.New(reg, client, data, nil, resolver.WithLocation(chicago)),
		reg,
		season.NewResolver(clockwork.NewFakeClockAt(time.Date(2025, time.August, 30, 12, 0, 0, 0, time.UTC))),
		client,
		memory.NewRepository(),
		chicago,
		nil,
	)
	return NewHandler(svc, nil)
}

func backendDown(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusBadGateway)
}

func TestHandleCommand(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		backend http.HandlerFunc
		want    []string
	}{
		{
			name: "help",
			text: "/help",
			want: []string{"/scores [week|all] [conference] [status]", "/stats <category>"},
		},
		{
			name: "scores from fallback with filters",
			text: "/scores 1 SEC final",
			want: []string{"Week 1 Scores", "*Texas* 7 @ *Ohio State* 14", "*LSU* 17 @ *Clemson* 10", "Aug 30, '25 • 12:00PM"},
		},
		{
			name: "scores default to current week",
			text: "/scores",
			want: []string{"Week 2 Scores", "Michigan", "Georgia"},
		},
		{
			name: "fallback stats",
			text: "/stats passing offense",
			want: []string{"Passing Offense", "1. *Miami (FL)*", "YDS/G: 344.2"},
		},
		{
			name:    "backend stats unavailable",
			text:    "/stats total offense",
			backend: backendDown,
			want:    []string{"Error loading Total Offense statistics"},
		},
		{
			name: "backend stats no data",
			text: "/stats rushing defense",
			backend: func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{"success": false}`))
			},
			want: []string{"Failed to fetch Rushing Defense statistics"},
		},
		{
			name: "rankings from backend",
			text: "/rankings",
			backend: func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/rankings/ap-top25" {
					http.NotFound(w, r)
					return
				}
				_, _ = w.Write([]byte(`{"success": true, "data": {"data": [{"RANK": "1", "SCHOOL": "Texas", "POINTS": "1552", "RECORD": "1-0", "PREVIOUS": "1"}]}}`))
			},
			want: []string{"AP Top 25", "1. *Texas* (1-0)"},
		},
		{
			name: "teams by conference",
			text: "/teams SEC",
			want: []string{"*Alabama* (SEC)", "*Georgia* (SEC)"},
		},
		{
			name: "categories",
			text: "/categories",
			want: []string{"Total Offense (live)", "Blocked Field Goals (sample)"},
		},
		{
			name: "week",
			text: "/week",
			want: []string{"Week 2", "2025"},
		},
		{
			name:    "health down",
			text:    "/health",
			backend: backendDown,
			want:    []string{"Backend unavailable"},
		},
		{
			name: "search stub",
			text: "/search ohio",
			want: []string{"not available yet"},
		},
		{
			name: "unknown",
			text: "/standings",
			want: []string{"Unknown command"},
		},
		{
			name: "stats usage",
			text: "/stats",
			want: []string{"Usage: /stats <category>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			backendHandler := tt.backend
			if backendHandler == nil {
				backendHandler = func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) }
			}
			h := newHandler(t, backendHandler)

			msg, err := h.HandleCommand(context.Background(), command(42, tt.text))
			require.NoError(t, err)
			assert.Equal(t, int64(42), msg.ChatID)
			assert.Equal(t, tgbotapi.ModeMarkdown, msg.ParseMode)
			for _, want := range tt.want {
				assert.Contains(t, msg.Text, want)
			}
		})
	}
}

func TestAccept_LaterUpdateWinsTheView(t *testing.T) {
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) })

	older := h.Accept(command(5, "/scores 1"))
	newer := h.Accept(command(5, "/scores 2"))
	other := h.Accept(command(5, "/teams"))
	assert.Greater(t, newer.requestID, older.requestID)

	// the newer request completes first; the older one must not replace it
	msg, err := h.Execute(context.Background(), newer)
	require.NoError(t, err)
	assert.Contains(t, msg.Text, "Week 2 Scores")

	_, err = h.Execute(context.Background(), older)
	assert.True(t, errors.Is(err, service.ErrStaleView))

	// other views are unaffected
	_, err = h.Execute(context.Background(), other)
	assert.NoError(t, err)
}

func TestAccept_NonPageCommandsReserveNothing(t *testing.T) {
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) { http.NotFound(w, r) })

	cmd := h.Accept(command(5, "/week"))
	assert.Zero(t, cmd.requestID)
	assert.Equal(t, "week", cmd.name)
}

func TestHandleCommand_FallbackNeverTouchesBackend(t *testing.T) {
	var mu sync.Mutex
	var hits int
	h := newHandler(t, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		hits++
		mu.Unlock()
		http.NotFound(w, r)
	})

	for _, text := range []string{"/scores all", "/teams", "/stats scoring defense", "/stats blocked field goals"} {
		_, err := h.HandleCommand(context.Background(), command(1, text))
		require.NoError(t, err)
	}

	mu.Lock()
	defer mu.Unlock()
	assert.Zero(t, hits)
}

func TestParseScoresArgs(t *testing.T) {
	tests := []struct {
		args string
		want service.ScoresQuery
	}{
		{args: "", want: service.ScoresQuery{}},
		{args: "3", want: service.ScoresQuery{Week: 3}},
		{args: "all", want: service.ScoresQuery{AllWeeks: true}},
		{args: "2 Big Ten", want: service.ScoresQuery{Week: 2, Conference: "Big Ten"}},
		{args: "Big Ten live", want: service.ScoresQuery{Conference: "Big Ten", Status: models.StatusLive}},
		{args: "all Mountain West UPCOMING", want: service.ScoresQuery{AllWeeks: true, Conference: "Mountain West", Status: models.StatusUpcoming}},
		{args: "final", want: service.ScoresQuery{Status: models.StatusFinal}},
		{args: "0 SEC", want: service.ScoresQuery{Conference: "0 SEC"}},
		{args: "2 all all", want: service.ScoresQuery{Week: 2}},
	}

	for _, tt := range tests {
		t.Run(tt.args, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseScoresArgs(tt.args))
		})
	}
}
