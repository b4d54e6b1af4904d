package bot

import (
	"context"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/gridiron/internal/models"
	"github.com/omarshaarawi/gridiron/internal/platform/logging"
	"github.com/omarshaarawi/gridiron/internal/repository/memory"
	"github.com/omarshaarawi/gridiron/internal/service"
)

const helpText = "Available commands:\n" +
	"/scores [week|all] [conference] [status] - Scoreboard, filtered\n" +
	"/rankings - AP Top 25\n" +
	"/stats <category> - Team statistics for a category\n" +
	"/categories - List stat categories\n" +
	"/teams [conference] - Teams, optionally by conference\n" +
	"/week - Current season week\n" +
	"/health - Backend status\n" +
	"/search <query> - Search (coming soon)"

type Handler struct {
	footballService *service.FootballService
	logger          *logging.Logger
}

func NewHandler(footballService *service.FootballService, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{footballService: footballService, logger: logger}
}

// pageCommands render fetched data and go through the view store.
var pageCommands = map[string]bool{
	"scores":   true,
	"rankings": true,
	"stats":    true,
	"teams":    true,
}

// Command is an accepted update. Page commands carry the request id that
// orders them against other requests for the same view.
type Command struct {
	update    tgbotapi.Update
	name      string
	args      string
	key       memory.ViewKey
	requestID uint64
}

// Accept parses update and, for page commands, reserves its request id.
// It must be called in the order updates arrive.
func (h *Handler) Accept(update tgbotapi.Update) Command {
	chatID := update.Message.Chat.ID
	cmd := Command{
		update: update,
		name:   strings.ToLower(update.Message.Command()),
		args:   strings.TrimSpace(update.Message.CommandArguments()),
	}
	if pageCommands[cmd.name] {
		cmd.key = memory.ViewKey{ChatID: chatID, Page: cmd.name}
		cmd.requestID = h.footballService.Begin(cmd.key)
	}
	return cmd
}

// HandleCommand accepts and executes update in one step.
func (h *Handler) HandleCommand(ctx context.Context, update tgbotapi.Update) (tgbotapi.MessageConfig, error) {
	return h.Execute(ctx, h.Accept(update))
}

// Execute builds the reply for cmd. A service.ErrStaleView error means a
// later request for the same view was accepted and the reply must be
// dropped.
func (h *Handler) Execute(ctx context.Context, cmd Command) (tgbotapi.MessageConfig, error) {
	chatID := cmd.update.Message.Chat.ID
	msg := tgbotapi.NewMessage(chatID, "")
	msg.ParseMode = tgbotapi.ModeMarkdown
	args := cmd.args

	ctx = logging.WithContext(ctx, "chat_id", chatID, "command", cmd.name)

	var page func(context.Context) (string, error)
	switch cmd.name {
	case "start":
		msg.Text = h.footballService.Welcome(ctx)
	case "help":
		msg.Text = helpText
	case "scores":
		q := ParseScoresArgs(args)
		page = func(ctx context.Context) (string, error) { return h.footballService.Scores(ctx, q) }
	case "rankings":
		page = h.footballService.Rankings
	case "stats":
		page = func(ctx context.Context) (string, error) { return h.footballService.Stats(ctx, args) }
	case "teams":
		page = func(ctx context.Context) (string, error) { return h.footballService.Teams(ctx, args) }
	case "categories":
		msg.Text = h.footballService.Categories()
	case "week":
		msg.Text = h.footballService.Week()
	case "health":
		msg.Text = h.footballService.Health(ctx)
	case "search":
		msg.Text = "Search is not available yet."
	default:
		msg.Text = "Unknown command. Use /help to see available commands."
	}

	if page == nil {
		return msg, nil
	}

	text, err := h.footballService.Render(ctx, cmd.key, cmd.requestID, page)
	switch {
	case errors.Is(err, service.ErrStaleView):
		return msg, err
	case err != nil:
		msg.Text = replyForError(err)
		h.logger.WarnContext(ctx, "command failed", "error", err)
	default:
		msg.Text = text
	}
	return msg, nil
}

func replyForError(err error) string {
	var viewErr *service.ViewError
	if errors.As(err, &viewErr) {
		return viewErr.Message
	}
	return "Something went wrong. Please try again."
}

// ParseScoresArgs reads "/scores [week|all] [conference] [status]". The
// status may appear anywhere; the remaining words form the conference.
func ParseScoresArgs(args string) service.ScoresQuery {
	var q service.ScoresQuery
	var conference []string

	for i, word := range strings.Fields(args) {
		if i == 0 {
			if strings.EqualFold(word, models.All) {
				q.AllWeeks = true
				continue
			}
			if week, err := strconv.Atoi(word); err == nil && week > 0 {
				q.Week = week
				continue
			}
		}
		if status, ok := models.ParseGameStatus(word); ok {
			if status != "" {
				q.Status = status
			}
			continue
		}
		conference = append(conference, word)
	}

	q.Conference = strings.Join(conference, " ")
	return q
}
