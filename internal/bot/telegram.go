package bot

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/omarshaarawi/gridiron/internal/platform/logging"
	"github.com/omarshaarawi/gridiron/internal/service"
)

var ErrChatIDNotSet = errors.New("chat ID not set")

// Sender is the part of the Telegram API the bot writes through.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

type TelegramBot struct {
	bot     *tgbotapi.BotAPI
	sender  Sender
	handler *Handler
	chatID  int64
	logger  *logging.Logger
	wg      sync.WaitGroup
}

func NewTelegramBot(token string, chatID int64, footballService *service.FootballService, logger *logging.Logger) (*TelegramBot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "error creating telegram client")
	}

	t := newTelegramBot(api, chatID, NewHandler(footballService, logger), logger)
	t.bot = api
	return t, nil
}

func newTelegramBot(sender Sender, chatID int64, handler *Handler, logger *logging.Logger) *TelegramBot {
	if logger == nil {
		logger = logging.Default()
	}
	return &TelegramBot{
		sender:  sender,
		handler: handler,
		chatID:  chatID,
		logger:  logger,
	}
}

// Start polls for updates until ctx is done. Each command is handled on its
// own goroutine so a slow fetch never blocks other chats.
func (t *TelegramBot) Start(ctx context.Context) error {
	t.logger.Info("Authorized on account", "username", t.bot.Self.UserName)
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := t.bot.GetUpdatesChan(u)
	defer t.bot.StopReceivingUpdates()

	t.serve(ctx, updates)
	return nil
}

func (t *TelegramBot) serve(ctx context.Context, updates <-chan tgbotapi.Update) {
	defer t.wg.Wait()
	for {
		select {
		case update, ok := <-updates:
			if !ok {
				return
			}
			if update.Message == nil || !update.Message.IsCommand() {
				continue
			}
			// ids are reserved here, in arrival order, not in the goroutine
			cmd := t.handler.Accept(update)
			t.wg.Add(1)
			go func() {
				defer t.wg.Done()
				t.dispatch(ctx, cmd)
			}()
		case <-ctx.Done():
			return
		}
	}
}

func (t *TelegramBot) dispatch(ctx context.Context, cmd Command) {
	msg, err := t.handler.Execute(ctx, cmd)
	if errors.Is(err, service.ErrStaleView) {
		return
	}
	if err != nil {
		t.logger.ErrorContext(ctx, "Error handling command", "error", err)
		return
	}
	if _, err := t.sender.Send(msg); err != nil {
		t.logger.ErrorContext(ctx, "Error sending message", "chat_id", msg.ChatID, "error", err)
	}
}

func (t *TelegramBot) SendMessage(text string) error {
	if t.chatID == 0 {
		t.logger.Error("Chat ID not set")
		return ErrChatIDNotSet
	}

	msg := tgbotapi.NewMessage(t.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	if _, err := t.sender.Send(msg); err != nil {
		t.logger.Error("Error sending message", "error", err)
		return errors.Wrap(err, "error sending message")
	}
	return nil
}
