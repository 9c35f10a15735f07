// Package bot runs the Telegram transport: the long-polling update loop,
// command dispatch, and the notification sink used by the admin workflow.
package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dkotenko/botgate/internal/logging"
)

// sendClient is the slice of the Bot API used by this package. The
// concrete *tgbotapi.BotAPI satisfies it; tests substitute a fake.
type sendClient interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Sender delivers plain-text messages to chats. It implements the admin
// workflow's Notifier: sends are fire-and-forget, errors are only logged.
type Sender struct {
	client sendClient
	logger logging.Logger
}

func NewSender(client sendClient, logger logging.Logger) *Sender {
	return &Sender{
		client: client,
		logger: logger.With("module", "bot_sender"),
	}
}

func (s *Sender) Send(chatID int64, text string) {
	if _, err := s.client.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		s.logger.Error(context.Background(), "error sending message", "chat_id", chatID, "error", err)
	}
}
