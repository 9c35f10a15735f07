package bot

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dkotenko/botgate/internal/logging"
)

// Bot owns the Telegram long-polling loop and feeds updates to the
// dispatcher.
type Bot struct {
	api        *tgbotapi.BotAPI
	dispatcher *Dispatcher
	logger     logging.Logger
}

func New(api *tgbotapi.BotAPI, dispatcher *Dispatcher, logger logging.Logger) *Bot {
	return &Bot{
		api:        api,
		dispatcher: dispatcher,
		logger:     logger.With("module", "bot"),
	}
}

// Run polls for updates until ctx is cancelled.
func (b *Bot) Run(ctx context.Context) error {

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30

	updates := b.api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		b.logger.Info(ctx, "Stopping bot...")
		b.api.StopReceivingUpdates()
	}()

	b.logger.Info(ctx, "Starting bot", "username", b.api.Self.UserName)

	for update := range updates {
		b.dispatcher.HandleUpdate(ctx, update)
	}

	return nil
}
