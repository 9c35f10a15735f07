package bot

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dkotenko/botgate/internal/logging"
	"github.com/dkotenko/botgate/internal/server/admin"
	"github.com/dkotenko/botgate/internal/server/users"
)

const helpText = `Valid commands are:
- /start: Start interacting with the bot
- /adminhello [userId] [message]: Send a message to a user as an admin
- /adminapprove: Request admin approval
- /approve [userId]: Approve a user as admin
Please use a valid command.`

// Dispatcher routes inbound messages to command handlers. It holds no
// transport state of its own, so it can be exercised without a network.
type Dispatcher struct {
	client    sendClient
	users     *users.Service
	admin     *admin.Service
	webAppURL string
	logger    logging.Logger
}

func NewDispatcher(client sendClient, us *users.Service, as *admin.Service, webAppURL string, logger logging.Logger) *Dispatcher {
	return &Dispatcher{
		client:    client,
		users:     us,
		admin:     as,
		webAppURL: webAppURL,
		logger:    logger.With("module", "bot_dispatcher"),
	}
}

// HandleUpdate processes a single update. A panicking handler must not
// take down the polling loop, so panics are recovered and logged here.
func (d *Dispatcher) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if p := recover(); p != nil {
			d.logger.Error(ctx, "panic in update handler", "panic", p)
		}
	}()

	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	if !msg.IsCommand() {
		d.reply(ctx, msg.Chat.ID, helpText)
		return
	}

	switch msg.Command() {
	case "start":
		d.handleStart(ctx, msg)
	case "adminhello":
		d.handleAdminHello(ctx, msg)
	case "adminapprove":
		d.admin.RequestApproval(ctx, msg.Chat.ID, strconv.FormatInt(msg.From.ID, 10))
	case "approve":
		d.handleApprove(ctx, msg)
	default:
		d.reply(ctx, msg.Chat.ID, helpText)
	}
}

func (d *Dispatcher) handleStart(ctx context.Context, msg *tgbotapi.Message) {
	telegramID := strconv.FormatInt(msg.From.ID, 10)
	firstName := msg.From.FirstName

	if _, err := d.users.RegisterContact(ctx, telegramID, firstName); err != nil {
		d.logger.Error(ctx, "error registering contact", "telegram_id", telegramID, "error", err)
		return
	}

	welcome := tgbotapi.NewMessage(msg.Chat.ID, "Welcome "+firstName+"!")
	welcome.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonURL("Open Web App", d.webAppURL+"/?firstname="+firstName),
		),
	)
	if _, err := d.client.Send(welcome); err != nil {
		d.logger.Error(ctx, "error sending welcome", "chat_id", msg.Chat.ID, "error", err)
	}
}

func (d *Dispatcher) handleAdminHello(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) == 0 {
		d.reply(ctx, msg.Chat.ID, "Usage: /adminhello [userId] [message]")
		return
	}

	targetChatID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		d.reply(ctx, msg.Chat.ID, "Usage: /adminhello [userId] [message]")
		return
	}

	message := strings.Join(args[1:], " ")
	d.admin.Broadcast(ctx, msg.Chat.ID, strconv.FormatInt(msg.From.ID, 10), targetChatID, message)
}

func (d *Dispatcher) handleApprove(ctx context.Context, msg *tgbotapi.Message) {
	args := strings.Fields(msg.CommandArguments())
	if len(args) != 1 {
		d.reply(ctx, msg.Chat.ID, "Usage: /approve [userId]")
		return
	}

	d.admin.Approve(ctx, msg.Chat.ID, strconv.FormatInt(msg.From.ID, 10), args[0])
}

func (d *Dispatcher) reply(ctx context.Context, chatID int64, text string) {
	if _, err := d.client.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		d.logger.Error(ctx, "error sending message", "chat_id", chatID, "error", err)
	}
}
