// Package server initializes and runs the botgate backend: it wires the
// repositories, the auth core, the admin workflow, the REST API, and the
// Telegram bot, and handles graceful shutdown.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/dkotenko/botgate/internal/logging"
	"github.com/dkotenko/botgate/internal/server/admin"
	"github.com/dkotenko/botgate/internal/server/auth"
	"github.com/dkotenko/botgate/internal/server/bot"
	"github.com/dkotenko/botgate/internal/server/config"
	"github.com/dkotenko/botgate/internal/server/httpapi"
	"github.com/dkotenko/botgate/internal/server/shared/db"
	"github.com/dkotenko/botgate/internal/server/users"
)

type App struct {
	config     *config.Config
	logger     logging.Logger
	httpServer *httpapi.Server
	bot        *bot.Bot
}

// NewApp assembles every component once, with explicit constructor wiring.
// The two process-wide secrets (hash salt, signing key) are fixed here and
// never read from the environment again.
func NewApp(c *config.Config) (*App, error) {

	slogger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	logger := logging.NewSlogLogger(slogger)

	rm, err := db.NewPostgresRepositoryManager(c.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db init error: %w", err)
	}

	hasher := auth.NewHasher(c.HashSalt)
	tokens := auth.NewTokenService([]byte(c.JWTSecret), c.TokenTTL)
	userService := users.NewService(rm.Users(), hasher, tokens, logger)

	api, err := tgbotapi.NewBotAPI(c.BotToken)
	if err != nil {
		return nil, fmt.Errorf("bot init error: %w", err)
	}

	sender := bot.NewSender(api, logger)
	adminService := admin.NewService(rm.Users(), sender, logger)
	dispatcher := bot.NewDispatcher(api, userService, adminService, c.WebAppURL, logger)

	return &App{
		config:     c,
		logger:     logger,
		httpServer: httpapi.NewServer(c.Addr, c.AllowedOrigins, userService, logger),
		bot:        bot.New(api, dispatcher, logger),
	}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.httpServer.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) startBot(ctx context.Context, cancelFunc context.CancelFunc) {
	if err := app.bot.Run(ctx); err != nil {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startBot(ctx, cancelFunc)
	}()

	wg.Wait()
}
