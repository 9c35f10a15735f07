// Package httpapi exposes the REST authentication surface: signup, login,
// and token verification.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/dkotenko/botgate/internal/logging"
	"github.com/dkotenko/botgate/internal/server/users"
)

type Server struct {
	addr   string
	engine *gin.Engine
	logger logging.Logger
}

func NewServer(addr string, allowedOrigins []string, svc *users.Service, logger logging.Logger) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOrigins,
		AllowMethods:     []string{http.MethodPost, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	h := &Handler{users: svc, logger: logger.With("module", "http_handler")}

	api := engine.Group("/api")
	api.POST("/user", h.CreateUser)
	api.POST("/user/login", h.Login)
	api.POST("/user/verify", h.VerifyToken)

	return &Server{
		addr:   addr,
		engine: engine,
		logger: logger.With("module", "http_server"),
	}
}

func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.engine,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
