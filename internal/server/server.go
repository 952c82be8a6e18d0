package server

import (
	"context"
	"time"

	"github.com/shaswat2031/rungo/internal/auth"
	"github.com/shaswat2031/rungo/internal/config"
	"github.com/shaswat2031/rungo/internal/ledger"
	"github.com/shaswat2031/rungo/internal/mission"
	"github.com/shaswat2031/rungo/internal/presence"
	"github.com/shaswat2031/rungo/internal/stream"
	"github.com/shaswat2031/rungo/internal/zone"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

const version = "1.0.0"

type Server struct {
	App      *fiber.App
	Cfg      config.Config
	DB       *pgxpool.Pool
	Redis    *redis.Client
	Presence *presence.Store
	Stream   *stream.Hub
}

func NewServer(cfg config.Config, db *pgxpool.Pool, redisClient *redis.Client) *Server {
	app := fiber.New()
	app.Use(recover.New())
	app.Use(logger.New())

	s := &Server{
		App:      app,
		Cfg:      cfg,
		DB:       db,
		Redis:    redisClient,
		Presence: presence.NewStore(),
		Stream:   stream.NewHub(redisClient),
	}

	registerRoutes(s)
	return s
}

func registerRoutes(s *Server) {
	s.App.Get("/health", func(c *fiber.Ctx) error {
		dbStatus := "disconnected"
		if s.DB != nil {
			ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
			defer cancel()
			if err := s.DB.Ping(ctx); err == nil {
				dbStatus = "connected"
			}
		}
		return c.JSON(fiber.Map{
			"status":    "ok",
			"database":  dbStatus,
			"version":   version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	jwtMiddleware := auth.JWTMiddleware(s.Cfg.JWTSecret)

	auth.RegisterRoutes(s.App.Group("/auth"), auth.NewService(s.Cfg.JWTSecret, s.DB), jwtMiddleware)
	zone.RegisterRoutes(s.App.Group("/zones"), zone.NewService(s.DB))
	presence.RegisterRoutes(s.App.Group("/active"), s.Presence)
	mission.RegisterRoutes(s.App.Group("/missions"))
	ledger.RegisterRoutes(s.App, ledger.NewService(s.DB, s.Stream))
	stream.RegisterRoutes(s.App.Group("/stream"), s.Stream)
}
