package main

import (
	"flag"
	"os"
	"strings"

	"github.com/benbeisheim/chessmatch/internal/config"
	"github.com/benbeisheim/chessmatch/internal/controller"
	"github.com/benbeisheim/chessmatch/internal/middleware"
	"github.com/benbeisheim/chessmatch/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/websocket/v2"
	"golang.org/x/exp/slices"
)

func main() {
	cfg, err := config.FromEnv(os.LookupEnv)
	if err != nil {
		log.Fatal(err)
	}
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	log.SetLevel(cfg.Level())

	matchManager := service.NewMatchManager()
	matchService := service.NewMatchService(matchManager)
	app := newApp(cfg, matchService)

	log.Infow("listening", "addr", cfg.Addr, "origins", strings.Join(cfg.AllowedOrigins, ","))
	log.Fatal(app.Listen(cfg.Addr))
}

func newApp(cfg config.Config, matchService *service.MatchService) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName: "chessmatch",
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(cfg.AllowedOrigins, ","),
		AllowHeaders:     "Origin, Content-Type, Accept, " + middleware.ClientIDHeader,
		AllowMethods:     "GET, POST, DELETE, OPTIONS",
		ExposeHeaders:    middleware.ClientIDHeader,
		AllowCredentials: !slices.Contains(cfg.AllowedOrigins, "*"),
	}))

	matchController := controller.NewMatchController(matchService)
	wsController := controller.NewWebSocketController(matchService)

	// WebSocket routes
	app.Use("/ws", middleware.EnsureClientID())
	app.Get("/ws/matches/:matchId",
		middleware.ValidateMatchID(),
		middleware.WebSocketUpgrade(),
		websocket.New(wsController.HandleConnection, websocket.Config{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			Origins:         cfg.AllowedOrigins,
		}))

	// REST routes
	api := app.Group("/api", middleware.EnsureClientID())

	matches := api.Group("/matches")
	matches.Post("/", matchController.CreateMatch)
	matches.Get("/:matchId", middleware.ValidateMatchID(), matchController.GetState)
	matches.Delete("/:matchId", middleware.ValidateMatchID(), matchController.DeleteMatch)
	matches.Get("/:matchId/moves/:square", middleware.ValidateMatchID(), matchController.Moves)
	matches.Post("/:matchId/moves", middleware.ValidateMatchID(), matchController.MakeMove)
	matches.Post("/:matchId/promotion", middleware.ValidateMatchID(), matchController.Promote)

	return app
}
