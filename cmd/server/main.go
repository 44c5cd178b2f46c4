package main

import (
	"flag"
	"log"
	"strings"

	"github.com/aryavsaigal/rbcb/internal/config"
	"github.com/aryavsaigal/rbcb/internal/controller"
	"github.com/aryavsaigal/rbcb/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	configFile := flag.String("config", "rbcb.yaml", "path to the YAML config file")
	addr := flag.String("addr", "", "listen address (overrides config)")
	depth := flag.Int("depth", 0, "search depth (overrides config)")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *addr != "" {
		cfg.Server.Addr = *addr
	}
	if *depth != 0 {
		cfg.Engine.Depth = *depth
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept, X-Player-ID",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))
	app.Use(logger.New())

	gameManager := service.NewGameManager(service.EngineSettings{
		Depth:     cfg.Engine.Depth,
		Pruning:   cfg.Engine.Pruning,
		Seed:      cfg.Seed(),
		Promotion: cfg.PromotionChoice(),
		Color:     cfg.EngineColor(),
	})
	gameService := service.NewGameService(gameManager)

	var origins []string
	for _, origin := range strings.Split(cfg.Server.AllowOrigins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			origins = append(origins, origin)
		}
	}
	controller.RegisterRoutes(app, gameService, origins)

	log.Printf("listening on %s (search depth %d, pruning %v)", cfg.Server.Addr, cfg.Engine.Depth, cfg.Engine.Pruning)
	log.Fatal(app.Listen(cfg.Server.Addr))
}
