package main

import (
	"flag"
	"log"

	"github.com/gdamore/tcell/v2"
	"golang.org/x/exp/rand"

	"github.com/aryavsaigal/rbcb/internal/config"
	"github.com/aryavsaigal/rbcb/internal/engine"
	"github.com/aryavsaigal/rbcb/internal/model"
)

func main() {
	configFile := flag.String("config", "rbcb.yaml", "path to the YAML config file")
	color := flag.String("color", "", "side you play, white or black (default: opposite the configured engine color)")
	depth := flag.Int("depth", 0, "search depth (overrides config)")
	fen := flag.String("fen", "", "start from this FEN instead of the initial position")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		log.Fatal(err)
	}
	if *depth != 0 {
		cfg.Engine.Depth = *depth
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	human := cfg.EngineColor().Opponent()
	if *color != "" {
		if human, err = model.ParseColor(*color); err != nil {
			log.Fatal(err)
		}
	}

	pos := model.NewPosition()
	if *fen != "" {
		if pos, err = model.ParseFEN(*fen); err != nil {
			log.Fatal(err)
		}
	}
	pos.SetPromotion(cfg.PromotionChoice())

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}
	defer screen.Fini()

	u := &ui{
		screen: screen,
		pos:    pos,
		human:  human,
		searcher: engine.NewSearcher(
			rand.New(rand.NewSource(cfg.Seed())),
			engine.WithDepth(cfg.Engine.Depth),
			engine.WithPruning(cfg.Engine.Pruning),
		),
	}
	u.run()
}
