package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/milk9111/trafficgrid/config"
	"github.com/milk9111/trafficgrid/logging"
	"github.com/milk9111/trafficgrid/platform"
	"github.com/milk9111/trafficgrid/session"
)

func main() {
	showVersion := flag.Bool("version", false, "print the version and exit")
	logLevel := flag.String("log-level", "info", "log level: debug, info, warn or error")
	assetsDir := flag.String("assets", "", "assets root with manifest.yaml (default: embedded assets)")
	tps := flag.Int("tps", 0, "ticks per second (default from config)")
	flag.Parse()

	if *showVersion {
		fmt.Println(config.Version())
		os.Exit(0)
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("trafficgrid: %v", err)
	}
	logger := logging.Default(level)

	cfg := config.Default().WithTPS(*tps)

	sprites, err := platform.LoadSprites(*assetsDir, cfg.Grid.CellSize)
	if err != nil {
		log.Fatalf("trafficgrid: load sprites: %v", err)
	}
	templates := make([]session.Template, 0, len(sprites))
	for _, s := range sprites {
		templates = append(templates, session.Template{Name: s.Name, Image: s.Image})
	}

	s, err := session.New(cfg, templates, platform.NewInput(), logger)
	if err != nil {
		log.Fatalf("trafficgrid: %v", err)
	}

	logger.Infof("trafficgrid %s: %d sprites, %d tps", config.Version(), len(sprites), cfg.Window.TPS)
	if err := platform.Run(cfg, platform.NewGame(cfg, s.Loop, s.Scene)); err != nil {
		log.Fatalf("trafficgrid: %v", err)
	}
}
