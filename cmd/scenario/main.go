// Command scenario replays a tengo input script against a headless editor
// session and prints the resulting grid occupancy.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"time"

	"golang.design/x/clipboard"

	"github.com/milk9111/trafficgrid/assets"
	"github.com/milk9111/trafficgrid/config"
	"github.com/milk9111/trafficgrid/input"
	"github.com/milk9111/trafficgrid/logging"
	"github.com/milk9111/trafficgrid/render"
	"github.com/milk9111/trafficgrid/session"
)

func main() {
	logLevel := flag.String("log-level", "warn", "log level: debug, info, warn or error")
	assetsDir := flag.String("assets", "", "assets root with manifest.yaml (default: embedded assets)")
	tps := flag.Int("tps", 1000, "ticks per second while replaying")
	timeout := flag.Duration("timeout", 30*time.Second, "abort the replay after this long")
	copyOut := flag.Bool("copy", false, "copy the occupancy report to the clipboard")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] script.tengo\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	level, err := logging.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("scenario: %v", err)
	}
	logger := logging.Default(level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, *timeout)
	defer cancel()

	report, err := run(ctx, flag.Arg(0), *assetsDir, *tps, logger)
	if err != nil {
		log.Fatalf("scenario: %v", err)
	}
	fmt.Print(report)

	if *copyOut {
		if err := clipboard.Init(); err != nil {
			log.Fatalf("scenario: clipboard: %v", err)
		}
		clipboard.Write(clipboard.FmtText, []byte(report))
		logger.Infof("scenario: report copied to clipboard")
	}
}

func run(ctx context.Context, scriptPath, assetsDir string, tps int, logger *logging.Logger) (string, error) {
	src, err := os.ReadFile(scriptPath)
	if err != nil {
		return "", err
	}
	events, err := input.NewScriptSource(ctx, src)
	if err != nil {
		return "", err
	}

	cfg := config.Default()
	fsys, err := assets.Open(assetsDir)
	if err != nil {
		return "", err
	}
	sprites, err := assets.Load(fsys, cfg.Grid.CellSize)
	if err != nil {
		return "", err
	}
	templates := make([]session.Template, 0, len(sprites))
	for _, s := range sprites {
		templates = append(templates, session.Template{Name: s.Name, Image: s.Image})
	}

	s, err := session.New(cfg, templates, events, logger)
	if err != nil {
		return "", err
	}
	var rec render.Recorder
	if err := s.Loop.Run(ctx, &rec, tps); err != nil {
		return "", err
	}
	return report(s, rec.Frames), nil
}

func report(s *session.Session, frames int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "frames: %d\n", frames)
	fmt.Fprintf(&b, "state: %s\n", s.Controller.State())
	for _, inst := range s.Scene.Placed() {
		col, row, ok := s.Grid.Locate(inst.ID)
		cell := "floating"
		if ok {
			cell = fmt.Sprintf("(%d,%d)", col, row)
		}
		fmt.Fprintf(&b, "%s %s %s rot=%d\n", inst.ID, inst.Sprite.Name, cell, inst.Sprite.Degrees())
	}
	b.WriteString(s.Grid.String())
	return b.String()
}
