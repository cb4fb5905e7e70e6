// Command spritecheck validates an assets root: the manifest parses, every
// sprite exists and decodes. With -watch it re-checks whenever a manifest or
// PNG file changes.
package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/milk9111/trafficgrid/assets"
	"github.com/milk9111/trafficgrid/config"
)

func main() {
	root := flag.String("assets", "assets", "assets root with manifest.yaml")
	cellSize := flag.Int("cell", config.Default().Grid.CellSize, "cell size in pixels")
	watch := flag.Bool("watch", false, "keep running and re-check on file changes")
	flag.Parse()

	fsys, err := assets.Open(*root)
	if err != nil {
		log.Fatalf("spritecheck: %v", err)
	}

	ok := check(fsys, *root, *cellSize)
	if !*watch {
		if !ok {
			os.Exit(1)
		}
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := watchLoop(ctx, fsys, *root, *cellSize); err != nil {
		log.Fatalf("spritecheck: %v", err)
	}
}

func check(fsys fs.FS, root string, cellSize int) bool {
	errs := assets.Check(fsys, cellSize)
	for _, err := range errs {
		log.Printf("spritecheck: %s: %v", root, err)
	}
	if len(errs) == 0 {
		log.Printf("spritecheck: %s: ok", root)
	}
	return len(errs) == 0
}

func watchLoop(ctx context.Context, fsys fs.FS, root string, cellSize int) error {
	dirs := []string{root}
	if m, err := assets.LoadSpec[assets.Manifest](fsys, assets.ManifestName); err == nil {
		seen := map[string]bool{root: true}
		for _, s := range m.Sprites {
			dir := filepath.Join(root, filepath.Dir(filepath.FromSlash(s.File)))
			if !seen[dir] {
				seen[dir] = true
				dirs = append(dirs, dir)
			}
		}
	}

	w, err := assets.NewWatcher(dirs...)
	if err != nil {
		return err
	}
	defer w.Close()
	log.Printf("spritecheck: watching %v", dirs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case name, ok := <-w.Events:
			if !ok {
				return nil
			}
			log.Printf("spritecheck: %s changed", name)
			check(fsys, root, cellSize)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("spritecheck: watch: %v", err)
		}
	}
}
