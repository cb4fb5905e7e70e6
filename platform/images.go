package platform

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/trafficgrid/assets"
)

// Sprite is a loaded asset uploaded to the GPU.
type Sprite struct {
	Name  string
	Image *ebiten.Image
}

// LoadSprites loads every sprite of the assets root (empty means embedded)
// scaled to cellSize, in manifest order.
func LoadSprites(root string, cellSize int) ([]Sprite, error) {
	fsys, err := assets.Open(root)
	if err != nil {
		return nil, err
	}
	loaded, err := assets.Load(fsys, cellSize)
	if err != nil {
		return nil, err
	}
	out := make([]Sprite, 0, len(loaded))
	for _, s := range loaded {
		out = append(out, Sprite{Name: s.Name, Image: ebiten.NewImageFromImage(s.Image)})
	}
	return out, nil
}
