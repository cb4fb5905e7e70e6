package assets

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"io/fs"

	"golang.org/x/image/draw"
)

// Sprite is a decoded image scaled to its footprint.
type Sprite struct {
	Name  string
	Image *image.RGBA
}

// Load decodes every manifest sprite and scales it to cellSize. The result
// keeps manifest order. The first failure aborts the load.
func Load(fsys fs.FS, cellSize int) ([]Sprite, error) {
	m, err := LoadManifest(fsys)
	if err != nil {
		return nil, err
	}
	sprites := make([]Sprite, 0, len(m.Sprites))
	for _, spec := range m.Sprites {
		img, err := loadSprite(fsys, spec, cellSize)
		if err != nil {
			return nil, err
		}
		sprites = append(sprites, Sprite{Name: spec.Name, Image: img})
	}
	return sprites, nil
}

// Check loads the manifest and every sprite and collects all problems.
func Check(fsys fs.FS, cellSize int) []error {
	m, err := LoadSpec[Manifest](fsys, ManifestName)
	if err != nil {
		return []error{err}
	}
	var errs []error
	if err := m.Validate(); err != nil {
		errs = append(errs, unjoin(err)...)
	}
	for _, spec := range m.Sprites {
		if spec.File == "" {
			continue
		}
		if _, err := loadSprite(fsys, spec, cellSize); err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func loadSprite(fsys fs.FS, spec SpriteSpec, cellSize int) (*image.RGBA, error) {
	data, err := fs.ReadFile(fsys, cleanAssetPath(spec.File))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrMissing, spec.Name, err)
	}
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrDecode, spec.Name, err)
	}
	w, h := spec.Size(cellSize)
	return Scale(src, w, h), nil
}

// Scale returns src resampled to w x h.
func Scale(src image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	if src.Bounds().Dx() == w && src.Bounds().Dy() == h {
		draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
		return dst
	}
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return dst
}

func unjoin(err error) []error {
	if j, ok := err.(interface{ Unwrap() []error }); ok {
		return j.Unwrap()
	}
	return []error{err}
}
