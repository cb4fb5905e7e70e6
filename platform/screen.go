package platform

import (
	"image"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/milk9111/trafficgrid/common"
	"github.com/milk9111/trafficgrid/ecs/component"
	"github.com/milk9111/trafficgrid/render"
)

// Screen adapts an ebiten image to render.Sink.
type Screen struct {
	dst   *ebiten.Image
	cache map[image.Image]*ebiten.Image
}

func NewScreen() *Screen {
	return &Screen{cache: make(map[image.Image]*ebiten.Image)}
}

// Target sets the image the next frame is drawn on.
func (s *Screen) Target(dst *ebiten.Image) {
	s.dst = dst
}

func (s *Screen) Fill(c color.Color) {
	s.dst.Fill(c)
}

// Blit draws the sprite rotated by its quarter turns about the center of dst
// and scaled to fill it.
func (s *Screen) Blit(sprite component.Sprite, dst common.Rect) {
	img := s.image(sprite.Image)
	if img == nil {
		return
	}
	sw, sh := img.Bounds().Dx(), img.Bounds().Dy()
	if sw == 0 || sh == 0 {
		return
	}
	// dst is already in rotated orientation
	w, h := dst.Width, dst.Height
	if sprite.Quarter%2 != 0 {
		w, h = h, w
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-float64(sw)/2, -float64(sh)/2)
	op.GeoM.Scale(float64(w)/float64(sw), float64(h)/float64(sh))
	op.GeoM.Rotate(float64(sprite.Quarter) * math.Pi / 2)
	cx, cy := dst.Center()
	op.GeoM.Translate(cx, cy)
	op.Filter = ebiten.FilterLinear
	s.dst.DrawImage(img, op)
}

func (s *Screen) StrokeRect(r common.Rect, c color.Color) {
	vector.StrokeRect(s.dst, float32(r.X)+1, float32(r.Y)+1, float32(r.Width)-2, float32(r.Height)-2, 2, c, false)
}

func (s *Screen) Line(l render.Line, c color.Color) {
	vector.StrokeLine(s.dst, float32(l.X0)+0.5, float32(l.Y0)+0.5, float32(l.X1)+0.5, float32(l.Y1)+0.5, 1, c, false)
}

// image returns the ebiten image for a sprite, uploading plain images once.
func (s *Screen) image(src component.Image) *ebiten.Image {
	switch img := src.(type) {
	case *ebiten.Image:
		return img
	case image.Image:
		if cached, ok := s.cache[img]; ok {
			return cached
		}
		e := ebiten.NewImageFromImage(img)
		s.cache[img] = e
		return e
	default:
		return nil
	}
}
