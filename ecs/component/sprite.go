package component

import "image"

// Image is the narrow view of a loaded picture the core needs. *ebiten.Image
// and every image.Image satisfy it.
type Image interface {
	Bounds() image.Rectangle
}

// Sprite is the visual of an instance: the loaded image and its rotation in
// clockwise quarter turns (0..3).
type Sprite struct {
	Name    string
	Image   Image
	Quarter int
}

// Degrees returns the clockwise rotation in degrees.
func (s Sprite) Degrees() int {
	return s.Quarter * 90
}

var SpriteComponent = NewComponent[Sprite]()
