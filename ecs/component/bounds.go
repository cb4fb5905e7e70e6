package component

import "github.com/milk9111/trafficgrid/common"

// Bounds is the on-screen rectangle of a sprite instance in pixels.
type Bounds struct {
	Rect common.Rect
}

var BoundsComponent = NewComponent[Bounds]()
